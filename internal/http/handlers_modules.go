package httpx

import (
	"net/http"

	"github.com/brightmath/campus-api/internal/domain/model"
	apperrors "github.com/brightmath/campus-api/internal/errors"
	"github.com/brightmath/campus-api/internal/service"
)

// ModuleHandlers provides HTTP handlers for catalog module operations.
type ModuleHandlers struct {
	Svc *service.CatalogService
}

// List returns the catalog. Drafts are included only for staff sessions.
// GET /modules.
func (h *ModuleHandlers) List(w http.ResponseWriter, r *http.Request) {
	sess := GetSessionFromContext(r.Context())

	modules, err := h.Svc.ListFor(r.Context(), sess)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, modules)
}

// Get returns a single module by ID.
// GET /modules/{id}.
func (h *ModuleHandlers) Get(w http.ResponseWriter, r *http.Request) {
	module, err := h.Svc.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, module)
}

// Create adds a module to the catalog.
// POST /modules.
func (h *ModuleHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateModuleRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	module, err := h.Svc.Create(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, module)
}

// Update applies a partial update to a module.
// PATCH /modules/{id}.
func (h *ModuleHandlers) Update(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateModuleRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	module, err := h.Svc.Update(r.Context(), r.PathValue("id"), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, module)
}

// Delete removes a module.
// DELETE /modules/{id}.
func (h *ModuleHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	ok, err := h.Svc.Delete(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if !ok {
		writeServiceError(w, apperrors.NotFound("module not found"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// writeServiceError maps application error codes to HTTP responses.
func writeServiceError(w http.ResponseWriter, err error) {
	code := apperrors.GetCode(err)
	status := http.StatusInternalServerError
	switch {
	case apperrors.IsNotFound(err):
		status = http.StatusNotFound
	case apperrors.IsValidation(err), apperrors.IsForeignKey(err):
		status = http.StatusBadRequest
	case apperrors.IsConflict(err):
		status = http.StatusConflict
	case apperrors.IsUnauthorized(err):
		status = http.StatusUnauthorized
	case apperrors.IsForbidden(err):
		status = http.StatusForbidden
	}
	WriteError(w, ErrorParams{Code: status, ErrCode: string(code), Err: err})
}
