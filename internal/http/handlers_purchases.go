package httpx

import (
	"net/http"

	domainauth "github.com/brightmath/campus-api/internal/domain/auth"
	"github.com/brightmath/campus-api/internal/domain/model"
	apperrors "github.com/brightmath/campus-api/internal/errors"
	"github.com/brightmath/campus-api/internal/service"
)

// PurchaseHandlers provides HTTP handlers for purchases and access checks.
type PurchaseHandlers struct {
	Svc *service.PurchaseService
}

// Record stores a purchase for a user.
// POST /purchases.
func (h *PurchaseHandlers) Record(w http.ResponseWriter, r *http.Request) {
	var req model.CreatePurchaseRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	purchase, err := h.Svc.Record(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, purchase)
}

// List returns the calling user's purchases, or another user's when the
// caller is staff and passes ?userId=.
// GET /purchases.
func (h *PurchaseHandlers) List(w http.ResponseWriter, r *http.Request) {
	sess := GetSessionFromContext(r.Context())
	userID := h.resolveUserID(r, sess)

	purchases, err := h.Svc.ListByUser(r.Context(), sess, userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, purchases)
}

// Revoke removes a user's access to a module.
// DELETE /purchases/{userID}/{moduleID}.
func (h *PurchaseHandlers) Revoke(w http.ResponseWriter, r *http.Request) {
	ok, err := h.Svc.Revoke(r.Context(), r.PathValue("userID"), r.PathValue("moduleID"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if !ok {
		writeServiceError(w, apperrors.NotFound("purchase not found"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Access checks a single user/module entitlement.
// GET /purchases/access?userId=<id>&moduleId=<id>.
func (h *PurchaseHandlers) Access(w http.ResponseWriter, r *http.Request) {
	sess := GetSessionFromContext(r.Context())
	userID := h.resolveUserID(r, sess)
	moduleID := r.URL.Query().Get("moduleId")
	if moduleID == "" {
		writeServiceError(w, apperrors.ValidationField("moduleId is required", "moduleId"))
		return
	}

	hasAccess, err := h.Svc.HasAccess(r.Context(), sess, userID, moduleID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]bool{"hasAccess": hasAccess})
}

// AccessBulk resolves entitlement for every published module at once,
// returning a module-ID-to-bool table. Modules whose check failed come
// back false.
// GET /purchases/access/bulk?userId=<id>.
func (h *PurchaseHandlers) AccessBulk(w http.ResponseWriter, r *http.Request) {
	sess := GetSessionFromContext(r.Context())
	userID := h.resolveUserID(r, sess)

	table, err := h.Svc.AccessTable(r.Context(), sess, userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"userId": userID,
		"access": table,
	})
}

// resolveUserID picks the subject user: the caller's own ID unless an
// explicit ?userId= is given. The service layer enforces who may read it.
func (h *PurchaseHandlers) resolveUserID(r *http.Request, sess *domainauth.Session) string {
	if userID := r.URL.Query().Get("userId"); userID != "" {
		return userID
	}
	if sess != nil {
		return sess.User.ID
	}
	return ""
}
