// Package model contains the domain entities for the campus catalog and
// purchase records.
package model

import (
	"errors"
	"strings"
	"time"
)

// Module is a purchasable course module in the catalog.
type Module struct {
	ID          string    `json:"_id"         db:"id"`
	Title       string    `json:"title"       db:"title"`
	Slug        string    `json:"slug"        db:"slug"`
	Description string    `json:"description" db:"description"`
	PriceCents  int64     `json:"price"       db:"price_cents"`
	Published   bool      `json:"published"   db:"published"`
	CreatedAt   time.Time `json:"createdAt"   db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt"   db:"updated_at"`
}

// CreateModuleRequest carries the fields needed to create a module.
type CreateModuleRequest struct {
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	PriceCents  int64  `json:"price"`
	Published   bool   `json:"published"`
}

// Validate checks the request for required fields and sane values.
func (r *CreateModuleRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return errors.New("title is required")
	}
	if strings.TrimSpace(r.Slug) == "" {
		return errors.New("slug is required")
	}
	if r.PriceCents < 0 {
		return errors.New("price cannot be negative")
	}
	return nil
}

// Normalize trims whitespace and lowercases the slug.
func (r *CreateModuleRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Slug = strings.ToLower(strings.TrimSpace(r.Slug))
	r.Description = strings.TrimSpace(r.Description)
}

// UpdateModuleRequest carries optional fields for updating a module.
// Nil fields are left unchanged.
type UpdateModuleRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	PriceCents  *int64  `json:"price,omitempty"`
	Published   *bool   `json:"published,omitempty"`
}

// Validate checks the update request for sane values.
func (r *UpdateModuleRequest) Validate() error {
	if r.Title != nil && strings.TrimSpace(*r.Title) == "" {
		return errors.New("title cannot be empty")
	}
	if r.PriceCents != nil && *r.PriceCents < 0 {
		return errors.New("price cannot be negative")
	}
	return nil
}
