// Package testutil provides testing utilities and helpers for the campus API.
package testutil

import (
	"github.com/brightmath/campus-api/internal/domain/model"
)

// ModuleRequestBuilder provides a fluent interface for building CreateModuleRequest objects for testing.
type ModuleRequestBuilder struct {
	req *model.CreateModuleRequest
}

// NewModuleRequest creates a new ModuleRequestBuilder with sensible defaults.
func NewModuleRequest() *ModuleRequestBuilder {
	return &ModuleRequestBuilder{
		req: &model.CreateModuleRequest{
			Title:      "Algebra Basics",
			Slug:       "algebra-basics",
			PriceCents: 4900,
			Published:  true,
		},
	}
}

// WithTitle sets the module title.
func (b *ModuleRequestBuilder) WithTitle(title string) *ModuleRequestBuilder {
	b.req.Title = title
	return b
}

// WithSlug sets the module slug.
func (b *ModuleRequestBuilder) WithSlug(slug string) *ModuleRequestBuilder {
	b.req.Slug = slug
	return b
}

// WithDescription sets the module description.
func (b *ModuleRequestBuilder) WithDescription(desc string) *ModuleRequestBuilder {
	b.req.Description = desc
	return b
}

// WithPriceCents sets the module price.
func (b *ModuleRequestBuilder) WithPriceCents(price int64) *ModuleRequestBuilder {
	b.req.PriceCents = price
	return b
}

// Unpublished marks the module as not yet published.
func (b *ModuleRequestBuilder) Unpublished() *ModuleRequestBuilder {
	b.req.Published = false
	return b
}

// Build returns the constructed request.
func (b *ModuleRequestBuilder) Build() *model.CreateModuleRequest {
	return b.req
}

// PurchaseRequestBuilder provides a fluent interface for building CreatePurchaseRequest objects for testing.
type PurchaseRequestBuilder struct {
	req *model.CreatePurchaseRequest
}

// NewPurchaseRequest creates a new PurchaseRequestBuilder with sensible defaults.
func NewPurchaseRequest(userID, moduleID string) *PurchaseRequestBuilder {
	return &PurchaseRequestBuilder{
		req: &model.CreatePurchaseRequest{
			UserID:   userID,
			ModuleID: moduleID,
			Kind:     model.PurchaseKindPaid,
		},
	}
}

// WithKind sets how the entitlement was obtained.
func (b *PurchaseRequestBuilder) WithKind(kind model.PurchaseKind) *PurchaseRequestBuilder {
	b.req.Kind = kind
	return b
}

// WithTransactionID sets the gateway transaction reference.
func (b *PurchaseRequestBuilder) WithTransactionID(id string) *PurchaseRequestBuilder {
	b.req.TransactionID = id
	return b
}

// Build returns the constructed request.
func (b *PurchaseRequestBuilder) Build() *model.CreatePurchaseRequest {
	return b.req
}
