package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// PurchaseKind is an explicit tagged variant for how an entitlement was
// obtained. It is stored with the purchase record and never inferred from
// transaction identifiers.
type PurchaseKind string

const (
	// PurchaseKindPaid is a purchase settled through the payment gateway.
	PurchaseKindPaid PurchaseKind = "paid"
	// PurchaseKindCoupon is a purchase redeemed with a 100% coupon.
	PurchaseKindCoupon PurchaseKind = "coupon"
	// PurchaseKindGrant is an entitlement granted manually by an admin.
	PurchaseKindGrant PurchaseKind = "grant"
)

// UnmarshalText implements encoding.TextUnmarshaler for PurchaseKind.
func (k *PurchaseKind) UnmarshalText(text []byte) error {
	v := strings.ToLower(string(text))
	switch v {
	case "paid", "coupon", "grant":
		*k = PurchaseKind(v)
		return nil
	default:
		return fmt.Errorf("invalid PurchaseKind: %q (valid options: paid, coupon, grant)", v)
	}
}

// Purchase records that a user acquired access to a module.
type Purchase struct {
	ID            string       `json:"id"                      db:"id"`
	UserID        string       `json:"userId"                  db:"user_id"`
	ModuleID      string       `json:"moduleId"                db:"module_id"`
	Kind          PurchaseKind `json:"kind"                    db:"kind"`
	TransactionID *string      `json:"transactionId,omitempty" db:"transaction_id"`
	CreatedAt     time.Time    `json:"createdAt"               db:"created_at"`
}

// CreatePurchaseRequest carries the fields needed to record a purchase.
type CreatePurchaseRequest struct {
	UserID        string       `json:"userId"`
	ModuleID      string       `json:"moduleId"`
	Kind          PurchaseKind `json:"kind"`
	TransactionID string       `json:"transactionId,omitempty"`
}

// Validate checks the request for required fields.
func (r *CreatePurchaseRequest) Validate() error {
	if r.UserID == "" {
		return errors.New("user ID is required")
	}
	if r.ModuleID == "" {
		return errors.New("module ID is required")
	}
	switch r.Kind {
	case PurchaseKindPaid, PurchaseKindCoupon, PurchaseKindGrant:
	default:
		return fmt.Errorf("invalid purchase kind: %q", r.Kind)
	}
	return nil
}
