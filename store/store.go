package store

import (
	"context"
	"errors"
	"time"

	"bipang_apung/model"
)

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrAdminNotFound = errors.New("admin configuration not found")
)

// OrderStore is the document-style persistence contract the service layer
// talks to: point lookups by order id, field-filtered listing and partial
// field updates.
type OrderStore interface {
	Create(ctx context.Context, o *model.Order) error
	GetByID(ctx context.Context, orderID string) (*model.Order, error)
	// List returns orders newest first, optionally filtered by the
	// customer's normalized phone number.
	List(ctx context.Context, phone string) ([]model.Order, error)
	// Update applies a partial field update to a single order document.
	Update(ctx context.Context, orderID string, fields map[string]any) error
	Delete(ctx context.Context, orderID string) error
	// ListStale returns online orders still in one of the given statuses
	// created before the cutoff. Used by the payment sweep.
	ListStale(ctx context.Context, statuses []model.OrderStatus, before time.Time) ([]model.Order, error)
}

// AdminStore exposes the single shared admin credential.
type AdminStore interface {
	PasswordHash(ctx context.Context) (string, error)
}
