// Package payment wraps the payment gateway behind a narrow contract: order
// creation for checkout and order lookup for callback verification.
package payment

import (
	"context"

	"github.com/cerebrexia/fest-backend/internal/domain"
)

// Order is the slice of gateway order state the backend consumes.
type Order struct {
	ID       string
	Amount   int64 // smallest currency unit (paise)
	Currency string

	// Recovered from the order notes set at creation time.
	RegistrationID string
	Kind           domain.RegistrationKind
	OwnerID        string
}

// OrderRequest describes the order to open with the gateway.
type OrderRequest struct {
	AmountPaise    int64
	Currency       string
	Receipt        string
	RegistrationID string
	Kind           domain.RegistrationKind
	OwnerID        string
}

type Gateway interface {
	CreateOrder(ctx context.Context, req OrderRequest) (Order, error)
	FetchOrder(ctx context.Context, orderID string) (Order, error)
}
