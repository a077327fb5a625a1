package order

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for order persistence operations
type Repository interface {
	// Create inserts the order row only, line items go through lineitem.Repository
	Create(ctx context.Context, order *Order) (int64, error)

	// Get retrieves an order with its line items
	Get(ctx context.Context, id uuid.UUID) (*Order, error)

	// List retrieves every order with its line items, newest first
	List(ctx context.Context) ([]*Order, error)

	// GetPendingOrders retrieves orders without an invoice, newest first with
	// ties broken by id ascending
	GetPendingOrders(ctx context.Context) ([]*Order, error)

	// Update writes the invoice link. The write only lands while the stored
	// order is still unlinked, so a lost race reports 0 rows.
	Update(ctx context.Context, order *Order) (int64, error)
}
