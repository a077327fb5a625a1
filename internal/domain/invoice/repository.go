package invoice

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for invoice persistence operations
type Repository interface {
	// Create inserts a new invoice with its document bytes
	Create(ctx context.Context, invoice *Invoice) (int64, error)

	// Get retrieves an invoice including its document bytes
	Get(ctx context.Context, id uuid.UUID) (*Invoice, error)

	// Update writes the scanned and linked flags. The write only lands while
	// the stored invoice is not linked yet.
	Update(ctx context.Context, invoice *Invoice) (int64, error)

	// ListSummaries lists invoices without document bytes, newest first
	ListSummaries(ctx context.Context) ([]*Summary, error)
}
