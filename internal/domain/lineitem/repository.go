package lineitem

import "context"

// Repository persists line items. Writes join the transaction carried by ctx
// and never start one.
type Repository interface {
	// InsertBatch inserts items that all share one owner and returns the
	// number of rows written
	InsertBatch(ctx context.Context, items []*LineItem) (int64, error)

	// ListByOwner returns the owner's line items in insertion order
	ListByOwner(ctx context.Context, owner Owner) ([]*LineItem, error)
}
