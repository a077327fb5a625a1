package testutil

import (
	"context"
	"strconv"
	"sync/atomic"

	"github.com/hospitalsupply/supplyrecon/internal/domain/lineitem"
	ierr "github.com/hospitalsupply/supplyrecon/internal/errors"
)

var _ lineitem.Repository = (*InMemoryLineItemStore)(nil)

// InMemoryLineItemStore implements lineitem.Repository with store assigned ids
type InMemoryLineItemStore struct {
	*InMemoryStore[*lineitem.LineItem]
	nextID atomic.Int64
}

func NewInMemoryLineItemStore() *InMemoryLineItemStore {
	return &InMemoryLineItemStore{
		InMemoryStore: NewInMemoryStore[*lineitem.LineItem](),
	}
}

func (s *InMemoryLineItemStore) InsertBatch(ctx context.Context, items []*lineitem.LineItem) (int64, error) {
	if len(items) == 0 {
		return 0, nil
	}

	owner := items[0].Owner
	for _, li := range items {
		if li.Owner.IsZero() || li.Owner != owner {
			return 0, ierr.NewError("line items must share one owner").
				WithHint("A batch of line items must share a single owner").
				Mark(ierr.ErrValidation)
		}
	}

	var written int64
	for _, li := range items {
		stored := li.Copy()
		stored.ID = s.nextID.Add(1)
		if err := s.Create(ctx, strconv.FormatInt(stored.ID, 10), stored); err != nil {
			return written, err
		}
		written++
	}
	return written, nil
}

func (s *InMemoryLineItemStore) ListByOwner(ctx context.Context, owner lineitem.Owner) ([]*lineitem.LineItem, error) {
	items := s.List(ctx,
		func(_ context.Context, li *lineitem.LineItem) bool { return li.Owner == owner },
		func(a, b *lineitem.LineItem) bool { return a.ID < b.ID },
	)
	return lineitem.CopyAll(items), nil
}
