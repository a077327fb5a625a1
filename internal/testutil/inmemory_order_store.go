package testutil

import (
	"context"

	"github.com/google/uuid"
	"github.com/hospitalsupply/supplyrecon/internal/domain/lineitem"
	"github.com/hospitalsupply/supplyrecon/internal/domain/order"
	ierr "github.com/hospitalsupply/supplyrecon/internal/errors"
	"github.com/samber/lo"
)

var _ order.Repository = (*InMemoryOrderStore)(nil)

// InMemoryOrderStore implements order.Repository. Line items are read from
// the shared line item store, like the join in the SQL repository.
type InMemoryOrderStore struct {
	*InMemoryStore[*order.Order]
	lineItems *InMemoryLineItemStore
}

func NewInMemoryOrderStore(lineItems *InMemoryLineItemStore) *InMemoryOrderStore {
	return &InMemoryOrderStore{
		InMemoryStore: NewInMemoryStore[*order.Order](),
		lineItems:     lineItems,
	}
}

func (s *InMemoryOrderStore) Create(ctx context.Context, o *order.Order) (int64, error) {
	stored := o.Copy()
	stored.LineItems = nil
	if err := s.InMemoryStore.Create(ctx, o.ID.String(), stored); err != nil {
		return 0, err
	}
	return 1, nil
}

func (s *InMemoryOrderStore) Get(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	o, err := s.InMemoryStore.Get(ctx, id.String())
	if err != nil {
		return nil, ierr.WithError(err).
			WithHintf("Order %s not found", id).
			Mark(ierr.ErrNotFound)
	}
	return s.withLineItems(ctx, o)
}

func (s *InMemoryOrderStore) List(ctx context.Context) ([]*order.Order, error) {
	return s.list(ctx, nil)
}

func (s *InMemoryOrderStore) GetPendingOrders(ctx context.Context) ([]*order.Order, error) {
	return s.list(ctx, func(_ context.Context, o *order.Order) bool { return o.IsPending() })
}

// Update only lands while the stored order has no invoice
func (s *InMemoryOrderStore) Update(ctx context.Context, o *order.Order) (int64, error) {
	if !o.InvoiceID.Valid {
		return 0, ierr.NewError("order update without invoice link").
			WithHint("Only the invoice link of an order can be updated").
			Mark(ierr.ErrInvalidOperation)
	}

	changed, err := s.Mutate(ctx, o.ID.String(), func(stored *order.Order) (*order.Order, bool) {
		if !stored.IsPending() {
			return stored, false
		}
		updated := stored.Copy()
		updated.InvoiceID = o.InvoiceID
		return updated, true
	})
	if err != nil {
		if ierr.IsNotFound(err) {
			return 0, nil
		}
		return 0, err
	}
	return lo.Ternary[int64](changed, 1, 0), nil
}

func (s *InMemoryOrderStore) list(ctx context.Context, filterFn FilterFunc[*order.Order]) ([]*order.Order, error) {
	orders := s.InMemoryStore.List(ctx, filterFn, func(a, b *order.Order) bool {
		if !a.DateCreated.Equal(b.DateCreated) {
			return a.DateCreated.After(b.DateCreated)
		}
		return a.ID.String() < b.ID.String()
	})

	out := make([]*order.Order, 0, len(orders))
	for _, o := range orders {
		withItems, err := s.withLineItems(ctx, o)
		if err != nil {
			return nil, err
		}
		out = append(out, withItems)
	}
	return out, nil
}

func (s *InMemoryOrderStore) withLineItems(ctx context.Context, o *order.Order) (*order.Order, error) {
	items, err := s.lineItems.ListByOwner(ctx, lineitem.OrderOwner(o.ID))
	if err != nil {
		return nil, err
	}
	c := o.Copy()
	c.LineItems = items
	return c, nil
}
