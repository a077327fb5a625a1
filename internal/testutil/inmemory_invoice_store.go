package testutil

import (
	"context"

	"github.com/google/uuid"
	"github.com/hospitalsupply/supplyrecon/internal/domain/invoice"
	ierr "github.com/hospitalsupply/supplyrecon/internal/errors"
	"github.com/samber/lo"
)

var _ invoice.Repository = (*InMemoryInvoiceStore)(nil)

// InMemoryInvoiceStore implements invoice.Repository
type InMemoryInvoiceStore struct {
	*InMemoryStore[*invoice.Invoice]
}

func NewInMemoryInvoiceStore() *InMemoryInvoiceStore {
	return &InMemoryInvoiceStore{
		InMemoryStore: NewInMemoryStore[*invoice.Invoice](),
	}
}

func (s *InMemoryInvoiceStore) Create(ctx context.Context, inv *invoice.Invoice) (int64, error) {
	if err := inv.Validate(); err != nil {
		return 0, err
	}
	if err := s.InMemoryStore.Create(ctx, inv.ID.String(), inv.Copy()); err != nil {
		return 0, err
	}
	return 1, nil
}

func (s *InMemoryInvoiceStore) Get(ctx context.Context, id uuid.UUID) (*invoice.Invoice, error) {
	inv, err := s.InMemoryStore.Get(ctx, id.String())
	if err != nil {
		return nil, ierr.WithError(err).
			WithHintf("Invoice %s not found", id).
			Mark(ierr.ErrNotFound)
	}
	return inv.Copy(), nil
}

// Update only lands while the stored invoice is unlinked
func (s *InMemoryInvoiceStore) Update(ctx context.Context, inv *invoice.Invoice) (int64, error) {
	if err := inv.Validate(); err != nil {
		return 0, err
	}

	changed, err := s.Mutate(ctx, inv.ID.String(), func(stored *invoice.Invoice) (*invoice.Invoice, bool) {
		if stored.Linked {
			return stored, false
		}
		updated := stored.Copy()
		updated.Scanned = inv.Scanned
		updated.Linked = inv.Linked
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

func (s *InMemoryInvoiceStore) ListSummaries(ctx context.Context) ([]*invoice.Summary, error) {
	items := s.List(ctx, nil, func(a, b *invoice.Invoice) bool {
		if !a.DateCreated.Equal(b.DateCreated) {
			return a.DateCreated.After(b.DateCreated)
		}
		return a.ID.String() < b.ID.String()
	})
	return lo.Map(items, func(inv *invoice.Invoice, _ int) *invoice.Summary {
		return inv.Summary()
	}), nil
}
