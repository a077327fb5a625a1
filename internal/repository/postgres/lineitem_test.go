package postgres

import (
	"testing"

	"github.com/google/uuid"
	"github.com/hospitalsupply/supplyrecon/internal/domain/lineitem"
	ierr "github.com/hospitalsupply/supplyrecon/internal/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decimalOf(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestLineItemRepositoryInsertBatch(t *testing.T) {
	s := createTestStore(t)
	inv := s.seedInvoice(t)
	owner := lineitem.InvoiceOwner(inv.ID)

	items := lineitem.FromInputs([]lineitem.Input{gauze(10), priced("Scalpel", 2, "4.20", "GBP")}, owner)
	n, err := s.lineItems.InsertBatch(s.ctx, items)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	got, err := s.lineItems.ListByOwner(s.ctx, owner)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, owner, got[0].Owner)
	assert.True(t, lineitem.Equivalent(items, got))

	none, err := s.lineItems.ListByOwner(s.ctx, lineitem.OrderOwner(inv.ID))
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestLineItemRepositoryRejectsBadOwners(t *testing.T) {
	s := createTestStore(t)

	_, err := s.lineItems.InsertBatch(s.ctx, lineitem.FromInputs([]lineitem.Input{gauze(1)}, lineitem.Owner{}))
	require.Error(t, err)
	assert.True(t, ierr.IsValidation(err))

	mixed := []*lineitem.LineItem{
		gauzeFor(lineitem.OrderOwner(uuid.New())),
		gauzeFor(lineitem.InvoiceOwner(uuid.New())),
	}
	_, err = s.lineItems.InsertBatch(s.ctx, mixed)
	require.Error(t, err)
	assert.True(t, ierr.IsValidation(err))

	n, err := s.lineItems.InsertBatch(s.ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

func TestLineItemTableEnforcesSingleOwner(t *testing.T) {
	s := createTestStore(t)

	_, err := s.db.ExecContext(s.ctx,
		`INSERT INTO line_items (item_name, quantity, order_id, invoice_id) VALUES (?, ?, ?, ?)`,
		"Gauze", 1, uuid.New(), uuid.New(),
	)
	assert.Error(t, err)

	_, err = s.db.ExecContext(s.ctx,
		`INSERT INTO line_items (item_name, quantity) VALUES (?, ?)`,
		"Gauze", 1,
	)
	assert.Error(t, err)
}

func gauzeFor(owner lineitem.Owner) *lineitem.LineItem {
	in := gauze(1)
	return in.ToLineItem(owner)
}
