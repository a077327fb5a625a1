package reconcile

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hospitalsupply/supplyrecon/internal/domain/invoice"
	"github.com/hospitalsupply/supplyrecon/internal/domain/lineitem"
	"github.com/hospitalsupply/supplyrecon/internal/domain/order"
	ierr "github.com/hospitalsupply/supplyrecon/internal/errors"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func newOrder(created time.Time, inputs ...lineitem.Input) *order.Order {
	o := &order.Order{
		ID:           uuid.New(),
		SupplierName: "Medline",
		DateCreated:  created,
	}
	o.LineItems = lineitem.FromInputs(inputs, lineitem.OrderOwner(o.ID))
	return o
}

func newInvoice() *invoice.Invoice {
	return &invoice.Invoice{
		ID:          uuid.New(),
		FileName:    "invoice.pdf",
		ContentType: "application/pdf",
		DateCreated: baseTime,
	}
}

func syringes() lineitem.Input {
	return lineitem.Input{
		ItemName:       "Syringe 5ml",
		Quantity:       100,
		CurrencyAmount: lo.ToPtr(decimal.RequireFromString("12.50")),
		CurrencyCode:   lo.ToPtr("EUR"),
	}
}

func gloves() lineitem.Input {
	return lineitem.Input{ItemName: "Gloves M", Quantity: 20}
}

func TestSelectPendingOrder(t *testing.T) {
	older := newOrder(baseTime, gloves())
	newer := newOrder(baseTime.Add(time.Hour), gloves())
	linked := newOrder(baseTime.Add(2*time.Hour), gloves())
	linked.InvoiceID = uuid.NullUUID{UUID: uuid.New(), Valid: true}

	selected, err := SelectPendingOrder([]*order.Order{older, linked, newer})
	require.NoError(t, err)
	assert.Equal(t, newer.ID, selected.ID)

	_, err = SelectPendingOrder([]*order.Order{linked})
	require.Error(t, err)
	assert.True(t, ierr.IsValidation(err))

	_, err = SelectPendingOrder(nil)
	require.Error(t, err)
	assert.True(t, ierr.IsValidation(err))
}

func TestSelectPendingOrderBreaksTiesByID(t *testing.T) {
	a := newOrder(baseTime, gloves())
	b := newOrder(baseTime, gloves())
	a.ID = uuid.MustParse("00000000-0000-0000-0000-000000000001")
	b.ID = uuid.MustParse("00000000-0000-0000-0000-000000000002")

	for _, orders := range [][]*order.Order{{a, b}, {b, a}} {
		selected, err := SelectPendingOrder(orders)
		require.NoError(t, err)
		assert.Equal(t, a.ID, selected.ID)
	}
}

func TestDecideLinksMatchingOrder(t *testing.T) {
	inv := newInvoice()
	o := newOrder(baseTime, syringes(), gloves())

	plan, err := Decide(inv, []*order.Order{o}, []lineitem.Input{syringes(), gloves()})
	require.NoError(t, err)

	assert.True(t, plan.LinksOrder())
	assert.False(t, plan.Discrepancy)
	assert.True(t, plan.Invoice.Scanned)
	assert.True(t, plan.Invoice.Linked)
	assert.Equal(t, o.ID, plan.CandidateOrderID)
	require.NotNil(t, plan.Order)
	assert.Equal(t, o.ID, plan.Order.ID)
	assert.Equal(t, uuid.NullUUID{UUID: inv.ID, Valid: true}, plan.Order.InvoiceID)

	require.Len(t, plan.LineItems, 2)
	for _, li := range plan.LineItems {
		assert.Equal(t, lineitem.InvoiceOwner(inv.ID), li.Owner)
	}

	// inputs are left untouched
	assert.False(t, inv.Scanned)
	assert.False(t, inv.Linked)
	assert.True(t, o.IsPending())
}

func TestDecideFlagsDiscrepancy(t *testing.T) {
	inv := newInvoice()
	o := newOrder(baseTime, syringes(), gloves())

	plan, err := Decide(inv, []*order.Order{o}, []lineitem.Input{gloves(), syringes()})
	require.NoError(t, err)

	assert.False(t, plan.LinksOrder())
	assert.Nil(t, plan.Order)
	assert.True(t, plan.Discrepancy)
	assert.True(t, plan.Invoice.Scanned)
	assert.False(t, plan.Invoice.Linked)
	assert.Equal(t, o.ID, plan.CandidateOrderID)
	require.Len(t, plan.LineItems, 2)
	assert.Equal(t, "Gloves M", plan.LineItems[0].ItemName)
}

func TestDecideComparesAgainstNewestPendingOrderOnly(t *testing.T) {
	inv := newInvoice()
	matching := newOrder(baseTime, gloves())
	newest := newOrder(baseTime.Add(time.Minute), syringes())

	plan, err := Decide(inv, []*order.Order{matching, newest}, []lineitem.Input{gloves()})
	require.NoError(t, err)
	assert.True(t, plan.Discrepancy)
	assert.Equal(t, newest.ID, plan.CandidateOrderID)
}

func TestDecideErrors(t *testing.T) {
	pending := []*order.Order{newOrder(baseTime, gloves())}

	t.Run("missing invoice", func(t *testing.T) {
		_, err := Decide(nil, pending, []lineitem.Input{gloves()})
		require.Error(t, err)
		assert.True(t, ierr.IsNotFound(err))
	})

	t.Run("already linked invoice", func(t *testing.T) {
		inv := newInvoice()
		inv.Scanned = true
		inv.Linked = true
		_, err := Decide(inv, pending, []lineitem.Input{gloves()})
		require.Error(t, err)
		assert.True(t, ierr.IsConflict(err))
	})

	t.Run("linked check precedes input validation", func(t *testing.T) {
		inv := newInvoice()
		inv.Scanned = true
		inv.Linked = true
		_, err := Decide(inv, nil, nil)
		require.Error(t, err)
		assert.True(t, ierr.IsConflict(err))
	})

	t.Run("empty submission", func(t *testing.T) {
		_, err := Decide(newInvoice(), pending, nil)
		require.Error(t, err)
		assert.True(t, ierr.IsValidation(err))
	})

	t.Run("invalid item", func(t *testing.T) {
		_, err := Decide(newInvoice(), pending, []lineitem.Input{{ItemName: "x", Quantity: 0}})
		require.Error(t, err)
		assert.True(t, ierr.IsValidation(err))
	})

	t.Run("no pending order", func(t *testing.T) {
		_, err := Decide(newInvoice(), nil, []lineitem.Input{gloves()})
		require.Error(t, err)
		assert.True(t, ierr.IsValidation(err))
	})
}

func TestDecideAllowsRescanOfScannedInvoice(t *testing.T) {
	inv := newInvoice()
	inv.Scanned = true
	o := newOrder(baseTime, gloves())

	plan, err := Decide(inv, []*order.Order{o}, []lineitem.Input{gloves()})
	require.NoError(t, err)
	assert.True(t, plan.Invoice.Linked)
}
