// Package reconcile matches a scanned invoice against the most recent pending
// order and applies the outcome to both records in one transaction.
package reconcile

import (
	"github.com/google/uuid"
	"github.com/hospitalsupply/supplyrecon/internal/domain/invoice"
	"github.com/hospitalsupply/supplyrecon/internal/domain/lineitem"
	"github.com/hospitalsupply/supplyrecon/internal/domain/order"
	ierr "github.com/hospitalsupply/supplyrecon/internal/errors"
)

// Plan is the set of writes decided for one submission
type Plan struct {
	// Invoice carries the new scanned/linked flags
	Invoice *invoice.Invoice
	// LineItems are the submitted items, owned by Invoice, in submission order
	LineItems []*lineitem.LineItem
	// Order is set only when the invoice links; it carries the new link
	Order *order.Order
	// CandidateOrderID is the pending order the items were compared against
	CandidateOrderID uuid.UUID
	Discrepancy      bool
}

// LinksOrder reports whether the plan writes the order link
func (p *Plan) LinksOrder() bool {
	return p.Order != nil
}

// SelectPendingOrder returns the unlinked order created last. Orders created
// at the same instant are ordered by id ascending.
func SelectPendingOrder(orders []*order.Order) (*order.Order, error) {
	var selected *order.Order
	for _, o := range orders {
		if o == nil || !o.IsPending() {
			continue
		}
		if selected == nil || newer(o, selected) {
			selected = o
		}
	}

	if selected == nil {
		return nil, ierr.NewError("no pending order").
			WithHint("There is no unlinked order to reconcile this invoice against").
			Mark(ierr.ErrValidation)
	}
	return selected, nil
}

func newer(a, b *order.Order) bool {
	if !a.DateCreated.Equal(b.DateCreated) {
		return a.DateCreated.After(b.DateCreated)
	}
	return a.ID.String() < b.ID.String()
}

// Decide compares the submitted items with the selected pending order and
// returns the writes to apply. It performs no I/O and never mutates its
// arguments.
func Decide(inv *invoice.Invoice, pending []*order.Order, submitted []lineitem.Input) (*Plan, error) {
	if inv == nil {
		return nil, ierr.NewError("invoice not found").
			WithHint("Invoice not found").
			Mark(ierr.ErrNotFound)
	}

	if inv.Linked {
		return nil, ierr.NewError("invoice already linked").
			WithHintf("Invoice %s is already linked to an order", inv.ID).
			WithReportableDetails(map[string]any{"invoice_id": inv.ID}).
			Mark(ierr.ErrConflict)
	}

	if err := lineitem.ValidateInputs(submitted); err != nil {
		return nil, err
	}

	candidate, err := SelectPendingOrder(pending)
	if err != nil {
		return nil, err
	}

	items := lineitem.FromInputs(submitted, lineitem.InvoiceOwner(inv.ID))

	updated := inv.Copy()
	updated.Scanned = true

	plan := &Plan{
		Invoice:          updated,
		LineItems:        items,
		CandidateOrderID: candidate.ID,
	}

	if lineitem.Equivalent(candidate.LineItems, items) {
		updated.Linked = true

		linkedOrder := candidate.Copy()
		linkedOrder.InvoiceID = uuid.NullUUID{UUID: inv.ID, Valid: true}
		plan.Order = linkedOrder
		return plan, nil
	}

	updated.Linked = false
	plan.Discrepancy = true
	return plan, nil
}
