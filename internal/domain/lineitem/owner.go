package lineitem

import (
	"fmt"

	"github.com/google/uuid"
)

// OwnerKind names the parent table a line item hangs off
type OwnerKind string

const (
	OwnerKindOrder   OwnerKind = "order"
	OwnerKindInvoice OwnerKind = "invoice"
)

// Owner is the single parent of a line item: an order or an invoice, never
// both. The zero value owns nothing and is rejected by the repository.
type Owner struct {
	kind OwnerKind
	id   uuid.UUID
}

// OrderOwner returns an owner pointing at the given order
func OrderOwner(orderID uuid.UUID) Owner {
	return Owner{kind: OwnerKindOrder, id: orderID}
}

// InvoiceOwner returns an owner pointing at the given invoice
func InvoiceOwner(invoiceID uuid.UUID) Owner {
	return Owner{kind: OwnerKindInvoice, id: invoiceID}
}

func (o Owner) Kind() OwnerKind { return o.kind }

func (o Owner) ID() uuid.UUID { return o.id }

func (o Owner) IsZero() bool {
	return o.kind == "" || o.id == uuid.Nil
}

// OrderID returns the order id when the owner is an order
func (o Owner) OrderID() (uuid.UUID, bool) {
	return o.id, o.kind == OwnerKindOrder
}

// InvoiceID returns the invoice id when the owner is an invoice
func (o Owner) InvoiceID() (uuid.UUID, bool) {
	return o.id, o.kind == OwnerKindInvoice
}

func (o Owner) String() string {
	if o.IsZero() {
		return "none"
	}
	return fmt.Sprintf("%s:%s", o.kind, o.id)
}

// OwnerFromColumns rebuilds an owner from the two nullable foreign keys of a
// stored row. Exactly one of them must be set.
func OwnerFromColumns(orderID, invoiceID uuid.NullUUID) (Owner, error) {
	switch {
	case orderID.Valid && !invoiceID.Valid:
		return OrderOwner(orderID.UUID), nil
	case invoiceID.Valid && !orderID.Valid:
		return InvoiceOwner(invoiceID.UUID), nil
	default:
		return Owner{}, fmt.Errorf("line item must reference exactly one of order or invoice (order set: %t, invoice set: %t)",
			orderID.Valid, invoiceID.Valid)
	}
}

// Columns is the inverse of OwnerFromColumns
func (o Owner) Columns() (orderID, invoiceID uuid.NullUUID) {
	switch o.kind {
	case OwnerKindOrder:
		orderID = uuid.NullUUID{UUID: o.id, Valid: true}
	case OwnerKindInvoice:
		invoiceID = uuid.NullUUID{UUID: o.id, Valid: true}
	}
	return orderID, invoiceID
}
