package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/hospitalsupply/supplyrecon/internal/domain/lineitem"
)

// Order is a purchase order. InvoiceID stays empty until reconciliation links
// an invoice, after which it never changes.
type Order struct {
	ID           uuid.UUID            `json:"id"`
	SupplierName string               `json:"supplier_name"`
	InvoiceID    uuid.NullUUID        `json:"invoice_id" swaggertype:"string"`
	DateCreated  time.Time            `json:"date_created"`
	LineItems    []*lineitem.LineItem `json:"line_items"`
}

// IsPending reports whether the order still waits for an invoice
func (o *Order) IsPending() bool {
	return !o.InvoiceID.Valid
}

// Copy returns a deep copy, line items included
func (o *Order) Copy() *Order {
	if o == nil {
		return nil
	}
	c := *o
	c.LineItems = lineitem.CopyAll(o.LineItems)
	return &c
}
