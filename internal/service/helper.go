package service

import (
	"github.com/hospitalsupply/supplyrecon/internal/reconcile"
)

// Write steps outside reconciliation, checked the same way
const (
	stepCreateInvoice    reconcile.Step = "create_invoice"
	stepCreateOrder      reconcile.Step = "create_order"
	stepInsertOrderItems reconcile.Step = "insert_order_line_items"
)
