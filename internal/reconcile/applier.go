package reconcile

import (
	"context"
	"fmt"

	"github.com/hospitalsupply/supplyrecon/internal/domain/invoice"
	"github.com/hospitalsupply/supplyrecon/internal/domain/lineitem"
	"github.com/hospitalsupply/supplyrecon/internal/domain/order"
	ierr "github.com/hospitalsupply/supplyrecon/internal/errors"
	"github.com/hospitalsupply/supplyrecon/internal/logger"
	"github.com/hospitalsupply/supplyrecon/internal/postgres"
)

// Step identifies one write of a plan
type Step string

const (
	StepUpdateInvoice   Step = "update_invoice"
	StepInsertLineItems Step = "insert_line_items"
	StepUpdateOrder     Step = "update_order"
)

// StepError reports the write that failed. Err is set when the driver
// failed; otherwise the write affected Observed rows instead of Expected.
type StepError struct {
	Step     Step
	Table    string
	Expected int64
	Observed int64
	Err      error
}

func (e *StepError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s on %s failed: %v", e.Step, e.Table, e.Err)
	}
	return fmt.Sprintf("%s on %s affected %d rows, expected %d", e.Step, e.Table, e.Observed, e.Expected)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// ApplyResult is what was committed
type ApplyResult struct {
	Invoice          *invoice.Invoice
	Order            *order.Order
	LineItemsWritten int64
	Discrepancy      bool
}

// Applier writes a plan atomically. It owns the transaction boundary; the
// repositories join the transaction through the context.
type Applier struct {
	db           postgres.IClient
	invoiceRepo  invoice.Repository
	orderRepo    order.Repository
	lineItemRepo lineitem.Repository
	logger       *logger.Logger
}

func NewApplier(
	db postgres.IClient,
	invoiceRepo invoice.Repository,
	orderRepo order.Repository,
	lineItemRepo lineitem.Repository,
	logger *logger.Logger,
) *Applier {
	return &Applier{
		db:           db,
		invoiceRepo:  invoiceRepo,
		orderRepo:    orderRepo,
		lineItemRepo: lineItemRepo,
		logger:       logger,
	}
}

// Apply runs the invoice update, the line item insert and, when the plan
// links, the order update in one transaction. The first failing step aborts
// the transaction; nothing is retried.
func (a *Applier) Apply(ctx context.Context, plan *Plan) (*ApplyResult, error) {
	if plan == nil || plan.Invoice == nil {
		return nil, ierr.NewError("empty reconciliation plan").
			WithHint("Nothing to apply").
			Mark(ierr.ErrInvalidOperation)
	}

	result := &ApplyResult{
		Invoice:     plan.Invoice,
		Order:       plan.Order,
		Discrepancy: plan.Discrepancy,
	}

	err := a.db.WithTx(ctx, func(txCtx context.Context) error {
		n, err := a.invoiceRepo.Update(txCtx, plan.Invoice)
		if err := ExpectRows(StepUpdateInvoice, "invoices", 1, n, err); err != nil {
			return err
		}

		expected := int64(len(plan.LineItems))
		n, err = a.lineItemRepo.InsertBatch(txCtx, plan.LineItems)
		if err := ExpectRows(StepInsertLineItems, "line_items", expected, n, err); err != nil {
			return err
		}
		result.LineItemsWritten = n

		if !plan.LinksOrder() {
			return nil
		}

		n, err = a.orderRepo.Update(txCtx, plan.Order)
		return ExpectRows(StepUpdateOrder, "orders", 1, n, err)
	})
	if err != nil {
		a.logger.Errorw("reconciliation rolled back",
			"invoice_id", plan.Invoice.ID,
			"order_id", plan.CandidateOrderID,
			"error", err,
		)
		return nil, err
	}

	a.logger.Infow("reconciliation applied",
		"invoice_id", plan.Invoice.ID,
		"order_id", plan.CandidateOrderID,
		"linked", plan.Invoice.Linked,
		"line_items", result.LineItemsWritten,
	)

	return result, nil
}

// ExpectRows turns a write result into a step error. A driver error keeps its
// own classification; a row count other than expected is a persistence
// failure.
func ExpectRows(step Step, table string, expected, observed int64, err error) error {
	if err != nil {
		return ierr.WithError(&StepError{Step: step, Table: table, Expected: expected, Err: err}).
			WithStep(string(step), table).
			WithHintf("Write step %s failed", step).
			Error()
	}

	if observed != expected {
		return ierr.WithError(&StepError{Step: step, Table: table, Expected: expected, Observed: observed}).
			WithStep(string(step), table).
			WithHintf("Write step %s affected %d rows, expected %d", step, observed, expected).
			WithReportableDetails(map[string]any{
				"expected": expected,
				"observed": observed,
			}).
			Mark(ierr.ErrPersistence)
	}

	return nil
}
