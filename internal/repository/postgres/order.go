package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/hospitalsupply/supplyrecon/internal/domain/lineitem"
	"github.com/hospitalsupply/supplyrecon/internal/domain/order"
	ierr "github.com/hospitalsupply/supplyrecon/internal/errors"
	"github.com/hospitalsupply/supplyrecon/internal/logger"
	"github.com/hospitalsupply/supplyrecon/internal/postgres"
	"github.com/samber/lo"
)

const orderColumns = `id, supplier_name, invoice_id, date_created`

type orderRow struct {
	ID           uuid.UUID     `db:"id"`
	SupplierName string        `db:"supplier_name"`
	InvoiceID    uuid.NullUUID `db:"invoice_id"`
	DateCreated  time.Time     `db:"date_created"`
}

func (r orderRow) toDomain(items []*lineitem.LineItem) *order.Order {
	if items == nil {
		items = []*lineitem.LineItem{}
	}
	return &order.Order{
		ID:           r.ID,
		SupplierName: r.SupplierName,
		InvoiceID:    r.InvoiceID,
		DateCreated:  r.DateCreated,
		LineItems:    items,
	}
}

type orderRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewOrderRepository(db *postgres.DB, logger *logger.Logger) order.Repository {
	return &orderRepository{db: db, logger: logger}
}

func (r *orderRepository) Create(ctx context.Context, o *order.Order) (int64, error) {
	query := `
		INSERT INTO orders (
			id, supplier_name, invoice_id, date_created
		) VALUES (
			:id, :supplier_name, :invoice_id, :date_created
		)`

	r.logger.Debugw("creating order", "order_id", o.ID, "supplier_name", o.SupplierName)

	result, err := r.db.NamedExecContext(ctx, query, orderRow{
		ID:           o.ID,
		SupplierName: o.SupplierName,
		InvoiceID:    o.InvoiceID,
		DateCreated:  o.DateCreated,
	})
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ierr.WithError(err).
				WithHintf("Order %s already exists", o.ID).
				WithReportableDetails(map[string]any{"order_id": o.ID}).
				Mark(ierr.ErrAlreadyExists)
		}
		return 0, ierr.WithError(err).
			WithHint("Failed to create order").
			WithReportableDetails(map[string]any{"order_id": o.ID}).
			Mark(ierr.ErrDatabase)
	}
	return rowsAffected(result)
}

func (r *orderRepository) Get(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	var row orderRow
	err := r.db.GetContext(ctx, &row, `SELECT `+orderColumns+` FROM orders WHERE id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ierr.WithError(err).
				WithHintf("Order %s not found", id).
				WithReportableDetails(map[string]any{"order_id": id}).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).WithHint("Failed to get order").Mark(ierr.ErrDatabase)
	}

	orders, err := r.withLineItems(ctx, []orderRow{row})
	if err != nil {
		return nil, err
	}
	return orders[0], nil
}

func (r *orderRepository) List(ctx context.Context) ([]*order.Order, error) {
	var rows []orderRow
	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY date_created DESC, id ASC`
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, ierr.WithError(err).WithHint("Failed to list orders").Mark(ierr.ErrDatabase)
	}
	return r.withLineItems(ctx, rows)
}

func (r *orderRepository) GetPendingOrders(ctx context.Context) ([]*order.Order, error) {
	var rows []orderRow
	query := `SELECT ` + orderColumns + ` FROM orders WHERE invoice_id IS NULL ORDER BY date_created DESC, id ASC`
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, ierr.WithError(err).WithHint("Failed to list pending orders").Mark(ierr.ErrDatabase)
	}
	return r.withLineItems(ctx, rows)
}

func (r *orderRepository) Update(ctx context.Context, o *order.Order) (int64, error) {
	if !o.InvoiceID.Valid {
		return 0, ierr.NewError("order update without invoice link").
			WithHint("Only the invoice link of an order can be updated").
			WithReportableDetails(map[string]any{"order_id": o.ID}).
			Mark(ierr.ErrInvalidOperation)
	}

	r.logger.Debugw("linking order", "order_id", o.ID, "invoice_id", o.InvoiceID.UUID)

	result, err := r.db.ExecContext(ctx,
		`UPDATE orders SET invoice_id = ? WHERE id = ? AND invoice_id IS NULL`,
		o.InvoiceID, o.ID,
	)
	if err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to update order").
			WithReportableDetails(map[string]any{"order_id": o.ID}).
			Mark(ierr.ErrDatabase)
	}
	return rowsAffected(result)
}

func (r *orderRepository) withLineItems(ctx context.Context, rows []orderRow) ([]*order.Order, error) {
	ids := lo.Map(rows, func(row orderRow, _ int) uuid.UUID { return row.ID })
	items, err := loadOrderLineItems(ctx, r.db, ids)
	if err != nil {
		return nil, err
	}
	return lo.Map(rows, func(row orderRow, _ int) *order.Order {
		return row.toDomain(items[row.ID])
	}), nil
}
