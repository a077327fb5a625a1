package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/hospitalsupply/supplyrecon/internal/domain/lineitem"
	ierr "github.com/hospitalsupply/supplyrecon/internal/errors"
	"github.com/hospitalsupply/supplyrecon/internal/logger"
	"github.com/hospitalsupply/supplyrecon/internal/postgres"
	"github.com/jmoiron/sqlx"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

const lineItemColumns = `id, item_name, quantity, currency_amount, currency_code, order_id, invoice_id`

// lineItemRow is the stored shape: the owner is split over two nullable keys
type lineItemRow struct {
	ID             int64               `db:"id"`
	ItemName       string              `db:"item_name"`
	Quantity       int                 `db:"quantity"`
	CurrencyAmount decimal.NullDecimal `db:"currency_amount"`
	CurrencyCode   *string             `db:"currency_code"`
	OrderID        uuid.NullUUID       `db:"order_id"`
	InvoiceID      uuid.NullUUID       `db:"invoice_id"`
}

func newLineItemRow(li *lineitem.LineItem) lineItemRow {
	orderID, invoiceID := li.Owner.Columns()
	return lineItemRow{
		ItemName:       li.ItemName,
		Quantity:       li.Quantity,
		CurrencyAmount: li.Amount,
		CurrencyCode:   li.CurrencyCode,
		OrderID:        orderID,
		InvoiceID:      invoiceID,
	}
}

func (r lineItemRow) toDomain() (*lineitem.LineItem, error) {
	owner, err := lineitem.OwnerFromColumns(r.OrderID, r.InvoiceID)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Stored line item has an invalid owner").
			WithReportableDetails(map[string]any{"line_item_id": r.ID}).
			Mark(ierr.ErrDatabase)
	}
	return &lineitem.LineItem{
		ID:           r.ID,
		ItemName:     r.ItemName,
		Quantity:     r.Quantity,
		Amount:       r.CurrencyAmount,
		CurrencyCode: r.CurrencyCode,
		Owner:        owner,
	}, nil
}

type lineItemRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewLineItemRepository(db *postgres.DB, logger *logger.Logger) lineitem.Repository {
	return &lineItemRepository{db: db, logger: logger}
}

func (r *lineItemRepository) InsertBatch(ctx context.Context, items []*lineitem.LineItem) (int64, error) {
	if len(items) == 0 {
		return 0, nil
	}

	owner := items[0].Owner
	if owner.IsZero() {
		return 0, ierr.NewError("line item has no owner").
			WithHint("Line items must belong to an order or an invoice").
			Mark(ierr.ErrValidation)
	}
	for _, li := range items[1:] {
		if li.Owner != owner {
			return 0, ierr.NewError("line items belong to different owners").
				WithHint("A batch of line items must share a single owner").
				WithReportableDetails(map[string]any{
					"expected_owner": owner.String(),
					"found_owner":    li.Owner.String(),
				}).
				Mark(ierr.ErrValidation)
		}
	}

	r.logger.Debugw("inserting line items", "owner", owner.String(), "count", len(items))

	rows := lo.Map(items, func(li *lineitem.LineItem, _ int) lineItemRow { return newLineItemRow(li) })
	query := `
		INSERT INTO line_items (
			item_name, quantity, currency_amount, currency_code, order_id, invoice_id
		) VALUES (
			:item_name, :quantity, :currency_amount, :currency_code, :order_id, :invoice_id
		)`

	result, err := r.db.NamedExecContext(ctx, query, rows)
	if err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to insert line items").
			WithReportableDetails(map[string]any{"owner": owner.String()}).
			Mark(ierr.ErrDatabase)
	}
	return rowsAffected(result)
}

func (r *lineItemRepository) ListByOwner(ctx context.Context, owner lineitem.Owner) ([]*lineitem.LineItem, error) {
	column := "order_id"
	if owner.Kind() == lineitem.OwnerKindInvoice {
		column = "invoice_id"
	}

	var rows []lineItemRow
	query := `SELECT ` + lineItemColumns + ` FROM line_items WHERE ` + column + ` = ? ORDER BY id ASC`
	if err := r.db.SelectContext(ctx, &rows, query, owner.ID()); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list line items").
			WithReportableDetails(map[string]any{"owner": owner.String()}).
			Mark(ierr.ErrDatabase)
	}
	return toLineItems(rows)
}

// loadOrderLineItems fetches the line items of many orders in one query,
// grouped by order id and kept in insertion order
func loadOrderLineItems(ctx context.Context, db *postgres.DB, orderIDs []uuid.UUID) (map[uuid.UUID][]*lineitem.LineItem, error) {
	grouped := make(map[uuid.UUID][]*lineitem.LineItem, len(orderIDs))
	if len(orderIDs) == 0 {
		return grouped, nil
	}

	query, args, err := sqlx.In(`SELECT `+lineItemColumns+` FROM line_items WHERE order_id IN (?) ORDER BY id ASC`, orderIDs)
	if err != nil {
		return nil, ierr.WithError(err).WithHint("Failed to build line item query").Mark(ierr.ErrSystem)
	}

	var rows []lineItemRow
	if err := db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, ierr.WithError(err).WithHint("Failed to load order line items").Mark(ierr.ErrDatabase)
	}

	items, err := toLineItems(rows)
	if err != nil {
		return nil, err
	}
	for _, li := range items {
		id, _ := li.Owner.OrderID()
		grouped[id] = append(grouped[id], li)
	}
	return grouped, nil
}

func toLineItems(rows []lineItemRow) ([]*lineitem.LineItem, error) {
	items := make([]*lineitem.LineItem, 0, len(rows))
	for _, row := range rows {
		li, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		items = append(items, li)
	}
	return items, nil
}
