package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/hospitalsupply/supplyrecon/internal/domain/invoice"
	ierr "github.com/hospitalsupply/supplyrecon/internal/errors"
	"github.com/hospitalsupply/supplyrecon/internal/logger"
	"github.com/hospitalsupply/supplyrecon/internal/postgres"
)

type invoiceRow struct {
	ID          uuid.UUID `db:"id"`
	FileName    string    `db:"file_name"`
	FileData    []byte    `db:"file_data"`
	ContentType string    `db:"content_type"`
	DateCreated time.Time `db:"date_created"`
	Scanned     bool      `db:"scanned"`
	Linked      bool      `db:"linked"`
}

type invoiceRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewInvoiceRepository(db *postgres.DB, logger *logger.Logger) invoice.Repository {
	return &invoiceRepository{db: db, logger: logger}
}

func (r *invoiceRepository) Create(ctx context.Context, inv *invoice.Invoice) (int64, error) {
	if err := inv.Validate(); err != nil {
		return 0, err
	}

	query := `
		INSERT INTO invoices (
			id, file_name, file_data, content_type, date_created, scanned, linked
		) VALUES (
			:id, :file_name, :file_data, :content_type, :date_created, :scanned, :linked
		)`

	r.logger.Debugw("creating invoice",
		"invoice_id", inv.ID,
		"file_name", inv.FileName,
		"size_bytes", len(inv.FileData),
	)

	result, err := r.db.NamedExecContext(ctx, query, invoiceRow{
		ID:          inv.ID,
		FileName:    inv.FileName,
		FileData:    inv.FileData,
		ContentType: inv.ContentType,
		DateCreated: inv.DateCreated,
		Scanned:     inv.Scanned,
		Linked:      inv.Linked,
	})
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ierr.WithError(err).
				WithHintf("Invoice %s already exists", inv.ID).
				WithReportableDetails(map[string]any{"invoice_id": inv.ID}).
				Mark(ierr.ErrAlreadyExists)
		}
		return 0, ierr.WithError(err).
			WithHint("Failed to create invoice").
			WithReportableDetails(map[string]any{"invoice_id": inv.ID}).
			Mark(ierr.ErrDatabase)
	}
	return rowsAffected(result)
}

func (r *invoiceRepository) Get(ctx context.Context, id uuid.UUID) (*invoice.Invoice, error) {
	var row invoiceRow
	query := `SELECT id, file_name, file_data, content_type, date_created, scanned, linked FROM invoices WHERE id = ?`
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ierr.WithError(err).
				WithHintf("Invoice %s not found", id).
				WithReportableDetails(map[string]any{"invoice_id": id}).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).WithHint("Failed to get invoice").Mark(ierr.ErrDatabase)
	}

	return &invoice.Invoice{
		ID:          row.ID,
		FileName:    row.FileName,
		FileData:    row.FileData,
		ContentType: row.ContentType,
		DateCreated: row.DateCreated,
		Scanned:     row.Scanned,
		Linked:      row.Linked,
	}, nil
}

func (r *invoiceRepository) Update(ctx context.Context, inv *invoice.Invoice) (int64, error) {
	if err := inv.Validate(); err != nil {
		return 0, err
	}

	r.logger.Debugw("updating invoice",
		"invoice_id", inv.ID,
		"scanned", inv.Scanned,
		"linked", inv.Linked,
	)

	result, err := r.db.ExecContext(ctx,
		`UPDATE invoices SET scanned = ?, linked = ? WHERE id = ? AND linked = ?`,
		inv.Scanned, inv.Linked, inv.ID, false,
	)
	if err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to update invoice").
			WithReportableDetails(map[string]any{"invoice_id": inv.ID}).
			Mark(ierr.ErrDatabase)
	}
	return rowsAffected(result)
}

func (r *invoiceRepository) ListSummaries(ctx context.Context) ([]*invoice.Summary, error) {
	var rows []invoiceRow
	query := `SELECT id, file_name, content_type, date_created, scanned, linked FROM invoices ORDER BY date_created DESC, id ASC`
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, ierr.WithError(err).WithHint("Failed to list invoices").Mark(ierr.ErrDatabase)
	}

	summaries := make([]*invoice.Summary, 0, len(rows))
	for _, row := range rows {
		summaries = append(summaries, &invoice.Summary{
			ID:          row.ID,
			FileName:    row.FileName,
			ContentType: row.ContentType,
			DateCreated: row.DateCreated,
			Scanned:     row.Scanned,
			Linked:      row.Linked,
		})
	}
	return summaries, nil
}
