package postgres

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hospitalsupply/supplyrecon/internal/domain/invoice"
	"github.com/hospitalsupply/supplyrecon/internal/domain/lineitem"
	"github.com/hospitalsupply/supplyrecon/internal/domain/order"
	"github.com/hospitalsupply/supplyrecon/internal/logger"
	"github.com/hospitalsupply/supplyrecon/internal/postgres"
	"github.com/hospitalsupply/supplyrecon/internal/testutil"
	"github.com/hospitalsupply/supplyrecon/migrations"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var testTime = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

type testStore struct {
	db        *postgres.DB
	orders    order.Repository
	invoices  invoice.Repository
	lineItems lineitem.Repository
	ctx       context.Context
}

// createTestStore opens a migrated sqlite database in a temp dir. The same
// SQL runs against postgres in production; only the schema file differs.
func createTestStore(t *testing.T) *testStore {
	t.Helper()

	conn, err := sqlx.Open("sqlite3", filepath.Join(t.TempDir(), "supplyrecon.db"))
	require.NoError(t, err)
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = conn.Close() })

	ctx := testutil.SetupContext()
	_, err = migrations.Apply(ctx, conn.DB, conn.DriverName())
	require.NoError(t, err)

	log := logger.NewNopLogger()
	db := postgres.New(conn, log, sql.LevelDefault)

	return &testStore{
		db:        db,
		orders:    NewOrderRepository(db, log),
		invoices:  NewInvoiceRepository(db, log),
		lineItems: NewLineItemRepository(db, log),
		ctx:       ctx,
	}
}

func (s *testStore) seedOrder(t *testing.T, created time.Time, inputs ...lineitem.Input) *order.Order {
	t.Helper()
	o := &order.Order{
		ID:           uuid.New(),
		SupplierName: "Medline",
		DateCreated:  created,
	}
	o.LineItems = lineitem.FromInputs(inputs, lineitem.OrderOwner(o.ID))

	err := s.db.WithTx(s.ctx, func(ctx context.Context) error {
		if _, err := s.orders.Create(ctx, o); err != nil {
			return err
		}
		_, err := s.lineItems.InsertBatch(ctx, o.LineItems)
		return err
	})
	require.NoError(t, err)
	return o
}

func (s *testStore) seedInvoice(t *testing.T) *invoice.Invoice {
	t.Helper()
	inv := &invoice.Invoice{
		ID:          uuid.New(),
		FileName:    "invoice.pdf",
		FileData:    []byte("%PDF-1.4"),
		ContentType: "application/pdf",
		DateCreated: testTime,
	}
	n, err := s.invoices.Create(s.ctx, inv)
	require.NoError(t, err)
	require.Equal(t, int64(1), n)
	return inv
}

func gauze(qty int) lineitem.Input {
	return lineitem.Input{ItemName: "Gauze", Quantity: qty}
}

func priced(name string, qty int, amount, code string) lineitem.Input {
	return lineitem.Input{
		ItemName:       name,
		Quantity:       qty,
		CurrencyAmount: lo.ToPtr(decimal.RequireFromString(amount)),
		CurrencyCode:   lo.ToPtr(code),
	}
}
