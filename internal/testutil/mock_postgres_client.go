package testutil

import (
	"context"
	"sync"

	"github.com/hospitalsupply/supplyrecon/internal/logger"
	"github.com/hospitalsupply/supplyrecon/internal/postgres"
	"github.com/hospitalsupply/supplyrecon/internal/types"
)

var _ postgres.IClient = (*MockPostgresClient)(nil) // Ensure MockPostgresClient implements IClient

// Snapshotter is a store whose contents can be captured and restored
type Snapshotter interface {
	Snapshot() func()
}

type mockTxKey struct{}

// MockPostgresClient gives the in-memory stores transaction semantics:
// every store is snapshotted when the outermost WithTx begins and restored
// when the function fails.
type MockPostgresClient struct {
	logger *logger.Logger
	stores []Snapshotter

	mu        sync.Mutex
	commits   int
	rollbacks int
}

// NewMockPostgresClient creates a new mock postgres client
func NewMockPostgresClient(logger *logger.Logger, stores ...Snapshotter) *MockPostgresClient {
	return &MockPostgresClient{
		logger: logger,
		stores: stores,
	}
}

// WithTx executes the given function within a transaction
func (c *MockPostgresClient) WithTx(ctx context.Context, fn func(context.Context) error) (err error) {
	// If we're already in a transaction, reuse it
	if _, ok := ctx.Value(mockTxKey{}).(string); ok {
		return fn(ctx)
	}

	restores := make([]func(), 0, len(c.stores))
	for _, s := range c.stores {
		restores = append(restores, s.Snapshot())
	}

	txID := types.GenerateUUIDWithPrefix(types.UUID_PREFIX_TRANSACTION)
	txCtx := context.WithValue(ctx, mockTxKey{}, txID)

	rollback := func() {
		for _, restore := range restores {
			restore()
		}
		c.mu.Lock()
		c.rollbacks++
		c.mu.Unlock()
		c.logger.Debugw("rolled back mock transaction", "tx_id", txID)
	}

	defer func() {
		if p := recover(); p != nil {
			rollback()
			panic(p)
		}
	}()

	if err = fn(txCtx); err != nil {
		rollback()
		return err
	}

	c.mu.Lock()
	c.commits++
	c.mu.Unlock()
	return nil
}

// Commits returns how many outermost transactions committed
func (c *MockPostgresClient) Commits() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.commits
}

// Rollbacks returns how many outermost transactions rolled back
func (c *MockPostgresClient) Rollbacks() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rollbacks
}
