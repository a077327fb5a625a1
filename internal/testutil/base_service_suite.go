package testutil

import (
	"context"
	"time"

	"github.com/hospitalsupply/supplyrecon/internal/config"
	"github.com/hospitalsupply/supplyrecon/internal/domain/invoice"
	"github.com/hospitalsupply/supplyrecon/internal/domain/lineitem"
	"github.com/hospitalsupply/supplyrecon/internal/domain/order"
	"github.com/hospitalsupply/supplyrecon/internal/logger"
	"github.com/hospitalsupply/supplyrecon/internal/pubsub"
	"github.com/hospitalsupply/supplyrecon/internal/pubsub/memory"
	"github.com/hospitalsupply/supplyrecon/internal/types"
	"github.com/hospitalsupply/supplyrecon/internal/validator"
	"github.com/hospitalsupply/supplyrecon/internal/workflow"
	"github.com/stretchr/testify/suite"
)

// Stores holds all the repository interfaces for testing
type Stores struct {
	OrderRepo    order.Repository
	InvoiceRepo  invoice.Repository
	LineItemRepo lineitem.Repository
}

// BaseServiceTestSuite provides common functionality for all service test suites
type BaseServiceTestSuite struct {
	suite.Suite
	ctx       context.Context
	stores    Stores
	pubSub    pubsub.PubSub
	publisher workflow.Publisher
	db        *MockPostgresClient
	logger    *logger.Logger
	config    *config.Configuration
	now       time.Time
}

// SetupSuite is called once before running the tests in the suite
func (s *BaseServiceTestSuite) SetupSuite() {
	validator.GetValidator()

	cfg := config.GetDefaultConfig()
	cfg.Logging.Level = types.LogLevelInfo
	cfg.Workflow.Enabled = true
	cfg.Workflow.TriggerURL = "http://robot.test/trigger"

	var err error
	s.config = cfg
	s.logger, err = logger.NewLogger(cfg)
	if err != nil {
		s.T().Fatalf("failed to create logger: %v", err)
	}
}

// SetupTest is called before each test
func (s *BaseServiceTestSuite) SetupTest() {
	s.ctx = SetupContext()
	s.setupStores()
	s.now = time.Now().UTC().Truncate(time.Microsecond)
}

// TearDownTest is called after each test
func (s *BaseServiceTestSuite) TearDownTest() {
	s.clearStores()
	if s.pubSub != nil {
		_ = s.pubSub.Close()
	}
}

func (s *BaseServiceTestSuite) setupStores() {
	lineItems := NewInMemoryLineItemStore()
	orders := NewInMemoryOrderStore(lineItems)
	invoices := NewInMemoryInvoiceStore()

	s.stores = Stores{
		OrderRepo:    orders,
		InvoiceRepo:  invoices,
		LineItemRepo: lineItems,
	}

	s.db = NewMockPostgresClient(s.logger, orders, invoices, lineItems)
	s.pubSub = memory.NewPubSub(s.logger)
	s.publisher = workflow.NewPublisher(s.pubSub, s.config, s.logger)
}

func (s *BaseServiceTestSuite) clearStores() {
	s.stores.OrderRepo.(*InMemoryOrderStore).Clear()
	s.stores.InvoiceRepo.(*InMemoryInvoiceStore).Clear()
	s.stores.LineItemRepo.(*InMemoryLineItemStore).Clear()
}

func (s *BaseServiceTestSuite) ClearStores() {
	s.clearStores()
}

// GetContext returns the test context
func (s *BaseServiceTestSuite) GetContext() context.Context {
	return s.ctx
}

// GetConfig returns the test configuration
func (s *BaseServiceTestSuite) GetConfig() *config.Configuration {
	return s.config
}

// GetStores returns all test repositories
func (s *BaseServiceTestSuite) GetStores() Stores {
	return s.stores
}

// GetPubSub returns the in-memory pubsub behind the workflow publisher
func (s *BaseServiceTestSuite) GetPubSub() pubsub.PubSub {
	return s.pubSub
}

// GetWorkflowPublisher returns the test workflow publisher
func (s *BaseServiceTestSuite) GetWorkflowPublisher() workflow.Publisher {
	return s.publisher
}

// GetDB returns the test database client
func (s *BaseServiceTestSuite) GetDB() *MockPostgresClient {
	return s.db
}

// GetLogger returns the test logger
func (s *BaseServiceTestSuite) GetLogger() *logger.Logger {
	return s.logger
}

// GetNow returns the current test time
func (s *BaseServiceTestSuite) GetNow() time.Time {
	return s.now
}
