package service

import (
	"github.com/hospitalsupply/supplyrecon/internal/config"
	"github.com/hospitalsupply/supplyrecon/internal/domain/invoice"
	"github.com/hospitalsupply/supplyrecon/internal/domain/lineitem"
	"github.com/hospitalsupply/supplyrecon/internal/domain/order"
	"github.com/hospitalsupply/supplyrecon/internal/logger"
	"github.com/hospitalsupply/supplyrecon/internal/postgres"
	"github.com/hospitalsupply/supplyrecon/internal/workflow"
)

// ServiceParams holds common dependencies for services
type ServiceParams struct {
	Logger *logger.Logger
	Config *config.Configuration
	DB     postgres.IClient

	// Repositories
	OrderRepo    order.Repository
	InvoiceRepo  invoice.Repository
	LineItemRepo lineitem.Repository

	// Notifier
	WorkflowPublisher workflow.Publisher
}

func NewServiceParams(
	logger *logger.Logger,
	config *config.Configuration,
	db postgres.IClient,
	orderRepo order.Repository,
	invoiceRepo invoice.Repository,
	lineItemRepo lineitem.Repository,
	workflowPublisher workflow.Publisher,
) ServiceParams {
	return ServiceParams{
		Logger:            logger,
		Config:            config,
		DB:                db,
		OrderRepo:         orderRepo,
		InvoiceRepo:       invoiceRepo,
		LineItemRepo:      lineItemRepo,
		WorkflowPublisher: workflowPublisher,
	}
}
