package repository

import (
	"github.com/hospitalsupply/supplyrecon/internal/domain/invoice"
	"github.com/hospitalsupply/supplyrecon/internal/domain/lineitem"
	"github.com/hospitalsupply/supplyrecon/internal/domain/order"
	"github.com/hospitalsupply/supplyrecon/internal/logger"
	"github.com/hospitalsupply/supplyrecon/internal/postgres"
	postgresRepo "github.com/hospitalsupply/supplyrecon/internal/repository/postgres"
)

func NewOrderRepository(db *postgres.DB, logger *logger.Logger) order.Repository {
	return postgresRepo.NewOrderRepository(db, logger)
}

func NewInvoiceRepository(db *postgres.DB, logger *logger.Logger) invoice.Repository {
	return postgresRepo.NewInvoiceRepository(db, logger)
}

func NewLineItemRepository(db *postgres.DB, logger *logger.Logger) lineitem.Repository {
	return postgresRepo.NewLineItemRepository(db, logger)
}
