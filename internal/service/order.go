package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/hospitalsupply/supplyrecon/internal/api/dto"
	"github.com/hospitalsupply/supplyrecon/internal/domain/order"
	"github.com/hospitalsupply/supplyrecon/internal/reconcile"
	"github.com/samber/lo"
)

type OrderService interface {
	CreateOrder(ctx context.Context, req *dto.CreateOrderRequest) (*dto.OrderResponse, error)
	GetOrder(ctx context.Context, id uuid.UUID) (*dto.OrderResponse, error)
	ListOrders(ctx context.Context) (*dto.ListOrdersResponse, error)
}

type orderService struct {
	ServiceParams
}

func NewOrderService(params ServiceParams) OrderService {
	return &orderService{ServiceParams: params}
}

// CreateOrder writes the order and its line items in one transaction
func (s *orderService) CreateOrder(ctx context.Context, req *dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	o := req.ToOrder()

	err := s.DB.WithTx(ctx, func(txCtx context.Context) error {
		n, err := s.OrderRepo.Create(txCtx, o)
		if err := reconcile.ExpectRows(stepCreateOrder, "orders", 1, n, err); err != nil {
			return err
		}

		n, err = s.LineItemRepo.InsertBatch(txCtx, o.LineItems)
		return reconcile.ExpectRows(stepInsertOrderItems, "line_items", int64(len(o.LineItems)), n, err)
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("order created",
		"order_id", o.ID,
		"supplier_name", o.SupplierName,
		"line_items", len(o.LineItems),
	)

	return dto.NewOrderResponse(o), nil
}

func (s *orderService) GetOrder(ctx context.Context, id uuid.UUID) (*dto.OrderResponse, error) {
	o, err := s.OrderRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewOrderResponse(o), nil
}

func (s *orderService) ListOrders(ctx context.Context) (*dto.ListOrdersResponse, error) {
	orders, err := s.OrderRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewListResponse(lo.Map(orders, func(o *order.Order, _ int) *dto.OrderResponse {
		return dto.NewOrderResponse(o)
	})), nil
}
