package service

import (
	"testing"

	"github.com/hospitalsupply/supplyrecon/internal/api/dto"
	"github.com/hospitalsupply/supplyrecon/internal/domain/lineitem"
	ierr "github.com/hospitalsupply/supplyrecon/internal/errors"
	"github.com/hospitalsupply/supplyrecon/internal/testutil"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type OrderServiceSuite struct {
	testutil.BaseServiceTestSuite
	service OrderService
}

func TestOrderService(t *testing.T) {
	suite.Run(t, new(OrderServiceSuite))
}

func (s *OrderServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewOrderService(newTestParams(&s.BaseServiceTestSuite))
}

func newTestParams(base *testutil.BaseServiceTestSuite) ServiceParams {
	stores := base.GetStores()
	return NewServiceParams(
		base.GetLogger(),
		base.GetConfig(),
		base.GetDB(),
		stores.OrderRepo,
		stores.InvoiceRepo,
		stores.LineItemRepo,
		base.GetWorkflowPublisher(),
	)
}

func (s *OrderServiceSuite) TestCreateOrder() {
	resp, err := s.service.CreateOrder(s.GetContext(), &dto.CreateOrderRequest{
		SupplierName: "Medline",
		LineItems: []lineitem.Input{
			{ItemName: "Gauze", Quantity: 10},
			{
				ItemName:       "Syringe 5ml",
				Quantity:       100,
				CurrencyAmount: lo.ToPtr(decimal.RequireFromString("12.50")),
				CurrencyCode:   lo.ToPtr("EUR"),
			},
		},
	})
	s.Require().NoError(err)
	s.True(resp.IsPending())
	s.Equal(1, s.GetDB().Commits())

	stored, err := s.GetStores().OrderRepo.Get(s.GetContext(), resp.ID)
	s.Require().NoError(err)
	s.Equal("Medline", stored.SupplierName)
	s.Require().Len(stored.LineItems, 2)
	s.Equal("Gauze", stored.LineItems[0].ItemName)
	s.Equal("Syringe 5ml", stored.LineItems[1].ItemName)
	s.Equal(lineitem.OrderOwner(resp.ID), stored.LineItems[0].Owner)
}

func (s *OrderServiceSuite) TestCreateOrderValidation() {
	tests := []struct {
		name string
		req  *dto.CreateOrderRequest
	}{
		{
			name: "missing supplier",
			req: &dto.CreateOrderRequest{
				LineItems: []lineitem.Input{{ItemName: "Gauze", Quantity: 1}},
			},
		},
		{
			name: "no line items",
			req:  &dto.CreateOrderRequest{SupplierName: "Medline"},
		},
		{
			name: "non-positive quantity",
			req: &dto.CreateOrderRequest{
				SupplierName: "Medline",
				LineItems:    []lineitem.Input{{ItemName: "Gauze", Quantity: -1}},
			},
		},
		{
			name: "amount finer than the stored scale",
			req: &dto.CreateOrderRequest{
				SupplierName: "Medline",
				LineItems: []lineitem.Input{{
					ItemName:       "Gauze",
					Quantity:       1,
					CurrencyAmount: lo.ToPtr(decimal.RequireFromString("0.12345")),
					CurrencyCode:   lo.ToPtr("EUR"),
				}},
			},
		},
		{
			name: "amount beyond the stored precision",
			req: &dto.CreateOrderRequest{
				SupplierName: "Medline",
				LineItems: []lineitem.Input{{
					ItemName:       "Gauze",
					Quantity:       1,
					CurrencyAmount: lo.ToPtr(decimal.RequireFromString("123456789012345678.5")),
					CurrencyCode:   lo.ToPtr("EUR"),
				}},
			},
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := s.service.CreateOrder(s.GetContext(), tt.req)
			s.Require().Error(err)
			s.True(ierr.IsValidation(err))
		})
	}

	orders, err := s.service.ListOrders(s.GetContext())
	s.Require().NoError(err)
	s.Equal(0, orders.Total)
}

func (s *OrderServiceSuite) TestGetAndListOrders() {
	first, err := s.service.CreateOrder(s.GetContext(), &dto.CreateOrderRequest{
		SupplierName: "Medline",
		LineItems:    []lineitem.Input{{ItemName: "Gauze", Quantity: 1}},
	})
	s.Require().NoError(err)

	got, err := s.service.GetOrder(s.GetContext(), first.ID)
	s.Require().NoError(err)
	s.Equal(first.ID, got.ID)
	s.Len(got.LineItems, 1)

	list, err := s.service.ListOrders(s.GetContext())
	s.Require().NoError(err)
	s.Equal(1, list.Total)
	s.Equal(first.ID, list.Items[0].ID)

	_, err = s.service.GetOrder(s.GetContext(), missingID)
	s.Require().Error(err)
	s.True(ierr.IsNotFound(err))
}
