package dto

import (
	"time"

	"github.com/hospitalsupply/supplyrecon/internal/domain/lineitem"
	"github.com/hospitalsupply/supplyrecon/internal/domain/order"
	"github.com/hospitalsupply/supplyrecon/internal/types"
	"github.com/hospitalsupply/supplyrecon/internal/validator"
)

type CreateOrderRequest struct {
	SupplierName string           `json:"supplier_name" validate:"required,max=255"`
	LineItems    []lineitem.Input `json:"line_items" validate:"required,min=1,dive"`
}

func (r *CreateOrderRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	return lineitem.ValidateInputs(r.LineItems)
}

// ToOrder builds a pending order whose line items keep the request order
func (r *CreateOrderRequest) ToOrder() *order.Order {
	o := &order.Order{
		ID:           types.NewEntityID(),
		SupplierName: r.SupplierName,
		DateCreated:  time.Now().UTC().Truncate(time.Microsecond),
	}
	o.LineItems = lineitem.FromInputs(r.LineItems, lineitem.OrderOwner(o.ID))
	return o
}

type OrderResponse struct {
	*order.Order
}

func NewOrderResponse(o *order.Order) *OrderResponse {
	return &OrderResponse{Order: o}
}

type ListOrdersResponse = ListResponse[*OrderResponse]
