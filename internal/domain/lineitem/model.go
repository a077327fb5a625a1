package lineitem

import (
	ierr "github.com/hospitalsupply/supplyrecon/internal/errors"
	"github.com/hospitalsupply/supplyrecon/internal/validator"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// LineItem is one product entry of an order or an invoice. Line items are
// written once and never edited.
type LineItem struct {
	ID           int64               `json:"id"`
	ItemName     string              `json:"item_name"`
	Quantity     int                 `json:"quantity"`
	Amount       decimal.NullDecimal `json:"currency_amount" swaggertype:"string"`
	CurrencyCode *string             `json:"currency_code"`
	Owner        Owner               `json:"-"`
}

// AmountScale and maxAmount mirror the NUMERIC(19, 4) amount column
const AmountScale = 4

var maxAmount = decimal.New(1, 19-AmountScale)

// Input is a line item as submitted by a client, before it has an owner
type Input struct {
	ItemName       string           `json:"item_name" validate:"required"`
	Quantity       int              `json:"quantity" validate:"required,gt=0,lte=2147483647"`
	CurrencyAmount *decimal.Decimal `json:"currency_amount,omitempty" swaggertype:"string"`
	CurrencyCode   *string          `json:"currency_code,omitempty" validate:"omitempty,iso4217"`
}

func (in *Input) Validate() error {
	if err := validator.ValidateRequest(in); err != nil {
		return err
	}

	if (in.CurrencyAmount == nil) != (in.CurrencyCode == nil) {
		return ierr.NewError("currency amount and code must be provided together").
			WithHint("Provide both currency_amount and currency_code, or neither").
			WithReportableDetails(map[string]any{
				"item_name": in.ItemName,
			}).
			Mark(ierr.ErrValidation)
	}

	if in.CurrencyAmount != nil && in.CurrencyAmount.IsNegative() {
		return ierr.NewError("currency amount is negative").
			WithHint("Currency amount cannot be negative").
			WithReportableDetails(map[string]any{
				"item_name":       in.ItemName,
				"currency_amount": in.CurrencyAmount.String(),
			}).
			Mark(ierr.ErrValidation)
	}

	if in.CurrencyAmount != nil && !in.CurrencyAmount.Equal(in.CurrencyAmount.Round(AmountScale)) {
		return ierr.NewError("currency amount has too many decimal places").
			WithHintf("Currency amount can have at most %d decimal places", AmountScale).
			WithReportableDetails(map[string]any{
				"item_name":       in.ItemName,
				"currency_amount": in.CurrencyAmount.String(),
			}).
			Mark(ierr.ErrValidation)
	}

	if in.CurrencyAmount != nil && in.CurrencyAmount.Abs().GreaterThanOrEqual(maxAmount) {
		return ierr.NewError("currency amount is too large").
			WithHintf("Currency amount must be less than %s", maxAmount.String()).
			WithReportableDetails(map[string]any{
				"item_name":       in.ItemName,
				"currency_amount": in.CurrencyAmount.String(),
			}).
			Mark(ierr.ErrValidation)
	}

	return nil
}

// ToLineItem stamps the input with its owner
func (in *Input) ToLineItem(owner Owner) *LineItem {
	item := &LineItem{
		ItemName: in.ItemName,
		Quantity: in.Quantity,
		Owner:    owner,
	}
	if in.CurrencyAmount != nil {
		item.Amount = decimal.NewNullDecimal(*in.CurrencyAmount)
	}
	if in.CurrencyCode != nil {
		item.CurrencyCode = lo.ToPtr(*in.CurrencyCode)
	}
	return item
}

// ValidateInputs checks every input and rejects an empty list
func ValidateInputs(inputs []Input) error {
	if len(inputs) == 0 {
		return ierr.NewError("no line items submitted").
			WithHint("At least one line item is required").
			Mark(ierr.ErrValidation)
	}
	for i := range inputs {
		if err := inputs[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

// FromInputs converts inputs in submission order, all owned by owner
func FromInputs(inputs []Input, owner Owner) []*LineItem {
	return lo.Map(inputs, func(in Input, _ int) *LineItem {
		return in.ToLineItem(owner)
	})
}

// Copy returns a deep copy of the line item
func (li *LineItem) Copy() *LineItem {
	if li == nil {
		return nil
	}
	c := *li
	if li.CurrencyCode != nil {
		c.CurrencyCode = lo.ToPtr(*li.CurrencyCode)
	}
	return &c
}

// CopyAll deep copies a slice of line items
func CopyAll(items []*LineItem) []*LineItem {
	if items == nil {
		return nil
	}
	return lo.Map(items, func(li *LineItem, _ int) *LineItem { return li.Copy() })
}
