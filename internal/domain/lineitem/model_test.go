package lineitem

import (
	"math"
	"testing"

	"github.com/google/uuid"
	ierr "github.com/hospitalsupply/supplyrecon/internal/errors"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInputValidate(t *testing.T) {
	tests := []struct {
		name    string
		input   Input
		wantErr bool
	}{
		{
			name:  "name and quantity only",
			input: Input{ItemName: "Gauze", Quantity: 5},
		},
		{
			name: "with amount and code",
			input: Input{
				ItemName:       "Gauze",
				Quantity:       5,
				CurrencyAmount: lo.ToPtr(decimal.RequireFromString("9.99")),
				CurrencyCode:   lo.ToPtr("EUR"),
			},
		},
		{
			name:    "missing name",
			input:   Input{Quantity: 1},
			wantErr: true,
		},
		{
			name:    "zero quantity",
			input:   Input{ItemName: "Gauze"},
			wantErr: true,
		},
		{
			name:    "negative quantity",
			input:   Input{ItemName: "Gauze", Quantity: -2},
			wantErr: true,
		},
		{
			name: "amount without code",
			input: Input{
				ItemName:       "Gauze",
				Quantity:       1,
				CurrencyAmount: lo.ToPtr(decimal.NewFromInt(3)),
			},
			wantErr: true,
		},
		{
			name: "code without amount",
			input: Input{
				ItemName:     "Gauze",
				Quantity:     1,
				CurrencyCode: lo.ToPtr("EUR"),
			},
			wantErr: true,
		},
		{
			name: "unknown currency code",
			input: Input{
				ItemName:       "Gauze",
				Quantity:       1,
				CurrencyAmount: lo.ToPtr(decimal.NewFromInt(3)),
				CurrencyCode:   lo.ToPtr("EURO"),
			},
			wantErr: true,
		},
		{
			name: "negative amount",
			input: Input{
				ItemName:       "Gauze",
				Quantity:       1,
				CurrencyAmount: lo.ToPtr(decimal.NewFromInt(-3)),
				CurrencyCode:   lo.ToPtr("EUR"),
			},
			wantErr: true,
		},
		{
			name: "four decimal places",
			input: Input{
				ItemName:       "Gauze",
				Quantity:       1,
				CurrencyAmount: lo.ToPtr(decimal.RequireFromString("0.1234")),
				CurrencyCode:   lo.ToPtr("EUR"),
			},
		},
		{
			name: "trailing zeros beyond four places",
			input: Input{
				ItemName:       "Gauze",
				Quantity:       1,
				CurrencyAmount: lo.ToPtr(decimal.RequireFromString("1.100000")),
				CurrencyCode:   lo.ToPtr("EUR"),
			},
		},
		{
			name: "five decimal places",
			input: Input{
				ItemName:       "Gauze",
				Quantity:       1,
				CurrencyAmount: lo.ToPtr(decimal.RequireFromString("0.12345")),
				CurrencyCode:   lo.ToPtr("EUR"),
			},
			wantErr: true,
		},
		{
			name: "largest storable amount",
			input: Input{
				ItemName:       "Gauze",
				Quantity:       1,
				CurrencyAmount: lo.ToPtr(decimal.RequireFromString("999999999999999.9999")),
				CurrencyCode:   lo.ToPtr("EUR"),
			},
		},
		{
			name: "amount with sixteen integer digits",
			input: Input{
				ItemName:       "Gauze",
				Quantity:       1,
				CurrencyAmount: lo.ToPtr(decimal.RequireFromString("1000000000000000")),
				CurrencyCode:   lo.ToPtr("EUR"),
			},
			wantErr: true,
		},
		{
			name: "huge amount",
			input: Input{
				ItemName:       "Gauze",
				Quantity:       1,
				CurrencyAmount: lo.ToPtr(decimal.RequireFromString("123456789012345678.5")),
				CurrencyCode:   lo.ToPtr("EUR"),
			},
			wantErr: true,
		},
		{
			name:  "largest storable quantity",
			input: Input{ItemName: "Gauze", Quantity: math.MaxInt32},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.input.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, ierr.IsValidation(err))
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValidateInputsRejectsEmptyList(t *testing.T) {
	err := ValidateInputs(nil)
	require.Error(t, err)
	assert.True(t, ierr.IsValidation(err))

	err = ValidateInputs([]Input{{ItemName: "Gauze", Quantity: 1}, {ItemName: "", Quantity: 1}})
	require.Error(t, err)
	assert.True(t, ierr.IsValidation(err))
}

func TestFromInputsKeepsOrderAndOwner(t *testing.T) {
	owner := InvoiceOwner(uuid.New())
	amount := decimal.RequireFromString("1.10")
	inputs := []Input{
		{ItemName: "first", Quantity: 1, CurrencyAmount: &amount, CurrencyCode: lo.ToPtr("USD")},
		{ItemName: "second", Quantity: 2},
	}

	items := FromInputs(inputs, owner)
	require.Len(t, items, 2)
	assert.Equal(t, "first", items[0].ItemName)
	assert.Equal(t, "second", items[1].ItemName)
	assert.Equal(t, owner, items[0].Owner)
	assert.Equal(t, owner, items[1].Owner)
	assert.True(t, items[0].Amount.Valid)
	assert.True(t, items[0].Amount.Decimal.Equal(amount))
	assert.False(t, items[1].Amount.Valid)
	assert.Nil(t, items[1].CurrencyCode)

	// the item must not alias the input's code
	*inputs[0].CurrencyCode = "EUR"
	assert.Equal(t, "USD", *items[0].CurrencyCode)
}

func TestOwnerColumnsRoundTrip(t *testing.T) {
	id := uuid.New()

	for _, owner := range []Owner{OrderOwner(id), InvoiceOwner(id)} {
		orderCol, invoiceCol := owner.Columns()
		back, err := OwnerFromColumns(orderCol, invoiceCol)
		require.NoError(t, err)
		assert.Equal(t, owner, back)
	}

	_, err := OwnerFromColumns(uuid.NullUUID{}, uuid.NullUUID{})
	assert.Error(t, err)

	both := uuid.NullUUID{UUID: id, Valid: true}
	_, err = OwnerFromColumns(both, both)
	assert.Error(t, err)

	assert.True(t, Owner{}.IsZero())
	orderID, ok := OrderOwner(id).OrderID()
	assert.True(t, ok)
	assert.Equal(t, id, orderID)
	_, ok = OrderOwner(id).InvoiceID()
	assert.False(t, ok)
}

func TestInputValidateRejectsQuantityBeyondInt32(t *testing.T) {
	if math.MaxInt == math.MaxInt32 {
		t.Skip("int is 32 bits")
	}
	quantity := int64(math.MaxInt32) + 1
	in := Input{ItemName: "Gauze", Quantity: int(quantity)}
	err := in.Validate()
	require.Error(t, err)
	assert.True(t, ierr.IsValidation(err))
}
