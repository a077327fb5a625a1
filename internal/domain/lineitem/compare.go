package lineitem

import "github.com/shopspring/decimal"

// Equivalent reports whether a and b hold the same line items in the same
// order. Position i of a is compared with position i of b only; no reordering
// is attempted. IDs and owners are ignored.
func Equivalent(a, b []*LineItem) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !sameItem(a[i], b[i]) {
			return false
		}
	}
	return true
}

func sameItem(x, y *LineItem) bool {
	if x == nil || y == nil {
		return x == y
	}
	return x.ItemName == y.ItemName &&
		x.Quantity == y.Quantity &&
		sameAmount(x.Amount, y.Amount) &&
		sameCode(x.CurrencyCode, y.CurrencyCode)
}

func sameAmount(x, y decimal.NullDecimal) bool {
	if x.Valid != y.Valid {
		return false
	}
	return !x.Valid || x.Decimal.Equal(y.Decimal)
}

func sameCode(x, y *string) bool {
	if x == nil || y == nil {
		return x == y
	}
	return *x == *y
}
