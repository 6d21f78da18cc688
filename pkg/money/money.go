// Package money holds currency helpers. Amounts are decimals rounded to cents.
package money

import "github.com/shopspring/decimal"

// Round rounds an amount to 2 decimal places (half away from zero)
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// LineTotal returns quantity × unitPrice rounded to cents
func LineTotal(quantity int, unitPrice decimal.Decimal) decimal.Decimal {
	return Round(unitPrice.Mul(decimal.NewFromInt(int64(quantity))))
}

// Totals is the header arithmetic of a purchase order
type Totals struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Shipping decimal.Decimal
	Total    decimal.Decimal
}

// ComputeTotals sums line totals and adds tax and shipping
func ComputeTotals(lineTotals []decimal.Decimal, tax, shipping decimal.Decimal) Totals {
	subtotal := decimal.Zero
	for _, lt := range lineTotals {
		subtotal = subtotal.Add(lt)
	}
	return Totals{
		Subtotal: Round(subtotal),
		Tax:      Round(tax),
		Shipping: Round(shipping),
		Total:    Round(subtotal.Add(tax).Add(shipping)),
	}
}
