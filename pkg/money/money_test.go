package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestLineTotal(t *testing.T) {
	assert.Equal(t, "40", LineTotal(20, decimal.RequireFromString("2.00")).String())
	assert.Equal(t, "3.7", LineTotal(3, decimal.RequireFromString("1.2345")).String())
}

func TestComputeTotals(t *testing.T) {
	totals := ComputeTotals(
		[]decimal.Decimal{decimal.RequireFromString("10.10"), decimal.RequireFromString("0.205")},
		decimal.RequireFromString("1.004"),
		decimal.RequireFromString("5"),
	)

	assert.True(t, totals.Subtotal.Equal(decimal.RequireFromString("10.31")), totals.Subtotal.String())
	assert.True(t, totals.Tax.Equal(decimal.RequireFromString("1.00")))
	assert.True(t, totals.Shipping.Equal(decimal.NewFromInt(5)))
	assert.True(t, totals.Total.Equal(decimal.RequireFromString("16.31")), totals.Total.String())
}
