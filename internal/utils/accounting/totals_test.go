package accounting_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twinxhq/twinx-pos/internal/core/domain"
	"github.com/twinxhq/twinx-pos/internal/utils/accounting"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCalculateTotals_SingleLineWithTax(t *testing.T) {
	lines := []domain.CartLine{
		{Quantity: d("2"), UnitPrice: d("19.99"), TaxPercent: d("15")},
	}

	totals, err := accounting.CalculateTotals(lines, decimal.Zero)
	require.NoError(t, err)

	assert.True(t, totals.Subtotal.Equal(d("39.98")), "subtotal was %s", totals.Subtotal)
	assert.True(t, totals.DiscountAmount.Equal(d("0")), "discount was %s", totals.DiscountAmount)
	assert.True(t, totals.TaxAmount.Equal(d("6.00")), "tax was %s", totals.TaxAmount)
	assert.True(t, totals.GrandTotal.Equal(d("45.98")), "grand total was %s", totals.GrandTotal)
	assert.Equal(t, 1, totals.ItemCount)
	require.Len(t, totals.Lines, 1)
	assert.True(t, totals.Lines[0].Total.Equal(d("45.98")))
}

func TestCalculateTotals_LineDiscountPercentBeatsFixedAmount(t *testing.T) {
	// When a percentage is given, the fixed amount is ignored.
	lines := []domain.CartLine{
		{Quantity: d("1"), UnitPrice: d("100"), DiscountPercent: d("10"), DiscountAmount: d("50")},
	}

	totals, err := accounting.CalculateTotals(lines, decimal.Zero)
	require.NoError(t, err)

	assert.True(t, totals.DiscountAmount.Equal(d("10.00")), "discount was %s", totals.DiscountAmount)
	assert.True(t, totals.GrandTotal.Equal(d("90.00")), "grand total was %s", totals.GrandTotal)
}

func TestCalculateTotals_TaxAppliesAfterLineDiscount(t *testing.T) {
	lines := []domain.CartLine{
		{Quantity: d("1"), UnitPrice: d("100"), DiscountAmount: d("20"), TaxPercent: d("10")},
	}

	totals, err := accounting.CalculateTotals(lines, decimal.Zero)
	require.NoError(t, err)

	// Tax on 80, not 100.
	assert.True(t, totals.TaxAmount.Equal(d("8.00")), "tax was %s", totals.TaxAmount)
	assert.True(t, totals.GrandTotal.Equal(d("88.00")), "grand total was %s", totals.GrandTotal)
}

func TestCalculateTotals_CartDiscountOnTopOfLineDiscounts(t *testing.T) {
	lines := []domain.CartLine{
		{Quantity: d("2"), UnitPrice: d("50")},
		{Quantity: d("1"), UnitPrice: d("100"), DiscountAmount: d("10")},
	}

	totals, err := accounting.CalculateTotals(lines, d("5"))
	require.NoError(t, err)

	// 5% of the 200 cart subtotal plus the 10 line discount.
	assert.True(t, totals.Subtotal.Equal(d("200.00")), "subtotal was %s", totals.Subtotal)
	assert.True(t, totals.DiscountAmount.Equal(d("20.00")), "discount was %s", totals.DiscountAmount)
	assert.True(t, totals.GrandTotal.Equal(d("180.00")), "grand total was %s", totals.GrandTotal)
}

func TestCalculateTotals_RejectsNonPositiveQuantity(t *testing.T) {
	lines := []domain.CartLine{
		{Quantity: decimal.Zero, UnitPrice: d("10")},
	}

	_, err := accounting.CalculateTotals(lines, decimal.Zero)
	assert.Error(t, err)
}

func TestCalculateTotals_RejectsNegativeUnitPrice(t *testing.T) {
	lines := []domain.CartLine{
		{Quantity: d("1"), UnitPrice: d("-1")},
	}

	_, err := accounting.CalculateTotals(lines, decimal.Zero)
	assert.Error(t, err)
}

func TestCalculateTotals_RejectsNegativeDiscountAmount(t *testing.T) {
	// A negative fixed discount would inflate the grand total.
	lines := []domain.CartLine{
		{Quantity: d("1"), UnitPrice: d("10.00"), DiscountAmount: d("-5.00")},
	}

	_, err := accounting.CalculateTotals(lines, decimal.Zero)
	assert.Error(t, err)
}

func TestCalculateTotals_RejectsNegativeDiscountPercent(t *testing.T) {
	lines := []domain.CartLine{
		{Quantity: d("1"), UnitPrice: d("10.00"), DiscountPercent: d("-10")},
	}

	_, err := accounting.CalculateTotals(lines, decimal.Zero)
	assert.Error(t, err)
}

func TestCalculateTotals_RejectsNegativeTaxPercent(t *testing.T) {
	// A negative tax rate would deflate the grand total.
	lines := []domain.CartLine{
		{Quantity: d("1"), UnitPrice: d("10.00"), TaxPercent: d("-50")},
	}

	_, err := accounting.CalculateTotals(lines, decimal.Zero)
	assert.Error(t, err)
}

func TestCalculateTotals_RejectsDiscountExceedingLine(t *testing.T) {
	lines := []domain.CartLine{
		{Quantity: d("1"), UnitPrice: d("10"), DiscountAmount: d("11")},
	}

	_, err := accounting.CalculateTotals(lines, decimal.Zero)
	assert.Error(t, err)
}

func TestCalculateTotals_RejectsCartDiscountOutOfRange(t *testing.T) {
	lines := []domain.CartLine{
		{Quantity: d("1"), UnitPrice: d("10")},
	}

	_, err := accounting.CalculateTotals(lines, d("101"))
	assert.Error(t, err)

	_, err = accounting.CalculateTotals(lines, d("-1"))
	assert.Error(t, err)
}

func TestProportionalRefund(t *testing.T) {
	// Returning 1 of 3 units sold for 10.00 total.
	refund := accounting.ProportionalRefund(d("10.00"), d("3"), d("1"))
	assert.True(t, refund.Equal(d("3.33")), "refund was %s", refund)

	// Full return refunds the full total.
	refund = accounting.ProportionalRefund(d("10.00"), d("3"), d("3"))
	assert.True(t, refund.Equal(d("10.00")), "refund was %s", refund)

	// Degenerate original quantity refunds nothing.
	refund = accounting.ProportionalRefund(d("10.00"), decimal.Zero, d("1"))
	assert.True(t, refund.IsZero())
}

func TestDiscountPercentOf(t *testing.T) {
	pct := accounting.DiscountPercentOf(d("20"), d("200"))
	assert.True(t, pct.Equal(d("10.00")), "percent was %s", pct)

	assert.True(t, accounting.DiscountPercentOf(d("20"), decimal.Zero).IsZero())
}
