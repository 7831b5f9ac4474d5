package accounting

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/twinxhq/twinx-pos/internal/core/domain"
)

var hundred = decimal.NewFromInt(100)

// CalculateTotals computes the monetary summary of a cart. It is a pure
// function: no reads, no writes.
//
// Per line: subtotal = quantity * unit price; the discount is
// percentage-of-line-subtotal when a percentage is given, otherwise the
// explicit fixed amount; tax applies to the post-discount amount. The
// cart-level discount is an explicit parameter applied to the cart subtotal.
// Final amounts are rounded half-up to 2 decimal places; header totals are
// rounded from the unrounded accumulation so line rounding cannot drift them.
func CalculateTotals(lines []domain.CartLine, cartDiscountPercent decimal.Decimal) (domain.SaleTotals, error) {
	subtotal := decimal.Zero
	totalDiscount := decimal.Zero
	totalTax := decimal.Zero
	lineTotals := make([]domain.LineTotals, 0, len(lines))

	for i, line := range lines {
		if line.Quantity.LessThanOrEqual(decimal.Zero) {
			return domain.SaleTotals{}, fmt.Errorf("line %d: quantity must be positive", i)
		}
		if line.UnitPrice.IsNegative() {
			return domain.SaleTotals{}, fmt.Errorf("line %d: unit price must not be negative", i)
		}
		if line.DiscountAmount.IsNegative() {
			return domain.SaleTotals{}, fmt.Errorf("line %d: discount amount must not be negative", i)
		}
		if line.DiscountPercent.IsNegative() || line.DiscountPercent.GreaterThan(hundred) {
			return domain.SaleTotals{}, fmt.Errorf("line %d: discount percent %s out of range", i, line.DiscountPercent.String())
		}
		if line.TaxPercent.IsNegative() {
			return domain.SaleTotals{}, fmt.Errorf("line %d: tax percent must not be negative", i)
		}

		lineSubtotal := line.Quantity.Mul(line.UnitPrice)

		lineDiscount := line.DiscountAmount
		if line.DiscountPercent.IsPositive() {
			lineDiscount = lineSubtotal.Mul(line.DiscountPercent).Div(hundred)
		}
		if lineDiscount.GreaterThan(lineSubtotal) {
			return domain.SaleTotals{}, fmt.Errorf("line %d: discount exceeds line subtotal", i)
		}

		afterDiscount := lineSubtotal.Sub(lineDiscount)
		lineTax := afterDiscount.Mul(line.TaxPercent).Div(hundred)

		subtotal = subtotal.Add(lineSubtotal)
		totalDiscount = totalDiscount.Add(lineDiscount)
		totalTax = totalTax.Add(lineTax)

		lineTotals = append(lineTotals, domain.LineTotals{
			Subtotal:       lineSubtotal.Round(2),
			DiscountAmount: lineDiscount.Round(2),
			TaxAmount:      lineTax.Round(2),
			Total:          afterDiscount.Add(lineTax).Round(2),
		})
	}

	if cartDiscountPercent.IsNegative() || cartDiscountPercent.GreaterThan(hundred) {
		return domain.SaleTotals{}, fmt.Errorf("cart discount percent %s out of range", cartDiscountPercent.String())
	}
	if cartDiscountPercent.IsPositive() {
		totalDiscount = totalDiscount.Add(subtotal.Mul(cartDiscountPercent).Div(hundred))
	}

	grandTotal := subtotal.Sub(totalDiscount).Add(totalTax)

	return domain.SaleTotals{
		Subtotal:       subtotal.Round(2),
		DiscountAmount: totalDiscount.Round(2),
		TaxAmount:      totalTax.Round(2),
		GrandTotal:     grandTotal.Round(2),
		ItemCount:      len(lines),
		Lines:          lineTotals,
	}, nil
}

// ProportionalRefund computes the refund amount for returning returnQty units
// out of a line originally sold with originalQty units for originalTotal.
func ProportionalRefund(originalTotal, originalQty, returnQty decimal.Decimal) decimal.Decimal {
	if originalQty.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return originalTotal.Mul(returnQty).Div(originalQty).Round(2)
}

// DiscountPercentOf derives the effective header discount percentage from the
// discount amount and subtotal, for the denormalized sales column.
func DiscountPercentOf(discountAmount, subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return discountAmount.Div(subtotal).Mul(hundred).Round(2)
}
