package domain

import "github.com/shopspring/decimal"

var (
	hundred = decimal.NewFromInt(100)
	half    = decimal.NewFromFloat(0.5)
)

// PercentOff is a display-only discount: round((original-current)/original*100).
// Returns 0 unless both values parse and are positive. Halves round up.
func PercentOff(original, current Amount) int {
	o, ok := original.Decimal()
	if !ok || !o.IsPositive() {
		return 0
	}
	c, ok := current.Decimal()
	if !ok || !c.IsPositive() {
		return 0
	}
	pct := o.Sub(c).Div(o).Mul(hundred)
	return int(pct.Add(half).Floor().IntPart())
}

// FormatPrice renders a dollar amount with two decimals, $0.00 when unparsable.
func FormatPrice(a Amount) string {
	d, ok := a.Decimal()
	if !ok {
		d = decimal.Zero
	}
	return "$" + d.StringFixed(2)
}
