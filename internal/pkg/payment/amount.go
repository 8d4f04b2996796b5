package payment

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Bounds applied before rounding. The decimal parser accepts exponents up to
// 2^31, and rescaling such a value allocates a huge big.Int.
const (
	maxAmountLength   = 64
	maxAmountExponent = 18
)

var (
	maxMinorUnits = decimal.NewFromInt(math.MaxInt64)
	minMinorUnits = decimal.NewFromInt(math.MinInt64)
)

// ParseAmount converts a major-unit decimal string like "10.50" into minor
// units. Extra fractional digits are rounded half to even.
func ParseAmount(text string) (int64, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return 0, fmt.Errorf("%w: empty", ErrInvalidAmount)
	}
	if len(s) > maxAmountLength {
		return 0, fmt.Errorf("%w: too long", ErrInvalidAmount)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if exp := d.Exponent(); exp > maxAmountExponent || exp < -maxAmountExponent {
		return 0, fmt.Errorf("%w: %q out of range", ErrInvalidAmount, s)
	}
	minor := d.RoundBank(2).Shift(2)
	if minor.GreaterThan(maxMinorUnits) || minor.LessThan(minMinorUnits) {
		return 0, fmt.Errorf("%w: %q out of range", ErrInvalidAmount, s)
	}
	return minor.IntPart(), nil
}
