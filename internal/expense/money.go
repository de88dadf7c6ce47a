package expense

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Money is a monetary amount in cents.
type Money int64

// MaxAmount bounds every amount and budget, in either direction, so that
// sums over any realistic ledger stay within int64.
const MaxAmount Money = 1_000_000_000_000

var (
	hundred  = decimal.NewFromInt(100)
	maxCents = decimal.NewFromInt(int64(MaxAmount))
)

// ParseMoney parses a decimal amount such as "25.50" or "25,50" into cents,
// rounding half away from zero on the third decimal place.
func ParseMoney(s string) (Money, error) {
	clean := strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	if clean == "" {
		return 0, &ValidationError{Field: "amount", Reason: "missing amount"}
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return 0, &ValidationError{Field: "amount", Reason: fmt.Sprintf("%q is not a number", s)}
	}

	return FromDecimal(d)
}

// FromDecimal converts a decimal amount into cents. Amounts beyond
// MaxAmount are rejected.
func FromDecimal(d decimal.Decimal) (Money, error) {
	cents := d.Mul(hundred).Round(0)
	if cents.Abs().GreaterThan(maxCents) {
		return 0, &ValidationError{Field: "amount", Reason: "out of range"}
	}

	return Money(cents.IntPart()), nil
}

// Decimal returns the amount as a decimal with two fractional digits.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(int64(m), -2)
}

// String formats the amount with exactly two decimals.
func (m Money) String() string {
	return m.Decimal().StringFixed(2)
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.Decimal().String()), nil
}

// UnmarshalJSON accepts both JSON numbers and numeric strings.
func (m *Money) UnmarshalJSON(data []byte) error {
	var raw json.Number
	if err := json.Unmarshal(data, &raw); err != nil {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("unmarshal amount: %w", err)
		}

		raw = json.Number(s)
	}

	parsed, err := ParseMoney(raw.String())
	if err != nil {
		return err
	}

	*m = parsed

	return nil
}
