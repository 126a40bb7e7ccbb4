package types

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

// Price is a monetary amount that tolerates the backend's loose typing: the
// same field may arrive as a JSON number or as a numeric string ("2.50").
// Amounts are held as decimals so line subtotals stay exact.
type Price struct {
	dec decimal.Decimal
}

func (p *Price) UnmarshalJSON(data []byte) error {
	raw := bytes.TrimSpace(data)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		p.dec = decimal.Zero
		return nil
	}
	if raw[0] == '"' {
		unquoted, err := strconv.Unquote(string(raw))
		if err != nil {
			return fmt.Errorf("invalid price %s: %w", raw, err)
		}
		if unquoted == "" {
			p.dec = decimal.Zero
			return nil
		}
		value, err := decimal.NewFromString(unquoted)
		if err != nil {
			return fmt.Errorf("invalid price %q: %w", unquoted, err)
		}
		p.dec = value
		return nil
	}
	value, err := decimal.NewFromString(string(raw))
	if err != nil {
		return fmt.Errorf("invalid price %s: %w", raw, err)
	}
	p.dec = value
	return nil
}

// MarshalJSON emits a bare number; the backend stores prices numerically.
func (p Price) MarshalJSON() ([]byte, error) {
	return []byte(p.dec.String()), nil
}

func (p Price) Float64() float64 {
	f, _ := p.dec.Float64()
	return f
}

// Cents returns the amount in integer cents, rounded half away from zero.
func (p Price) Cents() int64 {
	return p.dec.Shift(2).Round(0).IntPart()
}

func (p Price) Positive() bool {
	return p.dec.IsPositive()
}

// Times returns the price multiplied by a quantity.
func (p Price) Times(qty int) Price {
	return Price{dec: p.dec.Mul(decimal.NewFromInt(int64(qty)))}
}

func FromCents(cents int64) Price {
	return Price{dec: decimal.NewFromInt(cents).Shift(-2)}
}

// String formats the amount with two decimals for display.
func (p Price) String() string {
	return p.dec.StringFixed(2)
}
