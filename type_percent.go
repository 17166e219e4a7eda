package statements

import (
	"fmt"

	"github.com/shopspring/decimal"
)

type Percent float64

// ratioReturn returns (|value/invested| - 1) in percent, or 0 if nothing was invested.
func ratioReturn(value, invested decimal.Decimal) Percent {
	if invested.IsZero() {
		return 0
	}
	r := value.Div(invested).Abs().Sub(decimal.NewFromInt(1)).Mul(decimal.NewFromInt(100))
	return Percent(r.InexactFloat64())
}

func (p Percent) Equal(q Percent) bool {
	// it has to be compared with some precision
	const precision = 0.0001
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", p)
}

func (p Percent) SignedString() string {
	res := fmt.Sprintf("%+.2f%%", p)
	if res == "+0.00%" {
		return "-"
	}
	return res
}
