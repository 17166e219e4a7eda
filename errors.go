package statements

import (
	"errors"
	"fmt"
)

// ErrTradeID is returned when a trade identifier cannot be interpreted as an integer.
var ErrTradeID = errors.New("trade id is not an integer")

// ValidationError reports a record violating its sign conventions.
type ValidationError struct {
	Record  string // kind of record: "equity trade", "fx trade" or "cash flow"
	TradeID string // empty for cash flows
	Reason  string
}

func (e *ValidationError) Error() string {
	if e.TradeID == "" {
		return fmt.Sprintf("invalid %s: %s", e.Record, e.Reason)
	}
	return fmt.Sprintf("invalid %s: %s. trade_id=%s", e.Record, e.Reason, e.TradeID)
}
