package statements

import (
	"github.com/etnz/statements/date"
	"github.com/shopspring/decimal"
)

// Cashflow is one money movement of a statement.
//
// Cash flows have no identifier: two entries are the same if all their fields
// are equal.
type Cashflow struct {
	Date        date.Date
	Venue       string // sub-account where the flow happened, e.g. equity market or fx market
	Description string
	Currency    string
	Credit      Money // amount that came into the account, never negative
	Debit       Money // amount that went out of the account, never negative
	Net         Money // Credit - Debit
}

// NewCashflow creates a Cashflow from the unsigned credit and debit amounts.
func NewCashflow(on date.Date, venue, description, currency string, credit, debit decimal.Decimal) (Cashflow, error) {
	if credit.IsNegative() {
		return Cashflow{}, &ValidationError{Record: "cash flow", Reason: "credit must not be negative: " + description}
	}
	if debit.IsNegative() {
		return Cashflow{}, &ValidationError{Record: "cash flow", Reason: "debit must not be negative: " + description}
	}
	return Cashflow{
		Date:        on,
		Venue:       venue,
		Description: description,
		Currency:    currency,
		Credit:      M(credit, currency),
		Debit:       M(debit, currency),
		Net:         M(credit.Sub(debit), currency),
	}, nil
}

// Equal reports whether both cash flows have the same fields.
func (c Cashflow) Equal(o Cashflow) bool {
	return c.Date == o.Date && c.Venue == o.Venue && c.Description == o.Description &&
		c.Currency == o.Currency && c.Credit.Equal(o.Credit) && c.Debit.Equal(o.Debit)
}

// MarshalJSON implements the json.Marshaler interface for Cashflow.
func (c Cashflow) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("date", c.Date)
	w.Append("venue", c.Venue)
	w.Append("description", c.Description)
	w.Append("currency", c.Currency)
	w.Append("credit", c.Credit.Decimal())
	w.Append("debit", c.Debit.Decimal())
	w.Append("net", c.Net.Decimal())
	return w.MarshalJSON()
}
