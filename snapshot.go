package statements

import (
	"strings"

	"github.com/etnz/statements/date"
)

// Snapshot is one unit of account history: a parsed statement, or the merge
// of several of them.
//
// A Snapshot is never modified once created, Merge builds new ones.
type Snapshot struct {
	Clients      []string // client names, in first-seen order
	Accounts     []string // account ids, in first-seen order
	Sources      []string // source file identifiers, in first-seen order
	StartDate    date.Date
	Cashflows    []Cashflow
	EquityTrades []EquityTrade
	FxTrades     []FxTrade
}

// NewSnapshot returns the Snapshot of a single statement.
func NewSnapshot(source, client, account string, start date.Date, cashflows []Cashflow, equities []EquityTrade, fxs []FxTrade) *Snapshot {
	return &Snapshot{
		Clients:      []string{client},
		Accounts:     []string{account},
		Sources:      []string{source},
		StartDate:    start,
		Cashflows:    cashflows,
		EquityTrades: equities,
		FxTrades:     fxs,
	}
}

// ClientName returns the comma separated client names.
func (s *Snapshot) ClientName() string { return strings.Join(s.Clients, ", ") }

// AccountID returns the comma separated account ids.
func (s *Snapshot) AccountID() string { return strings.Join(s.Accounts, ", ") }

// Source returns the comma separated source identifiers.
func (s *Snapshot) Source() string { return strings.Join(s.Sources, ", ") }

// MarshalJSON writes the snapshot header, records are encoded by EncodeSnapshot.
func (s *Snapshot) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("clients", s.Clients)
	w.Append("accounts", s.Accounts)
	w.Append("sources", s.Sources)
	w.Optional("startDate", s.StartDate)
	w.Append("cashflows", len(s.Cashflows))
	w.Append("equityTrades", len(s.EquityTrades))
	w.Append("fxTrades", len(s.FxTrades))
	return w.MarshalJSON()
}
