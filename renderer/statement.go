package renderer

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/etnz/statements"
)

// SnapshotMarkdown renders the identification and the records of a snapshot.
// Empty record lists are omitted.
func SnapshotMarkdown(s *statements.Snapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Statement %s\n\n", s.AccountID())
	tableHeader(&b, "Field", "Value")
	tableRow(&b, "Client", s.ClientName())
	tableRow(&b, "Account", s.AccountID())
	if !s.StartDate.IsZero() {
		tableRow(&b, "Start", s.StartDate)
	}
	tableRow(&b, "Sources", strings.Join(s.Sources, ", "))
	fmt.Fprintln(&b)

	ConditionalBlock(&b, func(w io.Writer) bool {
		fmt.Fprintf(w, "## Cash Flows\n\n")
		tableHeader(w, "Date", "Venue", "Description", ">Credit", ">Debit", ">Net")
		for _, c := range s.Cashflows {
			tableRow(w, c.Date, c.Venue, c.Description, c.Credit, c.Debit, c.Net.SignedString())
		}
		fmt.Fprintln(w)
		return len(s.Cashflows) > 0
	})

	ConditionalBlock(&b, func(w io.Writer) bool {
		fmt.Fprintf(w, "## Equity Trades\n\n")
		tableHeader(w, "Time", "Security", "ISIN", "Side", ">Shares", ">Price", ">Amount", ">Accrued", ">Fees", "ID")
		for _, t := range s.EquityTrades {
			tableRow(w, t.TradeTime.Format(time.DateTime), t.SecurityName, t.ISIN, t.Side, t.Shares,
				t.UnitPrice, t.Amount.SignedString(), t.AccruedCoupon.SignedString(), t.Fees().SignedString(), t.TradeID)
		}
		fmt.Fprintln(w)
		return len(s.EquityTrades) > 0
	})

	ConditionalBlock(&b, func(w io.Writer) bool {
		fmt.Fprintf(w, "## FX Trades\n\n")
		tableHeader(w, "Time", "Instrument", "Side", ">Strike", ">Underlying", ">Settlement", ">Fees", "ID")
		for _, t := range s.FxTrades {
			tableRow(w, t.TradeTime.Format(time.DateTime), t.Instrument, t.Side, t.Strike,
				t.Underlying.SignedString(), t.Settlement.SignedString(), t.Fees().SignedString(), t.TradeID)
		}
		fmt.Fprintln(w)
		return len(s.FxTrades) > 0
	})

	return b.String()
}
