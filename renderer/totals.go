package renderer

import (
	"fmt"
	"io"
	"strings"

	"github.com/etnz/statements"
)

// TotalsMarkdown renders the cash flow, currency exchange and equity totals of
// a merged snapshot. Fees are booked in the domestic currency.
func TotalsMarkdown(s *statements.Snapshot, domestic string) string {
	cf := statements.CashflowTotals(s)
	fx := statements.FxTotals(s, domestic)
	eq := statements.EquityTotals(s, domestic)

	var b strings.Builder
	fmt.Fprintf(&b, "# Totals of %s\n\n", s.AccountID())

	ConditionalBlock(&b, func(w io.Writer) bool {
		fmt.Fprintf(w, "## Cash Flows\n\n")
		tableHeader(w, "Venue", "Currency", ">Net", ">Own Money")
		for _, venue := range cf.Total.Venues() {
			for _, ccy := range cf.Total[venue].Currencies() {
				tableRow(w, venue, ccy, cf.Total.Get(venue, ccy).SignedString(), cf.OwnMoney.Get(venue, ccy).SignedString())
			}
		}
		fmt.Fprintln(w)
		return len(cf.Total) > 0
	})

	ConditionalBlock(&b, func(w io.Writer) bool {
		fmt.Fprintf(w, "## Currency Exchange\n\n")
		tableHeader(w, "Currency", ">Net", ">Average Strike")
		for _, ccy := range fx.Net.Currencies() {
			strike := "-"
			if avg, ok := fx.AverageStrike[ccy]; ok {
				strike = avg.StringFixed(4)
			}
			tableRow(w, ccy, fx.Net.Get(ccy).SignedString(), strike)
		}
		fmt.Fprintf(w, "\nFees: %s\n\n", fx.Fees.SignedString())
		return len(s.FxTrades) > 0
	})

	ConditionalBlock(&b, func(w io.Writer) bool {
		fmt.Fprintf(w, "## Equities\n\n")
		if len(eq.Shares) > 0 {
			tableHeader(w, "ISIN", ">Shares")
			for _, isin := range eq.Shares.ISINs() {
				tableRow(w, isin, eq.Shares[isin])
			}
			fmt.Fprintln(w)
		}
		if len(eq.Paid) > 0 {
			tableHeader(w, "Currency", ">Paid")
			for _, ccy := range eq.Paid.Currencies() {
				tableRow(w, ccy, eq.Paid.Get(ccy).SignedString())
			}
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "Fees: %s\n\n", eq.Fees.SignedString())
		return len(s.EquityTrades) > 0
	})

	return b.String()
}
