package renderer

import (
	"fmt"
	"io"
	"strings"

	"github.com/etnz/statements"
)

// ValuationMarkdown renders a valuation: one column per venue and the
// portfolio total, then the valued holdings.
func ValuationMarkdown(v *statements.Valuation) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Valuation on %s\n\n", v.On)

	tableHeader(&b, fmt.Sprintf("In %s", v.Domestic), ">FX", ">Equity", ">Total")
	lines := []struct {
		label string
		get   func(statements.VenueValue) string
	}{
		{"Inflow", func(x statements.VenueValue) string { return x.Inflow.String() }},
		{"Paid", func(x statements.VenueValue) string { return x.Paid.SignedString() }},
		{"Fees", func(x statements.VenueValue) string { return x.Fees.SignedString() }},
		{"Remaining", func(x statements.VenueValue) string { return x.Remaining.String() }},
		{"Value", func(x statements.VenueValue) string { return x.Value.String() }},
		{"Earned", func(x statements.VenueValue) string { return x.Earned.SignedString() }},
		{"Return", func(x statements.VenueValue) string { return x.Return.SignedString() }},
	}
	for _, l := range lines {
		tableRow(&b, l.label, l.get(v.Fx), l.get(v.Equity), l.get(v.Total))
	}
	fmt.Fprintln(&b)

	ConditionalBlock(&b, func(w io.Writer) bool {
		fmt.Fprintf(w, "## Holdings\n\n")
		tableHeader(w, "ISIN", "Name", ">Shares", ">Last", ">Value")
		for _, h := range v.Holdings {
			tableRow(w, h.ISIN, h.Name, h.Shares, h.Last, h.Value)
		}
		fmt.Fprintln(w)
		return len(v.Holdings) > 0
	})

	return b.String()
}
