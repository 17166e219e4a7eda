package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/statements"
	"github.com/etnz/statements/renderer"
	"github.com/google/subcommands"
)

// totalsCmd holds the flags for the 'totals' subcommand.
type totalsCmd struct {
	currency string
}

func (*totalsCmd) Name() string     { return "totals" }
func (*totalsCmd) Synopsis() string { return "display cash flow, exchange and equity totals" }
func (*totalsCmd) Usage() string {
	return `stm totals [-c <currency>] [<dir>...]

  Merges the statements and displays the net cash flows per venue and
  currency, the currency exchange position with its average strike, and the
  equity positions with the amounts paid. Fees are booked in the domestic
  currency.
`
}

func (c *totalsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.currency, "c", "", "Domestic currency. Defaults to domestic_currency of the configuration.")
}

func (c *totalsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := newApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.close()

	domestic := a.cfg.DomesticCurrency
	if c.currency != "" {
		domestic = c.currency
	}
	if err := statements.ValidateCurrency(domestic); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	s, err := a.history(ctx, f.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.TotalsMarkdown(s, domestic))
	return subcommands.ExitSuccess
}
