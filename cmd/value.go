package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/statements"
	"github.com/etnz/statements/date"
	"github.com/etnz/statements/moex"
	"github.com/etnz/statements/renderer"
	"github.com/google/subcommands"
)

// valueCmd holds the flags for the 'value' subcommand.
type valueCmd struct {
	currency string
	date     string
}

func (*valueCmd) Name() string     { return "value" }
func (*valueCmd) Synopsis() string { return "value the account at current market prices" }
func (*valueCmd) Usage() string {
	return `stm value [-c <currency>] [-d <date>] [<dir>...]

  Merges the statements and values the open positions with the latest MOEX
  quotes: currency balances at spot, shares at their last price, bonds at
  their notional and accrued interest on the valuation date.

  Every held ISIN needs an [[instruments]] entry in the configuration, and
  every held currency an entry in [currencies].
`
}

func (c *valueCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.currency, "c", "", "Domestic currency. Defaults to domestic_currency of the configuration.")
	f.StringVar(&c.date, "d", date.Today().String(), "Valuation date, used for bond notional and accrued interest")
}

func (c *valueCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, err := date.Parse(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

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

	s, err := a.history(ctx, f.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	in, err := a.valuationInput(s, domestic, on)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	v, err := statements.Value(ctx, in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error valuing the account: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.ValuationMarkdown(v))
	return subcommands.ExitSuccess
}

// valuationInput binds the configured instruments to MOEX securities.
func (a *app) valuationInput(s *statements.Snapshot, domestic string, on date.Date) (statements.ValuationInput, error) {
	client := moex.NewClient(a.cfg.MOEXClient(), a.log)
	in := statements.ValuationInput{
		Snapshot:    s,
		Domestic:    domestic,
		On:          on,
		EquityVenue: a.cfg.Venues.Equity,
		FxVenue:     a.cfg.Venues.Fx,
		Rates:       make(map[string]statements.Instrument),
		Instruments: make(map[string]statements.Instrument),
	}
	for ccy, secid := range a.cfg.Currencies {
		in.Rates[ccy] = client.Currency(secid)
	}
	for _, instr := range a.cfg.Instruments {
		i, err := client.Instrument(instr.SecID, instr.Kind)
		if err != nil {
			return in, err
		}
		in.Instruments[instr.ISIN] = i
	}
	return in, nil
}
