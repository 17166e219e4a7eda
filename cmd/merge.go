package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/etnz/statements"
	"github.com/etnz/statements/renderer"
	"github.com/google/subcommands"
)

// mergeCmd holds the flags for the 'merge' subcommand.
type mergeCmd struct {
	csvDir   string
	markdown bool
}

func (*mergeCmd) Name() string     { return "merge" }
func (*mergeCmd) Synopsis() string { return "merge all statements into one account history" }
func (*mergeCmd) Usage() string {
	return `stm merge [-csv <dir>] [-md] [<dir>...]

  Parses every statement (*.html) in the directories, or in statement_dirs
  of the configuration, and merges them: trades reported by several
  statements are kept once.

  The history is printed as JSONL, or written as cashflows.csv, equity.csv
  and fx.csv into the -csv directory.
`
}

func (c *mergeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.csvDir, "csv", "", "write CSV files into this directory instead of printing JSONL")
	f.BoolVar(&c.markdown, "md", false, "print a markdown report instead of JSONL")
}

func (c *mergeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := newApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.close()

	s, err := a.history(ctx, f.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	switch {
	case c.csvDir != "":
		if err := writeCSVs(c.csvDir, s); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing CSV: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Fprintf(os.Stderr, "✅ Wrote %d cash flows, %d equity trades and %d fx trades to %s\n",
			len(s.Cashflows), len(s.EquityTrades), len(s.FxTrades), c.csvDir)
	case c.markdown:
		printMarkdown(renderer.SnapshotMarkdown(s))
	default:
		if err := statements.EncodeSnapshot(stdout, s); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing snapshot: %v\n", err)
			return subcommands.ExitFailure
		}
	}
	return subcommands.ExitSuccess
}

// writeCSVs writes the three record lists of s into dir.
func writeCSVs(dir string, s *statements.Snapshot) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	if err := writeCSV(filepath.Join(dir, "cashflows.csv"), s.Cashflows); err != nil {
		return err
	}
	if err := writeCSV(filepath.Join(dir, "equity.csv"), s.EquityTrades); err != nil {
		return err
	}
	return writeCSV(filepath.Join(dir, "fx.csv"), s.FxTrades)
}

func writeCSV[T statements.CSVRecorder](path string, records []T) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := statements.WriteCSV(f, records); err != nil {
		f.Close()
		return fmt.Errorf("cannot write %s: %w", path, err)
	}
	return f.Close()
}
