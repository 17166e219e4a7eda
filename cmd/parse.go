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

// parseCmd holds the flags for the 'parse' subcommand.
type parseCmd struct {
	markdown bool
}

func (*parseCmd) Name() string     { return "parse" }
func (*parseCmd) Synopsis() string { return "parse one statement and print its records" }
func (*parseCmd) Usage() string {
	return `stm parse [-md] <statement.html>

  Parses one broker statement and prints it as JSONL: a snapshot header line
  then one line per cash flow, equity trade and currency exchange.
`
}

func (c *parseCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.markdown, "md", false, "print a markdown report instead of JSONL")
}

func (c *parseCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Error: expected exactly one statement file\n")
		return subcommands.ExitUsageError
	}

	a, err := newApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.close()

	s, err := a.parser().ParseFile(f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.markdown {
		printMarkdown(renderer.SnapshotMarkdown(s))
		return subcommands.ExitSuccess
	}
	if err := statements.EncodeSnapshot(stdout, s); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing snapshot: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
