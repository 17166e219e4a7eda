// Package cmd implements the stm command line application: it parses broker
// statements, merges them and reports totals and valuations.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/statements"
	"github.com/etnz/statements/broker"
	"github.com/etnz/statements/config"
	"github.com/google/subcommands"
	"go.uber.org/zap"
)

// Commands are the stm subcommands.
var Commands = []subcommands.Command{
	&parseCmd{},
	&mergeCmd{},
	&totalsCmd{},
	&valueCmd{},
}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	for _, cmd := range Commands {
		c.Register(cmd, "statements")
	}
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configPath = flag.String("config", "", "Path to the TOML configuration file. Defaults to stm/config.toml in the user config directory.")
var verbose = flag.Bool("v", false, "Log debug messages")
var raw = flag.Bool("raw", false, "Print markdown reports without terminal formatting")

// stdout receives command results, logs go to stderr.
var stdout io.Writer = os.Stdout

// app is what every command needs: the configuration and a logger.
type app struct {
	cfg *config.Config
	log *zap.Logger
}

// newApp loads the configuration and builds the logger.
func newApp() (*app, error) {
	cfg, err := config.Load(*configPath)
	if err != nil {
		return nil, err
	}
	if *verbose {
		cfg.Logging.Level = "debug"
	}
	log, err := cfg.Logging.Logger()
	if err != nil {
		return nil, err
	}
	return &app{cfg: cfg, log: log}, nil
}

func (a *app) close() { _ = a.log.Sync() }

// parser returns a statement parser for the configured currency and workers.
func (a *app) parser() *broker.Parser {
	p := broker.NewParser(a.log)
	p.FeeCurrency = a.cfg.DomesticCurrency
	p.Workers = a.cfg.Workers
	return p
}

// history parses every statement in dirs, or in the configured directories
// if none, and merges them.
func (a *app) history(ctx context.Context, dirs []string) (*statements.Snapshot, error) {
	if len(dirs) == 0 {
		dirs = a.cfg.StatementDirs
	}
	if len(dirs) == 0 {
		return nil, fmt.Errorf("no statement directory: pass them as arguments or set statement_dirs")
	}
	snapshots, err := a.parser().ParseDirs(ctx, dirs...)
	if err != nil {
		return nil, err
	}
	if len(snapshots) == 0 {
		return nil, fmt.Errorf("no statement found in %v", dirs)
	}
	return statements.NewReconciler(a.log).Merge(snapshots...)
}

// printMarkdown prints md to stdout, formatted for the terminal unless -raw.
func printMarkdown(md string) {
	if *raw {
		fmt.Fprint(stdout, md)
		return
	}
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Fprint(stdout, md)
		return
	}
	fmt.Fprint(stdout, out)
}
