// Command stm reads broker statements: it parses them, merges them into one
// account history and reports totals and valuations.
//
// Shell completion is installed with COMP_INSTALL=1 stm.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/statements/cmd"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// completion describes the stm command line for shell completion.
var completion = &complete.Command{
	Flags: map[string]complete.Predictor{
		"config": predict.Files("*.toml"),
		"v":      predict.Nothing,
		"raw":    predict.Nothing,
	},
	Sub: map[string]*complete.Command{
		"parse": {
			Flags: map[string]complete.Predictor{"md": predict.Nothing},
			Args:  predict.Files("*.html"),
		},
		"merge": {
			Flags: map[string]complete.Predictor{
				"csv": predict.Dirs("*"),
				"md":  predict.Nothing,
			},
			Args: predict.Dirs("*"),
		},
		"totals": {
			Flags: map[string]complete.Predictor{"c": predict.Set{"RUB", "USD", "EUR"}},
			Args:  predict.Dirs("*"),
		},
		"value": {
			Flags: map[string]complete.Predictor{
				"c": predict.Set{"RUB", "USD", "EUR"},
				"d": predict.Something,
			},
			Args: predict.Dirs("*"),
		},
		"help":     {},
		"commands": {},
		"flags":    {},
	},
}

func main() {
	name := path.Base(os.Args[0])
	completion.Complete(name)

	commander := subcommands.NewCommander(flag.CommandLine, name)
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
