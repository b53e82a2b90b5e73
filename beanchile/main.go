package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"

	"github.com/mabahamo/beancount-chile/cmd"
)

func main() {
	// Shell completion, a no-op outside of completion mode.
	completion().Complete("beanchile")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))

	for _, c := range cmd.Commands {
		commander.Register(c, "")
	}
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

func completion() *complete.Command {
	statements := &complete.Command{Args: predict.Files("*")}
	return &complete.Command{
		Sub: map[string]*complete.Command{
			"identify": statements,
			"extract":  statements,
			"filename": statements,
			"topic":    {Args: predict.Set{"readme", "banco-chile", "categorizer"}},
		},
		Flags: map[string]complete.Predictor{
			"account-number":   predict.Something,
			"checking-account": predict.Something,
			"card-last4":       predict.Something,
			"credit-account":   predict.Something,
			"currency":         predict.Set{"CLP", "USD"},
		},
	}
}
