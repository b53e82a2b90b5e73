package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type identifyCmd struct{}

func (*identifyCmd) Name() string     { return "identify" }
func (*identifyCmd) Synopsis() string { return "tell which importer handles each file" }
func (*identifyCmd) Usage() string {
	return `beanchile identify <file>...

  Report, for each file, the importer that recognizes it and the account
  its entries would post to.
`
}

func (c *identifyCmd) SetFlags(f *flag.FlagSet) {}

func (c *identifyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: no files given")
		return subcommands.ExitUsageError
	}
	registry, err := newRegistry()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	status := subcommands.ExitSuccess
	for _, path := range f.Args() {
		src, err := openSource(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", path, err)
			status = subcommands.ExitFailure
			continue
		}
		imp, ok := registry.Route(src)
		if !ok {
			fmt.Printf("%s: not recognized\n", path)
			status = subcommands.ExitFailure
			continue
		}
		fmt.Printf("%s: %s (%s)\n", path, imp.Name(), imp.Account())
	}
	return status
}
