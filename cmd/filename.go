package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type filenameCmd struct{}

func (*filenameCmd) Name() string     { return "filename" }
func (*filenameCmd) Synopsis() string { return "suggest archive filenames for statement files" }
func (*filenameCmd) Usage() string {
	return `beanchile filename <file>...

  Print a normalized archive filename for each statement, derived from
  its closing date and the product it belongs to.
`
}

func (c *filenameCmd) SetFlags(f *flag.FlagSet) {}

func (c *filenameCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
			fmt.Fprintf(os.Stderr, "Error: %s: no importer recognizes this file\n", path)
			status = subcommands.ExitFailure
			continue
		}
		name, err := imp.Filename(src)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error naming %s: %v\n", path, err)
			status = subcommands.ExitFailure
			continue
		}
		fmt.Printf("%s: %s\n", path, name)
	}
	return status
}
