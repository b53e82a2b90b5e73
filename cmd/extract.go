package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	bc "github.com/mabahamo/beancount-chile"
)

type extractCmd struct {
	format string
	output string
}

func (*extractCmd) Name() string     { return "extract" }
func (*extractCmd) Synopsis() string { return "extract ledger entries from statement files" }
func (*extractCmd) Usage() string {
	return `beanchile extract [-f beancount|jsonl] [-o <file>] <file>...

  Extract the entries of each statement file and write them out, in
  beancount text format by default.

Usage Examples:
# Print entries for a cartola.
$ beanchile -account-number 00-123-45678-90 extract cartola.xls

`
}

func (c *extractCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.format, "f", "beancount", "Output format: beancount or jsonl")
	f.StringVar(&c.output, "o", "", "Write to file instead of stdout")
}

func (c *extractCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: no files given")
		return subcommands.ExitUsageError
	}
	if c.format != "beancount" && c.format != "jsonl" {
		fmt.Fprintf(os.Stderr, "Error: unknown format %q\n", c.format)
		return subcommands.ExitUsageError
	}
	registry, err := newRegistry()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	var entries []bc.Entry
	for _, path := range f.Args() {
		src, err := openSource(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", path, err)
			return subcommands.ExitFailure
		}
		imp, ok := registry.Route(src)
		if !ok {
			fmt.Fprintf(os.Stderr, "Error: %s: no importer recognizes this file\n", path)
			return subcommands.ExitFailure
		}
		extracted, err := imp.Extract(src)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error extracting %s: %v\n", path, err)
			return subcommands.ExitFailure
		}
		entries = append(entries, extracted...)
	}

	out := os.Stdout
	if c.output != "" {
		f, err := os.Create(c.output)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		defer f.Close()
		out = f
	}

	if c.format == "jsonl" {
		err = bc.EncodeJSONL(out, entries)
	} else {
		err = bc.EncodeText(out, entries)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error writing entries: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
