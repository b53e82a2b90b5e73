// Package cmd implements the CLI application to import Chilean bank
// statements into a beancount ledger.
package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"

	bc "github.com/mabahamo/beancount-chile"
	"github.com/mabahamo/beancount-chile/bancochile"
	"github.com/mabahamo/beancount-chile/reader"
)

// Commands lists the subcommands a main package registers.
var Commands = []subcommands.Command{
	&identifyCmd{},
	&extractCmd{},
	&filenameCmd{},
	&topicCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var accountNumber = flag.String("account-number", os.Getenv("BEANCHILE_ACCOUNT_NUMBER"), "Banco de Chile account number as printed on cartolas")
var checkingAccount = flag.String("checking-account", envOr("BEANCHILE_CHECKING_ACCOUNT", "Assets:BancoChile:Checking"), "Beancount account for the bank account")
var cardLastFour = flag.String("card-last4", os.Getenv("BEANCHILE_CARD_LAST4"), "Last four digits of the credit card")
var creditAccount = flag.String("credit-account", envOr("BEANCHILE_CREDIT_ACCOUNT", "Liabilities:BancoChile:CreditCard"), "Beancount account for the credit card")
var currency = flag.String("currency", "CLP", "Currency of the statements")

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// newRegistry builds the importer registry from the global flags. An
// importer is only registered when its product is configured.
func newRegistry() (*bc.Registry, error) {
	if !bc.ValidCurrency(*currency) {
		return nil, fmt.Errorf("unknown currency %q", *currency)
	}
	r := &bc.Registry{}
	if *accountNumber != "" {
		r.Register(bancochile.NewAccountImporter(bancochile.Config{
			AccountNumber: *accountNumber,
			Account:       *checkingAccount,
			Currency:      *currency,
		}))
	}
	if *cardLastFour != "" {
		r.Register(bancochile.NewCreditImporter(bancochile.Config{
			CardLastFour: *cardLastFour,
			Account:      *creditAccount,
			Currency:     *currency,
		}))
	}
	if len(r.Importers()) == 0 {
		return nil, fmt.Errorf("no importer configured, set -account-number or -card-last4")
	}
	return r, nil
}

// openSource opens a statement file into the source form importers
// consume.
func openSource(path string) (bc.Source, error) {
	return reader.Open(path)
}

// printMarkdown renders markdown for the terminal, falling back to the
// raw text when rendering fails.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}
