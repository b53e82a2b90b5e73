package bancochile

import (
	"fmt"
	"strings"

	bc "github.com/mabahamo/beancount-chile"
	"github.com/mabahamo/beancount-chile/date"
)

// Config ties a Banco de Chile product to its beancount account.
type Config struct {
	// AccountNumber is the bank account number as printed on statements,
	// dashes and spaces ignored when matching.
	AccountNumber string
	// CardLastFour identifies a credit card by its last four digits.
	CardLastFour string
	// Account is the beancount account statements post to.
	Account string
	// Currency defaults to CLP.
	Currency string
	// Categorizer decides counterpart accounts, nil leaves movements
	// uncategorized.
	Categorizer bc.Categorizer
}

func (c Config) currency() string {
	if c.Currency == "" {
		return "CLP"
	}
	return c.Currency
}

// AccountImporter imports account cartolas, spreadsheet or PDF.
type AccountImporter struct {
	cfg Config
}

// NewAccountImporter returns an importer for the account described by cfg.
func NewAccountImporter(cfg Config) *AccountImporter {
	return &AccountImporter{cfg: cfg}
}

func (i *AccountImporter) Name() string    { return "banco-chile-account" }
func (i *AccountImporter) Account() string { return i.cfg.Account }

func (i *AccountImporter) Identify(src bc.Source) bool {
	stmt, err := i.extract(src)
	if err != nil {
		return false
	}
	return digits(stmt.Meta.Account) == digits(i.cfg.AccountNumber)
}

func (i *AccountImporter) Date(src bc.Source) (date.Date, error) {
	stmt, err := i.extract(src)
	if err != nil {
		return date.Date{}, err
	}
	return statementDate(&stmt.Meta), nil
}

func (i *AccountImporter) Filename(src bc.Source) (string, error) {
	stmt, err := i.extract(src)
	if err != nil {
		return "", err
	}
	ext := "xls"
	if _, ok := src.(bc.TextSource); ok {
		ext = "pdf"
	}
	return fmt.Sprintf("%s_banco_chile_%s.%s", statementDate(&stmt.Meta), digits(i.cfg.AccountNumber), ext), nil
}

func (i *AccountImporter) Extract(src bc.Source) ([]bc.Entry, error) {
	stmt, err := i.extract(src)
	if err != nil {
		return nil, err
	}
	stmt.Meta.Currency = i.cfg.currency()
	return bc.Import(stmt, i.cfg.Account, i.cfg.Categorizer)
}

func (i *AccountImporter) extract(src bc.Source) (*bc.Statement, error) {
	switch s := src.(type) {
	case bc.GridSource:
		if !SniffCartolaXLS(s) {
			return nil, &bc.LayoutError{Doc: s.Path(), Anchor: "Sr(a)"}
		}
		return ExtractCartolaXLS(s)
	case bc.TextSource:
		if !SniffCartolaPDF(s) {
			return nil, &bc.LayoutError{Doc: s.Path(), Anchor: "CARTOLA"}
		}
		return ExtractCartolaPDF(s)
	}
	return nil, &bc.LayoutError{Doc: src.Path(), Anchor: "grid or text source"}
}

// CreditImporter imports credit card statements, billed and unbilled.
type CreditImporter struct {
	cfg Config
}

// NewCreditImporter returns an importer for the card described by cfg.
func NewCreditImporter(cfg Config) *CreditImporter {
	return &CreditImporter{cfg: cfg}
}

func (i *CreditImporter) Name() string    { return "banco-chile-credit" }
func (i *CreditImporter) Account() string { return i.cfg.Account }

func (i *CreditImporter) Identify(src bc.Source) bool {
	g, ok := src.(bc.GridSource)
	if !ok {
		return false
	}
	if _, ok := SniffCreditXLS(g); !ok {
		return false
	}
	stmt, err := ExtractCreditXLS(g)
	if err != nil {
		return false
	}
	card := digits(stmt.Meta.Account)
	want := digits(i.cfg.CardLastFour)
	return want != "" && strings.HasSuffix(card, want)
}

func (i *CreditImporter) Date(src bc.Source) (date.Date, error) {
	stmt, err := i.extractGrid(src)
	if err != nil {
		return date.Date{}, err
	}
	return statementDate(&stmt.Meta), nil
}

func (i *CreditImporter) Filename(src bc.Source) (string, error) {
	stmt, err := i.extractGrid(src)
	if err != nil {
		return "", err
	}
	section := "facturado"
	if stmt.Meta.Kind == bc.KindCreditUnbilled {
		section = "no_facturado"
	}
	return fmt.Sprintf("%s_banco_chile_tc%s_%s.xls", statementDate(&stmt.Meta), digits(i.cfg.CardLastFour), section), nil
}

func (i *CreditImporter) Extract(src bc.Source) ([]bc.Entry, error) {
	stmt, err := i.extractGrid(src)
	if err != nil {
		return nil, err
	}
	stmt.Meta.Currency = i.cfg.currency()
	return bc.Import(stmt, i.cfg.Account, i.cfg.Categorizer)
}

func (i *CreditImporter) extractGrid(src bc.Source) (*bc.Statement, error) {
	g, ok := src.(bc.GridSource)
	if !ok {
		return nil, &bc.LayoutError{Doc: src.Path(), Anchor: "grid source"}
	}
	return ExtractCreditXLS(g)
}

// digits strips everything but digits, so "00-123-45678-90" matches
// "001234567890".
func digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

var (
	_ bc.Importer = (*AccountImporter)(nil)
	_ bc.Importer = (*CreditImporter)(nil)
)
