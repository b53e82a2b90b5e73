package beancountchile

import (
	"github.com/mabahamo/beancount-chile/date"
	"github.com/shopspring/decimal"
)

// StatementKind tells what kind of statement a document is, which decides
// the transaction flag and whether a running balance column is expected.
type StatementKind string

const (
	// KindAccount is a checking or vista account statement (cartola).
	KindAccount StatementKind = "account"
	// KindCreditBilled is the billed section of a credit card statement.
	KindCreditBilled StatementKind = "credit-billed"
	// KindCreditUnbilled is the unbilled section of a credit card statement.
	KindCreditUnbilled StatementKind = "credit-unbilled"
)

// Flag returns the transaction flag for entries of this kind. Unbilled
// credit card movements are pending, everything else is cleared.
func (k StatementKind) Flag() Flag {
	if k == KindCreditUnbilled {
		return Pending
	}
	return Cleared
}

// HasRunningBalance reports whether statements of this kind carry a
// balance column that must chain row to row.
func (k StatementKind) HasRunningBalance() bool { return k == KindAccount }

// StatementMetadata is what an extractor learns about the statement as a
// whole, before any movement is read.
type StatementMetadata struct {
	Holder   string        // account holder name as printed
	RUT      string        // Chilean tax id of the holder
	Account  string        // account or card number as printed
	Currency string        // ISO 4217 code, CLP unless the statement says otherwise
	Kind     StatementKind //
	Period   date.Range    // statement period, used for year inference

	// Opening and closing balances as the statement reports them. Not
	// every layout prints both, the Has flags tell which are trusted.
	OpeningBalance decimal.Decimal
	HasOpening     bool
	ClosingBalance decimal.Decimal
	HasClosing     bool
}

// RawTransaction is one movement row as extracted, before categorization.
// Amount is signed: negative for charges, positive for deposits.
type RawTransaction struct {
	Date        date.Date
	Description string
	Channel     string // branch, web, app, as the statement reports it
	Amount      decimal.Decimal
	Balance     decimal.Decimal // running balance after this movement
	HasBalance  bool
	Kind        StatementKind
	Reference   string // folio or check number when the row carries one
	City        string // credit card statements print the merchant city
	Installments string // credit card "cuotas" column, e.g. "1/12"
	Category    string // bank-assigned category, informational only
}

// Statement is a fully extracted document: its metadata and all movement
// rows in chronological order.
type Statement struct {
	Meta StatementMetadata
	Txs  []RawTransaction
}

// VerifyRunningBalances checks that each row's balance equals the previous
// row's balance plus the row's amount, and that the first row chains from
// the opening balance when one is known. Statements without a running
// balance column pass trivially.
func (s *Statement) VerifyRunningBalances() error {
	if !s.Meta.Kind.HasRunningBalance() {
		return nil
	}
	prev := s.Meta.OpeningBalance
	hasPrev := s.Meta.HasOpening
	for _, tx := range s.Txs {
		if !tx.HasBalance {
			return &BalanceMismatchError{Date: tx.Date, Description: tx.Description, Want: prev.Add(tx.Amount)}
		}
		if hasPrev {
			want := prev.Add(tx.Amount)
			if !tx.Balance.Equal(want) {
				return &BalanceMismatchError{Date: tx.Date, Description: tx.Description, Want: want, Got: tx.Balance}
			}
		}
		prev, hasPrev = tx.Balance, true
	}
	return nil
}
