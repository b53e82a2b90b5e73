package beancountchile

import (
	"fmt"

	"github.com/mabahamo/beancount-chile/date"
	"github.com/shopspring/decimal"
)

// LayoutError reports a document that was recognized by an extractor but
// whose layout misses a structural anchor, such as a header cell or a
// section marker.
type LayoutError struct {
	Doc    string // document path or name
	Anchor string // the anchor that was expected and not found
}

func (e *LayoutError) Error() string {
	return fmt.Sprintf("%s: statement layout not recognized, missing %q", e.Doc, e.Anchor)
}

// MalformedRowError reports a single statement row that could not be
// parsed. Row is the position within the document as the bank counts it.
type MalformedRowError struct {
	Doc  string
	Row  int
	Text string
	Err  error
}

func (e *MalformedRowError) Error() string {
	return fmt.Sprintf("%s: row %d %q: %v", e.Doc, e.Row, e.Text, e.Err)
}

func (e *MalformedRowError) Unwrap() error { return e.Err }

// CategorizerContractError reports a categorizer return value that does not
// match any of the accepted shapes, or splits that break the entry balance.
type CategorizerContractError struct {
	Date        date.Date
	Description string
	Reason      string
	Err         error
}

func (e *CategorizerContractError) Error() string {
	return fmt.Sprintf("categorizer result for %s %q: %s", e.Date, e.Description, e.Reason)
}

func (e *CategorizerContractError) Unwrap() error { return e.Err }

// UnbalancedEntryError reports a transaction whose postings do not sum to
// zero. Residual is the amount left over.
type UnbalancedEntryError struct {
	Date        date.Date
	Description string
	Residual    decimal.Decimal
}

func (e *UnbalancedEntryError) Error() string {
	return fmt.Sprintf("transaction %s %q does not balance, residual %s", e.Date, e.Description, e.Residual)
}

// BalanceMismatchError reports a running balance that does not follow from
// the previous balance and the row's amount.
type BalanceMismatchError struct {
	Date        date.Date
	Description string
	Want        decimal.Decimal
	Got         decimal.Decimal
}

func (e *BalanceMismatchError) Error() string {
	return fmt.Sprintf("running balance mismatch at %s %q: statement says %s, previous balance plus amount gives %s", e.Date, e.Description, e.Got, e.Want)
}

// StatementTotalsError reports a footer total that disagrees with the sum
// of the extracted movements.
type StatementTotalsError struct {
	Doc   string
	Label string
	Want  decimal.Decimal
	Got   decimal.Decimal
}

func (e *StatementTotalsError) Error() string {
	return fmt.Sprintf("%s: movements sum to %s but the statement reports %q %s", e.Doc, e.Got, e.Label, e.Want)
}
