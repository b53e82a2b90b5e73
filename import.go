package beancountchile

import (
	"errors"

	"github.com/mabahamo/beancount-chile/date"
)

// Import runs the whole pipeline over an extracted statement: each
// movement is categorized, normalized, and built into entries, and for
// statements reporting a closing balance a balance assertion is appended.
// A nil categorizer leaves every movement uncategorized.
func Import(stmt *Statement, account string, categorize Categorizer) ([]Entry, error) {
	if err := stmt.VerifyRunningBalances(); err != nil {
		return nil, err
	}

	b := Builder{Account: account}
	var entries []Entry
	for _, raw := range stmt.Txs {
		payee := NormalizePayee(raw.Description)
		narration := CleanNarration(raw.Description)
		amount := M(raw.Amount, stmt.Meta.Currency)

		var verdict any
		if categorize != nil {
			verdict = categorize(raw.Date, payee, narration, amount, &stmt.Meta)
		}
		cat, err := Normalize(verdict)
		if err != nil {
			return nil, &CategorizerContractError{
				Date:        raw.Date,
				Description: raw.Description,
				Reason:      err.Error(),
				Err:         err,
			}
		}

		built, err := b.Build(&stmt.Meta, raw, cat)
		if err != nil {
			var uerr *UnbalancedEntryError
			if errors.As(err, &uerr) {
				return nil, &CategorizerContractError{
					Date:        raw.Date,
					Description: raw.Description,
					Reason:      "splits do not balance the movement",
					Err:         err,
				}
			}
			return nil, err
		}
		entries = append(entries, built...)
	}

	entries = AppendBalanceAssertion(entries, &stmt.Meta, account)
	return entries, nil
}

// AppendBalanceAssertion appends a closing balance assertion dated the day
// after the statement period ends, the first date at which a beancount
// balance check over the statement's entries holds. Statements without a
// trusted closing balance get no assertion.
func AppendBalanceAssertion(entries []Entry, meta *StatementMetadata, account string) []Entry {
	if !meta.HasClosing {
		return entries
	}
	on := meta.Period.To.Add(1)
	if meta.Period.To.IsZero() {
		if len(entries) == 0 {
			return entries
		}
		on = lastTransactionDate(entries).Add(1)
	}
	return append(entries, &Balance{
		Date:    on,
		Account: account,
		Amount:  M(meta.ClosingBalance, meta.Currency),
	})
}

func lastTransactionDate(entries []Entry) date.Date {
	var last date.Date
	for _, e := range entries {
		if e.What() != TransactionEntry {
			continue
		}
		if on := e.When(); on.After(last) {
			last = on
		}
	}
	return last
}
