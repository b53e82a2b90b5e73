package beancountchile

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"

	"golang.org/x/text/unicode/norm"

	"github.com/mabahamo/beancount-chile/date"
)

// Builder turns raw statement movements into ledger entries. Account is
// the beancount account the statement belongs to, such as
// "Assets:BancoChile:Checking".
type Builder struct {
	Account string
}

// Build constructs the entries for one movement: the transaction itself
// plus a document directive per receipt. The postings of a transaction
// with a counterpart must sum to zero, otherwise a *UnbalancedEntryError
// is returned.
func (b *Builder) Build(stmt *StatementMetadata, raw RawTransaction, cat *Categorization) ([]Entry, error) {
	payee := NormalizePayee(raw.Description)
	if cat.Payee != "" {
		payee = cat.Payee
	}
	narration := CleanNarration(raw.Description)
	if cat.Narration != "" {
		narration = cat.Narration
	}

	account := b.Account
	if cat.Subaccount != "" {
		account += ":" + cat.Subaccount
	}
	amount := M(raw.Amount, stmt.Currency)

	postings := []Posting{{Account: account, Amount: amount}}
	switch {
	case len(cat.Splits) > 0:
		for _, sp := range cat.Splits {
			postings = append(postings, Posting{Account: sp.Account, Amount: sp.Amount})
		}
	case cat.Account != "":
		postings = append(postings, Posting{Account: cat.Account, Amount: amount.Neg()})
	}
	if len(postings) > 1 {
		sum := M(0, "")
		for _, p := range postings {
			sum = sum.Add(p.Amount)
		}
		if !sum.IsZero() {
			return nil, &UnbalancedEntryError{Date: raw.Date, Description: raw.Description, Residual: sum.Amount()}
		}
	}

	tx := &Transaction{
		Date:      raw.Date,
		Flag:      raw.Kind.Flag(),
		Payee:     payee,
		Narration: narration,
		Postings:  postings,
	}
	if raw.Channel != "" {
		tx.Meta.Set("channel", raw.Channel)
	}
	if raw.Reference != "" {
		tx.Meta.Set("reference", raw.Reference)
	}
	if raw.City != "" {
		tx.Meta.Set("city", raw.City)
	}
	if raw.Installments != "" {
		tx.Meta.Set("installments", raw.Installments)
	}
	if raw.Category != "" {
		tx.Meta.Set("bank-category", raw.Category)
	}
	for _, k := range sortedKeys(cat.Meta) {
		tx.Meta.Set(k, cat.Meta[k])
	}

	entries := []Entry{tx}
	if len(cat.Receipts) > 0 {
		tx.Link = ReceiptLink(raw.Date, payee, cat.Receipts)
		for _, path := range cat.Receipts {
			entries = append(entries, &Document{Date: raw.Date, Account: account, Path: path, Link: tx.Link})
		}
	}
	return entries, nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ReceiptLink derives a stable link name tying a transaction to its
// receipt documents. Paths are unicode-normalized and sorted first, so the
// link does not depend on path order or on how the filesystem encodes
// accented names.
func ReceiptLink(on date.Date, payee string, paths []string) string {
	normed := make([]string, len(paths))
	for i, p := range paths {
		normed[i] = norm.NFC.String(p)
	}
	sort.Strings(normed)

	h := sha256.New()
	h.Write([]byte(on.String()))
	h.Write([]byte(":"))
	h.Write([]byte(norm.NFC.String(payee)))
	for _, p := range normed {
		h.Write([]byte(":"))
		h.Write([]byte(p))
	}
	return "rcpt-" + hex.EncodeToString(h.Sum(nil))[:8]
}
