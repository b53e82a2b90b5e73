package beancountchile

import "github.com/mabahamo/beancount-chile/date"

// Flag marks a transaction as cleared or pending.
type Flag rune

const (
	// Cleared marks a transaction confirmed by the bank.
	Cleared Flag = '*'
	// Pending marks a transaction not yet settled, such as an unbilled
	// credit card movement.
	Pending Flag = '!'
)

func (f Flag) String() string { return string(rune(f)) }

// EntryType discriminates the kinds of ledger entries this package emits.
type EntryType string

const (
	TransactionEntry EntryType = "transaction"
	BalanceEntry     EntryType = "balance"
	DocumentEntry    EntryType = "document"
)

// Entry is a single dated beancount directive.
type Entry interface {
	// What returns the directive kind.
	What() EntryType
	// When returns the directive date.
	When() date.Date
}

// Posting is one leg of a transaction: an account and the amount posted
// to it. A zero Amount with no currency means the leg is elided and
// beancount infers it, which never happens in entries built here.
type Posting struct {
	Account string
	Amount  Money
}

func (p Posting) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("account", p.Account)
	w.Append("amount", p.Amount)
	return w.MarshalJSON()
}

// Transaction is a beancount transaction directive.
type Transaction struct {
	Date      date.Date
	Flag      Flag
	Payee     string
	Narration string
	Link      string // without the leading ^
	Meta      Metadata
	Postings  []Posting
}

func (t *Transaction) What() EntryType { return TransactionEntry }
func (t *Transaction) When() date.Date { return t.Date }

// Balance is a beancount balance assertion directive.
type Balance struct {
	Date    date.Date
	Account string
	Amount  Money
}

func (b *Balance) What() EntryType { return BalanceEntry }
func (b *Balance) When() date.Date { return b.Date }

// Document is a beancount document directive linking an account to a
// file on disk, such as a scanned receipt.
type Document struct {
	Date    date.Date
	Account string
	Path    string
	Link    string
}

func (d *Document) What() EntryType { return DocumentEntry }
func (d *Document) When() date.Date { return d.Date }
