package beancountchile

import (
	"fmt"

	"github.com/mabahamo/beancount-chile/date"
)

// Categorizer decides the counterpart side of a movement. It receives the
// movement as the pipeline sees it and returns one of the accepted shapes:
//
//   - nil: leave the movement uncategorized, with a single posting
//   - string: the counterpart account name
//   - Pair or a two-element slice: a subaccount suffix for the main account
//     plus a nested value (account string, []Split, or nil)
//   - []Split: several counterpart postings with explicit amounts
//   - Result or *Result: the full structured form, with optional payee and
//     narration overrides, extra metadata, and receipt paths
//
// Normalize folds all of these into a Categorization.
type Categorizer func(on date.Date, payee, narration string, amount Money, stmt *StatementMetadata) any

// Split is one counterpart posting of a categorized movement.
type Split struct {
	Account string
	Amount  Money
}

// Pair names a subaccount suffix and a counterpart account at once.
type Pair struct {
	Subaccount string
	Account    string
}

// Result is the structured categorizer return shape. Zero fields are
// simply not applied.
type Result struct {
	Subaccount string            // suffix appended to the statement account
	Account    string            // counterpart account
	Payee      string            // overrides the derived payee
	Narration  string            // overrides the cleaned narration
	Splits     []Split           // counterpart postings, excludes Account
	Meta       map[string]string // extra metadata lines
	Receipts   []string          // receipt file paths, hashed into the link
}

// Categorization is the canonical form every categorizer return shape
// normalizes to.
type Categorization struct {
	Subaccount string
	Account    string
	Payee      string
	Narration  string
	Splits     []Split
	Meta       map[string]string
	Receipts   []string
}

// Normalize folds a categorizer return value into its canonical form. The
// shape is detected in a fixed order so that a value matching several
// shapes always resolves the same way.
func Normalize(v any) (*Categorization, error) {
	switch r := v.(type) {
	case nil:
		return &Categorization{}, nil
	case Result:
		return normalizeResult(&r), nil
	case *Result:
		if r == nil {
			return &Categorization{}, nil
		}
		return normalizeResult(r), nil
	case Pair:
		return &Categorization{Subaccount: r.Subaccount, Account: r.Account}, nil
	case [2]string:
		return &Categorization{Subaccount: r[0], Account: r[1]}, nil
	case []string:
		if len(r) == 2 {
			return &Categorization{Subaccount: r[0], Account: r[1]}, nil
		}
		return nil, fmt.Errorf("string slice of length %d, want 2", len(r))
	case []any:
		if len(r) != 2 {
			return nil, fmt.Errorf("slice of length %d, want 2", len(r))
		}
		sub, ok := r[0].(string)
		if !ok {
			return nil, fmt.Errorf("pair subaccount is %T, want string", r[0])
		}
		nested, err := Normalize(r[1])
		if err != nil {
			return nil, fmt.Errorf("pair value: %w", err)
		}
		nested.Subaccount = sub
		return nested, nil
	case string:
		return &Categorization{Account: r}, nil
	case []Split:
		return &Categorization{Splits: r}, nil
	default:
		return nil, fmt.Errorf("unsupported categorizer return type %T", v)
	}
}

func normalizeResult(r *Result) *Categorization {
	return &Categorization{
		Subaccount: r.Subaccount,
		Account:    r.Account,
		Payee:      r.Payee,
		Narration:  r.Narration,
		Splits:     r.Splits,
		Meta:       r.Meta,
		Receipts:   r.Receipts,
	}
}
