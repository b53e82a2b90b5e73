package beancountchile

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// EncodeText writes entries to w in beancount text format, one directive
// per entry, blank-line separated, in the order given.
func EncodeText(w io.Writer, entries []Entry) error {
	bw := bufio.NewWriter(w)
	for i, e := range entries {
		if i > 0 {
			bw.WriteString("\n")
		}
		switch d := e.(type) {
		case *Transaction:
			encodeTransaction(bw, d)
		case *Balance:
			fmt.Fprintf(bw, "%s balance %s  %s\n", d.Date, d.Account, d.Amount)
		case *Document:
			fmt.Fprintf(bw, "%s document %s %q", d.Date, d.Account, d.Path)
			if d.Link != "" {
				fmt.Fprintf(bw, " ^%s", d.Link)
			}
			bw.WriteString("\n")
		default:
			return fmt.Errorf("cannot encode entry type %q", e.What())
		}
	}
	return bw.Flush()
}

func encodeTransaction(w *bufio.Writer, t *Transaction) {
	fmt.Fprintf(w, "%s %s %q %q", t.Date, t.Flag, t.Payee, t.Narration)
	if t.Link != "" {
		fmt.Fprintf(w, " ^%s", t.Link)
	}
	w.WriteString("\n")
	for _, k := range t.Meta.Keys() {
		v, _ := t.Meta.Get(k)
		fmt.Fprintf(w, "  %s: %q\n", k, v)
	}
	for _, p := range t.Postings {
		fmt.Fprintf(w, "  %s  %s\n", p.Account, p.Amount)
	}
}

// EncodeJSONL writes entries to w as JSONL, one JSON object per line. The
// first field of every object is its type, so consumers can route lines
// without parsing the whole object.
func EncodeJSONL(w io.Writer, entries []Entry) error {
	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)
	for _, e := range entries {
		obj, err := marshalEntry(e)
		if err != nil {
			return err
		}
		if err := enc.Encode(obj); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func marshalEntry(e Entry) (json.Marshaler, error) {
	var w jsonObjectWriter
	w.Append("type", e.What())
	w.Append("date", e.When())
	switch d := e.(type) {
	case *Transaction:
		w.Append("flag", d.Flag.String())
		w.Append("payee", d.Payee)
		w.Append("narration", d.Narration)
		w.Optional("link", d.Link)
		if d.Meta.Len() > 0 {
			w.Append("meta", d.Meta)
		}
		w.Append("postings", d.Postings)
	case *Balance:
		w.Append("account", d.Account)
		w.Append("amount", d.Amount)
	case *Document:
		w.Append("account", d.Account)
		w.Append("path", d.Path)
		w.Optional("link", d.Link)
	default:
		return nil, fmt.Errorf("cannot encode entry type %q", e.What())
	}
	return &w, nil
}
