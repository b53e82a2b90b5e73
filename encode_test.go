package beancountchile

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/mabahamo/beancount-chile/date"
)

func sampleEntries() []Entry {
	tx := &Transaction{
		Date:      date.MustParse("2025-01-15"),
		Flag:      Cleared,
		Payee:     "Supermercado Lider",
		Narration: "Compra Supermercado Lider",
		Postings: []Posting{
			{Account: "Assets:BancoChile:Checking", Amount: CLP(-45000)},
			{Account: "Expenses:Groceries", Amount: CLP(45000)},
		},
	}
	tx.Meta.Set("channel", "Web")
	return []Entry{
		tx,
		&Balance{
			Date:    date.MustParse("2025-02-01"),
			Account: "Assets:BancoChile:Checking",
			Amount:  CLP(5000000),
		},
	}
}

func TestEncodeText(t *testing.T) {
	var buf bytes.Buffer
	if err := EncodeText(&buf, sampleEntries()); err != nil {
		t.Fatal(err)
	}

	want := `2025-01-15 * "Supermercado Lider" "Compra Supermercado Lider"
  channel: "Web"
  Assets:BancoChile:Checking  -45000 CLP
  Expenses:Groceries  45000 CLP

2025-02-01 balance Assets:BancoChile:Checking  5000000 CLP
`
	if got := buf.String(); got != want {
		t.Errorf("EncodeText:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestEncodeTextLink(t *testing.T) {
	tx := &Transaction{
		Date:      date.MustParse("2025-01-15"),
		Flag:      Pending,
		Payee:     "Arriendo",
		Narration: "Pago Arriendo",
		Link:      "rcpt-deadbeef",
		Postings:  []Posting{{Account: "Assets:BancoChile:Checking", Amount: CLP(-500000)}},
	}
	doc := &Document{
		Date:    date.MustParse("2025-01-15"),
		Account: "Assets:BancoChile:Checking",
		Path:    "receipts/arriendo.pdf",
		Link:    "rcpt-deadbeef",
	}

	var buf bytes.Buffer
	if err := EncodeText(&buf, []Entry{tx, doc}); err != nil {
		t.Fatal(err)
	}
	got := buf.String()
	if !strings.Contains(got, `2025-01-15 ! "Arriendo" "Pago Arriendo" ^rcpt-deadbeef`) {
		t.Errorf("transaction line missing link:\n%s", got)
	}
	if !strings.Contains(got, `2025-01-15 document Assets:BancoChile:Checking "receipts/arriendo.pdf" ^rcpt-deadbeef`) {
		t.Errorf("document line missing:\n%s", got)
	}
}

func TestEncodeJSONL(t *testing.T) {
	var buf bytes.Buffer
	if err := EncodeJSONL(&buf, sampleEntries()); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}

	var tx struct {
		Type     string `json:"type"`
		Date     string `json:"date"`
		Payee    string `json:"payee"`
		Meta     map[string]string `json:"meta"`
		Postings []struct {
			Account string `json:"account"`
			Amount  struct {
				Currency string  `json:"currency"`
				Amount   float64 `json:"amount"`
			} `json:"amount"`
		} `json:"postings"`
	}
	if err := json.Unmarshal([]byte(lines[0]), &tx); err != nil {
		t.Fatalf("first line is not valid JSON: %v\n%s", err, lines[0])
	}
	if tx.Type != "transaction" || tx.Date != "2025-01-15" || tx.Payee != "Supermercado Lider" {
		t.Errorf("transaction line = %+v", tx)
	}
	if tx.Meta["channel"] != "Web" {
		t.Errorf("meta = %v", tx.Meta)
	}
	if len(tx.Postings) != 2 || tx.Postings[0].Amount.Amount != -45000 || tx.Postings[0].Amount.Currency != "CLP" {
		t.Errorf("postings = %+v", tx.Postings)
	}

	var bal struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal([]byte(lines[1]), &bal); err != nil {
		t.Fatalf("second line is not valid JSON: %v", err)
	}
	if bal.Type != "balance" {
		t.Errorf("second line type = %q", bal.Type)
	}
}
