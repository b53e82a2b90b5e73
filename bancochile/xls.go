package bancochile

import (
	"strings"

	"github.com/shopspring/decimal"

	bc "github.com/mabahamo/beancount-chile"
	"github.com/mabahamo/beancount-chile/cl"
	"github.com/mabahamo/beancount-chile/date"
)

// Cartola spreadsheet anchors as Banco de Chile prints them. The label
// column is the second one, the first is a spacer.
const labelCol = 1

// cartolaColumns are the movement table columns, detected from the header
// row. Indices fall back to the XLSX layout when a header is missing,
// binary XLS exports shift some columns around.
type cartolaColumns struct {
	date, desc, channel, debit, credit, balance int
}

// SniffCartolaXLS reports whether a grid looks like an account cartola,
// without extracting it.
func SniffCartolaXLS(g bc.GridSource) bool {
	_, ok := findAnchor(g, "Sr(a)")
	if !ok {
		return false
	}
	_, ok = findAnchor(g, "Saldo Disponible")
	return ok
}

// ExtractCartolaXLS reads a Banco de Chile account cartola out of a
// spreadsheet grid. Movements come back in chronological order with their
// running balances, ready for Import.
func ExtractCartolaXLS(g bc.GridSource) (*bc.Statement, error) {
	meta, err := extractCartolaMetadata(g)
	if err != nil {
		return nil, err
	}
	txs, err := extractCartolaMovements(g)
	if err != nil {
		return nil, err
	}

	// Rows are printed newest first. Chronological order is what the
	// pipeline expects.
	if len(txs) > 1 && txs[0].Date.After(txs[len(txs)-1].Date) {
		for i, j := 0, len(txs)-1; i < j; i, j = i+1, j-1 {
			txs[i], txs[j] = txs[j], txs[i]
		}
	}

	if len(txs) > 0 {
		first, last := txs[0], txs[len(txs)-1]
		meta.Period.From = first.Date
		if meta.Period.To.IsZero() {
			meta.Period.To = last.Date
		}
		// The closing balance is the running balance after the newest
		// movement, the figure the bank's own footer repeats.
		meta.ClosingBalance = last.Balance
		meta.HasClosing = true
		meta.OpeningBalance = first.Balance.Sub(first.Amount)
		meta.HasOpening = true
	}

	return &bc.Statement{Meta: *meta, Txs: txs}, nil
}

func extractCartolaMetadata(g bc.GridSource) (*bc.StatementMetadata, error) {
	meta := &bc.StatementMetadata{Currency: "CLP", Kind: bc.KindAccount}

	for _, a := range []struct {
		anchor string
		dst    *string
	}{
		{"Sr(a)", &meta.Holder},
		{"Rut:", &meta.RUT},
		{"Cuenta", &meta.Account},
	} {
		r, ok := findAnchor(g, a.anchor)
		if !ok {
			return nil, &bc.LayoutError{Doc: g.Path(), Anchor: a.anchor}
		}
		*a.dst = valueRightOf(g, r, labelCol)
	}
	if _, ok := findAnchor(g, "Moneda:"); !ok {
		return nil, &bc.LayoutError{Doc: g.Path(), Anchor: "Moneda:"}
	}
	if _, ok := findAnchor(g, "Saldo Disponible"); !ok {
		return nil, &bc.LayoutError{Doc: g.Path(), Anchor: "Saldo Disponible"}
	}

	// "Movimientos al DD/MM/YYYY" carries the closing date. Binary XLS
	// splits the phrase across cells, so every cell of the row is scanned.
	if r, ok := findAnchor(g, "Movimientos"); ok {
		for c := 0; c < g.Cols(r); c++ {
			if d, found := cl.FindDate(g.Cell(r, c)); found {
				meta.Period.To = d
				break
			}
		}
	}
	return meta, nil
}

func extractCartolaMovements(g bc.GridSource) ([]bc.RawTransaction, error) {
	headerRow, ok := findHeaderRow(g)
	if !ok {
		return nil, &bc.LayoutError{Doc: g.Path(), Anchor: "Fecha"}
	}
	cols := detectCartolaColumns(g, headerRow)

	var txs []bc.RawTransaction
	var totalDebits, totalCredits decimal.Decimal
	for r := headerRow + 1; r < g.Rows(); r++ {
		cell := g.Cell(r, cols.date)
		if cell == "" {
			continue
		}
		on, err := cl.ParseDate(cell)
		if err != nil {
			break // footer reached
		}

		debitCell := g.Cell(r, cols.debit)
		creditCell := g.Cell(r, cols.credit)
		if debitCell == "" && creditCell == "" {
			continue
		}
		amount, err := movementAmount(debitCell, creditCell)
		if err != nil {
			return nil, &bc.MalformedRowError{Doc: g.Path(), Row: r + 1, Text: g.Cell(r, cols.desc), Err: err}
		}
		balance, err := cl.ParseAmount(g.Cell(r, cols.balance))
		if err != nil {
			return nil, &bc.MalformedRowError{Doc: g.Path(), Row: r + 1, Text: g.Cell(r, cols.desc), Err: err}
		}
		if amount.IsNegative() {
			totalDebits = totalDebits.Add(amount.Neg())
		} else {
			totalCredits = totalCredits.Add(amount)
		}

		txs = append(txs, bc.RawTransaction{
			Date:        on,
			Description: g.Cell(r, cols.desc),
			Channel:     g.Cell(r, cols.channel),
			Amount:      amount,
			Balance:     balance,
			HasBalance:  true,
			Kind:        bc.KindAccount,
		})
	}

	if err := verifyTotals(g, totalDebits, totalCredits); err != nil {
		return nil, err
	}
	return txs, nil
}

// movementAmount folds the Cargos/Abonos pair into a signed amount,
// charges negative.
func movementAmount(debitCell, creditCell string) (decimal.Decimal, error) {
	if debitCell != "" {
		d, err := cl.ParseAmount(debitCell)
		if err != nil {
			return decimal.Zero, err
		}
		if !d.IsZero() {
			return d.Neg(), nil
		}
	}
	if creditCell == "" {
		return decimal.Zero, nil
	}
	return cl.ParseAmount(creditCell)
}

// verifyTotals checks the extracted movements against the statement's own
// "Total Cargos"/"Total Abonos" footer when it is present.
func verifyTotals(g bc.GridSource, debits, credits decimal.Decimal) error {
	r, ok := findAnchor(g, "Total Cargos")
	if !ok {
		return nil
	}
	wantDebits, err := cl.ParseAmount(g.Cell(r+1, labelCol))
	if err != nil {
		return nil // unreadable footer is not worth failing over
	}
	if !wantDebits.Equal(debits) {
		return &bc.StatementTotalsError{Doc: g.Path(), Label: "Total Cargos", Want: wantDebits, Got: debits}
	}
	if c := findHeaderColumn(g, r, "Total Abonos"); c >= 0 {
		wantCredits, err := cl.ParseAmount(g.Cell(r+1, c))
		if err == nil && !wantCredits.Equal(credits) {
			return &bc.StatementTotalsError{Doc: g.Path(), Label: "Total Abonos", Want: wantCredits, Got: credits}
		}
	}
	return nil
}

func detectCartolaColumns(g bc.GridSource, headerRow int) cartolaColumns {
	// XLSX defaults, binary XLS overrides them from the header texts.
	cols := cartolaColumns{date: 1, desc: 2, channel: 3, debit: 4, credit: 5, balance: 6}
	for c := 0; c < g.Cols(headerRow); c++ {
		switch v := g.Cell(headerRow, c); {
		case v == "Fecha":
			cols.date = c
		case v == "Descripción":
			cols.desc = c
		case strings.HasPrefix(v, "Canal"):
			cols.channel = c
		case strings.HasPrefix(v, "Cargos"):
			cols.debit = c
		case strings.HasPrefix(v, "Abonos"):
			cols.credit = c
		case strings.HasPrefix(v, "Saldo"):
			cols.balance = c
		}
	}
	return cols
}

// findAnchor scans the label column for a cell starting with the anchor
// text and returns its row.
func findAnchor(g bc.GridSource, anchor string) (int, bool) {
	for r := 0; r < g.Rows(); r++ {
		if strings.HasPrefix(g.Cell(r, labelCol), anchor) {
			return r, true
		}
	}
	return 0, false
}

// findHeaderRow returns the row of the movement table header, the one
// with a cell reading exactly "Fecha". A prefix match would confuse it
// with anchors like "Fecha Facturación".
func findHeaderRow(g bc.GridSource) (int, bool) {
	for r := 0; r < g.Rows(); r++ {
		for c := 0; c < g.Cols(r); c++ {
			if g.Cell(r, c) == "Fecha" {
				return r, true
			}
		}
	}
	return 0, false
}

// valueRightOf returns the first non-empty cell right of column c in row r.
func valueRightOf(g bc.GridSource, r, c int) string {
	for i := c + 1; i < g.Cols(r); i++ {
		if v := g.Cell(r, i); v != "" {
			return v
		}
	}
	return ""
}

// findHeaderColumn returns the column of row r whose cell starts with
// header, or -1.
func findHeaderColumn(g bc.GridSource, r int, header string) int {
	for c := 0; c < g.Cols(r); c++ {
		if strings.HasPrefix(g.Cell(r, c), header) {
			return c
		}
	}
	return -1
}

// statementDate returns the cartola's closing date, used to archive the
// document.
func statementDate(meta *bc.StatementMetadata) date.Date {
	if !meta.Period.To.IsZero() {
		return meta.Period.To
	}
	return date.Today()
}
