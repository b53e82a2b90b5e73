package bancochile

import (
	"strings"

	bc "github.com/mabahamo/beancount-chile"
	"github.com/mabahamo/beancount-chile/cl"
)

// creditColumns are the movement table columns of a credit card
// statement.
type creditColumns struct {
	date, desc, city, installments, category, amount int
}

// SniffCreditXLS reports whether a grid looks like a credit card
// statement and, when it does, whether it is the billed or the unbilled
// section.
func SniffCreditXLS(g bc.GridSource) (bc.StatementKind, bool) {
	for r := 0; r < g.Rows(); r++ {
		for c := 0; c < g.Cols(r); c++ {
			cell := g.Cell(r, c)
			if strings.Contains(cell, "Movimientos No Facturados") {
				return bc.KindCreditUnbilled, true
			}
			if strings.Contains(cell, "Movimientos Facturados") {
				return bc.KindCreditBilled, true
			}
		}
	}
	return "", false
}

// ExtractCreditXLS reads a Banco de Chile credit card statement out of a
// spreadsheet grid. Billed statements carry a billing date and a billed
// total, which become the statement's closing date and closing balance.
// Unbilled statements have neither, their movements stay pending.
func ExtractCreditXLS(g bc.GridSource) (*bc.Statement, error) {
	kind, ok := SniffCreditXLS(g)
	if !ok {
		return nil, &bc.LayoutError{Doc: g.Path(), Anchor: "Movimientos Facturados"}
	}

	meta := &bc.StatementMetadata{Currency: "CLP", Kind: kind}
	if r, ok := findAnchor(g, "Sr(a)"); ok {
		meta.Holder = valueRightOf(g, r, labelCol)
	}
	if r, ok := findAnchor(g, "Rut:"); ok {
		meta.RUT = valueRightOf(g, r, labelCol)
	}
	if r, ok := findAnchor(g, "Tarjeta"); ok {
		meta.Account = valueRightOf(g, r, labelCol)
	}

	if kind == bc.KindCreditBilled {
		r, ok := findAnchor(g, "Fecha Facturación")
		if !ok {
			return nil, &bc.LayoutError{Doc: g.Path(), Anchor: "Fecha Facturación"}
		}
		on, err := cl.ParseDate(valueRightOf(g, r, labelCol))
		if err != nil {
			return nil, &bc.MalformedRowError{Doc: g.Path(), Row: r + 1, Text: "Fecha Facturación", Err: err}
		}
		meta.Period.To = on

		if r, ok := findAnchor(g, "Monto Facturado"); ok {
			total, err := cl.ParseAmount(valueRightOf(g, r, labelCol))
			if err != nil {
				return nil, &bc.MalformedRowError{Doc: g.Path(), Row: r + 1, Text: "Monto Facturado", Err: err}
			}
			// Billed charges are owed: the card account closes negative.
			meta.ClosingBalance = total.Neg()
			meta.HasClosing = true
		}
	}

	txs, err := extractCreditMovements(g, kind)
	if err != nil {
		return nil, err
	}
	if len(txs) > 0 {
		meta.Period.From = txs[0].Date
		if meta.Period.To.IsZero() {
			meta.Period.To = txs[len(txs)-1].Date
		}
	}
	return &bc.Statement{Meta: *meta, Txs: txs}, nil
}

func extractCreditMovements(g bc.GridSource, kind bc.StatementKind) ([]bc.RawTransaction, error) {
	headerRow, ok := findHeaderRow(g)
	if !ok {
		return nil, &bc.LayoutError{Doc: g.Path(), Anchor: "Fecha"}
	}
	cols := detectCreditColumns(g, headerRow)

	var txs []bc.RawTransaction
	for r := headerRow + 1; r < g.Rows(); r++ {
		cell := g.Cell(r, cols.date)
		if cell == "" {
			continue
		}
		on, err := cl.ParseDate(cell)
		if err != nil {
			break
		}
		amountCell := g.Cell(r, cols.amount)
		if amountCell == "" {
			continue
		}
		amount, err := cl.ParseAmount(amountCell)
		if err != nil {
			return nil, &bc.MalformedRowError{Doc: g.Path(), Row: r + 1, Text: g.Cell(r, cols.desc), Err: err}
		}

		txs = append(txs, bc.RawTransaction{
			Date:        on,
			Description: g.Cell(r, cols.desc),
			// Statement prints charges positive, the ledger wants them
			// negative on the liability account.
			Amount:       amount.Neg(),
			Kind:         kind,
			City:         g.Cell(r, cols.city),
			Installments: g.Cell(r, cols.installments),
			Category:     g.Cell(r, cols.category),
		})
	}
	return txs, nil
}

func detectCreditColumns(g bc.GridSource, headerRow int) creditColumns {
	cols := creditColumns{date: 1, desc: 2, city: 3, installments: 4, category: 5, amount: 6}
	for c := 0; c < g.Cols(headerRow); c++ {
		switch v := g.Cell(headerRow, c); {
		case v == "Fecha":
			cols.date = c
		case v == "Descripción":
			cols.desc = c
		case v == "Ciudad":
			cols.city = c
		case strings.HasPrefix(v, "Cuotas"):
			cols.installments = c
		case strings.HasPrefix(v, "Categoría"):
			cols.category = c
		case strings.HasPrefix(v, "Monto"):
			cols.amount = c
		}
	}
	return cols
}
