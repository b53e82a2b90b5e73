package bancochile

import (
	"errors"
	"testing"

	bc "github.com/mabahamo/beancount-chile"
	"github.com/mabahamo/beancount-chile/date"
	"github.com/mabahamo/beancount-chile/reader"
)

// cartolaGrid mirrors the XLSX export layout: a spacer column, labels in
// the second column, movements newest first.
func cartolaGrid() bc.GridSource {
	return reader.NewGrid("cartola.xlsx", [][]string{
		{"", "Cartola Cuenta Corriente"},
		{"", "Sr(a):", "", "JUAN PEREZ SOTO"},
		{"", "Rut:", "", "12.345.678-9"},
		{"", "Cuenta N°:", "", "00-123-45678-90"},
		{"", "Moneda:", "", "Pesos"},
		{"", "Saldo Disponible", "Saldo Contable"},
		{"", "5.000.000", "5.000.000"},
		{"", "Total Cargos (CLP)", "Total Abonos (CLP)"},
		{"", "45.000", "200.000"},
		{"", "Movimientos al 14/01/2026"},
		{"", "Fecha", "Descripción", "Canal o Sucursal", "Cargos (CLP)", "Abonos (CLP)", "Saldo (CLP)"},
		{"", "02/01/2026", "PAGO:PROVEEDORES", "Oficina", "", "200.000", "5.000.000"},
		{"", "20/12/2025", "Compra Supermercado Lider", "Web", "45.000", "", "4.800.000"},
	})
}

func TestExtractCartolaXLS(t *testing.T) {
	stmt, err := ExtractCartolaXLS(cartolaGrid())
	if err != nil {
		t.Fatal(err)
	}

	meta := stmt.Meta
	if meta.Holder != "JUAN PEREZ SOTO" {
		t.Errorf("holder = %q", meta.Holder)
	}
	if meta.RUT != "12.345.678-9" {
		t.Errorf("rut = %q", meta.RUT)
	}
	if meta.Account != "00-123-45678-90" {
		t.Errorf("account = %q", meta.Account)
	}
	if meta.Currency != "CLP" || meta.Kind != bc.KindAccount {
		t.Errorf("currency/kind = %q/%q", meta.Currency, meta.Kind)
	}
	if want := date.NewRange(date.MustParse("2025-12-20"), date.MustParse("2026-01-14")); meta.Period != want {
		t.Errorf("period = %s, want %s", meta.Period, want)
	}
	if !meta.HasClosing || meta.ClosingBalance.String() != "5000000" {
		t.Errorf("closing = %s, %v", meta.ClosingBalance, meta.HasClosing)
	}
	if !meta.HasOpening || meta.OpeningBalance.String() != "4845000" {
		t.Errorf("opening = %s, %v", meta.OpeningBalance, meta.HasOpening)
	}

	// Chronological order, oldest first.
	if len(stmt.Txs) != 2 {
		t.Fatalf("got %d movements, want 2", len(stmt.Txs))
	}
	first := stmt.Txs[0]
	if first.Date != date.MustParse("2025-12-20") || first.Amount.String() != "-45000" {
		t.Errorf("first movement = %s %s", first.Date, first.Amount)
	}
	if first.Channel != "Web" {
		t.Errorf("channel = %q", first.Channel)
	}
	second := stmt.Txs[1]
	if second.Date != date.MustParse("2026-01-02") || second.Amount.String() != "200000" {
		t.Errorf("second movement = %s %s", second.Date, second.Amount)
	}

	if err := stmt.VerifyRunningBalances(); err != nil {
		t.Errorf("running balances do not chain: %v", err)
	}
}

func TestExtractCartolaXLSMissingAnchor(t *testing.T) {
	g := reader.NewGrid("broken.xlsx", [][]string{
		{"", "Sr(a):", "", "JUAN PEREZ"},
		{"", "Cuenta N°:", "", "00-123-45678-90"},
	})
	_, err := ExtractCartolaXLS(g)
	var lerr *bc.LayoutError
	if !errors.As(err, &lerr) {
		t.Fatalf("error = %v, want *LayoutError", err)
	}
}

func TestExtractCartolaXLSTotalsMismatch(t *testing.T) {
	g := reader.NewGrid("cartola.xlsx", [][]string{
		{"", "Sr(a):", "", "JUAN PEREZ"},
		{"", "Rut:", "", "12.345.678-9"},
		{"", "Cuenta N°:", "", "00-123-45678-90"},
		{"", "Moneda:", "", "Pesos"},
		{"", "Saldo Disponible"},
		{"", "4.800.000"},
		{"", "Total Cargos (CLP)", "Total Abonos (CLP)"},
		{"", "99.000", "0"},
		{"", "Movimientos al 14/01/2026"},
		{"", "Fecha", "Descripción", "Canal o Sucursal", "Cargos (CLP)", "Abonos (CLP)", "Saldo (CLP)"},
		{"", "20/12/2025", "Compra Supermercado Lider", "Web", "45.000", "", "4.800.000"},
	})
	_, err := ExtractCartolaXLS(g)
	if err == nil {
		t.Fatal("totals mismatch went unnoticed")
	}
	var terr *bc.StatementTotalsError
	if !errors.As(err, &terr) {
		t.Fatalf("error = %v, want *StatementTotalsError", err)
	}
	if terr.Label != "Total Cargos" || terr.Want.String() != "99000" || terr.Got.String() != "45000" {
		t.Errorf("totals error = %v", terr)
	}
}

func TestSniffCartolaXLS(t *testing.T) {
	if !SniffCartolaXLS(cartolaGrid()) {
		t.Error("cartola grid not recognized")
	}
	other := reader.NewGrid("other.xlsx", [][]string{{"", "something else"}})
	if SniffCartolaXLS(other) {
		t.Error("arbitrary grid recognized as cartola")
	}
}
