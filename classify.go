package beancountchile

import "strings"

// Sign is the direction of a movement on the statement holder's account.
type Sign int

const (
	Debit  Sign = -1
	Credit Sign = 1
)

// Marker lists are checked in order, credit first, so a description
// matching both directions resolves as a credit. Markers are uppercase
// Spanish fragments as Banco de Chile prints them.
var creditMarkers = []string{
	"TRANSFERENCIA DE",
	"TRANSF DE",
	"DEP.CHEQUE",
	"DEPOSITO EN EFECTIVO",
	"REVERSA",
	"PAGO:PROVEEDORES",
	"PAGO PROVEEDORES",
	"DEVOLUCION",
	"ABONO",
}

var debitMarkers = []string{
	"TRANSFERENCIA A",
	"TRANSF A",
	"DEPOSITO CHEQUE DEVUELTO",
	"CHEQUE DEVUELTO",
	"GIRO",
	"COMPRA",
	"CARGO",
	"PAGO AUTOMATICO",
	"IMPUESTO",
	"COMISION",
}

// Classify decides whether a movement described by a text line is a debit
// or a credit. It is used by extractors whose source, such as a PDF
// cartola, prints amounts unsigned. Unrecognized descriptions default to
// debit, the common case on an account statement.
func Classify(description string) Sign {
	u := strings.ToUpper(description)
	for _, m := range creditMarkers {
		if strings.Contains(u, m) {
			return Credit
		}
	}
	for _, m := range debitMarkers {
		if strings.Contains(u, m) {
			return Debit
		}
	}
	return Debit
}

// IsReferenceToken reports whether a token from a statement line is a
// document reference rather than an amount: check numbers are 8 digits,
// folios are 10 digits with a leading zero, and neither carries thousands
// separators.
func IsReferenceToken(tok string) bool {
	if strings.ContainsAny(tok, ".,$-") {
		return false
	}
	for _, r := range tok {
		if r < '0' || r > '9' {
			return false
		}
	}
	switch len(tok) {
	case 8:
		return true
	case 10:
		return tok[0] == '0'
	}
	return false
}

// IsAmountToken reports whether a token looks like a Chilean-formatted
// amount. Reference tokens are excluded first by callers walking a line
// right to left.
func IsAmountToken(tok string) bool {
	t := strings.TrimPrefix(strings.TrimPrefix(tok, "$"), "-")
	if t == "" {
		return false
	}
	for _, r := range t {
		if (r < '0' || r > '9') && r != '.' && r != ',' {
			return false
		}
	}
	return t[0] != '.' && t[len(t)-1] != '.'
}
