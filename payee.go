package beancountchile

import "strings"

// operation prefixes banks prepend to the counterpart name.
var payeePrefixes = []string{
	"Traspaso A:",
	"Transferencia A:",
	"Compra ",
	"Pago ",
}

// NormalizePayee strips the operation prefix from a movement description,
// leaving the counterpart name: "Transferencia A:Juan Perez" becomes
// "Juan Perez".
func NormalizePayee(description string) string {
	s := strings.TrimSpace(description)
	for _, p := range payeePrefixes {
		if len(s) >= len(p) && strings.EqualFold(s[:len(p)], p) {
			return strings.TrimSpace(s[len(p):])
		}
	}
	return s
}

// CleanNarration collapses runs of whitespace into single spaces and trims
// the ends. Statement cells are often padded to fixed widths.
func CleanNarration(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
