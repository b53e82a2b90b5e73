// Package cl parses numbers and dates the way Chilean bank statements
// print them: dot thousands separators with no fractional part (CLP has
// no minor unit), and DD/MM or DD/MM/YYYY dates. When a date carries no
// year, the year is inferred from the statement period.
package cl

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mabahamo/beancount-chile/date"
)

// AmountFormatError reports a token that does not parse as a Chilean-formatted amount.
type AmountFormatError struct {
	Token  string
	Reason string
}

func (e *AmountFormatError) Error() string {
	return fmt.Sprintf("invalid amount %q: %s", e.Token, e.Reason)
}

// DateInferenceError reports a day/month token that cannot be resolved
// against a statement period.
type DateInferenceError struct {
	Day    int
	Month  int
	Period date.Range
	Reason string
}

func (e *DateInferenceError) Error() string {
	return fmt.Sprintf("cannot infer date for %02d/%02d in period %s: %s", e.Day, e.Month, e.Period, e.Reason)
}

var fullDatePattern = regexp.MustCompile(`(\d{2})/(\d{2})/(\d{4})`)

// ParseAmount parses a Chilean-formatted amount token into an exact
// decimal. Thousands-separator dots are stripped; a decimal comma is only
// accepted when its fractional part is zero, since CLP amounts are whole
// numbers and rounding must never be introduced.
func ParseAmount(token string) (decimal.Decimal, error) {
	t := strings.TrimSpace(token)
	t = strings.TrimPrefix(t, "$")
	t = strings.ReplaceAll(t, " ", "")
	if t == "" {
		return decimal.Zero, &AmountFormatError{Token: token, Reason: "empty token"}
	}

	neg := strings.HasPrefix(t, "-")
	t = strings.TrimPrefix(t, "-")

	if strings.Count(t, ",") > 1 {
		return decimal.Zero, &AmountFormatError{Token: token, Reason: "more than one decimal marker"}
	}
	if integer, fraction, ok := strings.Cut(t, ","); ok {
		if strings.Trim(fraction, "0") != "" {
			return decimal.Zero, &AmountFormatError{Token: token, Reason: "fractional CLP amount"}
		}
		t = integer
	}

	digits := strings.ReplaceAll(t, ".", "")
	if digits == "" || strings.Trim(digits, "0123456789") != "" {
		return decimal.Zero, &AmountFormatError{Token: token, Reason: "non-numeric residue"}
	}

	d, err := decimal.NewFromString(digits)
	if err != nil {
		return decimal.Zero, &AmountFormatError{Token: token, Reason: err.Error()}
	}
	if neg {
		d = d.Neg()
	}
	return d, nil
}

// FormatAmount renders an integral decimal with dot thousands separators,
// the way amounts are printed on statements: FormatAmount(5000000) is
// "5.000.000".
func FormatAmount(d decimal.Decimal) string {
	s := d.Abs().String()
	var b strings.Builder
	if d.IsNegative() {
		b.WriteByte('-')
	}
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
		if len(s) > lead {
			b.WriteByte('.')
		}
	}
	for i := lead; i < len(s); i += 3 {
		b.WriteString(s[i : i+3])
		if i+3 < len(s) {
			b.WriteByte('.')
		}
	}
	return b.String()
}

// ParseDayMonth resolves a DD/MM token against a statement period. The
// year is taken from the period's end; when the resulting date falls after
// the period's end the year is decremented, which handles statements
// spanning a December to January boundary.
func ParseDayMonth(day, month int, period date.Range) (date.Date, error) {
	if !period.IsValid() {
		return date.Date{}, &DateInferenceError{Day: day, Month: month, Period: period, Reason: "malformed statement period"}
	}
	if period.To.Year()-period.From.Year() > 1 {
		return date.Date{}, &DateInferenceError{Day: day, Month: month, Period: period, Reason: "period spans more than two calendar years, inference is ambiguous"}
	}
	if month < 1 || month > 12 {
		return date.Date{}, &DateInferenceError{Day: day, Month: month, Period: period, Reason: "month out of range"}
	}

	d := date.New(period.To.Year(), time.Month(month), day)
	if d.Day() != day || d.Month() != time.Month(month) {
		return date.Date{}, &DateInferenceError{Day: day, Month: month, Period: period, Reason: "day out of range"}
	}
	if d.After(period.To) {
		d = date.New(period.To.Year()-1, time.Month(month), day)
	}
	return d, nil
}

// ParseDate parses a full DD/MM/YYYY date token.
func ParseDate(token string) (date.Date, error) {
	on, err := time.Parse("02/01/2006", strings.TrimSpace(token))
	if err != nil {
		return date.Date{}, fmt.Errorf("invalid date %q want DD/MM/YYYY: %w", token, err)
	}
	return date.New(on.Date()), nil
}

// FindDate extracts the first DD/MM/YYYY date embedded in free text, such
// as a "Movimientos al 31/01/2025" header cell.
func FindDate(s string) (date.Date, bool) {
	m := fullDatePattern.FindString(s)
	if m == "" {
		return date.Date{}, false
	}
	d, err := ParseDate(m)
	if err != nil {
		return date.Date{}, false
	}
	return d, true
}
