package bancochile

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	bc "github.com/mabahamo/beancount-chile"
	"github.com/mabahamo/beancount-chile/cl"
	"github.com/mabahamo/beancount-chile/date"
)

var (
	pdfPeriodRe   = regexp.MustCompile(`(?i)DESDE\s+(\d{2}/\d{2}/\d{4}).*?(?:HASTA|AL)\s+(\d{2}/\d{2}/\d{4})`)
	pdfMovementRe = regexp.MustCompile(`^(\d{2})/(\d{2})\s+(.+)$`)
	pdfAccountRe  = regexp.MustCompile(`(?i)CUENTA\s+(?:CORRIENTE\s+)?(?:N[°º]?\s*)?([\d-]+)`)
)

// SniffCartolaPDF reports whether the text looks like the text layer of a
// PDF cartola.
func SniffCartolaPDF(t bc.TextSource) bool {
	var hasTitle, hasPeriod bool
	for _, line := range t.Lines() {
		u := strings.ToUpper(line)
		if strings.Contains(u, "CARTOLA") {
			hasTitle = true
		}
		if pdfPeriodRe.MatchString(u) {
			hasPeriod = true
		}
	}
	return hasTitle && hasPeriod
}

// ExtractCartolaPDF reads an account cartola out of PDF text lines. PDF
// movement rows print day/month dates without a year and unsigned
// amounts: the year comes from the statement period and the sign from the
// movement description.
func ExtractCartolaPDF(t bc.TextSource) (*bc.Statement, error) {
	lines := t.Lines()
	meta, err := extractPDFMetadata(t.Path(), lines)
	if err != nil {
		return nil, err
	}

	var txs []bc.RawTransaction
	for i, line := range lines {
		m := pdfMovementRe.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		on, err := cl.ParseDayMonth(day, month, meta.Period)
		if err != nil {
			return nil, &bc.MalformedRowError{Doc: t.Path(), Row: i + 1, Text: line, Err: err}
		}
		tx, err := parsePDFMovement(on, m[3])
		if err != nil {
			return nil, &bc.MalformedRowError{Doc: t.Path(), Row: i + 1, Text: line, Err: err}
		}
		txs = append(txs, tx)
	}

	if len(txs) > 0 && !meta.HasOpening {
		first := txs[0]
		meta.OpeningBalance = first.Balance.Sub(first.Amount)
		meta.HasOpening = true
	}
	return &bc.Statement{Meta: *meta, Txs: txs}, nil
}

func extractPDFMetadata(path string, lines []string) (*bc.StatementMetadata, error) {
	meta := &bc.StatementMetadata{Currency: "CLP", Kind: bc.KindAccount}
	var hasTitle bool
	for _, line := range lines {
		u := strings.ToUpper(line)
		if strings.Contains(u, "CARTOLA") {
			hasTitle = true
		}
		if m := pdfAccountRe.FindStringSubmatch(line); m != nil && meta.Account == "" {
			meta.Account = m[1]
		}
		if m := pdfPeriodRe.FindStringSubmatch(line); m != nil && meta.Period.IsZero() {
			from, err1 := cl.ParseDate(m[1])
			to, err2 := cl.ParseDate(m[2])
			if err1 == nil && err2 == nil {
				meta.Period = date.NewRange(from, to)
			}
		}
		if v, ok := labelledAmount(u, line, "SALDO INICIAL"); ok {
			meta.OpeningBalance, meta.HasOpening = v, true
		}
		if v, ok := labelledAmount(u, line, "SALDO FINAL"); ok {
			meta.ClosingBalance, meta.HasClosing = v, true
		}
	}
	if !hasTitle {
		return nil, &bc.LayoutError{Doc: path, Anchor: "CARTOLA"}
	}
	if !meta.Period.IsValid() {
		return nil, &bc.LayoutError{Doc: path, Anchor: "DESDE .. HASTA"}
	}
	return meta, nil
}

// labelledAmount parses the last amount token of a line carrying the given
// label, such as "SALDO INICIAL  1.234.567".
func labelledAmount(upper, line, label string) (decimal.Decimal, bool) {
	if !strings.Contains(upper, label) {
		return decimal.Zero, false
	}
	fields := strings.Fields(line)
	for i := len(fields) - 1; i >= 0; i-- {
		if bc.IsAmountToken(fields[i]) && !bc.IsReferenceToken(fields[i]) {
			v, err := cl.ParseAmount(fields[i])
			if err == nil {
				return v, true
			}
		}
	}
	return decimal.Zero, false
}

// parsePDFMovement splits the rest of a movement line, walking tokens
// right to left: the last amount is the running balance, the one before it
// the movement amount, and reference-shaped tokens in between are folios
// or check numbers. Whatever is left is the description.
func parsePDFMovement(on date.Date, rest string) (bc.RawTransaction, error) {
	fields := strings.Fields(rest)

	var balance, amount decimal.Decimal
	var haveBalance, haveAmount bool
	var reference string
	end := len(fields)
	for i := len(fields) - 1; i >= 0; i-- {
		tok := fields[i]
		if bc.IsReferenceToken(tok) {
			// Folios and check numbers sit left of the amounts.
			if !haveBalance || !haveAmount {
				break
			}
			if reference == "" {
				reference = tok
			}
			end = i
			continue
		}
		if haveAmount || !bc.IsAmountToken(tok) {
			break
		}
		v, err := cl.ParseAmount(tok)
		if err != nil {
			break
		}
		if !haveBalance {
			balance, haveBalance = v, true
		} else {
			amount, haveAmount = v, true
		}
		end = i
	}
	if !haveBalance || !haveAmount {
		return bc.RawTransaction{}, &cl.AmountFormatError{Token: rest, Reason: "movement line carries fewer than two amounts"}
	}

	desc := strings.Join(fields[:end], " ")
	if bc.Classify(desc) == bc.Debit {
		amount = amount.Neg()
	}
	return bc.RawTransaction{
		Date:        on,
		Description: desc,
		Amount:      amount,
		Balance:     balance,
		HasBalance:  true,
		Kind:        bc.KindAccount,
		Reference:   reference,
	}, nil
}
