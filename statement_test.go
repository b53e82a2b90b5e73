package beancountchile

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mabahamo/beancount-chile/date"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestKindFlag(t *testing.T) {
	if got := KindAccount.Flag(); got != Cleared {
		t.Errorf("account flag = %q", got)
	}
	if got := KindCreditBilled.Flag(); got != Cleared {
		t.Errorf("billed flag = %q", got)
	}
	if got := KindCreditUnbilled.Flag(); got != Pending {
		t.Errorf("unbilled flag = %q", got)
	}
}

func TestVerifyRunningBalances(t *testing.T) {
	stmt := &Statement{
		Meta: StatementMetadata{
			Kind:           KindAccount,
			OpeningBalance: d(1000000),
			HasOpening:     true,
		},
		Txs: []RawTransaction{
			{Date: date.MustParse("2025-01-10"), Amount: d(-45000), Balance: d(955000), HasBalance: true},
			{Date: date.MustParse("2025-01-12"), Amount: d(200000), Balance: d(1155000), HasBalance: true},
		},
	}
	if err := stmt.VerifyRunningBalances(); err != nil {
		t.Fatalf("consistent statement rejected: %v", err)
	}

	// Break the chain.
	stmt.Txs[1].Balance = d(1155001)
	err := stmt.VerifyRunningBalances()
	var merr *BalanceMismatchError
	if !errors.As(err, &merr) {
		t.Fatalf("error = %v, want *BalanceMismatchError", err)
	}
	if merr.Want.String() != "1155000" || merr.Got.String() != "1155001" {
		t.Errorf("mismatch = want %s got %s", merr.Want, merr.Got)
	}
}

func TestVerifyRunningBalancesFirstRow(t *testing.T) {
	stmt := &Statement{
		Meta: StatementMetadata{
			Kind:           KindAccount,
			OpeningBalance: d(500000),
			HasOpening:     true,
		},
		Txs: []RawTransaction{
			{Date: date.MustParse("2025-01-10"), Amount: d(-45000), Balance: d(400000), HasBalance: true},
		},
	}
	if err := stmt.VerifyRunningBalances(); err == nil {
		t.Error("first row does not chain from opening balance, want error")
	}
}

func TestVerifyRunningBalancesSkipsCredit(t *testing.T) {
	stmt := &Statement{
		Meta: StatementMetadata{Kind: KindCreditUnbilled},
		Txs: []RawTransaction{
			{Date: date.MustParse("2025-01-10"), Amount: d(-45000)},
		},
	}
	if err := stmt.VerifyRunningBalances(); err != nil {
		t.Errorf("credit statements have no running balance, got %v", err)
	}
}
