package cl

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mabahamo/beancount-chile/date"
)

func TestParseAmount(t *testing.T) {
	testCases := []struct {
		token string
		want  string
		fail  bool
	}{
		{token: "5.000.000", want: "5000000"},
		{token: "200.000", want: "200000"},
		{token: "45000", want: "45000"},
		{token: "-45.000", want: "-45000"},
		{token: "$ 1.234.567", want: "1234567"},
		{token: "12.345,00", want: "12345"},
		{token: "0", want: "0"},
		{token: "", fail: true},
		{token: "12,34", fail: true},
		{token: "1,2,3", fail: true},
		{token: "12a34", fail: true},
		{token: "CARGO", fail: true},
	}
	for _, tc := range testCases {
		t.Run(tc.token, func(t *testing.T) {
			got, err := ParseAmount(tc.token)
			if tc.fail {
				if err == nil {
					t.Fatalf("ParseAmount(%q) = %s, want error", tc.token, got)
				}
				var ferr *AmountFormatError
				if !errors.As(err, &ferr) {
					t.Fatalf("ParseAmount(%q) error = %v, want *AmountFormatError", tc.token, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseAmount(%q): %v", tc.token, err)
			}
			if got.String() != tc.want {
				t.Errorf("ParseAmount(%q) = %s, want %s", tc.token, got, tc.want)
			}
		})
	}
}

func TestFormatAmount(t *testing.T) {
	testCases := []struct {
		in   string
		want string
	}{
		{in: "0", want: "0"},
		{in: "45", want: "45"},
		{in: "45000", want: "45.000"},
		{in: "5000000", want: "5.000.000"},
		{in: "-200000", want: "-200.000"},
	}
	for _, tc := range testCases {
		d := decimal.RequireFromString(tc.in)
		if got := FormatAmount(d); got != tc.want {
			t.Errorf("FormatAmount(%s) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatAmountRoundTrip(t *testing.T) {
	for _, in := range []string{"1", "999", "1000", "123456789", "-7500"} {
		d := decimal.RequireFromString(in)
		back, err := ParseAmount(FormatAmount(d))
		if err != nil {
			t.Fatalf("ParseAmount(FormatAmount(%s)): %v", in, err)
		}
		if !back.Equal(d) {
			t.Errorf("round trip %s got %s", in, back)
		}
	}
}

func TestParseDayMonth(t *testing.T) {
	period := date.NewRange(date.New(2025, 12, 15), date.New(2026, 1, 14))
	testCases := []struct {
		name       string
		day, month int
		want       date.Date
		fail       bool
	}{
		{name: "within end year", day: 2, month: 1, want: date.New(2026, 1, 2)},
		{name: "rolls back to previous year", day: 20, month: 12, want: date.New(2025, 12, 20)},
		{name: "period end itself", day: 14, month: 1, want: date.New(2026, 1, 14)},
		{name: "month out of range", day: 1, month: 13, fail: true},
		{name: "day out of range", day: 31, month: 2, fail: true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseDayMonth(tc.day, tc.month, period)
			if tc.fail {
				if err == nil {
					t.Fatalf("ParseDayMonth(%d, %d) = %s, want error", tc.day, tc.month, got)
				}
				var derr *DateInferenceError
				if !errors.As(err, &derr) {
					t.Fatalf("error = %v, want *DateInferenceError", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDayMonth(%d, %d): %v", tc.day, tc.month, err)
			}
			if got != tc.want {
				t.Errorf("ParseDayMonth(%d, %d) = %s, want %s", tc.day, tc.month, got, tc.want)
			}
		})
	}
}

func TestParseDayMonthBadPeriod(t *testing.T) {
	if _, err := ParseDayMonth(1, 1, date.Range{}); err == nil {
		t.Error("zero period: want error")
	}
	wide := date.NewRange(date.New(2023, 1, 1), date.New(2025, 6, 1))
	if _, err := ParseDayMonth(1, 1, wide); err == nil {
		t.Error("period spanning three years: want error")
	}
}

func TestFindDate(t *testing.T) {
	d, ok := FindDate("Movimientos al 31/01/2025")
	if !ok || d != date.New(2025, 1, 31) {
		t.Fatalf("FindDate = %s, %v", d, ok)
	}
	if _, ok := FindDate("Saldo Disponible"); ok {
		t.Error("FindDate on text without date: want false")
	}
}
