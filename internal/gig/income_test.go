package gig

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestParseIncome(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"100", "100"},
		{"50.5", "50.5"},
		{"bad", "0"},
		{"", "0"},
		{"  75", "75"},
		{"120 cash", "120"},
		{"$120", "0"},
		{".5", "0.5"},
		{"-20", "-20"},
		{"5.", "5"},
		{"1e3", "1000"},
		{"2.5E-1", "0.25"},
		{"1e999999999", "1e18"},
		{"1e-999999999", "1e-18"},
		{"3e99999999999999999999", "3e18"},
		{"-1e-99999999999999999999", "-1e-18"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := ParseIncome(tt.in)
			if !got.Equal(decimal.RequireFromString(tt.want)) {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestTotalIncome(t *testing.T) {
	gigs := []Gig{{Income: "100"}, {Income: "bad"}, {Income: "50.5"}}
	got := TotalIncome(gigs)
	if !got.Equal(decimal.RequireFromString("150.5")) {
		t.Errorf("got %s, want 150.5", got)
	}

	if !TotalIncome(nil).IsZero() {
		t.Error("expected zero for no gigs")
	}
}

func TestTotalIncomeHugeExponent(t *testing.T) {
	gigs := []Gig{{Income: "10"}, {Income: "1e999999999"}, {Income: "1e-999999999"}}

	start := time.Now()
	got := TotalIncome(gigs)
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("TotalIncome took %v", elapsed)
	}
	if len(got.String()) > 64 {
		t.Errorf("total has %d chars, want a bounded value", len(got.String()))
	}
	want := decimal.RequireFromString("1000000000000000010.000000000000000001")
	if !got.Equal(want) {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestIncomeTotal(t *testing.T) {
	i := Income{Past: decimal.NewFromInt(40), Future: decimal.RequireFromString("2.5")}
	if !i.Total().Equal(decimal.RequireFromString("42.5")) {
		t.Errorf("got %s, want 42.5", i.Total())
	}
}
