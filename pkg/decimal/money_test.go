package decimal

import (
	"testing"

	stddec "github.com/shopspring/decimal"
)

func TestConstructors(t *testing.T) {
	m := NewMoneyFromDecimal(stddec.NewFromFloat(12.345))
	if m.String() != "12.35" { // rounded for display
		t.Fatalf("display mismatch: got %s", m.String())
	}

	d := stddec.NewFromFloat(10.125)
	m2 := NewMoneyFromDecimal(d)
	if !m2.Decimal.Equal(d) {
		t.Fatalf("NewMoneyFromDecimal mismatch: got %s want %s", m2.Decimal, d)
	}
}

func TestFormatThousands(t *testing.T) {
	cases := []struct {
		in  string
		out string
	}{
		{"0", "$0"},
		{"12.4", "$12"},
		{"999.5", "$1,000"},
		{"1234567.89", "$1,234,568"},
		{"-4200", "-$4,200"},
		{"-0.2", "$0"},
	}
	for _, c := range cases {
		got := NewMoneyFromDecimal(stddec.RequireFromString(c.in)).Format()
		if got != c.out {
			t.Fatalf("Format(%s) got %s want %s", c.in, got, c.out)
		}
	}
}

func TestCompound(t *testing.T) {
	rate := stddec.RequireFromString("0.05")
	if got := Compound(rate, 0); !got.Equal(stddec.NewFromInt(1)) {
		t.Fatalf("Compound(0) got %s", got)
	}
	if got := Compound(rate, 2); !got.Equal(stddec.RequireFromString("1.1025")) {
		t.Fatalf("Compound(2) got %s", got)
	}
	if got := Compound(rate, -3); !got.Equal(stddec.NewFromInt(1)) {
		t.Fatalf("Compound(-3) got %s", got)
	}
}

func TestMinMaxNonNegative(t *testing.T) {
	a := stddec.NewFromInt(3)
	b := stddec.NewFromInt(-2)
	if !Min(a, b).Equal(b) || !Max(a, b).Equal(a) {
		t.Fatalf("Min/Max mismatch")
	}
	if !NonNegative(b).IsZero() {
		t.Fatalf("NonNegative(-2) should be zero")
	}
	if !NonNegative(a).Equal(a) {
		t.Fatalf("NonNegative(3) should be unchanged")
	}
}

func TestRoundBalance(t *testing.T) {
	got := RoundBalance(stddec.RequireFromString("1.123456789012345"))
	if got.String() != "1.123456789" {
		t.Fatalf("RoundBalance got %s", got)
	}
}

func TestWithinRelative(t *testing.T) {
	big := stddec.NewFromInt(1_000_000)
	if !WithinRelative(big, big.Add(stddec.RequireFromString("0.5")), 1e-6) {
		t.Fatalf("expected 0.5 on 1e6 to be within 1e-6")
	}
	if WithinRelative(big, big.Add(stddec.NewFromInt(5)), 1e-6) {
		t.Fatalf("expected 5 on 1e6 to exceed 1e-6")
	}
	if !WithinRelative(stddec.Zero, stddec.RequireFromString("0.0000001"), 1e-6) {
		t.Fatalf("expected near-zero values to compare equal")
	}
}
