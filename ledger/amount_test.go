package ledger

import (
	"testing"

	apperrors "github.com/louisbranch/radicex/errors"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want Amount
	}{
		{"1", 100},
		{"0.9", 90},
		{"1.5", 150},
		{"1.50", 150},
		{"0.05", 5},
		{"5", 500},
		{"0", 0},
		{" 2.25 ", 225},
	}
	for _, tt := range tests {
		got, err := ParseAmount(tt.in)
		if err != nil {
			t.Fatalf("ParseAmount(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("ParseAmount(%q): expected %d, got %d", tt.in, tt.want, got)
		}
	}
}

func TestParseAmountRejectsMalformed(t *testing.T) {
	for _, in := range []string{"", "-1", "+1", "1.", ".5", "0.999", "abc", "1.2.3", "1,5"} {
		_, err := ParseAmount(in)
		if err == nil {
			t.Fatalf("ParseAmount(%q): expected error", in)
		}
		if !apperrors.IsCode(err, apperrors.CodeInvalidAmount) {
			t.Fatalf("ParseAmount(%q): expected INVALID_AMOUNT, got %v", in, err)
		}
	}
}

func TestAmountString(t *testing.T) {
	tests := []struct {
		in   Amount
		want string
	}{
		{100, "1"},
		{90, "0.9"},
		{150, "1.5"},
		{125, "1.25"},
		{5, "0.05"},
		{0, "0"},
		{-50, "-0.5"},
		{500, "5"},
	}
	for _, tt := range tests {
		if got := tt.in.String(); got != tt.want {
			t.Fatalf("Amount(%d).String(): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}

func TestAmountRoundTrip(t *testing.T) {
	for _, a := range []Amount{0, 1, 90, 100, 150, 500, 123456} {
		parsed, err := ParseAmount(a.String())
		if err != nil {
			t.Fatalf("reparse %s: %v", a, err)
		}
		if parsed != a {
			t.Fatalf("round trip %d: got %d", a, parsed)
		}
	}
}
