package tokens

import (
	"testing"
	"time"
)

func TestParseTTL_Valid(t *testing.T) {
	cases := []struct {
		in   string
		want time.Duration
	}{
		{"30", 30 * time.Second},
		{"45s", 45 * time.Second},
		{"15m", 15 * time.Minute},
		{"2h", 2 * time.Hour},
		{"7d", 7 * 24 * time.Hour},
		{"1w", 7 * 24 * time.Hour},
		{"1y", 365 * 24 * time.Hour},
		{"0", 0},
	}
	for _, tc := range cases {
		got, err := ParseTTL(tc.in)
		if err != nil {
			t.Fatalf("ParseTTL(%q) error: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseTTL(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestParseTTL_Invalid(t *testing.T) {
	for _, in := range []string{"", "15x", "m15", "1.5h", "-30", "7 d", "d", "15mm"} {
		if _, err := ParseTTL(in); err == nil {
			t.Fatalf("ParseTTL(%q) should fail", in)
		}
	}
}
