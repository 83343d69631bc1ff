package money

import "testing"

func TestParse(t *testing.T) {
	cases := []struct {
		in  string
		out string
	}{
		{"1 234,500", "1234.5"},
		{"13.246.500", "13246.5"},
		{"1.234.567,89", "1234567.89"},
		{"1500", "1500"},
		{"1 500,000", "1500"},
		{"0,5", "0.5"},
		{"-12,5", "-12.5"},
		{"  42  ", "42"},
		{"", "0"},
		{"abc", "0"},
		{"12abc", "0"},
		{".", "0"},
	}
	for _, tc := range cases {
		got := Parse(tc.in)
		if got.String() != tc.out {
			t.Fatalf("Parse(%q) = %s, attendu %s", tc.in, got, tc.out)
		}
	}
}

func TestParseAny(t *testing.T) {
	if got := ParseAny(nil); !got.IsZero() {
		t.Fatalf("ParseAny(nil) = %s", got)
	}
	if got := ParseAny(12.5); got.String() != "12.5" {
		t.Fatalf("ParseAny(12.5) = %s", got)
	}
	if got := ParseAny("1 500,000"); got.String() != "1500" {
		t.Fatalf("ParseAny string = %s", got)
	}
	if got := ParseAny(struct{}{}); !got.IsZero() {
		t.Fatalf("ParseAny(struct) = %s", got)
	}
}
