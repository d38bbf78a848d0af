package decoder_test

import (
	"testing"
	"time"

	"github.com/vpbank/apcups/snmp/decoder"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"01/02/99", time.Date(1999, time.January, 2, 0, 0, 0, 0, time.UTC)},
		{"01/02/05", time.Date(2005, time.January, 2, 0, 0, 0, 0, time.UTC)},
		// Pivot boundary: 50 belongs to the 1900s by definition.
		{"06/15/50", time.Date(1950, time.June, 15, 0, 0, 0, 0, time.UTC)},
		{"12/31/49", time.Date(2049, time.December, 31, 0, 0, 0, 0, time.UTC)},
		{"07/04/68", time.Date(1968, time.July, 4, 0, 0, 0, 0, time.UTC)},
		{"02/28/00", time.Date(2000, time.February, 28, 0, 0, 0, 0, time.UTC)},
	}

	for _, tc := range tests {
		got, err := decoder.ParseDate(tc.in)
		if err != nil {
			t.Errorf("ParseDate(%q): %v", tc.in, err)
			continue
		}
		if !got.Equal(tc.want) {
			t.Errorf("ParseDate(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestParseDate_Invalid(t *testing.T) {
	for _, in := range []string{"", "1999-01-02", "13/01/99", "garbage"} {
		if _, err := decoder.ParseDate(in); err == nil {
			t.Errorf("ParseDate(%q): expected error", in)
		}
	}
}
