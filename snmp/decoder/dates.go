package decoder

import (
	"fmt"
	"time"
)

// ParseDate parses the MM/DD/YY date strings carried by
// upsAdvIdentDateOfManufacture and upsBasicBatteryLastReplaceDate.
//
// The two-digit year is widened with a fixed 1950 pivot: years 50–99 fall in
// the 1900s, years 00–49 in the 2000s. APC began shipping SmartSlot management
// cards in the 1990s, so no fielded unit predates the window.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse("01/02/06", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}

	// time.Parse applies the Go reference pivot (69); re-anchor to 50.
	switch y := t.Year(); {
	case y >= 2050:
		t = t.AddDate(-100, 0, 0)
	case y < 1950:
		t = t.AddDate(100, 0, 0)
	}
	return t, nil
}
