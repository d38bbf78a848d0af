package report

import (
	"bytes"
	"fmt"

	"github.com/vpbank/apcups/pkg/ups"
)

// TextFormatter renders the classic one-value-per-line report, each label
// separated from its value by a tab.
type TextFormatter struct{}

// NewTextFormatter creates a TextFormatter.
func NewTextFormatter() *TextFormatter { return &TextFormatter{} }

// Format implements Formatter. It returns the handle's sticky error when the
// status cannot be read.
func (f *TextFormatter) Format(u *ups.UPS) ([]byte, error) {
	if u == nil {
		return nil, fmt.Errorf("format/report: handle must not be nil")
	}

	var b bytes.Buffer

	fmt.Fprintf(&b, "UPS Address:\t%s\n", u.Hostname())
	fmt.Fprintf(&b, "UPS Runtime:\t%d seconds\n", u.Runtime())
	fmt.Fprintf(&b, "UPS Serial:\t%s\n", u.Serial())
	fmt.Fprintf(&b, "UPS Battery:\t%3.0f%%\n", u.Charge()*100)
	fmt.Fprintf(&b, "UPS Load:\t%3.0f%%\n", u.Load()*100)
	fmt.Fprintf(&b, "UPS Model:\t%s\n", u.Model())
	fmt.Fprintf(&b, "UPS Name:\t%s\n", u.Name())
	fmt.Fprintf(&b, "UPS Birthday:\t%s\n", u.Birthday())
	fmt.Fprintf(&b, "UPS Temp:\t%dC\n", u.Temperature())

	switch needs, known := u.NeedsNewBattery(); {
	case known && needs:
		fmt.Fprintln(&b, "UPS does need battery replacement.")
	case known:
		fmt.Fprintln(&b, "UPS does not need battery replacement.")
	default:
		fmt.Fprintln(&b, "UPS battery replacement state is unknown.")
	}

	switch on, known := u.OnBattery(); {
	case known && on:
		fmt.Fprintln(&b, "UPS is presently running on battery.")
	case known:
		fmt.Fprintln(&b, "UPS is presently running on input power.")
	default:
		fmt.Fprintln(&b, "UPS power source is unknown.")
	}

	// Reading through the accessors above may have triggered the first query;
	// surface its failure instead of a report full of zero values.
	if err := u.Err(); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}
