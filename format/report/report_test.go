package report_test

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/vpbank/apcups/format/report"
	"github.com/vpbank/apcups/pkg/ups"
	"github.com/vpbank/apcups/pkg/ups/config"
	"github.com/vpbank/apcups/snmp/decoder"
	"github.com/vpbank/apcups/snmp/mib"
)

// ─────────────────────────────────────────────────────────────────────────────
// Shared fixtures
// ─────────────────────────────────────────────────────────────────────────────

type fakeFetcher struct {
	values map[string]interface{}
	err    error
}

func (f *fakeFetcher) Fetch(target string, _ config.Options) (decoder.RawStatus, error) {
	if f.err != nil {
		return decoder.RawStatus{}, f.err
	}
	return decoder.RawStatus{Target: target, Values: f.values, CollectedAt: time.Now()}, nil
}

func (f *fakeFetcher) Ping(string, config.Options) error { return f.err }

func fixtureValues() map[string]interface{} {
	return map[string]interface{}{
		mib.BasicOutputStatus:     int64(2), // onLine
		mib.AdvBatteryCapacity:    int64(8734),
		mib.AdvOutputLoad:         int64(2700),
		mib.AdvBatteryRunTime:     int64(369900),
		mib.AdvIdentDateOfMfr:     "01/02/99",
		mib.BasicIdentModel:       "Smart-UPS 1400",
		mib.BasicIdentName:        "UPS_IDEN",
		mib.AdvIdentSerialNumber:  "WS9939061234",
		mib.AdvBatteryTemperature: int64(31),
		mib.AdvBatteryReplace:     int64(1), // noBatteryNeedsReplacing
	}
}

func fixtureUPS() *ups.UPS {
	return ups.NewWith("192.0.2.10", config.Defaults(), &fakeFetcher{values: fixtureValues()}, nil)
}

// ─────────────────────────────────────────────────────────────────────────────
// TextFormatter
// ─────────────────────────────────────────────────────────────────────────────

func TestTextFormatter_Layout(t *testing.T) {
	out, err := report.NewTextFormatter().Format(fixtureUPS())
	if err != nil {
		t.Fatalf("Format: %v", err)
	}

	want := []string{
		"UPS Address:\t192.0.2.10",
		"UPS Runtime:\t3699 seconds",
		"UPS Serial:\tWS9939061234",
		"UPS Battery:\t 87%",
		"UPS Load:\t 27%",
		"UPS Model:\tSmart-UPS 1400",
		"UPS Name:\tUPS_IDEN",
		"UPS Birthday:\t1999-01-02",
		"UPS Temp:\t31C",
		"UPS does not need battery replacement.",
		"UPS is presently running on input power.",
	}
	got := strings.Split(strings.TrimRight(string(out), "\n"), "\n")
	if len(got) != len(want) {
		t.Fatalf("line count = %d, want %d\n%s", len(got), len(want), out)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestTextFormatter_OnBattery(t *testing.T) {
	values := fixtureValues()
	values[mib.BasicOutputStatus] = int64(3)
	values[mib.AdvBatteryReplace] = int64(2)
	u := ups.NewWith("192.0.2.10", config.Defaults(), &fakeFetcher{values: values}, nil)

	out, err := report.NewTextFormatter().Format(u)
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	if !strings.Contains(string(out), "UPS does need battery replacement.") {
		t.Error("missing battery-replacement line")
	}
	if !strings.Contains(string(out), "UPS is presently running on battery.") {
		t.Error("missing on-battery line")
	}
}

func TestTextFormatter_FailedHandle(t *testing.T) {
	u := ups.NewWith("192.0.2.10", config.Defaults(), &fakeFetcher{err: errors.New("boom")}, nil)

	if _, err := report.NewTextFormatter().Format(u); err == nil {
		t.Fatal("expected the handle's query error")
	}
}

func TestTextFormatter_NilHandle(t *testing.T) {
	if _, err := report.NewTextFormatter().Format(nil); err == nil {
		t.Fatal("expected error for nil handle")
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// JSONFormatter
// ─────────────────────────────────────────────────────────────────────────────

func TestJSONFormatter_Document(t *testing.T) {
	out, err := report.NewJSONFormatter(report.Config{}, nil).Format(fixtureUPS())
	if err != nil {
		t.Fatalf("Format: %v", err)
	}

	var doc struct {
		Hostname       string  `json:"hostname"`
		RuntimeSeconds int64   `json:"runtime_seconds"`
		ChargeFraction float64 `json:"charge_fraction"`
		OnBattery      *bool   `json:"on_battery"`
		Status         struct {
			OutputStatus string `json:"output_status"`
			Model        string `json:"model"`
		} `json:"status"`
	}
	if err := json.Unmarshal(out, &doc); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, out)
	}

	if doc.Hostname != "192.0.2.10" {
		t.Errorf("hostname = %q", doc.Hostname)
	}
	if doc.RuntimeSeconds != 3699 {
		t.Errorf("runtime_seconds = %d, want 3699", doc.RuntimeSeconds)
	}
	if doc.ChargeFraction != 0.8734 {
		t.Errorf("charge_fraction = %v, want 0.8734", doc.ChargeFraction)
	}
	if doc.OnBattery == nil || *doc.OnBattery {
		t.Errorf("on_battery = %v, want false", doc.OnBattery)
	}
	if doc.Status.OutputStatus != "onLine" {
		t.Errorf("status.output_status = %q, want onLine", doc.Status.OutputStatus)
	}
	if doc.Status.Model != "Smart-UPS 1400" {
		t.Errorf("status.model = %q", doc.Status.Model)
	}
}

func TestJSONFormatter_UnknownFlagsOmitted(t *testing.T) {
	values := fixtureValues()
	values[mib.BasicOutputStatus] = int64(1) // unknown
	values[mib.AdvBatteryReplace] = int64(9) // out of table
	u := ups.NewWith("192.0.2.10", config.Defaults(), &fakeFetcher{values: values}, nil)

	out, err := report.NewJSONFormatter(report.Config{}, nil).Format(u)
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	if strings.Contains(string(out), "\"on_battery\"") {
		t.Error("on_battery must be omitted when the power source is unknown")
	}
	if strings.Contains(string(out), "\"needs_new_battery\"") {
		t.Error("needs_new_battery must be omitted when the indicator is unknown")
	}
}

func TestJSONFormatter_PrettyPrint(t *testing.T) {
	out, err := report.NewJSONFormatter(report.Config{PrettyPrint: true}, nil).Format(fixtureUPS())
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	if !strings.Contains(string(out), "\n  \"hostname\"") {
		t.Errorf("pretty output is not indented:\n%s", out)
	}
}

func TestJSONFormatter_FailedHandle(t *testing.T) {
	u := ups.NewWith("192.0.2.10", config.Defaults(), &fakeFetcher{err: errors.New("boom")}, nil)

	if _, err := report.NewJSONFormatter(report.Config{}, nil).Format(u); err == nil {
		t.Fatal("expected the handle's query error")
	}
}
