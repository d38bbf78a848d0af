// Package decoder implements the UPS status decode stage. It converts the raw
// attribute values produced by one SNMP walk into the canonical models.Status
// record: integer codes for the four enumerated attributes become their
// PowerNet-MIB labels, the two manufacture-date strings become calendar dates,
// and everything else passes through unchanged.
package decoder

import (
	"log/slog"
	"time"

	"github.com/vpbank/apcups/models"
	"github.com/vpbank/apcups/snmp/mib"
)

// ─────────────────────────────────────────────────────────────────────────────
// RawStatus
// ─────────────────────────────────────────────────────────────────────────────

// RawStatus is the message produced by the poller after a successful walk and
// the sole input type consumed by the StatusDecoder. It is transient: produced
// fresh per query and not retained past the decode.
type RawStatus struct {
	// Target is the resolved address the walk was issued against.
	Target string

	// Values maps attribute name → scalar value (int64 or string), exactly as
	// converted from the gosnmp varbinds.
	Values map[string]interface{}

	// CollectedAt is the wall-clock time at which the walk completed.
	CollectedAt time.Time
}

// ─────────────────────────────────────────────────────────────────────────────
// StatusDecoder
// ─────────────────────────────────────────────────────────────────────────────

// StatusDecoder converts a RawStatus into a models.Status. It is stateless
// once constructed; Decode is a pure function of its input and never fails —
// anomalies (unrecognised enum codes, unparseable dates) are logged and decode
// to a best-effort value.
type StatusDecoder struct {
	logger *slog.Logger
}

// NewStatusDecoder constructs a StatusDecoder. A nil logger is replaced with a
// no-op logger so the decoder never panics.
func NewStatusDecoder(logger *slog.Logger) *StatusDecoder {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(noopWriter{}, nil))
	}
	return &StatusDecoder{logger: logger}
}

// Decode transforms raw into the decoded Status record. raw.Values is read
// only, never mutated; calling Decode twice on the same input yields identical
// records.
func (d *StatusDecoder) Decode(raw RawStatus) models.Status {
	var st models.Status

	// Pass-through numeric attributes.
	st.BatteryNominalVoltage, _ = intField(raw.Values, mib.AdvBatteryNominalV)
	st.BatteryActualVoltage, _ = intField(raw.Values, mib.AdvBatteryActualV)
	st.BatteryCurrent, _ = intField(raw.Values, mib.AdvBatteryCurrent)
	st.TotalDCCurrent, _ = intField(raw.Values, mib.AdvTotalDCCurrent)
	st.BatteryCapacity, _ = intField(raw.Values, mib.AdvBatteryCapacity)
	st.BatteryTemperature, _ = intField(raw.Values, mib.AdvBatteryTemperature)
	st.RunTimeRemaining, _ = intField(raw.Values, mib.AdvBatteryRunTime)
	st.TimeOnBattery, _ = intField(raw.Values, mib.BasicBatteryTimeOnBatt)
	st.InputPhase, _ = intField(raw.Values, mib.BasicInputPhase)
	st.InputLineVoltage, _ = intField(raw.Values, mib.AdvInputLineVoltage)
	st.InputMaxLineVoltage, _ = intField(raw.Values, mib.AdvInputMaxLineVoltage)
	st.InputMinLineVoltage, _ = intField(raw.Values, mib.AdvInputMinLineVoltage)
	st.InputFrequency, _ = intField(raw.Values, mib.AdvInputFrequency)
	st.OutputPhase, _ = intField(raw.Values, mib.BasicOutputPhase)
	st.OutputVoltage, _ = intField(raw.Values, mib.AdvOutputVoltage)
	st.OutputFrequency, _ = intField(raw.Values, mib.AdvOutputFrequency)
	st.OutputLoad, _ = intField(raw.Values, mib.AdvOutputLoad)

	// Pass-through string attributes.
	st.Model, _ = stringField(raw.Values, mib.BasicIdentModel)
	st.Name, _ = stringField(raw.Values, mib.BasicIdentName)
	st.SerialNumber, _ = stringField(raw.Values, mib.AdvIdentSerialNumber)
	st.FirmwareRevision, _ = stringField(raw.Values, mib.AdvIdentFirmwareRev)

	// Enumerated attributes.
	st.OutputStatus = d.decodeEnum(raw, mib.BasicOutputStatus)
	st.LineFailCause = d.decodeEnum(raw, mib.AdvInputLineFailCause)
	st.BatteryReplaceIndicator = d.decodeEnum(raw, mib.AdvBatteryReplace)
	st.BatteryStatus = d.decodeEnum(raw, mib.BasicBatteryStatus)

	// Date attributes.
	st.ManufactureDate = d.decodeDate(raw, mib.AdvIdentDateOfMfr)
	st.BatteryLastReplaceDate = d.decodeDate(raw, mib.BasicBatteryLastReplace)

	return st
}

// decodeEnum resolves one enumerated attribute, logging codes that are not in
// the enum table.
func (d *StatusDecoder) decodeEnum(raw RawStatus, attr string) string {
	code, ok := intField(raw.Values, attr)
	if !ok {
		return ""
	}
	label, known := enumLabel(attr, code)
	if !known {
		d.logger.Warn("decode: unrecognised enum code",
			"target", raw.Target,
			"attribute", attr,
			"code", code,
		)
	}
	return label
}

// decodeDate parses one MM/DD/YY date attribute, logging strings the device
// reports in an unexpected format.
func (d *StatusDecoder) decodeDate(raw RawStatus, attr string) time.Time {
	s, ok := stringField(raw.Values, attr)
	if !ok || s == "" {
		return time.Time{}
	}
	t, err := ParseDate(s)
	if err != nil {
		d.logger.Warn("decode: unparseable date",
			"target", raw.Target,
			"attribute", attr,
			"value", s,
			"error", err.Error(),
		)
		return time.Time{}
	}
	return t
}

// ─────────────────────────────────────────────────────────────────────────────
// noopWriter — discard all log output when no logger is provided
// ─────────────────────────────────────────────────────────────────────────────

type noopWriter struct{}

func (noopWriter) Write(p []byte) (int, error) { return len(p), nil }
