// Package models defines the core data structures shared across all layers of
// the APC UPS client. These types represent the canonical in-memory form of a
// decoded UPS status snapshot; every other package depends on this package and
// nothing here depends on any other internal package.
package models

import "time"

// Status is the decoded, user-facing UPS status record produced by one SNMP
// walk. Enumerated attributes carry their PowerNet-MIB symbolic label, the two
// manufacture-date attributes carry a calendar date, and every other attribute
// is the raw device value unchanged.
//
// Status is a plain value type: assigning or returning it copies every field,
// so callers can never mutate a cached snapshot through a returned copy.
type Status struct {
	// ── Identification ───────────────────────────────────────────────────────
	Model            string `json:"model"`             // upsBasicIdentModel
	Name             string `json:"name"`              // upsBasicIdentName
	SerialNumber     string `json:"serial_number"`     // upsAdvIdentSerialNumber
	FirmwareRevision string `json:"firmware_revision"` // upsAdvIdentFirmwareRevision

	// ManufactureDate is upsAdvIdentDateOfManufacture after the MM/DD/YY pivot
	// parse. Zero when the device string was unparseable.
	ManufactureDate time.Time `json:"manufacture_date"`

	// ── Battery ──────────────────────────────────────────────────────────────
	BatteryStatus string `json:"battery_status"` // upsBasicBatteryStatus, decoded label

	// BatteryCapacity is the remaining charge in hundredths of a percent
	// (8734 = 87.34 %), as reported by the management card.
	BatteryCapacity       int64 `json:"battery_capacity"`
	BatteryTemperature    int64 `json:"battery_temperature"` // degrees Celsius
	BatteryNominalVoltage int64 `json:"battery_nominal_voltage"`
	BatteryActualVoltage  int64 `json:"battery_actual_voltage"`
	BatteryCurrent        int64 `json:"battery_current"`
	TotalDCCurrent        int64 `json:"total_dc_current"`

	// RunTimeRemaining is upsAdvBatteryRunTimeRemaining in device ticks
	// (1/100 second).
	RunTimeRemaining int64 `json:"runtime_remaining"`

	// TimeOnBattery is upsBasicBatteryTimeOnBattery in device ticks.
	TimeOnBattery int64 `json:"time_on_battery"`

	BatteryReplaceIndicator string    `json:"battery_replace_indicator"` // decoded label
	BatteryLastReplaceDate  time.Time `json:"battery_last_replace_date"`

	// ── Input ────────────────────────────────────────────────────────────────
	InputPhase          int64  `json:"input_phase"`
	InputLineVoltage    int64  `json:"input_line_voltage"`     // VAC
	InputMaxLineVoltage int64  `json:"input_max_line_voltage"` // VAC, 60 s window
	InputMinLineVoltage int64  `json:"input_min_line_voltage"` // VAC, 60 s window
	InputFrequency      int64  `json:"input_frequency"`        // Hz
	LineFailCause       string `json:"line_fail_cause"`        // decoded label

	// ── Output ───────────────────────────────────────────────────────────────
	OutputStatus    string `json:"output_status"` // decoded label
	OutputPhase     int64  `json:"output_phase"`
	OutputVoltage   int64  `json:"output_voltage"`   // VAC
	OutputFrequency int64  `json:"output_frequency"` // Hz

	// OutputLoad is the load in hundredths of a percent (8734 = 87.34 %).
	OutputLoad int64 `json:"output_load"`
}
