// Package mib holds the compiled-in PowerNet-MIB fragment used by the client:
// the fixed set of UPS attributes that one status query walks, their numeric
// OIDs, and the integer enumeration tables for the four enumerated attributes.
//
// The tables are process-wide, read-only constants. They cover exactly the
// objects an APC management card answers for a single-phase UPS; nothing here
// is loaded from disk at runtime.
package mib

import (
	"fmt"
	"os"
)

// ─────────────────────────────────────────────────────────────────────────────
// Attribute names
// ─────────────────────────────────────────────────────────────────────────────

// Attribute name constants match the PowerNet-MIB object names verbatim.
const (
	BasicIdentModel         = "upsBasicIdentModel"
	BasicIdentName          = "upsBasicIdentName"
	AdvIdentFirmwareRev     = "upsAdvIdentFirmwareRevision"
	AdvIdentDateOfMfr       = "upsAdvIdentDateOfManufacture"
	AdvIdentSerialNumber    = "upsAdvIdentSerialNumber"
	BasicBatteryStatus      = "upsBasicBatteryStatus"
	BasicBatteryTimeOnBatt  = "upsBasicBatteryTimeOnBattery"
	BasicBatteryLastReplace = "upsBasicBatteryLastReplaceDate"
	AdvBatteryCapacity      = "upsAdvBatteryCapacity"
	AdvBatteryTemperature   = "upsAdvBatteryTemperature"
	AdvBatteryRunTime       = "upsAdvBatteryRunTimeRemaining"
	AdvBatteryReplace       = "upsAdvBatteryReplaceIndicator"
	AdvBatteryNominalV      = "upsAdvBatteryNominalVoltage"
	AdvBatteryActualV       = "upsAdvBatteryActualVoltage"
	AdvBatteryCurrent       = "upsAdvBatteryCurrent"
	AdvTotalDCCurrent       = "upsAdvTotalDCCurrent"
	BasicInputPhase         = "upsBasicInputPhase"
	AdvInputLineVoltage     = "upsAdvInputLineVoltage"
	AdvInputMaxLineVoltage  = "upsAdvInputMaxLineVoltage"
	AdvInputMinLineVoltage  = "upsAdvInputMinLineVoltage"
	AdvInputFrequency       = "upsAdvInputFrequency"
	AdvInputLineFailCause   = "upsAdvInputLineFailCause"
	BasicOutputStatus       = "upsBasicOutputStatus"
	BasicOutputPhase        = "upsBasicOutputPhase"
	AdvOutputVoltage        = "upsAdvOutputVoltage"
	AdvOutputFrequency      = "upsAdvOutputFrequency"
	AdvOutputLoad           = "upsAdvOutputLoad"
)

// Attributes is the fixed walk list, in query order. The poller issues one
// GET-NEXT per entry and the decoder aligns the responses positionally, so
// this slice is the single source of truth for both sides.
var Attributes = []string{
	AdvBatteryNominalV,
	AdvBatteryActualV,
	AdvBatteryCurrent,
	AdvTotalDCCurrent,
	BasicIdentModel,
	AdvIdentSerialNumber,
	AdvBatteryCapacity,
	AdvBatteryTemperature,
	BasicInputPhase,
	BasicOutputPhase,
	AdvOutputLoad,
	AdvOutputVoltage,
	AdvOutputFrequency,
	BasicOutputStatus,
	AdvBatteryRunTime,
	AdvInputMaxLineVoltage,
	AdvInputMinLineVoltage,
	AdvInputLineVoltage,
	AdvInputFrequency,
	AdvInputLineFailCause,
	BasicIdentName,
	AdvIdentFirmwareRev,
	AdvIdentDateOfMfr,
	AdvBatteryReplace,
	BasicBatteryLastReplace,
	BasicBatteryTimeOnBatt,
	BasicBatteryStatus,
}

// ─────────────────────────────────────────────────────────────────────────────
// Name → OID
// ─────────────────────────────────────────────────────────────────────────────

// prefix is the PowerNet-MIB ups subtree: enterprises.apc.products.hardware.ups.
const prefix = "1.3.6.1.4.1.318.1.1.1"

// oids maps attribute names to numeric OIDs without the scalar ".0" instance
// suffix — the walk reaches the instance via GET-NEXT.
var oids = map[string]string{
	BasicIdentModel:         prefix + ".1.1.1",
	BasicIdentName:          prefix + ".1.1.2",
	AdvIdentFirmwareRev:     prefix + ".1.2.1",
	AdvIdentDateOfMfr:       prefix + ".1.2.2",
	AdvIdentSerialNumber:    prefix + ".1.2.3",
	BasicBatteryStatus:      prefix + ".2.1.1",
	BasicBatteryTimeOnBatt:  prefix + ".2.1.2",
	BasicBatteryLastReplace: prefix + ".2.1.3",
	AdvBatteryCapacity:      prefix + ".2.2.1",
	AdvBatteryTemperature:   prefix + ".2.2.2",
	AdvBatteryRunTime:       prefix + ".2.2.3",
	AdvBatteryReplace:       prefix + ".2.2.4",
	AdvBatteryNominalV:      prefix + ".2.2.7",
	AdvBatteryActualV:       prefix + ".2.2.8",
	AdvBatteryCurrent:       prefix + ".2.2.9",
	AdvTotalDCCurrent:       prefix + ".2.2.10",
	BasicInputPhase:         prefix + ".3.1.1",
	AdvInputLineVoltage:     prefix + ".3.2.1",
	AdvInputMaxLineVoltage:  prefix + ".3.2.2",
	AdvInputMinLineVoltage:  prefix + ".3.2.3",
	AdvInputFrequency:       prefix + ".3.2.4",
	AdvInputLineFailCause:   prefix + ".3.2.5",
	BasicOutputStatus:       prefix + ".4.1.1",
	BasicOutputPhase:        prefix + ".4.1.2",
	AdvOutputVoltage:        prefix + ".4.2.1",
	AdvOutputFrequency:      prefix + ".4.2.2",
	AdvOutputLoad:           prefix + ".4.2.3",
}

// OID returns the numeric OID (no leading dot, no instance suffix) for the
// given attribute name.
func OID(attr string) (string, bool) {
	oid, ok := oids[attr]
	return oid, ok
}

// ─────────────────────────────────────────────────────────────────────────────
// Enumeration tables
// ─────────────────────────────────────────────────────────────────────────────

// Decoded labels referenced by the derived accessors.
const (
	StatusUnknown      = "unknown"
	StatusOnBattery    = "onBattery"
	StatusOnSmartBoost = "onSmartBoost"

	BatteryNeedsReplacing   = "batteryNeedsReplacing"
	NoBatteryNeedsReplacing = "noBatteryNeedsReplacing"
)

// enums maps the four enumerated attributes to their PowerNet-MIB integer
// enumerations. Every code the device can return has an entry.
var enums = map[string]map[int64]string{
	BasicOutputStatus: {
		1:  StatusUnknown,
		2:  "onLine",
		3:  StatusOnBattery,
		4:  StatusOnSmartBoost,
		5:  "timedSleeping",
		6:  "softwareBypass",
		7:  "off",
		8:  "rebooting",
		9:  "switchedBypass",
		10: "hardwareFailureBypass",
		11: "sleepingUntilPowerReturn",
		12: "onSmartTrim",
	},
	AdvInputLineFailCause: {
		1:  "noTransfer",
		2:  "highLineVoltage",
		3:  "brownout",
		4:  "blackout",
		5:  "smallMomentarySag",
		6:  "deepMomentarySag",
		7:  "smallMomentarySpike",
		8:  "largeMomentarySpike",
		9:  "selfTest",
		10: "rateOfVoltageChange",
	},
	AdvBatteryReplace: {
		1: NoBatteryNeedsReplacing,
		2: BatteryNeedsReplacing,
	},
	BasicBatteryStatus: {
		1: StatusUnknown,
		2: "batteryNormal",
		3: "batteryLow",
	},
}

// IsEnum reports whether attr is one of the four enumerated attributes.
func IsEnum(attr string) bool {
	_, ok := enums[attr]
	return ok
}

// ResolveEnum translates an integer code for the given enumerated attribute to
// its symbolic label. ok is false when attr has no enum table or the code is
// not in the table.
func ResolveEnum(attr string, code int64) (label string, ok bool) {
	table, ok := enums[attr]
	if !ok {
		return "", false
	}
	label, ok = table[code]
	return label, ok
}

// ─────────────────────────────────────────────────────────────────────────────
// Local MIB file check
// ─────────────────────────────────────────────────────────────────────────────

// EnvMIBPath names the environment variable holding the local PowerNet MIB
// file location. The OID tables above are compiled in, so the file is a
// deployment sanity check only: when a path is configured, its absence is a
// configuration error reported before any network I/O.
const EnvMIBPath = "APCUPS_POWERNET_MIB_PATH"

// PathFromEnv returns the configured PowerNet MIB path, or "" when unset.
func PathFromEnv() string {
	return os.Getenv(EnvMIBPath)
}

// CheckFile verifies that the PowerNet MIB file exists at path.
func CheckFile(path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf(
			"PowerNet MIB not found at %q — install the PowerNet-MIB file from the APC "+
				"Network Management Card firmware distribution (schneider-electric.com, "+
				"\"PowerNet MIB\" download), or unset %s: %w",
			path, EnvMIBPath, err,
		)
	}
	return nil
}
