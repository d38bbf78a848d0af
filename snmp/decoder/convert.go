package decoder

import (
	"fmt"
	"math"
	"strings"

	"github.com/gosnmp/gosnmp"

	"github.com/vpbank/apcups/snmp/mib"
)

// ─────────────────────────────────────────────────────────────────────────────
// PDU alignment
// ─────────────────────────────────────────────────────────────────────────────

// Align pairs the GET-NEXT responses with the attribute names that requested
// them. The walk issues one request per attribute and the responses arrive in
// request order, so alignment is positional.
//
// Error-sentinel PDUs (NoSuchObject, NoSuchInstance, EndOfMibView, Null) leave
// the attribute absent from the returned map; the decoder treats an absent
// attribute as a zero value. A count mismatch is a hard error — it means the
// walk and this call disagree about the attribute list.
func Align(names []string, pdus []gosnmp.SnmpPDU) (map[string]interface{}, error) {
	if len(pdus) != len(names) {
		return nil, fmt.Errorf("align: got %d varbinds for %d attributes", len(pdus), len(names))
	}

	values := make(map[string]interface{}, len(names))
	for i := range pdus {
		pdu := &pdus[i]
		if IsErrorType(pdu.Type) {
			continue
		}
		v, err := convertValue(pdu)
		if err != nil {
			return nil, fmt.Errorf("align: attribute %s: %w", names[i], err)
		}
		values[names[i]] = v
	}
	return values, nil
}

// IsErrorType returns true when the PDU type signals an SNMP retrieval error
// rather than an actual value.
func IsErrorType(t gosnmp.Asn1BER) bool {
	return t == gosnmp.NoSuchObject || t == gosnmp.NoSuchInstance || t == gosnmp.EndOfMibView || t == gosnmp.Null
}

// convertValue converts a raw gosnmp PDU value to the native Go type the
// decoder works with: int64 for the integer-valued types, string for octet
// strings. The PowerNet ups subtree carries no other value types.
func convertValue(pdu *gosnmp.SnmpPDU) (interface{}, error) {
	switch pdu.Type {
	case gosnmp.Integer, gosnmp.Gauge32, gosnmp.Counter32, gosnmp.TimeTicks, gosnmp.Uinteger32:
		return toInt64(pdu.Value)
	case gosnmp.OctetString:
		return toDisplayString(pdu.Value)
	default:
		return nil, fmt.Errorf("unexpected PDU type 0x%02X", uint8(pdu.Type))
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Low-level conversion helpers
// ─────────────────────────────────────────────────────────────────────────────

// toInt64 converts the raw gosnmp value to int64.
// gosnmp returns integers as int / uint / uint32 depending on the PDU type.
func toInt64(v interface{}) (int64, error) {
	switch x := v.(type) {
	case int:
		return int64(x), nil
	case int32:
		return int64(x), nil
	case int64:
		return x, nil
	case uint:
		return int64(x), nil
	case uint32:
		return int64(x), nil
	case uint64:
		if x > math.MaxInt64 {
			return 0, fmt.Errorf("uint64 value %d overflows int64", x)
		}
		return int64(x), nil
	default:
		return 0, fmt.Errorf("cannot convert %T to int64", v)
	}
}

// toDisplayString converts an OctetString byte slice to a UTF-8 string,
// stripping trailing null bytes and whitespace that management cards append.
func toDisplayString(v interface{}) (string, error) {
	switch x := v.(type) {
	case string:
		return strings.TrimRight(x, "\x00 "), nil
	case []byte:
		return strings.TrimRight(string(x), "\x00 "), nil
	default:
		return "", fmt.Errorf("cannot convert %T to string", v)
	}
}

// intField reads an int64-valued attribute out of the raw value map.
// Absent attributes decode to zero.
func intField(values map[string]interface{}, attr string) (int64, bool) {
	v, ok := values[attr]
	if !ok {
		return 0, false
	}
	n, err := toInt64(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

// stringField reads a string-valued attribute out of the raw value map.
func stringField(values map[string]interface{}, attr string) (string, bool) {
	v, ok := values[attr]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// enumLabel resolves an enumerated attribute's integer code to its symbolic
// label. Codes missing from the table produce "unknown(<code>)" so the decode
// stays total over any device response.
func enumLabel(attr string, code int64) (string, bool) {
	if label, ok := mib.ResolveEnum(attr, code); ok {
		return label, true
	}
	return fmt.Sprintf("unknown(%d)", code), false
}
