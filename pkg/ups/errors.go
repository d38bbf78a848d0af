package ups

import "errors"

// Error kinds recorded on the handle. Each failure is wrapped with exactly one
// of these sentinels so callers can classify with errors.Is; the handle also
// keeps the original operator-facing message (ErrorMessage).
var (
	// ErrConfiguration marks a missing hostname or a configured-but-absent
	// PowerNet MIB file. Raised at construction, before any network I/O.
	ErrConfiguration = errors.New("configuration error")

	// ErrResolution marks a hostname that could not be resolved to an address.
	ErrResolution = errors.New("resolution error")

	// ErrTransport marks an SNMP session that could not be established.
	ErrTransport = errors.New("transport error")

	// ErrQuery marks a walk that returned no usable data.
	ErrQuery = errors.New("query error")
)
