// Package ups implements the APC UPS client handle: hostname resolution at
// construction, a lazily-triggered SNMP status query, and the derived
// accessors over the decoded status record.
//
// Errors are sticky. Once the handle fails (construction, resolution or query
// time) every accessor returns its zero value and Err reports the failure;
// nothing panics and nothing is thrown across the accessor boundary. A later
// successful Query clears a query-time failure.
//
// A handle is not safe for concurrent use; callers invoking Query from
// multiple goroutines must serialise externally.
package ups

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strings"
	"time"

	"github.com/vpbank/apcups/models"
	"github.com/vpbank/apcups/pkg/ups/config"
	"github.com/vpbank/apcups/pkg/ups/poller"
	"github.com/vpbank/apcups/snmp/decoder"
	"github.com/vpbank/apcups/snmp/mib"
)

// ─────────────────────────────────────────────────────────────────────────────
// Collaborator interfaces
// ─────────────────────────────────────────────────────────────────────────────

// Fetcher performs one SNMP status walk against a resolved address.
// poller.SNMPFetcher is the production implementation; tests substitute fakes.
type Fetcher interface {
	Fetch(target string, opts config.Options) (decoder.RawStatus, error)
	Ping(target string, opts config.Options) error
}

// resolver is the hostname-resolution hook, overridable in tests.
type resolver func(host string) ([]string, error)

// ─────────────────────────────────────────────────────────────────────────────
// UPS handle
// ─────────────────────────────────────────────────────────────────────────────

// UPS is the handle for one APC UPS target.
type UPS struct {
	hostname string
	addr     string
	opts     config.Options
	fetcher  Fetcher
	dec      *decoder.StatusDecoder
	logger   *slog.Logger

	err    error  // sticky; wraps one of the Err* sentinels
	errMsg string // operator-facing message, verbatim

	queried   bool
	queriedAt time.Time
	status    models.Status
}

// New creates a handle for hostname using the production SNMP fetcher.
// Resolution happens here, once; check Err before use.
func New(hostname string, opts config.Options, logger *slog.Logger) *UPS {
	return newUPS(hostname, opts, poller.NewSNMPFetcher(logger), net.LookupHost, logger)
}

// NewWith is New with an explicit Fetcher, for callers that bring their own
// transport (and for tests).
func NewWith(hostname string, opts config.Options, fetcher Fetcher, logger *slog.Logger) *UPS {
	return newUPS(hostname, opts, fetcher, net.LookupHost, logger)
}

func newUPS(hostname string, opts config.Options, fetcher Fetcher, resolve resolver, logger *slog.Logger) *UPS {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(noopWriter{}, nil))
	}
	u := &UPS{
		hostname: hostname,
		opts:     opts,
		fetcher:  fetcher,
		dec:      decoder.NewStatusDecoder(logger),
		logger:   logger,
	}

	if hostname == "" {
		u.fail(ErrConfiguration, "no hostname given")
		return u
	}

	// Deployment sanity check; runs before any network I/O.
	if opts.MIBPath != "" {
		if err := mib.CheckFile(opts.MIBPath); err != nil {
			u.fail(ErrConfiguration, err.Error())
			return u
		}
	}

	// IP literals skip the lookup.
	if ip := net.ParseIP(hostname); ip != nil {
		u.addr = hostname
		return u
	}

	addrs, err := resolve(hostname)
	if err != nil || len(addrs) == 0 {
		u.fail(ErrResolution, "Can't resolve: "+hostname)
		return u
	}
	u.addr = addrs[0]
	return u
}

// fail records a sticky error on the handle.
func (u *UPS) fail(kind error, msg string) {
	u.errMsg = msg
	u.err = fmt.Errorf("%w: %s", kind, msg)
	u.logger.Error("ups: "+msg, "hostname", u.hostname)
}

// ─────────────────────────────────────────────────────────────────────────────
// Error state
// ─────────────────────────────────────────────────────────────────────────────

// Err returns the sticky error, classified with one of the Err* sentinels, or
// nil when the handle is healthy.
func (u *UPS) Err() error { return u.err }

// Failed reports whether the handle is in the error state.
func (u *UPS) Failed() bool { return u.err != nil }

// ErrorMessage returns the operator-facing message for the sticky error, or
// "" when the handle is healthy.
func (u *UPS) ErrorMessage() string { return u.errMsg }

// ─────────────────────────────────────────────────────────────────────────────
// Query
// ─────────────────────────────────────────────────────────────────────────────

// Query performs one SNMP walk and replaces the cached status record. A
// construction-time failure (configuration, resolution) is terminal: Query
// returns the sticky error without touching the network. A previous
// query-time failure is retried.
func (u *UPS) Query() error {
	if u.addr == "" {
		return u.err
	}

	raw, err := u.fetcher.Fetch(u.addr, u.opts)
	if err != nil {
		if errors.Is(err, poller.ErrConnect) {
			u.fail(ErrTransport, "Unable to SNMP.")
		} else {
			u.fail(ErrQuery, "Unable to fetch UPS parameters.")
		}
		u.logger.Debug("ups: query failed", "hostname", u.hostname, "error", err.Error())
		return u.err
	}

	u.err = nil
	u.errMsg = ""
	u.status = u.dec.Decode(raw)
	u.queried = true
	u.queriedAt = raw.CollectedAt

	u.logger.Debug("ups: query completed",
		"hostname", u.hostname,
		"address", u.addr,
		"output_status", u.status.OutputStatus,
	)
	return nil
}

// ensure triggers the one implicit query on first accessor use. It reports
// whether the cached status is usable.
func (u *UPS) ensure() bool {
	if u.err != nil {
		return false
	}
	if !u.queried {
		if err := u.Query(); err != nil {
			return false
		}
	}
	return true
}

// IsQueried reports whether a successful query has ever run on this handle.
func (u *UPS) IsQueried() bool { return u.queried }

// QueriedAt returns the wall-clock time of the last successful query, or the
// zero time when none has run.
func (u *UPS) QueriedAt() time.Time { return u.queriedAt }

// Ping checks device reachability with a single-attribute probe. It never
// runs as part of Query; callers opt in explicitly.
func (u *UPS) Ping() error {
	if u.addr == "" {
		return u.err
	}
	return u.fetcher.Ping(u.addr, u.opts)
}

// ─────────────────────────────────────────────────────────────────────────────
// Derived accessors
// ─────────────────────────────────────────────────────────────────────────────

// Hostname returns the hostname the handle was constructed with.
func (u *UPS) Hostname() string { return u.hostname }

// Addr returns the resolved address, or "" when resolution failed.
func (u *UPS) Addr() string { return u.addr }

// Status returns a copy of the decoded status record. Status is a value type,
// so mutating the returned record cannot affect the handle's cache.
func (u *UPS) Status() models.Status {
	if !u.ensure() {
		return models.Status{}
	}
	return u.status
}

// OnBattery reports whether the UPS is running on battery power. known is
// false when the handle is failed or the output status is unknown.
func (u *UPS) OnBattery() (on, known bool) {
	if !u.ensure() {
		return false, false
	}
	switch s := u.status.OutputStatus; {
	case s == mib.StatusOnBattery || s == mib.StatusOnSmartBoost:
		return true, true
	case s == "" || strings.HasPrefix(s, "unknown"):
		// Covers both the MIB's own unknown(1) and undecodable codes.
		return false, false
	default:
		return false, true
	}
}

// NeedsNewBattery reports the battery-replace indicator. known is false when
// the handle is failed or the indicator did not decode to a known label.
func (u *UPS) NeedsNewBattery() (needs, known bool) {
	if !u.ensure() {
		return false, false
	}
	switch u.status.BatteryReplaceIndicator {
	case mib.BatteryNeedsReplacing:
		return true, true
	case mib.NoBatteryNeedsReplacing:
		return false, true
	default:
		return false, false
	}
}

// Runtime returns the battery runtime remaining in whole seconds (device
// ticks are 1/100 s; division truncates toward zero).
func (u *UPS) Runtime() int64 {
	if !u.ensure() {
		return 0
	}
	return u.status.RunTimeRemaining / 100
}

// TimeOnBattery returns the time spent on battery in whole seconds.
func (u *UPS) TimeOnBattery() int64 {
	if !u.ensure() {
		return 0
	}
	return u.status.TimeOnBattery / 100
}

// Charge returns the battery charge as a 0–1 fraction. The device reports
// hundredths of a percent (8734 = 87.34 %).
func (u *UPS) Charge() float64 {
	if !u.ensure() {
		return 0
	}
	return float64(u.status.BatteryCapacity) / 10000
}

// Load returns the output load as a 0–1 fraction.
func (u *UPS) Load() float64 {
	if !u.ensure() {
		return 0
	}
	return float64(u.status.OutputLoad) / 10000
}

// Model returns the UPS model identifier.
func (u *UPS) Model() string {
	if !u.ensure() {
		return ""
	}
	return u.status.Model
}

// Serial returns the UPS serial number.
func (u *UPS) Serial() string {
	if !u.ensure() {
		return ""
	}
	return u.status.SerialNumber
}

// Name returns the operator-assigned UPS name.
func (u *UPS) Name() string {
	if !u.ensure() {
		return ""
	}
	return u.status.Name
}

// Temperature returns the battery temperature in degrees Celsius.
func (u *UPS) Temperature() int64 {
	if !u.ensure() {
		return 0
	}
	return u.status.BatteryTemperature
}

// Birthday returns the manufacture date as YYYY-MM-DD, or "" when the device
// reported no parseable date.
func (u *UPS) Birthday() string {
	if !u.ensure() {
		return ""
	}
	if u.status.ManufactureDate.IsZero() {
		return ""
	}
	return u.status.ManufactureDate.Format("2006-01-02")
}

type noopWriter struct{}

func (noopWriter) Write(p []byte) (int, error) { return len(p), nil }
