package poller

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/gosnmp/gosnmp"

	"github.com/vpbank/apcups/pkg/ups/config"
	"github.com/vpbank/apcups/snmp/decoder"
	"github.com/vpbank/apcups/snmp/mib"
)

// ─────────────────────────────────────────────────────────────────────────────
// GET-NEXT walk
// ─────────────────────────────────────────────────────────────────────────────

// GetNexter is the slice of the gosnmp session the walk needs. *gosnmp.GoSNMP
// satisfies it; tests substitute a fake.
type GetNexter interface {
	GetNext(oids []string) (*gosnmp.SnmpPacket, error)
}

// Walk issues one GET-NEXT per attribute, in the order given, and returns the
// responses aligned positionally with attrs. Requesting the column OID without
// an instance suffix makes GET-NEXT land on the scalar instance (".0").
func Walk(conn GetNexter, attrs []string) ([]gosnmp.SnmpPDU, error) {
	pdus := make([]gosnmp.SnmpPDU, 0, len(attrs))
	for _, attr := range attrs {
		oid, ok := mib.OID(attr)
		if !ok {
			return nil, fmt.Errorf("walk: unknown attribute %q", attr)
		}

		pkt, err := conn.GetNext([]string{"." + oid})
		if err != nil {
			return nil, fmt.Errorf("walk: get-next %s (%s): %w", attr, oid, err)
		}
		if pkt == nil || len(pkt.Variables) == 0 {
			return nil, fmt.Errorf("walk: get-next %s (%s): empty response", attr, oid)
		}
		pdus = append(pdus, pkt.Variables[0])
	}
	return pdus, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Fetcher — session + walk + alignment in one call
// ─────────────────────────────────────────────────────────────────────────────

// SNMPFetcher is the production fetcher behind the UPS handle. It opens a
// fresh session per fetch; a one-shot client has nothing to pool.
type SNMPFetcher struct {
	logger *slog.Logger
}

// NewSNMPFetcher creates a fetcher. A nil logger is replaced with a no-op
// logger.
func NewSNMPFetcher(logger *slog.Logger) *SNMPFetcher {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(noopWriter{}, nil))
	}
	return &SNMPFetcher{logger: logger}
}

// Fetch performs the full fixed walk against target and returns the raw
// attribute values. Session errors are wrapped with ErrConnect; every other
// failure means the device answered nothing useful.
func (f *SNMPFetcher) Fetch(target string, opts config.Options) (decoder.RawStatus, error) {
	var raw decoder.RawStatus

	conn, err := NewSession(target, opts)
	if err != nil {
		return raw, err
	}
	defer conn.Conn.Close()

	started := time.Now()
	pdus, err := Walk(conn, mib.Attributes)
	if err != nil {
		return raw, err
	}

	values, err := decoder.Align(mib.Attributes, pdus)
	if err != nil {
		return raw, err
	}

	raw = decoder.RawStatus{
		Target:      target,
		Values:      values,
		CollectedAt: time.Now(),
	}

	f.logger.Debug("poll completed",
		"target", target,
		"attribute_count", len(values),
		"duration_ms", raw.CollectedAt.Sub(started).Milliseconds(),
	)
	return raw, nil
}

// Ping checks that the device answers SNMP at all by requesting the model
// identifier only. It is an explicit opt-in reachability probe; nothing in the
// query path calls it.
func (f *SNMPFetcher) Ping(target string, opts config.Options) error {
	conn, err := NewSession(target, opts)
	if err != nil {
		return err
	}
	defer conn.Conn.Close()

	_, err = Walk(conn, []string{mib.BasicIdentModel})
	return err
}

type noopWriter struct{}

func (noopWriter) Write(p []byte) (int, error) { return len(p), nil }
