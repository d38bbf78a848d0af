// Package poller performs the SNMP leg of a UPS status query: it turns client
// options into a live gosnmp session and executes the fixed GET-NEXT walk over
// the PowerNet ups subtree, producing the RawStatus consumed by the decoder.
package poller

import (
	"errors"
	"fmt"
	"time"

	"github.com/gosnmp/gosnmp"

	"github.com/vpbank/apcups/pkg/ups/config"
)

// ErrConnect marks session-establishment failures so the client can
// distinguish transport errors from walk errors.
var ErrConnect = errors.New("snmp connect failed")

// NewSession creates and connects a gosnmp session for the given target
// address. APC management cards speak SNMPv1 with community auth; the session
// carries the fixed per-request timeout and retry budget from opts. The caller
// is responsible for closing the underlying connection when done.
func NewSession(target string, opts config.Options) (*gosnmp.GoSNMP, error) {
	g := &gosnmp.GoSNMP{
		Target:    target,
		Port:      uint16(opts.Port),
		Version:   gosnmp.Version1,
		Community: opts.Community,
		Timeout:   time.Duration(opts.TimeoutMS) * time.Millisecond,
		Retries:   opts.Retries,
		MaxOids:   gosnmp.MaxOids,
	}

	if err := g.Connect(); err != nil {
		return nil, fmt.Errorf("%w: %s:%d: %v", ErrConnect, target, opts.Port, err)
	}
	return g, nil
}
