// Package report renders a queried UPS handle for the CLI: a fixed tab-aligned
// text block, or a JSON document of the full decoded status record plus the
// derived readings.
//
// Both formatters read through the handle's accessors, so formatting a
// never-queried handle triggers the one implicit query.
package report

import (
	"log/slog"

	"github.com/vpbank/apcups/pkg/ups"
)

// Formatter renders one UPS handle into a byte slice. Alternative formats
// (Prometheus exposition, NUT-compatible …) can be added by implementing this
// interface without touching any other package.
type Formatter interface {
	Format(u *ups.UPS) ([]byte, error)
}

// noopLogger returns a logger that discards everything, substituted when the
// caller passes nil.
func noopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(noopWriter{}, nil))
}

type noopWriter struct{}

func (noopWriter) Write(p []byte) (int, error) { return len(p), nil }
