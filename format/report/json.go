package report

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/vpbank/apcups/models"
	"github.com/vpbank/apcups/pkg/ups"
)

// ─────────────────────────────────────────────────────────────────────────────
// Configuration
// ─────────────────────────────────────────────────────────────────────────────

// Config controls JSONFormatter behaviour.
type Config struct {
	// PrettyPrint emits indented, human-readable JSON when true.
	PrettyPrint bool

	// Indent is the indent string used when PrettyPrint=true.
	// Defaults to two spaces when empty and PrettyPrint=true.
	Indent string
}

// ─────────────────────────────────────────────────────────────────────────────
// JSONFormatter
// ─────────────────────────────────────────────────────────────────────────────

// statusReport is the JSON document schema: the full decoded record plus the
// derived readings the text report prints.
type statusReport struct {
	Hostname  string    `json:"hostname"`
	Address   string    `json:"address"`
	QueriedAt time.Time `json:"queried_at"`

	Status models.Status `json:"status"`

	RuntimeSeconds  int64   `json:"runtime_seconds"`
	ChargeFraction  float64 `json:"charge_fraction"`
	LoadFraction    float64 `json:"load_fraction"`
	OnBattery       *bool   `json:"on_battery,omitempty"`
	NeedsNewBattery *bool   `json:"needs_new_battery,omitempty"`
}

// JSONFormatter implements Formatter using encoding/json. All fields are
// immutable after construction.
type JSONFormatter struct {
	cfg    Config
	logger *slog.Logger
}

// NewJSONFormatter constructs a JSONFormatter. If logger is nil, a no-op
// logger is substituted.
func NewJSONFormatter(cfg Config, logger *slog.Logger) *JSONFormatter {
	if logger == nil {
		logger = noopLogger()
	}
	if cfg.PrettyPrint && cfg.Indent == "" {
		cfg.Indent = "  "
	}
	return &JSONFormatter{cfg: cfg, logger: logger}
}

// Format implements Formatter. The two tri-state flags are omitted from the
// output when their value is unknown.
func (f *JSONFormatter) Format(u *ups.UPS) ([]byte, error) {
	if u == nil {
		return nil, fmt.Errorf("format/report: handle must not be nil")
	}

	doc := statusReport{
		Hostname:       u.Hostname(),
		Address:        u.Addr(),
		Status:         u.Status(),
		QueriedAt:      u.QueriedAt(),
		RuntimeSeconds: u.Runtime(),
		ChargeFraction: u.Charge(),
		LoadFraction:   u.Load(),
	}
	if on, known := u.OnBattery(); known {
		doc.OnBattery = &on
	}
	if needs, known := u.NeedsNewBattery(); known {
		doc.NeedsNewBattery = &needs
	}

	if err := u.Err(); err != nil {
		return nil, err
	}

	var (
		data []byte
		err  error
	)
	if f.cfg.PrettyPrint {
		data, err = json.MarshalIndent(doc, "", f.cfg.Indent)
	} else {
		data, err = json.Marshal(doc)
	}
	if err != nil {
		f.logger.Error("format/report: marshal failed",
			"hostname", u.Hostname(),
			"error", err.Error(),
		)
		return nil, fmt.Errorf("format/report: marshal: %w", err)
	}

	f.logger.Debug("format/report: formatted status",
		"hostname", u.Hostname(),
		"bytes", len(data),
	)
	return data, nil
}
