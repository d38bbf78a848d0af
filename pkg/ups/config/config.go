// Package config provides the client options for the APC UPS SNMP client.
//
// Options are resolved in three layers: hard-coded fallbacks, an optional YAML
// defaults file, and whatever the caller (CLI flags, library constructor) sets
// explicitly on top.
package config

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vpbank/apcups/snmp/mib"
)

// ─────────────────────────────────────────────────────────────────────────────
// Options
// ─────────────────────────────────────────────────────────────────────────────

// Hard-coded fallbacks. The 500 ms timeout with a single retry bounds one
// request at ~1 s worst case.
const (
	DefaultCommunity = "public"
	DefaultPort      = 161
	DefaultTimeoutMS = 500
	DefaultRetries   = 1
)

// EnvCommunity overrides the default community string when set.
const EnvCommunity = "APCUPS_COMMUNITY"

// Options is the fully-resolved client configuration for a single UPS target.
type Options struct {
	// Community is the SNMP v1 community string.
	Community string

	// Port is the UDP port for SNMP requests.
	Port int

	// TimeoutMS is the per-request timeout in milliseconds.
	TimeoutMS int

	// Retries is the number of retry attempts on timeout.
	Retries int

	// MIBPath, when non-empty, names a local PowerNet MIB file whose presence
	// is verified before any network I/O. Empty skips the check — the OID
	// tables are compiled in.
	MIBPath string
}

// Defaults returns the hard-coded fallback options, with the community and
// MIB path overridable from the environment.
func Defaults() Options {
	return Options{
		Community: envOr(EnvCommunity, DefaultCommunity),
		Port:      DefaultPort,
		TimeoutMS: DefaultTimeoutMS,
		Retries:   DefaultRetries,
		MIBPath:   mib.PathFromEnv(),
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// ─────────────────────────────────────────────────────────────────────────────
// YAML defaults file
// ─────────────────────────────────────────────────────────────────────────────

// rawDefaultsFile maps 1-to-1 with the optional defaults YAML schema.
type rawDefaultsFile struct {
	Community string `yaml:"community"`
	Port      int    `yaml:"port"`
	TimeoutMS int    `yaml:"timeout"`
	Retries   int    `yaml:"retries"`
	MIBPath   string `yaml:"mib_path"`
}

// Load reads a YAML defaults file and merges it over Defaults(). Zero-valued
// fields in the file keep their fallback.
func Load(path string, logger *slog.Logger) (Options, error) {
	opts := Defaults()

	var raw rawDefaultsFile
	if err := decodeFile(path, &raw); err != nil {
		return opts, fmt.Errorf("config: load %q: %w", path, err)
	}

	if raw.Community != "" {
		opts.Community = raw.Community
	}
	if raw.Port != 0 {
		opts.Port = raw.Port
	}
	if raw.TimeoutMS != 0 {
		opts.TimeoutMS = raw.TimeoutMS
	}
	if raw.Retries != 0 {
		opts.Retries = raw.Retries
	}
	if raw.MIBPath != "" {
		opts.MIBPath = raw.MIBPath
	}

	if logger != nil {
		logger.Debug("config: loaded defaults file", "file", path)
	}
	return opts, nil
}

// decodeFile opens path and unmarshals the YAML content into out.
func decodeFile(path string, out interface{}) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	dec := yaml.NewDecoder(f)
	dec.KnownFields(false) // be lenient — extra keys are fine
	return dec.Decode(out)
}
