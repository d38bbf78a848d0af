// Command apcups queries an APC UPS management card over SNMP once and prints
// its status.
//
// Usage:
//
//	apcups [flags] <host> [community]
//
// community defaults to "public" (overridable with APCUPS_COMMUNITY or a YAML
// defaults file). The process exits non-zero on the first error.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/vpbank/apcups/format/report"
	"github.com/vpbank/apcups/pkg/ups"
	"github.com/vpbank/apcups/pkg/ups/config"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "apcups: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// ── Flags ────────────────────────────────────────────────────────────
	var (
		logLevel string
		logFmt   string
		format   string
		pretty   bool
		cfgFile  string
		port     int
		timeout  int
		retries  int
		mibPath  string
		ping     bool
	)

	flag.StringVar(&logLevel, "log.level", "warn", "Log level: debug, info, warn, error")
	flag.StringVar(&logFmt, "log.fmt", "text", "Log format: json, text")
	flag.StringVar(&format, "format", "text", "Report format: text, json")
	flag.BoolVar(&pretty, "format.pretty", false, "Pretty-print JSON output")
	flag.StringVar(&cfgFile, "config", "", "Optional YAML defaults file")
	flag.IntVar(&port, "snmp.port", config.DefaultPort, "SNMP UDP port")
	flag.IntVar(&timeout, "snmp.timeout", config.DefaultTimeoutMS, "Per-request timeout in milliseconds")
	flag.IntVar(&retries, "snmp.retries", config.DefaultRetries, "Retry attempts on timeout")
	flag.StringVar(&mibPath, "mib.path", "", "Verify a local PowerNet MIB file before querying")
	flag.BoolVar(&ping, "ping", false, "Only probe device reachability, print nothing else")

	flag.Usage = usage
	flag.Parse()

	if flag.NArg() < 1 || flag.NArg() > 2 {
		usage()
		return fmt.Errorf("expected <host> [community]")
	}
	host := flag.Arg(0)

	// ── Logger ───────────────────────────────────────────────────────────
	logger, err := buildLogger(logLevel, logFmt)
	if err != nil {
		return err
	}

	// ── Options ──────────────────────────────────────────────────────────
	opts := config.Defaults()
	if cfgFile != "" {
		opts, err = config.Load(cfgFile, logger)
		if err != nil {
			return err
		}
	}

	// Explicitly-set flags win over the defaults file.
	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if set["snmp.port"] {
		opts.Port = port
	}
	if set["snmp.timeout"] {
		opts.TimeoutMS = timeout
	}
	if set["snmp.retries"] {
		opts.Retries = retries
	}
	if set["mib.path"] {
		opts.MIBPath = mibPath
	}
	if flag.NArg() == 2 {
		opts.Community = flag.Arg(1)
	}

	// ── Query and report ─────────────────────────────────────────────────
	u := ups.New(host, opts, logger)
	if u.Failed() {
		return fmt.Errorf("%s", u.ErrorMessage())
	}

	if ping {
		if err := u.Ping(); err != nil {
			return fmt.Errorf("UPS is not reachable: %v", err)
		}
		fmt.Println("UPS is reachable.")
		return nil
	}

	if err := u.Query(); err != nil {
		return fmt.Errorf("%s", u.ErrorMessage())
	}

	var formatter report.Formatter
	switch format {
	case "text":
		formatter = report.NewTextFormatter()
	case "json":
		formatter = report.NewJSONFormatter(report.Config{PrettyPrint: pretty}, logger)
	default:
		return fmt.Errorf("unknown format %q (expected text|json)", format)
	}

	out, err := formatter.Format(u)
	if err != nil {
		return err
	}
	fmt.Print(string(out))
	if format == "json" {
		fmt.Println()
	}
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────────────────────────────────────

func usage() {
	fmt.Fprintf(os.Stderr, "usage: apcups [flags] <host> [community]\n\nFlags:\n")
	flag.PrintDefaults()
}

func buildLogger(level, format string) (*slog.Logger, error) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "info":
		lvl = slog.LevelInfo
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		return nil, fmt.Errorf("unknown log level %q (expected debug|info|warn|error)", level)
	}

	opts := &slog.HandlerOptions{Level: lvl}
	var handler slog.Handler

	switch format {
	case "json":
		handler = slog.NewJSONHandler(os.Stderr, opts)
	case "text":
		handler = slog.NewTextHandler(os.Stderr, opts)
	default:
		return nil, fmt.Errorf("unknown log format %q (expected json|text)", format)
	}

	return slog.New(handler), nil
}
