package ups

import (
	"errors"
	"testing"
	"time"

	"github.com/vpbank/apcups/pkg/ups/config"
	"github.com/vpbank/apcups/snmp/decoder"
)

// countingFetcher fails the test if any network-facing call happens.
type countingFetcher struct {
	fetches int
	pings   int
}

func (f *countingFetcher) Fetch(target string, _ config.Options) (decoder.RawStatus, error) {
	f.fetches++
	return decoder.RawStatus{Target: target, CollectedAt: time.Now()}, nil
}

func (f *countingFetcher) Ping(string, config.Options) error {
	f.pings++
	return nil
}

func failingResolver(host string) ([]string, error) {
	return nil, errors.New("no such host")
}

func TestResolutionFailure_SticksAndBlocksQuery(t *testing.T) {
	f := &countingFetcher{}
	u := newUPS("ups01.example.com", config.Defaults(), f, failingResolver, nil)

	if !u.Failed() {
		t.Fatal("handle must be failed after resolution failure")
	}
	if !errors.Is(u.Err(), ErrResolution) {
		t.Errorf("Err = %v, want ErrResolution", u.Err())
	}
	if got, want := u.ErrorMessage(), "Can't resolve: ups01.example.com"; got != want {
		t.Errorf("ErrorMessage = %q, want %q", got, want)
	}

	// Every accessor returns its zero value and no query is ever attempted.
	if got := u.Charge(); got != 0 {
		t.Errorf("Charge = %v, want 0", got)
	}
	if got := u.Model(); got != "" {
		t.Errorf("Model = %q, want empty", got)
	}
	if on, known := u.OnBattery(); on || known {
		t.Errorf("OnBattery = (%v, %v), want (false, false)", on, known)
	}
	if err := u.Query(); !errors.Is(err, ErrResolution) {
		t.Errorf("Query = %v, want the sticky resolution error", err)
	}
	if f.fetches != 0 || f.pings != 0 {
		t.Errorf("fetches=%d pings=%d, want 0 and 0", f.fetches, f.pings)
	}
}

func TestResolution_PicksFirstAddress(t *testing.T) {
	resolve := func(string) ([]string, error) {
		return []string{"192.0.2.20", "192.0.2.21"}, nil
	}
	u := newUPS("ups01.example.com", config.Defaults(), &countingFetcher{}, resolve, nil)

	if u.Failed() {
		t.Fatalf("unexpected failure: %v", u.Err())
	}
	if u.Addr() != "192.0.2.20" {
		t.Errorf("Addr = %q, want first resolved address", u.Addr())
	}
}

func TestResolution_IPLiteralSkipsLookup(t *testing.T) {
	resolve := func(string) ([]string, error) {
		t.Fatal("resolver must not run for an IP literal")
		return nil, nil
	}
	u := newUPS("192.0.2.10", config.Defaults(), &countingFetcher{}, resolve, nil)

	if u.Failed() {
		t.Fatalf("unexpected failure: %v", u.Err())
	}
	if u.Addr() != "192.0.2.10" {
		t.Errorf("Addr = %q, want the literal", u.Addr())
	}
}
