package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "kestrel.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeFile(t, `
instrument:
  symbol: BTC-USD
  tick: "0.25"
  lot: "0.001"
tape:
  dir: /var/lib/kestrel/tape
kafka:
  enabled: true
  brokers: ["k1:9092", "k2:9092"]
http:
  shutdown_timeout: 10s
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Instrument.Symbol != "BTC-USD" {
		t.Errorf("symbol = %q", cfg.Instrument.Symbol)
	}
	if cfg.Tape.Dir != "/var/lib/kestrel/tape" {
		t.Errorf("tape dir = %q", cfg.Tape.Dir)
	}
	// untouched keys keep their defaults
	if cfg.Tape.SegmentSize != 64<<20 {
		t.Errorf("segment size = %d", cfg.Tape.SegmentSize)
	}
	if cfg.Outbox.Dir != "./data/outbox" {
		t.Errorf("outbox dir = %q", cfg.Outbox.Dir)
	}
	if !cfg.Kafka.Enabled || len(cfg.Kafka.Brokers) != 2 {
		t.Errorf("kafka = %+v", cfg.Kafka)
	}
	if cfg.Kafka.CommandTopic != "kestrel.commands" {
		t.Errorf("command topic = %q", cfg.Kafka.CommandTopic)
	}
	if cfg.Kafka.DrainInterval.Std() != 250*time.Millisecond {
		t.Errorf("drain interval = %v", cfg.Kafka.DrainInterval.Std())
	}
	if cfg.HTTP.ShutdownTimeout.Std() != 10*time.Second {
		t.Errorf("shutdown timeout = %v", cfg.HTTP.ShutdownTimeout.Std())
	}
}

func TestInstrumentBuild(t *testing.T) {
	ins, err := Default().Instrument.Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if !ins.Tick().Equal(decimal.RequireFromString("0.01")) {
		t.Errorf("tick = %s", ins.Tick())
	}

	bad := InstrumentConfig{Symbol: "X", Tick: "not-a-number", Lot: "1"}
	if _, err := bad.Build(); err == nil {
		t.Error("bad tick accepted")
	}
}

func TestLoadRejectsBadDuration(t *testing.T) {
	path := writeFile(t, `
http:
  shutdown_timeout: quickly
`)
	if _, err := Load(path); err == nil {
		t.Error("bad duration accepted")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("missing file accepted")
	}
}
