package config

import (
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"kestrel/domain/instrument"
)

// Duration makes time.Duration usable in yaml ("250ms", "5s").
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("config: bad duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) Std() time.Duration { return time.Duration(d) }

type Config struct {
	Instrument InstrumentConfig `yaml:"instrument"`
	Tape       TapeConfig       `yaml:"tape"`
	Outbox     OutboxConfig     `yaml:"outbox"`
	Kafka      KafkaConfig      `yaml:"kafka"`
	Archive    ArchiveConfig    `yaml:"archive"`
	GRPC       GRPCConfig       `yaml:"grpc"`
	HTTP       HTTPConfig       `yaml:"http"`
}

// InstrumentConfig holds tick and lot as strings; yaml has no decimal
// type and floats would corrupt them.
type InstrumentConfig struct {
	Symbol string `yaml:"symbol"`
	Tick   string `yaml:"tick"`
	Lot    string `yaml:"lot"`
}

// Build parses the conventions into a usable instrument.
func (c InstrumentConfig) Build() (*instrument.Instrument, error) {
	tick, err := decimal.NewFromString(c.Tick)
	if err != nil {
		return nil, fmt.Errorf("config: bad tick %q: %w", c.Tick, err)
	}
	lot, err := decimal.NewFromString(c.Lot)
	if err != nil {
		return nil, fmt.Errorf("config: bad lot %q: %w", c.Lot, err)
	}
	return instrument.New(c.Symbol, tick, lot)
}

type TapeConfig struct {
	Dir         string `yaml:"dir"`
	SegmentSize int64  `yaml:"segment_size"`
}

type OutboxConfig struct {
	Dir string `yaml:"dir"`
}

// KafkaConfig wires both directions: commands in through the consumer
// group, events out through the broadcaster. Enabled false runs the
// engine with gRPC and HTTP only.
type KafkaConfig struct {
	Enabled         bool     `yaml:"enabled"`
	Brokers         []string `yaml:"brokers"`
	CommandTopic    string   `yaml:"command_topic"`
	CommandGroup    string   `yaml:"command_group"`
	EventTopic      string   `yaml:"event_topic"`
	DeadLetterTopic string   `yaml:"dead_letter_topic"`
	DrainInterval   Duration `yaml:"drain_interval"`
}

// ArchiveConfig points at the trade database. An empty URL disables
// archiving; DATABASE_URL overrides are applied by the caller.
type ArchiveConfig struct {
	DatabaseURL string `yaml:"database_url"`
}

type GRPCConfig struct {
	Addr string `yaml:"addr"`
}

type HTTPConfig struct {
	Addr            string   `yaml:"addr"`
	ShutdownTimeout Duration `yaml:"shutdown_timeout"`
}

// Default is the configuration the engine runs with when no file is
// given.
func Default() Config {
	return Config{
		Instrument: InstrumentConfig{Symbol: "KES-USD", Tick: "0.01", Lot: "1"},
		Tape:       TapeConfig{Dir: "./data/tape", SegmentSize: 64 << 20},
		Outbox:     OutboxConfig{Dir: "./data/outbox"},
		Kafka: KafkaConfig{
			Enabled:         false,
			Brokers:         []string{"localhost:9092"},
			CommandTopic:    "kestrel.commands",
			CommandGroup:    "kestrel-engine",
			EventTopic:      "kestrel.events",
			DeadLetterTopic: "kestrel.commands.dlq",
			DrainInterval:   Duration(250 * time.Millisecond),
		},
		GRPC: GRPCConfig{Addr: ":50051"},
		HTTP: HTTPConfig{Addr: ":8080", ShutdownTimeout: Duration(5 * time.Second)},
	}
}

// Load reads a yaml file over the defaults, so a partial file only
// overrides what it names.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}
