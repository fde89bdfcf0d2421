package config

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix marks environment variables read by Load. A double underscore
// separates nesting levels: OVERSEER_SINK__REDIS__ADDR sets sink.redis.addr.
const EnvPrefix = "OVERSEER_"

// Sink types.
const (
	SinkNone     = "none"
	SinkLog      = "log"
	SinkFile     = "file"
	SinkPostgres = "postgres"
	SinkKafka    = "kafka"
	SinkRedis    = "redis"
	SinkMulti    = "multi"
)

var sinkTypes = []string{SinkNone, SinkLog, SinkFile, SinkPostgres, SinkKafka, SinkRedis, SinkMulti}

// Config represents the top-level application config.
type Config struct {
	Server     ServerConfig     `koanf:"server"`
	Log        LogConfig        `koanf:"log"`
	Supervisor SupervisorConfig `koanf:"supervisor"`
	Sink       SinkConfig       `koanf:"sink"`
}

type ServerConfig struct {
	Port          int    `koanf:"port"`
	Host          string `koanf:"host"`
	MaxBodySizeMB int    `koanf:"max_body_size_mb"`
	Mode          string `koanf:"mode"` // debug | release
}

type LogConfig struct {
	Level  string `koanf:"level"`  // debug | info | warn | error
	Format string `koanf:"format"` // text | json
}

type SupervisorConfig struct {
	// PolicyFile is an optional YAML policy patch applied over the defaults.
	PolicyFile string `koanf:"policy_file"`
	// HistoryLimit overrides the retention bound when > 0. It is applied after
	// the policy file.
	HistoryLimit int `koanf:"history_limit"`
}

type SinkConfig struct {
	Type         string        `koanf:"type"`
	QueueSize    int           `koanf:"queue_size"`
	WriteTimeout time.Duration `koanf:"write_timeout"`

	// Targets lists the backends fanned out to when Type is "multi".
	Targets []string `koanf:"targets"`

	File     FileSinkConfig     `koanf:"file"`
	Postgres PostgresSinkConfig `koanf:"postgres"`
	Kafka    KafkaSinkConfig    `koanf:"kafka"`
	Redis    RedisSinkConfig    `koanf:"redis"`
}

type FileSinkConfig struct {
	Path string `koanf:"path"`
}

type PostgresSinkConfig struct {
	DSN          string `koanf:"dsn"`
	MaxOpenConns int    `koanf:"max_open_conns"`
	MaxIdleConns int    `koanf:"max_idle_conns"`
	AutoMigrate  bool   `koanf:"auto_migrate"`
}

type KafkaSinkConfig struct {
	Brokers []string `koanf:"brokers"`
	Topic   string   `koanf:"topic"`
}

type RedisSinkConfig struct {
	Addr   string `koanf:"addr"`
	Key    string `koanf:"key"`
	MaxLen int64  `koanf:"max_len"`
}

// Backends returns the concrete sink types to build: Targets for "multi",
// otherwise Type itself. "none" yields nothing.
func (c SinkConfig) Backends() []string {
	switch c.Type {
	case SinkNone:
		return nil
	case SinkMulti:
		return c.Targets
	default:
		return []string{c.Type}
	}
}

func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d (must be 1-65535)", c.Server.Port)
	}
	if strings.TrimSpace(c.Server.Host) == "" {
		return fmt.Errorf("server.host is required")
	}
	if c.Server.MaxBodySizeMB <= 0 {
		return fmt.Errorf("server.max_body_size_mb must be > 0")
	}
	if c.Server.Mode != "debug" && c.Server.Mode != "release" {
		return fmt.Errorf("invalid server.mode %q (must be debug or release)", c.Server.Mode)
	}

	if !slices.Contains([]string{"debug", "info", "warn", "error"}, c.Log.Level) {
		return fmt.Errorf("invalid log.level %q", c.Log.Level)
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return fmt.Errorf("invalid log.format %q (must be text or json)", c.Log.Format)
	}

	if c.Supervisor.HistoryLimit < 0 {
		return fmt.Errorf("supervisor.history_limit must be >= 0")
	}

	return c.Sink.validate()
}

func (c *SinkConfig) validate() error {
	if !slices.Contains(sinkTypes, c.Type) {
		return fmt.Errorf("unsupported sink.type %q", c.Type)
	}
	if c.QueueSize <= 0 {
		return fmt.Errorf("sink.queue_size must be > 0")
	}
	if c.WriteTimeout <= 0 {
		return fmt.Errorf("sink.write_timeout must be > 0")
	}

	if c.Type == SinkMulti {
		if len(c.Targets) == 0 {
			return fmt.Errorf("sink.targets is required for sink.type multi")
		}
		for _, t := range c.Targets {
			if t == SinkMulti || t == SinkNone || !slices.Contains(sinkTypes, t) {
				return fmt.Errorf("invalid sink target %q", t)
			}
		}
	}

	for _, backend := range c.Backends() {
		switch backend {
		case SinkFile:
			if strings.TrimSpace(c.File.Path) == "" {
				return fmt.Errorf("sink.file.path is required")
			}
		case SinkPostgres:
			if strings.TrimSpace(c.Postgres.DSN) == "" {
				return fmt.Errorf("sink.postgres.dsn is required")
			}
			if c.Postgres.MaxOpenConns <= 0 {
				return fmt.Errorf("sink.postgres.max_open_conns must be > 0")
			}
			if c.Postgres.MaxIdleConns <= 0 {
				return fmt.Errorf("sink.postgres.max_idle_conns must be > 0")
			}
		case SinkKafka:
			if len(c.Kafka.Brokers) == 0 {
				return fmt.Errorf("sink.kafka.brokers is required")
			}
			if strings.TrimSpace(c.Kafka.Topic) == "" {
				return fmt.Errorf("sink.kafka.topic is required")
			}
		case SinkRedis:
			if strings.TrimSpace(c.Redis.Addr) == "" {
				return fmt.Errorf("sink.redis.addr is required")
			}
			if strings.TrimSpace(c.Redis.Key) == "" {
				return fmt.Errorf("sink.redis.key is required")
			}
			if c.Redis.MaxLen < 0 {
				return fmt.Errorf("sink.redis.max_len must be >= 0")
			}
		}
	}
	return nil
}

// Load parses config from defaults, then file, then env, and validates it.
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	defaults := map[string]interface{}{
		"server.port":                  8080,
		"server.host":                  "0.0.0.0",
		"server.max_body_size_mb":      1,
		"server.mode":                  "release",
		"log.level":                    "info",
		"log.format":                   "text",
		"supervisor.policy_file":       "",
		"supervisor.history_limit":     0,
		"sink.type":                    SinkLog,
		"sink.queue_size":              1024,
		"sink.write_timeout":           "5s",
		"sink.file.path":               "./overseer-audit.log",
		"sink.postgres.max_open_conns": 10,
		"sink.postgres.max_idle_conns": 5,
		"sink.postgres.auto_migrate":   true,
		"sink.kafka.topic":             "overseer.audit",
		"sink.redis.key":               "overseer:audit",
		"sink.redis.max_len":           10000,
	}
	for key, value := range defaults {
		k.Set(key, value)
	}

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".", -1)
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
