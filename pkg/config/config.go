// Package config loads the process configuration: defaults, then an optional
// YAML file, then environment overrides.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/blinks/pkg/catalog"
)

// Environment variables consulted by Load.
const (
	EnvClientKey = "BLINK_CLIENT_KEY"
	EnvBinID     = "BIN_UUID"
)

const (
	DefaultClientKeyHeader = "X-Blink-Client-Key"
	DefaultTimeout         = 30 * time.Second
)

// Config is read-only once loaded.
type Config struct {
	// ClientKey authenticates against the transaction-construction service.
	// An empty key is not a load error; invocations fail with a config error.
	ClientKey       string            `mapstructure:"client_key" yaml:"client_key"`
	ClientKeyHeader string            `mapstructure:"client_key_header" yaml:"client_key_header"`
	BinID           string            `mapstructure:"bin_id" yaml:"bin_id"`
	Timeout         time.Duration     `mapstructure:"timeout" yaml:"timeout"`
	BlinkAPIURL     string            `mapstructure:"blink_api_url" yaml:"blink_api_url"`
	Endpoints       map[string]string `mapstructure:"endpoints" yaml:"endpoints"`
	ActionsFile     string            `mapstructure:"actions_file" yaml:"actions_file"`

	Log     LogConfig     `mapstructure:"log" yaml:"log"`
	Journal JournalConfig `mapstructure:"journal" yaml:"journal"`
	HTTP    HTTPConfig    `mapstructure:"http" yaml:"http"`
	MCP     MCPConfig     `mapstructure:"mcp" yaml:"mcp"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// JournalConfig selects the invocation journal. An empty RedisAddr keeps it in memory.
type JournalConfig struct {
	RedisAddr     string        `mapstructure:"redis_addr" yaml:"redis_addr"`
	RedisPassword string        `mapstructure:"redis_password" yaml:"redis_password"`
	RedisDB       int           `mapstructure:"redis_db" yaml:"redis_db"`
	TTL           time.Duration `mapstructure:"ttl" yaml:"ttl"`
	MaxEntries    int           `mapstructure:"max_entries" yaml:"max_entries"`
}

type HTTPConfig struct {
	Addr string `mapstructure:"addr" yaml:"addr"`
}

type MCPConfig struct {
	Port int `mapstructure:"port" yaml:"port"`
}

// Default returns the configuration used when nothing else is provided.
func Default() *Config {
	return &Config{
		ClientKeyHeader: DefaultClientKeyHeader,
		BinID:           catalog.DefaultBinID,
		Timeout:         DefaultTimeout,
		BlinkAPIURL:     catalog.DefaultBlinkAPI,
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Journal: JournalConfig{
			TTL:        24 * time.Hour,
			MaxEntries: 1000,
		},
		HTTP: HTTPConfig{Addr: ":8080"},
		MCP:  MCPConfig{Port: 8080},
	}
}

// Load builds the configuration. path is optional; when set, the file must exist.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := cfg.merge(data); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	cfg.applyEnv(os.Getenv)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) merge(data []byte) error {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		return nil
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		Result:           c,
	})
	if err != nil {
		return err
	}
	return dec.Decode(raw)
}

func (c *Config) applyEnv(getenv func(string) string) {
	if v := getenv(EnvClientKey); v != "" {
		c.ClientKey = v
	}
	if v := getenv(EnvBinID); v != "" {
		c.BinID = v
	}
}

// Validate reports settings no component could run with.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if c.ClientKeyHeader == "" {
		return fmt.Errorf("client_key_header must not be empty")
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	if c.Journal.MaxEntries <= 0 {
		return fmt.Errorf("journal.max_entries must be positive, got %d", c.Journal.MaxEntries)
	}
	return nil
}

// HasCredential reports whether a client key is configured.
func (c *Config) HasCredential() bool {
	return c.ClientKey != ""
}

// CatalogEndpoints returns the hosts action URLs are formatted against.
func (c *Config) CatalogEndpoints() catalog.Endpoints {
	return catalog.Endpoints{
		Bases:    c.Endpoints,
		BlinkAPI: c.BlinkAPIURL,
		BinID:    c.BinID,
	}
}
