// Package config provides configuration types and defaults for voxlink.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/zjrosen/voxlink/internal/log"
	"github.com/zjrosen/voxlink/internal/telemetry"
	"github.com/zjrosen/voxlink/internal/voice"
)

// Config holds all configuration options for voxlink.
type Config struct {
	// ClientID is the bot user ID reported to nodes. Optional; Initialize
	// may supply it instead.
	ClientID   string              `mapstructure:"client_id" yaml:"client_id,omitempty"`
	ClientName string              `mapstructure:"client_name" yaml:"client_name"`
	Nodes      []voice.NodeOptions `mapstructure:"nodes" yaml:"nodes"`
	Log        LogConfig           `mapstructure:"log" yaml:"log"`
	Tracing    TracingConfig       `mapstructure:"tracing" yaml:"tracing"`
}

// LogConfig holds logging options.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `mapstructure:"level" yaml:"level"`
	// Format is "console" or "json".
	Format string `mapstructure:"format" yaml:"format"`
	// File redirects log output from stderr to a file.
	File string `mapstructure:"file" yaml:"file,omitempty"`
}

// TracingConfig holds OpenTelemetry options.
type TracingConfig struct {
	// Exporter is one of none, stdout, otlp.
	Exporter string `mapstructure:"exporter" yaml:"exporter"`
	// Endpoint is the OTLP collector address (host:port).
	Endpoint string `mapstructure:"endpoint" yaml:"endpoint,omitempty"`
	Insecure bool   `mapstructure:"insecure" yaml:"insecure,omitempty"`
}

// DefaultNodes returns a single local Lavalink node.
func DefaultNodes() []voice.NodeOptions {
	return []voice.NodeOptions{
		{
			Identifier: "local",
			URL:        "localhost:2333",
			Password:   "youshallnotpass",
		},
	}
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		ClientName: "voxlink",
		Nodes:      DefaultNodes(),
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		Tracing: TracingConfig{
			Exporter: telemetry.ExporterNone,
		},
	}
}

// Load decodes the configuration held by v on top of Defaults. A configured
// node list replaces the default one instead of being merged into it.
func Load(v *viper.Viper) (Config, error) {
	cfg := Defaults()
	if v.IsSet("nodes") {
		cfg.Nodes = nil
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	return cfg, nil
}

// ValidateNodes checks node configuration for errors.
func ValidateNodes(nodes []voice.NodeOptions) error {
	if len(nodes) == 0 {
		return fmt.Errorf("at least one node is required")
	}

	seen := make(map[string]int, len(nodes))
	for i, n := range nodes {
		if n.URL == "" {
			return fmt.Errorf("node %d: url is required", i)
		}
		if n.Identifier == "" {
			continue // generated at connect time
		}
		if prev, ok := seen[n.Identifier]; ok {
			return fmt.Errorf("node %d (%s): identifier already used by node %d", i, n.Identifier, prev)
		}
		seen[n.Identifier] = i
	}
	return nil
}

// Validate checks the whole configuration.
func (c Config) Validate() error {
	if err := ValidateNodes(c.Nodes); err != nil {
		return fmt.Errorf("nodes: %w", err)
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log: %w", err)
	}
	switch c.Log.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("log: unknown format %q", c.Log.Format)
	}
	switch c.Tracing.Exporter {
	case "", telemetry.ExporterNone, telemetry.ExporterStdout:
	case telemetry.ExporterOTLP:
		if c.Tracing.Endpoint == "" {
			return fmt.Errorf("tracing: endpoint is required for the otlp exporter")
		}
	default:
		return fmt.Errorf("tracing: unknown exporter %q", c.Tracing.Exporter)
	}
	return nil
}

// NodeDescriptors returns fresh descriptors for the configured nodes. The
// orchestrator writes generated identifiers onto them, not onto c.
func (c Config) NodeDescriptors() []*voice.NodeOptions {
	out := make([]*voice.NodeOptions, len(c.Nodes))
	for i := range c.Nodes {
		n := c.Nodes[i]
		out[i] = &n
	}
	return out
}

// LogOptions converts the log section for log.NewLogger.
func (c Config) LogOptions() log.Options {
	return log.Options{Level: c.Log.Level, Format: c.Log.Format, File: c.Log.File}
}

// TelemetryOptions converts the tracing section for telemetry.Setup.
func (c Config) TelemetryOptions() telemetry.Options {
	return telemetry.Options{
		Exporter: c.Tracing.Exporter,
		Endpoint: c.Tracing.Endpoint,
		Insecure: c.Tracing.Insecure,
	}
}

// WriteYAML encodes cfg to w.
func WriteYAML(w io.Writer, cfg Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return enc.Close()
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# voxlink configuration

# Bot user ID sent to nodes as User-Id. May also come from VOXLINK_CLIENT_ID.
# client_id: "123456789012345678"

# Sent to nodes as Client-Name
client_name: voxlink

# Audio backend nodes, connected in order. The first one is the default
# for track resolution and new players.
nodes:
  - identifier: local       # omit to generate a random 8-hex-char id
    url: localhost:2333
    password: youshallnotpass
    # secure: true          # use wss:// and https://

log:
  level: info               # debug, info, warn, error
  format: console           # console or json
  # file: /var/log/voxlink.log

tracing:
  exporter: none            # none, stdout or otlp
  # endpoint: localhost:4317
  # insecure: true
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
