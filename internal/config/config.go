package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"bytesize/pkg/bytesize"
	"bytesize/pkg/configutil"
)

var errEmptyConfigPath = errors.New("config path is empty")

// maxPrecision bounds display.precision; more digits than a float64 carries
// only prints noise.
const maxPrecision = 17

// Config represents the full service configuration loaded from YAML.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Display DisplayConfig `yaml:"display"`
	Usage   UsageConfig   `yaml:"usage"`
}

// ServerConfig describes HTTP server binding parameters.
type ServerConfig struct {
	Host         string            `yaml:"host"`
	Port         int               `yaml:"port"`
	ReadTimeout  Duration          `yaml:"read_timeout"`
	WriteTimeout Duration          `yaml:"write_timeout"`
	MaxBodySize  bytesize.ByteSize `yaml:"max_body_size"`
}

// Address returns the server listen address in host:port form.
func (s ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DisplayConfig holds the rendering defaults used when a request or command
// does not choose its own.
type DisplayConfig struct {
	Format    bytesize.Format `yaml:"format"`
	Precision int             `yaml:"precision"`
}

// Display starts a renderer for size with the configured defaults.
func (d DisplayConfig) Display(size bytesize.ByteSize) bytesize.Display {
	return size.Display().As(d.Format).Precision(d.Precision)
}

// UsageConfig tunes the directory scanner.
type UsageConfig struct {
	MinSize        bytesize.ByteSize `yaml:"min_size"`
	FollowSymlinks bool              `yaml:"follow_symlinks"`
}

// Duration wraps time.Duration to support strings like "30d".
type Duration struct {
	time.Duration
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	if value == nil {
		return nil
	}
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("duration must be a string, got kind %d", value.Kind)
	}
	return d.UnmarshalText([]byte(value.Value))
}

// UnmarshalText implements encoding.TextUnmarshaler; environment values
// arrive through it.
func (d *Duration) UnmarshalText(text []byte) error {
	raw := strings.TrimSpace(string(text))
	if raw == "" || strings.EqualFold(raw, "null") {
		d.Duration = 0
		return nil
	}
	dur, err := configutil.ParseFlexibleDuration(raw)
	if err != nil {
		return err
	}
	d.Duration = dur
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the configuration used when nothing overrides it.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Host:         "127.0.0.1",
			Port:         8080,
			ReadTimeout:  Duration{30 * time.Second},
			WriteTimeout: Duration{30 * time.Second},
			MaxBodySize:  bytesize.MiB,
		},
		Display: DisplayConfig{
			Format:    bytesize.IEC,
			Precision: bytesize.DefaultPrecision,
		},
	}
}

// Load reads and validates configuration from the provided file path.
func Load(path string) (*Config, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errEmptyConfigPath
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()
	return LoadReader(file)
}

// LoadReader decodes configuration from an arbitrary reader. Keys missing
// from the document keep their defaults.
func LoadReader(r io.Reader) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &cfg, cfg.Validate()
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var err error
	if strings.TrimSpace(c.Server.Host) == "" {
		err = multierr.Append(err, errors.New("server.host must be set"))
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		err = multierr.Append(err, fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port))
	}
	if c.Server.ReadTimeout.Duration < 0 {
		err = multierr.Append(err, fmt.Errorf("server.read_timeout must not be negative, got %s", c.Server.ReadTimeout))
	}
	if c.Server.WriteTimeout.Duration < 0 {
		err = multierr.Append(err, fmt.Errorf("server.write_timeout must not be negative, got %s", c.Server.WriteTimeout))
	}
	if c.Server.MaxBodySize == 0 {
		err = multierr.Append(err, errors.New("server.max_body_size must be positive"))
	}
	if _, ferr := c.Display.Format.MarshalText(); ferr != nil {
		err = multierr.Append(err, fmt.Errorf("display.format: %w", ferr))
	}
	if c.Display.Precision < 0 || c.Display.Precision > maxPrecision {
		err = multierr.Append(err, fmt.Errorf("display.precision must be within 0-%d, got %d", maxPrecision, c.Display.Precision))
	}
	return err
}
