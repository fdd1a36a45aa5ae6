package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf"
	kyaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/mitchellh/mapstructure"
)

// EnvPrefix marks environment overrides. Sections and keys are separated by a
// double underscore: BYTESIZE_SERVER__MAX_BODY_SIZE=4MiB.
const EnvPrefix = "BYTESIZE_"

// LoadFromEnvOrFile layers defaults, the optional YAML file at path and
// BYTESIZE_ environment variables, in that order, then validates the result.
func LoadFromEnvOrFile(path string) (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(confmap.Provider(defaultMap(), "."), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}
	if path = strings.TrimSpace(path); path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("open config: %w", err)
		}
		if err := k.Load(file.Provider(path), kyaml.Parser()); err != nil {
			return nil, fmt.Errorf("decode config: %w", err)
		}
	}
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	var cfg Config
	err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{
		Tag: "yaml",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook:       mapstructure.TextUnmarshallerHookFunc(),
			Result:           &cfg,
			WeaklyTypedInput: true,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &cfg, cfg.Validate()
}

func envKey(name string) string {
	key := strings.ToLower(strings.TrimPrefix(name, EnvPrefix))
	return strings.ReplaceAll(key, "__", ".")
}

// defaultMap mirrors Default in the textual form the decoder hook expects.
func defaultMap() map[string]interface{} {
	d := Default()
	format, _ := d.Display.Format.MarshalText()
	return map[string]interface{}{
		"server.host":           d.Server.Host,
		"server.port":           d.Server.Port,
		"server.read_timeout":   d.Server.ReadTimeout.String(),
		"server.write_timeout":  d.Server.WriteTimeout.String(),
		"server.max_body_size":  fmt.Sprintf("%d", d.Server.MaxBodySize.Uint64()),
		"display.format":        string(format),
		"display.precision":     d.Display.Precision,
		"usage.min_size":        fmt.Sprintf("%d", d.Usage.MinSize.Uint64()),
		"usage.follow_symlinks": d.Usage.FollowSymlinks,
	}
}
