// Package config resolves the CLI settings from a config file and
// TRACETM_* environment variables. Command-line flags are applied on top by
// the commands themselves.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// DefaultFile is read when no --config is given and it exists.
const DefaultFile = "tracetm.yaml"

// EnvPrefix prefixes every environment override.
const EnvPrefix = "TRACETM_"

// StoreConfig selects where trace records are kept.
type StoreConfig struct {
	// Kind is one of "", "memory", "file" or "redis". Empty keeps nothing.
	Kind          string        `yaml:"kind" json:"kind"`
	Path          string        `yaml:"path" json:"path"`
	RedisAddr     string        `yaml:"redis_addr" json:"redis_addr"`
	RedisPassword string        `yaml:"redis_password" json:"redis_password"`
	RedisDB       int           `yaml:"redis_db" json:"redis_db"`
	TTL           time.Duration `yaml:"ttl" json:"ttl"`

	// EncryptionKey is a hex encoded AES-256 key. When set, reports are
	// sealed before they reach the store.
	EncryptionKey string   `yaml:"encryption_key" json:"encryption_key"`
	FallbackKeys  []string `yaml:"fallback_keys" json:"fallback_keys"`
}

// Config is the resolved CLI configuration.
type Config struct {
	Debug   bool        `yaml:"debug" json:"debug"`
	LogFile string      `yaml:"log_file" json:"log_file"`
	Library string      `yaml:"library" json:"library"`
	Format  string      `yaml:"format" json:"format"`
	Store   StoreConfig `yaml:"store" json:"store"`
	Port    int         `yaml:"port" json:"port"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Format: "text",
		Port:   8080,
		Store: StoreConfig{
			Path:      ".tracetm/reports",
			RedisAddr: "localhost:6379",
		},
	}
}

// Load resolves defaults, then the file at path, then the environment.
// An empty path reads DefaultFile when present; an explicit path must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}
	if err := readFile(path, explicit, &cfg); err != nil {
		return cfg, err
	}
	if err := applyEnv(os.Environ(), &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func readFile(path string, explicit bool, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}

	if strings.ToLower(filepath.Ext(path)) == ".json" {
		if err := json.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("failed to parse %s: %w", path, err)
		}
		return nil
	}
	// Default to YAML
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

// applyEnv overlays TRACETM_* variables. Nested keys use an underscore
// after the section name: TRACETM_STORE_REDIS_ADDR sets store.redis_addr.
func applyEnv(environ []string, cfg *Config) error {
	top := map[string]any{}
	store := map[string]any{}

	for _, kv := range environ {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(key, EnvPrefix) {
			continue
		}
		name := strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
		switch {
		case name == "store":
			store["kind"] = value
		case strings.HasPrefix(name, "store_"):
			store[strings.TrimPrefix(name, "store_")] = value
		case name == "redis_addr":
			store["redis_addr"] = value
		default:
			top[name] = value
		}
	}
	if len(store) > 0 {
		top["store"] = store
	}
	if len(top) == 0 {
		return nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "yaml",
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
		Result:           cfg,
	})
	if err != nil {
		return err
	}
	if err := decoder.Decode(top); err != nil {
		return fmt.Errorf("invalid %s environment: %w", EnvPrefix, err)
	}
	return nil
}
