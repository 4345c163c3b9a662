// Package config loads dispatcher settings from a YAML or JSON file with
// NORMALIZE_* environment overrides.
package config

import (
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/zoobzio/normalize"
)

// EnvPrefix prefixes environment overrides, e.g. NORMALIZE_METRICS_ENABLED.
const EnvPrefix = "NORMALIZE"

// Config holds dispatcher settings.
type Config struct {
	Tolerant      bool          `mapstructure:"tolerant"`
	DefaultOrigin string        `mapstructure:"default_origin"`
	LogLevel      string        `mapstructure:"log_level"`
	Metrics       MetricsConfig `mapstructure:"metrics"`
}

// MetricsConfig controls Prometheus collection.
type MetricsConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Namespace string `mapstructure:"namespace"`
}

// Default returns the settings used when nothing is configured: fail-fast
// decoding, info logging, metrics off.
func Default() Config {
	return Config{
		LogLevel: "info",
		Metrics: MetricsConfig{
			Namespace: "docker",
		},
	}
}

// Load reads path and applies environment overrides. An empty path loads
// defaults and environment only. The file type is taken from the extension
// (.yaml, .yml or .json).
func Load(path string) (Config, error) {
	v := viper.New()

	def := Default()
	v.SetDefault("tolerant", def.Tolerant)
	v.SetDefault("default_origin", def.DefaultOrigin)
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("metrics.enabled", def.Metrics.Enabled)
	v.SetDefault("metrics.namespace", def.Metrics.Namespace)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		switch ext := filepath.Ext(path); ext {
		case ".yaml", ".yml":
			v.SetConfigType("yaml")
		case ".json":
			v.SetConfigType("json")
		default:
			return Config{}, errors.Newf("config %s: unsupported extension %q", path, ext)
		}
		if err := v.ReadInConfig(); err != nil {
			return Config{}, errors.Wrapf(err, "read config %s", path)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "decode config")
	}
	return cfg, nil
}

// Logger builds a production zap logger at the configured level.
func (c Config) Logger() (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(c.LogLevel)
	if err != nil {
		return nil, errors.Wrapf(err, "log level %q", c.LogLevel)
	}
	zc := zap.NewProductionConfig()
	zc.Level = level
	return zc.Build()
}

// Options maps the settings to dispatcher options. When metrics are
// enabled the collectors are registered with reg.
func (c Config) Options(logger *zap.Logger, reg prometheus.Registerer) ([]normalize.Option, error) {
	opts := []normalize.Option{
		normalize.WithTolerant(c.Tolerant),
		normalize.WithDefaultOrigin(c.DefaultOrigin),
	}
	if logger != nil {
		opts = append(opts, normalize.WithLogger(logger))
	}

	if c.Metrics.Enabled {
		if reg == nil {
			return nil, errors.New("metrics enabled without a registerer")
		}
		m := normalize.NewMetrics(c.Metrics.Namespace)
		if err := m.Register(reg); err != nil {
			return nil, errors.Wrap(err, "register metrics")
		}
		opts = append(opts, normalize.WithMetrics(m))
	}
	return opts, nil
}
