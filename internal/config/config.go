// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package config loads the settings of the jinspect tools from defaults, an
// optional YAML file, and JINSPECT_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/creachadair/jinspect/analysis"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables that override settings.
// The variable for a key replaces dots with underscores, for example
// JINSPECT_ANALYSIS_DEBOUNCE for analysis.debounce.
const EnvPrefix = "JINSPECT"

// Config holds the complete configuration.
type Config struct {
	Analysis AnalysisConfig `mapstructure:"analysis"`
	Render   RenderConfig   `mapstructure:"render"`
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
}

// AnalysisConfig holds the settings of the analysis pipeline.
type AnalysisConfig struct {
	Mode         string        `mapstructure:"mode"`
	Debounce     time.Duration `mapstructure:"debounce"`
	SampleLimit  int           `mapstructure:"sample_limit"`
	MaxFileBytes int64         `mapstructure:"max_file_bytes"`
	Large        LargeConfig   `mapstructure:"large"`
}

// LargeConfig holds the large-document thresholds.
type LargeConfig struct {
	HardBytes int     `mapstructure:"hard_bytes"`
	SoftBytes int     `mapstructure:"soft_bytes"`
	SlowMs    float64 `mapstructure:"slow_ms"`
}

// RenderConfig holds the settings of the pretty printer.
type RenderConfig struct {
	Indent int `mapstructure:"indent"`
}

// ServerConfig holds the settings of the HTTP server.
type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// LogConfig holds the logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`  // a zerolog level name
	Format string `mapstructure:"format"` // console or json
}

// Default returns the default configuration.
func Default() *Config {
	th := analysis.DefaultThresholds
	return &Config{
		Analysis: AnalysisConfig{
			Mode:         string(analysis.Strict),
			Debounce:     analysis.DefaultDebounce,
			SampleLimit:  analysis.DefaultSampleLimit,
			MaxFileBytes: analysis.MaxFileBytes,
			Large:        LargeConfig{HardBytes: th.HardBytes, SoftBytes: th.SoftBytes, SlowMs: th.SlowMs},
		},
		Render: RenderConfig{Indent: 2},
		Server: ServerConfig{Addr: "localhost:8765"},
		Log:    LogConfig{Level: "info", Format: "console"},
	}
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("analysis.mode", d.Analysis.Mode)
	v.SetDefault("analysis.debounce", d.Analysis.Debounce)
	v.SetDefault("analysis.sample_limit", d.Analysis.SampleLimit)
	v.SetDefault("analysis.max_file_bytes", d.Analysis.MaxFileBytes)
	v.SetDefault("analysis.large.hard_bytes", d.Analysis.Large.HardBytes)
	v.SetDefault("analysis.large.soft_bytes", d.Analysis.Large.SoftBytes)
	v.SetDefault("analysis.large.slow_ms", d.Analysis.Large.SlowMs)
	v.SetDefault("render.indent", d.Render.Indent)
	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
}

// Load reads the configuration. If path is non-empty that file must exist;
// otherwise jinspect.yaml is read from the working directory or
// $HOME/.config/jinspect if present. Environment variables override both.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("jinspect")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/jinspect")
	}
	if err := v.ReadInConfig(); err != nil {
		var nf viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &nf) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the settings of c are usable.
func (c *Config) Validate() error {
	if _, err := analysis.ParseMode(c.Analysis.Mode); err != nil {
		return fmt.Errorf("analysis.mode: %w", err)
	}
	if c.Analysis.Debounce < 0 {
		return fmt.Errorf("analysis.debounce must not be negative")
	}
	if c.Analysis.SampleLimit <= 0 {
		return fmt.Errorf("analysis.sample_limit must be positive")
	}
	if c.Analysis.MaxFileBytes <= 0 {
		return fmt.Errorf("analysis.max_file_bytes must be positive")
	}
	if c.Render.Indent < 1 || c.Render.Indent > 8 {
		return fmt.Errorf("render.indent must be between 1 and 8")
	}
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if c.Log.Format != "console" && c.Log.Format != "json" {
		return fmt.Errorf("invalid log.format %q (must be console or json)", c.Log.Format)
	}
	return nil
}

// Mode returns the configured parse mode. It assumes c is valid.
func (c *Config) Mode() analysis.Mode {
	m, _ := analysis.ParseMode(c.Analysis.Mode)
	return m
}

// Thresholds returns the configured large-document thresholds.
func (c *Config) Thresholds() analysis.Thresholds {
	return analysis.Thresholds{
		HardBytes: c.Analysis.Large.HardBytes,
		SoftBytes: c.Analysis.Large.SoftBytes,
		SlowMs:    c.Analysis.Large.SlowMs,
	}
}

// SessionOptions returns the analysis options for a session under c.
func (c *Config) SessionOptions(log zerolog.Logger) []analysis.Option {
	return []analysis.Option{
		analysis.WithLogger(log),
		analysis.WithMode(c.Mode()),
		analysis.WithSampleLimit(c.Analysis.SampleLimit),
		analysis.WithDebounce(c.Analysis.Debounce),
		analysis.WithThresholds(c.Thresholds()),
	}
}

// Logger constructs the logger described by c, writing to w. If w is nil,
// os.Stderr is used.
func (c *Config) Logger(w io.Writer) (zerolog.Logger, error) {
	if w == nil {
		w = os.Stderr
	}
	level, err := zerolog.ParseLevel(c.Log.Level)
	if err != nil {
		return zerolog.Nop(), err
	}
	if c.Log.Format == "console" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger(), nil
}
