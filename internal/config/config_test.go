// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package config

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/creachadair/jinspect/analysis"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "jinspect.yaml")
	require.NoError(t, os.WriteFile(path, []byte(text), 0600))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, analysis.Strict, cfg.Mode())
	assert.Equal(t, analysis.DefaultThresholds, cfg.Thresholds())
	assert.Len(t, cfg.SessionOptions(zerolog.Nop()), 5)
}

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
analysis:
  mode: lenient
  debounce: 100ms
  large:
    hard_bytes: 5000
render:
  indent: 4
log:
  level: debug
  format: json
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, analysis.Lenient, cfg.Mode())
	assert.Equal(t, 100*time.Millisecond, cfg.Analysis.Debounce)
	assert.Equal(t, 5000, cfg.Analysis.Large.HardBytes)
	assert.Equal(t, analysis.DefaultThresholds.SoftBytes, cfg.Analysis.Large.SoftBytes)
	assert.Equal(t, 4, cfg.Render.Indent)
	assert.Equal(t, "json", cfg.Log.Format)

	// Unchanged settings keep their defaults.
	assert.Equal(t, analysis.DefaultSampleLimit, cfg.Analysis.SampleLimit)
	assert.Equal(t, "localhost:8765", cfg.Server.Addr)
}

func TestLoadWorkingDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "jinspect.yaml"), []byte("server:\n  addr: \":9999\"\n"), 0600))
	t.Chdir(dir)
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":9999", cfg.Server.Addr)
}

func TestEnvOverride(t *testing.T) {
	path := writeConfig(t, "render:\n  indent: 4\n")
	t.Setenv("JINSPECT_RENDER_INDENT", "3")
	t.Setenv("JINSPECT_ANALYSIS_MODE", "jwcc")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Render.Indent)
	assert.Equal(t, analysis.JWCC, cfg.Mode())
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonesuch.yaml"))
	assert.Error(t, err, "missing explicit file")

	_, err = Load(writeConfig(t, "analysis: [unclosed\n"))
	assert.Error(t, err, "malformed file")

	_, err = Load(writeConfig(t, "render:\n  indent: 20\n"))
	assert.ErrorContains(t, err, "render.indent")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		errMsg string
	}{
		{"bad mode", func(c *Config) { c.Analysis.Mode = "yaml" }, "analysis.mode"},
		{"negative debounce", func(c *Config) { c.Analysis.Debounce = -time.Second }, "analysis.debounce"},
		{"zero sample limit", func(c *Config) { c.Analysis.SampleLimit = 0 }, "analysis.sample_limit"},
		{"zero max bytes", func(c *Config) { c.Analysis.MaxFileBytes = 0 }, "analysis.max_file_bytes"},
		{"zero indent", func(c *Config) { c.Render.Indent = 0 }, "render.indent"},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }, "log.format"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.modify(cfg)
			assert.ErrorContains(t, cfg.Validate(), tc.errMsg)
		})
	}
}

func TestLogger(t *testing.T) {
	cfg := Default()
	cfg.Log.Format = "json"
	cfg.Log.Level = "warn"

	var buf bytes.Buffer
	log, err := cfg.Logger(&buf)
	require.NoError(t, err)
	log.Info().Msg("dropped")
	log.Warn().Str("key", "value").Msg("kept")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "kept", entry["message"])
	assert.Equal(t, "value", entry["key"])
	assert.Contains(t, entry, "time")
}
