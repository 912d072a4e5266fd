// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func writeTempJSONConfig(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	f, err := os.CreateTemp(t.TempDir(), "config-*.json")
	require.NoError(t, err)
	_, err = f.Write(data)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return f.Name()
}

// ── newConfigBuilder ──────────────────────────────────────────────────────────

// TestNewConfigBuilder_InitialState verifies that a freshly created builder
// has no error and an empty configs slice.
func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder()
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)
}

// ── build ─────────────────────────────────────────────────────────────────────

// TestBuild_DefaultsOnly verifies the defaults form a valid configuration.
func TestBuild_DefaultsOnly(t *testing.T) {
	cfg, err := newConfigBuilder().withDefaults().build()
	require.NoError(t, err)
	assert.Equal(t, defaults(), cfg)
}

// TestBuild_EmptyBuilder verifies that a config without a mode is rejected.
func TestBuild_EmptyBuilder(t *testing.T) {
	cfg, err := newConfigBuilder().build()
	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, ErrInvalidConverterConfigs)
}

// TestBuild_PropagatesBuilderError verifies that a pre-set b.err is wrapped
// and returned, with nil config.
func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

// TestBuild_LaterSourcesOverride verifies that non-zero fields of later
// configs win and zero fields keep earlier values.
func TestBuild_LaterSourcesOverride(t *testing.T) {
	b := newConfigBuilder().withDefaults()
	b.configs = append(b.configs,
		&StructuredConfig{Converter: Converter{Mode: ModeToENML}, Workers: Workers{Concurrency: 2}},
		&StructuredConfig{Converter: Converter{Output: "out.enml"}, Workers: Workers{Concurrency: 7}},
	)

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, ModeToENML, cfg.Converter.Mode)
	assert.Equal(t, "out.enml", cfg.Converter.Output)
	assert.Equal(t, 7, cfg.Workers.Concurrency)
	assert.Equal(t, 3, cfg.Crypto.MaxPassphraseAttempts)
	assert.Equal(t, "info", cfg.App.LogLevel)
}

// TestBuild_Validation verifies the validation of the merged result.
func TestBuild_Validation(t *testing.T) {
	tests := []struct {
		name    string
		cfg     StructuredConfig
		wantErr error
	}{
		{
			name:    "unknown mode",
			cfg:     StructuredConfig{Converter: Converter{Mode: "to-pdf"}},
			wantErr: ErrInvalidConverterConfigs,
		},
		{
			name:    "negative timeout",
			cfg:     StructuredConfig{Converter: Converter{Timeout: -time.Second}},
			wantErr: ErrInvalidConverterConfigs,
		},
		{
			name:    "output with several inputs",
			cfg:     StructuredConfig{Converter: Converter{Output: "o"}, Files: []string{"a", "b"}},
			wantErr: ErrInvalidConverterConfigs,
		},
		{
			name:    "unknown log level",
			cfg:     StructuredConfig{App: App{LogLevel: "loud"}},
			wantErr: ErrInvalidAppConfigs,
		},
		{
			name:    "too many attempts",
			cfg:     StructuredConfig{Crypto: Crypto{MaxPassphraseAttempts: 11}},
			wantErr: ErrInvalidCryptoConfigs,
		},
		{
			name:    "negative concurrency",
			cfg:     StructuredConfig{Workers: Workers{Concurrency: -1}},
			wantErr: ErrInvalidWorkerConfigs,
		},
		{
			name: "valid overrides",
			cfg: StructuredConfig{
				Converter: Converter{Mode: ModeValidate, Output: "o"},
				Files:     []string{"a"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newConfigBuilder().withDefaults()
			b.configs = append(b.configs, &tt.cfg)

			cfg, err := b.build()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, cfg)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, cfg)
		})
	}
}

// ── withEnv ───────────────────────────────────────────────────────────────────

// TestWithEnv_ReadsEnvVars verifies that environment variables are picked up.
func TestWithEnv_ReadsEnvVars(t *testing.T) {
	setEnvVars(t, map[string]string{
		"CONVERTER_MODE": "to-enml",
		"APP_LOG_LEVEL":  "debug",
	})

	b := newConfigBuilder()
	assert.Same(t, b, b.withEnv())

	require.Len(t, b.configs, 1)
	assert.NoError(t, b.err)
	assert.Equal(t, ModeToENML, b.configs[0].Converter.Mode)
	assert.Equal(t, "debug", b.configs[0].App.LogLevel)
}

// TestWithEnv_SetsError verifies that a malformed variable sets b.err.
func TestWithEnv_SetsError(t *testing.T) {
	setEnvVars(t, map[string]string{"WORKERS_CONCURRENCY": "many"})

	b := newConfigBuilder().withEnv()
	assert.Error(t, b.err)
	assert.Empty(t, b.configs)
}

// ── withFlags ─────────────────────────────────────────────────────────────────

// TestWithFlags_AppendsConfig verifies the fluent interface and parsing.
func TestWithFlags_AppendsConfig(t *testing.T) {
	b := newConfigBuilder()
	assert.Same(t, b, b.withFlags([]string{"-mode", "validate", "note.enml"}))

	require.Len(t, b.configs, 1)
	assert.Equal(t, ModeValidate, b.configs[0].Converter.Mode)
	assert.Equal(t, []string{"note.enml"}, b.configs[0].Files)
}

// TestWithFlags_SetsError verifies that bad flags set b.err.
func TestWithFlags_SetsError(t *testing.T) {
	b := newConfigBuilder().withFlags([]string{"-no-such-flag"})
	assert.Error(t, b.err)
	assert.Empty(t, b.configs)
}

// ── withJSON ──────────────────────────────────────────────────────────────────

// TestWithJSON_NoOp_WhenNoPathSet verifies that withJSON does nothing when
// no config has a JSONFilePath.
func TestWithJSON_NoOp_WhenNoPathSet(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{})
	assert.Same(t, b, b.withJSON())

	assert.Len(t, b.configs, 1)
	assert.NoError(t, b.err)
}

// TestWithJSON_UsesLastPath verifies that when multiple configs have a
// JSONFilePath, the last non-empty one wins.
func TestWithJSON_UsesLastPath(t *testing.T) {
	first := StructuredJSONConfig{}
	first.Converter.Mode = "to-html"
	last := StructuredJSONConfig{}
	last.Converter.Mode = "to-enml"

	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{JSONFilePath: writeTempJSONConfig(t, first)},
		&StructuredConfig{JSONFilePath: writeTempJSONConfig(t, last)},
	)
	b.withJSON()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 3)
	assert.Equal(t, ModeToENML, b.configs[2].Converter.Mode)
}

// TestWithJSON_SetsError_WhenFileNotFound verifies that a missing file path
// sets b.err.
func TestWithJSON_SetsError_WhenFileNotFound(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{
		JSONFilePath: "/nonexistent/config.json",
	})
	b.withJSON()

	assert.Error(t, b.err)
}

// ── GetStructuredConfig ───────────────────────────────────────────────────────

// TestGetStructuredConfig_Priority verifies defaults < env < flags < JSON.
func TestGetStructuredConfig_Priority(t *testing.T) {
	payload := StructuredJSONConfig{}
	payload.Workers.Concurrency = 9
	path := writeTempJSONConfig(t, payload)

	setEnvVars(t, map[string]string{
		"CONVERTER_MODE":      "validate",
		"WORKERS_CONCURRENCY": "2",
		"APP_LOG_LEVEL":       "debug",
	})

	cfg, err := GetStructuredConfig([]string{"-mode", "to-enml", "-c", path, "note.html"})
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.App.LogLevel)
	assert.Equal(t, ModeToENML, cfg.Converter.Mode)
	assert.Equal(t, 9, cfg.Workers.Concurrency)
	assert.Equal(t, 3, cfg.Crypto.MaxPassphraseAttempts)
	assert.Equal(t, []string{"note.html"}, cfg.Files)
}
