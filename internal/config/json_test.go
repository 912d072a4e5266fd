// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSON_Success(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	p := filepath.Join(dir, "config.json")

	jsonBody := `{
		"app": { "log_level": "debug", "interactive": true },
		"storage": { "db": { "dsn": "file:res.db" } },
		"converter": {
			"mode": "validate",
			"skip_rules": "skip.yaml",
			"output": "out.txt",
			"copy": true,
			"timeout": "45s"
		},
		"crypto": { "max_passphrase_attempts": 4, "passphrases": ["pw"] },
		"workers": { "concurrency": 2 }
	}`
	require.NoError(t, os.WriteFile(p, []byte(jsonBody), 0o600))

	// Act
	cfg, err := parseJSON(p)

	// Assert
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "debug", cfg.App.LogLevel)
	assert.True(t, cfg.App.Interactive)
	assert.Equal(t, "file:res.db", cfg.Storage.DB.DSN)
	assert.Equal(t, ModeValidate, cfg.Converter.Mode)
	assert.Equal(t, "skip.yaml", cfg.Converter.SkipRulesPath)
	assert.Equal(t, "out.txt", cfg.Converter.Output)
	assert.True(t, cfg.Converter.CopyToClipboard)
	assert.Equal(t, 45*time.Second, cfg.Converter.Timeout)
	assert.Equal(t, 4, cfg.Crypto.MaxPassphraseAttempts)
	assert.Equal(t, []string{"pw"}, cfg.Crypto.Passphrases)
	assert.Equal(t, 2, cfg.Workers.Concurrency)
	assert.Empty(t, cfg.JSONFilePath)
}

func TestParseJSON_FileNotFound(t *testing.T) {
	cfg, err := parseJSON(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "error reading a json file")
}

func TestParseJSON_Malformed(t *testing.T) {
	p := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(p, []byte(`{"converter": {"timeout": "soon"}}`), 0o600))

	cfg, err := parseJSON(p)
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "error decoding json configs")
}

func TestDuration_JSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want time.Duration
	}{
		{"string", `"1m30s"`, 90 * time.Second},
		{"nanoseconds", `1000`, 1000 * time.Nanosecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration
			require.NoError(t, json.Unmarshal([]byte(tt.in), &d))
			assert.Equal(t, tt.want, time.Duration(d))
		})
	}

	out, err := json.Marshal(Duration(2 * time.Second))
	require.NoError(t, err)
	assert.Equal(t, `"2s"`, string(out))

	var d Duration
	assert.Error(t, json.Unmarshal([]byte(`true`), &d))
}
