// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig is the layout of the JSON config file.
type StructuredJSONConfig struct {
	App struct {
		LogLevel    string `json:"log_level"`
		Interactive bool   `json:"interactive"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Converter struct {
		Mode            string   `json:"mode"`
		SkipRulesPath   string   `json:"skip_rules"`
		Output          string   `json:"output"`
		CopyToClipboard bool     `json:"copy"`
		Timeout         Duration `json:"timeout"`
	} `json:"converter,omitempty"`

	Crypto struct {
		MaxPassphraseAttempts int      `json:"max_passphrase_attempts"`
		Passphrases           []string `json:"passphrases"`
	} `json:"crypto,omitempty"`

	Workers struct {
		Concurrency int `json:"concurrency"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			LogLevel:    jsonCfg.App.LogLevel,
			Interactive: jsonCfg.App.Interactive,
		},
		Storage: Storage{
			DB: DB{DSN: jsonCfg.Storage.DB.DSN},
		},
		Converter: Converter{
			Mode:            jsonCfg.Converter.Mode,
			SkipRulesPath:   jsonCfg.Converter.SkipRulesPath,
			Output:          jsonCfg.Converter.Output,
			CopyToClipboard: jsonCfg.Converter.CopyToClipboard,
			Timeout:         time.Duration(jsonCfg.Converter.Timeout),
		},
		Crypto: Crypto{
			MaxPassphraseAttempts: jsonCfg.Crypto.MaxPassphraseAttempts,
			Passphrases:           jsonCfg.Crypto.Passphrases,
		},
		Workers: Workers{Concurrency: jsonCfg.Workers.Concurrency},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
