/*
 * Copyright (c) 2026 Firefly Software Solutions Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

/*
Package config provides configuration management for notifctl.

CONFIGURATION SOURCES (in order of precedence):
===============================================
1. Command-line flags (highest priority)
2. Environment variables (NOTIF_* prefix)
3. Configuration file (JSON format)
4. Default values (lowest priority)

EXAMPLE CONFIGURATION FILE:
===========================

	{
	  "log_level": "debug",
	  "codec": {
	    "max_frame_size": 1048576,
	    "default_format": "json",
	    "pretty_documents": true
	  }
	}

ENVIRONMENT VARIABLES:
======================

	NOTIF_CONFIG                    path of the configuration file
	NOTIF_LOG_LEVEL                 debug, info, warn, error
	NOTIF_LOG_JSON                  true for JSON log lines
	NOTIF_CODEC_MAX_FRAME_SIZE      frame payload limit in bytes
	NOTIF_CODEC_MAX_DOCUMENT_SIZE   input size limit in bytes
	NOTIF_CODEC_PRETTY_DOCUMENTS    indent JSON output
	NOTIF_CODEC_DEFAULT_FORMAT      serde format used when none is given
*/
package config

import (
	"fmt"
	"os"
	"sync"

	jsoniter "github.com/json-iterator/go"
	"github.com/kelseyhightower/envconfig"
	"github.com/samber/lo"

	"notifcommons/internal/logging"
	"notifcommons/pkg/serde"
	"notifcommons/pkg/validate"
)

// EnvPrefix is the prefix of every environment variable read by LoadFromEnv.
const EnvPrefix = "NOTIF"

// EnvConfigFile names the configuration file when no flag does.
const EnvConfigFile = EnvPrefix + "_CONFIG"

// Size limits.
const (
	DefaultMaxFrameSize    = 16 * 1024 * 1024 // 16MB
	DefaultMaxDocumentSize = 64 * 1024 * 1024 // 64MB
	maxSizeCeiling         = 1 << 30
)

// CodecConfig controls encoding and decoding limits and defaults.
type CodecConfig struct {
	MaxFrameSize    uint32 `json:"max_frame_size" envconfig:"MAX_FRAME_SIZE" validate:"gt=0"`
	MaxDocumentSize int64  `json:"max_document_size" envconfig:"MAX_DOCUMENT_SIZE" validate:"gt=0"`
	PrettyDocuments bool   `json:"pretty_documents" envconfig:"PRETTY_DOCUMENTS"`
	DefaultFormat   string `json:"default_format" envconfig:"DEFAULT_FORMAT" validate:"required"`
}

// Config holds the full configuration.
type Config struct {
	LogLevel string      `json:"log_level" envconfig:"LOG_LEVEL" validate:"oneof=debug info warn error"`
	LogJSON  bool        `json:"log_json" envconfig:"LOG_JSON"`
	Codec    CodecConfig `json:"codec" envconfig:"CODEC"`

	// ConfigFile is the file the configuration was loaded from, if any.
	ConfigFile string `json:"-" ignored:"true"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		LogJSON:  false,
		Codec: CodecConfig{
			MaxFrameSize:    DefaultMaxFrameSize,
			MaxDocumentSize: DefaultMaxDocumentSize,
			PrettyDocuments: false,
			DefaultFormat:   "json",
		},
	}
}

// Validate checks configuration validity.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.Codec.MaxFrameSize > maxSizeCeiling {
		return fmt.Errorf("config: max_frame_size %d exceeds %d", c.Codec.MaxFrameSize, maxSizeCeiling)
	}
	if c.Codec.MaxDocumentSize > maxSizeCeiling {
		return fmt.Errorf("config: max_document_size %d exceeds %d", c.Codec.MaxDocumentSize, maxSizeCeiling)
	}
	if names := serde.Names(); !lo.Contains(names, c.Codec.DefaultFormat) {
		return fmt.Errorf("config: default_format %q is not one of %v", c.Codec.DefaultFormat, names)
	}
	return nil
}

// LoggingConfig translates the log settings for the logging package.
func (c *Config) LoggingConfig() logging.Config {
	cfg := logging.DefaultConfig()
	cfg.Level = logging.ParseLevel(c.LogLevel)
	cfg.JSONMode = c.LogJSON
	return cfg
}

// Manager handles configuration loading.
type Manager struct {
	config *Config
	mu     sync.RWMutex
}

// NewManager returns a manager holding the defaults.
func NewManager() *Manager {
	return &Manager{config: DefaultConfig()}
}

// Get returns a copy of current config.
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	cfg := *m.config
	return &cfg
}

// Set updates the config.
func (m *Manager) Set(cfg *Config) {
	m.mu.Lock()
	m.config = cfg
	m.mu.Unlock()
}

// LoadFromFile loads configuration from a JSON file on top of the defaults.
// Unknown keys are ignored.
func (m *Manager) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	cfg := DefaultConfig()
	if err := jsoniter.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("config file %s: %w", path, err)
	}

	cfg.ConfigFile = path
	m.Set(cfg)
	return nil
}

// LoadFromEnv overlays NOTIF_* environment variables on the current config.
// Unset variables leave their field alone.
func (m *Manager) LoadFromEnv() error {
	cfg := m.Get()
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return fmt.Errorf("config env: %w", err)
	}
	m.Set(cfg)
	return nil
}

// Load runs the file and environment stages and validates the result. An
// empty path falls back to NOTIF_CONFIG, and then to no file at all.
func (m *Manager) Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvConfigFile)
	}
	if path != "" {
		if err := m.LoadFromFile(path); err != nil {
			return nil, err
		}
	}
	if err := m.LoadFromEnv(); err != nil {
		return nil, err
	}
	cfg := m.Get()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
