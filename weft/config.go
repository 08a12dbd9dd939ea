// Copyright 2025 The Weft Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package weft

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cast"
)

// Config is the subset of App's options that can be loaded from the
// environment or a YAML file, rather than composed with functional
// options in code.
type Config struct {
	Addr           string `yaml:"addr"`
	InitialWorkers int    `yaml:"initial_workers"`
	ScaleFactor    int    `yaml:"scale_factor"`
}

// LoadConfig reads "<prefix>_ADDR", "<prefix>_INITIAL_WORKERS", and
// "<prefix>_SCALE_FACTOR" from the environment, using spf13/cast for
// tolerant string→int coercion. Missing numeric variables fall back to
// App's own defaults (4 workers, scale factor 10).
func LoadConfig(prefix string) (Config, error) {
	cfg := Config{InitialWorkers: 4, ScaleFactor: 10}

	cfg.Addr = os.Getenv(prefix + "_ADDR")

	if v, ok := os.LookupEnv(prefix + "_INITIAL_WORKERS"); ok {
		n, err := cast.ToIntE(v)
		if err != nil {
			return Config{}, &ConfigError{Field: prefix + "_INITIAL_WORKERS", Value: v, Message: "must be an integer"}
		}
		cfg.InitialWorkers = n
	}

	if v, ok := os.LookupEnv(prefix + "_SCALE_FACTOR"); ok {
		n, err := cast.ToIntE(v)
		if err != nil {
			return Config{}, &ConfigError{Field: prefix + "_SCALE_FACTOR", Value: v, Message: "must be an integer"}
		}
		cfg.ScaleFactor = n
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfigFile reads and parses a YAML configuration file at path.
// Zero-valued InitialWorkers/ScaleFactor fall back to App's defaults, the
// same as LoadConfig.
func LoadConfigFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("weft: reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("weft: parsing config file: %w", err)
	}

	if cfg.InitialWorkers == 0 {
		cfg.InitialWorkers = 4
	}
	if cfg.ScaleFactor == 0 {
		cfg.ScaleFactor = 10
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks Config's semantic constraints, beyond what parsing
// alone can catch.
func (c Config) Validate() error {
	if c.Addr == "" {
		return &ValidationError{Field: "Addr", Message: "must not be empty"}
	}
	if c.InitialWorkers < 1 {
		return &ValidationError{Field: "InitialWorkers", Message: "must be at least 1"}
	}
	if c.ScaleFactor < 2 {
		return &ValidationError{Field: "ScaleFactor", Message: "must be at least 2 (a scale factor of 1 never grows the pool)"}
	}
	return nil
}

// Options translates Config into the equivalent App options.
func (c Config) Options() []Option {
	return []Option{
		WithInitialWorkers(c.InitialWorkers),
		WithScaleFactor(c.ScaleFactor),
	}
}
