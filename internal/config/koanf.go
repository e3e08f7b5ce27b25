// Reelist - Content-Based Movie Recommendation Service
// Copyright 2025 Null Pointers
// SPDX-License-Identifier: MIT
// https://github.com/Null-Pointers-2/COSC-310-Project-2025-sub000

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists where config files are searched, in order.
// The first file found wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/reelist/config.yaml",
	"/etc/reelist/config.yml",
}

// ConfigPathEnvVar overrides the config file path when set.
const ConfigPathEnvVar = "CONFIG_PATH"

// Load loads configuration with layered sources: defaults, then an
// optional YAML file, then environment variables (highest priority).
// Environment variable names map to koanf paths by lowercasing and
// splitting on the first underscore-delimited section:
//
//	SERVER_PORT            -> server.port
//	RECOMMEND_CACHE_TTL    -> recommend.cache_ttl
//	DATABASE_MOVIES_CSV    -> database.movies_csv
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// configSections are the top-level config keys recognized by envTransform.
var configSections = []string{"server", "database", "recommend", "logging"}

// envTransform maps an environment variable name to a koanf path.
// Variables that do not start with a known section prefix are ignored
// so unrelated process environment does not leak into the config.
func envTransform(name string) string {
	lower := strings.ToLower(name)
	for _, section := range configSections {
		prefix := section + "_"
		if strings.HasPrefix(lower, prefix) {
			return section + "." + strings.TrimPrefix(lower, prefix)
		}
	}
	return ""
}

// findConfigFile returns the first existing config file path, or "".
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}
