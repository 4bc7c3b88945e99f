package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Environment names.
const (
	EnvPrefix = "IRONRANK_"
	EnvFile   = EnvPrefix + "CONFIG"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New(ctx))
//  2. file (YAML) if IRONRANK_CONFIG is set
//  3. env (prefix IRONRANK_)
//
// List values may be given in env as comma separated strings, e.g.
// IRONRANK_AVAILABLE_PLATES=20,10,5.
func Load(ctx context.Context) (*Config, error) {
	cfg := New(ctx)
	k := koanf.New(".")

	if path := os.Getenv(EnvFile); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
		}
	}

	if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", envValue), nil); err != nil {
		return nil, fmt.Errorf("%w: env: %w", ErrLoadConfig, err)
	}

	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// listKeys are split on commas when they come from the environment.
var listKeys = map[string]bool{
	"available_plates": true,
}

// envValue maps IRONRANK_MAX_SETS_PER_REQUEST -> max_sets_per_request.
func envValue(key, value string) (string, interface{}) {
	key = strings.TrimPrefix(strings.ToLower(key), strings.ToLower(EnvPrefix))
	if !listKeys[key] {
		return key, value
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return key, out
}
