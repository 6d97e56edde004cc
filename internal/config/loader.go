package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	envPrefix     = "AERIS_"
	envConfigFile = "AERIS_CONFIG"
)

// legacyEnv maps the un-prefixed credential names, as commonly kept in a
// .env file, onto config keys.
var legacyEnv = map[string]string{
	"AVIATIONSTACK_API_KEY": "aviationstack_api_key",
	"CHECKWX_API_KEY":       "checkwx_api_key",
}

// LoadOption tweaks where Load looks for configuration.
type LoadOption func(*loadOptions)

type loadOptions struct {
	file    string
	dotEnv  []string
	skipEnv bool
}

// WithFile reads the given YAML file instead of $AERIS_CONFIG.
func WithFile(path string) LoadOption {
	return func(o *loadOptions) {
		if path != "" {
			o.file = path
		}
	}
}

// WithDotEnv reads the given .env files instead of ./.env.
func WithDotEnv(paths ...string) LoadOption {
	return func(o *loadOptions) {
		o.dotEnv = paths
	}
}

// Load builds a Config by layering defaults, optional file, .env and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) from WithFile or AERIS_CONFIG
//  3. .env file (missing file is fine)
//  4. AVIATIONSTACK_API_KEY / CHECKWX_API_KEY
//  5. env (prefix AERIS_)
func Load(_ context.Context, opts ...LoadOption) (*Config, error) {
	o := loadOptions{file: os.Getenv(envConfigFile), dotEnv: []string{".env"}}
	for _, opt := range opts {
		opt(&o)
	}

	base := New()
	k := koanf.New(".")

	if o.file != "" {
		if err := k.Load(file.Provider(o.file), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, o.file, err)
		}
	}

	// .env values never override the real environment, so they are merged
	// into koanf before the env providers instead of being exported.
	dot, err := readDotEnv(o.dotEnv)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}
	// Two passes so prefixed names beat legacy ones, as in the real env.
	for _, prefixed := range []bool{false, true} {
		for name, val := range dot {
			if strings.HasPrefix(name, envPrefix) != prefixed {
				continue
			}
			if key := envKey(name); key != "" {
				if err := k.Set(key, val); err != nil {
					return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
				}
			}
		}
	}

	legacy := env.Provider("", ".", func(s string) string { return legacyEnv[s] })
	if err := k.Load(legacy, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// Environment variables: AERIS_ADDR, AERIS_CHECKWX_API_KEY, ...
	// Preserve underscores to match koanf tags on the struct.
	if err := k.Load(env.Provider(envPrefix, ".", prefixedKey), nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the fields every command depends on.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	if c.HTTPTimeout < 0 {
		return fmt.Errorf("%w: http_timeout must not be negative", ErrInvalidConfig)
	}
	switch strings.ToLower(c.LogFormat) {
	case "", "text", "json":
	default:
		return fmt.Errorf("%w: unknown log_format %q", ErrInvalidConfig, c.LogFormat)
	}
	for name, raw := range map[string]string{
		"aviationstack_base_url": c.AviationStackBaseURL,
		"checkwx_base_url":       c.CheckWXBaseURL,
		"opensky_base_url":       c.OpenSkyBaseURL,
	} {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("%w: %s must be an absolute URL, got %q", ErrInvalidConfig, name, raw)
		}
	}
	return nil
}

func prefixedKey(s string) string {
	return strings.TrimPrefix(strings.ToLower(s), strings.ToLower(envPrefix))
}

// envKey maps either naming scheme onto a config key; unknown names map to "".
func envKey(name string) string {
	if key, ok := legacyEnv[name]; ok {
		return key
	}
	if strings.HasPrefix(name, envPrefix) && name != envConfigFile {
		return prefixedKey(name)
	}
	return ""
}

func readDotEnv(paths []string) (map[string]string, error) {
	merged := map[string]string{}
	for _, p := range paths {
		vals, err := godotenv.Read(p)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("reading %s: %w", p, err)
		}
		for k, v := range vals {
			// Earlier files win, as with godotenv.Load.
			if _, seen := merged[k]; !seen {
				merged[k] = v
			}
		}
	}
	return merged, nil
}
