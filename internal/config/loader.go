package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering, lowest precedence first:
//  1. defaults (New)
//  2. YAML file named by DRAFT_CONFIG, if set
//  3. environment variables with prefix DRAFT_
//
// Env keys map flat: DRAFT_MANAGER_NAME -> manager_name. Nested keys (target
// build, weights, completion) come from the file.
func Load() (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("DRAFT_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	envProvider := env.Provider("DRAFT_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "draft_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, err
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects configurations the core cannot work with.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return errors.New("addr must not be empty")
	}
	if c.StartingBudget <= 0 {
		return errors.New("starting_budget must be positive")
	}
	for _, pos := range c.Target.Positions() {
		if c.Target.Count(pos) < 0 {
			return fmt.Errorf("target count for %s must not be negative", pos)
		}
		if c.Weights.Weight(pos) < 0 {
			return fmt.Errorf("weight for %s must not be negative", pos)
		}
	}
	return nil
}
