// Package config defines the assistant's configuration and its loading
// order: defaults, then an optional YAML file, then environment variables.
package config

import (
	"github.com/williambfroemming/ff-ai-draft-assistant/internal/ledger"
	"github.com/williambfroemming/ff-ai-draft-assistant/internal/needs"
)

// Completion configures the optional chat-completion backend used by the
// ask_assistant tool. Empty BaseURL disables the tool.
type Completion struct {
	BaseURL string `koanf:"base_url"`
	APIKey  string `koanf:"api_key"`
	Model   string `koanf:"model"`
}

// Config is the full process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr is the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// MCPPath is the HTTP path for the MCP endpoint.
	MCPPath string `koanf:"mcp_path"`

	// RequireAuth enforces API-key auth on every HTTP surface.
	RequireAuth bool `koanf:"require_auth"`

	// AuthHeader is the request header the API key is read from.
	AuthHeader string `koanf:"auth_header"`

	// ManagerName is the caller's display name in the draft sheet.
	ManagerName string `koanf:"manager_name"`

	// StartingBudget is each manager's auction budget.
	StartingBudget float64 `koanf:"starting_budget"`

	// PoolSource locates the player pool snapshot: a local CSV path or an
	// http(s) CSV export URL.
	PoolSource string `koanf:"pool_source"`

	// LedgerSource locates the live draft log snapshot, same forms.
	LedgerSource string `koanf:"ledger_source"`

	// CacheRoot, when set, stores fetched snapshots on disk.
	CacheRoot string `koanf:"cache_root"`

	// MaxRecommendations bounds the recommendation list.
	MaxRecommendations int `koanf:"max_recommendations"`

	// MaxNominations bounds each nomination list.
	MaxNominations int `koanf:"max_nominations"`

	// DecoySeed seeds decoy sampling when non-zero; zero means time-seeded.
	DecoySeed int64 `koanf:"decoy_seed"`

	// Target is the desired roster shape.
	Target needs.TargetBuild `koanf:"target"`

	// Weights are the positional priority multipliers.
	Weights needs.Weights `koanf:"weights"`

	// Completion configures the chat-completion backend.
	Completion Completion `koanf:"completion"`
}

// New returns the default configuration.
func New() *Config {
	return &Config{
		LogLevel:           "info",
		Addr:               ":8080",
		MCPPath:            "/mcp",
		RequireAuth:        true,
		AuthHeader:         "X-API-Key",
		StartingBudget:     ledger.DefaultBudget,
		MaxRecommendations: 10,
		MaxNominations:     3,
		Target:             needs.DefaultBuild(),
		Weights:            needs.DefaultWeights(),
		Completion:         Completion{Model: "gpt-4"},
	}
}
