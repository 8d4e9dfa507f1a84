package main

import (
	"context"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/williambfroemming/ff-ai-draft-assistant/internal/assistant"
	"github.com/williambfroemming/ff-ai-draft-assistant/internal/metrics"
	"github.com/williambfroemming/ff-ai-draft-assistant/internal/needs"
	"github.com/williambfroemming/ff-ai-draft-assistant/internal/pool"
	"github.com/williambfroemming/ff-ai-draft-assistant/internal/strategy"
	"github.com/williambfroemming/ff-ai-draft-assistant/internal/summary"
)

// AvailablePlayersArgs are the input arguments for available_players.
type AvailablePlayersArgs struct {
	Limit *int `json:"limit,omitempty" jsonschema:"Maximum players to return (0 = all)"`
}

// AvailablePlayersOutput lists the undrafted players in pool rank order.
type AvailablePlayersOutput struct {
	Total       int               `json:"total"`
	Players     []pool.Player     `json:"players"`
	PoolSkipped []pool.SkippedRow `json:"pool_skipped,omitempty"`
}

// PositionNeedsArgs are the input arguments for position_needs.
type PositionNeedsArgs struct {
	Manager *string `json:"manager,omitempty" jsonschema:"Manager display name (default: configured manager)"`
}

// PositionNeedsOutput pairs raw gaps with the weighted priority ordering.
type PositionNeedsOutput struct {
	Manager    string                `json:"manager"`
	Gaps       map[string]int        `json:"gaps"`
	Priorities []needs.PositionScore `json:"priorities"`
}

// RecommendationsArgs are the input arguments for recommendations.
type RecommendationsArgs struct {
	Manager *string `json:"manager,omitempty" jsonschema:"Manager display name (default: configured manager)"`
	Limit   *int    `json:"limit,omitempty" jsonschema:"Maximum recommendations (default 10)"`
}

// RecommendationsOutput ranks available players against prioritized needs.
type RecommendationsOutput struct {
	Manager         string        `json:"manager"`
	RemainingBudget float64       `json:"remaining_budget"`
	Players         []pool.Player `json:"players"`
}

// NominationsArgs are the input arguments for nominations.
type NominationsArgs struct {
	Manager  *string `json:"manager,omitempty" jsonschema:"Manager display name (default: configured manager)"`
	Strategy string  `json:"strategy" jsonschema:"Nomination strategy: drain, decoy, or target"`
	Max      *int    `json:"max,omitempty" jsonschema:"Maximum suggestions (default 3)"`
}

// OpponentSummaryArgs are the input arguments for opponent_summary.
type OpponentSummaryArgs struct {
	Manager *string `json:"manager,omitempty" jsonschema:"Caller's display name to exclude (default: configured manager)"`
}

// OpponentSummaryOutput is one row per opponent, richest first.
type OpponentSummaryOutput struct {
	Opponents []summary.OpponentSummary `json:"opponents"`
}

// DraftContextArgs are the input arguments for draft_context.
type DraftContextArgs struct {
	Manager *string `json:"manager,omitempty" jsonschema:"Manager display name (default: configured manager)"`
}

// AskAssistantArgs are the input arguments for ask_assistant.
type AskAssistantArgs struct {
	Question string  `json:"question" jsonschema:"The draft question to answer (required)"`
	Manager  *string `json:"manager,omitempty" jsonschema:"Manager display name (default: configured manager)"`
}

func (s *server) registerTools(mcpServer *mcp.Server, registry *[]toolInfo) {
	addTool(mcpServer, registry, &mcp.Tool{
		Name:        "my_team",
		Description: "Roster, spend, remaining budget, and position counts for a manager",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args MyTeamArgs) (*mcp.CallToolResult, any, error) {
		start := time.Now()
		state, err := s.loadState(ctx)
		defer func() { metrics.ObserveTool("my_team", start, err) }()
		if err != nil {
			return toolError(err), nil, nil
		}
		out := buildMyTeam(state.Snap, s.manager(args.Manager), s.cfg.StartingBudget)
		return toolJSON(out), nil, nil
	})

	addTool(mcpServer, registry, &mcp.Tool{
		Name:        "available_players",
		Description: "Undrafted players in pool rank order",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args AvailablePlayersArgs) (*mcp.CallToolResult, any, error) {
		start := time.Now()
		state, err := s.loadState(ctx)
		defer func() { metrics.ObserveTool("available_players", start, err) }()
		if err != nil {
			return toolError(err), nil, nil
		}
		available := state.Snap.Available(state.Players)
		out := AvailablePlayersOutput{Total: len(available), Players: available, PoolSkipped: state.Skipped}
		if args.Limit != nil && *args.Limit > 0 && *args.Limit < len(available) {
			out.Players = available[:*args.Limit]
		}
		return toolJSON(out), nil, nil
	})

	addTool(mcpServer, registry, &mcp.Tool{
		Name:        "position_needs",
		Description: "Positional gaps and weighted priority scores against the target build",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args PositionNeedsArgs) (*mcp.CallToolResult, any, error) {
		start := time.Now()
		state, err := s.loadState(ctx)
		defer func() { metrics.ObserveTool("position_needs", start, err) }()
		if err != nil {
			return toolError(err), nil, nil
		}
		team := state.Snap.TeamState(s.manager(args.Manager), s.cfg.StartingBudget)
		out := PositionNeedsOutput{
			Manager:    team.Manager,
			Gaps:       needs.Gaps(team.PositionCounts, s.cfg.Target),
			Priorities: needs.Prioritize(team.PositionCounts, s.cfg.Target, s.cfg.Weights),
		}
		return toolJSON(out), nil, nil
	})

	addTool(mcpServer, registry, &mcp.Tool{
		Name:        "recommendations",
		Description: "Available players to target, ranked against prioritized needs",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args RecommendationsArgs) (*mcp.CallToolResult, any, error) {
		start := time.Now()
		state, err := s.loadState(ctx)
		defer func() { metrics.ObserveTool("recommendations", start, err) }()
		if err != nil {
			return toolError(err), nil, nil
		}
		team := state.Snap.TeamState(s.manager(args.Manager), s.cfg.StartingBudget)
		priorities := needs.Prioritize(team.PositionCounts, s.cfg.Target, s.cfg.Weights)
		limit := s.cfg.MaxRecommendations
		if args.Limit != nil && *args.Limit > 0 {
			limit = *args.Limit
		}
		available := state.Snap.Available(state.Players)
		out := RecommendationsOutput{
			Manager:         team.Manager,
			RemainingBudget: team.Remaining,
			Players:         strategy.Recommend(available, priorities, team.Remaining, limit),
		}
		return toolJSON(out), nil, nil
	})

	addTool(mcpServer, registry, &mcp.Tool{
		Name:        "nominations",
		Description: "Players to nominate under the drain, decoy, or target strategy",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args NominationsArgs) (*mcp.CallToolResult, any, error) {
		start := time.Now()
		state, err := s.loadState(ctx)
		defer func() { metrics.ObserveTool("nominations", start, err) }()
		if err != nil {
			return toolError(err), nil, nil
		}
		team := state.Snap.TeamState(s.manager(args.Manager), s.cfg.StartingBudget)
		priorities := needs.Prioritize(team.PositionCounts, s.cfg.Target, s.cfg.Weights)
		max := s.cfg.MaxNominations
		if args.Max != nil && *args.Max > 0 {
			max = *args.Max
		}
		available := state.Snap.Available(state.Players)
		nom := strategy.Nominate(available, team.PositionCounts, s.cfg.Target, priorities,
			strategy.Strategy(args.Strategy), max, s.rng)
		return toolJSON(nom), nil, nil
	})

	addTool(mcpServer, registry, &mcp.Tool{
		Name:        "opponent_summary",
		Description: "Per-opponent spend, remaining budget, and pick count, richest first",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args OpponentSummaryArgs) (*mcp.CallToolResult, any, error) {
		start := time.Now()
		state, err := s.loadState(ctx)
		defer func() { metrics.ObserveTool("opponent_summary", start, err) }()
		if err != nil {
			return toolError(err), nil, nil
		}
		out := OpponentSummaryOutput{
			Opponents: summary.Opponents(state.Snap, s.manager(args.Manager), s.cfg.StartingBudget),
		}
		return toolJSON(out), nil, nil
	})

	addTool(mcpServer, registry, &mcp.Tool{
		Name:        "draft_context",
		Description: "Full draft context (team, availability, opponents) as assistant-ready text",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args DraftContextArgs) (*mcp.CallToolResult, any, error) {
		start := time.Now()
		state, err := s.loadState(ctx)
		defer func() { metrics.ObserveTool("draft_context", start, err) }()
		if err != nil {
			return toolError(err), nil, nil
		}
		text := s.buildDraftContext(state, s.manager(args.Manager))
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: text}},
		}, nil, nil
	})

	addTool(mcpServer, registry, &mcp.Tool{
		Name:        "ask_assistant",
		Description: "Answer a draft question using the configured completion backend",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args AskAssistantArgs) (*mcp.CallToolResult, any, error) {
		start := time.Now()
		var err error
		defer func() { metrics.ObserveTool("ask_assistant", start, err) }()
		if s.asst == nil {
			err = fmt.Errorf("no completion backend configured")
			return toolError(err), nil, nil
		}
		if args.Question == "" {
			err = fmt.Errorf("question is required")
			return toolError(err), nil, nil
		}
		var state draftState
		state, err = s.loadState(ctx)
		if err != nil {
			return toolError(err), nil, nil
		}
		manager := s.manager(args.Manager)
		team := state.Snap.TeamState(manager, s.cfg.StartingBudget)
		available := state.Snap.Available(state.Players)
		opponents := summary.Opponents(state.Snap, manager, s.cfg.StartingBudget)
		var answer string
		answer, err = s.asst.Ask(ctx, args.Question, team, available, opponents, len(state.Snap.Picks))
		if err != nil {
			return toolError(err), nil, nil
		}
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: answer}},
		}, nil, nil
	})
}

// buildDraftContext renders the assistant system prompt from one snapshot.
func (s *server) buildDraftContext(state draftState, manager string) string {
	team := state.Snap.TeamState(manager, s.cfg.StartingBudget)
	available := state.Snap.Available(state.Players)
	opponents := summary.Opponents(state.Snap, manager, s.cfg.StartingBudget)
	return assistant.BuildContext(team, available, opponents, len(state.Snap.Picks))
}

