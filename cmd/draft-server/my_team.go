package main

import "github.com/williambfroemming/ff-ai-draft-assistant/internal/ledger"

// MyTeamArgs are the input arguments for the my_team tool.
type MyTeamArgs struct {
	Manager *string `json:"manager,omitempty" jsonschema:"Manager display name (default: configured manager)"`
}

// MyTeamOutput is the atomic roster/budget view for one manager, plus any
// data-quality warnings worth surfacing mid-draft.
type MyTeamOutput struct {
	ledger.TeamState
	Warnings []string `json:"warnings,omitempty"`
}

func buildMyTeam(snap ledger.Snapshot, manager string, budget float64) MyTeamOutput {
	team := snap.TeamState(manager, budget)
	out := MyTeamOutput{TeamState: team}
	if !team.Found {
		out.Warnings = append(out.Warnings, "no picks found for manager "+team.Manager+"; full starting budget assumed")
	}
	if team.Overspent() {
		out.Warnings = append(out.Warnings, "remaining budget is negative")
	}
	if team.InvalidPrices > 0 {
		out.Warnings = append(out.Warnings, "some pick prices failed to parse and count as zero")
	}
	return out
}
