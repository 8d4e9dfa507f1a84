// Package assistant assembles draft context for a chat-completion backend
// and answers ad-hoc questions. It only formats the core's outputs; it never
// computes draft state itself.
package assistant

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/williambfroemming/ff-ai-draft-assistant/internal/ledger"
	"github.com/williambfroemming/ff-ai-draft-assistant/internal/pool"
	"github.com/williambfroemming/ff-ai-draft-assistant/internal/summary"
)

// contextPlayerLimit bounds how many available players the prompt lists.
const contextPlayerLimit = 10

// Completer is the single external call the assistant makes. Implementations
// own their own timeout; no retries happen at this layer.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// BuildContext renders the system prompt for an auction-draft question from
// the core's derived state. String assembly only.
func BuildContext(team ledger.TeamState, available []pool.Player, opponents []summary.OpponentSummary, totalPicks int) string {
	var b strings.Builder

	b.WriteString("You are a fantasy football auction draft assistant.\n\n")

	b.WriteString("User's current team:\n")
	if len(team.Roster) == 0 {
		b.WriteString("  (no players drafted yet)\n")
	}
	for _, p := range team.Roster {
		fmt.Fprintf(&b, "  %s  %s  $%.0f\n", p.Player, p.Position, p.Price)
	}

	fmt.Fprintf(&b, "\nRemaining budget: $%.1f\n", team.Remaining)
	if team.Overspent() {
		b.WriteString("WARNING: budget is overspent.\n")
	}

	b.WriteString("Current position counts:")
	if len(team.PositionCounts) == 0 {
		b.WriteString(" none")
	}
	positions := make([]string, 0, len(team.PositionCounts))
	for pos := range team.PositionCounts {
		positions = append(positions, pos)
	}
	sort.Strings(positions)
	for _, pos := range positions {
		fmt.Fprintf(&b, " %s=%d", pos, team.PositionCounts[pos])
	}
	b.WriteString("\n\nTop available players:\n")
	for i, p := range available {
		if i == contextPlayerLimit {
			break
		}
		fmt.Fprintf(&b, "  %s  %s\n", p.Name, p.Position)
	}

	b.WriteString("\nOpponent budgets:\n")
	for _, o := range opponents {
		fmt.Fprintf(&b, "  %s: spent $%.0f, remaining $%.0f, %d players\n",
			o.Manager, o.Spent, o.Remaining, o.PlayersDrafted)
	}

	fmt.Fprintf(&b, "\nThere have been %d picks in the draft so far.\n", totalPicks)
	b.WriteString("\nAnswer the user's question based on this context.\n")
	return b.String()
}

// Assistant pairs a completion backend with a logger.
type Assistant struct {
	completer Completer
	logger    *logrus.Logger
}

func New(completer Completer, logger *logrus.Logger) *Assistant {
	return &Assistant{completer: completer, logger: logger}
}

// Ask answers one question against the supplied draft state. A backend
// failure propagates to the caller as-is; the derived state it was built
// from remains valid.
func (a *Assistant) Ask(ctx context.Context, question string, team ledger.TeamState,
	available []pool.Player, opponents []summary.OpponentSummary, totalPicks int) (string, error) {

	system := BuildContext(team, available, opponents, totalPicks)
	answer, err := a.completer.Complete(ctx, system, question)
	if err != nil {
		return "", fmt.Errorf("completion: %w", err)
	}
	if a.logger != nil {
		a.logger.WithFields(logrus.Fields{
			"question_len": len(question),
			"answer_len":   len(answer),
		}).Debug("assistant answered")
	}
	return answer, nil
}
