// Command draftctl prints a one-shot draft dashboard: team state, positional
// needs, recommendations, all three nomination lists, and opponent budgets.
// Useful between nominations when the MCP server is overkill.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/williambfroemming/ff-ai-draft-assistant/internal/ledger"
	"github.com/williambfroemming/ff-ai-draft-assistant/internal/needs"
	"github.com/williambfroemming/ff-ai-draft-assistant/internal/pool"
	"github.com/williambfroemming/ff-ai-draft-assistant/internal/sheets"
	"github.com/williambfroemming/ff-ai-draft-assistant/internal/strategy"
	"github.com/williambfroemming/ff-ai-draft-assistant/internal/summary"
)

func main() {
	var (
		poolSrc   = flag.String("pool", "", "player pool source: CSV path or http(s) CSV export URL (required)")
		ledgerSrc = flag.String("ledger", "", "draft log source: CSV path or http(s) CSV export URL (required)")
		manager   = flag.String("manager", "", "your display name in the draft sheet (required)")
		budget    = flag.Float64("budget", ledger.DefaultBudget, "starting auction budget")
		seed      = flag.Int64("seed", 0, "decoy sampling seed (0 = time-seeded)")
		verbose   = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	if *verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	if *poolSrc == "" || *ledgerSrc == "" || *manager == "" {
		flag.Usage()
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	client := sheets.NewClient(nil, logger)
	poolRows, err := client.LoadRows(ctx, *poolSrc, "", false)
	if err != nil {
		logger.WithError(err).Fatal("failed to load player pool")
	}
	players, skipped := pool.Normalize(poolRows, pool.DefaultColumns())
	if len(skipped) > 0 {
		logger.WithField("skipped", len(skipped)).Warn("pool rows excluded during normalization")
	}

	ledgerRows, err := client.LoadRows(ctx, *ledgerSrc, "", true)
	if err != nil {
		logger.WithError(err).Fatal("failed to load draft log")
	}
	snap := ledger.ParseRows(ledgerRows, ledger.DefaultColumns())
	if snap.InvalidPrices > 0 {
		logger.WithField("invalid_prices", snap.InvalidPrices).Warn("pick prices failed to parse; counted as zero")
	}

	build := needs.DefaultBuild()
	weights := needs.DefaultWeights()

	team := snap.TeamState(*manager, *budget)
	available := snap.Available(players)

	fmt.Printf("Remaining budget: $%.1f\n", team.Remaining)
	if team.Overspent() {
		fmt.Println("WARNING: budget overspent")
	}
	fmt.Printf("Remaining players: %d\n\n", len(available))

	fmt.Println("Suggested positional targets:")
	gaps := needs.Gaps(team.PositionCounts, build)
	for _, pos := range build.Positions() {
		if gap := gaps[pos]; gap > 0 {
			fmt.Printf("  Add %d more %s(s)\n", gap, pos)
		}
	}

	priorities := needs.Prioritize(team.PositionCounts, build, weights)
	fmt.Println("\nPrioritized positional needs:")
	for _, ps := range priorities {
		if ps.Score > 0 {
			fmt.Printf("  %s: priority score %.2f\n", ps.Position, ps.Score)
		}
	}

	fmt.Println("\nRecommended players to target:")
	printPlayers(strategy.Recommend(available, priorities, team.Remaining, strategy.DefaultRecommendations))

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	if *seed != 0 {
		rng = rand.New(rand.NewSource(*seed))
	}
	for _, strat := range []strategy.Strategy{strategy.Drain, strategy.Decoy, strategy.Target} {
		nom := strategy.Nominate(available, team.PositionCounts, build, priorities, strat, strategy.DefaultNominations, rng)
		label := fmt.Sprintf("\n%s nominations:", strat)
		if nom.Fallback {
			label += " (fallback: full pool)"
		}
		fmt.Println(label)
		printPlayers(nom.Players)
	}

	fmt.Println("\nOpponent budgets:")
	for _, o := range summary.Opponents(snap, *manager, *budget) {
		fmt.Printf("  %-20s spent $%6.1f  remaining $%6.1f  players %d\n",
			o.Manager, o.Spent, o.Remaining, o.PlayersDrafted)
	}
}

func printPlayers(players []pool.Player) {
	if len(players) == 0 {
		fmt.Println("  (none)")
		return
	}
	for _, p := range players {
		fmt.Printf("  %-24s %-4s %s\n", p.Name, p.Position, p.Team)
	}
}
