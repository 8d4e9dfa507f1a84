// Package strategy ranks available players against prioritized needs and
// selects nomination candidates. Recommendation targets are players to bid
// on; nominations are players to put up for bid, which is a different game.
package strategy

import (
	"math/rand"
	"time"

	"github.com/williambfroemming/ff-ai-draft-assistant/internal/needs"
	"github.com/williambfroemming/ff-ai-draft-assistant/internal/pool"
)

// DefaultRecommendations bounds the recommendation list.
const DefaultRecommendations = 10

// DefaultNominations bounds each nomination list.
const DefaultNominations = 3

// decoyWindow caps the decoy candidate slice to the top of the pool, which is
// assumed pre-sorted by external rank. A decoy only burns opponent budget if
// it looks like a player someone would actually bid on.
const decoyWindow = 100

// decoyScoreCeiling marks a position as low-priority for decoy purposes.
const decoyScoreCeiling = 0.5

// Recommend returns up to limit available players at positions with a
// strictly positive priority score, preserving the pool's external rank
// order. The remaining budget is accepted for a future auction-value filter;
// the canonical player record carries no price today, so no price filtering
// happens yet.
func Recommend(available []pool.Player, priorities []needs.PositionScore, remaining float64, limit int) []pool.Player {
	_ = remaining
	if limit <= 0 {
		limit = DefaultRecommendations
	}
	wanted := make(map[string]struct{}, len(priorities))
	for _, ps := range priorities {
		if ps.Score > 0 {
			wanted[ps.Position] = struct{}{}
		}
	}
	out := make([]pool.Player, 0, limit)
	for _, p := range available {
		if _, ok := wanted[p.Position]; !ok {
			continue
		}
		out = append(out, p)
		if len(out) == limit {
			break
		}
	}
	return out
}

// Strategy names a nomination selection policy.
type Strategy string

const (
	// Drain nominates at positions the caller has already filled, forcing
	// opponents who still need them to spend.
	Drain Strategy = "drain"
	// Decoy nominates a random pick from low-priority positions near the top
	// of the board, consuming attention without signaling a want.
	Decoy Strategy = "decoy"
	// Target nominates at the caller's own high-priority positions.
	Target Strategy = "target"
)

// Nomination is a strategy result. Fallback is true when the strategy's
// filter matched nothing and the selection fell back to the generic pool, so
// callers can tell a real match from a substitute.
type Nomination struct {
	Strategy Strategy      `json:"strategy"`
	Players  []pool.Player `json:"players"`
	Fallback bool          `json:"fallback"`
}

// Nominate selects up to max players to put up for bid. The available pool is
// assumed pre-sorted by external rank. Decoy is the only randomized policy
// and draws from rng, so a seeded source makes it deterministic; a nil rng
// gets a time-seeded one. An unknown strategy returns an empty, non-fallback
// result rather than an error: the caller asked for no policy this package
// knows, and an empty list is the safe answer mid-auction.
func Nominate(available []pool.Player, counts map[string]int, build needs.TargetBuild,
	priorities []needs.PositionScore, strat Strategy, max int, rng *rand.Rand) Nomination {

	if max <= 0 {
		max = DefaultNominations
	}
	nom := Nomination{Strategy: strat, Players: []pool.Player{}}

	switch strat {
	case Drain:
		// Filled means gap <= 0, so a zero-target position counts: the
		// caller never wanted it, opponents might.
		filled := make(map[string]struct{})
		for _, pos := range build.Positions() {
			if counts[pos] >= build.Count(pos) {
				filled[pos] = struct{}{}
			}
		}
		candidates := filterByPosition(available, filled, 0)
		if len(candidates) == 0 {
			candidates = available
			nom.Fallback = true
		}
		nom.Players = head(candidates, max)

	case Decoy:
		if rng == nil {
			rng = rand.New(rand.NewSource(time.Now().UnixNano()))
		}
		low := make(map[string]struct{})
		for _, ps := range priorities {
			if ps.Score < decoyScoreCeiling {
				low[ps.Position] = struct{}{}
			}
		}
		candidates := filterByPosition(available, low, decoyWindow)
		if len(candidates) == 0 {
			candidates = head(available, decoyWindow)
			nom.Fallback = true
		}
		nom.Players = sample(candidates, max, rng)

	case Target:
		want := make(map[string]struct{})
		for _, ps := range priorities {
			if ps.Score > 0 {
				want[ps.Position] = struct{}{}
			}
		}
		candidates := filterByPosition(available, want, 0)
		if len(candidates) == 0 {
			candidates = available
			nom.Fallback = true
		}
		nom.Players = head(candidates, max)
	}

	return nom
}

// filterByPosition keeps players whose position is in the set, preserving
// order, stopping at limit when limit > 0.
func filterByPosition(players []pool.Player, positions map[string]struct{}, limit int) []pool.Player {
	if len(positions) == 0 {
		return nil
	}
	var out []pool.Player
	for _, p := range players {
		if _, ok := positions[p.Position]; !ok {
			continue
		}
		out = append(out, p)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

func head(players []pool.Player, n int) []pool.Player {
	if n > len(players) {
		n = len(players)
	}
	out := make([]pool.Player, n)
	copy(out, players[:n])
	return out
}

// sample draws min(n, len) players uniformly without replacement.
func sample(players []pool.Player, n int, rng *rand.Rand) []pool.Player {
	if n > len(players) {
		n = len(players)
	}
	out := make([]pool.Player, 0, n)
	for _, idx := range rng.Perm(len(players))[:n] {
		out = append(out, players[idx])
	}
	return out
}
