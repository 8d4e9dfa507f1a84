// Package needs computes positional gaps and weighted priority ordering
// against a target roster build.
package needs

import "sort"

// Canonical position codes. Extra map entries extend the set for exotic
// league formats (K, IDP slots) without changing this package.
const (
	QB  = "QB"
	RB  = "RB"
	WR  = "WR"
	TE  = "TE"
	DEF = "DEF"
)

// DefaultWeight applies to any position with no configured weight.
const DefaultWeight = 0.5

// TargetBuild is the desired roster count per position. The fixed fields
// cover the standard set; Extra carries additional positions.
type TargetBuild struct {
	QB    int            `koanf:"qb" json:"qb"`
	RB    int            `koanf:"rb" json:"rb"`
	WR    int            `koanf:"wr" json:"wr"`
	TE    int            `koanf:"te" json:"te"`
	DEF   int            `koanf:"def" json:"def"`
	Extra map[string]int `koanf:"extra" json:"extra,omitempty"`
}

// DefaultBuild is a Superflex auction build: two QBs, heavy RB/WR depth.
func DefaultBuild() TargetBuild {
	return TargetBuild{QB: 2, RB: 4, WR: 5, TE: 2, DEF: 1}
}

// Positions returns every position the build covers, fixed set first, then
// extras sorted by code.
func (b TargetBuild) Positions() []string {
	out := []string{QB, RB, WR, TE, DEF}
	extras := make([]string, 0, len(b.Extra))
	for pos := range b.Extra {
		extras = append(extras, pos)
	}
	sort.Strings(extras)
	return append(out, extras...)
}

// Count returns the target count for a position, zero when uncovered.
func (b TargetBuild) Count(pos string) int {
	switch pos {
	case QB:
		return b.QB
	case RB:
		return b.RB
	case WR:
		return b.WR
	case TE:
		return b.TE
	case DEF:
		return b.DEF
	}
	return b.Extra[pos]
}

// Weights are per-position importance multipliers. Positions absent from the
// configuration score at Default.
type Weights struct {
	QB      float64            `koanf:"qb" json:"qb"`
	RB      float64            `koanf:"rb" json:"rb"`
	WR      float64            `koanf:"wr" json:"wr"`
	TE      float64            `koanf:"te" json:"te"`
	DEF     float64            `koanf:"def" json:"def"`
	Extra   map[string]float64 `koanf:"extra" json:"extra,omitempty"`
	Default float64            `koanf:"default" json:"default"`
}

// DefaultWeights favors scarce starters over streamable positions.
func DefaultWeights() Weights {
	return Weights{QB: 1.0, RB: 0.9, WR: 0.8, TE: 0.6, DEF: 0.2, Default: DefaultWeight}
}

// Weight returns the multiplier for a position.
func (w Weights) Weight(pos string) float64 {
	if v, ok := w.Extra[pos]; ok {
		return v
	}
	switch pos {
	case QB:
		return w.QB
	case RB:
		return w.RB
	case WR:
		return w.WR
	case TE:
		return w.TE
	case DEF:
		return w.DEF
	}
	if w.Default > 0 {
		return w.Default
	}
	return DefaultWeight
}

// Gaps reports target minus drafted for every position the build covers.
// Drafted counts default to zero; positions outside the build are not
// reported. Negative gaps mean surplus and are passed through.
func Gaps(counts map[string]int, build TargetBuild) map[string]int {
	gaps := make(map[string]int)
	for _, pos := range build.Positions() {
		gaps[pos] = build.Count(pos) - counts[pos]
	}
	return gaps
}

// PositionScore pairs a position with its priority score.
type PositionScore struct {
	Position string  `json:"position"`
	Score    float64 `json:"score"`
}

// Prioritize scores every position the build covers: max(0, gap) times the
// position weight, ordered by descending score with ties broken by ascending
// position code. Filled or surplus positions stay in the result with score
// zero; filtering to actionable positions is the caller's concern.
func Prioritize(counts map[string]int, build TargetBuild, weights Weights) []PositionScore {
	positions := build.Positions()
	scores := make([]PositionScore, 0, len(positions))
	for _, pos := range positions {
		gap := build.Count(pos) - counts[pos]
		if gap < 0 {
			gap = 0
		}
		scores = append(scores, PositionScore{
			Position: pos,
			Score:    float64(gap) * weights.Weight(pos),
		})
	}
	sort.SliceStable(scores, func(i, j int) bool {
		if scores[i].Score != scores[j].Score {
			return scores[i].Score > scores[j].Score
		}
		return scores[i].Position < scores[j].Position
	})
	return scores
}
