package needs

import "testing"

// ---------------------------------------------------------------------------
// Gaps
// ---------------------------------------------------------------------------

func TestGaps_ExactlyBuildKeys(t *testing.T) {
	build := TargetBuild{QB: 2, RB: 4, WR: 5, TE: 2, DEF: 1}
	counts := map[string]int{"RB": 1, "K": 3} // K outside the build

	gaps := Gaps(counts, build)

	want := map[string]int{"QB": 2, "RB": 3, "WR": 5, "TE": 2, "DEF": 1}
	if len(gaps) != len(want) {
		t.Fatalf("gaps has %d keys, want %d: %+v", len(gaps), len(want), gaps)
	}
	for pos, g := range want {
		if gaps[pos] != g {
			t.Errorf("gaps[%s] = %d, want %d", pos, gaps[pos], g)
		}
	}
	if _, ok := gaps["K"]; ok {
		t.Errorf("position outside the build must not be reported")
	}
}

func TestGaps_SurplusIsNegative(t *testing.T) {
	build := TargetBuild{RB: 2}
	gaps := Gaps(map[string]int{"RB": 4}, build)
	if gaps["RB"] != -2 {
		t.Errorf("gaps[RB] = %d, want -2 (surplus passes through)", gaps["RB"])
	}
}

func TestGaps_Scenario(t *testing.T) {
	// target={"RB":2}, counts={} -> gaps=={"RB":2}
	gaps := Gaps(map[string]int{}, TargetBuild{RB: 2})
	if gaps["RB"] != 2 {
		t.Errorf("gaps[RB] = %d, want 2", gaps["RB"])
	}
}

func TestGaps_ExtraPositions(t *testing.T) {
	build := TargetBuild{RB: 1, Extra: map[string]int{"K": 1}}
	gaps := Gaps(nil, build)
	if gaps["K"] != 1 {
		t.Errorf("gaps[K] = %d, want 1", gaps["K"])
	}
}

// ---------------------------------------------------------------------------
// Prioritize
// ---------------------------------------------------------------------------

func TestPrioritize_Scenario(t *testing.T) {
	// target={"RB":2}, counts={}, weights={"RB":1.0} -> priority RB == 2.0
	scores := Prioritize(nil, TargetBuild{RB: 2}, Weights{RB: 1.0})
	if scores[0].Position != "RB" || scores[0].Score != 2.0 {
		t.Errorf("top score = %+v, want RB 2.0", scores[0])
	}
}

func TestPrioritize_NeverNegativeAndDescending(t *testing.T) {
	build := TargetBuild{QB: 2, RB: 4, WR: 5, TE: 2, DEF: 1}
	counts := map[string]int{"WR": 9, "TE": 2} // WR surplus, TE filled
	scores := Prioritize(counts, build, DefaultWeights())

	for i, ps := range scores {
		if ps.Score < 0 {
			t.Errorf("score for %s is negative: %v", ps.Position, ps.Score)
		}
		if i > 0 && scores[i-1].Score < ps.Score {
			t.Errorf("scores not descending at %d: %v < %v", i, scores[i-1].Score, ps.Score)
		}
	}
}

func TestPrioritize_ZeroGapStillPresentWithZeroScore(t *testing.T) {
	build := TargetBuild{QB: 1, RB: 1}
	counts := map[string]int{"QB": 1}
	scores := Prioritize(counts, build, DefaultWeights())

	found := false
	for _, ps := range scores {
		if ps.Position == "QB" {
			found = true
			if ps.Score != 0 {
				t.Errorf("filled position score = %v, want 0", ps.Score)
			}
		}
	}
	if !found {
		t.Errorf("filled position must still appear in the result")
	}
}

// Ties are broken by ascending position code, so equal scores always come out
// in the same order no matter how the build was declared.
func TestPrioritize_TieBreakByPositionCode(t *testing.T) {
	build := TargetBuild{RB: 1, WR: 1, TE: 1}
	weights := Weights{RB: 1.0, WR: 1.0, TE: 1.0, Default: 0.5}
	scores := Prioritize(nil, build, weights)

	if scores[0].Position != "RB" || scores[1].Position != "TE" || scores[2].Position != "WR" {
		t.Errorf("tie order = %v %v %v, want RB TE WR",
			scores[0].Position, scores[1].Position, scores[2].Position)
	}
}

func TestPrioritize_DefaultWeightForUnconfiguredPosition(t *testing.T) {
	build := TargetBuild{Extra: map[string]int{"K": 2}}
	scores := Prioritize(nil, build, Weights{Default: 0.5})
	for _, ps := range scores {
		if ps.Position == "K" && ps.Score != 1.0 {
			t.Errorf("K score = %v, want 2 * default 0.5 = 1.0", ps.Score)
		}
	}
}

// ---------------------------------------------------------------------------
// Weights
// ---------------------------------------------------------------------------

func TestWeights_ExtraOverridesFixed(t *testing.T) {
	w := Weights{RB: 0.9, Extra: map[string]float64{"RB": 0.1}}
	if w.Weight("RB") != 0.1 {
		t.Errorf("Extra entry should take precedence")
	}
}

func TestWeights_UnknownPositionGetsDefault(t *testing.T) {
	w := DefaultWeights()
	if w.Weight("IDP") != DefaultWeight {
		t.Errorf("Weight(IDP) = %v, want default %v", w.Weight("IDP"), DefaultWeight)
	}
}
