// Package summary builds per-opponent spend rollups for situational
// awareness: who still has money, who is hoarding picks.
package summary

import (
	"sort"
	"strings"

	"github.com/williambfroemming/ff-ai-draft-assistant/internal/ledger"
	"github.com/williambfroemming/ff-ai-draft-assistant/internal/pool"
)

// OpponentSummary is one opponent's rollup. InvalidPrices counts that
// opponent's picks excluded from Spent because the price failed coercion.
type OpponentSummary struct {
	Manager        string  `json:"manager"`
	Spent          float64 `json:"spent"`
	Remaining      float64 `json:"remaining"`
	PlayersDrafted int     `json:"players_drafted"`
	InvalidPrices  int     `json:"invalid_prices,omitempty"`
}

// Opponents groups the snapshot's picks by manager, excluding the caller
// (matched case-insensitively), and returns one row per opponent sorted by
// remaining budget descending, ties by manager name. Manager identity uses
// the same normalized key as player identity, so "bill" and " Bill " roll up
// together; the first-seen spelling is displayed.
func Opponents(snap ledger.Snapshot, myName string, budget float64) []OpponentSummary {
	myKey := pool.Key(myName)

	byKey := make(map[string]*OpponentSummary)
	var order []string
	for _, p := range snap.Picks {
		key := pool.Key(p.Manager)
		if key == "" || key == myKey {
			continue
		}
		row, ok := byKey[key]
		if !ok {
			row = &OpponentSummary{Manager: strings.TrimSpace(p.Manager)}
			byKey[key] = row
			order = append(order, key)
		}
		row.PlayersDrafted++
		if p.PriceValid {
			row.Spent += p.Price
		} else {
			row.InvalidPrices++
		}
	}

	out := make([]OpponentSummary, 0, len(order))
	for _, key := range order {
		row := byKey[key]
		row.Remaining = budget - row.Spent
		out = append(out, *row)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Remaining != out[j].Remaining {
			return out[i].Remaining > out[j].Remaining
		}
		return out[i].Manager < out[j].Manager
	})
	return out
}
