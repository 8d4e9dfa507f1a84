// Package ledger models the auction draft log and the views derived from it:
// per-manager roster state and the available-player filter. The ledger is
// append-only from this package's viewpoint; every query cycle works against
// one immutable snapshot.
package ledger

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/williambfroemming/ff-ai-draft-assistant/internal/pool"
)

// DefaultBudget is the standard auction budget per manager.
const DefaultBudget = 200.0

// Pick is one completed auction pick. PriceValid is false when the source
// price failed numeric coercion; such picks still occupy a roster slot and
// still remove the player from availability, but contribute zero to every
// spend sum.
type Pick struct {
	Player     string  `json:"player"`
	Position   string  `json:"position"`
	Price      float64 `json:"price"`
	PriceValid bool    `json:"price_valid"`
	Manager    string  `json:"manager"`
	Index      int     `json:"index"`
}

// ColumnMap names the source columns for ledger rows.
type ColumnMap struct {
	Player   string
	Position string
	Price    string
	Manager  string
}

// DefaultColumns matches the draft sheet headers.
func DefaultColumns() ColumnMap {
	return ColumnMap{
		Player:   "Player",
		Position: "Position",
		Price:    "Price",
		Manager:  "Drafted By",
	}
}

// Snapshot is one immutable read of the draft log. InvalidPrices counts picks
// whose price failed coercion so the degradation is observable instead of
// hiding inside a zero.
type Snapshot struct {
	ID            string    `json:"id"`
	LoadedAt      time.Time `json:"loaded_at"`
	Picks         []Pick    `json:"picks"`
	InvalidPrices int       `json:"invalid_prices"`
}

// TeamState is the atomic roster/budget view for one manager. All fields are
// computed from the same pass over the snapshot so they can never disagree.
type TeamState struct {
	Manager        string         `json:"manager"`
	Found          bool           `json:"found"`
	Roster         []Pick         `json:"roster"`
	Spent          float64        `json:"spent"`
	Remaining      float64        `json:"remaining"`
	PositionCounts map[string]int `json:"position_counts"`
	InvalidPrices  int            `json:"invalid_prices"`
}

// Overspent reports whether the manager's remaining budget has gone negative.
// Negative remainders pass through unclamped; this is the caller-facing
// warning signal.
func (t TeamState) Overspent() bool {
	return t.Remaining < 0
}

// ParsePrice coerces a raw price cell to a float. Leading "$" and surrounding
// whitespace are tolerated. Empty or unparseable cells return (0, false);
// they are never dropped silently, the caller records them.
func ParsePrice(raw string) (float64, bool) {
	s := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(raw), "$"))
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}

// ParseRows builds a snapshot from header-keyed ledger rows. Rows with an
// empty player name are skipped entirely (nothing was drafted); price
// coercion failures keep the pick but mark it invalid. Pick order follows
// ledger order.
func ParseRows(rows []map[string]string, cols ColumnMap) Snapshot {
	snap := Snapshot{
		ID:       uuid.NewString(),
		LoadedAt: time.Now().UTC(),
		Picks:    make([]Pick, 0, len(rows)),
	}
	for i, row := range rows {
		name := strings.TrimSpace(row[cols.Player])
		if name == "" {
			continue
		}
		price, ok := ParsePrice(row[cols.Price])
		if !ok {
			snap.InvalidPrices++
		}
		snap.Picks = append(snap.Picks, Pick{
			Player:     name,
			Position:   pool.ExtractPosition(row[cols.Position]),
			Price:      price,
			PriceValid: ok,
			Manager:    strings.TrimSpace(row[cols.Manager]),
			Index:      i,
		})
	}
	return snap
}

// TeamState derives the roster, spend, remaining budget, and position counts
// for one manager. Name matching trims whitespace and ignores case. A manager
// with no picks gets an empty roster, the full starting budget, and
// Found == false.
func (s Snapshot) TeamState(manager string, budget float64) TeamState {
	key := pool.Key(manager)
	state := TeamState{
		Manager:        strings.TrimSpace(manager),
		Roster:         []Pick{},
		Remaining:      budget,
		PositionCounts: make(map[string]int),
	}
	for _, p := range s.Picks {
		if pool.Key(p.Manager) != key {
			continue
		}
		state.Found = true
		state.Roster = append(state.Roster, p)
		if p.PriceValid {
			state.Spent += p.Price
		} else {
			state.InvalidPrices++
		}
		if p.Position != "" {
			state.PositionCounts[p.Position]++
		}
	}
	state.Remaining = budget - state.Spent
	return state
}

// DraftedKeys returns the identity keys of every drafted player, regardless
// of which manager drafted them.
func (s Snapshot) DraftedKeys() map[string]struct{} {
	keys := make(map[string]struct{}, len(s.Picks))
	for _, p := range s.Picks {
		keys[pool.Key(p.Player)] = struct{}{}
	}
	return keys
}

// Available returns the players not yet drafted by anyone, preserving pool
// order. The join uses the normalized identity key, so case and whitespace
// drift between the two sheets cannot leak a drafted player back into the
// pool. Filtering an already-filtered pool is a no-op.
func (s Snapshot) Available(players []pool.Player) []pool.Player {
	drafted := s.DraftedKeys()
	out := make([]pool.Player, 0, len(players))
	for _, p := range players {
		if _, taken := drafted[pool.Key(p.Name)]; taken {
			continue
		}
		out = append(out, p)
	}
	return out
}
