// Package pool normalizes raw player-pool rows into canonical Player records.
package pool

import "strings"

// Player is one canonical row of the player pool. Players are immutable once
// loaded; Name (via Key) is the identity used to join against the draft ledger.
type Player struct {
	Name     string `json:"name"`
	Team     string `json:"team"`
	Position string `json:"position"`
	ByeWeek  string `json:"bye_week,omitempty"`
}

// ColumnMap names the source columns for each canonical field. Sources use
// arbitrary header names (ranking exports, sheet tabs), so the mapping is
// configurable.
type ColumnMap struct {
	Name     string
	Team     string
	Position string
	ByeWeek  string
}

// DefaultColumns matches the FantasyPros ranking export headers.
func DefaultColumns() ColumnMap {
	return ColumnMap{
		Name:     "PLAYER NAME",
		Team:     "TEAM",
		Position: "POS",
		ByeWeek:  "BYE WEEK",
	}
}

// SkippedRow records a source row excluded during normalization. Exclusions
// are data, not errors: callers surface the count rather than aborting.
type SkippedRow struct {
	Row    int    `json:"row"`
	Name   string `json:"name,omitempty"`
	Reason string `json:"reason"`
}

// Key returns the normalized identity for a player name: surrounding
// whitespace trimmed, case folded. Both the pool and the ledger use this as
// the join key, so whitespace/case drift between sources cannot split an
// identity.
func Key(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// ExtractPosition returns the first maximal run of uppercase ASCII letters in
// raw, so composite codes like "WR1" or "RB2" collapse to "WR"/"RB". Empty
// result means the position is undetermined.
func ExtractPosition(raw string) string {
	start := -1
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if c >= 'A' && c <= 'Z' {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			return raw[start:i]
		}
	}
	if start >= 0 {
		return raw[start:]
	}
	return ""
}

// Normalize converts raw header-keyed rows into canonical players. Rows with
// an empty name, an undeterminable position, or a duplicate identity key are
// excluded and reported; the first row for an identity wins. The input rows
// are never mutated.
func Normalize(rows []map[string]string, cols ColumnMap) ([]Player, []SkippedRow) {
	players := make([]Player, 0, len(rows))
	var skipped []SkippedRow
	seen := make(map[string]struct{}, len(rows))

	for i, row := range rows {
		name := strings.TrimSpace(row[cols.Name])
		if name == "" {
			skipped = append(skipped, SkippedRow{Row: i, Reason: "missing player name"})
			continue
		}
		position := ExtractPosition(row[cols.Position])
		if position == "" {
			skipped = append(skipped, SkippedRow{Row: i, Name: name, Reason: "undeterminable position"})
			continue
		}
		key := Key(name)
		if _, dup := seen[key]; dup {
			skipped = append(skipped, SkippedRow{Row: i, Name: name, Reason: "duplicate player"})
			continue
		}
		seen[key] = struct{}{}
		players = append(players, Player{
			Name:     name,
			Team:     strings.TrimSpace(row[cols.Team]),
			Position: position,
			ByeWeek:  strings.TrimSpace(row[cols.ByeWeek]),
		})
	}
	return players, skipped
}
