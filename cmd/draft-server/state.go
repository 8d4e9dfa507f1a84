package main

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/williambfroemming/ff-ai-draft-assistant/internal/ledger"
	"github.com/williambfroemming/ff-ai-draft-assistant/internal/metrics"
	"github.com/williambfroemming/ff-ai-draft-assistant/internal/pool"
)

// draftState is one query cycle's immutable snapshot pair plus everything
// recorded while normalizing it. Every tool derives its answer from a single
// draftState, so an in-flight computation can never mix ledger reads.
type draftState struct {
	Players []pool.Player
	Skipped []pool.SkippedRow
	Snap    ledger.Snapshot
}

// snapshotMeta is the derived record written alongside the cache so a human
// can see what the last query cycle worked from.
type snapshotMeta struct {
	ID            string            `json:"id"`
	LoadedAt      time.Time         `json:"loaded_at"`
	Picks         int               `json:"picks"`
	InvalidPrices int               `json:"invalid_prices"`
	PoolPlayers   int               `json:"pool_players"`
	PoolSkipped   []pool.SkippedRow `json:"pool_skipped,omitempty"`
}

// loadState fetches and normalizes both snapshots. The pool is effectively
// static and served from cache when one exists; the ledger is live and
// always refetched.
func (s *server) loadState(ctx context.Context) (draftState, error) {
	poolRows, err := s.client.LoadRows(ctx, s.cfg.PoolSource, "pool.csv", false)
	if err != nil {
		return draftState{}, err
	}
	players, skipped := pool.Normalize(poolRows, pool.DefaultColumns())
	metrics.SnapshotLoads.WithLabelValues("pool").Inc()
	metrics.SnapshotRows.WithLabelValues("pool").Set(float64(len(players)))
	for _, sk := range skipped {
		metrics.SkippedRows.WithLabelValues("pool", sk.Reason).Inc()
	}

	ledgerRows, err := s.client.LoadRows(ctx, s.cfg.LedgerSource, "ledger.csv", true)
	if err != nil {
		return draftState{}, err
	}
	snap := ledger.ParseRows(ledgerRows, ledger.DefaultColumns())
	metrics.SnapshotLoads.WithLabelValues("ledger").Inc()
	metrics.SnapshotRows.WithLabelValues("ledger").Set(float64(len(snap.Picks)))
	if snap.InvalidPrices > 0 {
		metrics.SkippedRows.WithLabelValues("ledger", "invalid price").Add(float64(snap.InvalidPrices))
	}

	s.logger.WithFields(logrus.Fields{
		"snapshot":       snap.ID,
		"pool_players":   len(players),
		"pool_skipped":   len(skipped),
		"picks":          len(snap.Picks),
		"invalid_prices": snap.InvalidPrices,
	}).Debug("draft state loaded")

	if st := s.client.Store; st != nil {
		meta := snapshotMeta{
			ID:            snap.ID,
			LoadedAt:      snap.LoadedAt,
			Picks:         len(snap.Picks),
			InvalidPrices: snap.InvalidPrices,
			PoolPlayers:   len(players),
			PoolSkipped:   skipped,
		}
		if err := st.WriteJSON("derived/last_snapshot.json", meta); err != nil {
			s.logger.WithError(err).Warn("failed to write derived snapshot metadata")
		}
	}

	return draftState{Players: players, Skipped: skipped, Snap: snap}, nil
}

// manager resolves the acting manager name: explicit argument first, then
// the configured default.
func (s *server) manager(arg *string) string {
	if arg != nil && *arg != "" {
		return *arg
	}
	return s.cfg.ManagerName
}
