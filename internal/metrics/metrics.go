// Package metrics provides Prometheus instrumentation for the draft server.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// ToolCalls counts MCP tool invocations by tool and outcome.
	ToolCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "draft_tool_calls_total",
		Help: "Total MCP tool calls",
	}, []string{"tool", "status"})

	// ToolLatency tracks tool handling time.
	ToolLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "draft_tool_latency_seconds",
		Help:    "Tool call latency in seconds",
		Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
	}, []string{"tool"})

	// SnapshotLoads counts pool/ledger snapshot loads by source.
	SnapshotLoads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "draft_snapshot_loads_total",
		Help: "Snapshot loads by source",
	}, []string{"source"})

	// SnapshotRows tracks how many rows the latest snapshot carried.
	SnapshotRows = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "draft_snapshot_rows",
		Help: "Rows in the most recent snapshot",
	}, []string{"source"})

	// SkippedRows counts rows excluded during normalization or coercion.
	SkippedRows = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "draft_skipped_rows_total",
		Help: "Rows excluded from derived aggregates",
	}, []string{"source", "reason"})
)

// ObserveTool records one tool call's outcome and latency.
func ObserveTool(tool string, start time.Time, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	ToolCalls.WithLabelValues(tool, status).Inc()
	ToolLatency.WithLabelValues(tool).Observe(time.Since(start).Seconds())
}

// Handler exposes the Prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
