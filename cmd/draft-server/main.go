// Command draft-server exposes the auction draft assistant as MCP tools over
// Streamable HTTP, with health and Prometheus endpoints alongside.
package main

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"math/rand"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sirupsen/logrus"

	"github.com/williambfroemming/ff-ai-draft-assistant/internal/assistant"
	"github.com/williambfroemming/ff-ai-draft-assistant/internal/config"
	"github.com/williambfroemming/ff-ai-draft-assistant/internal/metrics"
	"github.com/williambfroemming/ff-ai-draft-assistant/internal/sheets"
	"github.com/williambfroemming/ff-ai-draft-assistant/internal/store"
)

type server struct {
	cfg    *config.Config
	client *sheets.Client
	logger *logrus.Logger
	asst   *assistant.Assistant
	rng    *rand.Rand
}

type toolInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("failed to load config")
	}
	if lvl, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(lvl)
	} else {
		logger.WithField("log_level", cfg.LogLevel).Warn("invalid log level, using info")
	}

	var st *store.SnapshotStore
	if cfg.CacheRoot != "" {
		st = store.New(cfg.CacheRoot)
	}

	s := &server{
		cfg:    cfg,
		client: sheets.NewClient(st, logger),
		logger: logger,
	}
	if cfg.Completion.BaseURL != "" {
		completer := assistant.NewHTTPCompleter(cfg.Completion.BaseURL, cfg.Completion.APIKey, cfg.Completion.Model)
		s.asst = assistant.New(completer, logger)
	}
	if cfg.DecoySeed != 0 {
		s.rng = rand.New(rand.NewSource(cfg.DecoySeed))
	} else {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "ff-draft-assistant",
			Version: "1.0.0",
		},
		nil,
	)

	registry := make([]toolInfo, 0, 8)
	s.registerTools(mcpServer, &registry)

	handler := mcp.NewStreamableHTTPHandler(func(r *http.Request) *mcp.Server {
		return mcpServer
	}, &mcp.StreamableHTTPOptions{JSONResponse: true})

	apiKey := strings.TrimSpace(os.Getenv("DRAFT_API_KEY"))
	if cfg.RequireAuth && apiKey == "" {
		logger.Fatal("DRAFT_API_KEY is required (set env var or require_auth: false)")
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})
	r.Handle("/metrics", metrics.Handler())
	r.Get("/tools", withAuth(apiKey, cfg.AuthHeader, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		b, _ := json.MarshalIndent(map[string]any{"tools": registry}, "", "  ")
		w.Write(b)
	}))
	r.Handle(cfg.MCPPath, withAuth(apiKey, cfg.AuthHeader, handler.ServeHTTP))

	logger.WithFields(logrus.Fields{"addr": cfg.Addr, "path": cfg.MCPPath}).Info("MCP server listening")
	if err := http.ListenAndServe(cfg.Addr, r); err != nil {
		logger.WithError(err).Fatal("server exited")
	}
}

// withAuth gates a handler behind a constant-time API key check. An empty
// configured key disables the check.
func withAuth(apiKey, header string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if apiKey == "" {
			next(w, r)
			return
		}
		key := strings.TrimSpace(r.Header.Get(header))
		if key == "" {
			if authz := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(authz), "bearer ") {
				key = strings.TrimSpace(authz[7:])
			}
		}
		if subtle.ConstantTimeCompare([]byte(key), []byte(apiKey)) != 1 {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":"unauthorized"}`))
			return
		}
		next(w, r)
	}
}

func addTool[T any](server *mcp.Server, registry *[]toolInfo, tool *mcp.Tool, handler func(ctx context.Context, req *mcp.CallToolRequest, args T) (*mcp.CallToolResult, any, error)) {
	*registry = append(*registry, toolInfo{Name: tool.Name, Description: tool.Description})
	mcp.AddTool(server, tool, handler)
}

func toolJSON(v any) *mcp.CallToolResult {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return toolError(err)
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(b)},
		},
	}
}

func toolError(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{
			&mcp.TextContent{Text: "error: " + err.Error()},
		},
	}
}
