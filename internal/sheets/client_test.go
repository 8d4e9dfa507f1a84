package sheets

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/williambfroemming/ff-ai-draft-assistant/internal/store"
)

// ---------------------------------------------------------------------------
// ParseCSV
// ---------------------------------------------------------------------------

func TestParseCSV_HeaderKeyedRows(t *testing.T) {
	rows, err := ParseCSV([]byte("Player,Position,Price\nBob Smith,RB1,42\n\"Jones, Jr.\",WR,10\n"))
	if err != nil {
		t.Fatalf("ParseCSV: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	if rows[0]["Player"] != "Bob Smith" || rows[0]["Price"] != "42" {
		t.Errorf("rows[0] = %+v", rows[0])
	}
	if rows[1]["Player"] != "Jones, Jr." {
		t.Errorf("quoted comma mishandled: %+v", rows[1])
	}
}

func TestParseCSV_BOMAndRaggedRows(t *testing.T) {
	raw := append([]byte{0xEF, 0xBB, 0xBF}, []byte("Player,Position,Price\nShort Row,QB\n")...)
	rows, err := ParseCSV(raw)
	if err != nil {
		t.Fatalf("ParseCSV: %v", err)
	}
	if rows[0]["Player"] != "Short Row" {
		t.Errorf("BOM not stripped from header: %+v", rows[0])
	}
	if rows[0]["Price"] != "" {
		t.Errorf("short record should leave trailing columns empty")
	}
}

func TestParseCSV_Empty(t *testing.T) {
	rows, err := ParseCSV(nil)
	if err != nil || len(rows) != 0 {
		t.Errorf("empty input: rows=%v err=%v", rows, err)
	}
}

// ---------------------------------------------------------------------------
// Client.FetchRaw / LoadRows
// ---------------------------------------------------------------------------

func TestFetchRaw_HTTPWritesThroughToStore(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits++
		w.Write([]byte("Player,Position\nA,RB\n"))
	}))
	defer srv.Close()

	st := store.New(t.TempDir())
	c := NewClient(st, nil)

	b, err := c.FetchRaw(context.Background(), srv.URL, "ledger.csv", false)
	if err != nil {
		t.Fatalf("FetchRaw: %v", err)
	}
	if len(b) == 0 {
		t.Fatal("empty body")
	}
	if !st.Exists("ledger.csv") {
		t.Errorf("fetched snapshot not cached")
	}

	// Second non-forced fetch should come from cache.
	if _, err := c.FetchRaw(context.Background(), srv.URL, "ledger.csv", false); err != nil {
		t.Fatalf("cached FetchRaw: %v", err)
	}
	if hits != 1 {
		t.Errorf("hits = %d, want 1 (second read served from cache)", hits)
	}

	// Forced fetch goes back to the network.
	if _, err := c.FetchRaw(context.Background(), srv.URL, "ledger.csv", true); err != nil {
		t.Fatalf("forced FetchRaw: %v", err)
	}
	if hits != 2 {
		t.Errorf("hits = %d, want 2 after force", hits)
	}
}

func TestFetchRaw_HTTPErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	c := NewClient(nil, nil)
	if _, err := c.FetchRaw(context.Background(), srv.URL, "x.csv", false); err == nil {
		t.Fatal("expected error for 403")
	}
}

func TestFetchRaw_LocalFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pool.csv")
	if err := os.WriteFile(path, []byte("PLAYER NAME,POS\nA,RB\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	c := NewClient(nil, nil)
	rows, err := c.LoadRows(context.Background(), path, "", false)
	if err != nil {
		t.Fatalf("LoadRows: %v", err)
	}
	if len(rows) != 1 || rows[0]["PLAYER NAME"] != "A" {
		t.Errorf("rows = %+v", rows)
	}
}

func TestFetchRaw_EmptySource(t *testing.T) {
	c := NewClient(nil, nil)
	if _, err := c.FetchRaw(context.Background(), "", "", false); err == nil {
		t.Fatal("expected error for empty source")
	}
}
