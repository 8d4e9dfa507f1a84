// Package sheets loads player-pool and draft-log snapshots from published
// CSV exports or local files. It is ingestion glue: the core never calls it,
// it only consumes the rows it produces.
package sheets

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/williambfroemming/ff-ai-draft-assistant/internal/store"
)

// Client fetches snapshot bytes with a bounded timeout and an optional
// cache-through store. One fetch per query cycle, no internal retries;
// retry/backoff belongs to whoever schedules query cycles.
type Client struct {
	HTTP      *http.Client
	Store     *store.SnapshotStore
	UserAgent string
	UseCache  bool
	Logger    *logrus.Logger
}

// NewClient builds a client. st may be nil to disable caching.
func NewClient(st *store.SnapshotStore, logger *logrus.Logger) *Client {
	return &Client{
		HTTP:      &http.Client{Timeout: 20 * time.Second},
		Store:     st,
		UserAgent: "ff-draft-assistant/1.0",
		UseCache:  st != nil,
		Logger:    logger,
	}
}

// FetchRaw returns the bytes of src, which is either an http(s) URL (a sheet
// published as CSV) or a local file path. Fetched bytes are written through
// to the store at relPath; when force is false and the network is the source,
// a cached copy is preferred.
func (c *Client) FetchRaw(ctx context.Context, src, relPath string, force bool) ([]byte, error) {
	if !strings.HasPrefix(src, "http://") && !strings.HasPrefix(src, "https://") {
		if src == "" {
			return nil, fmt.Errorf("empty snapshot source")
		}
		b, err := os.ReadFile(src)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", src, err)
		}
		return b, nil
	}

	if !force && c.UseCache && c.Store != nil && c.Store.Exists(relPath) {
		return c.Store.ReadRaw(relPath)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Accept", "text/csv")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", src, err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("GET %s failed: %d", src, resp.StatusCode)
	}

	if c.Store != nil {
		if err := c.Store.WriteRaw(relPath, body); err != nil {
			return nil, err
		}
	}
	return body, nil
}

// LoadRows fetches src and parses it as CSV into header-keyed rows.
func (c *Client) LoadRows(ctx context.Context, src, relPath string, force bool) ([]map[string]string, error) {
	raw, err := c.FetchRaw(ctx, src, relPath, force)
	if err != nil {
		return nil, err
	}
	rows, err := ParseCSV(raw)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", src, err)
	}
	if c.Logger != nil {
		c.Logger.WithFields(logrus.Fields{"source": src, "rows": len(rows)}).Debug("snapshot loaded")
	}
	return rows, nil
}

// ParseCSV turns CSV bytes into one map per data row, keyed by the header
// row. Short records leave their trailing columns empty rather than failing;
// live sheets routinely have ragged rows while a pick is half-entered.
func ParseCSV(b []byte) ([]map[string]string, error) {
	b = bytes.TrimPrefix(b, []byte{0xEF, 0xBB, 0xBF}) // UTF-8 BOM from sheet exports
	r := csv.NewReader(bytes.NewReader(b))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var rows []map[string]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		row := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(rec) {
				row[col] = rec[i]
			} else {
				row[col] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
