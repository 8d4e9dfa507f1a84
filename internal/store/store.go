// Package store persists raw snapshot bytes under a root directory, keyed by
// relative path. The server caches fetched sheet exports here so a dropped
// connection mid-draft still leaves the last good snapshot on disk.
package store

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
)

type SnapshotStore struct {
	Root string // e.g. "data/snapshots"
}

func New(root string) *SnapshotStore {
	return &SnapshotStore{Root: root}
}

func (s *SnapshotStore) Path(rel string) string {
	return filepath.Join(s.Root, rel)
}

func (s *SnapshotStore) Exists(rel string) bool {
	_, err := os.Stat(s.Path(rel))
	return err == nil
}

// WriteRaw stores body at rel, creating parent directories as needed.
func (s *SnapshotStore) WriteRaw(rel string, body []byte) error {
	path := s.Path(rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, body, 0o644)
}

// WriteJSON stores v at rel as indented JSON, for derived output a human may
// want to inspect between nominations.
func (s *SnapshotStore) WriteJSON(rel string, v any) error {
	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return err
	}
	return s.WriteRaw(rel, buf.Bytes())
}

func (s *SnapshotStore) ReadRaw(rel string) ([]byte, error) {
	return os.ReadFile(s.Path(rel))
}
