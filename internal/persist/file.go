package persist

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"supportapi/internal/model"
)

// filePersister implements Persister over a single JSON file.
//
// Save stages the complete image in a temporary file in the same directory,
// fsyncs it, and renames it over the canonical path. Rename within one
// directory is atomic on POSIX filesystems, so an interrupted save leaves
// the previous snapshot intact.
type filePersister struct {
	path string
}

// NewFile creates a file-backed Persister writing to path. The parent
// directory is created if it does not exist.
func NewFile(path string) (Persister, error) {
	if path == "" {
		return nil, fmt.Errorf("snapshot path is required")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}
	return &filePersister{path: path}, nil
}

// Load reads the snapshot from disk. An absent or empty file yields an
// empty snapshot; anything else that cannot be decoded is an error, since
// silently discarding records would violate durability.
func (p *filePersister) Load(ctx context.Context) (*Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(p.path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewSnapshot(), nil
		}
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	if len(data) == 0 {
		return NewSnapshot(), nil
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	if snap.Applications == nil {
		snap.Applications = make(map[int]*model.Application)
	}
	if snap.Counter < 1 {
		snap.Counter = 1
	}
	return &snap, nil
}

// Save writes the complete snapshot atomically.
func (p *filePersister) Save(ctx context.Context, snap *Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(p.path), filepath.Base(p.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp snapshot: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp snapshot: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("sync temp snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp snapshot: %w", err)
	}

	if err := os.Rename(tmpName, p.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}
