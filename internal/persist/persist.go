package persist

// Package persist contains the durable snapshot layer. Implementations can
// live alongside the interface (file) or in subpackages; mocks are in mocks/.

import (
	"context"

	"supportapi/internal/model"
)

// Snapshot is the complete persisted state: every application record plus
// the monotonic id counter. It is written and read as one unit so a reader
// can never observe applications without the counter that produced them.
type Snapshot struct {
	Applications map[int]*model.Application `json:"applications"`
	Counter      int                        `json:"counter"`
}

// NewSnapshot returns an empty snapshot with the counter at its initial value.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Applications: make(map[int]*model.Application),
		Counter:      1,
	}
}

// Persister loads and saves the full application state.
//
// Save must be atomic with respect to crashes: a reader either sees the
// previous complete snapshot or the new complete snapshot, never a partial
// write. Load must tolerate an absent or empty file by returning an empty
// snapshot.
type Persister interface {
	Load(ctx context.Context) (*Snapshot, error)
	Save(ctx context.Context, snap *Snapshot) error
}
