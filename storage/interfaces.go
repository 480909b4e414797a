package storage

import (
	"context"

	"github.com/poiesic/scholarly/core"
)

// SnapshotStore persists the corpus snapshot as a single blob.
// Implementations must be thread-safe; Save fully rewrites the stored
// snapshot.
type SnapshotStore interface {
	// Load reads the stored snapshot. Returns ErrNotFound if no snapshot
	// has ever been saved and ErrSerializationFailed if the stored blob
	// cannot be decoded.
	Load(ctx context.Context) (*core.Snapshot, error)

	// Save replaces the stored snapshot with the given one.
	Save(ctx context.Context, snapshot *core.Snapshot) error

	// Close closes the storage backend and releases resources.
	Close() error
}
