package badger

import (
	"context"
	"errors"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/scholarly/core"
	"github.com/poiesic/scholarly/storage"
)

// corpusSnapshotKey is the single key holding the serialized corpus blob.
const corpusSnapshotKey = "corsnap"

// SnapshotStore implements storage.SnapshotStore on BadgerDB.
type SnapshotStore struct {
	backend *Backend
}

var _ storage.SnapshotStore = (*SnapshotStore)(nil)

// NewSnapshotStore creates a snapshot store at the given directory.
//
// Returns the storage.SnapshotStore interface to enforce abstraction.
func NewSnapshotStore(filePath string) (storage.SnapshotStore, error) {
	backend, err := OpenBackend(filePath, false)
	if err != nil {
		return nil, err
	}
	return &SnapshotStore{backend: backend}, nil
}

// Load reads the stored corpus snapshot.
func (s *SnapshotStore) Load(ctx context.Context) (*core.Snapshot, error) {
	if s.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}

	var snapshot *core.Snapshot
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get([]byte(corpusSnapshotKey))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return storage.ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			snapshot, err = storage.UnmarshalSnapshot(val)
			return err
		})
	}, false)
	if err != nil {
		return nil, err
	}
	return snapshot, nil
}

// Save replaces the stored corpus snapshot.
func (s *SnapshotStore) Save(ctx context.Context, snapshot *core.Snapshot) error {
	if s.backend.IsClosed() {
		return storage.ErrStorageClosed
	}

	data, err := storage.MarshalSnapshot(snapshot)
	if err != nil {
		return err
	}

	return s.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set([]byte(corpusSnapshotKey), data); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// Close closes the underlying backend.
func (s *SnapshotStore) Close() error {
	return s.backend.Close()
}
