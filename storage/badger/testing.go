package badger

import "github.com/poiesic/scholarly/storage"

// NewMemorySnapshotStore creates an in-memory snapshot store for tests.
func NewMemorySnapshotStore() (storage.SnapshotStore, error) {
	backend, err := OpenBackend("", true)
	if err != nil {
		return nil, err
	}
	return &SnapshotStore{backend: backend}, nil
}
