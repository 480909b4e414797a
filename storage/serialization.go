// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package storage

import (
	"fmt"

	"github.com/poiesic/scholarly/core"
)

// MarshalSnapshot serializes a corpus Snapshot to bytes.
func MarshalSnapshot(snapshot *core.Snapshot) ([]byte, error) {
	if len(snapshot.Papers) != len(snapshot.Vectors) {
		return nil, fmt.Errorf("%w: %d papers but %d vectors",
			ErrSerializationFailed, len(snapshot.Papers), len(snapshot.Vectors))
	}
	buf := make([]byte, core.SnapshotMUS.Size(*snapshot))
	core.SnapshotMUS.Marshal(*snapshot, buf)
	return buf, nil
}

// UnmarshalSnapshot deserializes a corpus Snapshot from bytes.
func UnmarshalSnapshot(data []byte) (*core.Snapshot, error) {
	snapshot, _, err := core.SnapshotMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	if len(snapshot.Papers) != len(snapshot.Vectors) {
		return nil, fmt.Errorf("%w: %d papers but %d vectors",
			ErrSerializationFailed, len(snapshot.Papers), len(snapshot.Vectors))
	}
	return &snapshot, nil
}
