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


// Package storage provides the persistence abstraction for the corpus
// snapshot.
//
// The authoritative corpus lives upstream in the graph store; local
// persistence is only a restart cache holding the ordered paper list and
// the parallel embedding list as one serialized blob. Constructors in
// implementation packages return the SnapshotStore interface to keep
// callers decoupled from the backend (the badger subpackage is the only
// backend today).
package storage
