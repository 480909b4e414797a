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


// Package corpus owns the canonical in-memory paper list and its parallel
// embedding list.
//
// The store is the only component permitted to append records; the sync
// engine is its single logical writer while query and similarity engines
// are concurrent readers. Appends are atomic with respect to readers: a
// reader never observes a paper without its embedding or a half-applied
// batch. A monotonically increasing generation counter tells derived
// indices when they are stale.
package corpus
