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


// Package search answers ranked queries over the corpus.
//
// The Engine fuses three relevance signals (TF-IDF cosine, BM25, dense
// cosine) into one ranking with deterministic tie-breaks, paginates it,
// and caches materialized result prefixes per (query, page size) so
// repeated page requests avoid recomputation. It also answers
// similar-paper lookups against the dense signal alone. All operations
// are read-only with respect to the corpus.
package search
