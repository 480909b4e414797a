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


// Package index implements the three retrieval signals over the corpus.
//
// The two lexical indices (TF-IDF cosine and BM25) are disposable views
// rebuilt wholesale from the corpus and are immutable after construction,
// so they are safe for concurrent reads. The dense signal needs no index
// structure at all: it is an exact cosine scan over the corpus embedding
// list, which grows append-only.
package index
