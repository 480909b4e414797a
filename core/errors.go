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


package core

import "errors"

// Domain errors
var (
	// ErrInvalidPaper indicates a Paper failed validation.
	ErrInvalidPaper = errors.New("invalid paper")

	// ErrEmptyTitle indicates the Title field is empty.
	ErrEmptyTitle = errors.New("title cannot be empty")

	// ErrInvalidYear indicates a publication year could not be parsed.
	ErrInvalidYear = errors.New("invalid publication year")

	// ErrInvalidInput indicates malformed caller input such as bad
	// pagination parameters or a non-integer id.
	ErrInvalidInput = errors.New("invalid input")

	// ErrPaperNotFound indicates the requested paper id is not in the corpus.
	ErrPaperNotFound = errors.New("paper not found")

	// ErrUpstreamUnavailable indicates the authoritative graph store could
	// not be queried. The corpus and indices remain at last-known-good state.
	ErrUpstreamUnavailable = errors.New("upstream source unavailable")
)
