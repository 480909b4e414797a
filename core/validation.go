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

import (
	"fmt"
	"strconv"
	"strings"
)

// doiResolverPrefix is prepended to bare DOIs to form the canonical URL.
const doiResolverPrefix = "https://doi.org/"

// ValidatePaper validates a Paper according to domain rules.
//
// Validation rules:
//   - Title must not be empty
//   - Doi must be normalized (NormalizeDOI is idempotent, so a normalized
//     value passes unchanged)
//
// NOT validated:
//   - Id (assigned by the corpus store at append time)
//   - Abstract and Keywords (may be empty; they are enriched upstream)
func ValidatePaper(paper *Paper) error {
	if paper == nil {
		return fmt.Errorf("%w: paper is nil", ErrInvalidPaper)
	}
	if strings.TrimSpace(paper.Title) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidPaper, ErrEmptyTitle)
	}
	if paper.Doi != NormalizeDOI(paper.Doi) {
		return fmt.Errorf("%w: doi %q is not in canonical form", ErrInvalidPaper, paper.Doi)
	}
	return nil
}

// NormalizeDOI maps a raw DOI value to its canonical form. Absent values
// ("", "N/A", "NAN", case-insensitive) become DoiNotAvailable; values
// already carrying an http(s) prefix are kept; anything else is rewritten
// to the doi.org resolver URL.
func NormalizeDOI(raw string) string {
	doi := strings.TrimSpace(raw)
	switch strings.ToUpper(doi) {
	case "", "N/A", "NAN":
		return DoiNotAvailable
	}
	if strings.HasPrefix(strings.ToLower(doi), "http") {
		return doi
	}
	return doiResolverPrefix + doi
}

// ParseYear parses a publication year from the loosely typed values the
// graph store returns: integers, fractional floats ("2019.0"), or strings
// of either.
func ParseYear(value any) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		return int(v), nil
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 0, fmt.Errorf("%w: empty value", ErrInvalidYear)
		}
		if year, err := strconv.Atoi(s); err == nil {
			return year, nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidYear, v)
		}
		return int(f), nil
	case nil:
		return 0, fmt.Errorf("%w: missing value", ErrInvalidYear)
	default:
		return 0, fmt.Errorf("%w: unsupported type %T", ErrInvalidYear, value)
	}
}
