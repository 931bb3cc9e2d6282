// Copyright 2025 the consulta authors
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

import "fmt"

// ValidateAto validates an Ato according to domain rules.
//
// Validation rules:
//   - StableIndex must not be negative
//   - Title must not be empty
//   - Year must be empty or a four-digit string
//
// NOT validated (extraction may legitimately leave them empty):
//   - Summary, IssuingBody, Slug, SourceURL
//   - Type ("Outro" covers unclassifiable titles)
func ValidateAto(ato *Ato) error {
	if ato == nil {
		return fmt.Errorf("%w: ato is nil", ErrInvalidAto)
	}

	if ato.StableIndex < 0 {
		return fmt.Errorf("%w: %w", ErrInvalidAto, ErrNegativeStableIndex)
	}

	if ato.Title == "" {
		return fmt.Errorf("%w: %w", ErrInvalidAto, ErrEmptyTitle)
	}

	if !IsValidYear(ato.Year) {
		return fmt.Errorf("%w: %w", ErrInvalidAto, ErrInvalidYear)
	}

	return nil
}

// ValidateDocument validates a deep-search Document according to domain rules.
//
// Validation rules:
//   - Slug must not be empty
//   - Title must not be empty
//
// NOT validated:
//   - Id (0 means "derive from slug at insert time")
//   - Categories (pages without filter metadata are still searchable)
func ValidateDocument(doc *Document) error {
	if doc == nil {
		return fmt.Errorf("%w: document is nil", ErrInvalidDocument)
	}

	if doc.Slug == "" {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, ErrEmptySlug)
	}

	if doc.Title == "" {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, ErrEmptyTitle)
	}

	return nil
}

// IsValidYear reports whether year is empty or a four-digit string.
func IsValidYear(year string) bool {
	if year == "" {
		return true
	}
	if len(year) != 4 {
		return false
	}
	for _, r := range year {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
