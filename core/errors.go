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

import "errors"

// Domain validation errors
var (
	// ErrInvalidAto indicates an Ato failed validation.
	ErrInvalidAto = errors.New("invalid ato")

	// ErrInvalidDocument indicates a Document failed validation.
	ErrInvalidDocument = errors.New("invalid document")

	// ErrEmptyTitle indicates the Title field is empty.
	ErrEmptyTitle = errors.New("title cannot be empty")

	// ErrEmptySlug indicates the Slug field is empty.
	ErrEmptySlug = errors.New("slug cannot be empty")

	// ErrNegativeStableIndex indicates a negative StableIndex value.
	ErrNegativeStableIndex = errors.New("stable index cannot be negative")

	// ErrInvalidYear indicates a Year value that is neither empty nor a
	// four-digit string.
	ErrInvalidYear = errors.New("year must be empty or four digits")
)
