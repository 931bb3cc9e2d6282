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


// Package search implements the in-memory fuzzy index and the query engine
// that decides which catalog records stay visible.
//
// The Index is a weighted, threshold-based fuzzy structure over four record
// fields (title weighted highest, then summary, then issuing body and type).
// It is built once per catalog load from the complete record set and never
// mutated; reloading the catalog means building a new Index.
//
// The Engine composes free-text relevance with categorical constraints:
// the fuzzy candidates (or the full record set when the query is empty)
// are intersected with the active filter state. Two filter state variants
// exist, single-value and multi-value with OR semantics within a category,
// and both compose categories with logical AND.
package search
