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


// Package catalog extracts structured act records from the rendered catalog
// page.
//
// Extract parses the catalog HTML once per load and produces:
//   - a Page tree (outer groups, sub-groups, act lines) used for visibility
//     synchronization, and
//   - one core.Ato per act line, in document order, with derived fields
//     (type, year, canonical issuing body).
//
// Extraction is deliberately forgiving: a line missing its title, summary or
// group heading yields empty fields, never an error, and one malformed entry
// never fails the batch.
package catalog
