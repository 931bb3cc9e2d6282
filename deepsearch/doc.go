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


// Package deepsearch bridges the catalog session to the separately built
// full-text index over the act pages.
//
// The Index interface is the external collaborator's contract: one
// initialization call, then query calls taking a free-text string plus an
// optional filter object (category name to values, OR within a category,
// AND across categories). Category names and values must exactly match the
// metadata embedded in the indexed pages.
//
// The Bridge mirrors the session's filter state into that contract:
// debounced, so rapid keystrokes coalesce into one query, and guarded by a
// request generation counter, so a response that returns after a newer query
// started is discarded rather than rendered. Index failures degrade to an
// "unavailable" notice on the sink; they never propagate.
//
// StoreIndex implements the contract over the storage repositories with BM25
// scoring, which is what the ingest pipeline builds.
package deepsearch
