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


// Package storage provides the storage abstraction for the deep-search
// index: act documents, inverted-index postings and index statistics.
//
// Repository interfaces decouple the index from its backing store. The
// badger subpackage implements them on BadgerDB; tests use its in-memory
// mode through NewMemoryRepositories.
//
// Public constructors return interfaces so consumers never couple to
// BadgerDB specifics. All implementations must be safe for concurrent use:
// the ingest pipeline writes from a worker pool while status queries may
// read concurrently.
package storage
