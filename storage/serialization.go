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


package storage

import (
	"fmt"

	"github.com/agc2020/consulta/core"
)

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, core.IDMUS.Size(id))
	core.IDMUS.Marshal(id, buf)
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	id, _, err := core.IDMUS.Unmarshal(data)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return id, nil
}

// MarshalDocument serializes a Document to bytes.
func MarshalDocument(doc *core.Document) []byte {
	buf := make([]byte, core.DocumentMUS.Size(*doc))
	core.DocumentMUS.Marshal(*doc, buf)
	return buf
}

// UnmarshalDocument deserializes a Document from bytes.
func UnmarshalDocument(data []byte) (*core.Document, error) {
	doc, _, err := core.DocumentMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return &doc, nil
}

// MarshalPostings serializes a posting list to bytes.
func MarshalPostings(postings []core.Posting) []byte {
	buf := make([]byte, core.PostingsMUS.Size(postings))
	core.PostingsMUS.Marshal(postings, buf)
	return buf
}

// UnmarshalPostings deserializes a posting list from bytes.
func UnmarshalPostings(data []byte) ([]core.Posting, error) {
	postings, _, err := core.PostingsMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return postings, nil
}

// MarshalStats serializes index statistics to bytes.
func MarshalStats(stats core.IndexStats) []byte {
	buf := make([]byte, core.IndexStatsMUS.Size(stats))
	core.IndexStatsMUS.Marshal(stats, buf)
	return buf
}

// UnmarshalStats deserializes index statistics from bytes.
func UnmarshalStats(data []byte) (core.IndexStats, error) {
	stats, _, err := core.IndexStatsMUS.Unmarshal(data)
	if err != nil {
		return core.IndexStats{}, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return stats, nil
}
