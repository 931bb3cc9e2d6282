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


// Package view keeps the catalog page's visibility state in sync with the
// query engine's output.
package view

import (
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/agc2020/consulta/catalog"
)

// Style classes attached to the result-count message.
const (
	CountClassAll     = "count-all"
	CountClassPartial = "count-partial"
)

// Summary describes the page state after a synchronization pass.
type Summary struct {
	Visible    int
	Total      int
	AllShown   bool
	Message    string
	StyleClass string
}

// Synchronizer is the only component allowed to toggle visibility on a page
// tree. Each record line is Visible or Hidden, nothing else; lines start
// Visible and change state only through Apply.
type Synchronizer struct {
	page *catalog.Page
}

// NewSynchronizer creates a synchronizer bound to a page tree.
func NewSynchronizer(page *catalog.Page) *Synchronizer {
	return &Synchronizer{page: page}
}

// Apply marks every line whose stable index is in visible as shown and hides
// the rest, then cascades: a sub-group hides when it holds zero visible
// lines, and an outer group hides when none of its descendant lines is
// visible. Outer-group visibility is recomputed from the lines directly, not
// from sub-group state, so the cascade order cannot change the outcome.
func (s *Synchronizer) Apply(visible *roaring.Bitmap) Summary {
	count := 0
	for _, line := range s.page.Lines {
		line.Hidden = !visible.Contains(uint32(line.StableIndex))
		if !line.Hidden {
			count++
		}
	}

	for _, group := range s.page.Groups {
		for _, sub := range group.SubGroups {
			sub.Hidden = !anyVisible(sub.Lines)
		}
		group.Hidden = !anyVisible(group.Lines)
	}

	return s.summarize(count)
}

// Summary recomputes the current result-count summary without touching
// visibility.
func (s *Synchronizer) Summary() Summary {
	count := 0
	for _, line := range s.page.Lines {
		if !line.Hidden {
			count++
		}
	}
	return s.summarize(count)
}

func (s *Synchronizer) summarize(count int) Summary {
	total := s.page.Total()
	summary := Summary{
		Visible:  count,
		Total:    total,
		AllShown: count == total,
	}
	if summary.AllShown {
		summary.Message = fmt.Sprintf("Exibindo todos os %d atos", total)
		summary.StyleClass = CountClassAll
	} else {
		summary.Message = fmt.Sprintf("Exibindo %d de %d atos", count, total)
		summary.StyleClass = CountClassPartial
	}
	return summary
}

func anyVisible(lines []*catalog.Line) bool {
	for _, line := range lines {
		if !line.Hidden {
			return true
		}
	}
	return false
}
