package search

import (
	"fmt"
	"sort"
	"strings"

	"github.com/agc2020/consulta/core"
)

// Categories lists the filter categories in display order.
var Categories = []string{core.CategoryOrgao, core.CategoryTipo, core.CategoryAno}

// FilterState is the engine's view of the active constraints. Both the
// single-value and the multi-value variants implement it. The two are
// alternate designs, not layers: a session runs exactly one of them.
type FilterState interface {
	// QueryText returns the free-text query. Whitespace-only is empty.
	QueryText() string
	// MatchesRecord reports whether the record satisfies every active
	// categorical constraint.
	MatchesRecord(ato *core.Ato) bool
}

// CategoryValue returns the record field compared by the given category.
func CategoryValue(ato *core.Ato, category string) (string, error) {
	switch category {
	case core.CategoryOrgao:
		return ato.IssuingBody, nil
	case core.CategoryTipo:
		return string(ato.Type), nil
	case core.CategoryAno:
		return ato.Year, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
}

// Filters is the single-value variant: each category holds at most one
// active value, and selecting a new value replaces the old one.
type Filters struct {
	Query  string
	values map[string]string
}

// NewFilters creates an empty single-value filter state.
func NewFilters() *Filters {
	return &Filters{values: make(map[string]string)}
}

// Set selects the single active value for a category, replacing any previous
// one. The empty string and the "todos" sentinel clear the category instead
// of being stored as literal values.
func (f *Filters) Set(category, value string) error {
	if _, err := CategoryValue(&core.Ato{}, category); err != nil {
		return err
	}
	if value == "" || value == core.FilterAll {
		delete(f.values, category)
		return nil
	}
	f.values[category] = value
	return nil
}

// Get returns the active value for a category, or "" when unconstrained.
func (f *Filters) Get(category string) string {
	return f.values[category]
}

// Reset clears the query and every categorical constraint.
func (f *Filters) Reset() {
	f.Query = ""
	f.values = make(map[string]string)
}

// QueryText implements FilterState.
func (f *Filters) QueryText() string {
	return strings.TrimSpace(f.Query)
}

// MatchesRecord implements FilterState with exact string equality per
// constrained category, AND across categories.
func (f *Filters) MatchesRecord(ato *core.Ato) bool {
	for category, want := range f.values {
		got, err := CategoryValue(ato, category)
		if err != nil || got != want {
			return false
		}
	}
	return true
}

// MultiFilters is the multi-value variant: each category holds a set of
// values with OR semantics inside the category. An empty set means the
// category imposes no constraint. Sets never contain the "todos" sentinel.
type MultiFilters struct {
	Query  string
	values map[string]map[string]struct{}
}

// NewMultiFilters creates an empty multi-value filter state.
func NewMultiFilters() *MultiFilters {
	return &MultiFilters{values: make(map[string]map[string]struct{})}
}

// Toggle adds the value to the category's set if absent, or removes it if
// present, and reports whether the value is active afterwards. The sentinel
// is never a set member.
func (m *MultiFilters) Toggle(category, value string) (bool, error) {
	if _, err := CategoryValue(&core.Ato{}, category); err != nil {
		return false, err
	}
	if value == "" || value == core.FilterAll {
		return false, fmt.Errorf("%w: %q", ErrSentinelValue, value)
	}

	set := m.values[category]
	if set == nil {
		set = make(map[string]struct{})
		m.values[category] = set
	}
	if _, ok := set[value]; ok {
		delete(set, value)
		if len(set) == 0 {
			delete(m.values, category)
		}
		return false, nil
	}
	set[value] = struct{}{}
	return true, nil
}

// Remove drops a value from the category's set, if present. Used by badge
// dismissal; removing an inactive value is a no-op.
func (m *MultiFilters) Remove(category, value string) {
	set := m.values[category]
	if set == nil {
		return
	}
	delete(set, value)
	if len(set) == 0 {
		delete(m.values, category)
	}
}

// Active returns the category's selected values in sorted order.
func (m *MultiFilters) Active(category string) []string {
	set := m.values[category]
	if len(set) == 0 {
		return nil
	}
	values := make([]string, 0, len(set))
	for v := range set {
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}

// IsEmpty reports whether no category holds any value.
func (m *MultiFilters) IsEmpty() bool {
	return len(m.values) == 0
}

// Reset clears the query and every constraint set.
func (m *MultiFilters) Reset() {
	m.Query = ""
	m.values = make(map[string]map[string]struct{})
}

// DeepFilters translates the constraint sets to the deep-search filter
// convention: category name to list of values, OR within a category.
func (m *MultiFilters) DeepFilters() map[string][]string {
	if len(m.values) == 0 {
		return nil
	}
	filters := make(map[string][]string, len(m.values))
	for category := range m.values {
		filters[category] = m.Active(category)
	}
	return filters
}

// QueryText implements FilterState.
func (m *MultiFilters) QueryText() string {
	return strings.TrimSpace(m.Query)
}

// MatchesRecord implements FilterState with set membership per constrained
// category (OR within), AND across categories.
func (m *MultiFilters) MatchesRecord(ato *core.Ato) bool {
	for category, set := range m.values {
		got, err := CategoryValue(ato, category)
		if err != nil {
			return false
		}
		if _, ok := set[got]; !ok {
			return false
		}
	}
	return true
}
