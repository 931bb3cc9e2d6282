package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agc2020/consulta/core"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	records := testRecords()
	idx, err := NewIndex(records)
	require.NoError(t, err)
	engine, err := NewEngine(idx, records)
	require.NoError(t, err)
	return engine
}

func TestNewEngine(t *testing.T) {
	records := testRecords()
	idx, err := NewIndex(records)
	require.NoError(t, err)

	t.Run("nil index", func(t *testing.T) {
		_, err := NewEngine(nil, records)
		assert.ErrorIs(t, err, ErrIndexRequired)
	})

	t.Run("record count mismatch", func(t *testing.T) {
		_, err := NewEngine(idx, records[:2])
		assert.ErrorIs(t, err, ErrRecordCountMismatch)
	})

	t.Run("valid", func(t *testing.T) {
		engine, err := NewEngine(idx, records)
		require.NoError(t, err)
		assert.NotNil(t, engine)
	})
}

func TestComputeVisibleNoConstraints(t *testing.T) {
	engine := newTestEngine(t)

	visible := engine.ComputeVisible(NewFilters())
	assert.Equal(t, uint64(5), visible.GetCardinality(),
		"empty query and no constraints must return the full record set")

	visible = engine.ComputeVisible(NewMultiFilters())
	assert.Equal(t, uint64(5), visible.GetCardinality())
}

func TestComputeVisibleWhitespaceQueryIsEmpty(t *testing.T) {
	engine := newTestEngine(t)

	filters := NewFilters()
	filters.Query = "   \t"
	visible := engine.ComputeVisible(filters)
	assert.Equal(t, uint64(5), visible.GetCardinality())
}

func TestComputeVisibleSingleValueFilters(t *testing.T) {
	engine := newTestEngine(t)

	filters := NewFilters()
	require.NoError(t, filters.Set(core.CategoryOrgao, core.BodyFederal))

	visible := engine.ComputeVisible(filters)
	assert.ElementsMatch(t, []uint32{0, 2, 4}, visible.ToArray())

	// Selecting a new value replaces the old one.
	require.NoError(t, filters.Set(core.CategoryOrgao, core.BodyTJPR))
	visible = engine.ComputeVisible(filters)
	assert.ElementsMatch(t, []uint32{1, 3}, visible.ToArray())

	// Categories compose with AND.
	require.NoError(t, filters.Set(core.CategoryAno, "2019"))
	visible = engine.ComputeVisible(filters)
	assert.ElementsMatch(t, []uint32{3}, visible.ToArray())
}

func TestComputeVisibleSentinelMeansNoConstraint(t *testing.T) {
	engine := newTestEngine(t)

	filters := NewFilters()
	require.NoError(t, filters.Set(core.CategoryTipo, "Lei"))
	require.NoError(t, filters.Set(core.CategoryTipo, core.FilterAll))

	visible := engine.ComputeVisible(filters)
	assert.Equal(t, uint64(5), visible.GetCardinality(),
		"the todos sentinel must never match literally")
}

func TestComputeVisibleMultiValueOr(t *testing.T) {
	engine := newTestEngine(t)

	filters := NewMultiFilters()
	_, err := filters.Toggle(core.CategoryTipo, "Lei")
	require.NoError(t, err)
	_, err = filters.Toggle(core.CategoryTipo, "Decreto")
	require.NoError(t, err)

	visible := engine.ComputeVisible(filters)
	assert.ElementsMatch(t, []uint32{0, 2}, visible.ToArray(),
		"exactly the records whose type is Lei or Decreto")
}

func TestComputeVisibleMultiValueAcrossCategories(t *testing.T) {
	engine := newTestEngine(t)

	filters := NewMultiFilters()
	_, err := filters.Toggle(core.CategoryOrgao, core.BodyTJPR)
	require.NoError(t, err)
	_, err = filters.Toggle(core.CategoryAno, "2019")
	require.NoError(t, err)
	_, err = filters.Toggle(core.CategoryAno, "2023")
	require.NoError(t, err)

	visible := engine.ComputeVisible(filters)
	assert.ElementsMatch(t, []uint32{1, 3}, visible.ToArray())
}

func TestComputeVisibleQueryNarrowsBeforeFilters(t *testing.T) {
	engine := newTestEngine(t)

	filters := NewMultiFilters()
	filters.Query = "lei"
	_, err := filters.Toggle(core.CategoryOrgao, core.BodyTJPR)
	require.NoError(t, err)

	visible := engine.ComputeVisible(filters)
	for _, i := range visible.ToArray() {
		assert.Equal(t, core.BodyTJPR, testRecords()[i].IssuingBody)
	}
}

func TestComputeVisibleEmptyResult(t *testing.T) {
	engine := newTestEngine(t)

	filters := NewFilters()
	require.NoError(t, filters.Set(core.CategoryAno, "1900"))

	visible := engine.ComputeVisible(filters)
	assert.True(t, visible.IsEmpty(), "zero matches is a valid result")
}

func TestRankedRelevanceOrder(t *testing.T) {
	engine := newTestEngine(t)

	filters := NewFilters()
	filters.Query = "lei complementar"
	ranked := engine.Ranked(filters)
	require.NotEmpty(t, ranked)
	assert.Equal(t, 4, ranked[0].StableIndex)
}
