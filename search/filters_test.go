package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agc2020/consulta/core"
)

func TestFiltersSet(t *testing.T) {
	f := NewFilters()

	require.NoError(t, f.Set(core.CategoryTipo, "Lei"))
	assert.Equal(t, "Lei", f.Get(core.CategoryTipo))

	// Replacement, not accumulation.
	require.NoError(t, f.Set(core.CategoryTipo, "Decreto"))
	assert.Equal(t, "Decreto", f.Get(core.CategoryTipo))

	// Sentinel and empty clear the category.
	require.NoError(t, f.Set(core.CategoryTipo, core.FilterAll))
	assert.Empty(t, f.Get(core.CategoryTipo))
	require.NoError(t, f.Set(core.CategoryAno, ""))
	assert.Empty(t, f.Get(core.CategoryAno))

	assert.ErrorIs(t, f.Set("nope", "x"), ErrUnknownCategory)
}

func TestFiltersReset(t *testing.T) {
	f := NewFilters()
	f.Query = "lei"
	require.NoError(t, f.Set(core.CategoryAno, "2019"))

	f.Reset()
	assert.Empty(t, f.QueryText())
	assert.Empty(t, f.Get(core.CategoryAno))
}

func TestMultiFiltersToggleIsInvolution(t *testing.T) {
	m := NewMultiFilters()

	active, err := m.Toggle(core.CategoryTipo, "Lei")
	require.NoError(t, err)
	assert.True(t, active)
	assert.Equal(t, []string{"Lei"}, m.Active(core.CategoryTipo))

	// Toggling the same value again returns the set to its prior state.
	active, err = m.Toggle(core.CategoryTipo, "Lei")
	require.NoError(t, err)
	assert.False(t, active)
	assert.Nil(t, m.Active(core.CategoryTipo))
	assert.True(t, m.IsEmpty())
}

func TestMultiFiltersRejectsSentinel(t *testing.T) {
	m := NewMultiFilters()

	_, err := m.Toggle(core.CategoryTipo, core.FilterAll)
	assert.ErrorIs(t, err, ErrSentinelValue)
	_, err = m.Toggle(core.CategoryTipo, "")
	assert.ErrorIs(t, err, ErrSentinelValue)
	_, err = m.Toggle("nope", "Lei")
	assert.ErrorIs(t, err, ErrUnknownCategory)
}

func TestMultiFiltersRemove(t *testing.T) {
	m := NewMultiFilters()

	_, err := m.Toggle(core.CategoryAno, "2019")
	require.NoError(t, err)
	_, err = m.Toggle(core.CategoryAno, "2023")
	require.NoError(t, err)

	m.Remove(core.CategoryAno, "2019")
	assert.Equal(t, []string{"2023"}, m.Active(core.CategoryAno))

	// Removing an inactive value is a no-op.
	m.Remove(core.CategoryAno, "1999")
	m.Remove(core.CategoryTipo, "Lei")
	assert.Equal(t, []string{"2023"}, m.Active(core.CategoryAno))
}

func TestMultiFiltersDeepFilters(t *testing.T) {
	m := NewMultiFilters()
	assert.Nil(t, m.DeepFilters())

	_, err := m.Toggle(core.CategoryTipo, "Lei")
	require.NoError(t, err)
	_, err = m.Toggle(core.CategoryTipo, "Decreto")
	require.NoError(t, err)
	_, err = m.Toggle(core.CategoryAno, "2019")
	require.NoError(t, err)

	assert.Equal(t, map[string][]string{
		core.CategoryTipo: {"Decreto", "Lei"},
		core.CategoryAno:  {"2019"},
	}, m.DeepFilters())
}

func TestMatchesRecord(t *testing.T) {
	ato := &core.Ato{
		IssuingBody: core.BodyTJPR,
		Type:        core.ActTypeResolucao,
		Year:        "2019",
	}

	t.Run("single value", func(t *testing.T) {
		f := NewFilters()
		require.NoError(t, f.Set(core.CategoryOrgao, core.BodyTJPR))
		assert.True(t, f.MatchesRecord(ato))

		require.NoError(t, f.Set(core.CategoryTipo, "Lei"))
		assert.False(t, f.MatchesRecord(ato))
	})

	t.Run("multi value", func(t *testing.T) {
		m := NewMultiFilters()
		_, err := m.Toggle(core.CategoryTipo, "Resolução")
		require.NoError(t, err)
		_, err = m.Toggle(core.CategoryTipo, "Lei")
		require.NoError(t, err)
		assert.True(t, m.MatchesRecord(ato), "OR within a category")

		_, err = m.Toggle(core.CategoryAno, "1999")
		require.NoError(t, err)
		assert.False(t, m.MatchesRecord(ato), "AND across categories")
	})
}
