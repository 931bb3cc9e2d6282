package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agc2020/consulta/core"
)

func testRecords() []core.Ato {
	return []core.Ato{
		{
			StableIndex: 0,
			Title:       "Lei nº 13.709/2018",
			Summary:     "Lei Geral de Proteção de Dados Pessoais (LGPD).",
			IssuingBody: core.BodyFederal,
			Type:        core.ActTypeLei,
			Year:        "2018",
		},
		{
			StableIndex: 1,
			Title:       "Instrução Normativa nº 71/2023",
			Summary:     "Regulamenta o teletrabalho no âmbito do Tribunal.",
			IssuingBody: core.BodyTJPR,
			Type:        core.ActTypeInstrucaoNormativa,
			Year:        "2023",
		},
		{
			StableIndex: 2,
			Title:       "Decreto nº 10.046/2019",
			Summary:     "Governança no compartilhamento de dados.",
			IssuingBody: core.BodyFederal,
			Type:        core.ActTypeDecreto,
			Year:        "2019",
		},
		{
			StableIndex: 3,
			Title:       "Resolução 12 (2019)",
			Summary:     "Organização das unidades judiciárias.",
			IssuingBody: core.BodyTJPR,
			Type:        core.ActTypeResolucao,
			Year:        "2019",
		},
		{
			StableIndex: 4,
			Title:       "Lei Complementar nº 109/2001",
			Summary:     "Regime de previdência complementar.",
			IssuingBody: core.BodyFederal,
			Type:        core.ActTypeLeiComplementar,
			Year:        "2001",
		},
	}
}

func newTestIndex(t *testing.T, opts ...IndexOption) *Index {
	t.Helper()
	idx, err := NewIndex(testRecords(), opts...)
	require.NoError(t, err)
	return idx
}

func matchedIndexes(matches []Match) []int {
	indexes := make([]int, len(matches))
	for i, m := range matches {
		indexes[i] = m.StableIndex
	}
	return indexes
}

func TestNewIndex(t *testing.T) {
	t.Run("empty record set", func(t *testing.T) {
		_, err := NewIndex(nil)
		assert.ErrorIs(t, err, ErrNoRecords)
	})

	t.Run("valid", func(t *testing.T) {
		idx := newTestIndex(t)
		assert.Equal(t, 5, idx.Total())
	})
}

func TestIndexSearchExactPhrase(t *testing.T) {
	idx := newTestIndex(t)

	matches := idx.Search("instrução normativa")
	require.NotEmpty(t, matches)
	assert.Equal(t, 1, matches[0].StableIndex)
}

func TestIndexSearchTypoStillMatches(t *testing.T) {
	idx := newTestIndex(t)

	// One dropped character and no diacritics: still a match for the
	// Instrução Normativa record, and unrelated titles stay out.
	matches := idx.Search("instrucao normtiva")
	require.NotEmpty(t, matches)
	assert.Equal(t, 1, matches[0].StableIndex)
	assert.NotContains(t, matchedIndexes(matches), 0)
	assert.NotContains(t, matchedIndexes(matches), 3)
}

func TestIndexSearchCaseAndAccentInsensitive(t *testing.T) {
	idx := newTestIndex(t)

	upper := idx.Search("RESOLUÇÃO")
	lower := idx.Search("resolucao")
	require.NotEmpty(t, upper)
	assert.Equal(t, matchedIndexes(upper), matchedIndexes(lower))
	assert.Equal(t, 3, upper[0].StableIndex)
}

func TestIndexSearchMatchesSummaryField(t *testing.T) {
	idx := newTestIndex(t)

	matches := idx.Search("teletrabalho")
	require.NotEmpty(t, matches)
	assert.Equal(t, 1, matches[0].StableIndex)
}

func TestIndexSearchTitleOutweighsSummary(t *testing.T) {
	idx := newTestIndex(t)

	// "lei complementar" appears in record 4's title and in its summary;
	// record 0 only carries "Lei" in the title. The title match must rank
	// record 4 first.
	matches := idx.Search("lei complementar")
	require.NotEmpty(t, matches)
	assert.Equal(t, 4, matches[0].StableIndex)
}

func TestIndexSearchMinMatchLength(t *testing.T) {
	idx := newTestIndex(t, WithMinMatchLength(3))

	assert.Empty(t, idx.Search("le"))
	assert.NotEmpty(t, idx.Search("lei"))
}

func TestIndexSearchWhitespaceQuery(t *testing.T) {
	idx := newTestIndex(t)

	assert.Empty(t, idx.Search("   "))
	assert.Empty(t, idx.Search(""))
}
