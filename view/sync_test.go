package view

import (
	"strings"
	"testing"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agc2020/consulta/catalog"
)

const twoGroupPage = `<body>
<section class="orgao-section"><h2>Legislação Federal</h2>
  <div class="ato-group"><h3>Leis</h3>
    <article class="ato-line"><h4 class="ato-title"><a href="a.html">Lei nº 1/2000</a></h4></article>
    <article class="ato-line"><h4 class="ato-title"><a href="b.html">Lei nº 2/2001</a></h4></article>
  </div>
  <div class="ato-group"><h3>Decretos</h3>
    <article class="ato-line"><h4 class="ato-title"><a href="c.html">Decreto nº 3/2002</a></h4></article>
  </div>
</section>
<section class="orgao-section"><h2>TJPR</h2>
  <div class="ato-group"><h3>Resoluções</h3>
    <article class="ato-line"><h4 class="ato-title"><a href="d.html">Resolução 4 (2003)</a></h4></article>
  </div>
</section>
</body>`

func parsePage(t *testing.T) *catalog.Page {
	t.Helper()
	page, _, err := catalog.Extract(strings.NewReader(twoGroupPage))
	require.NoError(t, err)
	require.Equal(t, 4, page.Total())
	return page
}

func TestApplyTogglesLines(t *testing.T) {
	page := parsePage(t)
	sync := NewSynchronizer(page)

	summary := sync.Apply(roaring.BitmapOf(0, 3))

	assert.False(t, page.Lines[0].Hidden)
	assert.True(t, page.Lines[1].Hidden)
	assert.True(t, page.Lines[2].Hidden)
	assert.False(t, page.Lines[3].Hidden)
	assert.Equal(t, 2, summary.Visible)
	assert.Equal(t, 4, summary.Total)
	assert.False(t, summary.AllShown)
}

func TestApplyCascadesToGroups(t *testing.T) {
	page := parsePage(t)
	sync := NewSynchronizer(page)

	// Only the decreto (line 2) stays: the leis sub-group folds away, its
	// parent group stays visible through the other sub-group, and the whole
	// TJPR section hides.
	sync.Apply(roaring.BitmapOf(2))

	federal := page.Groups[0]
	assert.True(t, federal.SubGroups[0].Hidden)
	assert.False(t, federal.SubGroups[1].Hidden)
	assert.False(t, federal.Hidden)

	tjpr := page.Groups[1]
	assert.True(t, tjpr.SubGroups[0].Hidden)
	assert.True(t, tjpr.Hidden)
}

func TestApplyEmptySet(t *testing.T) {
	page := parsePage(t)
	sync := NewSynchronizer(page)

	summary := sync.Apply(roaring.New())

	assert.Equal(t, 0, summary.Visible)
	for _, group := range page.Groups {
		assert.True(t, group.Hidden)
	}
	assert.Equal(t, "Exibindo 0 de 4 atos", summary.Message)
	assert.Equal(t, CountClassPartial, summary.StyleClass)
}

func TestApplyAllShownMessage(t *testing.T) {
	page := parsePage(t)
	sync := NewSynchronizer(page)

	summary := sync.Apply(roaring.BitmapOf(0, 1, 2, 3))

	assert.True(t, summary.AllShown)
	assert.Equal(t, "Exibindo todos os 4 atos", summary.Message)
	assert.Equal(t, CountClassAll, summary.StyleClass)
	for _, group := range page.Groups {
		assert.False(t, group.Hidden)
	}
}

func TestApplyIsReversible(t *testing.T) {
	page := parsePage(t)
	sync := NewSynchronizer(page)

	sync.Apply(roaring.New())
	summary := sync.Apply(roaring.BitmapOf(0, 1, 2, 3))

	assert.True(t, summary.AllShown, "hidden state must fully recover")
	assert.Equal(t, summary, sync.Summary())
}
