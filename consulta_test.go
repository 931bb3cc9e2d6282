package consulta

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agc2020/consulta/deepsearch"
)

const actPage = `<!DOCTYPE html>
<html><head><title>Lei 13.709/2018</title>
<meta data-pagefind-filter="tipo[content]" content="Lei">
<meta data-pagefind-filter="ano[content]" content="2018">
</head><body><main>
<h1>Lei Geral de Proteção de Dados Pessoais</h1>
<p>Dispõe sobre o tratamento de dados pessoais por pessoa natural ou jurídica.</p>
</main></body></html>`

const catalogPage = `<!DOCTYPE html>
<html><body>
<section class="orgao-section">
  <h2>Legislação Federal</h2>
  <div class="ato-group">
    <h3>Leis</h3>
    <article class="ato-line">
      <h4 class="ato-title"><a href="lei-13709-2018.html">Lei nº 13.709/2018</a></h4>
      <p class="ato-ementa">Lei Geral de Proteção de Dados Pessoais.</p>
    </article>
  </div>
</section>
</body></html>`

func TestStoreEndToEnd(t *testing.T) {
	dir := t.TempDir()
	pages := filepath.Join(dir, "pages")
	require.NoError(t, os.Mkdir(pages, 0o755))
	require.NoError(t, os.WriteFile(
		filepath.Join(pages, "lei-13709-2018.html"), []byte(actPage), 0o644))

	store, err := OpenStore(filepath.Join(dir, "db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	ctx := context.Background()

	pipeline, err := store.NewPipeline()
	require.NoError(t, err)
	t.Cleanup(pipeline.Release)

	indexed, err := pipeline.IngestDirectory(ctx, pages)
	require.NoError(t, err)
	require.Equal(t, 1, indexed)
	_, err = pipeline.Finalize(ctx)
	require.NoError(t, err)

	index, err := store.NewDeepIndex()
	require.NoError(t, err)
	require.NoError(t, index.Init(ctx))

	resp, err := index.Search(ctx, "dados pessoais", deepsearch.Filters{"tipo": {"Lei"}}, 10)
	require.NoError(t, err)
	require.Equal(t, 1, resp.Total)
	assert.Equal(t, "lei-13709-2018", resp.Hits[0].Document.Slug)
}

func TestNewSession(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.html")
	require.NoError(t, os.WriteFile(path, []byte(catalogPage), 0o644))

	sess, err := NewSession(path)
	require.NoError(t, err)
	t.Cleanup(func() { sess.Close() })

	summary := sess.Summary()
	assert.Equal(t, 1, summary.Total)
	assert.True(t, summary.AllShown)
}
