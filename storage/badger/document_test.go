package badger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agc2020/consulta/core"
	"github.com/agc2020/consulta/storage"
)

func newMemoryRepos(t *testing.T) (storage.DocumentRepository, storage.PostingRepository) {
	t.Helper()
	docRepo, postingRepo, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() {
		postingRepo.Close()
		docRepo.Close()
		backend.Close()
	})
	return docRepo, postingRepo
}

func TestAddDocumentsAssignsContentID(t *testing.T) {
	docRepo, _ := newMemoryRepos(t)
	ctx := context.Background()

	docs, err := docRepo.AddDocuments(ctx, &core.Document{
		Slug:  "lei-13709-2018",
		Title: "Lei nº 13.709/2018",
	})
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, core.IDFromContent("lei-13709-2018"), docs[0].Id)
}

func TestGetDocumentRoundTrip(t *testing.T) {
	docRepo, _ := newMemoryRepos(t)
	ctx := context.Background()

	doc := &core.Document{
		Slug:   "decreto-lei-45-1985",
		Title:  "Decreto-Lei nº 45/1985",
		Length: 321,
		Categories: map[string][]string{
			core.CategoryTipo: {"Decreto-Lei"},
			core.CategoryAno:  {"1985"},
		},
	}
	_, err := docRepo.AddDocuments(ctx, doc)
	require.NoError(t, err)

	got, err := docRepo.GetDocument(ctx, doc.Id)
	require.NoError(t, err)
	assert.Equal(t, doc, got)
}

func TestGetDocumentNotFound(t *testing.T) {
	docRepo, _ := newMemoryRepos(t)

	_, err := docRepo.GetDocument(context.Background(), 12345)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestGetDocumentsSkipsMissing(t *testing.T) {
	docRepo, _ := newMemoryRepos(t)
	ctx := context.Background()

	docs, err := docRepo.AddDocuments(ctx,
		&core.Document{Slug: "lei-1-2000", Title: "Lei nº 1/2000"},
		&core.Document{Slug: "lei-2-2001", Title: "Lei nº 2/2001"},
	)
	require.NoError(t, err)

	got, err := docRepo.GetDocuments(ctx, docs[0].Id, 99999, docs[1].Id)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestGetDocumentBySlug(t *testing.T) {
	docRepo, _ := newMemoryRepos(t)
	ctx := context.Background()

	_, err := docRepo.AddDocuments(ctx, &core.Document{Slug: "resolucao-12-2019", Title: "Resolução 12 (2019)"})
	require.NoError(t, err)

	got, err := docRepo.GetDocumentBySlug(ctx, "resolucao-12-2019")
	require.NoError(t, err)
	assert.Equal(t, "Resolução 12 (2019)", got.Title)

	_, err = docRepo.GetDocumentBySlug(ctx, "nope")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestGetAllDocuments(t *testing.T) {
	docRepo, _ := newMemoryRepos(t)
	ctx := context.Background()

	got, err := docRepo.GetAllDocuments(ctx)
	require.NoError(t, err)
	assert.Empty(t, got, "a fresh store has no documents")

	_, err = docRepo.AddDocuments(ctx,
		&core.Document{Slug: "lei-1-2000", Title: "Lei nº 1/2000"},
		&core.Document{Slug: "lei-2-2001", Title: "Lei nº 2/2001"},
		&core.Document{Slug: "decreto-3-2002", Title: "Decreto nº 3/2002"},
	)
	require.NoError(t, err)

	got, err = docRepo.GetAllDocuments(ctx)
	require.NoError(t, err)
	require.Len(t, got, 3)

	slugs := make([]string, 0, len(got))
	for _, doc := range got {
		slugs = append(slugs, doc.Slug)
	}
	assert.ElementsMatch(t, []string{"lei-1-2000", "lei-2-2001", "decreto-3-2002"}, slugs)
}

func TestAddDocumentsValidates(t *testing.T) {
	docRepo, _ := newMemoryRepos(t)

	_, err := docRepo.AddDocuments(context.Background(), &core.Document{Slug: "x"})
	assert.ErrorIs(t, err, core.ErrInvalidDocument)
}
