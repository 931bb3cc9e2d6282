package badger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agc2020/consulta/core"
	"github.com/agc2020/consulta/storage"
)

func TestAppendAndGetPostings(t *testing.T) {
	_, postingRepo := newMemoryRepos(t)
	ctx := context.Background()

	require.NoError(t, postingRepo.AppendPostings(ctx, "lei",
		core.Posting{DocId: 1, Count: 2},
	))
	require.NoError(t, postingRepo.AppendPostings(ctx, "lei",
		core.Posting{DocId: 2, Count: 1},
	))

	postings, err := postingRepo.GetPostings(ctx, "lei")
	require.NoError(t, err)
	assert.Equal(t, []core.Posting{
		{DocId: 1, Count: 2},
		{DocId: 2, Count: 1},
	}, postings)
}

func TestGetPostingsUnknownTerm(t *testing.T) {
	_, postingRepo := newMemoryRepos(t)

	postings, err := postingRepo.GetPostings(context.Background(), "inexistente")
	require.NoError(t, err)
	assert.Empty(t, postings)
}

func TestPostingsEmptyTerm(t *testing.T) {
	_, postingRepo := newMemoryRepos(t)
	ctx := context.Background()

	err := postingRepo.AppendPostings(ctx, "", core.Posting{DocId: 1, Count: 1})
	assert.ErrorIs(t, err, storage.ErrEmptyTerm)

	_, err = postingRepo.GetPostings(ctx, "")
	assert.ErrorIs(t, err, storage.ErrEmptyTerm)
}

func TestStatsRoundTrip(t *testing.T) {
	_, postingRepo := newMemoryRepos(t)
	ctx := context.Background()

	stats, err := postingRepo.GetStats(ctx)
	require.NoError(t, err)
	assert.Zero(t, stats, "missing stats yield the zero value")

	want := core.IndexStats{DocCount: 10, TotalLength: 4321, TermCount: 87}
	require.NoError(t, postingRepo.SetStats(ctx, want))

	stats, err = postingRepo.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, stats)
}
