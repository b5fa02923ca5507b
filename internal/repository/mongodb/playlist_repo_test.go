package mongodb_test

import (
	"context"
	"testing"

	"github.com/dom/vidtube/internal/domain"
	"github.com/dom/vidtube/internal/repository"
	"github.com/dom/vidtube/internal/repository/mongodb"
	"github.com/dom/vidtube/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestPlaylistRepository_Lifecycle(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := mongodb.NewPlaylistRepository(testDB.DB)
	ctx := context.Background()

	owner := primitive.NewObjectID()
	playlist := &domain.PlayList{Name: "favourites", Description: "best of", Owner: owner}
	require.NoError(t, repo.Create(ctx, playlist))
	assert.NotNil(t, playlist.Videos)

	found, err := repo.GetByOwnerAndName(ctx, owner, "favourites")
	require.NoError(t, err)
	assert.Equal(t, playlist.ID, found.ID)

	err = repo.Create(ctx, &domain.PlayList{Name: "favourites", Owner: owner})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	require.NoError(t, repo.Create(ctx, &domain.PlayList{Name: "favourites", Owner: primitive.NewObjectID()}),
		"names are unique per owner only")

	updated, err := repo.UpdateDetails(ctx, playlist.ID, "renamed", "still best of")
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Name)
	assert.True(t, !updated.UpdatedAt.Before(playlist.UpdatedAt))

	require.NoError(t, repo.Delete(ctx, playlist.ID))
	assert.ErrorIs(t, repo.Delete(ctx, playlist.ID), repository.ErrNotFound)

	_, err = repo.GetByID(ctx, playlist.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestPlaylistRepository_Videos(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := mongodb.NewPlaylistRepository(testDB.DB)
	ctx := context.Background()

	owner := primitive.NewObjectID()
	first := &domain.PlayList{Name: "first", Owner: owner}
	second := &domain.PlayList{Name: "second", Owner: owner}
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	a, b := primitive.NewObjectID(), primitive.NewObjectID()

	got, err := repo.AddVideo(ctx, first.ID, a)
	require.NoError(t, err)
	got, err = repo.AddVideo(ctx, first.ID, a)
	require.NoError(t, err)
	assert.Equal(t, []primitive.ObjectID{a}, got.Videos, "adding twice keeps one entry")

	_, err = repo.AddVideo(ctx, first.ID, b)
	require.NoError(t, err)
	_, err = repo.AddVideo(ctx, second.ID, a)
	require.NoError(t, err)

	got, err = repo.RemoveVideo(ctx, first.ID, b)
	require.NoError(t, err)
	assert.Equal(t, []primitive.ObjectID{a}, got.Videos)

	require.NoError(t, repo.PullVideoFromAll(ctx, a))

	for _, id := range []primitive.ObjectID{first.ID, second.ID} {
		p, err := repo.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Empty(t, p.Videos)
	}

	_, err = repo.AddVideo(ctx, primitive.NewObjectID(), a)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
