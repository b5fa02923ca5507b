package service_test

import (
	"context"
	"testing"

	"github.com/dom/vidtube/internal/domain"
	"github.com/dom/vidtube/internal/service"
	"github.com/dom/vidtube/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestPlaylistService_CreateAndList(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner, _ := testutil.NewUserBuilder().Build(t, f.repos.User)

	empty, err := f.svc.Playlist.ListByUser(ctx, owner.ID)
	require.NoError(t, err)
	assert.Empty(t, empty)

	playlist, err := f.svc.Playlist.Create(ctx, owner.ID, " road trip ", "songs")
	require.NoError(t, err)
	assert.Equal(t, "road trip", playlist.Name)

	_, err = f.svc.Playlist.Create(ctx, owner.ID, "road trip", "again")
	assert.ErrorIs(t, err, service.ErrPlaylistExists)

	_, err = f.svc.Playlist.Create(ctx, owner.ID, "  ", "")
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))

	list, err := f.svc.Playlist.ListByUser(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, playlist.ID, list[0].ID)
}

func TestPlaylistService_Videos(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner, _ := testutil.NewUserBuilder().Build(t, f.repos.User)
	other, _ := testutil.NewUserBuilder().Build(t, f.repos.User)

	playlist, err := f.svc.Playlist.Create(ctx, owner.ID, "mix", "")
	require.NoError(t, err)

	var total int64
	for _, views := range []int64{10, 0, 5} {
		v := testutil.NewVideoBuilder().WithOwner(owner.ID).WithViews(views).Build(t, f.repos.Video)
		_, err := f.svc.Playlist.AddVideo(ctx, playlist.ID, v.ID, owner.ID)
		require.NoError(t, err)
		total += views
	}

	detail, err := f.svc.Playlist.Get(ctx, playlist.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, detail.TotalVideos)
	assert.Equal(t, total, detail.TotalViews)

	_, err = f.svc.Playlist.AddVideo(ctx, playlist.ID, primitive.NewObjectID(), owner.ID)
	assert.ErrorIs(t, err, service.ErrVideoNotFound)

	v := testutil.NewVideoBuilder().WithOwner(owner.ID).Build(t, f.repos.Video)
	_, err = f.svc.Playlist.AddVideo(ctx, playlist.ID, v.ID, other.ID)
	assert.Equal(t, domain.KindAuthorization, domain.KindOf(err))

	_, err = f.svc.Playlist.RemoveVideo(ctx, playlist.ID, v.ID, owner.ID)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))

	removed, err := f.svc.Playlist.RemoveVideo(ctx, playlist.ID, detail.Videos[0].ID, owner.ID)
	require.NoError(t, err)
	assert.Len(t, removed.Videos, 2)
}

func TestPlaylistService_UpdateAndDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner, _ := testutil.NewUserBuilder().Build(t, f.repos.User)
	other, _ := testutil.NewUserBuilder().Build(t, f.repos.User)

	playlist, err := f.svc.Playlist.Create(ctx, owner.ID, "first", "")
	require.NoError(t, err)
	_, err = f.svc.Playlist.Create(ctx, owner.ID, "second", "")
	require.NoError(t, err)

	_, err = f.svc.Playlist.Update(ctx, playlist.ID, other.ID, "mine", "")
	assert.Equal(t, domain.KindAuthorization, domain.KindOf(err))

	_, err = f.svc.Playlist.Update(ctx, playlist.ID, owner.ID, "second", "")
	assert.ErrorIs(t, err, service.ErrPlaylistExists)

	updated, err := f.svc.Playlist.Update(ctx, playlist.ID, owner.ID, "renamed", "desc")
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Name)
	assert.Equal(t, "desc", updated.Description)

	err = f.svc.Playlist.Delete(ctx, playlist.ID, other.ID)
	assert.Equal(t, domain.KindAuthorization, domain.KindOf(err))

	require.NoError(t, f.svc.Playlist.Delete(ctx, playlist.ID, owner.ID))

	err = f.svc.Playlist.Delete(ctx, playlist.ID, owner.ID)
	assert.ErrorIs(t, err, service.ErrPlaylistNotFound)

	_, err = f.svc.Playlist.Get(ctx, playlist.ID)
	assert.ErrorIs(t, err, service.ErrPlaylistNotFound)
}
