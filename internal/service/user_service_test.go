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

func TestUserService_UpdateAccount(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user, _ := testutil.NewUserBuilder().Build(t, f.repos.User)
	other, _ := testutil.NewUserBuilder().Build(t, f.repos.User)

	updated, err := f.svc.User.UpdateAccount(ctx, user.ID, " New Name ", "NEW@example.com")
	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.FullName)
	assert.Equal(t, "new@example.com", updated.Email)

	_, err = f.svc.User.UpdateAccount(ctx, user.ID, "x", other.Email)
	assert.Equal(t, domain.KindConflict, domain.KindOf(err))

	_, err = f.svc.User.UpdateAccount(ctx, user.ID, "", "a@example.com")
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))

	_, err = f.svc.User.UpdateAccount(ctx, user.ID, "x", "broken")
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))

	_, err = f.svc.User.CurrentUser(ctx, primitive.NewObjectID())
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}

func TestUserService_ReplaceImages(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	user, err := f.svc.Auth.Register(ctx, service.RegisterInput{
		Username:   "painter",
		Email:      "painter@example.com",
		FullName:   "Painter",
		Password:   "password123",
		AvatarPath: tempUpload(t, "avatar.png"),
	})
	require.NoError(t, err)
	oldAvatar := user.AvatarPublicID

	updated, err := f.svc.User.UpdateAvatar(ctx, user.ID, tempUpload(t, "avatar2.png"))
	require.NoError(t, err)
	assert.NotEqual(t, oldAvatar, updated.AvatarPublicID)
	assert.False(t, f.media.Has(oldAvatar))
	assert.True(t, f.media.Has(updated.AvatarPublicID))

	updated, err = f.svc.User.UpdateCoverImage(ctx, user.ID, tempUpload(t, "cover.png"))
	require.NoError(t, err)
	assert.NotEmpty(t, updated.CoverImage)
	assert.True(t, f.media.Has(updated.CoverImagePublicID))

	_, err = f.svc.User.UpdateAvatar(ctx, user.ID, "")
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}

func TestUserService_ChannelAndHistory(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	channel, _ := testutil.NewUserBuilder().WithUsername("studio").Build(t, f.repos.User)
	viewer, _ := testutil.NewUserBuilder().Build(t, f.repos.User)

	_, err := f.svc.Subscription.Toggle(ctx, viewer.ID, channel.ID)
	require.NoError(t, err)

	profile, err := f.svc.User.ChannelProfile(ctx, "studio", viewer.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, profile.SubscribersCount)
	assert.True(t, profile.IsSubscribed)

	_, err = f.svc.User.ChannelProfile(ctx, "nobody", viewer.ID)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))

	_, err = f.svc.User.ChannelProfile(ctx, " ", viewer.ID)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))

	first := testutil.NewVideoBuilder().WithOwner(channel.ID).Build(t, f.repos.Video)
	second := testutil.NewVideoBuilder().WithOwner(channel.ID).Build(t, f.repos.Video)
	for _, v := range []*domain.Video{first, second, first} {
		_, err := f.svc.Video.Get(ctx, v.ID, viewer.ID)
		require.NoError(t, err)
	}

	history, err := f.svc.User.WatchHistory(ctx, viewer.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, first.ID, history[0].ID)
	assert.Equal(t, second.ID, history[1].ID)
}
