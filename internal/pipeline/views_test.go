package pipeline_test

import (
	"testing"

	"github.com/dom/vidtube/internal/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func stageNames(p mongo.Pipeline) []string {
	names := make([]string, 0, len(p))
	for _, s := range p {
		names = append(names, s[0].Key)
	}
	return names
}

func stageBody(t *testing.T, p mongo.Pipeline, i int) bson.D {
	t.Helper()
	require.Greater(t, len(p), i)
	body, ok := p[i][0].Value.(bson.D)
	require.True(t, ok, "stage %d body is %T", i, p[i][0].Value)
	return body
}

func keys(d bson.D) []string {
	out := make([]string, 0, len(d))
	for _, e := range d {
		out = append(out, e.Key)
	}
	return out
}

func TestChannelProfile(t *testing.T) {
	viewer := primitive.NewObjectID()
	got := pipeline.ChannelProfile("  ChaiCode ", viewer).Render()

	want := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "username", Value: "chaicode"}}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "subscriptions"},
			{Key: "localField", Value: "_id"},
			{Key: "foreignField", Value: "channel"},
			{Key: "as", Value: "subscribers"},
		}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "subscriptions"},
			{Key: "localField", Value: "_id"},
			{Key: "foreignField", Value: "subscriber"},
			{Key: "as", Value: "subscribedTo"},
		}}},
		{{Key: "$addFields", Value: bson.D{
			{Key: "subscribersCount", Value: bson.D{{Key: "$size", Value: "$subscribers"}}},
			{Key: "subscribedToCount", Value: bson.D{{Key: "$size", Value: "$subscribedTo"}}},
			{Key: "isSubscribed", Value: bson.D{{Key: "$cond", Value: bson.D{
				{Key: "if", Value: bson.D{{Key: "$in", Value: bson.A{viewer, "$subscribers.subscriber"}}}},
				{Key: "then", Value: true},
				{Key: "else", Value: false},
			}}}},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "username", Value: 1},
			{Key: "email", Value: 1},
			{Key: "fullName", Value: 1},
			{Key: "avatar", Value: 1},
			{Key: "coverImage", Value: 1},
			{Key: "subscribersCount", Value: 1},
			{Key: "subscribedToCount", Value: 1},
			{Key: "isSubscribed", Value: 1},
			{Key: "createdAt", Value: 1},
		}}},
	}

	assert.Equal(t, want, got)
}

func TestTweetViews(t *testing.T) {
	owner := primitive.NewObjectID()

	user := pipeline.UserTweets(owner).Render()
	all := pipeline.AllTweets().Render()

	assert.Equal(t, []string{"$match", "$lookup", "$unwind", "$sort", "$project"}, stageNames(user))
	assert.Equal(t, []string{"$lookup", "$unwind", "$sort", "$project"}, stageNames(all))
	assert.Equal(t, bson.D{{Key: "owner", Value: owner}}, stageBody(t, user, 0))

	project := stageBody(t, all, 3)
	assert.Equal(t, []string{"_id", "content", "createdAt", "updatedAt", "owner"}, keys(project))
	assert.Equal(t, bson.D{{Key: "fullName", Value: 1}, {Key: "avatar", Value: 1}}, project[4].Value)
}

func TestPlaylistWithVideos(t *testing.T) {
	id := primitive.NewObjectID()
	got := pipeline.PlaylistWithVideos(id).Render()

	assert.Equal(t, []string{"$match", "$lookup", "$lookup", "$addFields", "$project"}, stageNames(got))
	assert.Equal(t, bson.D{{Key: "_id", Value: id}}, stageBody(t, got, 0))

	assert.Equal(t, bson.D{
		{Key: "totalVideos", Value: bson.D{{Key: "$size", Value: "$videos"}}},
		{Key: "totalViews", Value: bson.D{{Key: "$sum", Value: "$videos.views"}}},
		{Key: "owner", Value: bson.D{{Key: "$first", Value: "$owner"}}},
	}, stageBody(t, got, 3))

	project := stageBody(t, got, 4)
	assert.NotContains(t, keys(project), "password")
	for _, e := range project {
		switch e.Key {
		case "videos":
			assert.Equal(t,
				[]string{"_id", "videoFile", "thumbnail", "title", "description", "duration", "createdAt", "views"},
				keys(e.Value.(bson.D)))
		case "owner":
			assert.Equal(t, []string{"_id", "username", "fullName", "avatar"}, keys(e.Value.(bson.D)))
		}
	}
}

func TestUserPlaylists(t *testing.T) {
	owner := primitive.NewObjectID()
	got := pipeline.UserPlaylists(owner).Render()

	assert.Equal(t, []string{"$match", "$lookup", "$addFields", "$sort", "$project"}, stageNames(got))
	assert.Equal(t,
		[]string{"_id", "name", "description", "totalVideos", "totalViews", "updatedAt"},
		keys(stageBody(t, got, 4)))
}

func TestWatchHistory(t *testing.T) {
	user := primitive.NewObjectID()
	got := pipeline.WatchHistory(user).Render()

	assert.Equal(t, []string{"$match", "$lookup", "$project"}, stageNames(got))

	lookup := stageBody(t, got, 1)
	assert.Equal(t, []string{"from", "localField", "foreignField", "as", "pipeline"}, keys(lookup))
	assert.Equal(t, "watchedVideos", lookup[3].Value)

	inner, ok := lookup[4].Value.(mongo.Pipeline)
	require.True(t, ok)
	assert.Equal(t, []string{"$lookup", "$addFields"}, stageNames(inner))

	ownerLookup := inner[0][0].Value.(bson.D)
	ownerProject := ownerLookup[4].Value.(mongo.Pipeline)[0][0].Value.(bson.D)
	assert.Equal(t, []string{"username", "fullName", "avatar"}, keys(ownerProject))
}

func TestSubscriptionViews(t *testing.T) {
	id := primitive.NewObjectID()

	subscribers := pipeline.ChannelSubscribers(id).Render()
	assert.Equal(t, bson.D{{Key: "channel", Value: id}}, stageBody(t, subscribers, 0))
	assert.Equal(t, "subscriber", stageBody(t, subscribers, 1)[1].Value)
	assert.Equal(t, "$subscriber", subscribers[2][0].Value)

	channels := pipeline.SubscribedChannels(id).Render()
	assert.Equal(t, bson.D{{Key: "subscriber", Value: id}}, stageBody(t, channels, 0))
	assert.Equal(t, "channel", stageBody(t, channels, 1)[3].Value)
}
