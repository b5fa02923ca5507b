package mongodb

import (
	"context"
	"fmt"

	"github.com/dom/vidtube/internal/domain"
	"github.com/dom/vidtube/internal/pipeline"
	"github.com/dom/vidtube/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type viewRepository struct {
	db *mongo.Database
}

func NewViewRepository(db *mongo.Database) *viewRepository {
	return &viewRepository{db: db}
}

func aggregate[T any](ctx context.Context, coll *mongo.Collection, p pipeline.Pipeline) ([]T, error) {
	cur, err := coll.Aggregate(ctx, p.Render())
	if err != nil {
		return nil, fmt.Errorf("aggregate %s: %w", coll.Name(), err)
	}
	rows := []T{}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode %s aggregate: %w", coll.Name(), err)
	}
	return rows, nil
}

func first[T any](rows []T) (*T, error) {
	if len(rows) == 0 {
		return nil, repository.ErrNotFound
	}
	return &rows[0], nil
}

func (r *viewRepository) ChannelProfile(ctx context.Context, username string, viewer primitive.ObjectID) (*domain.ChannelProfile, error) {
	rows, err := aggregate[domain.ChannelProfile](ctx, r.db.Collection(pipeline.Users), pipeline.ChannelProfile(username, viewer))
	if err != nil {
		return nil, err
	}
	return first(rows)
}

func (r *viewRepository) UserTweets(ctx context.Context, owner primitive.ObjectID) ([]domain.TweetView, error) {
	return aggregate[domain.TweetView](ctx, r.db.Collection(pipeline.Tweets), pipeline.UserTweets(owner))
}

func (r *viewRepository) AllTweets(ctx context.Context) ([]domain.TweetView, error) {
	return aggregate[domain.TweetView](ctx, r.db.Collection(pipeline.Tweets), pipeline.AllTweets())
}

func (r *viewRepository) PlaylistDetail(ctx context.Context, id primitive.ObjectID) (*domain.PlaylistDetail, error) {
	rows, err := aggregate[domain.PlaylistDetail](ctx, r.db.Collection(pipeline.Playlists), pipeline.PlaylistWithVideos(id))
	if err != nil {
		return nil, err
	}
	return first(rows)
}

func (r *viewRepository) UserPlaylists(ctx context.Context, owner primitive.ObjectID) ([]domain.PlaylistSummary, error) {
	return aggregate[domain.PlaylistSummary](ctx, r.db.Collection(pipeline.Playlists), pipeline.UserPlaylists(owner))
}

type watchHistoryRow struct {
	WatchHistory  []primitive.ObjectID  `bson:"watchHistory"`
	WatchedVideos []domain.WatchedVideo `bson:"watchedVideos"`
}

// WatchHistory returns the joined videos in history order; $lookup does not
// preserve the order of the local array, so rows are re-sequenced here.
func (r *viewRepository) WatchHistory(ctx context.Context, user primitive.ObjectID) ([]domain.WatchedVideo, error) {
	rows, err := aggregate[watchHistoryRow](ctx, r.db.Collection(pipeline.Users), pipeline.WatchHistory(user))
	if err != nil {
		return nil, err
	}
	row, err := first(rows)
	if err != nil {
		return nil, err
	}

	byID := make(map[primitive.ObjectID]domain.WatchedVideo, len(row.WatchedVideos))
	for _, v := range row.WatchedVideos {
		byID[v.ID] = v
	}

	ordered := make([]domain.WatchedVideo, 0, len(row.WatchedVideos))
	for _, id := range row.WatchHistory {
		if v, ok := byID[id]; ok {
			ordered = append(ordered, v)
		}
	}
	return ordered, nil
}

type subscriberRow struct {
	Subscriber domain.OwnerSummary `bson:"subscriber"`
}

type channelRow struct {
	Channel domain.OwnerSummary `bson:"channel"`
}

func (r *viewRepository) ChannelSubscribers(ctx context.Context, channel primitive.ObjectID) ([]domain.OwnerSummary, error) {
	rows, err := aggregate[subscriberRow](ctx, r.db.Collection(pipeline.Subscriptions), pipeline.ChannelSubscribers(channel))
	if err != nil {
		return nil, err
	}
	out := make([]domain.OwnerSummary, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.Subscriber)
	}
	return out, nil
}

func (r *viewRepository) SubscribedChannels(ctx context.Context, subscriber primitive.ObjectID) ([]domain.OwnerSummary, error) {
	rows, err := aggregate[channelRow](ctx, r.db.Collection(pipeline.Subscriptions), pipeline.SubscribedChannels(subscriber))
	if err != nil {
		return nil, err
	}
	out := make([]domain.OwnerSummary, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.Channel)
	}
	return out, nil
}
