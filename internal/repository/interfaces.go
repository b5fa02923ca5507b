package repository

import (
	"context"
	"errors"

	"github.com/dom/vidtube/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrNotFound  = errors.New("document not found")
	ErrDuplicate = errors.New("duplicate key")
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	GetByUsernameOrEmail(ctx context.Context, username, email string) (*domain.User, error)
	UpdateAccount(ctx context.Context, id primitive.ObjectID, fullName, email string) (*domain.User, error)
	UpdatePassword(ctx context.Context, id primitive.ObjectID, hash string) error
	SetAvatar(ctx context.Context, id primitive.ObjectID, url, publicID string) (*domain.User, error)
	SetCoverImage(ctx context.Context, id primitive.ObjectID, url, publicID string) (*domain.User, error)
	PushWatchHistory(ctx context.Context, id, videoID primitive.ObjectID) error

	// SetRefreshToken overwrites the stored refresh token unconditionally.
	SetRefreshToken(ctx context.Context, id primitive.ObjectID, token string) error
	// SwapRefreshToken replaces expected with next and reports whether expected was still current.
	SwapRefreshToken(ctx context.Context, id primitive.ObjectID, expected, next string) (bool, error)
	ClearRefreshToken(ctx context.Context, id primitive.ObjectID) error
}

type VideoRepository interface {
	Create(ctx context.Context, video *domain.Video) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Video, error)
	ListByOwner(ctx context.Context, owner primitive.ObjectID, includeUnpublished bool) ([]*domain.Video, error)
	UpdateDetails(ctx context.Context, video *domain.Video) (*domain.Video, error)
	TogglePublished(ctx context.Context, id primitive.ObjectID) (*domain.Video, error)
	IncrementViews(ctx context.Context, id primitive.ObjectID) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type PlaylistRepository interface {
	Create(ctx context.Context, playlist *domain.PlayList) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.PlayList, error)
	GetByOwnerAndName(ctx context.Context, owner primitive.ObjectID, name string) (*domain.PlayList, error)
	UpdateDetails(ctx context.Context, id primitive.ObjectID, name, description string) (*domain.PlayList, error)
	AddVideo(ctx context.Context, id, videoID primitive.ObjectID) (*domain.PlayList, error)
	RemoveVideo(ctx context.Context, id, videoID primitive.ObjectID) (*domain.PlayList, error)
	PullVideoFromAll(ctx context.Context, videoID primitive.ObjectID) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type TweetRepository interface {
	Create(ctx context.Context, tweet *domain.Tweet) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Tweet, error)
	UpdateContent(ctx context.Context, id primitive.ObjectID, content string) (*domain.Tweet, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type SubscriptionRepository interface {
	Find(ctx context.Context, subscriber, channel primitive.ObjectID) (*domain.Subscription, error)
	Create(ctx context.Context, sub *domain.Subscription) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// ViewRepository runs the aggregation views. Single-document views return
// ErrNotFound when the pipeline yields no rows.
type ViewRepository interface {
	ChannelProfile(ctx context.Context, username string, viewer primitive.ObjectID) (*domain.ChannelProfile, error)
	UserTweets(ctx context.Context, owner primitive.ObjectID) ([]domain.TweetView, error)
	AllTweets(ctx context.Context) ([]domain.TweetView, error)
	PlaylistDetail(ctx context.Context, id primitive.ObjectID) (*domain.PlaylistDetail, error)
	UserPlaylists(ctx context.Context, owner primitive.ObjectID) ([]domain.PlaylistSummary, error)
	WatchHistory(ctx context.Context, user primitive.ObjectID) ([]domain.WatchedVideo, error)
	ChannelSubscribers(ctx context.Context, channel primitive.ObjectID) ([]domain.OwnerSummary, error)
	SubscribedChannels(ctx context.Context, subscriber primitive.ObjectID) ([]domain.OwnerSummary, error)
}

type HealthChecker interface {
	Ping(ctx context.Context) error
}

type Repositories struct {
	User         UserRepository
	Video        VideoRepository
	Playlist     PlaylistRepository
	Tweet        TweetRepository
	Subscription SubscriptionRepository
	Views        ViewRepository
	Health       HealthChecker
}
