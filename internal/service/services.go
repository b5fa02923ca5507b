package service

import (
	"github.com/dom/vidtube/internal/config"
	"github.com/dom/vidtube/internal/media"
	"github.com/dom/vidtube/internal/repository"
)

type Services struct {
	Auth         *AuthService
	User         *UserService
	Video        *VideoService
	Playlist     *PlaylistService
	Tweet        *TweetService
	Subscription *SubscriptionService
	Health       repository.HealthChecker
}

func NewServices(repos *repository.Repositories, store media.Store, cfg *config.Config) *Services {
	return &Services{
		Auth:         NewAuthService(repos.User, store, cfg),
		User:         NewUserService(repos.User, repos.Views, store),
		Video:        NewVideoService(repos.Video, repos.User, repos.Playlist, store),
		Playlist:     NewPlaylistService(repos.Playlist, repos.Video, repos.Views),
		Tweet:        NewTweetService(repos.Tweet, repos.Views),
		Subscription: NewSubscriptionService(repos.Subscription, repos.User, repos.Views),
		Health:       repos.Health,
	}
}
