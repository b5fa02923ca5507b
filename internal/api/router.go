package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/dom/vidtube/internal/api/handlers"
	"github.com/dom/vidtube/internal/api/middleware"
	"github.com/dom/vidtube/internal/config"
	"github.com/dom/vidtube/internal/service"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(services *service.Services, cfg *config.Config, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.RequestLogger(logger))
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.CORS(cfg.CORSOrigin))

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(services.Health)
	authHandler := handlers.NewAuthHandler(services.Auth, cfg)
	userHandler := handlers.NewUserHandler(services.User, cfg)
	videoHandler := handlers.NewVideoHandler(services.Video, cfg)
	playlistHandler := handlers.NewPlaylistHandler(services.Playlist)
	tweetHandler := handlers.NewTweetHandler(services.Tweet)
	subscriptionHandler := handlers.NewSubscriptionHandler(services.Subscription)

	authLimiter := middleware.NewIPRateLimiter(cfg.AuthRateLimit, time.Minute, 10*time.Minute)
	requireAuth := middleware.Auth(services.Auth)

	r.Get("/health", healthHandler.Live)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.With(requireAuth).Get("/healthcheck", healthHandler.Check)

		r.Route("/users", func(r chi.Router) {
			// Public, rate limited
			r.Group(func(r chi.Router) {
				r.Use(middleware.RateLimit(authLimiter, "auth"))
				r.Post("/register", authHandler.Register)
				r.Post("/login", authHandler.Login)
				r.Post("/refresh-token", authHandler.RefreshToken)
			})

			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Post("/logout", authHandler.Logout)
				r.Post("/change-password", authHandler.ChangePassword)
				r.Get("/current-user", userHandler.CurrentUser)
				r.Patch("/update-account", userHandler.UpdateAccount)
				r.Patch("/update-avatar", userHandler.UpdateAvatar)
				r.Patch("/update-cover-image", userHandler.UpdateCoverImage)
				r.Get("/channel/{username}", userHandler.ChannelProfile)
				r.Get("/watch-history", userHandler.WatchHistory)
			})
		})

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(requireAuth)

			r.Route("/videos", func(r chi.Router) {
				r.Post("/publish", videoHandler.Publish)
				r.Get("/user/{userId}", videoHandler.ListByOwner)
				r.Get("/{videoId}", videoHandler.Get)
				r.Patch("/{videoId}", videoHandler.Update)
				r.Delete("/{videoId}", videoHandler.Delete)
				r.Patch("/{videoId}/toggle-publish", videoHandler.TogglePublish)
			})

			r.Route("/playlists", func(r chi.Router) {
				r.Post("/", playlistHandler.Create)
				r.Get("/user/{userId}", playlistHandler.ListByUser)
				r.Get("/{playlistId}", playlistHandler.Get)
				r.Patch("/{playlistId}", playlistHandler.Update)
				r.Delete("/{playlistId}", playlistHandler.Delete)
				r.Patch("/{playlistId}/videos/{videoId}", playlistHandler.AddVideo)
				r.Delete("/{playlistId}/videos/{videoId}", playlistHandler.RemoveVideo)
			})

			r.Route("/tweets", func(r chi.Router) {
				r.Post("/", tweetHandler.Create)
				r.Get("/", tweetHandler.All)
				r.Get("/user", tweetHandler.UserTweets)
				r.Patch("/{tweetId}", tweetHandler.Update)
				r.Delete("/{tweetId}", tweetHandler.Delete)
			})

			r.Route("/subscriptions", func(r chi.Router) {
				r.Post("/c/{channelId}", subscriptionHandler.Toggle)
				r.Get("/c/{channelId}", subscriptionHandler.Subscribers)
				r.Get("/u/{subscriberId}", subscriptionHandler.SubscribedChannels)
			})
		})
	})

	return r
}
