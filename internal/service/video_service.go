package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/dom/vidtube/internal/domain"
	"github.com/dom/vidtube/internal/logging"
	"github.com/dom/vidtube/internal/media"
	"github.com/dom/vidtube/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrVideoNotFound = domain.NotFound("video not found")

type VideoService struct {
	videos    repository.VideoRepository
	users     repository.UserRepository
	playlists repository.PlaylistRepository
	media     media.Store
}

func NewVideoService(videos repository.VideoRepository, users repository.UserRepository, playlists repository.PlaylistRepository, store media.Store) *VideoService {
	return &VideoService{videos: videos, users: users, playlists: playlists, media: store}
}

type PublishInput struct {
	Title         string
	Description   string
	VideoPath     string
	ThumbnailPath string
}

type UpdateVideoInput struct {
	Title         string
	Description   string
	ThumbnailPath string
}

func (s *VideoService) Publish(ctx context.Context, owner primitive.ObjectID, in PublishInput) (*domain.Video, error) {
	if blank(in.Title, in.Description) {
		return nil, domain.Validation("all fields are required")
	}
	if strings.TrimSpace(in.VideoPath) == "" {
		return nil, domain.Validation("video file is required")
	}

	asset, err := s.media.Store(ctx, in.VideoPath)
	if err != nil {
		return nil, domain.Internal("video upload failed", err)
	}

	video := &domain.Video{
		Title:             strings.TrimSpace(in.Title),
		Description:       strings.TrimSpace(in.Description),
		VideoFile:         asset.URL,
		VideoFilePublicID: asset.PublicID,
		Thumbnail:         asset.SecureURL,
		Duration:          asset.Duration,
		IsPublished:       true,
		Owner:             owner,
	}

	if strings.TrimSpace(in.ThumbnailPath) != "" {
		thumb, err := s.media.Store(ctx, in.ThumbnailPath)
		if err != nil {
			return nil, domain.Internal("thumbnail upload failed", err)
		}
		video.Thumbnail = thumb.URL
		video.ThumbnailPublicID = thumb.PublicID
	}

	if err := s.videos.Create(ctx, video); err != nil {
		return nil, fromStore(err, "")
	}

	logging.FromContext(ctx).Info("video published", slog.String("video_id", video.ID.Hex()))
	return video, nil
}

// Get returns a video for viewer. Unpublished videos are only visible to their
// owner. A successful fetch counts a view and moves the video to the head of
// the viewer's watch history.
func (s *VideoService) Get(ctx context.Context, id, viewer primitive.ObjectID) (*domain.Video, error) {
	video, err := s.videos.GetByID(ctx, id)
	if err != nil {
		return nil, fromStore(err, ErrVideoNotFound.Error())
	}
	if !video.IsPublished && video.Owner != viewer {
		return nil, ErrVideoNotFound
	}

	if err := s.videos.IncrementViews(ctx, id); err != nil {
		return nil, fromStore(err, ErrVideoNotFound.Error())
	}
	video.Views++

	if err := s.users.PushWatchHistory(ctx, viewer, id); err != nil {
		return nil, fromStore(err, "user not found")
	}
	return video, nil
}

func (s *VideoService) loadOwned(ctx context.Context, id, caller primitive.ObjectID, action string) (*domain.Video, error) {
	video, err := s.videos.GetByID(ctx, id)
	if err != nil {
		return nil, fromStore(err, ErrVideoNotFound.Error())
	}
	if err := requireOwner(video.Owner, caller, "you are not allowed to "+action+" this video"); err != nil {
		return nil, err
	}
	return video, nil
}

func (s *VideoService) Update(ctx context.Context, id, caller primitive.ObjectID, in UpdateVideoInput) (*domain.Video, error) {
	if blank(in.Title, in.Description) {
		return nil, domain.Validation("all fields are required")
	}

	video, err := s.loadOwned(ctx, id, caller, "update")
	if err != nil {
		return nil, err
	}

	previousThumb := video.ThumbnailPublicID
	video.Title = strings.TrimSpace(in.Title)
	video.Description = strings.TrimSpace(in.Description)

	if strings.TrimSpace(in.ThumbnailPath) != "" {
		thumb, err := s.media.Store(ctx, in.ThumbnailPath)
		if err != nil {
			return nil, domain.Internal("thumbnail upload failed", err)
		}
		video.Thumbnail = thumb.URL
		video.ThumbnailPublicID = thumb.PublicID

		if previousThumb != "" {
			if _, err := s.media.Delete(ctx, previousThumb); err != nil {
				return nil, domain.Internal("delete previous thumbnail", err)
			}
		}
	}

	updated, err := s.videos.UpdateDetails(ctx, video)
	if err != nil {
		return nil, fromStore(err, ErrVideoNotFound.Error())
	}
	return updated, nil
}

// Delete removes the video's media, the document and every playlist reference to it.
func (s *VideoService) Delete(ctx context.Context, id, caller primitive.ObjectID) error {
	video, err := s.loadOwned(ctx, id, caller, "delete")
	if err != nil {
		return err
	}

	for _, publicID := range []string{video.VideoFilePublicID, video.ThumbnailPublicID} {
		if publicID == "" {
			continue
		}
		if _, err := s.media.Delete(ctx, publicID); err != nil {
			return domain.Internal("delete video media", err)
		}
	}

	if err := s.videos.Delete(ctx, id); err != nil {
		return fromStore(err, ErrVideoNotFound.Error())
	}
	if err := s.playlists.PullVideoFromAll(ctx, id); err != nil {
		return fromStore(err, "")
	}

	logging.FromContext(ctx).Info("video deleted", slog.String("video_id", id.Hex()))
	return nil
}

func (s *VideoService) TogglePublish(ctx context.Context, id, caller primitive.ObjectID) (*domain.Video, error) {
	if _, err := s.loadOwned(ctx, id, caller, "update"); err != nil {
		return nil, err
	}
	video, err := s.videos.TogglePublished(ctx, id)
	if err != nil {
		return nil, fromStore(err, ErrVideoNotFound.Error())
	}
	return video, nil
}

// ListByOwner lists a channel's videos, newest first. Unpublished ones are
// included only when the owner asks.
func (s *VideoService) ListByOwner(ctx context.Context, owner, viewer primitive.ObjectID) ([]*domain.Video, error) {
	videos, err := s.videos.ListByOwner(ctx, owner, owner == viewer)
	if err != nil {
		return nil, fromStore(err, "")
	}
	return videos, nil
}
