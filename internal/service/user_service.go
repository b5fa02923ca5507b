package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/dom/vidtube/internal/domain"
	"github.com/dom/vidtube/internal/logging"
	"github.com/dom/vidtube/internal/media"
	"github.com/dom/vidtube/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserService struct {
	users repository.UserRepository
	views repository.ViewRepository
	media media.Store
}

func NewUserService(users repository.UserRepository, views repository.ViewRepository, store media.Store) *UserService {
	return &UserService{users: users, views: views, media: store}
}

func (s *UserService) CurrentUser(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, fromStore(err, "user not found")
	}
	return user, nil
}

func (s *UserService) UpdateAccount(ctx context.Context, id primitive.ObjectID, fullName, email string) (*domain.User, error) {
	if blank(fullName, email) {
		return nil, domain.Validation("all fields are required")
	}
	normalized, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}

	user, err := s.users.UpdateAccount(ctx, id, strings.TrimSpace(fullName), normalized)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, domain.Conflict("email already in use")
		}
		return nil, fromStore(err, "user not found")
	}
	return user, nil
}

// imageSlot names one replaceable user image.
type imageSlot struct {
	label    string
	publicID func(*domain.User) string
	save     func(ctx context.Context, id primitive.ObjectID, url, publicID string) (*domain.User, error)
}

func (s *UserService) UpdateAvatar(ctx context.Context, id primitive.ObjectID, localPath string) (*domain.User, error) {
	return s.replaceImage(ctx, id, localPath, imageSlot{
		label:    "avatar",
		publicID: func(u *domain.User) string { return u.AvatarPublicID },
		save:     s.users.SetAvatar,
	})
}

func (s *UserService) UpdateCoverImage(ctx context.Context, id primitive.ObjectID, localPath string) (*domain.User, error) {
	return s.replaceImage(ctx, id, localPath, imageSlot{
		label:    "cover image",
		publicID: func(u *domain.User) string { return u.CoverImagePublicID },
		save:     s.users.SetCoverImage,
	})
}

// replaceImage uploads the new file, deletes the previous asset and persists
// the new location. Earlier steps are not undone when a later one fails.
func (s *UserService) replaceImage(ctx context.Context, id primitive.ObjectID, localPath string, slot imageSlot) (*domain.User, error) {
	if strings.TrimSpace(localPath) == "" {
		return nil, domain.Validation(slot.label + " file is missing")
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, fromStore(err, "user not found")
	}

	asset, err := s.media.Store(ctx, localPath)
	if err != nil {
		return nil, domain.Internal(slot.label+" upload failed", err)
	}

	if previous := slot.publicID(user); previous != "" {
		if _, err := s.media.Delete(ctx, previous); err != nil {
			return nil, domain.Internal("delete previous "+slot.label, err)
		}
	}

	updated, err := slot.save(ctx, id, asset.URL, asset.PublicID)
	if err != nil {
		return nil, fromStore(err, "user not found")
	}

	logging.FromContext(ctx).Info(slot.label+" replaced", slog.String("user_id", id.Hex()))
	return updated, nil
}

func (s *UserService) ChannelProfile(ctx context.Context, username string, viewer primitive.ObjectID) (*domain.ChannelProfile, error) {
	if strings.TrimSpace(username) == "" {
		return nil, domain.Validation("username is missing")
	}
	profile, err := s.views.ChannelProfile(ctx, username, viewer)
	if err != nil {
		return nil, fromStore(err, "channel does not exist")
	}
	return profile, nil
}

func (s *UserService) WatchHistory(ctx context.Context, id primitive.ObjectID) ([]domain.WatchedVideo, error) {
	history, err := s.views.WatchHistory(ctx, id)
	if err != nil {
		return nil, fromStore(err, "user not found")
	}
	return history, nil
}
