package service

import (
	"context"
	"errors"
	"strings"

	"github.com/dom/vidtube/internal/domain"
	"github.com/dom/vidtube/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrPlaylistNotFound = domain.NotFound("playlist not found")
	ErrPlaylistExists   = domain.Conflict("playlist already exists")
)

type PlaylistService struct {
	playlists repository.PlaylistRepository
	videos    repository.VideoRepository
	views     repository.ViewRepository
}

func NewPlaylistService(playlists repository.PlaylistRepository, videos repository.VideoRepository, views repository.ViewRepository) *PlaylistService {
	return &PlaylistService{playlists: playlists, videos: videos, views: views}
}

func (s *PlaylistService) Create(ctx context.Context, owner primitive.ObjectID, name, description string) (*domain.PlayList, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.Validation("playlist name is required")
	}

	_, err := s.playlists.GetByOwnerAndName(ctx, owner, name)
	switch {
	case err == nil:
		return nil, ErrPlaylistExists
	case !errors.Is(err, repository.ErrNotFound):
		return nil, fromStore(err, "")
	}

	playlist := &domain.PlayList{
		Name:        name,
		Description: strings.TrimSpace(description),
		Owner:       owner,
	}
	if err := s.playlists.Create(ctx, playlist); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrPlaylistExists
		}
		return nil, fromStore(err, "")
	}
	return playlist, nil
}

func (s *PlaylistService) ListByUser(ctx context.Context, owner primitive.ObjectID) ([]domain.PlaylistSummary, error) {
	playlists, err := s.views.UserPlaylists(ctx, owner)
	if err != nil {
		return nil, fromStore(err, "")
	}
	return playlists, nil
}

func (s *PlaylistService) Get(ctx context.Context, id primitive.ObjectID) (*domain.PlaylistDetail, error) {
	detail, err := s.views.PlaylistDetail(ctx, id)
	if err != nil {
		return nil, fromStore(err, ErrPlaylistNotFound.Error())
	}
	return detail, nil
}

func (s *PlaylistService) loadOwned(ctx context.Context, id, caller primitive.ObjectID) (*domain.PlayList, error) {
	playlist, err := s.playlists.GetByID(ctx, id)
	if err != nil {
		return nil, fromStore(err, ErrPlaylistNotFound.Error())
	}
	if err := requireOwner(playlist.Owner, caller, "you are not allowed to modify this playlist"); err != nil {
		return nil, err
	}
	return playlist, nil
}

func (s *PlaylistService) Update(ctx context.Context, id, caller primitive.ObjectID, name, description string) (*domain.PlayList, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.Validation("playlist name is required")
	}
	if _, err := s.loadOwned(ctx, id, caller); err != nil {
		return nil, err
	}

	updated, err := s.playlists.UpdateDetails(ctx, id, name, strings.TrimSpace(description))
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrPlaylistExists
		}
		return nil, fromStore(err, ErrPlaylistNotFound.Error())
	}
	return updated, nil
}

func (s *PlaylistService) Delete(ctx context.Context, id, caller primitive.ObjectID) error {
	if _, err := s.loadOwned(ctx, id, caller); err != nil {
		return err
	}
	return fromStore(s.playlists.Delete(ctx, id), ErrPlaylistNotFound.Error())
}

func (s *PlaylistService) AddVideo(ctx context.Context, id, videoID, caller primitive.ObjectID) (*domain.PlayList, error) {
	if _, err := s.loadOwned(ctx, id, caller); err != nil {
		return nil, err
	}
	if _, err := s.videos.GetByID(ctx, videoID); err != nil {
		return nil, fromStore(err, ErrVideoNotFound.Error())
	}

	updated, err := s.playlists.AddVideo(ctx, id, videoID)
	if err != nil {
		return nil, fromStore(err, ErrPlaylistNotFound.Error())
	}
	return updated, nil
}

func (s *PlaylistService) RemoveVideo(ctx context.Context, id, videoID, caller primitive.ObjectID) (*domain.PlayList, error) {
	playlist, err := s.loadOwned(ctx, id, caller)
	if err != nil {
		return nil, err
	}

	found := false
	for _, v := range playlist.Videos {
		if v == videoID {
			found = true
			break
		}
	}
	if !found {
		return nil, domain.NotFound("video is not in this playlist")
	}

	updated, err := s.playlists.RemoveVideo(ctx, id, videoID)
	if err != nil {
		return nil, fromStore(err, ErrPlaylistNotFound.Error())
	}
	return updated, nil
}
