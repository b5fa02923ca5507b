package handlers

import (
	"context"
	"net/http"

	"github.com/dom/vidtube/internal/api/response"
	"github.com/dom/vidtube/internal/domain"
	"github.com/dom/vidtube/internal/service"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PlaylistHandler struct {
	playlistService *service.PlaylistService
}

func NewPlaylistHandler(playlistService *service.PlaylistService) *PlaylistHandler {
	return &PlaylistHandler{playlistService: playlistService}
}

type PlaylistRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (h *PlaylistHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	owner, err := currentUser(r)
	if err != nil {
		response.Error(ctx, w, err)
		return
	}

	var req PlaylistRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(ctx, w, err)
		return
	}

	playlist, err := h.playlistService.Create(ctx, owner, req.Name, req.Description)
	if err != nil {
		response.Error(ctx, w, err)
		return
	}
	response.JSON(ctx, w, http.StatusCreated, playlist, "playlist created successfully")
}

func (h *PlaylistHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	owner, err := pathID(r, "userId")
	if err != nil {
		response.Error(ctx, w, err)
		return
	}

	playlists, err := h.playlistService.ListByUser(ctx, owner)
	if err != nil {
		response.Error(ctx, w, err)
		return
	}
	response.JSON(ctx, w, http.StatusOK, playlists, "user playlists fetched successfully")
}

func (h *PlaylistHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r, "playlistId")
	if err != nil {
		response.Error(ctx, w, err)
		return
	}

	playlist, err := h.playlistService.Get(ctx, id)
	if err != nil {
		response.Error(ctx, w, err)
		return
	}
	response.JSON(ctx, w, http.StatusOK, playlist, "playlist fetched successfully")
}

func (h *PlaylistHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	caller, err := currentUser(r)
	if err != nil {
		response.Error(ctx, w, err)
		return
	}
	id, err := pathID(r, "playlistId")
	if err != nil {
		response.Error(ctx, w, err)
		return
	}

	var req PlaylistRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(ctx, w, err)
		return
	}

	playlist, err := h.playlistService.Update(ctx, id, caller, req.Name, req.Description)
	if err != nil {
		response.Error(ctx, w, err)
		return
	}
	response.JSON(ctx, w, http.StatusOK, playlist, "playlist updated successfully")
}

func (h *PlaylistHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	caller, err := currentUser(r)
	if err != nil {
		response.Error(ctx, w, err)
		return
	}
	id, err := pathID(r, "playlistId")
	if err != nil {
		response.Error(ctx, w, err)
		return
	}

	if err := h.playlistService.Delete(ctx, id, caller); err != nil {
		response.Error(ctx, w, err)
		return
	}
	response.JSON(ctx, w, http.StatusOK, struct{}{}, "playlist deleted successfully")
}

func (h *PlaylistHandler) AddVideo(w http.ResponseWriter, r *http.Request) {
	h.editVideos(w, r, h.playlistService.AddVideo, "video added to playlist")
}

func (h *PlaylistHandler) RemoveVideo(w http.ResponseWriter, r *http.Request) {
	h.editVideos(w, r, h.playlistService.RemoveVideo, "video removed from playlist")
}

type playlistEdit func(ctx context.Context, id, videoID, caller primitive.ObjectID) (*domain.PlayList, error)

func (h *PlaylistHandler) editVideos(w http.ResponseWriter, r *http.Request, edit playlistEdit, message string) {
	ctx := r.Context()

	caller, err := currentUser(r)
	if err != nil {
		response.Error(ctx, w, err)
		return
	}
	id, err := pathID(r, "playlistId")
	if err != nil {
		response.Error(ctx, w, err)
		return
	}
	videoID, err := pathID(r, "videoId")
	if err != nil {
		response.Error(ctx, w, err)
		return
	}

	playlist, err := edit(ctx, id, videoID, caller)
	if err != nil {
		response.Error(ctx, w, err)
		return
	}
	response.JSON(ctx, w, http.StatusOK, playlist, message)
}
