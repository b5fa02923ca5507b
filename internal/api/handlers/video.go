package handlers

import (
	"net/http"

	"github.com/dom/vidtube/internal/api/response"
	"github.com/dom/vidtube/internal/config"
	"github.com/dom/vidtube/internal/service"
)

type VideoHandler struct {
	videoService *service.VideoService
	limits       UploadLimits
}

func NewVideoHandler(videoService *service.VideoService, cfg *config.Config) *VideoHandler {
	return &VideoHandler{
		videoService: videoService,
		limits:       UploadLimits{Dir: cfg.UploadDir, MaxBytes: cfg.MaxUploadBytes},
	}
}

type PublishStatusResponse struct {
	IsPublished bool `json:"isPublished"`
}

// Publish handles POST /videos/publish (multipart: title, description,
// videoFile, optional thumbnail).
func (h *VideoHandler) Publish(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	owner, err := currentUser(r)
	if err != nil {
		response.Error(ctx, w, err)
		return
	}

	files, err := readMultipart(w, r, h.limits, "videoFile", "thumbnail")
	if err != nil {
		response.Error(ctx, w, err)
		return
	}
	defer files.Cleanup()

	video, err := h.videoService.Publish(ctx, owner, service.PublishInput{
		Title:         r.FormValue("title"),
		Description:   r.FormValue("description"),
		VideoPath:     files.Path("videoFile"),
		ThumbnailPath: files.Path("thumbnail"),
	})
	if err != nil {
		response.Error(ctx, w, err)
		return
	}
	response.JSON(ctx, w, http.StatusCreated, video, "video published successfully")
}

func (h *VideoHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	viewer, err := currentUser(r)
	if err != nil {
		response.Error(ctx, w, err)
		return
	}
	videoID, err := pathID(r, "videoId")
	if err != nil {
		response.Error(ctx, w, err)
		return
	}

	video, err := h.videoService.Get(ctx, videoID, viewer)
	if err != nil {
		response.Error(ctx, w, err)
		return
	}
	response.JSON(ctx, w, http.StatusOK, video, "video fetched successfully")
}

// Update handles PATCH /videos/{videoId} (multipart: title, description, optional thumbnail).
func (h *VideoHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	caller, err := currentUser(r)
	if err != nil {
		response.Error(ctx, w, err)
		return
	}
	videoID, err := pathID(r, "videoId")
	if err != nil {
		response.Error(ctx, w, err)
		return
	}

	files, err := readMultipart(w, r, h.limits, "thumbnail")
	if err != nil {
		response.Error(ctx, w, err)
		return
	}
	defer files.Cleanup()

	video, err := h.videoService.Update(ctx, videoID, caller, service.UpdateVideoInput{
		Title:         r.FormValue("title"),
		Description:   r.FormValue("description"),
		ThumbnailPath: files.Path("thumbnail"),
	})
	if err != nil {
		response.Error(ctx, w, err)
		return
	}
	response.JSON(ctx, w, http.StatusOK, video, "video updated successfully")
}

func (h *VideoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	caller, err := currentUser(r)
	if err != nil {
		response.Error(ctx, w, err)
		return
	}
	videoID, err := pathID(r, "videoId")
	if err != nil {
		response.Error(ctx, w, err)
		return
	}

	if err := h.videoService.Delete(ctx, videoID, caller); err != nil {
		response.Error(ctx, w, err)
		return
	}
	response.JSON(ctx, w, http.StatusOK, struct{}{}, "video deleted successfully")
}

func (h *VideoHandler) TogglePublish(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	caller, err := currentUser(r)
	if err != nil {
		response.Error(ctx, w, err)
		return
	}
	videoID, err := pathID(r, "videoId")
	if err != nil {
		response.Error(ctx, w, err)
		return
	}

	video, err := h.videoService.TogglePublish(ctx, videoID, caller)
	if err != nil {
		response.Error(ctx, w, err)
		return
	}
	response.JSON(ctx, w, http.StatusOK, PublishStatusResponse{IsPublished: video.IsPublished}, "publish status toggled successfully")
}

func (h *VideoHandler) ListByOwner(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	viewer, err := currentUser(r)
	if err != nil {
		response.Error(ctx, w, err)
		return
	}
	owner, err := pathID(r, "userId")
	if err != nil {
		response.Error(ctx, w, err)
		return
	}

	videos, err := h.videoService.ListByOwner(ctx, owner, viewer)
	if err != nil {
		response.Error(ctx, w, err)
		return
	}
	response.JSON(ctx, w, http.StatusOK, videos, "videos fetched successfully")
}
