package handlers

import (
	"context"
	"net/http"

	"github.com/dom/vidtube/internal/api/response"
	"github.com/dom/vidtube/internal/config"
	"github.com/dom/vidtube/internal/domain"
	"github.com/dom/vidtube/internal/service"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserHandler struct {
	userService *service.UserService
	limits      UploadLimits
}

func NewUserHandler(userService *service.UserService, cfg *config.Config) *UserHandler {
	return &UserHandler{
		userService: userService,
		limits:      UploadLimits{Dir: cfg.UploadDir, MaxBytes: cfg.MaxUploadBytes},
	}
}

type imageUpdater func(ctx context.Context, id primitive.ObjectID, localPath string) (*domain.User, error)

type UpdateAccountRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

func (h *UserHandler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, err := currentUser(r)
	if err != nil {
		response.Error(ctx, w, err)
		return
	}

	user, err := h.userService.CurrentUser(ctx, userID)
	if err != nil {
		response.Error(ctx, w, err)
		return
	}
	response.JSON(ctx, w, http.StatusOK, user, "user fetched successfully")
}

func (h *UserHandler) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, err := currentUser(r)
	if err != nil {
		response.Error(ctx, w, err)
		return
	}

	var req UpdateAccountRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(ctx, w, err)
		return
	}

	user, err := h.userService.UpdateAccount(ctx, userID, req.FullName, req.Email)
	if err != nil {
		response.Error(ctx, w, err)
		return
	}
	response.JSON(ctx, w, http.StatusOK, user, "account details updated successfully")
}

func (h *UserHandler) UpdateAvatar(w http.ResponseWriter, r *http.Request) {
	h.replaceImage(w, r, "avatar", h.userService.UpdateAvatar, "avatar updated successfully")
}

func (h *UserHandler) UpdateCoverImage(w http.ResponseWriter, r *http.Request) {
	h.replaceImage(w, r, "coverImage", h.userService.UpdateCoverImage, "cover image updated successfully")
}

func (h *UserHandler) replaceImage(w http.ResponseWriter, r *http.Request, field string, update imageUpdater, message string) {
	ctx := r.Context()

	userID, err := currentUser(r)
	if err != nil {
		response.Error(ctx, w, err)
		return
	}

	files, err := readMultipart(w, r, h.limits, field)
	if err != nil {
		response.Error(ctx, w, err)
		return
	}
	defer files.Cleanup()

	user, err := update(ctx, userID, files.Path(field))
	if err != nil {
		response.Error(ctx, w, err)
		return
	}
	response.JSON(ctx, w, http.StatusOK, user, message)
}

func (h *UserHandler) ChannelProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	viewer, err := currentUser(r)
	if err != nil {
		response.Error(ctx, w, err)
		return
	}

	profile, err := h.userService.ChannelProfile(ctx, chi.URLParam(r, "username"), viewer)
	if err != nil {
		response.Error(ctx, w, err)
		return
	}
	response.JSON(ctx, w, http.StatusOK, profile, "channel profile fetched successfully")
}

func (h *UserHandler) WatchHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, err := currentUser(r)
	if err != nil {
		response.Error(ctx, w, err)
		return
	}

	history, err := h.userService.WatchHistory(ctx, userID)
	if err != nil {
		response.Error(ctx, w, err)
		return
	}
	response.JSON(ctx, w, http.StatusOK, history, "watch history fetched successfully")
}
