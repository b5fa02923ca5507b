package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/dom/vidtube/internal/api/response"
	"github.com/dom/vidtube/internal/config"
	"github.com/dom/vidtube/internal/domain"
	"github.com/dom/vidtube/internal/service"
)

type AuthHandler struct {
	authService *service.AuthService
	cfg         *config.Config
	limits      UploadLimits
}

func NewAuthHandler(authService *service.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cfg:         cfg,
		limits:      UploadLimits{Dir: cfg.UploadDir, MaxBytes: cfg.MaxUploadBytes},
	}
}

type LoginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	User         *domain.User `json:"user"`
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

// Register handles POST /users/register (multipart: username, email, fullName,
// password, avatar, optional coverImage).
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	files, err := readMultipart(w, r, h.limits, "avatar", "coverImage")
	if err != nil {
		response.Error(ctx, w, err)
		return
	}
	defer files.Cleanup()

	user, err := h.authService.Register(ctx, service.RegisterInput{
		Username:       r.FormValue("username"),
		Email:          r.FormValue("email"),
		FullName:       r.FormValue("fullName"),
		Password:       r.FormValue("password"),
		AvatarPath:     files.Path("avatar"),
		CoverImagePath: files.Path("coverImage"),
	})
	if err != nil {
		response.Error(ctx, w, err)
		return
	}

	response.JSON(ctx, w, http.StatusCreated, user, "user registered successfully")
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(ctx, w, err)
		return
	}

	result, err := h.authService.Login(ctx, service.LoginInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		response.Error(ctx, w, err)
		return
	}

	setAuthCookies(w, result.Tokens, h.cfg.AccessTokenExpiry, h.cfg.RefreshTokenExpiry)
	response.JSON(ctx, w, http.StatusOK, LoginResponse{
		User:         result.User,
		AccessToken:  result.Tokens.AccessToken,
		RefreshToken: result.Tokens.RefreshToken,
	}, "user logged in successfully")
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, err := currentUser(r)
	if err != nil {
		response.Error(ctx, w, err)
		return
	}

	if err := h.authService.Logout(ctx, userID); err != nil {
		response.Error(ctx, w, err)
		return
	}

	clearAuthCookies(w)
	response.JSON(ctx, w, http.StatusOK, struct{}{}, "user logged out successfully")
}

// RefreshToken reads the refresh token from the refreshToken cookie, falling
// back to the JSON body.
func (h *AuthHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	presented := ""
	if c, err := r.Cookie(refreshTokenCookie); err == nil {
		presented = c.Value
	}
	if presented == "" {
		var req RefreshRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			response.Error(ctx, w, domain.Validation("invalid request body"))
			return
		}
		presented = req.RefreshToken
	}

	pair, err := h.authService.Refresh(ctx, presented)
	if err != nil {
		response.Error(ctx, w, err)
		return
	}

	setAuthCookies(w, pair, h.cfg.AccessTokenExpiry, h.cfg.RefreshTokenExpiry)
	response.JSON(ctx, w, http.StatusOK, pair, "access token refreshed successfully")
}

func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, err := currentUser(r)
	if err != nil {
		response.Error(ctx, w, err)
		return
	}

	var req ChangePasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(ctx, w, err)
		return
	}

	if err := h.authService.ChangePassword(ctx, userID, req.OldPassword, req.NewPassword); err != nil {
		response.Error(ctx, w, err)
		return
	}

	response.JSON(ctx, w, http.StatusOK, struct{}{}, "password changed successfully")
}
