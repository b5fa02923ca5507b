package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/dom/vidtube/internal/auth"
	"github.com/dom/vidtube/internal/config"
	"github.com/dom/vidtube/internal/domain"
	"github.com/dom/vidtube/internal/logging"
	"github.com/dom/vidtube/internal/media"
	"github.com/dom/vidtube/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrInvalidCredentials = domain.Auth("invalid credentials")
	ErrUnauthorized       = domain.Auth("unauthorized request")
	ErrInvalidAccess      = domain.Auth("invalid access token")
	ErrInvalidRefresh     = domain.Auth("invalid refresh token")
	ErrStaleRefresh       = domain.Auth("refresh token is expired or invalid")
	ErrUserExists         = domain.Conflict("user with email or username already exists")
	ErrInvalidOldPassword = domain.Validation("invalid old password")
)

type AuthService struct {
	users  repository.UserRepository
	media  media.Store
	hasher *auth.Hasher
	signer *auth.Signer

	dummyOnce sync.Once
	dummyHash string
}

func NewAuthService(users repository.UserRepository, store media.Store, cfg *config.Config) *AuthService {
	return &AuthService{
		users:  users,
		media:  store,
		hasher: auth.NewHasher(cfg.BcryptCost),
		signer: auth.NewSigner(auth.TokenConfig{
			AccessSecret:  cfg.AccessTokenSecret,
			AccessExpiry:  cfg.AccessTokenExpiry,
			RefreshSecret: cfg.RefreshTokenSecret,
			RefreshExpiry: cfg.RefreshTokenExpiry,
		}),
	}
}

// Signer exposes the token signer so tests can mint tokens with a fixed clock.
func (s *AuthService) Signer() *auth.Signer {
	return s.signer
}

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type RegisterInput struct {
	Username       string
	Email          string
	FullName       string
	Password       string
	AvatarPath     string
	CoverImagePath string
}

type LoginInput struct {
	Username string
	Email    string
	Password string
}

type LoginResult struct {
	User   *domain.User
	Tokens *TokenPair
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	if blank(in.Username, in.Email, in.FullName, in.Password) {
		return nil, domain.Validation("all fields are required")
	}
	username := strings.ToLower(strings.TrimSpace(in.Username))
	email, err := normalizeEmail(in.Email)
	if err != nil {
		return nil, err
	}

	_, err = s.users.GetByUsernameOrEmail(ctx, username, email)
	switch {
	case err == nil:
		return nil, ErrUserExists
	case !errors.Is(err, repository.ErrNotFound):
		return nil, fromStore(err, "")
	}

	if strings.TrimSpace(in.AvatarPath) == "" {
		return nil, domain.Validation("avatar file is required")
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, domain.Internal("hash password", err)
	}

	avatar, err := s.media.Store(ctx, in.AvatarPath)
	if err != nil {
		return nil, domain.Internal("avatar upload failed", err)
	}

	user := &domain.User{
		Username:       username,
		Email:          email,
		FullName:       strings.TrimSpace(in.FullName),
		PasswordHash:   hash,
		Avatar:         avatar.URL,
		AvatarPublicID: avatar.PublicID,
	}

	if strings.TrimSpace(in.CoverImagePath) != "" {
		cover, err := s.media.Store(ctx, in.CoverImagePath)
		if err != nil {
			return nil, domain.Internal("cover image upload failed", err)
		}
		user.CoverImage = cover.URL
		user.CoverImagePublicID = cover.PublicID
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUserExists
		}
		return nil, fromStore(err, "")
	}

	logging.FromContext(ctx).Info("user registered", slog.String("user_id", user.ID.Hex()))
	return user, nil
}

// Login checks credentials and starts a session. A missing user and a wrong
// password both cost one bcrypt comparison and return ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	username := strings.ToLower(strings.TrimSpace(in.Username))
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if username == "" && email == "" {
		return nil, domain.Validation("username or email is required")
	}
	if in.Password == "" {
		return nil, domain.Validation("password is required")
	}

	user, err := s.users.GetByUsernameOrEmail(ctx, username, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			_, _ = s.hasher.Verify(in.Password, s.dummy())
			return nil, ErrInvalidCredentials
		}
		return nil, fromStore(err, "")
	}

	ok, err := s.hasher.Verify(in.Password, user.PasswordHash)
	if err != nil {
		return nil, domain.Internal("verify password", err)
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}

	pair, err := s.issueFor(ctx, user)
	if err != nil {
		return nil, err
	}
	return &LoginResult{User: user, Tokens: pair}, nil
}

func (s *AuthService) dummy() string {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = s.hasher.Hash("vidtube-dummy-password")
	})
	return s.dummyHash
}

// IssuePair signs a fresh access/refresh pair and makes the refresh token the
// only one accepted for the user.
func (s *AuthService) IssuePair(ctx context.Context, userID primitive.ObjectID) (*TokenPair, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, domain.Internal("load user for token issue", err)
	}
	return s.issueFor(ctx, user)
}

func (s *AuthService) issueFor(ctx context.Context, user *domain.User) (*TokenPair, error) {
	pair, err := s.sign(user)
	if err != nil {
		return nil, err
	}
	if err := s.users.SetRefreshToken(ctx, user.ID, pair.RefreshToken); err != nil {
		return nil, domain.Internal("store refresh token", err)
	}
	return pair, nil
}

func (s *AuthService) sign(user *domain.User) (*TokenPair, error) {
	access, err := s.signer.SignAccess(auth.Identity{
		UserID:   user.ID.Hex(),
		Email:    user.Email,
		Username: user.Username,
		FullName: user.FullName,
	})
	if err != nil {
		return nil, domain.Internal("sign access token", err)
	}
	refresh, err := s.signer.SignRefresh(user.ID.Hex())
	if err != nil {
		return nil, domain.Internal("sign refresh token", err)
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *AuthService) VerifyAccess(token string) (*auth.AccessClaims, error) {
	if strings.TrimSpace(token) == "" {
		return nil, ErrUnauthorized
	}
	claims, err := s.signer.ParseAccess(token)
	if err != nil {
		return nil, ErrInvalidAccess
	}
	return claims, nil
}

// Refresh exchanges the current refresh token for a new pair. The stored token
// is swapped atomically, so a token can be redeemed at most once.
func (s *AuthService) Refresh(ctx context.Context, presented string) (*TokenPair, error) {
	if strings.TrimSpace(presented) == "" {
		return nil, ErrUnauthorized
	}

	claims, err := s.signer.ParseRefresh(presented)
	if err != nil {
		return nil, ErrInvalidRefresh
	}
	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return nil, ErrInvalidRefresh
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidRefresh
		}
		return nil, fromStore(err, "")
	}
	if user.RefreshToken == "" || user.RefreshToken != presented {
		return nil, ErrStaleRefresh
	}

	pair, err := s.sign(user)
	if err != nil {
		return nil, err
	}
	swapped, err := s.users.SwapRefreshToken(ctx, user.ID, presented, pair.RefreshToken)
	if err != nil {
		return nil, domain.Internal("rotate refresh token", err)
	}
	if !swapped {
		return nil, ErrStaleRefresh
	}
	return pair, nil
}

// Revoke clears the stored refresh token; later refreshes fail.
func (s *AuthService) Revoke(ctx context.Context, userID primitive.ObjectID) error {
	if err := s.users.ClearRefreshToken(ctx, userID); err != nil {
		return domain.Internal("revoke refresh token", err)
	}
	return nil
}

func (s *AuthService) Logout(ctx context.Context, userID primitive.ObjectID) error {
	return s.Revoke(ctx, userID)
}

func (s *AuthService) ChangePassword(ctx context.Context, userID primitive.ObjectID, oldPassword, newPassword string) error {
	if blank(oldPassword, newPassword) {
		return domain.Validation("all fields are required")
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return fromStore(err, "user not found")
	}

	ok, err := s.hasher.Verify(oldPassword, user.PasswordHash)
	if err != nil {
		return domain.Internal("verify password", err)
	}
	if !ok {
		return ErrInvalidOldPassword
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return domain.Internal("hash password", err)
	}
	return fromStore(s.users.UpdatePassword(ctx, userID, hash), "user not found")
}
