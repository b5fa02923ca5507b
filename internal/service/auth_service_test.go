package service_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/dom/vidtube/internal/domain"
	"github.com/dom/vidtube/internal/service"
	"github.com/dom/vidtube/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newAuthService(t *testing.T) (*service.AuthService, *testutil.MemoryUserRepo, *testutil.FakeMediaStore) {
	t.Helper()
	users := testutil.NewMemoryUserRepo()
	store := testutil.NewFakeMediaStore()
	return service.NewAuthService(users, store, testutil.TestConfig()), users, store
}

func tempUpload(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte("image-bytes"), 0o600))
	return path
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		input    func(t *testing.T) service.RegisterInput
		setup    func(t *testing.T, users *testutil.MemoryUserRepo)
		wantKind domain.Kind
		wantErr  bool
	}{
		{
			name: "successful registration",
			input: func(t *testing.T) service.RegisterInput {
				return service.RegisterInput{
					Username:       "  NewUser ",
					Email:          "New@Example.com",
					FullName:       "New User",
					Password:       "password123",
					AvatarPath:     tempUpload(t, "avatar.png"),
					CoverImagePath: tempUpload(t, "cover.jpg"),
				}
			},
		},
		{
			name: "missing fields",
			input: func(t *testing.T) service.RegisterInput {
				return service.RegisterInput{Username: "x", Email: "x@example.com", Password: "p"}
			},
			wantErr:  true,
			wantKind: domain.KindValidation,
		},
		{
			name: "invalid email",
			input: func(t *testing.T) service.RegisterInput {
				return service.RegisterInput{Username: "x", Email: "not-an-email", FullName: "X", Password: "p", AvatarPath: tempUpload(t, "a.png")}
			},
			wantErr:  true,
			wantKind: domain.KindValidation,
		},
		{
			name: "missing avatar",
			input: func(t *testing.T) service.RegisterInput {
				return service.RegisterInput{Username: "x", Email: "x@example.com", FullName: "X", Password: "p"}
			},
			wantErr:  true,
			wantKind: domain.KindValidation,
		},
		{
			name: "duplicate username",
			input: func(t *testing.T) service.RegisterInput {
				return service.RegisterInput{Username: "taken", Email: "other@example.com", FullName: "X", Password: "p", AvatarPath: tempUpload(t, "a.png")}
			},
			setup: func(t *testing.T, users *testutil.MemoryUserRepo) {
				testutil.NewUserBuilder().WithUsername("taken").Build(t, users)
			},
			wantErr:  true,
			wantKind: domain.KindConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authService, users, store := newAuthService(t)
			if tt.setup != nil {
				tt.setup(t, users)
			}

			in := tt.input(t)
			user, err := authService.Register(ctx, in)

			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.wantKind, domain.KindOf(err))
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "newuser", user.Username)
			assert.Equal(t, "new@example.com", user.Email)
			assert.NotEqual(t, "password123", user.PasswordHash)
			assert.True(t, store.Has(user.AvatarPublicID))
			assert.True(t, store.Has(user.CoverImagePublicID))
			assert.NoFileExists(t, in.AvatarPath)

			stored, err := users.GetByID(ctx, user.ID)
			require.NoError(t, err)
			assert.Empty(t, stored.RefreshToken)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	authService, users, _ := newAuthService(t)

	user, rawPassword := testutil.NewUserBuilder().
		WithUsername("loginuser").
		WithEmail("login@example.com").
		WithPassword("correctpassword").
		Build(t, users)

	tests := []struct {
		name    string
		input   service.LoginInput
		wantErr error
	}{
		{
			name:  "by username",
			input: service.LoginInput{Username: "LoginUser", Password: rawPassword},
		},
		{
			name:  "by email",
			input: service.LoginInput{Email: "login@example.com", Password: rawPassword},
		},
		{
			name:    "wrong password",
			input:   service.LoginInput{Username: user.Username, Password: "wrongpassword"},
			wantErr: service.ErrInvalidCredentials,
		},
		{
			name:    "non-existent user",
			input:   service.LoginInput{Username: "nonexistent", Password: "anypassword"},
			wantErr: service.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, users.ClearRefreshToken(ctx, user.ID))

			result, err := authService.Login(ctx, tt.input)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				stored, getErr := users.GetByID(ctx, user.ID)
				require.NoError(t, getErr)
				assert.Empty(t, stored.RefreshToken, "failed login must not store a token")
				return
			}

			require.NoError(t, err)
			assert.Equal(t, user.ID, result.User.ID)
			assert.NotEmpty(t, result.Tokens.AccessToken)
			assert.NotEmpty(t, result.Tokens.RefreshToken)

			stored, err := users.GetByID(ctx, user.ID)
			require.NoError(t, err)
			assert.Equal(t, result.Tokens.RefreshToken, stored.RefreshToken)
		})
	}

	t.Run("missing identifier", func(t *testing.T) {
		_, err := authService.Login(ctx, service.LoginInput{Password: "x"})
		assert.Equal(t, domain.KindValidation, domain.KindOf(err))
	})
}

func TestAuthService_VerifyAccess(t *testing.T) {
	ctx := context.Background()
	authService, users, _ := newAuthService(t)
	user, password := testutil.NewUserBuilder().Build(t, users)

	result, err := authService.Login(ctx, service.LoginInput{Username: user.Username, Password: password})
	require.NoError(t, err)

	claims, err := authService.VerifyAccess(result.Tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID.Hex(), claims.UserID)
	assert.Equal(t, user.Email, claims.Email)
	assert.Equal(t, user.Username, claims.Username)
	assert.Equal(t, user.FullName, claims.FullName)

	_, err = authService.VerifyAccess("")
	assert.ErrorIs(t, err, service.ErrUnauthorized)

	_, err = authService.VerifyAccess(result.Tokens.RefreshToken)
	assert.ErrorIs(t, err, service.ErrInvalidAccess)

	_, err = authService.VerifyAccess("not.a.jwt")
	assert.ErrorIs(t, err, service.ErrInvalidAccess)
}

func TestAuthService_Refresh(t *testing.T) {
	ctx := context.Background()

	login := func(t *testing.T) (*service.AuthService, *testutil.MemoryUserRepo, *domain.User, *service.TokenPair) {
		authService, users, _ := newAuthService(t)
		user, password := testutil.NewUserBuilder().Build(t, users)
		result, err := authService.Login(ctx, service.LoginInput{Username: user.Username, Password: password})
		require.NoError(t, err)
		return authService, users, user, result.Tokens
	}

	t.Run("rotates exactly once", func(t *testing.T) {
		authService, users, user, first := login(t)

		second, err := authService.Refresh(ctx, first.RefreshToken)
		require.NoError(t, err)
		assert.NotEqual(t, first.RefreshToken, second.RefreshToken)
		assert.NotEqual(t, first.AccessToken, second.AccessToken)

		stored, err := users.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, second.RefreshToken, stored.RefreshToken)

		_, err = authService.Refresh(ctx, first.RefreshToken)
		assert.ErrorIs(t, err, service.ErrStaleRefresh)

		_, err = authService.Refresh(ctx, second.RefreshToken)
		assert.NoError(t, err)
	})

	t.Run("latest login wins", func(t *testing.T) {
		authService, _, user, first := login(t)
		_, err := authService.IssuePair(ctx, user.ID)
		require.NoError(t, err)

		_, err = authService.Refresh(ctx, first.RefreshToken)
		assert.ErrorIs(t, err, service.ErrStaleRefresh)
	})

	t.Run("revoke then refresh fails", func(t *testing.T) {
		authService, _, user, pair := login(t)
		require.NoError(t, authService.Revoke(ctx, user.ID))

		_, err := authService.Refresh(ctx, pair.RefreshToken)
		assert.ErrorIs(t, err, service.ErrStaleRefresh)
	})

	t.Run("access token is not a refresh token", func(t *testing.T) {
		authService, _, _, pair := login(t)
		_, err := authService.Refresh(ctx, pair.AccessToken)
		assert.ErrorIs(t, err, service.ErrInvalidRefresh)
	})

	t.Run("unknown user", func(t *testing.T) {
		authService, _, _, _ := login(t)
		token, err := authService.Signer().SignRefresh(primitive.NewObjectID().Hex())
		require.NoError(t, err)

		_, err = authService.Refresh(ctx, token)
		assert.ErrorIs(t, err, service.ErrInvalidRefresh)
	})

	t.Run("empty token", func(t *testing.T) {
		authService, _, _, _ := login(t)
		_, err := authService.Refresh(ctx, "")
		assert.ErrorIs(t, err, service.ErrUnauthorized)
	})

	t.Run("concurrent refresh with the same token", func(t *testing.T) {
		authService, _, _, pair := login(t)

		const workers = 8
		var (
			wg        sync.WaitGroup
			mu        sync.Mutex
			successes int
		)
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := authService.Refresh(ctx, pair.RefreshToken)
				if err == nil {
					mu.Lock()
					successes++
					mu.Unlock()
					return
				}
				assert.ErrorIs(t, err, service.ErrStaleRefresh)
			}()
		}
		wg.Wait()

		assert.Equal(t, 1, successes)
	})
}

func TestAuthService_ChangePassword(t *testing.T) {
	ctx := context.Background()
	authService, users, _ := newAuthService(t)
	user, password := testutil.NewUserBuilder().Build(t, users)

	err := authService.ChangePassword(ctx, user.ID, "wrong", "newpassword")
	assert.ErrorIs(t, err, service.ErrInvalidOldPassword)

	err = authService.ChangePassword(ctx, user.ID, password, "")
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))

	require.NoError(t, authService.ChangePassword(ctx, user.ID, password, "newpassword"))

	_, err = authService.Login(ctx, service.LoginInput{Username: user.Username, Password: password})
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)

	_, err = authService.Login(ctx, service.LoginInput{Username: user.Username, Password: "newpassword"})
	assert.NoError(t, err)
}
