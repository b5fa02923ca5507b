package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/dom/vidtube/internal/api/response"
	"github.com/dom/vidtube/internal/auth"
	"github.com/dom/vidtube/internal/logging"
	"github.com/dom/vidtube/internal/service"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type contextKey string

const (
	UserIDKey contextKey = "userID"
	ClaimsKey contextKey = "claims"

	AccessTokenCookie = "accessToken"
)

// Auth accepts an access token from the accessToken cookie or an
// "Authorization: Bearer" header.
func Auth(authService *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			logger := logging.FromContext(ctx)

			claims, err := authService.VerifyAccess(accessToken(r))
			if err != nil {
				logger.Warn("access token rejected", "error", err)
				response.Error(ctx, w, err)
				return
			}

			userID, err := primitive.ObjectIDFromHex(claims.UserID)
			if err != nil {
				logger.Warn("access token carries malformed user id", "user_id", claims.UserID)
				response.Error(ctx, w, service.ErrInvalidAccess)
				return
			}

			ctx = context.WithValue(ctx, UserIDKey, userID)
			ctx = context.WithValue(ctx, ClaimsKey, claims)
			ctx = logging.WithLogger(ctx, logger.With("user_id", claims.UserID))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func accessToken(r *http.Request) string {
	if c, err := r.Cookie(AccessTokenCookie); err == nil && c.Value != "" {
		return c.Value
	}
	header := r.Header.Get("Authorization")
	if token, ok := strings.CutPrefix(header, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}

func GetUserID(ctx context.Context) (primitive.ObjectID, bool) {
	userID, ok := ctx.Value(UserIDKey).(primitive.ObjectID)
	return userID, ok
}

func GetClaims(ctx context.Context) (*auth.AccessClaims, bool) {
	claims, ok := ctx.Value(ClaimsKey).(*auth.AccessClaims)
	return claims, ok
}
