package handlers

import (
	"net/http"
	"time"

	"github.com/dom/vidtube/internal/api/middleware"
	"github.com/dom/vidtube/internal/service"
)

const refreshTokenCookie = "refreshToken"

func setAuthCookies(w http.ResponseWriter, pair *service.TokenPair, accessTTL, refreshTTL time.Duration) {
	http.SetCookie(w, authCookie(middleware.AccessTokenCookie, pair.AccessToken, int(accessTTL.Seconds())))
	http.SetCookie(w, authCookie(refreshTokenCookie, pair.RefreshToken, int(refreshTTL.Seconds())))
}

func clearAuthCookies(w http.ResponseWriter) {
	http.SetCookie(w, authCookie(middleware.AccessTokenCookie, "", -1))
	http.SetCookie(w, authCookie(refreshTokenCookie, "", -1))
}

func authCookie(name, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	}
}
