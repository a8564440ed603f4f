package handler

import (
	"go-furniture-api/config"
	"go-furniture-api/service"
	"net/http"
	"time"
)

// refreshCookiePath scopes the refresh cookie to the auth endpoints, so
// browsers only attach it to refresh and logout calls.
const refreshCookiePath = "/api/v1/auth"

func setRefreshCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     config.AppConfig.JWT.RefreshCookieName,
		Value:    token,
		Path:     refreshCookiePath,
		Expires:  time.Now().Add(service.RefreshTokenTTL()),
		HttpOnly: true,
		Secure:   config.AppConfig.JWT.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearRefreshCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     config.AppConfig.JWT.RefreshCookieName,
		Value:    "",
		Path:     refreshCookiePath,
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   config.AppConfig.JWT.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

// refreshTokenFromRequest pulls the refresh credential from its cookie.
// Refresh-scoped endpoints never accept the Authorization header.
func refreshTokenFromRequest(r *http.Request) string {
	cookie, err := r.Cookie(config.AppConfig.JWT.RefreshCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}
