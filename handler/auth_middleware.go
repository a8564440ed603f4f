package handler

import (
	"context"
	"go-furniture-api/common"
	"go-furniture-api/config"
	"go-furniture-api/model"
	"go-furniture-api/service"
	"net/http"
	"strings"
)

type contextKey string

const currentUserKey contextKey = "currentUser"

// CurrentUser returns the user resolved by the access-token gate. Handlers
// behind RequireAccess can rely on it being present.
func CurrentUser(r *http.Request) (*model.User, bool) {
	user, ok := r.Context().Value(currentUserKey).(*model.User)
	return user, ok
}

// AuthMiddleware gates requests on a validated, non-revoked token whose
// subject resolves to a live user.
type AuthMiddleware struct {
	auth *service.AuthService
}

func NewAuthMiddleware(auth *service.AuthService) *AuthMiddleware {
	return &AuthMiddleware{auth: auth}
}

// accessTokenFromRequest extracts the access credential: the Authorization
// header wins; the access cookie is the fallback when no usable header is
// present.
func accessTokenFromRequest(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		headerParts := strings.Split(authHeader, " ")
		if len(headerParts) == 2 && strings.ToLower(headerParts[0]) == "bearer" {
			return headerParts[1]
		}
		return ""
	}

	if name := config.AppConfig.JWT.AccessCookieName; name != "" {
		if cookie, err := r.Cookie(name); err == nil {
			return cookie.Value
		}
	}
	return ""
}

// RequireAccess validates an access-kind token and stores the resolved
// user in the request context. Every failure leaves as structured JSON
// with one of the authentication sub-codes.
func (m *AuthMiddleware) RequireAccess(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, _, appErr := m.auth.Authenticate(accessTokenFromRequest(r), model.TokenKindAccess)
		if appErr != nil {
			appErr.Send(w)
			return
		}

		ctx := context.WithValue(r.Context(), currentUserKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin rejects non-admin users. It must run behind RequireAccess.
func (m *AuthMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := CurrentUser(r)
		if !ok || !user.IsAdmin {
			err := common.NewAppError(http.StatusForbidden, common.CodeForbidden,
				"Admin role is needed for this endpoint.", nil)
			err.Send(w)
			return
		}

		next.ServeHTTP(w, r)
	})
}
