package middleware

import (
	"net/http"
	"strings"

	"github.com/raihanuddin561/skyzonebd-sub000/internal/user"
	"github.com/raihanuddin561/skyzonebd-sub000/internal/utils"
)

// AuthMiddleware parses a bearer token (or access_token cookie) and, when
// valid, stores the user's claims in the request context. Requests without a
// valid token continue as guests; handlers that need an identity check the
// context themselves.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenStr := extractAccessToken(r)
		if tokenStr == "" {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := user.ParseJWT(tokenStr)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		ctx := utils.SetUserContext(
			r.Context(),
			claims.UserID,
			claims.Email,
			claims.Role,
			claims.UserType,
		)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAuth rejects requests that carry no authenticated user.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := utils.GetUserIDFromContext(r.Context()); !ok {
			utils.WriteJSONError(w, "authentication required", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin rejects requests whose role is outside {ADMIN, SUPER_ADMIN}.
// The role claim is re-checked here on every call; client-side gating is
// never trusted.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role := user.Role(utils.GetUserRoleFromContext(r.Context()))
		if !user.IsAdminRole(role) {
			utils.WriteJSONError(w, "admin access required", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func extractAccessToken(r *http.Request) string {
	if cookie, err := r.Cookie("access_token"); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}

	return ""
}
