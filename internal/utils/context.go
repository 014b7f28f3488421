package utils

import "context"

type contextKey string

const (
	UserIDKey    contextKey = "user_id"
	UserEmailKey contextKey = "email"
	UserRoleKey  contextKey = "role"
	UserTypeKey  contextKey = "user_type"
)

// SetUserContext sets the authenticated user's claims into context
// (called by the auth middleware).
func SetUserContext(ctx context.Context, id uint, email, role, userType string) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, id)
	ctx = context.WithValue(ctx, UserEmailKey, email)
	ctx = context.WithValue(ctx, UserRoleKey, role)
	ctx = context.WithValue(ctx, UserTypeKey, userType)
	return ctx
}

// GetUserIDFromContext retrieves the user id safely. The second return is
// false for unauthenticated (guest) requests.
func GetUserIDFromContext(ctx context.Context) (uint, bool) {
	id, ok := ctx.Value(UserIDKey).(uint)
	return id, ok
}

func GetUserEmailFromContext(ctx context.Context) string {
	email, _ := ctx.Value(UserEmailKey).(string)
	return email
}

func GetUserRoleFromContext(ctx context.Context) string {
	role, _ := ctx.Value(UserRoleKey).(string)
	return role
}

func GetUserTypeFromContext(ctx context.Context) string {
	userType, _ := ctx.Value(UserTypeKey).(string)
	return userType
}
