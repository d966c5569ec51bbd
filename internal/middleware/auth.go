package middleware

import (
	"context"
	"net/http"
)

type contextKey string

const (
	UserIDKey contextKey = "user_id"
	TokenKey  contextKey = "session_token"
)

// SessionCookie carries the login session between requests.
const SessionCookie = "session_token"

// SessionResolver resolves a session token to a user id.
type SessionResolver interface {
	UserID(token string) (int64, bool)
}

// SessionAuth attaches the logged-in user (if any) to the request context.
// Unauthenticated requests fall back to the demo user id 1, matching the
// original backend's behavior, so auth never blocks the analyze path.
func SessionAuth(sessions SessionResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := int64(1)
			if ck, err := r.Cookie(SessionCookie); err == nil {
				if id, ok := sessions.UserID(ck.Value); ok {
					userID = id
					ctx := context.WithValue(r.Context(), TokenKey, ck.Value)
					r = r.WithContext(ctx)
				}
			}
			ctx := context.WithValue(r.Context(), UserIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserIDFromContext extracts the resolved user id from context
func GetUserIDFromContext(ctx context.Context) int64 {
	if id, ok := ctx.Value(UserIDKey).(int64); ok {
		return id
	}
	return 1
}
