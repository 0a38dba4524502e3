package auth

import (
	"context"
	"errors"
	"time"
)

const (
	DefaultTTL       = 24 * 7 * time.Hour
	sessionKeyPrefix = "repforge-session||"
	tokensSetKey     = "repforge-sessions"

	// TokenHeader carries the login session token on every authenticated request.
	TokenHeader = "X-REPFORGE-TOKEN"
)

var ErrNotLoggedIn = errors.New("not logged in")

type ctxKey int

const userIDCtxKey ctxKey = 0

// SetUserID stores the authenticated user ID in the request context.
// Done by the auth middleware, domain handlers read it via UserIDFromContext.
func SetUserID(ctx context.Context, userID int) context.Context {
	return context.WithValue(ctx, userIDCtxKey, userID)
}

func UserIDFromContext(ctx context.Context) (int, bool) {
	userID, ok := ctx.Value(userIDCtxKey).(int)
	return userID, ok
}
