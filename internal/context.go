package internal

import (
	"context"
	"time"
)

type ctxKey string

const ContextUserKey ctxKey = "sessionUser"

// SessionUser is the authenticated identity carried on the request context.
// AcademyID is the tenant boundary every non-super-admin query is pinned to.
type SessionUser struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	AcademyID int64  `json:"academy_id"`
}

func UserFromContext(ctx context.Context) (*SessionUser, bool) {
	if ctx == nil {
		return nil, false
	}
	user, ok := ctx.Value(ContextUserKey).(*SessionUser)
	return user, ok
}

func ContextWithUser(ctx context.Context, user *SessionUser) context.Context {
	return context.WithValue(ctx, ContextUserKey, user)
}

// WithTimeout returns a context with timeout, defaulting to 5 seconds if duration is zero or negative.
func WithTimeout(ctx context.Context, duration time.Duration) (context.Context, context.CancelFunc) {
	if duration <= 0 {
		duration = 5 * time.Second
	}
	return context.WithTimeout(ctx, duration)
}
