package internal

import (
	"context"
	"time"

	"github.com/frahmantamala/timeclock/internal/core/datamodel/user"
)

type ctxKey string

const (
	ContextUserKey      ctxKey = "userID"
	ContextPrincipalKey ctxKey = "principal"
)

// Principal is the signed-in user behind a request.
type Principal struct {
	// SessionID is the stored digest, not the cookie value.
	SessionID string
	Token     string
	UserID    string
	Role      user.Role
	ExpiresAt time.Time
	Profile   *user.User
}

func (p *Principal) IsHR() bool {
	return p != nil && p.Role == user.RoleHR
}

func (p *Principal) DisplayName() string {
	if p == nil {
		return ""
	}
	if p.Profile != nil {
		return p.Profile.DisplayName()
	}
	return p.UserID
}

func ContextWithPrincipal(ctx context.Context, p *Principal) context.Context {
	ctx = context.WithValue(ctx, ContextPrincipalKey, p)
	return ContextWithUserID(ctx, p.UserID)
}

func PrincipalFromContext(ctx context.Context) (*Principal, bool) {
	if ctx == nil {
		return nil, false
	}
	p, ok := ctx.Value(ContextPrincipalKey).(*Principal)
	return p, ok && p != nil
}

func UserIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if userID, ok := ctx.Value(ContextUserKey).(string); ok {
		return userID
	}
	return ""
}

func ContextWithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, ContextUserKey, userID)
}

// WithTimeout returns a context with timeout, defaulting to 5 seconds if duration is zero or negative.
func WithTimeout(ctx context.Context, duration time.Duration) (context.Context, context.CancelFunc) {
	if duration <= 0 {
		duration = 5 * time.Second
	}
	return context.WithTimeout(ctx, duration)
}
