package auth

import (
	"context"
	"time"

	"github.com/frahmantamala/timeclock/internal"
	"github.com/frahmantamala/timeclock/internal/core/datamodel/session"
	"github.com/frahmantamala/timeclock/internal/core/datamodel/user"
	"github.com/golang-jwt/jwt/v5"
)

// ServiceAPI is the session layer used by handlers, middleware and workers.
type ServiceAPI interface {
	Login(ctx context.Context, username, password string) (sessionID string, principal *internal.Principal, err error)
	Load(ctx context.Context, sessionID string) (*internal.Principal, error)
	Logout(ctx context.Context, sessionID string) error
	UpdateUser(ctx context.Context, p *internal.Principal, userID string, update user.Update) (*user.User, error)
	DeleteUser(ctx context.Context, p *internal.Principal, userID string) error
	PurgeExpired(ctx context.Context) (int64, error)
}

// RepositoryAPI persists sessions. Get returns internal.ErrSessionNotFound for unknown ids.
type RepositoryAPI interface {
	Create(ctx context.Context, s *session.Session) error
	Get(ctx context.Context, id string) (*session.Session, error)
	UpdateProfile(ctx context.Context, id string, profile string, seenAt time.Time) error
	Delete(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// UpstreamAPI is the slice of the REST client the session layer needs.
type UpstreamAPI interface {
	Login(ctx context.Context, username, password string) (*user.Token, error)
	GetUser(ctx context.Context, id string) (*user.User, error)
	UpdateUser(ctx context.Context, id string, payload user.Update) (*user.User, error)
	DeleteUser(ctx context.Context, id string) error
}

// Claims is the payload the backend puts in its access tokens.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}
