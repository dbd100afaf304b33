package auth

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/blake2b"

	"github.com/frahmantamala/timeclock/internal"
	"github.com/frahmantamala/timeclock/internal/apiclient"
	"github.com/frahmantamala/timeclock/internal/core/datamodel/session"
	"github.com/frahmantamala/timeclock/internal/core/datamodel/user"
)

// Service is the main auth service with dependencies
type Service struct {
	repo    RepositoryAPI
	api     UpstreamAPI
	decoder *TokenDecoder
	ttl     time.Duration
	now     func() time.Time
	logger  *slog.Logger
}

func NewService(repo RepositoryAPI, api UpstreamAPI, cfg internal.SecurityConfig, logger *slog.Logger) *Service {
	ttl := cfg.SessionTTL
	if ttl <= 0 {
		ttl = internal.DefaultSessionTTL
	}
	return &Service{
		repo:    repo,
		api:     api,
		decoder: NewTokenDecoder(cfg.JWTSecret),
		ttl:     ttl,
		now:     time.Now,
		logger:  logger,
	}
}

// WithClock overrides the time source, for tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Digest is what gets stored for a cookie value.
func Digest(sessionID string) string {
	sum := blake2b.Sum256([]byte(sessionID))
	return hex.EncodeToString(sum[:])
}

// Login authenticates against the backend and opens a session. The returned id goes in the cookie.
func (s *Service) Login(ctx context.Context, username, password string) (string, *internal.Principal, error) {
	if err := (LoginForm{Username: username, Password: password}).Validate(); err != nil {
		return "", nil, err
	}

	token, err := s.api.Login(ctx, username, password)
	if err != nil {
		return "", nil, err
	}
	if token == nil || token.AccessToken == "" {
		s.logger.Warn("login response without access token", "username", username)
		return "", nil, internal.ErrMissingAccessToken
	}

	claims, err := s.decoder.Decode(token.AccessToken)
	if err != nil {
		return "", nil, err
	}

	now := s.now()
	expiresAt := now.Add(s.ttl)
	if claims.ExpiresAt != nil {
		if !claims.ExpiresAt.After(now) {
			return "", nil, internal.ErrSessionExpired
		}
		if claims.ExpiresAt.Time.Before(expiresAt) {
			expiresAt = claims.ExpiresAt.Time
		}
	}

	profile, err := s.api.GetUser(apiclient.WithToken(ctx, token.AccessToken), claims.Subject)
	if err != nil {
		return "", nil, fmt.Errorf("failed to load profile: %w", err)
	}

	role := user.Role(claims.Role)
	if profile.Role.Valid() {
		role = profile.Role
	}

	snapshot, err := json.Marshal(profile)
	if err != nil {
		return "", nil, internal.NewInternalError("failed to encode profile", err)
	}

	sessionID := uuid.NewString()
	row := &session.Session{
		ID:          Digest(sessionID),
		AccessToken: token.AccessToken,
		Subject:     claims.Subject,
		Role:        string(role),
		Profile:     string(snapshot),
		ExpiresAt:   expiresAt,
		LastSeenAt:  now,
	}
	if err := s.repo.Create(ctx, row); err != nil {
		return "", nil, internal.NewInternalError("failed to store session", err)
	}

	s.logger.Info("session opened", "user_id", claims.Subject, "role", role, "expires_at", expiresAt)
	return sessionID, toPrincipal(row, profile), nil
}

// Load resolves a cookie value. Expired sessions are deleted and reported as ErrSessionExpired.
func (s *Service) Load(ctx context.Context, sessionID string) (*internal.Principal, error) {
	if sessionID == "" {
		return nil, internal.ErrSessionNotFound
	}

	row, err := s.repo.Get(ctx, Digest(sessionID))
	if err != nil {
		return nil, err
	}

	if !s.now().Before(row.ExpiresAt) {
		if err := s.repo.Delete(ctx, row.ID); err != nil {
			s.logger.Warn("failed to delete expired session", "error", err)
		}
		return nil, internal.ErrSessionExpired
	}

	var profile *user.User
	if row.Profile != "" {
		profile = &user.User{}
		if err := json.Unmarshal([]byte(row.Profile), profile); err != nil {
			s.logger.Warn("discarding unreadable profile snapshot", "user_id", row.Subject, "error", err)
			profile = nil
		}
	}
	return toPrincipal(row, profile), nil
}

func (s *Service) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := s.repo.Delete(ctx, Digest(sessionID)); err != nil && !errors.Is(err, internal.ErrSessionNotFound) {
		return err
	}
	return nil
}

// UpdateUser patches a user. The cached profile is refreshed only when it is the caller's own.
func (s *Service) UpdateUser(ctx context.Context, p *internal.Principal, userID string, update user.Update) (*user.User, error) {
	updated, err := s.api.UpdateUser(apiclient.WithToken(ctx, p.Token), userID, update)
	if err != nil {
		return nil, err
	}

	if userID == p.UserID && updated != nil {
		snapshot, err := json.Marshal(updated)
		if err != nil {
			return updated, internal.NewInternalError("failed to encode profile", err)
		}
		if err := s.repo.UpdateProfile(ctx, p.SessionID, string(snapshot), s.now()); err != nil {
			s.logger.Warn("failed to refresh cached profile", "user_id", userID, "error", err)
		}
		p.Profile = updated
	}
	return updated, nil
}

// DeleteUser removes a user upstream. Deleting yourself also ends your session.
func (s *Service) DeleteUser(ctx context.Context, p *internal.Principal, userID string) error {
	if err := s.api.DeleteUser(apiclient.WithToken(ctx, p.Token), userID); err != nil {
		return err
	}
	if userID == p.UserID {
		return s.repo.Delete(ctx, p.SessionID)
	}
	return nil
}

func (s *Service) PurgeExpired(ctx context.Context) (int64, error) {
	n, err := s.repo.DeleteExpired(ctx, s.now())
	if err != nil {
		return 0, fmt.Errorf("failed to purge sessions: %w", err)
	}
	return n, nil
}

func toPrincipal(row *session.Session, profile *user.User) *internal.Principal {
	return &internal.Principal{
		SessionID: row.ID,
		Token:     row.AccessToken,
		UserID:    row.Subject,
		Role:      user.Role(row.Role),
		ExpiresAt: row.ExpiresAt,
		Profile:   profile,
	}
}
