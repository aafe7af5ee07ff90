package service

import (
	"context"
	"crypto/subtle"

	"go.uber.org/zap"

	"kanban-board-api/internal/metrics"
	"kanban-board-api/internal/response"
	"kanban-board-api/internal/session"
)

// AuthService implements the shared-password session gate
type AuthService interface {
	// Login returns a signed session token when password matches.
	Login(ctx context.Context, password string) (string, *session.Session, error)
	Logout(ctx context.Context, token string) error
	Status(ctx context.Context, token string) bool
}

type authServiceImpl struct {
	password []byte
	sessions *session.Manager
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

// NewAuthService creates a new instance of AuthService
func NewAuthService(password string, sessions *session.Manager, m *metrics.Metrics, logger *zap.Logger) AuthService {
	return &authServiceImpl{
		password: []byte(password),
		sessions: sessions,
		metrics:  m,
		logger:   logger,
	}
}

func (s *authServiceImpl) Login(ctx context.Context, password string) (string, *session.Session, error) {
	if subtle.ConstantTimeCompare([]byte(password), s.password) != 1 {
		s.metrics.RecordLogin(metrics.LoginFailure)
		s.logger.Info("Login rejected")
		return "", nil, response.NewAppError(response.ErrCodeUnauthorized, "Invalid password", "")
	}

	token, sess, err := s.sessions.Issue(ctx)
	if err != nil {
		return "", nil, response.NewAppError(response.ErrCodeInternal, "Failed to create session", err.Error())
	}

	s.metrics.RecordLogin(metrics.LoginSuccess)
	s.logger.Info("Session issued", zap.String("session_id", sess.ID), zap.Time("expires_at", sess.ExpiresAt))
	return token, sess, nil
}

// Logout revokes the session behind token. Unknown or malformed tokens
// are already anonymous, so they are not an error.
func (s *authServiceImpl) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.sessions.Revoke(ctx, token); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to end session", err.Error())
	}
	return nil
}

func (s *authServiceImpl) Status(ctx context.Context, token string) bool {
	if token == "" {
		return false
	}
	_, err := s.sessions.Validate(ctx, token)
	if err != nil && !session.IsUnauthenticated(err) {
		s.logger.Warn("Session lookup failed", zap.Error(err))
	}
	return err == nil
}
