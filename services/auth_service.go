package services

import (
	"context"
	"errors"
	"time"

	"github.com/upb/healthedu-backend/models"
	"github.com/upb/healthedu-backend/repositories"
	"go.uber.org/zap"
)

// PasswordHasher hashes and verifies user passwords
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// TokenIssuer issues credential tokens for authenticated users
type TokenIssuer interface {
	IssueToken(user *models.User) (token string, expiresAt time.Time, err error)
}

// LoginResult is returned on successful login
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      *models.User
}

// AuthService verifies credentials and issues tokens
type AuthService struct {
	users     repositories.UserRepository
	hasher    PasswordHasher
	issuer    TokenIssuer
	dummyHash string
	logger    *zap.Logger
}

// NewAuthService creates a new auth service. A throwaway hash is computed up
// front so that logins for unknown emails cost the same as wrong passwords.
func NewAuthService(users repositories.UserRepository, hasher PasswordHasher, issuer TokenIssuer, logger *zap.Logger) (*AuthService, error) {
	dummyHash, err := hasher.Hash("not-a-real-password")
	if err != nil {
		return nil, WrapInternal("failed to prepare password hasher", err)
	}

	return &AuthService{
		users:     users,
		hasher:    hasher,
		issuer:    issuer,
		dummyHash: dummyHash,
		logger:    logger,
	}, nil
}

// Login checks email and password and issues a token.
// Unknown email and wrong password both return ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.users.GetByEmail(ctx, models.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			_ = s.hasher.Compare(s.dummyHash, password)
			s.logger.Info("login failed", zap.String("reason", "unknown email"))
			return nil, ErrInvalidCredentials
		}
		return nil, WrapInternal("failed to look up user", err)
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		s.logger.Info("login failed",
			zap.String("reason", "password mismatch"),
			zap.String("user_id", user.ID.String()),
		)
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.issuer.IssueToken(user)
	if err != nil {
		return nil, WrapInternal("failed to issue token", err)
	}

	s.logger.Info("user logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)),
	)

	return &LoginResult{Token: token, ExpiresAt: expiresAt, User: user}, nil
}
