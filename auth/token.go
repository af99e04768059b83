package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/upb/healthedu-backend/config"
	"github.com/upb/healthedu-backend/middleware"
	"github.com/upb/healthedu-backend/models"
	"github.com/upb/healthedu-backend/services"
)

// tokenClaims is the JWT payload carried by a credential token
type tokenClaims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// TokenManager issues and verifies HS256 credential tokens
type TokenManager struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenManager creates a token manager from auth configuration
func NewTokenManager(cfg config.AuthConfig) *TokenManager {
	return &TokenManager{
		secret: []byte(cfg.JWTSecret),
		issuer: cfg.JWTIssuer,
		ttl:    cfg.TokenTTL,
		now:    time.Now,
	}
}

// IssueToken signs a token for user that expires after the configured TTL
func (m *TokenManager) IssueToken(user *models.User) (string, time.Time, error) {
	now := m.now().UTC()
	expiresAt := now.Add(m.ttl)

	claims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Role: string(user.Role),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, expiresAt, nil
}

// ValidateToken verifies signature, issuer and expiry and returns the parsed claims
func (m *TokenManager) ValidateToken(_ context.Context, tokenString string) (*middleware.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &tokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(m.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, services.NewDomainError(services.ErrorTypeUnauthorized, services.ErrTokenExpired.Message, err)
		}
		return nil, services.NewDomainError(services.ErrorTypeUnauthorized, services.ErrInvalidToken.Message, err)
	}

	claims, ok := token.Claims.(*tokenClaims)
	if !ok || !token.Valid {
		return nil, services.ErrInvalidToken
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, services.NewDomainError(services.ErrorTypeUnauthorized, services.ErrInvalidToken.Message,
			fmt.Errorf("invalid sub UUID: %w", err))
	}

	parsed := &middleware.Claims{
		UserID:    userID,
		Role:      models.UserRole(claims.Role),
		Issuer:    claims.Issuer,
		ExpiresAt: claims.ExpiresAt.Time,
	}
	if claims.IssuedAt != nil {
		parsed.IssuedAt = claims.IssuedAt.Time
	}

	return parsed, nil
}
