package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/upb/healthedu-backend/models"
	"github.com/upb/healthedu-backend/repositories"
	"github.com/upb/healthedu-backend/services"
	"github.com/upb/healthedu-backend/utils"
	"go.uber.org/zap"
)

// TokenValidator defines the interface for validating credential tokens
type TokenValidator interface {
	// ValidateToken validates a token and returns its claims
	ValidateToken(ctx context.Context, token string) (*Claims, error)
}

// UserLookup resolves the subject of a token to a stored user
type UserLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// AuthMiddleware provides authentication middleware functionality
type AuthMiddleware struct {
	validator TokenValidator
	users     UserLookup
	logger    *zap.Logger
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(validator TokenValidator, users UserLookup, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		validator: validator,
		users:     users,
		logger:    logger,
	}
}

// RequireAuth is a middleware that requires a valid bearer token whose subject still exists
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		requestID := GetRequestIDFromContext(ctx)

		token := extractBearerToken(r)
		if token == "" {
			m.logger.Warn("missing token",
				zap.String("request_id", requestID))
			utils.HandleServiceError(w, services.ErrUnauthorized, m.logger)
			return
		}

		claims, err := m.validator.ValidateToken(ctx, token)
		if err != nil {
			m.logger.Warn("token validation failed",
				zap.String("request_id", requestID),
				zap.Error(err))
			if !services.IsUnauthorizedError(err) {
				err = services.NewDomainError(services.ErrorTypeUnauthorized, services.ErrInvalidToken.Message, err)
			}
			utils.HandleServiceError(w, err, m.logger)
			return
		}

		user, err := m.users.GetByID(ctx, claims.UserID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				m.logger.Warn("token subject no longer exists",
					zap.String("request_id", requestID),
					zap.String("user_id", claims.UserID.String()))
				utils.HandleServiceError(w, services.ErrAccountGone, m.logger)
				return
			}
			utils.HandleServiceError(w, services.WrapInternal("failed to resolve user", err), m.logger)
			return
		}

		ctx = WithClaims(ctx, claims)
		ctx = WithUser(ctx, user)

		m.logger.Debug("authentication successful",
			zap.String("request_id", requestID),
			zap.String("user_id", user.ID.String()),
			zap.String("role", string(user.Role)))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole is a middleware that admits only users whose role is in roles.
// It must run after RequireAuth; the stored role is checked, not the token claim.
func (m *AuthMiddleware) RequireRole(roles ...models.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			requestID := GetRequestIDFromContext(ctx)

			user := GetUserFromContext(ctx)
			if user == nil {
				m.logger.Error("user not found in context",
					zap.String("request_id", requestID))
				utils.HandleServiceError(w, services.ErrUnauthorized, m.logger)
				return
			}

			if !user.HasRole(roles...) {
				m.logger.Warn("insufficient permissions",
					zap.String("request_id", requestID),
					zap.String("user_id", user.ID.String()),
					zap.String("role", string(user.Role)))
				utils.HandleServiceError(w, services.ErrForbidden, m.logger)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// extractBearerToken extracts the Bearer token from the Authorization header
func extractBearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}
