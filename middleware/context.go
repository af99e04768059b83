package middleware

import (
	"context"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/upb/healthedu-backend/models"
)

// Context key type to avoid collisions
type contextKey string

const (
	// ClaimsKey is the context key for verified token claims
	ClaimsKey contextKey = "claims"

	// UserKey is the context key for the resolved user
	UserKey contextKey = "user"
)

// Claims are the verified contents of a credential token
type Claims struct {
	UserID    uuid.UUID
	Role      models.UserRole
	Issuer    string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// GetRequestIDFromContext retrieves the request ID set by chi's RequestID middleware
func GetRequestIDFromContext(ctx context.Context) string {
	return chimw.GetReqID(ctx)
}

// GetClaimsFromContext retrieves token claims from context
func GetClaimsFromContext(ctx context.Context) *Claims {
	if val := ctx.Value(ClaimsKey); val != nil {
		if claims, ok := val.(*Claims); ok {
			return claims
		}
	}
	return nil
}

// WithClaims adds token claims to the context
func WithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, ClaimsKey, claims)
}

// GetUserFromContext retrieves the authenticated user from context
func GetUserFromContext(ctx context.Context) *models.User {
	if val := ctx.Value(UserKey); val != nil {
		if user, ok := val.(*models.User); ok {
			return user
		}
	}
	return nil
}

// WithUser adds the authenticated user to the context
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, UserKey, user)
}
