package auth

import (
	"context"
	"net/http"
	"time"

	"github.com/upb/healthedu-backend/middleware"
	"github.com/upb/healthedu-backend/models"
	"github.com/upb/healthedu-backend/services"
	"github.com/upb/healthedu-backend/utils"
	"go.uber.org/zap"
)

// Authenticator verifies credentials and issues tokens
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*services.LoginResult, error)
}

// LoginRequest is the body of POST /auth/login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,max=72"`
}

// Normalize lowercases and trims the email; the password is left untouched
func (r *LoginRequest) Normalize() {
	r.Email = models.NormalizeEmail(r.Email)
}

// LoginResponse is returned on successful login
type LoginResponse struct {
	Status    string        `json:"status"`
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expires_at"`
	Data      LoginUserData `json:"data"`
}

// LoginUserData wraps the authenticated user
type LoginUserData struct {
	User *models.User `json:"user"`
}

// Handler serves the login and current-user endpoints
type Handler struct {
	authenticator Authenticator
	logger        *zap.Logger
}

// NewHandler creates a new auth handler
func NewHandler(authenticator Authenticator, logger *zap.Logger) *Handler {
	return &Handler{
		authenticator: authenticator,
		logger:        logger,
	}
}

// HandleLogin exchanges email and password for a credential token
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestIDFromContext(ctx)

	var req LoginRequest
	if err := utils.DecodeAndValidate(w, r, &req); err != nil {
		h.logger.Debug("invalid login request",
			zap.String("request_id", requestID),
			zap.Error(err))
		utils.HandleServiceError(w, err, h.logger)
		return
	}

	result, err := h.authenticator.Login(ctx, req.Email, req.Password)
	if err != nil {
		utils.HandleServiceError(w, err, h.logger.With(zap.String("request_id", requestID)))
		return
	}

	if err := utils.WriteJSON(w, http.StatusOK, LoginResponse{
		Status:    utils.StatusSuccess,
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
		Data:      LoginUserData{User: result.User},
	}); err != nil {
		h.logger.Error("failed to write response", zap.Error(err))
	}
}

// HandleMe returns the authenticated user
func (h *Handler) HandleMe(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		utils.HandleServiceError(w, services.ErrUnauthorized, h.logger)
		return
	}

	if err := utils.WriteOK(w, map[string]*models.User{"user": user}); err != nil {
		h.logger.Error("failed to write response", zap.Error(err))
	}
}
