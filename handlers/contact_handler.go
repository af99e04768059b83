package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/upb/healthedu-backend/models"
	"github.com/upb/healthedu-backend/services"
	"github.com/upb/healthedu-backend/utils"
	"go.uber.org/zap"
)

// contactAcknowledgement is returned to the submitter on success
const contactAcknowledgement = "Thank you for contacting us! We will get back to you soon."

// CreateContactRequest represents a public contact form submission
type CreateContactRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,email,max=255"`
	Subject string `json:"subject" validate:"required,max=200"`
	Message string `json:"message" validate:"required,max=5000"`
}

// Normalize trims fields and lowercases the email
func (r *CreateContactRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = models.NormalizeEmail(r.Email)
	r.Subject = strings.TrimSpace(r.Subject)
	r.Message = strings.TrimSpace(r.Message)
}

// ContactService defines the contact operations the handler needs
type ContactService interface {
	Submit(ctx context.Context, in services.ContactInput) (*models.ContactMessage, error)
	List(ctx context.Context) ([]*models.ContactMessage, error)
	Get(ctx context.Context, id uuid.UUID) (*models.ContactMessage, error)
}

// ContactHandler handles contact form HTTP requests
type ContactHandler struct {
	contacts ContactService
	logger   *zap.Logger
}

// NewContactHandler creates a new ContactHandler
func NewContactHandler(contacts ContactService, logger *zap.Logger) *ContactHandler {
	return &ContactHandler{
		contacts: contacts,
		logger:   logger,
	}
}

// HandleCreate handles POST /contact
func (h *ContactHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	logger := requestLogger(h.logger, r)

	var req CreateContactRequest
	if err := utils.DecodeAndValidate(w, r, &req); err != nil {
		utils.HandleServiceError(w, err, logger)
		return
	}

	msg, err := h.contacts.Submit(r.Context(), services.ContactInput{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	})
	if err != nil {
		utils.HandleServiceError(w, err, logger)
		return
	}

	_ = utils.WriteCreated(w, contactAcknowledgement, msg)
}

// HandleList handles GET /contact
func (h *ContactHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	logger := requestLogger(h.logger, r)

	messages, err := h.contacts.List(r.Context())
	if err != nil {
		utils.HandleServiceError(w, err, logger)
		return
	}
	if messages == nil {
		messages = []*models.ContactMessage{}
	}

	_ = utils.WriteList(w, len(messages), messages)
}

// HandleGet handles GET /contact/{id}
func (h *ContactHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	logger := requestLogger(h.logger, r)

	id, err := parseID(r, services.ErrContactNotFound)
	if err != nil {
		utils.HandleServiceError(w, err, logger)
		return
	}

	msg, err := h.contacts.Get(r.Context(), id)
	if err != nil {
		utils.HandleServiceError(w, err, logger)
		return
	}

	_ = utils.WriteOK(w, msg)
}
