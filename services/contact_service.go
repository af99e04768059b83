package services

import (
	"context"
	"html"
	"strings"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/upb/healthedu-backend/models"
	"github.com/upb/healthedu-backend/repositories"
	"go.uber.org/zap"
)

// ContactInput is an already validated contact form submission
type ContactInput struct {
	Name    string
	Email   string
	Subject string
	Message string
}

// ContactService stores contact submissions and notifies staff
type ContactService struct {
	contacts repositories.ContactRepository
	notifier ContactNotifier
	policy   *bluemonday.Policy
	logger   *zap.Logger
}

// NewContactService creates a new contact service
func NewContactService(contacts repositories.ContactRepository, notifier ContactNotifier, logger *zap.Logger) *ContactService {
	if notifier == nil {
		notifier = NoopNotifier{}
	}
	return &ContactService{
		contacts: contacts,
		notifier: notifier,
		policy:   bluemonday.StrictPolicy(),
		logger:   logger,
	}
}

// Submit strips markup from the submission, persists it and sends a
// notification. Notification failures are logged and do not fail the call.
func (s *ContactService) Submit(ctx context.Context, in ContactInput) (*models.ContactMessage, error) {
	msg := models.NewContactMessage(
		s.plainText(in.Name),
		in.Email,
		s.plainText(in.Subject),
		s.plainText(in.Message),
	)

	empty := map[string]string{}
	if msg.Name == "" {
		empty["name"] = "name is required"
	}
	if msg.Subject == "" {
		empty["subject"] = "subject is required"
	}
	if msg.Message == "" {
		empty["message"] = "message is required"
	}
	if len(empty) > 0 {
		return nil, NewDomainError(ErrorTypeValidation, "Validation failed", nil).WithDetail("fields", empty)
	}

	if err := s.contacts.Create(ctx, msg); err != nil {
		return nil, FromRepositoryError(err, nil)
	}

	s.logger.Info("contact message received", zap.String("contact_id", msg.ID.String()))

	if err := s.notifier.NotifyContact(ctx, msg); err != nil {
		s.logger.Warn("failed to send contact notification",
			zap.String("contact_id", msg.ID.String()),
			zap.Error(err),
		)
	}

	return msg, nil
}

// List returns all submissions, newest first
func (s *ContactService) List(ctx context.Context) ([]*models.ContactMessage, error) {
	messages, err := s.contacts.List(ctx)
	if err != nil {
		return nil, FromRepositoryError(err, nil)
	}
	return messages, nil
}

// Get returns one submission
func (s *ContactService) Get(ctx context.Context, id uuid.UUID) (*models.ContactMessage, error) {
	msg, err := s.contacts.GetByID(ctx, id)
	if err != nil {
		return nil, FromRepositoryError(err, ErrContactNotFound)
	}
	return msg, nil
}

// plainText removes all markup and leaves readable text
func (s *ContactService) plainText(v string) string {
	return strings.TrimSpace(html.UnescapeString(s.policy.Sanitize(v)))
}
