package services

import (
	"context"
	"fmt"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/upb/healthedu-backend/config"
	"github.com/upb/healthedu-backend/models"
	"go.uber.org/zap"
)

// ContactNotifier tells site staff about a new contact submission
type ContactNotifier interface {
	NotifyContact(ctx context.Context, msg *models.ContactMessage) error
}

// NewContactNotifier returns a SendGrid notifier when an API key is configured
// and a no-op notifier otherwise
func NewContactNotifier(cfg config.NotificationConfig, logger *zap.Logger) ContactNotifier {
	if cfg.SendGridAPIKey == "" {
		logger.Info("contact notifications disabled")
		return NoopNotifier{}
	}
	return NewSendGridNotifier(sendgrid.NewSendClient(cfg.SendGridAPIKey), cfg, logger)
}

// NoopNotifier drops notifications
type NoopNotifier struct{}

// NotifyContact does nothing
func (NoopNotifier) NotifyContact(context.Context, *models.ContactMessage) error { return nil }

// mailSender is the subset of *sendgrid.Client used here
type mailSender interface {
	Send(email *mail.SGMailV3) (*rest.Response, error)
}

// SendGridNotifier emails contact submissions through SendGrid
type SendGridNotifier struct {
	client mailSender
	from   *mail.Email
	to     *mail.Email
	logger *zap.Logger
}

// NewSendGridNotifier creates a notifier sending through client
func NewSendGridNotifier(client mailSender, cfg config.NotificationConfig, logger *zap.Logger) *SendGridNotifier {
	return &SendGridNotifier{
		client: client,
		from:   mail.NewEmail(cfg.FromName, cfg.FromEmail),
		to:     mail.NewEmail("", cfg.ToEmail),
		logger: logger,
	}
}

// NotifyContact sends one email per submission with the visitor as reply-to
func (n *SendGridNotifier) NotifyContact(ctx context.Context, msg *models.ContactMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	subject := fmt.Sprintf("[Contact] %s", msg.Subject)
	plain := fmt.Sprintf("From: %s <%s>\n\n%s", msg.Name, msg.Email, msg.Message)

	email := mail.NewSingleEmail(n.from, subject, n.to, plain, "")
	email.SetReplyTo(mail.NewEmail(msg.Name, msg.Email))

	resp, err := n.client.Send(email)
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("sendgrid send: unexpected status %d", resp.StatusCode)
	}

	n.logger.Debug("contact notification sent",
		zap.String("contact_id", msg.ID.String()),
		zap.Int("status", resp.StatusCode),
	)
	return nil
}
