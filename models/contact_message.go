package models

import (
	"time"

	"github.com/google/uuid"
)

// ContactMessage is a submission from the public contact form.
// Messages are immutable once stored.
type ContactMessage struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	Subject   string    `json:"subject" db:"subject"`
	Message   string    `json:"message" db:"message"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// TableName returns the table name for the ContactMessage model
func (ContactMessage) TableName() string {
	return "contact_messages"
}

// NewContactMessage creates a new ContactMessage with a fresh ID
func NewContactMessage(name, email, subject, message string) *ContactMessage {
	return &ContactMessage{
		ID:        uuid.New(),
		Name:      name,
		Email:     NormalizeEmail(email),
		Subject:   subject,
		Message:   message,
		CreatedAt: Now(),
	}
}
