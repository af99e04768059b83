package models

import (
	"time"

	"github.com/google/uuid"
)

// Tip is a short, actionable health tip
type Tip struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Content   string    `json:"content" db:"content"`
	Category  Category  `json:"category" db:"category"`
	Language  Language  `json:"language" db:"language"`
	ImageURL  string    `json:"image_url,omitempty" db:"image_url"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// TableName returns the table name for the Tip model
func (Tip) TableName() string {
	return "tips"
}

// NewTip creates a new Tip with a fresh ID and timestamps
func NewTip(title, content string, category Category, language Language) *Tip {
	now := Now()
	return &Tip{
		ID:        uuid.New(),
		Title:     title,
		Content:   content,
		Category:  category,
		Language:  language,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
