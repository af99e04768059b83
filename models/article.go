package models

import (
	"time"

	"github.com/google/uuid"
)

// Article is a long-form health education article
type Article struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Content   string    `json:"content" db:"content"`
	Summary   string    `json:"summary,omitempty" db:"summary"`
	Author    string    `json:"author,omitempty" db:"author"`
	Category  Category  `json:"category" db:"category"`
	Language  Language  `json:"language" db:"language"`
	ImageURL  string    `json:"image_url,omitempty" db:"image_url"`
	VideoURL  string    `json:"video_url,omitempty" db:"video_url"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// TableName returns the table name for the Article model
func (Article) TableName() string {
	return "articles"
}

// NewArticle creates a new Article with a fresh ID and timestamps
func NewArticle(title, content string, category Category, language Language) *Article {
	now := Now()
	return &Article{
		ID:        uuid.New(),
		Title:     title,
		Content:   content,
		Category:  category,
		Language:  language,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
