package models

import (
	"time"

	"github.com/google/uuid"
)

// Video is an externally hosted educational video
type Video struct {
	ID              uuid.UUID `json:"id" db:"id"`
	Title           string    `json:"title" db:"title"`
	Description     string    `json:"description" db:"description"`
	Category        Category  `json:"category" db:"category"`
	Language        Language  `json:"language" db:"language"`
	VideoURL        string    `json:"video_url" db:"video_url"`
	ThumbnailURL    string    `json:"thumbnail_url,omitempty" db:"thumbnail_url"`
	DurationSeconds int       `json:"duration_seconds,omitempty" db:"duration_seconds"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}

// TableName returns the table name for the Video model
func (Video) TableName() string {
	return "videos"
}

// NewVideo creates a new Video with a fresh ID and timestamps
func NewVideo(title, description, videoURL string, category Category, language Language) *Video {
	now := Now()
	return &Video{
		ID:          uuid.New(),
		Title:       title,
		Description: description,
		VideoURL:    videoURL,
		Category:    category,
		Language:    language,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
