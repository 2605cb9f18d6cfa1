package domain

import (
	"encoding/json"
	"time"
)

// EducationalContent is a generated learning unit tied to a farm state snapshot
type EducationalContent struct {
	ID          int             `json:"id"`
	UserID      string          `json:"user_id"`
	ContentHash string          `json:"content_hash"`
	Content     json.RawMessage `json:"content"`
	Latitude    float64         `json:"latitude"`
	Longitude   float64         `json:"longitude"`
	GeneratedAt time.Time       `json:"generated_at"`
	CompletedAt *time.Time      `json:"completed_at,omitempty"`
}
