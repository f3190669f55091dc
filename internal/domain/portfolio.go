package domain

import "time"

// PortfolioItem represents a showcased piece of past work. ImageKey holds
// the object store key; ImageURL is a legacy fallback for rows created
// before key-based storage.
type PortfolioItem struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Category     string    `json:"category,omitempty"`
	Description  string    `json:"description,omitempty"`
	ImageKey     string    `json:"image_key,omitempty"`
	ImageURL     string    `json:"image_url,omitempty"`
	DisplayOrder int       `json:"display_order"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
