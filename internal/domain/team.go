package domain

import "time"

// TeamMember represents a member shown on the public team page. ImageKey
// holds the object store key for the member photo; ImageURL is the legacy
// fallback.
type TeamMember struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Position     string    `json:"position"`
	Bio          string    `json:"bio,omitempty"`
	ImageKey     string    `json:"image_key,omitempty"`
	ImageURL     string    `json:"image_url,omitempty"`
	LinkedInURL  string    `json:"linkedin_url,omitempty"`
	DisplayOrder int       `json:"display_order"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
