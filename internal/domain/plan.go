package domain

import "time"

// Plan type constants.
const (
	PlanTypeImage = "image"
	PlanTypeVideo = "video"
)

// Plan represents a purchasable advertising plan.
type Plan struct {
	ID           string    `json:"id"`
	PlanType     string    `json:"plan_type"`
	PlanName     string    `json:"plan_name"`
	Price        float64   `json:"price"`
	Description  string    `json:"description,omitempty"`
	Features     []string  `json:"features"`
	CTA          string    `json:"cta"`
	IsActive     bool      `json:"is_active"`
	DisplayOrder int       `json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ValidPlanTypes returns all valid plan types.
func ValidPlanTypes() []string {
	return []string{PlanTypeImage, PlanTypeVideo}
}

// IsValidPlanType checks if a plan type string is valid.
func IsValidPlanType(planType string) bool {
	for _, t := range ValidPlanTypes() {
		if t == planType {
			return true
		}
	}
	return false
}
