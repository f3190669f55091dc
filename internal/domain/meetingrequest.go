package domain

import "time"

// Meeting request status constants.
const (
	MeetingRequestStatusPending   = "pending"
	MeetingRequestStatusConfirmed = "confirmed"
	MeetingRequestStatusCompleted = "completed"
	MeetingRequestStatusCancelled = "cancelled"
)

// MeetingRequest represents a call request submitted from the public site.
type MeetingRequest struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	ContactNumber string    `json:"contact_number"`
	PreferredDate string    `json:"preferred_date"`
	PreferredTime string    `json:"preferred_time"`
	Message       string    `json:"message,omitempty"`
	Status        string    `json:"status"`
	AdminNotes    string    `json:"admin_notes,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ValidMeetingRequestStatuses returns all valid meeting request statuses.
func ValidMeetingRequestStatuses() []string {
	return []string{
		MeetingRequestStatusPending,
		MeetingRequestStatusConfirmed,
		MeetingRequestStatusCompleted,
		MeetingRequestStatusCancelled,
	}
}

// IsValidMeetingRequestStatus checks if a meeting request status string is valid.
func IsValidMeetingRequestStatus(status string) bool {
	for _, s := range ValidMeetingRequestStatuses() {
		if s == status {
			return true
		}
	}
	return false
}
