package domain

import "time"

// Meeting status constants.
const (
	MeetingStatusScheduled   = "scheduled"
	MeetingStatusConfirmed   = "confirmed"
	MeetingStatusCompleted   = "completed"
	MeetingStatusCancelled   = "cancelled"
	MeetingStatusRescheduled = "rescheduled"
)

// Meeting defaults.
const (
	DefaultMeetingDuration = 30
	DefaultMeetingTimezone = "IST"
)

// Meeting represents a scheduled call between an admin and a customer.
type Meeting struct {
	ID           string    `json:"id"`
	CustomerID   string    `json:"customer_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	Date         string    `json:"date"`
	Time         string    `json:"time"`
	Duration     int       `json:"duration"`
	Timezone     string    `json:"timezone"`
	MeetingLink  string    `json:"meeting_link,omitempty"`
	Status       string    `json:"status"`
	PreNotes     string    `json:"pre_notes,omitempty"`
	PostNotes    string    `json:"post_notes,omitempty"`
	GeneralNotes string    `json:"general_notes,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ValidMeetingStatuses returns all valid meeting statuses.
func ValidMeetingStatuses() []string {
	return []string{
		MeetingStatusScheduled,
		MeetingStatusConfirmed,
		MeetingStatusCompleted,
		MeetingStatusCancelled,
		MeetingStatusRescheduled,
	}
}

// IsValidMeetingStatus checks if a meeting status string is valid.
func IsValidMeetingStatus(status string) bool {
	for _, s := range ValidMeetingStatuses() {
		if s == status {
			return true
		}
	}
	return false
}
