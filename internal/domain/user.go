package domain

import "time"

// User role constants.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a registered account, customer or admin.
type User struct {
	ID              string    `json:"id"`
	FullName        string    `json:"fullname"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	PasswordHash    string    `json:"-"`
	Role            string    `json:"role"`
	IsBlocked       bool      `json:"is_blocked"`
	ProfileImageKey string    `json:"profile_image_key,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// ValidRoles returns all valid user roles.
func ValidRoles() []string {
	return []string{RoleUser, RoleAdmin}
}

// IsValidRole checks if a role string is valid.
func IsValidRole(role string) bool {
	for _, r := range ValidRoles() {
		if r == role {
			return true
		}
	}
	return false
}
