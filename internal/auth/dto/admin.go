package dto

import "time"

// AdminOutput is the public profile returned on login; it never carries
// the password hash.
type AdminOutput struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	Name      string     `json:"name"`
	Role      string     `json:"role"`
	LastLogin *time.Time `json:"lastLogin"`
}

type LoginResult struct {
	SessionToken string      `json:"sessionToken"`
	ExpiresAt    time.Time   `json:"expiresAt"`
	Admin        AdminOutput `json:"admin"`
}
