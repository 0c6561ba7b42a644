package users

import "time"

// User is a registered member. Rank and Squadron are free-text
// profile labels, both optional.
type User struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Rank         *string   `json:"rank,omitempty"`
	Squadron     *string   `json:"squadron,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}
