package models

import "time"

// User is a registered account. PasswordHash is a bcrypt hash and is never
// serialized.
type User struct {
	ID           string    `json:"_id"`
	UserName     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// UserSummary is the public part of a User returned by the auth endpoints.
type UserSummary struct {
	ID       string `json:"id"`
	UserName string `json:"username"`
	Email    string `json:"email"`
}

func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, UserName: u.UserName, Email: u.Email}
}
