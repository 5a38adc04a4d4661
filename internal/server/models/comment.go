package models

import "time"

// Comment belongs to exactly one post. Sender is the owning user id.
type Comment struct {
	ID        string    `json:"_id"`
	PostID    string    `json:"postId"`
	Content   string    `json:"content"`
	Sender    string    `json:"sender"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
