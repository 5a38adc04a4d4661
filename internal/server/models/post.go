package models

import "time"

// Post is a blog post. Sender is the owning user id and never changes after
// creation. Comments lists the ids of the post's comments, oldest first.
type Post struct {
	ID        string    `json:"_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Sender    string    `json:"sender"`
	Comments  []string  `json:"comments"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
