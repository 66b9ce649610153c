package domain

import (
	"errors"
	"time"
)

var ErrPostNotFound = errors.New("post not found")
var ErrSlugExists = errors.New("post slug already exists")

// Post is a blog article managed by admins. Content is stored as sanitized
// HTML; raw input is never persisted.
type Post struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Slug      string    `json:"slug" bson:"slug"`
	Title     string    `json:"title" bson:"title"`
	Excerpt   string    `json:"excerpt,omitempty" bson:"excerpt,omitempty"`
	Content   string    `json:"content" bson:"content"`
	AuthorID  string    `json:"author_id" bson:"author_id"`
	Published bool      `json:"published" bson:"published"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}
