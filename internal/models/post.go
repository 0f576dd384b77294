package models

import "time"

// Post represents a forum post
type Post struct {
	ID         int       `json:"id"`
	CategoryID int       `json:"category_id"`
	UserID     int       `json:"user_id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}

// PostDetail is a post joined with its author's public fields
type PostDetail struct {
	Post
	AuthorName string `json:"author_name"`
	AuthorRole Role   `json:"author_role"`
}

// CreatePostRequest represents a post creation request.
// The author is always taken from the verified token, never from the body.
type CreatePostRequest struct {
	CategoryID int    `json:"category_id"`
	Title      string `json:"title"`
	Content    string `json:"content"`
}
