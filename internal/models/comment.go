package models

import "time"

// Comment represents a single comment row. ParentID is nil for top-level
// comments and otherwise references another comment on the same post.
type Comment struct {
	ID         int       `json:"id"`
	PostID     int       `json:"post_id"`
	UserID     int       `json:"user_id"`
	ParentID   *int      `json:"parent_id,omitempty"`
	Content    string    `json:"content"`
	AuthorName string    `json:"author_name"`
	CreatedAt  time.Time `json:"created_at"`
}

// CommentNode is a comment with its direct replies, as served to clients.
// Replies are ordered by creation time ascending, recursively.
type CommentNode struct {
	Comment
	Replies []*CommentNode `json:"replies"`
}

// CreateCommentRequest represents a comment creation request.
// The author is always taken from the verified token, never from the body.
type CreateCommentRequest struct {
	Content  string `json:"content"`
	ParentID *int   `json:"parent_id"`
}
