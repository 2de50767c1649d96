package dto

// ── comment module DTOs ──

// CreateCommentRequest adds a comment to a book.
type CreateCommentRequest struct {
	Text string `json:"text" binding:"required,max=2000"`
}

// CommentResponse is the comment shape. UserName is the author's name as it
// was when the comment was written.
type CommentResponse struct {
	ID        string `json:"id"`
	BookID    string `json:"book_id"`
	UserID    string `json:"user_id"`
	UserName  string `json:"user_name"`
	Text      string `json:"text"`
	CreatedAt string `json:"created_at"`
}
