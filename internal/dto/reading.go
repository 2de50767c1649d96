package dto

// ── reading activity DTOs ──

// ReadingStatusResponse is a single "user read book" fact. BookTitle is
// resolved for per-user history listings.
type ReadingStatusResponse struct {
	BookID    string `json:"book_id"`
	BookTitle string `json:"book_title,omitempty"`
	UserID    string `json:"user_id"`
	ReadAt    string `json:"read_at"`
}

// MarkAsReadResponse reports whether the call created a new status or
// returned the existing one.
type MarkAsReadResponse struct {
	Status        ReadingStatusResponse `json:"status"`
	AlreadyMarked bool                  `json:"already_marked"`
}

// ── leaderboard DTOs ──

// LeaderboardRequest optionally scopes the ranking to one classroom.
type LeaderboardRequest struct {
	ClassroomID string `form:"classroom_id" binding:"omitempty,uuid"`
}

// LeaderboardEntry is one ranked reader. Users with zero reads never appear.
type LeaderboardEntry struct {
	Rank      int    `json:"rank"`
	UserID    string `json:"user_id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url,omitempty"`
	ReadCount int    `json:"read_count"`
}
