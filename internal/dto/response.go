package dto

// ── auth responses ──

// TokenResponse is the token pair returned by login/register/refresh.
type TokenResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresIn    int          `json:"expires_in"` // access token TTL in seconds
	User         UserResponse `json:"user"`
}

// ── user responses ──

// UserResponse is the sanitized user shape.
type UserResponse struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Username     string   `json:"username"`
	Role         string   `json:"role"`
	AvatarURL    string   `json:"avatar_url,omitempty"`
	ClassroomID  string   `json:"classroom_id,omitempty"`  // students
	ClassroomIDs []string `json:"classroom_ids,omitempty"` // teachers, derived
}

// UserDetailResponse is the expanded user shape for GET /auth/me.
type UserDetailResponse struct {
	ID         string              `json:"id"`
	Name       string              `json:"name"`
	Username   string              `json:"username"`
	Role       string              `json:"role"`
	AvatarURL  string              `json:"avatar_url,omitempty"`
	Classroom  *ClassroomResponse  `json:"classroom,omitempty"`  // students
	Classrooms []ClassroomResponse `json:"classrooms,omitempty"` // teachers
	CreatedAt  string              `json:"created_at"`
}
