package dto

// ── user module DTOs ──

// UpdateProfileRequest updates the caller's own profile.
type UpdateProfileRequest struct {
	AvatarURL *string `json:"avatar_url" binding:"omitempty,max=1048576"`
}

// UserListRequest filters the user listing.
type UserListRequest struct {
	ClassroomID string `form:"classroom_id" binding:"omitempty,uuid"`
	Role        string `form:"role"         binding:"omitempty,oneof=student teacher"`
}
