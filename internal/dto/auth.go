package dto

// ── auth requests ──

// LoginRequest is the login payload.
type LoginRequest struct {
	Username   string `json:"username"    binding:"required"`
	Password   string `json:"password"    binding:"required"`
	RememberMe bool   `json:"remember_me"`
}

// RegisterStudentRequest is the student self-registration payload.
// Students must pick an existing classroom.
type RegisterStudentRequest struct {
	Name        string `json:"name"         binding:"required,max=100"`
	Username    string `json:"username"     binding:"required,min=3,max=50"`
	Password    string `json:"password"     binding:"required,min=6"`
	ClassroomID string `json:"classroom_id" binding:"required,uuid"`
}

// RegisterTeacherRequest is the teacher self-registration payload.
// TeacherCode must match the configured shared secret.
type RegisterTeacherRequest struct {
	Name        string `json:"name"         binding:"required,max=100"`
	Username    string `json:"username"     binding:"required,min=3,max=50"`
	Password    string `json:"password"     binding:"required,min=6"`
	TeacherCode string `json:"teacher_code" binding:"required"`
}

// RefreshTokenRequest carries the refresh token.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// ChangePasswordRequest is the password change payload.
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6"`
}
