package dto

// ── classroom module DTOs ──

// CreateClassroomRequest creates a classroom for the calling teacher.
type CreateClassroomRequest struct {
	Grade     int    `json:"grade"      binding:"required"`
	ClassName string `json:"class_name" binding:"required,len=1"`
}

// ClassroomListRequest filters the classroom listing.
type ClassroomListRequest struct {
	TeacherID string `form:"teacher_id" binding:"omitempty,uuid"`
	Grade     int    `form:"grade"      binding:"omitempty"`
}

// ClassroomResponse is the classroom shape.
type ClassroomResponse struct {
	ID        string `json:"id"`
	Grade     int    `json:"grade"`
	ClassName string `json:"class_name"`
	Label     string `json:"label"` // e.g. "5A"
	TeacherID string `json:"teacher_id"`
	CreatedAt string `json:"created_at"`
}
