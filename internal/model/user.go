package model

// User maps to the users table.
//
// ClassroomID is set for students only. Teachers own classrooms through
// classrooms.teacher_id, so their classroom set is derived, never stored on
// the user row. The role decides which side of that split a user is on and
// is immutable after registration.
type User struct {
	UserID       string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	Name         string  `gorm:"type:varchar(100);not null"                     json:"name"`
	Username     string  `gorm:"type:varchar(50);not null;uniqueIndex"          json:"username"`
	PasswordHash string  `gorm:"type:varchar(255);not null"                     json:"-"`
	Role         string  `gorm:"type:varchar(20);not null;default:'student'"    json:"role"`
	AvatarURL    string  `gorm:"type:text"                                      json:"avatar_url,omitempty"`
	ClassroomID  *string `gorm:"type:uuid"                                      json:"classroom_id,omitempty"`
	BaseModel

	Classroom *Classroom `gorm:"foreignKey:ClassroomID;references:ClassroomID" json:"classroom,omitempty"`
}

// TableName sets the table name.
func (User) TableName() string { return "users" }

// IsStudent reports whether the user has the student role.
func (u *User) IsStudent() bool { return u.Role == RoleStudent }

// IsTeacher reports whether the user has the teacher role.
func (u *User) IsTeacher() bool { return u.Role == RoleTeacher }
