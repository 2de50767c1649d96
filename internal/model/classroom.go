package model

// Classroom maps to the classrooms table.
//
// (Grade, ClassName, TeacherID) is unique: a teacher cannot create the same
// classroom twice, but two teachers may each own a "5A".
type Classroom struct {
	ClassroomID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"          json:"classroom_id"`
	Grade       int    `gorm:"not null;uniqueIndex:uniq_classroom_per_teacher"         json:"grade"`
	ClassName   string `gorm:"type:varchar(5);not null;uniqueIndex:uniq_classroom_per_teacher" json:"class_name"`
	TeacherID   string `gorm:"type:uuid;not null;uniqueIndex:uniq_classroom_per_teacher"       json:"teacher_id"`
	BaseModel

	Teacher *User `gorm:"foreignKey:TeacherID;references:UserID" json:"teacher,omitempty"`
}

// TableName sets the table name.
func (Classroom) TableName() string { return "classrooms" }
