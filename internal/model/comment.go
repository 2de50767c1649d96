package model

import "time"

// Comment maps to the comments table.
//
// UserName is a snapshot of the author's name at write time. It is not kept
// in sync with later profile changes; the historical name is intentional.
type Comment struct {
	CommentID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"comment_id"`
	BookID    string    `gorm:"type:uuid;not null;index"                       json:"book_id"`
	UserID    string    `gorm:"type:uuid;not null"                             json:"user_id"`
	UserName  string    `gorm:"type:varchar(100);not null"                     json:"user_name"`
	Text      string    `gorm:"type:text;not null"                             json:"text"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

// TableName sets the table name.
func (Comment) TableName() string { return "comments" }
