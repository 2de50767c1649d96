package model

import "time"

// ReadingStatus maps to the reading_statuses table.
//
// (UserID, BookID) is the natural key; there is no surrogate id. The row
// survives ownership transfers: reading credit follows the book's identity,
// not its current owner.
type ReadingStatus struct {
	UserID string    `gorm:"type:uuid;primaryKey"               json:"user_id"`
	BookID string    `gorm:"type:uuid;primaryKey;index"         json:"book_id"`
	ReadAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"read_at"`
}

// TableName sets the table name.
func (ReadingStatus) TableName() string { return "reading_statuses" }
