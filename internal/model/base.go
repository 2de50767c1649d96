package model

import "time"

// Role values for User.Role.
const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
)

// TradeStatus values for TradeRequest.Status. Pending is the only
// non-terminal state.
const (
	TradeStatusPending  = "pending"
	TradeStatusAccepted = "accepted"
	TradeStatusRejected = "rejected"
)

// BaseModel holds the audit timestamps every business table carries.
type BaseModel struct {
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}
