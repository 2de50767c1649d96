package model

// TradeRequest maps to the trade_requests table.
//
// BookID is the book the requester wants; OfferedBookID is the requester's
// book proposed in exchange. The recipient may replace OfferedBookID with any
// other book the requester owns before accepting; the row is updated to the
// final choice before the swap runs. Status only ever moves pending →
// accepted | rejected.
type TradeRequest struct {
	TradeRequestID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"trade_request_id"`
	BookID         string `gorm:"type:uuid;not null;index"                       json:"book_id"`
	OfferedBookID  string `gorm:"type:uuid;not null;index"                       json:"offered_book_id"`
	FromUserID     string `gorm:"type:uuid;not null;index"                       json:"from_user_id"`
	ToUserID       string `gorm:"type:uuid;not null;index"                       json:"to_user_id"`
	Status         string `gorm:"type:varchar(20);not null;default:'pending'"    json:"status"`
	BaseModel

	Book        *Book `gorm:"foreignKey:BookID;references:BookID"        json:"book,omitempty"`
	OfferedBook *Book `gorm:"foreignKey:OfferedBookID;references:BookID" json:"offered_book,omitempty"`
	FromUser    *User `gorm:"foreignKey:FromUserID;references:UserID"    json:"from_user,omitempty"`
	ToUser      *User `gorm:"foreignKey:ToUserID;references:UserID"      json:"to_user,omitempty"`
}

// TableName sets the table name.
func (TradeRequest) TableName() string { return "trade_requests" }

// IsPending reports whether the request can still be resolved.
func (t *TradeRequest) IsPending() bool { return t.Status == TradeStatusPending }
