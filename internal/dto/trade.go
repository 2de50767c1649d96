package dto

// ── trade module DTOs ──

// ProposeTradeRequest proposes a one-for-one book exchange. BookID is the
// wanted book; OfferedBookID must be owned by the caller.
type ProposeTradeRequest struct {
	BookID        string `json:"book_id"         binding:"required,uuid"`
	OfferedBookID string `json:"offered_book_id" binding:"required,uuid"`
}

// ResolveTradeRequest accepts or rejects a pending trade. CounterBookID lets
// the recipient pick a different book from the requester's shelf.
type ResolveTradeRequest struct {
	Decision      string `json:"decision"        binding:"required,oneof=accepted rejected"`
	CounterBookID string `json:"counter_book_id" binding:"omitempty,uuid"`
}

// TradeListRequest filters the trade request listing.
type TradeListRequest struct {
	Status string `form:"status" binding:"omitempty,oneof=pending accepted rejected"`
}

// TradeRequestResponse is the trade request shape.
type TradeRequestResponse struct {
	ID               string `json:"id"`
	BookID           string `json:"book_id"`
	BookTitle        string `json:"book_title,omitempty"`
	OfferedBookID    string `json:"offered_book_id"`
	OfferedBookTitle string `json:"offered_book_title,omitempty"`
	FromUserID       string `json:"from_user_id"`
	FromUserName     string `json:"from_user_name,omitempty"`
	ToUserID         string `json:"to_user_id"`
	Status           string `json:"status"`
	CreatedAt        string `json:"created_at"`
}
