package dto

// ── catalog module DTOs ──

// CreateBookRequest adds a book to the catalog. The caller becomes the owner.
type CreateBookRequest struct {
	Title       string `json:"title"       binding:"required,max=255"`
	Author      string `json:"author"      binding:"required,max=255"`
	Description string `json:"description" binding:"omitempty,max=2000"`
	ImageURL    string `json:"image_url"   binding:"omitempty"`
	Genre       string `json:"genre"       binding:"omitempty,max=100"`
}

// BookListRequest filters the catalog listing.
type BookListRequest struct {
	OwnerID string `form:"owner_id" binding:"omitempty,uuid"`
	Genre   string `form:"genre"    binding:"omitempty,max=100"`
}

// BookResponse is the book shape with the owner name resolved as a read-side
// join, never stored.
type BookResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Author      string `json:"author"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"image_url"`
	Genre       string `json:"genre,omitempty"`
	OwnerID     string `json:"owner_id"`
	OwnerName   string `json:"owner_name,omitempty"`
	CreatedAt   string `json:"created_at"`
}
