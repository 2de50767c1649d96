package model

// Book maps to the books table.
//
// OwnerID is the current owner, not necessarily the student who added the
// book: it changes exactly once per accepted trade, via the pair-swap.
type Book struct {
	BookID      string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"book_id"`
	Title       string `gorm:"type:varchar(255);not null;index:idx_books_title_author" json:"title"`
	Author      string `gorm:"type:varchar(255);not null;index:idx_books_title_author" json:"author"`
	Description string `gorm:"type:text"                                      json:"description"`
	ImageURL    string `gorm:"type:text;not null"                             json:"image_url"`
	Genre       string `gorm:"type:varchar(100)"                              json:"genre,omitempty"`
	OwnerID     string `gorm:"type:uuid;not null;index"                       json:"owner_id"`
	BaseModel

	Owner *User `gorm:"foreignKey:OwnerID;references:UserID" json:"owner,omitempty"`
}

// TableName sets the table name.
func (Book) TableName() string { return "books" }
