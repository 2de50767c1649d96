package repository

import "gorm.io/gorm"

// Repository aggregates all data-access interfaces.
type Repository struct {
	User          UserRepository
	Classroom     ClassroomRepository
	Book          BookRepository
	Comment       CommentRepository
	TradeRequest  TradeRequestRepository
	ReadingStatus ReadingStatusRepository
}

// NewRepository builds the aggregate over one GORM connection.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		User:          NewUserRepo(db),
		Classroom:     NewClassroomRepo(db),
		Book:          NewBookRepo(db),
		Comment:       NewCommentRepo(db),
		TradeRequest:  NewTradeRequestRepo(db),
		ReadingStatus: NewReadingStatusRepo(db),
	}
}
