package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/EnesCagri/kaankutuphane/internal/model"
	pkgerrors "github.com/EnesCagri/kaankutuphane/pkg/errors"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users   map[string]*model.User
	deleted []string
	seq     int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		m.seq++
		user.UserID = fmt.Sprintf("user-%03d", m.seq)
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByIDs(_ context.Context, ids []string) ([]model.User, error) {
	var result []model.User
	for _, id := range ids {
		if u, ok := m.users[id]; ok {
			result = append(result, *u)
		}
	}
	return result, nil
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) List(_ context.Context, classroomID, role string) ([]model.User, error) {
	var result []model.User
	for _, u := range m.users {
		if classroomID != "" && (u.ClassroomID == nil || *u.ClassroomID != classroomID) {
			continue
		}
		if role != "" && u.Role != role {
			continue
		}
		result = append(result, *u)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].UserID < result[j].UserID })
	return result, nil
}

func (m *mockUserRepo) DeleteCascade(_ context.Context, id string) error {
	delete(m.users, id)
	m.deleted = append(m.deleted, id)
	return nil
}

// ── Mock ClassroomRepository ──

type mockClassroomRepo struct {
	classrooms map[string]*model.Classroom
	detached   []string
	seq        int
}

func newMockClassroomRepo() *mockClassroomRepo {
	return &mockClassroomRepo{classrooms: make(map[string]*model.Classroom)}
}

func (m *mockClassroomRepo) Create(_ context.Context, classroom *model.Classroom) error {
	if classroom.ClassroomID == "" {
		m.seq++
		classroom.ClassroomID = fmt.Sprintf("class-%03d", m.seq)
	}
	m.classrooms[classroom.ClassroomID] = classroom
	return nil
}

func (m *mockClassroomRepo) GetByID(_ context.Context, id string) (*model.Classroom, error) {
	if c, ok := m.classrooms[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockClassroomRepo) GetByTeacherGradeClass(_ context.Context, teacherID string, grade int, className string) (*model.Classroom, error) {
	for _, c := range m.classrooms {
		if c.TeacherID == teacherID && c.Grade == grade && c.ClassName == className {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockClassroomRepo) List(_ context.Context, teacherID string, grade int) ([]model.Classroom, error) {
	var result []model.Classroom
	for _, c := range m.classrooms {
		if teacherID != "" && c.TeacherID != teacherID {
			continue
		}
		if grade != 0 && c.Grade != grade {
			continue
		}
		result = append(result, *c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ClassroomID < result[j].ClassroomID })
	return result, nil
}

func (m *mockClassroomRepo) DeleteDetaching(_ context.Context, id string) error {
	delete(m.classrooms, id)
	m.detached = append(m.detached, id)
	return nil
}

// ── Mock BookRepository ──

type mockBookRepo struct {
	books   map[string]*model.Book
	deleted []string
	seq     int
}

func newMockBookRepo() *mockBookRepo {
	return &mockBookRepo{books: make(map[string]*model.Book)}
}

func (m *mockBookRepo) Create(_ context.Context, book *model.Book) error {
	if book.BookID == "" {
		m.seq++
		book.BookID = fmt.Sprintf("book-%03d", m.seq)
	}
	m.books[book.BookID] = book
	return nil
}

func (m *mockBookRepo) GetByID(_ context.Context, id string) (*model.Book, error) {
	if b, ok := m.books[id]; ok {
		return b, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockBookRepo) List(_ context.Context, ownerID, genre string) ([]model.Book, error) {
	var result []model.Book
	for _, b := range m.books {
		if ownerID != "" && b.OwnerID != ownerID {
			continue
		}
		if genre != "" && b.Genre != genre {
			continue
		}
		result = append(result, *b)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].BookID < result[j].BookID })
	return result, nil
}

func (m *mockBookRepo) ListByIDs(_ context.Context, ids []string) ([]model.Book, error) {
	var result []model.Book
	for _, id := range ids {
		if b, ok := m.books[id]; ok {
			result = append(result, *b)
		}
	}
	return result, nil
}

func (m *mockBookRepo) ListByTitleAuthor(_ context.Context, title, author string) ([]model.Book, error) {
	var result []model.Book
	for _, b := range m.books {
		if strings.TrimSpace(b.Title) == title && strings.TrimSpace(b.Author) == author {
			result = append(result, *b)
		}
	}
	return result, nil
}

func (m *mockBookRepo) DeleteCascade(_ context.Context, id string) error {
	delete(m.books, id)
	m.deleted = append(m.deleted, id)
	return nil
}

// ── Mock CommentRepository ──

type mockCommentRepo struct {
	comments map[string]*model.Comment
	seq      int
}

func newMockCommentRepo() *mockCommentRepo {
	return &mockCommentRepo{comments: make(map[string]*model.Comment)}
}

func (m *mockCommentRepo) Create(_ context.Context, comment *model.Comment) error {
	if comment.CommentID == "" {
		m.seq++
		comment.CommentID = fmt.Sprintf("comment-%03d", m.seq)
	}
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now()
	}
	m.comments[comment.CommentID] = comment
	return nil
}

func (m *mockCommentRepo) GetByID(_ context.Context, id string) (*model.Comment, error) {
	if c, ok := m.comments[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCommentRepo) ListByBook(_ context.Context, bookID string) ([]model.Comment, error) {
	var result []model.Comment
	for _, c := range m.comments {
		if c.BookID == bookID {
			result = append(result, *c)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CommentID < result[j].CommentID })
	return result, nil
}

func (m *mockCommentRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.comments[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.comments, id)
	return nil
}

// ── Mock TradeRequestRepository ──

// mockTradeRepo shares the book map with mockBookRepo so AcceptAndSwap can
// mirror the real single-transaction behavior.
type mockTradeRepo struct {
	requests map[string]*model.TradeRequest
	books    *mockBookRepo
	seq      int
}

func newMockTradeRepo(books *mockBookRepo) *mockTradeRepo {
	return &mockTradeRepo{requests: make(map[string]*model.TradeRequest), books: books}
}

func (m *mockTradeRepo) Create(_ context.Context, request *model.TradeRequest) error {
	if request.TradeRequestID == "" {
		m.seq++
		request.TradeRequestID = fmt.Sprintf("trade-%03d", m.seq)
	}
	if request.CreatedAt.IsZero() {
		request.CreatedAt = time.Now()
	}
	m.requests[request.TradeRequestID] = request
	return nil
}

func (m *mockTradeRepo) GetByID(_ context.Context, id string) (*model.TradeRequest, error) {
	if r, ok := m.requests[id]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTradeRepo) ListByToUser(_ context.Context, toUserID, status string) ([]model.TradeRequest, error) {
	var result []model.TradeRequest
	for _, r := range m.requests {
		if r.ToUserID != toUserID {
			continue
		}
		if status != "" && r.Status != status {
			continue
		}
		result = append(result, *r)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].TradeRequestID < result[j].TradeRequestID })
	return result, nil
}

func (m *mockTradeRepo) ListByFromUser(_ context.Context, fromUserID, status string) ([]model.TradeRequest, error) {
	var result []model.TradeRequest
	for _, r := range m.requests {
		if r.FromUserID != fromUserID {
			continue
		}
		if status != "" && r.Status != status {
			continue
		}
		result = append(result, *r)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].TradeRequestID < result[j].TradeRequestID })
	return result, nil
}

func (m *mockTradeRepo) HasPending(_ context.Context, fromUserID, bookID string) (bool, error) {
	for _, r := range m.requests {
		if r.FromUserID == fromUserID && r.BookID == bookID && r.Status == model.TradeStatusPending {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockTradeRepo) UpdateStatus(_ context.Context, id, status string) error {
	r, ok := m.requests[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	r.Status = status
	return nil
}

func (m *mockTradeRepo) AcceptAndSwap(_ context.Context, request *model.TradeRequest) error {
	wanted, okW := m.books.books[request.BookID]
	offered, okO := m.books.books[request.OfferedBookID]
	if !okW || !okO {
		return pkgerrors.ErrSwapConflict
	}
	if wanted.OwnerID != request.ToUserID || offered.OwnerID != request.FromUserID {
		return pkgerrors.ErrSwapConflict
	}
	wanted.OwnerID, offered.OwnerID = offered.OwnerID, wanted.OwnerID
	stored := m.requests[request.TradeRequestID]
	stored.Status = model.TradeStatusAccepted
	stored.OfferedBookID = request.OfferedBookID
	request.Status = model.TradeStatusAccepted
	return nil
}

// ── Mock ReadingStatusRepository ──

type mockReadingStatusRepo struct {
	statuses map[string]*model.ReadingStatus // "userID:bookID"
}

func newMockReadingStatusRepo() *mockReadingStatusRepo {
	return &mockReadingStatusRepo{statuses: make(map[string]*model.ReadingStatus)}
}

func readingKey(userID, bookID string) string {
	return userID + ":" + bookID
}

func (m *mockReadingStatusRepo) Create(_ context.Context, status *model.ReadingStatus) error {
	if status.ReadAt.IsZero() {
		status.ReadAt = time.Now()
	}
	m.statuses[readingKey(status.UserID, status.BookID)] = status
	return nil
}

func (m *mockReadingStatusRepo) GetByUserAndBook(_ context.Context, userID, bookID string) (*model.ReadingStatus, error) {
	if s, ok := m.statuses[readingKey(userID, bookID)]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockReadingStatusRepo) ListByUser(_ context.Context, userID string) ([]model.ReadingStatus, error) {
	var result []model.ReadingStatus
	for _, s := range m.statuses {
		if s.UserID == userID {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (m *mockReadingStatusRepo) ListByBook(_ context.Context, bookID string) ([]model.ReadingStatus, error) {
	var result []model.ReadingStatus
	for _, s := range m.statuses {
		if s.BookID == bookID {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (m *mockReadingStatusRepo) ListAll(_ context.Context) ([]model.ReadingStatus, error) {
	var result []model.ReadingStatus
	for _, s := range m.statuses {
		result = append(result, *s)
	}
	return result, nil
}
