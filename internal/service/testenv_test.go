package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/EnesCagri/kaankutuphane/config"
	"github.com/EnesCagri/kaankutuphane/internal/model"
	"github.com/EnesCagri/kaankutuphane/internal/repository"
	"github.com/EnesCagri/kaankutuphane/pkg/jwt"
)

// testEnv bundles the mock aggregate with direct handles on each mock so
// tests can seed and inspect state.
type testEnv struct {
	repo       *repository.Repository
	users      *mockUserRepo
	classrooms *mockClassroomRepo
	books      *mockBookRepo
	comments   *mockCommentRepo
	trades     *mockTradeRepo
	statuses   *mockReadingStatusRepo
	cfg        *config.Config
	jwtMgr     *jwt.Manager
	logger     *zap.Logger
}

func newTestEnv() *testEnv {
	users := newMockUserRepo()
	classrooms := newMockClassroomRepo()
	books := newMockBookRepo()
	comments := newMockCommentRepo()
	trades := newMockTradeRepo(books)
	statuses := newMockReadingStatusRepo()

	cfg := &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:               "test-secret-at-least-16-chars",
			AccessTokenTTL:          15 * time.Minute,
			RefreshTokenTTLDefault:  24 * time.Hour,
			RefreshTokenTTLRemember: 720 * time.Hour,
			TeacherCode:             "okumakguzel",
		},
		Library: config.LibraryConfig{
			Timezone:            "UTC",
			PlaceholderImageURL: "https://placehold.co/200x300",
		},
	}

	return &testEnv{
		repo: &repository.Repository{
			User:          users,
			Classroom:     classrooms,
			Book:          books,
			Comment:       comments,
			TradeRequest:  trades,
			ReadingStatus: statuses,
		},
		users:      users,
		classrooms: classrooms,
		books:      books,
		comments:   comments,
		trades:     trades,
		statuses:   statuses,
		cfg:        cfg,
		jwtMgr:     jwt.NewManager(&cfg.Auth),
		logger:     zap.NewNop(),
	}
}

// ── seeding helpers ──

func (e *testEnv) seedTeacher(id, name string) *model.User {
	u := &model.User{UserID: id, Name: name, Username: name, Role: model.RoleTeacher}
	e.users.users[id] = u
	return u
}

func (e *testEnv) seedStudent(id, name, classroomID string) *model.User {
	u := &model.User{UserID: id, Name: name, Username: name, Role: model.RoleStudent}
	if classroomID != "" {
		u.ClassroomID = &classroomID
	}
	e.users.users[id] = u
	return u
}

func (e *testEnv) seedClassroom(id string, grade int, className, teacherID string) *model.Classroom {
	c := &model.Classroom{ClassroomID: id, Grade: grade, ClassName: className, TeacherID: teacherID}
	e.classrooms.classrooms[id] = c
	return c
}

func (e *testEnv) seedBook(id, title, author, ownerID string) *model.Book {
	b := &model.Book{BookID: id, Title: title, Author: author, ImageURL: "img", OwnerID: ownerID}
	e.books.books[id] = b
	return b
}

func (e *testEnv) seedRead(userID, bookID string, readAt time.Time) *model.ReadingStatus {
	s := &model.ReadingStatus{UserID: userID, BookID: bookID, ReadAt: readAt}
	e.statuses.statuses[readingKey(userID, bookID)] = s
	return s
}

var testCtx = context.Background()
