package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/EnesCagri/kaankutuphane/internal/dto"
	"github.com/EnesCagri/kaankutuphane/internal/service"
	pkgerrors "github.com/EnesCagri/kaankutuphane/pkg/errors"
	"github.com/EnesCagri/kaankutuphane/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

// ── Mock AuthService ──

type mockAuthService struct {
	loginResult      *dto.TokenResponse
	loginErr         error
	registerResult   *dto.TokenResponse
	registerErr      error
	refreshResult    *dto.TokenResponse
	refreshErr       error
	logoutErr        error
	getCurrentResult *dto.UserDetailResponse
	getCurrentErr    error
	changePassErr    error
}

func (m *mockAuthService) Login(_ context.Context, _ *dto.LoginRequest) (*dto.TokenResponse, error) {
	return m.loginResult, m.loginErr
}
func (m *mockAuthService) RegisterStudent(_ context.Context, _ *dto.RegisterStudentRequest) (*dto.TokenResponse, error) {
	return m.registerResult, m.registerErr
}
func (m *mockAuthService) RegisterTeacher(_ context.Context, _ *dto.RegisterTeacherRequest) (*dto.TokenResponse, error) {
	return m.registerResult, m.registerErr
}
func (m *mockAuthService) RefreshToken(_ context.Context, _ string) (*dto.TokenResponse, error) {
	return m.refreshResult, m.refreshErr
}
func (m *mockAuthService) Logout(_ context.Context, _ string, _ time.Time) error {
	return m.logoutErr
}
func (m *mockAuthService) GetCurrentUser(_ context.Context, _ string) (*dto.UserDetailResponse, error) {
	return m.getCurrentResult, m.getCurrentErr
}
func (m *mockAuthService) ChangePassword(_ context.Context, _ string, _ *dto.ChangePasswordRequest) error {
	return m.changePassErr
}

// ── Mock BookService ──

type mockBookService struct {
	createResult *dto.BookResponse
	createErr    error
	getResult    *dto.BookResponse
	getErr       error
	listResult   []dto.BookResponse
	listErr      error
	deleteErr    error
}

func (m *mockBookService) Create(_ context.Context, _ *dto.CreateBookRequest, _ string) (*dto.BookResponse, error) {
	return m.createResult, m.createErr
}
func (m *mockBookService) GetByID(_ context.Context, _ string) (*dto.BookResponse, error) {
	return m.getResult, m.getErr
}
func (m *mockBookService) List(_ context.Context, _ *dto.BookListRequest) ([]dto.BookResponse, error) {
	return m.listResult, m.listErr
}
func (m *mockBookService) Delete(_ context.Context, _, _ string) error {
	return m.deleteErr
}

// ── Mock TradeService ──

type mockTradeService struct {
	proposeResult  *dto.TradeRequestResponse
	proposeErr     error
	resolveResult  *dto.TradeRequestResponse
	resolveErr     error
	incomingResult []dto.TradeRequestResponse
	incomingErr    error
	outgoingResult []dto.TradeRequestResponse
	outgoingErr    error
}

func (m *mockTradeService) Propose(_ context.Context, _ *dto.ProposeTradeRequest, _ string) (*dto.TradeRequestResponse, error) {
	return m.proposeResult, m.proposeErr
}
func (m *mockTradeService) Resolve(_ context.Context, _ string, _ *dto.ResolveTradeRequest, _ string) (*dto.TradeRequestResponse, error) {
	return m.resolveResult, m.resolveErr
}
func (m *mockTradeService) ListIncoming(_ context.Context, _, _ string) ([]dto.TradeRequestResponse, error) {
	return m.incomingResult, m.incomingErr
}
func (m *mockTradeService) ListOutgoing(_ context.Context, _, _ string) ([]dto.TradeRequestResponse, error) {
	return m.outgoingResult, m.outgoingErr
}

// ── Mock ReadingService ──

type mockReadingService struct {
	markResult   *dto.MarkAsReadResponse
	markErr      error
	byUserResult []dto.ReadingStatusResponse
	byUserErr    error
	byBookResult []dto.ReadingStatusResponse
	byBookErr    error
}

func (m *mockReadingService) MarkAsRead(_ context.Context, _, _ string) (*dto.MarkAsReadResponse, error) {
	return m.markResult, m.markErr
}
func (m *mockReadingService) ListByUser(_ context.Context, _ string) ([]dto.ReadingStatusResponse, error) {
	return m.byUserResult, m.byUserErr
}
func (m *mockReadingService) ListByBook(_ context.Context, _ string) ([]dto.ReadingStatusResponse, error) {
	return m.byBookResult, m.byBookErr
}

// ── Mock LeaderboardService ──

type mockLeaderboardService struct {
	rankingResult []dto.LeaderboardEntry
	rankingErr    error
}

func (m *mockLeaderboardService) Ranking(_ context.Context, _ *dto.LeaderboardRequest) ([]dto.LeaderboardEntry, error) {
	return m.rankingResult, m.rankingErr
}

// ── Mock ClassroomService ──

type mockClassroomService struct {
	createResult   *dto.ClassroomResponse
	createErr      error
	getResult      *dto.ClassroomResponse
	getErr         error
	listResult     []dto.ClassroomResponse
	listErr        error
	studentsResult []dto.UserResponse
	studentsErr    error
	deleteErr      error
}

func (m *mockClassroomService) Create(_ context.Context, _ *dto.CreateClassroomRequest, _ string) (*dto.ClassroomResponse, error) {
	return m.createResult, m.createErr
}
func (m *mockClassroomService) GetByID(_ context.Context, _ string) (*dto.ClassroomResponse, error) {
	return m.getResult, m.getErr
}
func (m *mockClassroomService) List(_ context.Context, _ *dto.ClassroomListRequest) ([]dto.ClassroomResponse, error) {
	return m.listResult, m.listErr
}
func (m *mockClassroomService) ListStudents(_ context.Context, _ string) ([]dto.UserResponse, error) {
	return m.studentsResult, m.studentsErr
}
func (m *mockClassroomService) Delete(_ context.Context, _, _ string) error {
	return m.deleteErr
}

// ── Mock CommentService ──

type mockCommentService struct {
	createResult *dto.CommentResponse
	createErr    error
	listResult   []dto.CommentResponse
	listErr      error
	deleteErr    error
}

func (m *mockCommentService) Create(_ context.Context, _ string, _ *dto.CreateCommentRequest, _ string) (*dto.CommentResponse, error) {
	return m.createResult, m.createErr
}
func (m *mockCommentService) ListByBook(_ context.Context, _ string) ([]dto.CommentResponse, error) {
	return m.listResult, m.listErr
}
func (m *mockCommentService) Delete(_ context.Context, _, _ string) error {
	return m.deleteErr
}

// ── Mock ExportService ──

type mockExportService struct {
	buf      *bytes.Buffer
	filename string
	err      error
}

func (m *mockExportService) ExportClassroomActivity(_ context.Context, _, _ string) (*bytes.Buffer, string, error) {
	return m.buf, m.filename, m.err
}

// ═══════════════════════════════════════════════════════════
// Test Helpers
// ═══════════════════════════════════════════════════════════

func setupGin() (*gin.Engine, *gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, r := gin.CreateTestContext(w)
	return r, c, w
}

func setAuth(c *gin.Context) {
	c.Set("user_id", "test-user-id")
	c.Set("role", "student")
	c.Set("classroom_id", "test-classroom-id")
	c.Set("jti", "test-jti")
	c.Set("token_expires_at", time.Now().Add(15*time.Minute))
}

func jsonBody(v interface{}) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func parseResponse(w *httptest.ResponseRecorder) response.Response {
	var resp response.Response
	json.Unmarshal(w.Body.Bytes(), &resp)
	return resp
}

// ═══════════════════════════════════════════════════════════
// AuthHandler Tests
// ═══════════════════════════════════════════════════════════

func TestAuthHandler_Login_Success(t *testing.T) {
	mock := &mockAuthService{
		loginResult: &dto.TokenResponse{
			AccessToken:  "test-access-token",
			RefreshToken: "test-refresh-token",
			ExpiresIn:    900,
		},
	}
	h := NewAuthHandler(mock)

	_, _, w := setupGin()
	req := httptest.NewRequest("POST", "/auth/login", jsonBody(dto.LoginRequest{
		Username: "kaan05",
		Password: "kitap123",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 0 {
		t.Errorf("expected code 0, got %d", resp.Code)
	}
}

func TestAuthHandler_Login_BadJSON(t *testing.T) {
	mock := &mockAuthService{}
	h := NewAuthHandler(mock)

	_, _, w := setupGin()
	req := httptest.NewRequest("POST", "/auth/login", bytes.NewReader([]byte("invalid json")))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	mock := &mockAuthService{loginErr: service.ErrInvalidCredentials}
	h := NewAuthHandler(mock)

	_, _, w := setupGin()
	req := httptest.NewRequest("POST", "/auth/login", jsonBody(dto.LoginRequest{
		Username: "kaan05",
		Password: "wrong-pass",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 11001 {
		t.Errorf("expected error code 11001, got %d", resp.Code)
	}
}

func TestAuthHandler_RegisterStudent_Success(t *testing.T) {
	mock := &mockAuthService{
		registerResult: &dto.TokenResponse{
			AccessToken:  "test-access-token",
			RefreshToken: "test-refresh-token",
			ExpiresIn:    900,
		},
	}
	h := NewAuthHandler(mock)

	_, _, w := setupGin()
	req := httptest.NewRequest("POST", "/auth/register/student", jsonBody(dto.RegisterStudentRequest{
		Name:        "Kaan Yilmaz",
		Username:    "kaan05",
		Password:    "kitap123",
		ClassroomID: "9f4c2a10-1111-4222-8333-444455556666",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/register/student", h.RegisterStudent)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", w.Code)
	}
}

func TestAuthHandler_RegisterStudent_ClassroomNotFound(t *testing.T) {
	mock := &mockAuthService{registerErr: service.ErrClassroomNotFound}
	h := NewAuthHandler(mock)

	_, _, w := setupGin()
	req := httptest.NewRequest("POST", "/auth/register/student", jsonBody(dto.RegisterStudentRequest{
		Name:        "Kaan Yilmaz",
		Username:    "kaan05",
		Password:    "kitap123",
		ClassroomID: "9f4c2a10-1111-4222-8333-444455556666",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/register/student", h.RegisterStudent)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 13001 {
		t.Errorf("expected error code 13001, got %d", resp.Code)
	}
}

func TestAuthHandler_RegisterTeacher_WrongCode(t *testing.T) {
	mock := &mockAuthService{registerErr: service.ErrInvalidTeacherCode}
	h := NewAuthHandler(mock)

	_, _, w := setupGin()
	req := httptest.NewRequest("POST", "/auth/register/teacher", jsonBody(dto.RegisterTeacherRequest{
		Name:        "Ayse Demir",
		Username:    "ademir",
		Password:    "kitap123",
		TeacherCode: "wrong-code",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/register/teacher", h.RegisterTeacher)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 11003 {
		t.Errorf("expected error code 11003, got %d", resp.Code)
	}
}

func TestAuthHandler_Logout_NoTokenInfo(t *testing.T) {
	// A logout without middleware-injected token info is a no-op success.
	mock := &mockAuthService{}
	h := NewAuthHandler(mock)

	_, _, w := setupGin()
	req := httptest.NewRequest("POST", "/auth/logout", nil)

	r := gin.New()
	r.POST("/auth/logout", h.Logout)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestAuthHandler_Me_Unauthenticated(t *testing.T) {
	mock := &mockAuthService{}
	h := NewAuthHandler(mock)

	_, _, w := setupGin()
	req := httptest.NewRequest("GET", "/auth/me", nil)

	r := gin.New()
	r.GET("/auth/me", h.Me)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 10002 {
		t.Errorf("expected error code 10002, got %d", resp.Code)
	}
}

func TestAuthHandler_Me_Success(t *testing.T) {
	mock := &mockAuthService{
		getCurrentResult: &dto.UserDetailResponse{
			ID:   "test-user-id",
			Name: "Kaan Yilmaz",
			Role: "student",
		},
	}
	h := NewAuthHandler(mock)

	_, _, w := setupGin()
	req := httptest.NewRequest("GET", "/auth/me", nil)

	r := gin.New()
	r.GET("/auth/me", func(c *gin.Context) {
		setAuth(c)
		h.Me(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestAuthHandler_ChangePassword_WrongOld(t *testing.T) {
	mock := &mockAuthService{changePassErr: service.ErrWrongPassword}
	h := NewAuthHandler(mock)

	_, _, w := setupGin()
	req := httptest.NewRequest("PUT", "/auth/password", jsonBody(dto.ChangePasswordRequest{
		OldPassword: "wrong-old",
		NewPassword: "kitap456",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.PUT("/auth/password", func(c *gin.Context) {
		setAuth(c)
		h.ChangePassword(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 11004 {
		t.Errorf("expected error code 11004, got %d", resp.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// BookHandler Tests
// ═══════════════════════════════════════════════════════════

func TestBookHandler_CreateBook_Success(t *testing.T) {
	mock := &mockBookService{
		createResult: &dto.BookResponse{
			ID:      "book-001",
			Title:   "Charlotte's Web",
			Author:  "E. B. White",
			OwnerID: "test-user-id",
		},
	}
	h := NewBookHandler(mock, nil)

	_, _, w := setupGin()
	req := httptest.NewRequest("POST", "/books", jsonBody(dto.CreateBookRequest{
		Title:  "Charlotte's Web",
		Author: "E. B. White",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/books", func(c *gin.Context) {
		setAuth(c)
		h.CreateBook(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 0 {
		t.Errorf("expected code 0, got %d", resp.Code)
	}
}

func TestBookHandler_CreateBook_Unauthenticated(t *testing.T) {
	mock := &mockBookService{}
	h := NewBookHandler(mock, nil)

	_, _, w := setupGin()
	req := httptest.NewRequest("POST", "/books", jsonBody(dto.CreateBookRequest{
		Title:  "Charlotte's Web",
		Author: "E. B. White",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/books", h.CreateBook)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestBookHandler_CreateBook_Duplicate(t *testing.T) {
	mock := &mockBookService{createErr: service.ErrDuplicateBook}
	h := NewBookHandler(mock, nil)

	_, _, w := setupGin()
	req := httptest.NewRequest("POST", "/books", jsonBody(dto.CreateBookRequest{
		Title:  "Charlotte's Web",
		Author: "E. B. White",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/books", func(c *gin.Context) {
		setAuth(c)
		h.CreateBook(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 14002 {
		t.Errorf("expected error code 14002, got %d", resp.Code)
	}
}

func TestBookHandler_GetBook_NotFound(t *testing.T) {
	mock := &mockBookService{getErr: service.ErrBookNotFound}
	h := NewBookHandler(mock, nil)

	_, _, w := setupGin()
	req := httptest.NewRequest("GET", "/books/nope", nil)

	r := gin.New()
	r.GET("/books/:id", h.GetBook)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 14001 {
		t.Errorf("expected error code 14001, got %d", resp.Code)
	}
}

func TestBookHandler_DeleteBook_StudentForbidden(t *testing.T) {
	mock := &mockBookService{deleteErr: service.ErrTeacherOnly}
	h := NewBookHandler(mock, nil)

	_, _, w := setupGin()
	req := httptest.NewRequest("DELETE", "/books/book-001", nil)

	r := gin.New()
	r.DELETE("/books/:id", func(c *gin.Context) {
		setAuth(c)
		h.DeleteBook(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 10003 {
		t.Errorf("expected error code 10003, got %d", resp.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// TradeHandler Tests
// ═══════════════════════════════════════════════════════════

func TestTradeHandler_ProposeTrade_Success(t *testing.T) {
	mock := &mockTradeService{
		proposeResult: &dto.TradeRequestResponse{
			ID:            "trade-001",
			BookID:        "book-b",
			OfferedBookID: "book-a",
			FromUserID:    "test-user-id",
			ToUserID:      "other-user",
			Status:        "pending",
		},
	}
	h := NewTradeHandler(mock, nil)

	_, _, w := setupGin()
	req := httptest.NewRequest("POST", "/trades", jsonBody(dto.ProposeTradeRequest{
		BookID:        "9f4c2a10-1111-4222-8333-444455556666",
		OfferedBookID: "9f4c2a10-1111-4222-8333-444455557777",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/trades", func(c *gin.Context) {
		setAuth(c)
		h.ProposeTrade(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", w.Code)
	}
}

func TestTradeHandler_ProposeTrade_PendingExists(t *testing.T) {
	mock := &mockTradeService{proposeErr: service.ErrTradePendingExists}
	h := NewTradeHandler(mock, nil)

	_, _, w := setupGin()
	req := httptest.NewRequest("POST", "/trades", jsonBody(dto.ProposeTradeRequest{
		BookID:        "9f4c2a10-1111-4222-8333-444455556666",
		OfferedBookID: "9f4c2a10-1111-4222-8333-444455557777",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/trades", func(c *gin.Context) {
		setAuth(c)
		h.ProposeTrade(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 16004 {
		t.Errorf("expected error code 16004, got %d", resp.Code)
	}
}

func TestTradeHandler_ResolveTrade_Accept(t *testing.T) {
	mock := &mockTradeService{
		resolveResult: &dto.TradeRequestResponse{
			ID:     "trade-001",
			Status: "accepted",
		},
	}
	h := NewTradeHandler(mock, nil)

	_, _, w := setupGin()
	req := httptest.NewRequest("PUT", "/trades/trade-001", jsonBody(dto.ResolveTradeRequest{
		Decision: "accepted",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.PUT("/trades/:id", func(c *gin.Context) {
		setAuth(c)
		h.ResolveTrade(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestTradeHandler_ResolveTrade_BadDecision(t *testing.T) {
	mock := &mockTradeService{}
	h := NewTradeHandler(mock, nil)

	_, _, w := setupGin()
	req := httptest.NewRequest("PUT", "/trades/trade-001", jsonBody(map[string]string{
		"decision": "maybe",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.PUT("/trades/:id", func(c *gin.Context) {
		setAuth(c)
		h.ResolveTrade(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestTradeHandler_ResolveTrade_NotRecipient(t *testing.T) {
	mock := &mockTradeService{resolveErr: service.ErrTradeNotRecipient}
	h := NewTradeHandler(mock, nil)

	_, _, w := setupGin()
	req := httptest.NewRequest("PUT", "/trades/trade-001", jsonBody(dto.ResolveTradeRequest{
		Decision: "accepted",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.PUT("/trades/:id", func(c *gin.Context) {
		setAuth(c)
		h.ResolveTrade(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 16005 {
		t.Errorf("expected error code 16005, got %d", resp.Code)
	}
}

func TestTradeHandler_ResolveTrade_SwapConflict(t *testing.T) {
	mock := &mockTradeService{resolveErr: pkgerrors.ErrSwapConflict}
	h := NewTradeHandler(mock, nil)

	_, _, w := setupGin()
	req := httptest.NewRequest("PUT", "/trades/trade-001", jsonBody(dto.ResolveTradeRequest{
		Decision: "accepted",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.PUT("/trades/:id", func(c *gin.Context) {
		setAuth(c)
		h.ResolveTrade(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 16007 {
		t.Errorf("expected error code 16007, got %d", resp.Code)
	}
}

func TestTradeHandler_ListIncoming_Success(t *testing.T) {
	mock := &mockTradeService{
		incomingResult: []dto.TradeRequestResponse{
			{ID: "trade-001", Status: "pending"},
		},
	}
	h := NewTradeHandler(mock, nil)

	_, _, w := setupGin()
	req := httptest.NewRequest("GET", "/trades/incoming?status=pending", nil)

	r := gin.New()
	r.GET("/trades/incoming", func(c *gin.Context) {
		setAuth(c)
		h.ListIncomingTrades(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// ReadingHandler Tests
// ═══════════════════════════════════════════════════════════

func TestReadingHandler_MarkAsRead_Success(t *testing.T) {
	mock := &mockReadingService{
		markResult: &dto.MarkAsReadResponse{
			Status: dto.ReadingStatusResponse{
				BookID: "book-001",
				UserID: "test-user-id",
				ReadAt: time.Now().Format(time.RFC3339),
			},
		},
	}
	h := NewReadingHandler(mock, &mockLeaderboardService{}, nil)

	_, _, w := setupGin()
	req := httptest.NewRequest("POST", "/books/book-001/read", nil)

	r := gin.New()
	r.POST("/books/:id/read", func(c *gin.Context) {
		setAuth(c)
		h.MarkAsRead(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestReadingHandler_MarkAsRead_DailyLimit(t *testing.T) {
	mock := &mockReadingService{markErr: service.ErrDailyLimitReached}
	h := NewReadingHandler(mock, &mockLeaderboardService{}, nil)

	_, _, w := setupGin()
	req := httptest.NewRequest("POST", "/books/book-001/read", nil)

	r := gin.New()
	r.POST("/books/:id/read", func(c *gin.Context) {
		setAuth(c)
		h.MarkAsRead(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusTooManyRequests {
		t.Errorf("expected 429, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 17001 {
		t.Errorf("expected error code 17001, got %d", resp.Code)
	}
}

func TestReadingHandler_Leaderboard_Success(t *testing.T) {
	lb := &mockLeaderboardService{
		rankingResult: []dto.LeaderboardEntry{
			{Rank: 1, UserID: "student-001", Name: "Kaan Yilmaz", ReadCount: 7},
			{Rank: 2, UserID: "student-002", Name: "Elif Kaya", ReadCount: 4},
		},
	}
	h := NewReadingHandler(&mockReadingService{}, lb, nil)

	_, _, w := setupGin()
	req := httptest.NewRequest("GET", "/leaderboard", nil)

	r := gin.New()
	r.GET("/leaderboard", h.Leaderboard)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Kaan Yilmaz") {
		t.Error("expected leaderboard body to contain the top reader")
	}
}

// ═══════════════════════════════════════════════════════════
// ClassroomHandler Tests
// ═══════════════════════════════════════════════════════════

func TestClassroomHandler_CreateClassroom_Duplicate(t *testing.T) {
	mock := &mockClassroomService{createErr: service.ErrClassroomExists}
	h := NewClassroomHandler(mock)

	_, _, w := setupGin()
	req := httptest.NewRequest("POST", "/classrooms", jsonBody(dto.CreateClassroomRequest{
		Grade:     5,
		ClassName: "A",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/classrooms", func(c *gin.Context) {
		setAuth(c)
		h.CreateClassroom(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 13002 {
		t.Errorf("expected error code 13002, got %d", resp.Code)
	}
}

func TestClassroomHandler_DeleteClassroom_NotOwner(t *testing.T) {
	mock := &mockClassroomService{deleteErr: service.ErrNotClassroomOwner}
	h := NewClassroomHandler(mock)

	_, _, w := setupGin()
	req := httptest.NewRequest("DELETE", "/classrooms/class-001", nil)

	r := gin.New()
	r.DELETE("/classrooms/:id", func(c *gin.Context) {
		setAuth(c)
		h.DeleteClassroom(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 13005 {
		t.Errorf("expected error code 13005, got %d", resp.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// CommentHandler Tests
// ═══════════════════════════════════════════════════════════

func TestCommentHandler_CreateComment_Success(t *testing.T) {
	mock := &mockCommentService{
		createResult: &dto.CommentResponse{
			ID:       "comment-001",
			BookID:   "book-001",
			UserName: "Kaan Yilmaz",
			Text:     "cok guzel bir kitap",
		},
	}
	h := NewCommentHandler(mock)

	_, _, w := setupGin()
	req := httptest.NewRequest("POST", "/books/book-001/comments", jsonBody(dto.CreateCommentRequest{
		Text: "cok guzel bir kitap",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/books/:id/comments", func(c *gin.Context) {
		setAuth(c)
		h.CreateComment(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", w.Code)
	}
}

func TestCommentHandler_DeleteComment_Forbidden(t *testing.T) {
	mock := &mockCommentService{deleteErr: service.ErrTeacherOnly}
	h := NewCommentHandler(mock)

	_, _, w := setupGin()
	req := httptest.NewRequest("DELETE", "/comments/comment-001", nil)

	r := gin.New()
	r.DELETE("/comments/:id", func(c *gin.Context) {
		setAuth(c)
		h.DeleteComment(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// ExportHandler Tests
// ═══════════════════════════════════════════════════════════

func TestExportHandler_Export_Success(t *testing.T) {
	mock := &mockExportService{
		buf:      bytes.NewBufferString("xlsx-bytes"),
		filename: "reading_activity_5A.xlsx",
	}
	h := NewExportHandler(mock)

	_, _, w := setupGin()
	req := httptest.NewRequest("GET", "/classrooms/class-001/export", nil)

	r := gin.New()
	r.GET("/classrooms/:id/export", func(c *gin.Context) {
		setAuth(c)
		h.ExportClassroomActivity(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	disposition := w.Header().Get("Content-Disposition")
	if !strings.Contains(disposition, "reading_activity_5A.xlsx") {
		t.Errorf("expected filename in Content-Disposition, got %q", disposition)
	}
	contentType := w.Header().Get("Content-Type")
	if !strings.Contains(contentType, "spreadsheetml") {
		t.Errorf("expected xlsx content type, got %q", contentType)
	}
	if w.Body.String() != "xlsx-bytes" {
		t.Error("expected raw workbook bytes in the body")
	}
}

func TestExportHandler_Export_NotOwner(t *testing.T) {
	mock := &mockExportService{err: service.ErrNotClassroomOwner}
	h := NewExportHandler(mock)

	_, _, w := setupGin()
	req := httptest.NewRequest("GET", "/classrooms/class-001/export", nil)

	r := gin.New()
	r.GET("/classrooms/:id/export", func(c *gin.Context) {
		setAuth(c)
		h.ExportClassroomActivity(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 13005 {
		t.Errorf("expected error code 13005, got %d", resp.Code)
	}
}

func TestExportHandler_Export_NoStudents(t *testing.T) {
	mock := &mockExportService{err: service.ErrExportNoStudents}
	h := NewExportHandler(mock)

	_, _, w := setupGin()
	req := httptest.NewRequest("GET", "/classrooms/class-001/export", nil)

	r := gin.New()
	r.GET("/classrooms/:id/export", func(c *gin.Context) {
		setAuth(c)
		h.ExportClassroomActivity(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 18001 {
		t.Errorf("expected error code 18001, got %d", resp.Code)
	}
}
