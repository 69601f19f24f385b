package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/kvyts/library_lending_app/internal/apperrors"
	"github.com/kvyts/library_lending_app/internal/core/domain"
	portssvc "github.com/kvyts/library_lending_app/internal/core/ports/services"
	"github.com/kvyts/library_lending_app/internal/dto"
	"github.com/kvyts/library_lending_app/internal/handlers"
	"github.com/kvyts/library_lending_app/internal/platform/config"
)

// --- Test Suite ---
type BookHandlerTestSuite struct {
	suite.Suite
	router               *gin.Engine
	mockBookService      *MockBookService
	mockBorrowingService *MockBorrowingService
	mockUserService      *MockUserService
	jwtSecret            string
}

// generateTestToken creates a signed JWT for testing.
func (suite *BookHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "lla-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *BookHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.mockBookService = new(MockBookService)
	suite.mockBorrowingService = new(MockBorrowingService)
	suite.mockUserService = new(MockUserService)

	cfg := &config.Config{
		JWTSecret:    suite.jwtSecret,
		IsProduction: true, // skips swagger registration
	}
	container := &portssvc.ServiceContainer{
		Book:      suite.mockBookService,
		Borrowing: suite.mockBorrowingService,
		User:      suite.mockUserService,
	}
	handlers.RegisterRoutes(suite.router, cfg, container)
}

// expectRequester makes the auth middleware resolve the given requester.
func (suite *BookHandlerTestSuite) expectRequester(r domain.Requester) string {
	suite.mockUserService.On("ResolveRequester", mock.Anything, r.UserID).Return(r, nil).Once()
	return suite.generateTestToken(r.UserID)
}

// --- Public read tests ---

func (suite *BookHandlerTestSuite) TestListBooks_PublicNoToken() {
	books := []domain.Book{
		{BookID: 1, Title: "A Book", Author: "Author One"},
		{BookID: 2, Title: "B Book", Author: "Author Two"},
	}
	suite.mockBookService.On("ListBooks", mock.Anything, mock.MatchedBy(func(p dto.ListBooksParams) bool {
		return p.Title == "book" && p.Limit == 20
	})).Return(books, nil).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/books?title=book", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var body []dto.BookListItemResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Len(body, 2)
	suite.Equal("A Book", body[0].Title)
	suite.mockBookService.AssertExpectations(suite.T())
}

func (suite *BookHandlerTestSuite) TestGetBook_PublicNoToken() {
	book := &domain.Book{BookID: 7, Title: "A Book", Author: "Author", Inventory: 3, DailyFee: decimal.RequireFromString("1.25"), Cover: domain.CoverHard}
	suite.mockBookService.On("GetBookByID", mock.Anything, int64(7)).Return(book, nil).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/books/7", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var body dto.BookResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal(int64(7), body.BookID)
	suite.Equal("HARD", body.Cover)
	suite.mockBookService.AssertExpectations(suite.T())
}

func (suite *BookHandlerTestSuite) TestGetBook_NotFound() {
	suite.mockBookService.On("GetBookByID", mock.Anything, int64(99)).Return(nil, apperrors.ErrNotFound).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/books/99", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockBookService.AssertExpectations(suite.T())
}

func (suite *BookHandlerTestSuite) TestGetBook_InvalidID() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/books/notanumber", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockBookService.AssertNotCalled(suite.T(), "GetBookByID", mock.Anything, mock.Anything)
}

// --- Write tests ---

func (suite *BookHandlerTestSuite) TestCreateBook_RequiresToken() {
	payload := dto.CreateBookRequest{Title: "New", Author: "Anon", Inventory: 1}
	body, _ := json.Marshal(payload)

	req, _ := http.NewRequest(http.MethodPost, "/api/v1/books", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockBookService.AssertNotCalled(suite.T(), "CreateBook", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *BookHandlerTestSuite) TestCreateBook_StaffSuccess() {
	staff := domain.Requester{UserID: uuid.NewString(), IsStaff: true}
	token := suite.expectRequester(staff)

	payload := dto.CreateBookRequest{Title: "New", Author: "Anon", Inventory: 1, DailyFee: decimal.RequireFromString("0.50"), Cover: "SOFT"}
	created := &domain.Book{BookID: 3, Title: "New", Author: "Anon", Inventory: 1, DailyFee: payload.DailyFee, Cover: domain.CoverSoft}

	suite.mockBookService.On("CreateBook", mock.Anything, mock.AnythingOfType("dto.CreateBookRequest"), staff).
		Return(created, nil).Once()

	body, _ := json.Marshal(payload)
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/books", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.BookResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(int64(3), resp.BookID)
	suite.mockBookService.AssertExpectations(suite.T())
}

func (suite *BookHandlerTestSuite) TestCreateBook_MemberForbidden() {
	member := domain.Requester{UserID: uuid.NewString()}
	token := suite.expectRequester(member)

	suite.mockBookService.On("CreateBook", mock.Anything, mock.AnythingOfType("dto.CreateBookRequest"), member).
		Return(nil, apperrors.ErrForbidden).Once()

	payload := dto.CreateBookRequest{Title: "New", Author: "Anon"}
	body, _ := json.Marshal(payload)
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/books", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockBookService.AssertExpectations(suite.T())
}

func (suite *BookHandlerTestSuite) TestCreateBook_InvalidCoverRejectedByBinding() {
	staff := domain.Requester{UserID: uuid.NewString(), IsStaff: true}
	token := suite.expectRequester(staff)

	req, _ := http.NewRequest(http.MethodPost, "/api/v1/books", bytes.NewReader([]byte(`{"title":"T","author":"A","cover":"LEATHER"}`)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockBookService.AssertNotCalled(suite.T(), "CreateBook", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *BookHandlerTestSuite) TestDeleteBook_StaffNoContent() {
	staff := domain.Requester{UserID: uuid.NewString(), IsStaff: true}
	token := suite.expectRequester(staff)

	suite.mockBookService.On("DeleteBook", mock.Anything, int64(4), staff).Return(nil).Once()

	req, _ := http.NewRequest(http.MethodDelete, "/api/v1/books/4", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNoContent, w.Code)
	suite.mockBookService.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestBookHandler(t *testing.T) {
	suite.Run(t, new(BookHandlerTestSuite))
}
