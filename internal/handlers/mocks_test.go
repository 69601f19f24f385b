package handlers_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"golang.org/x/oauth2"

	"github.com/kvyts/library_lending_app/internal/core/domain"
	portssvc "github.com/kvyts/library_lending_app/internal/core/ports/services"
	"github.com/kvyts/library_lending_app/internal/dto"
)

// --- Mock BookService ---
type MockBookService struct {
	mock.Mock
}

func (m *MockBookService) GetBookByID(ctx context.Context, bookID int64) (*domain.Book, error) {
	args := m.Called(ctx, bookID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Book), args.Error(1)
}
func (m *MockBookService) ListBooks(ctx context.Context, params dto.ListBooksParams) ([]domain.Book, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Book), args.Error(1)
}
func (m *MockBookService) CreateBook(ctx context.Context, req dto.CreateBookRequest, requester domain.Requester) (*domain.Book, error) {
	args := m.Called(ctx, req, requester)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Book), args.Error(1)
}
func (m *MockBookService) UpdateBook(ctx context.Context, bookID int64, req dto.UpdateBookRequest, requester domain.Requester) (*domain.Book, error) {
	args := m.Called(ctx, bookID, req, requester)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Book), args.Error(1)
}
func (m *MockBookService) DeleteBook(ctx context.Context, bookID int64, requester domain.Requester) error {
	args := m.Called(ctx, bookID, requester)
	return args.Error(0)
}

var _ portssvc.BookSvcFacade = (*MockBookService)(nil)

// --- Mock BorrowingService ---
type MockBorrowingService struct {
	mock.Mock
}

func (m *MockBorrowingService) GetBorrowingByID(ctx context.Context, borrowingID int64, requester domain.Requester) (*domain.Borrowing, error) {
	args := m.Called(ctx, borrowingID, requester)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Borrowing), args.Error(1)
}
func (m *MockBorrowingService) ListBorrowings(ctx context.Context, params dto.ListBorrowingsParams, requester domain.Requester) ([]domain.Borrowing, error) {
	args := m.Called(ctx, params, requester)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Borrowing), args.Error(1)
}
func (m *MockBorrowingService) Borrow(ctx context.Context, req dto.CreateBorrowingRequest, requester domain.Requester) (*domain.Borrowing, error) {
	args := m.Called(ctx, req, requester)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Borrowing), args.Error(1)
}
func (m *MockBorrowingService) Return(ctx context.Context, borrowingID int64, requester domain.Requester) error {
	args := m.Called(ctx, borrowingID, requester)
	return args.Error(0)
}
func (m *MockBorrowingService) UpdateExpectedReturnDate(ctx context.Context, borrowingID int64, req dto.UpdateBorrowingRequest, requester domain.Requester) (*domain.Borrowing, error) {
	args := m.Called(ctx, borrowingID, req, requester)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Borrowing), args.Error(1)
}
func (m *MockBorrowingService) DeleteBorrowing(ctx context.Context, borrowingID int64, requester domain.Requester) error {
	args := m.Called(ctx, borrowingID, requester)
	return args.Error(0)
}

var _ portssvc.BorrowingSvcFacade = (*MockBorrowingService)(nil)

// --- Mock UserService ---
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) ListUsers(ctx context.Context, params dto.ListUsersParams) ([]domain.User, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}
func (m *MockUserService) ResolveRequester(ctx context.Context, userID string) (domain.Requester, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(domain.Requester), args.Error(1)
}
func (m *MockUserService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, requester domain.Requester) (*domain.User, error) {
	args := m.Called(ctx, userID, req, requester)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) DeleteUser(ctx context.Context, userID string, requester domain.Requester) error {
	args := m.Called(ctx, userID, requester)
	return args.Error(0)
}
func (m *MockUserService) FindOrCreateOAuthUser(ctx context.Context, email string, name string) (*domain.User, error) {
	args := m.Called(ctx, email, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, refreshTokenExpiryTime time.Time) error {
	args := m.Called(ctx, userID, refreshTokenHash, refreshTokenExpiryTime)
	return args.Error(0)
}
func (m *MockUserService) ClearRefreshToken(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}
func (m *MockUserService) AuthenticateUser(ctx context.Context, username string, password string) (*domain.User, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

var _ portssvc.UserSvcFacade = (*MockUserService)(nil)

// --- Mock TokenService ---
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}
func (m *MockTokenService) GenerateRefreshToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}
func (m *MockTokenService) ValidateAndParseRefreshToken(ctx context.Context, userID string, refreshToken string) (*domain.User, error) {
	args := m.Called(ctx, userID, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

var _ portssvc.TokenSvcFacade = (*MockTokenService)(nil)

// --- Mock GoogleOAuthService ---
type MockGoogleOAuthService struct {
	mock.Mock
}

func (m *MockGoogleOAuthService) ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*oauth2.Token), args.Error(1)
}
func (m *MockGoogleOAuthService) ValidateIDToken(ctx context.Context, rawIDToken string) (string, string, error) {
	args := m.Called(ctx, rawIDToken)
	return args.String(0), args.String(1), args.Error(2)
}

var _ portssvc.GoogleOAuthHandlerSvcFacade = (*MockGoogleOAuthService)(nil)
