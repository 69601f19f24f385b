package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/kvyts/library_lending_app/internal/apperrors"
	"github.com/kvyts/library_lending_app/internal/core/domain"
	portsrepo "github.com/kvyts/library_lending_app/internal/core/ports/repositories"
	portssvc "github.com/kvyts/library_lending_app/internal/core/ports/services"
	"github.com/kvyts/library_lending_app/internal/core/services"
	"github.com/kvyts/library_lending_app/internal/dto"
)

// --- Mock BorrowingRepository ---
type MockBorrowingRepository struct {
	mock.Mock
}

func (m *MockBorrowingRepository) FindBorrowingByID(ctx context.Context, borrowingID int64) (*domain.Borrowing, error) {
	args := m.Called(ctx, borrowingID)
	var b *domain.Borrowing
	if args.Get(0) != nil {
		b = args.Get(0).(*domain.Borrowing)
	}
	return b, args.Error(1)
}

func (m *MockBorrowingRepository) FindBorrowings(ctx context.Context, filter portsrepo.BorrowingFilter) ([]domain.Borrowing, error) {
	args := m.Called(ctx, filter)
	var bs []domain.Borrowing
	if args.Get(0) != nil {
		bs = args.Get(0).([]domain.Borrowing)
	}
	return bs, args.Error(1)
}

func (m *MockBorrowingRepository) CreateBorrowing(ctx context.Context, borrowing domain.Borrowing) (*domain.Borrowing, error) {
	args := m.Called(ctx, borrowing)
	var b *domain.Borrowing
	if args.Get(0) != nil {
		b = args.Get(0).(*domain.Borrowing)
	}
	return b, args.Error(1)
}

func (m *MockBorrowingRepository) MarkReturned(ctx context.Context, borrowingID int64, returnedAt time.Time, updatedBy string) error {
	args := m.Called(ctx, borrowingID, returnedAt, updatedBy)
	return args.Error(0)
}

func (m *MockBorrowingRepository) UpdateExpectedReturnDate(ctx context.Context, borrowingID int64, newDate time.Time, updatedBy string) error {
	args := m.Called(ctx, borrowingID, newDate, updatedBy)
	return args.Error(0)
}

func (m *MockBorrowingRepository) DeleteBorrowing(ctx context.Context, borrowingID int64) error {
	args := m.Called(ctx, borrowingID)
	return args.Error(0)
}

// --- Test Suite ---
type BorrowingServiceTestSuite struct {
	suite.Suite
	mockRepo *MockBorrowingRepository
	service  portssvc.BorrowingSvcFacade

	member domain.Requester
	staff  domain.Requester
}

func (suite *BorrowingServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockBorrowingRepository)
	suite.service = services.NewBorrowingService(suite.mockRepo)
	suite.member = domain.Requester{UserID: uuid.NewString()}
	suite.staff = domain.Requester{UserID: uuid.NewString(), IsStaff: true}
}

func dateOnly(t time.Time) dto.DateOnly {
	return dto.NewDateOnly(t)
}

// --- Borrow Tests ---

func (suite *BorrowingServiceTestSuite) TestBorrow_Success() {
	ctx := context.Background()
	tomorrow := time.Now().AddDate(0, 0, 1)
	req := dto.CreateBorrowingRequest{BookID: 42, ExpectedReturnDate: dateOnly(tomorrow)}

	suite.mockRepo.On("CreateBorrowing", ctx, mock.MatchedBy(func(b domain.Borrowing) bool {
		return b.BookID == 42 &&
			b.UserID == suite.member.UserID &&
			b.ActualReturnDate == nil &&
			!b.ExpectedReturnDate.Before(b.BorrowDate)
	})).Return(&domain.Borrowing{BorrowingID: 7, BookID: 42, UserID: suite.member.UserID}, nil).Once()

	created, err := suite.service.Borrow(ctx, req, suite.member)

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.Equal(int64(7), created.BorrowingID)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *BorrowingServiceTestSuite) TestBorrow_ReturnDateInPast() {
	ctx := context.Background()
	yesterday := time.Now().AddDate(0, 0, -1)
	req := dto.CreateBorrowingRequest{BookID: 42, ExpectedReturnDate: dateOnly(yesterday)}

	created, err := suite.service.Borrow(ctx, req, suite.member)

	suite.Require().Error(err)
	suite.Nil(created)
	suite.ErrorIs(err, apperrors.ErrInvalidReturnDate)
	suite.mockRepo.AssertNotCalled(suite.T(), "CreateBorrowing", mock.Anything, mock.Anything)
}

func (suite *BorrowingServiceTestSuite) TestBorrow_ReturnDateToday() {
	ctx := context.Background()
	req := dto.CreateBorrowingRequest{BookID: 42, ExpectedReturnDate: dateOnly(time.Now())}

	suite.mockRepo.On("CreateBorrowing", ctx, mock.AnythingOfType("domain.Borrowing")).
		Return(&domain.Borrowing{BorrowingID: 8, BookID: 42, UserID: suite.member.UserID}, nil).Once()

	created, err := suite.service.Borrow(ctx, req, suite.member)

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *BorrowingServiceTestSuite) TestBorrow_NoInventory() {
	ctx := context.Background()
	req := dto.CreateBorrowingRequest{BookID: 42, ExpectedReturnDate: dateOnly(time.Now().AddDate(0, 0, 7))}

	suite.mockRepo.On("CreateBorrowing", ctx, mock.AnythingOfType("domain.Borrowing")).
		Return(nil, apperrors.ErrNoInventory).Once()

	created, err := suite.service.Borrow(ctx, req, suite.member)

	suite.Require().Error(err)
	suite.Nil(created)
	suite.ErrorIs(err, apperrors.ErrNoInventory)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *BorrowingServiceTestSuite) TestBorrow_BookNotFound() {
	ctx := context.Background()
	req := dto.CreateBorrowingRequest{BookID: 999, ExpectedReturnDate: dateOnly(time.Now().AddDate(0, 0, 7))}

	suite.mockRepo.On("CreateBorrowing", ctx, mock.AnythingOfType("domain.Borrowing")).
		Return(nil, apperrors.ErrNotFound).Once()

	created, err := suite.service.Borrow(ctx, req, suite.member)

	suite.Require().Error(err)
	suite.Nil(created)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertExpectations(suite.T())
}

// --- GetBorrowingByID Tests ---

func (suite *BorrowingServiceTestSuite) TestGetBorrowingByID_Owner() {
	ctx := context.Background()
	expected := &domain.Borrowing{BorrowingID: 1, UserID: suite.member.UserID}

	suite.mockRepo.On("FindBorrowingByID", ctx, int64(1)).Return(expected, nil).Once()

	b, err := suite.service.GetBorrowingByID(ctx, 1, suite.member)

	suite.Require().NoError(err)
	suite.Equal(expected, b)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *BorrowingServiceTestSuite) TestGetBorrowingByID_ForeignHiddenAsNotFound() {
	ctx := context.Background()
	foreign := &domain.Borrowing{BorrowingID: 1, UserID: uuid.NewString()}

	suite.mockRepo.On("FindBorrowingByID", ctx, int64(1)).Return(foreign, nil).Once()

	b, err := suite.service.GetBorrowingByID(ctx, 1, suite.member)

	suite.Require().Error(err)
	suite.Nil(b)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *BorrowingServiceTestSuite) TestGetBorrowingByID_StaffSeesForeign() {
	ctx := context.Background()
	foreign := &domain.Borrowing{BorrowingID: 1, UserID: uuid.NewString()}

	suite.mockRepo.On("FindBorrowingByID", ctx, int64(1)).Return(foreign, nil).Once()

	b, err := suite.service.GetBorrowingByID(ctx, 1, suite.staff)

	suite.Require().NoError(err)
	suite.Equal(foreign, b)
	suite.mockRepo.AssertExpectations(suite.T())
}

// --- ListBorrowings Tests ---

func (suite *BorrowingServiceTestSuite) TestListBorrowings_MemberAlwaysSelfScoped() {
	ctx := context.Background()
	params := dto.ListBorrowingsParams{IsActive: true, UserID: "somebody-else", Limit: 20}

	suite.mockRepo.On("FindBorrowings", ctx, portsrepo.BorrowingFilter{
		OnlyActive: true,
		UserID:     suite.member.UserID,
		Limit:      20,
	}).Return([]domain.Borrowing{{BorrowingID: 1, UserID: suite.member.UserID}}, nil).Once()

	bs, err := suite.service.ListBorrowings(ctx, params, suite.member)

	suite.Require().NoError(err)
	suite.Len(bs, 1)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *BorrowingServiceTestSuite) TestListBorrowings_StaffMayFilterByUser() {
	ctx := context.Background()
	target := uuid.NewString()
	params := dto.ListBorrowingsParams{UserID: target, Limit: 10}

	suite.mockRepo.On("FindBorrowings", ctx, portsrepo.BorrowingFilter{
		UserID: target,
		Limit:  10,
	}).Return([]domain.Borrowing{}, nil).Once()

	bs, err := suite.service.ListBorrowings(ctx, params, suite.staff)

	suite.Require().NoError(err)
	suite.NotNil(bs)
	suite.Empty(bs)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *BorrowingServiceTestSuite) TestListBorrowings_RepoError() {
	ctx := context.Background()
	expectedErr := assert.AnError

	suite.mockRepo.On("FindBorrowings", ctx, mock.AnythingOfType("repositories.BorrowingFilter")).
		Return(nil, expectedErr).Once()

	bs, err := suite.service.ListBorrowings(ctx, dto.ListBorrowingsParams{}, suite.staff)

	suite.Require().Error(err)
	suite.Nil(bs)
	suite.ErrorIs(err, expectedErr)
	suite.mockRepo.AssertExpectations(suite.T())
}

// --- Return Tests ---

func (suite *BorrowingServiceTestSuite) TestReturn_Success() {
	ctx := context.Background()
	open := &domain.Borrowing{BorrowingID: 3, UserID: suite.member.UserID}

	suite.mockRepo.On("FindBorrowingByID", ctx, int64(3)).Return(open, nil).Once()
	suite.mockRepo.On("MarkReturned", ctx, int64(3), mock.AnythingOfType("time.Time"), suite.member.UserID).
		Return(nil).Once()

	err := suite.service.Return(ctx, 3, suite.member)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *BorrowingServiceTestSuite) TestReturn_AlreadyReturned() {
	ctx := context.Background()
	returned := time.Now().AddDate(0, 0, -1)
	closed := &domain.Borrowing{BorrowingID: 3, UserID: suite.member.UserID, ActualReturnDate: &returned}

	suite.mockRepo.On("FindBorrowingByID", ctx, int64(3)).Return(closed, nil).Once()
	suite.mockRepo.On("MarkReturned", ctx, int64(3), mock.AnythingOfType("time.Time"), suite.member.UserID).
		Return(apperrors.ErrAlreadyReturned).Once()

	err := suite.service.Return(ctx, 3, suite.member)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrAlreadyReturned)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *BorrowingServiceTestSuite) TestReturn_ForeignBorrowingNotVisible() {
	ctx := context.Background()
	foreign := &domain.Borrowing{BorrowingID: 3, UserID: uuid.NewString()}

	suite.mockRepo.On("FindBorrowingByID", ctx, int64(3)).Return(foreign, nil).Once()

	err := suite.service.Return(ctx, 3, suite.member)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertNotCalled(suite.T(), "MarkReturned", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *BorrowingServiceTestSuite) TestReturn_StaffReturnsForeignBorrowing() {
	ctx := context.Background()
	foreign := &domain.Borrowing{BorrowingID: 3, UserID: uuid.NewString()}

	suite.mockRepo.On("FindBorrowingByID", ctx, int64(3)).Return(foreign, nil).Once()
	suite.mockRepo.On("MarkReturned", ctx, int64(3), mock.AnythingOfType("time.Time"), suite.staff.UserID).
		Return(nil).Once()

	err := suite.service.Return(ctx, 3, suite.staff)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

// --- UpdateExpectedReturnDate Tests ---

func (suite *BorrowingServiceTestSuite) TestUpdateExpectedReturnDate_Success() {
	ctx := context.Background()
	borrowDate := time.Now().AddDate(0, 0, -3)
	newDate := time.Now().AddDate(0, 0, 14)
	open := &domain.Borrowing{BorrowingID: 5, UserID: suite.member.UserID, BorrowDate: borrowDate}
	updated := &domain.Borrowing{BorrowingID: 5, UserID: suite.member.UserID, BorrowDate: borrowDate, ExpectedReturnDate: newDate}

	suite.mockRepo.On("FindBorrowingByID", ctx, int64(5)).Return(open, nil).Once()
	suite.mockRepo.On("UpdateExpectedReturnDate", ctx, int64(5), mock.AnythingOfType("time.Time"), suite.member.UserID).
		Return(nil).Once()
	suite.mockRepo.On("FindBorrowingByID", ctx, int64(5)).Return(updated, nil).Once()

	b, err := suite.service.UpdateExpectedReturnDate(ctx, 5, dto.UpdateBorrowingRequest{ExpectedReturnDate: dateOnly(newDate)}, suite.member)

	suite.Require().NoError(err)
	suite.Equal(updated, b)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *BorrowingServiceTestSuite) TestUpdateExpectedReturnDate_PastDate() {
	ctx := context.Background()
	borrowDate := time.Now().AddDate(0, 0, -3)
	open := &domain.Borrowing{BorrowingID: 5, UserID: suite.member.UserID, BorrowDate: borrowDate}

	suite.mockRepo.On("FindBorrowingByID", ctx, int64(5)).Return(open, nil).Once()

	b, err := suite.service.UpdateExpectedReturnDate(ctx, 5, dto.UpdateBorrowingRequest{ExpectedReturnDate: dateOnly(time.Now().AddDate(0, 0, -1))}, suite.member)

	suite.Require().Error(err)
	suite.Nil(b)
	suite.ErrorIs(err, apperrors.ErrInvalidReturnDate)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateExpectedReturnDate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *BorrowingServiceTestSuite) TestUpdateExpectedReturnDate_Closed() {
	ctx := context.Background()
	borrowDate := time.Now().AddDate(0, 0, -3)
	open := &domain.Borrowing{BorrowingID: 5, UserID: suite.member.UserID, BorrowDate: borrowDate}

	suite.mockRepo.On("FindBorrowingByID", ctx, int64(5)).Return(open, nil).Once()
	suite.mockRepo.On("UpdateExpectedReturnDate", ctx, int64(5), mock.AnythingOfType("time.Time"), suite.member.UserID).
		Return(apperrors.ErrAlreadyReturned).Once()

	b, err := suite.service.UpdateExpectedReturnDate(ctx, 5, dto.UpdateBorrowingRequest{ExpectedReturnDate: dateOnly(time.Now().AddDate(0, 0, 7))}, suite.member)

	suite.Require().Error(err)
	suite.Nil(b)
	suite.ErrorIs(err, apperrors.ErrAlreadyReturned)
	suite.mockRepo.AssertExpectations(suite.T())
}

// --- DeleteBorrowing Tests ---

func (suite *BorrowingServiceTestSuite) TestDeleteBorrowing_NonStaffForbidden() {
	ctx := context.Background()

	err := suite.service.DeleteBorrowing(ctx, 9, suite.member)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockRepo.AssertNotCalled(suite.T(), "DeleteBorrowing", mock.Anything, mock.Anything)
}

func (suite *BorrowingServiceTestSuite) TestDeleteBorrowing_Staff() {
	ctx := context.Background()

	suite.mockRepo.On("DeleteBorrowing", ctx, int64(9)).Return(nil).Once()

	err := suite.service.DeleteBorrowing(ctx, 9, suite.staff)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

// --- Run Suite ---
func TestBorrowingService(t *testing.T) {
	suite.Run(t, new(BorrowingServiceTestSuite))
}
