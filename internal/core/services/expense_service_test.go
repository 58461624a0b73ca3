package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/splitmate/splitmate_backend/internal/apperrors"
	"github.com/splitmate/splitmate_backend/internal/core/domain"
	portsrepo "github.com/splitmate/splitmate_backend/internal/core/ports/repositories"
	portssvc "github.com/splitmate/splitmate_backend/internal/core/ports/services"
	"github.com/splitmate/splitmate_backend/internal/core/services"
	"github.com/splitmate/splitmate_backend/internal/dto"
)

// --- Mock ExpenseRepository ---
type MockExpenseRepository struct {
	mock.Mock
}

// Ensure MockExpenseRepository implements portsrepo.ExpenseRepositoryFacade
var _ portsrepo.ExpenseRepositoryFacade = (*MockExpenseRepository)(nil)

func (m *MockExpenseRepository) SaveExpense(ctx context.Context, expense domain.Expense, splits []domain.ExpenseSplit) error {
	args := m.Called(ctx, expense, splits)
	return args.Error(0)
}

func (m *MockExpenseRepository) FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	args := m.Called(ctx, expenseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}

func (m *MockExpenseRepository) ListExpensesByGroup(ctx context.Context, groupID string, limit int, nextToken *string) ([]domain.Expense, *string, error) {
	args := m.Called(ctx, groupID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.Expense), returnedNextToken, args.Error(2)
}

func (m *MockExpenseRepository) ListExpensesByGroupSince(ctx context.Context, groupID string, since time.Time) ([]domain.Expense, error) {
	args := m.Called(ctx, groupID, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Expense), args.Error(1)
}

func (m *MockExpenseRepository) UpdateExpense(ctx context.Context, expense domain.Expense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

func (m *MockExpenseRepository) DeleteExpense(ctx context.Context, expenseID string) error {
	args := m.Called(ctx, expenseID)
	return args.Error(0)
}

func (m *MockExpenseRepository) FindSplitsByExpenseID(ctx context.Context, expenseID string) ([]domain.ExpenseSplit, error) {
	args := m.Called(ctx, expenseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExpenseSplit), args.Error(1)
}

func (m *MockExpenseRepository) FindSplitsByExpenseIDs(ctx context.Context, expenseIDs []string) (map[string][]domain.ExpenseSplit, error) {
	args := m.Called(ctx, expenseIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string][]domain.ExpenseSplit), args.Error(1)
}

func (m *MockExpenseRepository) FindSplitsByGroupID(ctx context.Context, groupID string) ([]domain.ExpenseSplit, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExpenseSplit), args.Error(1)
}

// --- Mock GroupMembershipManager ---
type MockGroupMembershipRepo struct {
	mock.Mock
}

var _ portsrepo.GroupMembershipManager = (*MockGroupMembershipRepo)(nil)

func (m *MockGroupMembershipRepo) AddUserToGroup(ctx context.Context, membership domain.GroupMember) error {
	args := m.Called(ctx, membership)
	return args.Error(0)
}

func (m *MockGroupMembershipRepo) RemoveUserFromGroup(ctx context.Context, groupID, userID string) error {
	args := m.Called(ctx, groupID, userID)
	return args.Error(0)
}

func (m *MockGroupMembershipRepo) FindUserGroupRole(ctx context.Context, userID, groupID string) (*domain.GroupMember, error) {
	args := m.Called(ctx, userID, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GroupMember), args.Error(1)
}

func (m *MockGroupMembershipRepo) ListGroupMembers(ctx context.Context, groupID string) ([]domain.GroupMember, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GroupMember), args.Error(1)
}

// --- Mock GroupAuthorizer ---
type MockGroupAuthorizer struct {
	mock.Mock
}

var _ portssvc.GroupAuthorizerSvc = (*MockGroupAuthorizer)(nil)

func (m *MockGroupAuthorizer) AuthorizeUserAction(ctx context.Context, userID, groupID string, requiredRole domain.GroupRole) error {
	args := m.Called(ctx, userID, groupID, requiredRole)
	return args.Error(0)
}

// --- Test Suite Setup ---
type ExpenseServiceTestSuite struct {
	suite.Suite
	mockExpenseRepo *MockExpenseRepository
	mockGroupRepo   *MockGroupMembershipRepo
	mockAuthorizer  *MockGroupAuthorizer
	service         portssvc.ExpenseSvcFacade
	groupID         string
	payerID         string
	memberID        string
	otherMemberID   string
	members         []domain.GroupMember
}

func (suite *ExpenseServiceTestSuite) SetupTest() {
	suite.mockExpenseRepo = new(MockExpenseRepository)
	suite.mockGroupRepo = new(MockGroupMembershipRepo)
	suite.mockAuthorizer = new(MockGroupAuthorizer)
	suite.service = services.NewExpenseService(suite.mockExpenseRepo, suite.mockGroupRepo, suite.mockAuthorizer)

	suite.groupID = uuid.NewString()
	suite.payerID = "user-a"
	suite.memberID = "user-b"
	suite.otherMemberID = "user-c"
	suite.members = []domain.GroupMember{
		{UserID: suite.payerID, GroupID: suite.groupID, Role: domain.RoleAdmin},
		{UserID: suite.memberID, GroupID: suite.groupID, Role: domain.RoleMember},
		{UserID: suite.otherMemberID, GroupID: suite.groupID, Role: domain.RoleMember},
	}
}

// --- Test Cases ---

func (suite *ExpenseServiceTestSuite) TestCreateExpense_EqualSplit_Success() {
	ctx := context.Background()
	req := dto.CreateExpenseRequest{
		Amount:   decimal.RequireFromString("100.00"),
		Title:    "Dinner",
		Category: string(domain.CategoryDining),
	}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.payerID, suite.groupID, domain.RoleMember).Return(nil).Once()
	suite.mockGroupRepo.On("ListGroupMembers", ctx, suite.groupID).Return(suite.members, nil).Once()
	suite.mockExpenseRepo.On("SaveExpense", ctx, mock.AnythingOfType("domain.Expense"), mock.AnythingOfType("[]domain.ExpenseSplit")).Return(nil).Once()

	expense, err := suite.service.CreateExpense(ctx, suite.groupID, req, suite.payerID)

	suite.Require().NoError(err)
	suite.Require().NotNil(expense)
	suite.NotEmpty(expense.ExpenseID)
	suite.Equal(suite.groupID, expense.GroupID)
	suite.Equal(suite.payerID, expense.PaidByID)
	suite.Equal(domain.SplitEqual, expense.SplitType)
	suite.Len(expense.Splits, 3)

	// The splits must cover the full amount and flag only the payer as settled.
	total := decimal.Zero
	for _, s := range expense.Splits {
		total = total.Add(s.Amount)
		suite.Equal(expense.ExpenseID, s.ExpenseID)
		suite.Equal(s.UserID == suite.payerID, s.IsPaid)
	}
	suite.True(total.Equal(req.Amount), "split total %s != amount %s", total, req.Amount)

	suite.mockAuthorizer.AssertExpectations(suite.T())
	suite.mockGroupRepo.AssertExpectations(suite.T())
	suite.mockExpenseRepo.AssertExpectations(suite.T())
}

func (suite *ExpenseServiceTestSuite) TestCreateExpense_CustomSplit_Success() {
	ctx := context.Background()
	req := dto.CreateExpenseRequest{
		Amount:    decimal.RequireFromString("90.00"),
		Title:     "Groceries",
		Category:  string(domain.CategoryGroceries),
		SplitType: string(domain.SplitCustom),
		Shares: []dto.CustomShareInput{
			{UserID: suite.payerID, Amount: decimal.RequireFromString("60.00")},
			{UserID: suite.memberID, Amount: decimal.RequireFromString("30.00")},
		},
	}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.payerID, suite.groupID, domain.RoleMember).Return(nil).Once()
	suite.mockGroupRepo.On("ListGroupMembers", ctx, suite.groupID).Return(suite.members, nil).Once()
	suite.mockExpenseRepo.On("SaveExpense", ctx, mock.AnythingOfType("domain.Expense"), mock.AnythingOfType("[]domain.ExpenseSplit")).Return(nil).Once()

	expense, err := suite.service.CreateExpense(ctx, suite.groupID, req, suite.payerID)

	suite.Require().NoError(err)
	suite.Equal(domain.SplitCustom, expense.SplitType)
	suite.Len(expense.Splits, 2)
	suite.mockExpenseRepo.AssertExpectations(suite.T())
}

func (suite *ExpenseServiceTestSuite) TestCreateExpense_NotAMember() {
	ctx := context.Background()
	req := dto.CreateExpenseRequest{
		Amount:   decimal.RequireFromString("10.00"),
		Title:    "Coffee",
		Category: string(domain.CategoryDining),
	}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, "stranger", suite.groupID, domain.RoleMember).Return(apperrors.ErrForbidden).Once()

	_, err := suite.service.CreateExpense(ctx, suite.groupID, req, "stranger")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockExpenseRepo.AssertNotCalled(suite.T(), "SaveExpense", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ExpenseServiceTestSuite) TestCreateExpense_ParticipantOutsideGroup() {
	ctx := context.Background()
	req := dto.CreateExpenseRequest{
		Amount:         decimal.RequireFromString("50.00"),
		Title:          "Taxi",
		Category:       string(domain.CategoryTransport),
		ParticipantIDs: []string{suite.payerID, "not-a-member"},
	}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.payerID, suite.groupID, domain.RoleMember).Return(nil).Once()
	suite.mockGroupRepo.On("ListGroupMembers", ctx, suite.groupID).Return(suite.members, nil).Once()

	_, err := suite.service.CreateExpense(ctx, suite.groupID, req, suite.payerID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockExpenseRepo.AssertNotCalled(suite.T(), "SaveExpense", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ExpenseServiceTestSuite) TestCreateExpense_UnknownCategory() {
	ctx := context.Background()
	req := dto.CreateExpenseRequest{
		Amount:   decimal.RequireFromString("50.00"),
		Title:    "Stuff",
		Category: "lasers",
	}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.payerID, suite.groupID, domain.RoleMember).Return(nil).Once()

	_, err := suite.service.CreateExpense(ctx, suite.groupID, req, suite.payerID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ExpenseServiceTestSuite) TestGetExpenseByID_AttachesSplits() {
	ctx := context.Background()
	expenseID := uuid.NewString()
	stored := &domain.Expense{
		ExpenseID: expenseID,
		GroupID:   suite.groupID,
		PaidByID:  suite.payerID,
		Amount:    decimal.RequireFromString("40.00"),
	}
	splits := []domain.ExpenseSplit{
		{ExpenseID: expenseID, UserID: suite.payerID, Amount: decimal.RequireFromString("20.00"), IsPaid: true},
		{ExpenseID: expenseID, UserID: suite.memberID, Amount: decimal.RequireFromString("20.00")},
	}

	suite.mockExpenseRepo.On("FindExpenseByID", ctx, expenseID).Return(stored, nil).Once()
	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.memberID, suite.groupID, domain.RoleMember).Return(nil).Once()
	suite.mockExpenseRepo.On("FindSplitsByExpenseID", ctx, expenseID).Return(splits, nil).Once()

	expense, err := suite.service.GetExpenseByID(ctx, expenseID, suite.memberID)

	suite.Require().NoError(err)
	suite.Len(expense.Splits, 2)
	suite.mockExpenseRepo.AssertExpectations(suite.T())
}

func (suite *ExpenseServiceTestSuite) TestListExpensesByGroup_PassesToken() {
	ctx := context.Background()
	expenseID := uuid.NewString()
	page := []domain.Expense{{ExpenseID: expenseID, GroupID: suite.groupID}}
	splitsByExpense := map[string][]domain.ExpenseSplit{
		expenseID: {{ExpenseID: expenseID, UserID: suite.payerID, Amount: decimal.RequireFromString("5.00"), IsPaid: true}},
	}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.memberID, suite.groupID, domain.RoleMember).Return(nil).Once()
	suite.mockExpenseRepo.On("ListExpensesByGroup", ctx, suite.groupID, 20, (*string)(nil)).Return(page, "tok-next", nil).Once()
	suite.mockExpenseRepo.On("FindSplitsByExpenseIDs", ctx, []string{expenseID}).Return(splitsByExpense, nil).Once()

	expenses, nextToken, err := suite.service.ListExpensesByGroup(ctx, suite.groupID, suite.memberID, 0, nil)

	suite.Require().NoError(err)
	suite.Len(expenses, 1)
	suite.Len(expenses[0].Splits, 1)
	suite.Require().NotNil(nextToken)
	suite.Equal("tok-next", *nextToken)
	suite.mockExpenseRepo.AssertExpectations(suite.T())
}

func (suite *ExpenseServiceTestSuite) TestUpdateExpense_ByPayer() {
	ctx := context.Background()
	expenseID := uuid.NewString()
	stored := &domain.Expense{
		ExpenseID: expenseID,
		GroupID:   suite.groupID,
		PaidByID:  suite.payerID,
		Title:     "Old title",
		Category:  domain.CategoryOther,
	}
	newTitle := "New title"

	suite.mockExpenseRepo.On("FindExpenseByID", ctx, expenseID).Return(stored, nil).Once()
	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.payerID, suite.groupID, domain.RoleMember).Return(nil).Once()
	suite.mockExpenseRepo.On("UpdateExpense", ctx, mock.MatchedBy(func(e domain.Expense) bool {
		return e.Title == newTitle && e.LastUpdatedBy == suite.payerID
	})).Return(nil).Once()
	suite.mockExpenseRepo.On("FindSplitsByExpenseID", ctx, expenseID).Return([]domain.ExpenseSplit{}, nil).Once()

	updated, err := suite.service.UpdateExpense(ctx, expenseID, dto.UpdateExpenseRequest{Title: &newTitle}, suite.payerID)

	suite.Require().NoError(err)
	suite.Equal(newTitle, updated.Title)
	suite.mockExpenseRepo.AssertExpectations(suite.T())
}

func (suite *ExpenseServiceTestSuite) TestDeleteExpense_NonPayerNeedsAdmin() {
	ctx := context.Background()
	expenseID := uuid.NewString()
	stored := &domain.Expense{
		ExpenseID: expenseID,
		GroupID:   suite.groupID,
		PaidByID:  suite.payerID,
	}

	suite.mockExpenseRepo.On("FindExpenseByID", ctx, expenseID).Return(stored, nil).Once()
	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.memberID, suite.groupID, domain.RoleAdmin).Return(apperrors.ErrForbidden).Once()

	err := suite.service.DeleteExpense(ctx, expenseID, suite.memberID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockExpenseRepo.AssertNotCalled(suite.T(), "DeleteExpense", mock.Anything, mock.Anything)
}

func TestExpenseServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ExpenseServiceTestSuite))
}
