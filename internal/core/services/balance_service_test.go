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
	portssvc "github.com/splitmate/splitmate_backend/internal/core/ports/services"
	"github.com/splitmate/splitmate_backend/internal/core/services"
)

// --- Test Suite Setup ---
type BalanceServiceTestSuite struct {
	suite.Suite
	mockExpenseRepo *MockExpenseRepository
	mockGroupRepo   *MockGroupRepository
	mockAuthorizer  *MockGroupAuthorizer
	service         portssvc.BalanceService
	groupID         string
	userA           string
	userB           string
}

func (suite *BalanceServiceTestSuite) SetupTest() {
	suite.mockExpenseRepo = new(MockExpenseRepository)
	suite.mockGroupRepo = new(MockGroupRepository)
	suite.mockAuthorizer = new(MockGroupAuthorizer)
	suite.service = services.NewBalanceService(suite.mockExpenseRepo, suite.mockGroupRepo,
		services.WithGroupAuthorizer(suite.mockAuthorizer))

	suite.groupID = uuid.NewString()
	suite.userA = "user-a"
	suite.userB = "user-b"
}

// fixtureExpenses builds one 60.00 expense paid by userA, split evenly.
func (suite *BalanceServiceTestSuite) fixtureExpenses() ([]domain.Expense, []domain.ExpenseSplit) {
	expenseID := uuid.NewString()
	expenses := []domain.Expense{{
		ExpenseID: expenseID,
		GroupID:   suite.groupID,
		PaidByID:  suite.userA,
		Amount:    decimal.RequireFromString("60.00"),
		Category:  domain.CategoryDining,
	}}
	splits := []domain.ExpenseSplit{
		{ExpenseID: expenseID, UserID: suite.userA, Amount: decimal.RequireFromString("30.00"), IsPaid: true},
		{ExpenseID: expenseID, UserID: suite.userB, Amount: decimal.RequireFromString("30.00")},
	}
	return expenses, splits
}

// --- Test Cases ---

func (suite *BalanceServiceTestSuite) TestGetGroupBalances_Success() {
	ctx := context.Background()
	expenses, splits := suite.fixtureExpenses()

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userA, suite.groupID, domain.RoleMember).Return(nil).Once()
	suite.mockExpenseRepo.On("ListExpensesByGroupSince", ctx, suite.groupID, time.Time{}).Return(expenses, nil).Once()
	suite.mockExpenseRepo.On("FindSplitsByGroupID", ctx, suite.groupID).Return(splits, nil).Once()

	balances, err := suite.service.GetGroupBalances(ctx, suite.groupID, suite.userA)

	suite.Require().NoError(err)
	suite.Require().Len(balances, 2)

	// Creditor first, and the net amounts mirror each other.
	suite.Equal(suite.userA, balances[0].UserID)
	suite.True(balances[0].NetBalance.Equal(decimal.RequireFromString("30.00")))
	suite.Equal(suite.userB, balances[1].UserID)
	suite.True(balances[1].NetBalance.Equal(decimal.RequireFromString("-30.00")))

	net := balances[0].NetBalance.Add(balances[1].NetBalance)
	suite.True(net.IsZero(), "group nets must cancel out, got %s", net)
	suite.mockExpenseRepo.AssertExpectations(suite.T())
}

func (suite *BalanceServiceTestSuite) TestGetGroupBalances_NonMemberForbidden() {
	ctx := context.Background()

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, "stranger", suite.groupID, domain.RoleMember).Return(apperrors.ErrForbidden).Once()

	_, err := suite.service.GetGroupBalances(ctx, suite.groupID, "stranger")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockExpenseRepo.AssertNotCalled(suite.T(), "ListExpensesByGroupSince", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *BalanceServiceTestSuite) TestGetUserBalanceSummary_AcrossGroups() {
	ctx := context.Background()
	expenses, splits := suite.fixtureExpenses()
	groups := []domain.Group{{GroupID: suite.groupID, Name: "Flat", IsActive: true}}

	suite.mockGroupRepo.On("ListGroupsByUserID", ctx, suite.userB).Return(groups, nil).Once()
	suite.mockExpenseRepo.On("ListExpensesByGroupSince", ctx, suite.groupID, time.Time{}).Return(expenses, nil).Once()
	suite.mockExpenseRepo.On("FindSplitsByGroupID", ctx, suite.groupID).Return(splits, nil).Once()

	summary, err := suite.service.GetUserBalanceSummary(ctx, suite.userB)

	suite.Require().NoError(err)
	suite.True(summary.TotalBalance.Equal(decimal.RequireFromString("-30.00")))
	suite.True(summary.TotalOwed.Equal(decimal.RequireFromString("30.00")))
	suite.True(summary.TotalLent.IsZero())
	suite.Require().Len(summary.GroupBreakdown, 1)
	suite.Equal(suite.userB, summary.GroupBreakdown[0].UserID)
}

func (suite *BalanceServiceTestSuite) TestGetUserBalanceSummary_NoGroups() {
	ctx := context.Background()

	suite.mockGroupRepo.On("ListGroupsByUserID", ctx, suite.userA).Return([]domain.Group{}, nil).Once()

	summary, err := suite.service.GetUserBalanceSummary(ctx, suite.userA)

	suite.Require().NoError(err)
	suite.True(summary.TotalBalance.IsZero())
	suite.Empty(summary.GroupBreakdown)
}

func (suite *BalanceServiceTestSuite) TestGetGroupAnalytics_MonthWindow() {
	ctx := context.Background()
	expenses, _ := suite.fixtureExpenses()

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userA, suite.groupID, domain.RoleMember).Return(nil).Once()
	suite.mockExpenseRepo.On("ListExpensesByGroupSince", ctx, suite.groupID, mock.MatchedBy(func(since time.Time) bool {
		// Roughly one month back from now.
		return since.Before(time.Now().AddDate(0, 0, -27)) && since.After(time.Now().AddDate(0, 0, -32))
	})).Return(expenses, nil).Once()

	analytics, err := suite.service.GetGroupAnalytics(ctx, suite.groupID, "", suite.userA)

	suite.Require().NoError(err)
	suite.Equal("month", analytics.Period)
	suite.Equal(1, analytics.ExpenseCount)
	suite.True(analytics.TotalAmount.Equal(decimal.RequireFromString("60.00")))
	suite.True(analytics.CategoryBreakdown[domain.CategoryDining].Equal(decimal.RequireFromString("60.00")))
}

func (suite *BalanceServiceTestSuite) TestGetGroupAnalytics_UnknownPeriod() {
	ctx := context.Background()

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userA, suite.groupID, domain.RoleMember).Return(nil).Once()

	_, err := suite.service.GetGroupAnalytics(ctx, suite.groupID, "decade", suite.userA)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func TestBalanceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BalanceServiceTestSuite))
}
