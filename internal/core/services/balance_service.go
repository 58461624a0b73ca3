package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/splitmate/splitmate_backend/internal/core/domain"
	"github.com/splitmate/splitmate_backend/internal/core/ledger"
	portsrepo "github.com/splitmate/splitmate_backend/internal/core/ports/repositories"
	portssvc "github.com/splitmate/splitmate_backend/internal/core/ports/services"
)

// balanceService implements the BalanceService interface. Balances are never
// stored; every read recomputes them from the group's expenses and splits.
type balanceService struct {
	BaseService
	expenseRepo portsrepo.ExpenseRepositoryFacade
	groupRepo   portsrepo.GroupReader
}

// BalanceServiceOption configures optional dependencies of the balance service.
type BalanceServiceOption func(*balanceService)

// WithGroupAuthorizer sets the authorizer used for membership checks.
func WithGroupAuthorizer(authorizer portssvc.GroupAuthorizerSvc) BalanceServiceOption {
	return func(s *balanceService) {
		s.GroupAuthorizer = authorizer
	}
}

// NewBalanceService creates a new balance service with the provided dependencies
func NewBalanceService(expenseRepo portsrepo.ExpenseRepositoryFacade, groupRepo portsrepo.GroupReader, opts ...BalanceServiceOption) portssvc.BalanceService {
	s := &balanceService{
		expenseRepo: expenseRepo,
		groupRepo:   groupRepo,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ensure balanceService implements the BalanceService interface
var _ portssvc.BalanceService = (*balanceService)(nil)

// GetGroupBalances computes per-member balances for a group, ordered by net balance descending
func (s *balanceService) GetGroupBalances(ctx context.Context, groupID string, requestingUserID string) ([]domain.Balance, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, groupID, domain.RoleMember); err != nil {
		return nil, err
	}
	return s.computeGroupBalances(ctx, groupID)
}

// GetUserBalanceSummary computes the user's cross-group balance summary
func (s *balanceService) GetUserBalanceSummary(ctx context.Context, userID string) (*domain.BalanceSummary, error) {
	groups, err := s.groupRepo.ListGroupsByUserID(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list groups for balance summary",
			slog.String("user_id", userID))
		return nil, err
	}

	userBalances := make([]domain.Balance, 0, len(groups))
	for _, group := range groups {
		balances, err := s.computeGroupBalances(ctx, group.GroupID)
		if err != nil {
			return nil, err
		}
		for _, b := range balances {
			if b.UserID == userID {
				userBalances = append(userBalances, b)
				break
			}
		}
	}

	summary := ledger.SummarizeBalances(userBalances)
	return &summary, nil
}

// GetGroupAnalytics summarizes a group's spending for the given period
func (s *balanceService) GetGroupAnalytics(ctx context.Context, groupID string, period string, requestingUserID string) (*domain.GroupAnalytics, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, groupID, domain.RoleMember); err != nil {
		return nil, err
	}

	p, err := ledger.ParsePeriod(period)
	if err != nil {
		return nil, err
	}

	since := ledger.PeriodStart(p, time.Now())
	expenses, err := s.expenseRepo.ListExpensesByGroupSince(ctx, groupID, since)
	if err != nil {
		s.LogError(ctx, err, "Failed to list expenses for analytics",
			slog.String("group_id", groupID))
		return nil, err
	}

	analytics := &domain.GroupAnalytics{
		Period:            string(p),
		TotalAmount:       ledger.TotalAmount(expenses),
		ExpenseCount:      len(expenses),
		CategoryBreakdown: ledger.AggregateByCategory(expenses),
		DailyExpenses:     ledger.AggregateByDay(expenses),
	}
	return analytics, nil
}

// computeGroupBalances loads a group's full expense history and derives balances.
func (s *balanceService) computeGroupBalances(ctx context.Context, groupID string) ([]domain.Balance, error) {
	expenses, err := s.expenseRepo.ListExpensesByGroupSince(ctx, groupID, time.Time{})
	if err != nil {
		s.LogError(ctx, err, "Failed to list expenses for balances",
			slog.String("group_id", groupID))
		return nil, err
	}
	splits, err := s.expenseRepo.FindSplitsByGroupID(ctx, groupID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list splits for balances",
			slog.String("group_id", groupID))
		return nil, err
	}
	return ledger.AggregateBalances(groupID, expenses, splits), nil
}
