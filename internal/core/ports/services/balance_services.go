package services

import (
	"context"

	"github.com/splitmate/splitmate_backend/internal/core/domain"
)

// BalanceService defines operations for derived balances and spending analytics
type BalanceService interface {
	// GetGroupBalances computes per-member balances for a group, ordered by net
	// balance descending. The requesting user must be a member.
	GetGroupBalances(ctx context.Context, groupID string, requestingUserID string) ([]domain.Balance, error)

	// GetUserBalanceSummary computes the user's cross-group balance summary.
	GetUserBalanceSummary(ctx context.Context, userID string) (*domain.BalanceSummary, error)

	// GetGroupAnalytics summarizes a group's spending for the given period
	// ("week", "month" or "year"). The requesting user must be a member.
	GetGroupAnalytics(ctx context.Context, groupID string, period string, requestingUserID string) (*domain.GroupAnalytics, error)
}
