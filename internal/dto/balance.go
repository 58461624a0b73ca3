package dto

import (
	"github.com/shopspring/decimal"

	"github.com/splitmate/splitmate_backend/internal/core/domain"
)

// --- Balance DTOs ---

// BalanceResponse defines a user's derived standing within a group.
type BalanceResponse struct {
	UserID     string          `json:"userID"`
	GroupID    string          `json:"groupID"`
	TotalPaid  decimal.Decimal `json:"totalPaid"`
	TotalOwed  decimal.Decimal `json:"totalOwed"`
	NetBalance decimal.Decimal `json:"netBalance"`
}

// ToBalanceResponse converts domain.Balance to DTO.
func ToBalanceResponse(b *domain.Balance) BalanceResponse {
	return BalanceResponse{
		UserID:     b.UserID,
		GroupID:    b.GroupID,
		TotalPaid:  b.TotalPaid,
		TotalOwed:  b.TotalOwed,
		NetBalance: b.NetBalance,
	}
}

// ListBalancesResponse wraps a group's member balances.
type ListBalancesResponse struct {
	Balances []BalanceResponse `json:"balances"`
}

// ToListBalancesResponse converts a slice of domain.Balance to DTO.
func ToListBalancesResponse(bs []domain.Balance) ListBalancesResponse {
	list := make([]BalanceResponse, len(bs))
	for i, b := range bs {
		list[i] = ToBalanceResponse(&b)
	}
	return ListBalancesResponse{Balances: list}
}

// BalanceSummaryResponse aggregates a user's balances across all their groups.
type BalanceSummaryResponse struct {
	TotalBalance   decimal.Decimal   `json:"totalBalance"`
	TotalOwed      decimal.Decimal   `json:"totalOwed"`
	TotalLent      decimal.Decimal   `json:"totalLent"`
	GroupBreakdown []BalanceResponse `json:"groupBreakdown"`
}

// ToBalanceSummaryResponse converts domain.BalanceSummary to DTO.
func ToBalanceSummaryResponse(s *domain.BalanceSummary) BalanceSummaryResponse {
	breakdown := make([]BalanceResponse, len(s.GroupBreakdown))
	for i, b := range s.GroupBreakdown {
		breakdown[i] = ToBalanceResponse(&b)
	}
	return BalanceSummaryResponse{
		TotalBalance:   s.TotalBalance,
		TotalOwed:      s.TotalOwed,
		TotalLent:      s.TotalLent,
		GroupBreakdown: breakdown,
	}
}

// --- Analytics DTOs ---

// AnalyticsParams defines query parameters for group analytics.
type AnalyticsParams struct {
	Period string `form:"period,default=month" binding:"omitempty,oneof=week month year"`
}

// GroupAnalyticsResponse summarizes a group's spending over a time window.
type GroupAnalyticsResponse struct {
	Period            string                     `json:"period"`
	TotalAmount       decimal.Decimal            `json:"totalAmount"`
	ExpenseCount      int                        `json:"expenseCount"`
	CategoryBreakdown map[string]decimal.Decimal `json:"categoryBreakdown"`
	DailyExpenses     map[string]decimal.Decimal `json:"dailyExpenses"`
}

// ToGroupAnalyticsResponse converts domain.GroupAnalytics to DTO.
func ToGroupAnalyticsResponse(a *domain.GroupAnalytics) GroupAnalyticsResponse {
	categories := make(map[string]decimal.Decimal, len(a.CategoryBreakdown))
	for c, v := range a.CategoryBreakdown {
		categories[string(c)] = v
	}
	return GroupAnalyticsResponse{
		Period:            a.Period,
		TotalAmount:       a.TotalAmount,
		ExpenseCount:      a.ExpenseCount,
		CategoryBreakdown: categories,
		DailyExpenses:     a.DailyExpenses,
	}
}
