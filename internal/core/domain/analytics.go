package domain

import "github.com/shopspring/decimal"

// GroupAnalytics summarizes a group's spending over a time window.
type GroupAnalytics struct {
	Period            string                              `json:"period"`
	TotalAmount       decimal.Decimal                     `json:"totalAmount"`
	ExpenseCount      int                                 `json:"expenseCount"`
	CategoryBreakdown map[ExpenseCategory]decimal.Decimal `json:"categoryBreakdown"`
	DailyExpenses     map[string]decimal.Decimal          `json:"dailyExpenses"` // Keyed by ISO date (UTC)
}
