package domain

import "github.com/shopspring/decimal"

// Balance is a user's derived standing within a group. It is never stored;
// it is recomputed from the group's expenses and splits on every read.
type Balance struct {
	UserID     string          `json:"userID"`
	GroupID    string          `json:"groupID"`
	TotalPaid  decimal.Decimal `json:"totalPaid"`  // Sum of expense amounts this user paid for
	TotalOwed  decimal.Decimal `json:"totalOwed"`  // Sum of this user's split shares, own share included
	NetBalance decimal.Decimal `json:"netBalance"` // TotalPaid - TotalOwed
}

// BalanceSummary aggregates a user's balances across all their groups.
type BalanceSummary struct {
	TotalBalance   decimal.Decimal `json:"totalBalance"` // Sum of per-group net balances
	TotalOwed      decimal.Decimal `json:"totalOwed"`
	TotalLent      decimal.Decimal `json:"totalLent"` // Sum of per-group totals paid
	GroupBreakdown []Balance       `json:"groupBreakdown"`
}
