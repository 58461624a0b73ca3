package models

import "github.com/shopspring/decimal"

// SplitType indicates how an expense is divided among its participants.
type SplitType string

const (
	SplitEqual  SplitType = "EQUAL"
	SplitCustom SplitType = "CUSTOM"
)

// Expense represents a single payment made by one user on behalf of a group.
type Expense struct {
	ExpenseID   string          `json:"expenseID" db:"expense_id"`
	GroupID     string          `json:"groupID" db:"group_id"`
	PaidByID    string          `json:"paidByID" db:"paid_by_id"`
	Amount      decimal.Decimal `json:"amount" db:"amount"`
	Title       string          `json:"title" db:"title"`
	Description string          `json:"description" db:"description"`
	Category    string          `json:"category" db:"category"`
	SplitType   SplitType       `json:"splitType" db:"split_type"`
	AuditFields
}

// ExpenseSplit is one participant's owed share of an expense.
type ExpenseSplit struct {
	ExpenseID string          `json:"expenseID" db:"expense_id"`
	UserID    string          `json:"userID" db:"user_id"`
	Amount    decimal.Decimal `json:"amount" db:"amount"`
	IsPaid    bool            `json:"isPaid" db:"is_paid"`
}
