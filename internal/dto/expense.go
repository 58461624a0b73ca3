package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/splitmate/splitmate_backend/internal/core/domain"
)

// --- Expense DTOs ---

// CustomShareInput is one participant's explicitly assigned amount for a
// custom-split expense.
type CustomShareInput struct {
	UserID string          `json:"userID" binding:"required"`
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// CreateExpenseRequest defines data for recording a new expense. The payer is
// always the requesting user. For EQUAL splits, participantIDs defaults to the
// whole group when omitted; for CUSTOM splits, shares is required.
type CreateExpenseRequest struct {
	Amount         decimal.Decimal    `json:"amount" binding:"required"`
	Title          string             `json:"title" binding:"required,min=1,max=200"`
	Description    string             `json:"description" binding:"omitempty,max=1000"`
	Category       string             `json:"category" binding:"required,expensecategory"`
	SplitType      string             `json:"splitType" binding:"omitempty,oneof=EQUAL CUSTOM"`
	ParticipantIDs []string           `json:"participantIDs" binding:"omitempty,dive,required"`
	Shares         []CustomShareInput `json:"shares" binding:"omitempty,dive"`
}

// UpdateExpenseRequest defines the data allowed for updating an expense.
// Amount and splits are immutable; delete and recreate to change them.
type UpdateExpenseRequest struct {
	Title       *string `json:"title" binding:"omitempty,min=1,max=200"`
	Description *string `json:"description" binding:"omitempty,max=1000"`
	Category    *string `json:"category" binding:"omitempty,expensecategory"`
}

// ListExpensesParams defines query parameters for listing a group's expenses.
type ListExpensesParams struct {
	Limit     int     `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
	NextToken *string `form:"nextToken"`
}

// ExpenseSplitResponse defines data returned for one split of an expense.
type ExpenseSplitResponse struct {
	UserID string          `json:"userID"`
	Amount decimal.Decimal `json:"amount"`
	IsPaid bool            `json:"isPaid"`
}

// ExpenseResponse defines data returned for an expense.
type ExpenseResponse struct {
	ExpenseID   string                 `json:"expenseID"`
	GroupID     string                 `json:"groupID"`
	PaidByID    string                 `json:"paidByID"`
	Amount      decimal.Decimal        `json:"amount"`
	Title       string                 `json:"title"`
	Description string                 `json:"description,omitempty"`
	Category    string                 `json:"category"`
	SplitType   string                 `json:"splitType"`
	Splits      []ExpenseSplitResponse `json:"splits,omitempty"`
	CreatedAt   time.Time              `json:"createdAt"`
	CreatedBy   string                 `json:"createdBy"` // UserID
}

// ToExpenseResponse converts domain.Expense to DTO.
func ToExpenseResponse(e *domain.Expense) ExpenseResponse {
	resp := ExpenseResponse{
		ExpenseID:   e.ExpenseID,
		GroupID:     e.GroupID,
		PaidByID:    e.PaidByID,
		Amount:      e.Amount,
		Title:       e.Title,
		Description: e.Description,
		Category:    string(e.Category),
		SplitType:   string(e.SplitType),
		CreatedAt:   e.CreatedAt,
		CreatedBy:   e.CreatedBy,
	}
	if len(e.Splits) > 0 {
		resp.Splits = make([]ExpenseSplitResponse, len(e.Splits))
		for i, s := range e.Splits {
			resp.Splits[i] = ExpenseSplitResponse{
				UserID: s.UserID,
				Amount: s.Amount,
				IsPaid: s.IsPaid,
			}
		}
	}
	return resp
}

// ListExpensesResponse wraps a page of expenses with the next page token.
type ListExpensesResponse struct {
	Expenses  []ExpenseResponse `json:"expenses"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ToListExpensesResponse converts a slice of domain.Expense and token to DTO.
func ToListExpensesResponse(es []domain.Expense, nextToken *string) ListExpensesResponse {
	list := make([]ExpenseResponse, len(es))
	for i, e := range es {
		list[i] = ToExpenseResponse(&e)
	}
	return ListExpensesResponse{Expenses: list, NextToken: nextToken}
}
