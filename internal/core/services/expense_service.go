package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/splitmate/splitmate_backend/internal/apperrors"
	"github.com/splitmate/splitmate_backend/internal/core/domain"
	"github.com/splitmate/splitmate_backend/internal/core/ledger"
	portsrepo "github.com/splitmate/splitmate_backend/internal/core/ports/repositories"
	portssvc "github.com/splitmate/splitmate_backend/internal/core/ports/services"
	"github.com/splitmate/splitmate_backend/internal/dto"
)

// expenseService implements the ExpenseSvcFacade interface
type expenseService struct {
	BaseService
	expenseRepo portsrepo.ExpenseRepositoryFacade
	groupRepo   portsrepo.GroupMembershipManager
}

// NewExpenseService creates a new expense service with the provided dependencies
func NewExpenseService(expenseRepo portsrepo.ExpenseRepositoryFacade, groupRepo portsrepo.GroupMembershipManager, groupAuthorizer portssvc.GroupAuthorizerSvc) portssvc.ExpenseSvcFacade {
	return &expenseService{
		BaseService: BaseService{GroupAuthorizer: groupAuthorizer},
		expenseRepo: expenseRepo,
		groupRepo:   groupRepo,
	}
}

// Ensure expenseService implements the ExpenseSvcFacade interface
var _ portssvc.ExpenseSvcFacade = (*expenseService)(nil)

// CreateExpense records an expense paid by the requesting user and its computed splits atomically
func (s *expenseService) CreateExpense(ctx context.Context, groupID string, req dto.CreateExpenseRequest, payerUserID string) (*domain.Expense, error) {
	if err := s.AuthorizeUser(ctx, payerUserID, groupID, domain.RoleMember); err != nil {
		return nil, err
	}

	if !domain.IsValidExpenseCategory(req.Category) {
		return nil, apperrors.NewValidationFailedError(fmt.Sprintf("unknown expense category %q", req.Category))
	}

	splitType := domain.SplitType(req.SplitType)
	if splitType == "" {
		splitType = domain.SplitEqual
	}

	members, err := s.groupRepo.ListGroupMembers(ctx, groupID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list group members for expense",
			slog.String("group_id", groupID))
		return nil, err
	}
	memberIDs := make(map[string]struct{}, len(members))
	for _, m := range members {
		memberIDs[m.UserID] = struct{}{}
	}

	var splits []domain.ExpenseSplit
	switch splitType {
	case domain.SplitEqual:
		participantIDs := req.ParticipantIDs
		if len(participantIDs) == 0 {
			// Default to splitting across the whole group.
			participantIDs = make([]string, 0, len(members))
			for _, m := range members {
				participantIDs = append(participantIDs, m.UserID)
			}
		}
		for _, id := range participantIDs {
			if _, ok := memberIDs[id]; !ok {
				return nil, apperrors.NewValidationFailedError(fmt.Sprintf("participant %s is not a member of the group", id))
			}
		}
		splits, err = ledger.ComputeEqualSplit(req.Amount, participantIDs, payerUserID)
	case domain.SplitCustom:
		shares := make([]ledger.CustomShare, len(req.Shares))
		for i, sh := range req.Shares {
			if _, ok := memberIDs[sh.UserID]; !ok {
				return nil, apperrors.NewValidationFailedError(fmt.Sprintf("participant %s is not a member of the group", sh.UserID))
			}
			shares[i] = ledger.CustomShare{UserID: sh.UserID, Amount: sh.Amount}
		}
		splits, err = ledger.ComputeCustomSplit(req.Amount, shares, payerUserID)
	default:
		return nil, apperrors.NewValidationFailedError(fmt.Sprintf("unsupported split type %q", splitType))
	}
	if err != nil {
		return nil, err
	}

	now := time.Now()
	expense := domain.Expense{
		ExpenseID:   uuid.NewString(),
		GroupID:     groupID,
		PaidByID:    payerUserID,
		Amount:      req.Amount,
		Title:       req.Title,
		Description: req.Description,
		Category:    domain.ExpenseCategory(req.Category),
		SplitType:   splitType,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     payerUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: payerUserID,
		},
	}
	for i := range splits {
		splits[i].ExpenseID = expense.ExpenseID
	}

	if err := s.expenseRepo.SaveExpense(ctx, expense, splits); err != nil {
		s.LogError(ctx, err, "Failed to save expense",
			slog.String("expense_id", expense.ExpenseID),
			slog.String("group_id", groupID))
		return nil, err
	}

	expense.Splits = splits
	s.LogInfo(ctx, "Expense created successfully",
		slog.String("expense_id", expense.ExpenseID),
		slog.String("group_id", groupID),
		slog.Int("split_count", len(splits)))
	return &expense, nil
}

// GetExpenseByID retrieves an expense with its splits
func (s *expenseService) GetExpenseByID(ctx context.Context, expenseID string, requestingUserID string) (*domain.Expense, error) {
	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find expense by ID",
				slog.String("expense_id", expenseID))
		}
		return nil, err
	}

	if err := s.AuthorizeUser(ctx, requestingUserID, expense.GroupID, domain.RoleMember); err != nil {
		return nil, err
	}

	splits, err := s.expenseRepo.FindSplitsByExpenseID(ctx, expenseID)
	if err != nil {
		s.LogError(ctx, err, "Failed to find splits for expense",
			slog.String("expense_id", expenseID))
		return nil, err
	}
	expense.Splits = splits
	return expense, nil
}

// ListExpensesByGroup retrieves a paginated list of a group's expenses, newest first
func (s *expenseService) ListExpensesByGroup(ctx context.Context, groupID string, requestingUserID string, limit int, nextToken *string) ([]domain.Expense, *string, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, groupID, domain.RoleMember); err != nil {
		return nil, nil, err
	}

	if limit <= 0 {
		limit = 20
	}
	expenses, newNextToken, err := s.expenseRepo.ListExpensesByGroup(ctx, groupID, limit, nextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list expenses for group",
			slog.String("group_id", groupID))
		return nil, nil, err
	}
	if expenses == nil {
		expenses = []domain.Expense{}
	}

	// Attach splits so list entries show who owes what.
	if len(expenses) > 0 {
		expenseIDs := make([]string, len(expenses))
		for i, e := range expenses {
			expenseIDs[i] = e.ExpenseID
		}
		splitsByExpense, err := s.expenseRepo.FindSplitsByExpenseIDs(ctx, expenseIDs)
		if err != nil {
			s.LogError(ctx, err, "Failed to find splits for expenses",
				slog.String("group_id", groupID))
			return nil, nil, err
		}
		for i := range expenses {
			expenses[i].Splits = splitsByExpense[expenses[i].ExpenseID]
		}
	}

	return expenses, newNextToken, nil
}

// UpdateExpense updates an expense's descriptive fields. Amount and splits are immutable
func (s *expenseService) UpdateExpense(ctx context.Context, expenseID string, req dto.UpdateExpenseRequest, requestingUserID string) (*domain.Expense, error) {
	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return nil, err
	}

	if err := s.authorizeExpenseMutation(ctx, expense, requestingUserID); err != nil {
		return nil, err
	}

	if req.Title != nil {
		expense.Title = *req.Title
	}
	if req.Description != nil {
		expense.Description = *req.Description
	}
	if req.Category != nil {
		if !domain.IsValidExpenseCategory(*req.Category) {
			return nil, apperrors.NewValidationFailedError(fmt.Sprintf("unknown expense category %q", *req.Category))
		}
		expense.Category = domain.ExpenseCategory(*req.Category)
	}
	expense.LastUpdatedAt = time.Now()
	expense.LastUpdatedBy = requestingUserID

	if err := s.expenseRepo.UpdateExpense(ctx, *expense); err != nil {
		s.LogError(ctx, err, "Failed to update expense",
			slog.String("expense_id", expenseID))
		return nil, err
	}

	splits, err := s.expenseRepo.FindSplitsByExpenseID(ctx, expenseID)
	if err != nil {
		s.LogError(ctx, err, "Failed to find splits for expense",
			slog.String("expense_id", expenseID))
		return nil, err
	}
	expense.Splits = splits

	s.LogInfo(ctx, "Expense updated successfully",
		slog.String("expense_id", expenseID))
	return expense, nil
}

// DeleteExpense removes an expense and its splits
func (s *expenseService) DeleteExpense(ctx context.Context, expenseID string, requestingUserID string) error {
	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return err
	}

	if err := s.authorizeExpenseMutation(ctx, expense, requestingUserID); err != nil {
		return err
	}

	if err := s.expenseRepo.DeleteExpense(ctx, expenseID); err != nil {
		s.LogError(ctx, err, "Failed to delete expense",
			slog.String("expense_id", expenseID))
		return err
	}

	s.LogInfo(ctx, "Expense deleted successfully",
		slog.String("expense_id", expenseID),
		slog.String("group_id", expense.GroupID))
	return nil
}

// authorizeExpenseMutation allows the payer to modify their own expense and
// the group admin to modify any expense in the group.
func (s *expenseService) authorizeExpenseMutation(ctx context.Context, expense *domain.Expense, requestingUserID string) error {
	if expense.PaidByID == requestingUserID {
		return s.AuthorizeUser(ctx, requestingUserID, expense.GroupID, domain.RoleMember)
	}
	return s.AuthorizeUser(ctx, requestingUserID, expense.GroupID, domain.RoleAdmin)
}
