// Package ledger contains the pure expense-splitting and balance-aggregation
// core. Every function is side-effect free and operates only on the
// collections supplied by the caller, so the package is safe for concurrent
// use and testable without any backing store.
package ledger

import (
	"errors"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/splitmate/splitmate_backend/internal/apperrors"
	"github.com/splitmate/splitmate_backend/internal/core/domain"
)

var (
	ErrNonPositiveAmount   = fmt.Errorf("%w: expense amount must be positive", apperrors.ErrValidation)
	ErrNoParticipants      = fmt.Errorf("%w: expense must have at least one participant", apperrors.ErrValidation)
	ErrAmountPrecision     = fmt.Errorf("%w: expense amount must have at most two decimal places", apperrors.ErrValidation)
	ErrShareSumMismatch    = fmt.Errorf("%w: custom shares must sum to the expense amount", apperrors.ErrValidation)
	ErrNonPositiveShare    = fmt.Errorf("%w: custom shares must be positive", apperrors.ErrValidation)
	ErrUnsupportedSplit    = errors.New("unsupported split type")
	ErrDuplicateShareUsers = fmt.Errorf("%w: duplicate participant in custom shares", apperrors.ErrValidation)
)

// CustomShare is one participant's explicitly assigned portion of an expense.
type CustomShare struct {
	UserID string
	Amount decimal.Decimal
}

// ComputeEqualSplit divides totalAmount evenly among the given participants.
//
// Division happens in integer minor units (cents). When the amount does not
// divide evenly, the leftover cents are given one each to the first
// participants in ascending user-id order, so the returned amounts always sum
// to exactly totalAmount. IsPaid is set only on the payer's own split; a payer
// who is not among the participants receives no split row.
func ComputeEqualSplit(totalAmount decimal.Decimal, participantIDs []string, payerID string) ([]domain.ExpenseSplit, error) {
	if totalAmount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrNonPositiveAmount
	}
	cents := totalAmount.Shift(2)
	if !cents.IsInteger() {
		return nil, ErrAmountPrecision
	}

	participants := uniqueSorted(participantIDs)
	if len(participants) == 0 {
		return nil, ErrNoParticipants
	}

	n := int64(len(participants))
	totalCents := cents.IntPart()
	base := totalCents / n
	remainder := totalCents % n

	splits := make([]domain.ExpenseSplit, len(participants))
	for i, userID := range participants {
		shareCents := base
		if int64(i) < remainder {
			shareCents++
		}
		splits[i] = domain.ExpenseSplit{
			UserID: userID,
			Amount: decimal.New(shareCents, -2),
			IsPaid: userID == payerID,
		}
	}
	return splits, nil
}

// ComputeCustomSplit validates explicitly assigned shares and turns them into
// split rows. Shares must be positive, name each participant at most once, and
// sum to exactly totalAmount.
func ComputeCustomSplit(totalAmount decimal.Decimal, shares []CustomShare, payerID string) ([]domain.ExpenseSplit, error) {
	if totalAmount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrNonPositiveAmount
	}
	if len(shares) == 0 {
		return nil, ErrNoParticipants
	}

	seen := make(map[string]struct{}, len(shares))
	sum := decimal.Zero
	for _, share := range shares {
		if _, dup := seen[share.UserID]; dup {
			return nil, ErrDuplicateShareUsers
		}
		seen[share.UserID] = struct{}{}
		if share.Amount.LessThanOrEqual(decimal.Zero) {
			return nil, ErrNonPositiveShare
		}
		sum = sum.Add(share.Amount)
	}
	if !sum.Equal(totalAmount) {
		return nil, ErrShareSumMismatch
	}

	ordered := make([]CustomShare, len(shares))
	copy(ordered, shares)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].UserID < ordered[j].UserID })

	splits := make([]domain.ExpenseSplit, len(ordered))
	for i, share := range ordered {
		splits[i] = domain.ExpenseSplit{
			UserID: share.UserID,
			Amount: share.Amount,
			IsPaid: share.UserID == payerID,
		}
	}
	return splits, nil
}

// ComputeSplits dispatches to the strategy matching splitType.
// Equal splits use participantIDs; custom splits use shares.
func ComputeSplits(splitType domain.SplitType, totalAmount decimal.Decimal, participantIDs []string, shares []CustomShare, payerID string) ([]domain.ExpenseSplit, error) {
	switch splitType {
	case domain.SplitEqual:
		return ComputeEqualSplit(totalAmount, participantIDs, payerID)
	case domain.SplitCustom:
		return ComputeCustomSplit(totalAmount, shares, payerID)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedSplit, splitType)
	}
}

// uniqueSorted returns the unique strings from input in ascending order.
func uniqueSorted(input []string) []string {
	seen := make(map[string]struct{}, len(input))
	result := make([]string, 0, len(input))
	for _, s := range input {
		if _, ok := seen[s]; !ok {
			seen[s] = struct{}{}
			result = append(result, s)
		}
	}
	sort.Strings(result)
	return result
}
