package ledger

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/splitmate/splitmate_backend/internal/apperrors"
	"github.com/splitmate/splitmate_backend/internal/core/domain"
)

// Period selects the time window for spending analytics.
type Period string

const (
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
)

// ParsePeriod validates a period string, defaulting to month when empty.
func ParsePeriod(s string) (Period, error) {
	switch Period(s) {
	case PeriodWeek, PeriodMonth, PeriodYear:
		return Period(s), nil
	case "":
		return PeriodMonth, nil
	default:
		return "", fmt.Errorf("%w: unknown period %q", apperrors.ErrValidation, s)
	}
}

// PeriodStart returns the inclusive lower bound of the window ending at now:
// the last 7 days, 1 calendar month, or 1 calendar year.
func PeriodStart(p Period, now time.Time) time.Time {
	switch p {
	case PeriodWeek:
		return now.AddDate(0, 0, -7)
	case PeriodYear:
		return now.AddDate(-1, 0, 0)
	default:
		return now.AddDate(0, -1, 0)
	}
}

// AggregateByCategory buckets expense totals by category. The sum over all
// buckets equals TotalAmount of the same input.
func AggregateByCategory(expenses []domain.Expense) map[domain.ExpenseCategory]decimal.Decimal {
	buckets := make(map[domain.ExpenseCategory]decimal.Decimal)
	for _, e := range expenses {
		buckets[e.Category] = buckets[e.Category].Add(e.Amount)
	}
	return buckets
}

// AggregateByDay buckets expense totals by ISO date (UTC) of creation.
func AggregateByDay(expenses []domain.Expense) map[string]decimal.Decimal {
	buckets := make(map[string]decimal.Decimal)
	for _, e := range expenses {
		day := e.CreatedAt.UTC().Format("2006-01-02")
		buckets[day] = buckets[day].Add(e.Amount)
	}
	return buckets
}

// TotalAmount sums the amounts of the given expenses.
func TotalAmount(expenses []domain.Expense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}
	return total
}
