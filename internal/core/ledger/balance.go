package ledger

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/splitmate/splitmate_backend/internal/core/domain"
)

// AggregateBalances derives per-user balances from a group's expenses and
// splits. The caller supplies rows already scoped to one group; groupID is
// only stamped onto the result rows.
//
// A user appears in the result if they are a payer of any expense or hold any
// split; users with no activity yield no row at all rather than a zero-valued
// one. Results are ordered by net balance descending, with ascending user id
// as the stable tie-break.
func AggregateBalances(groupID string, expenses []domain.Expense, splits []domain.ExpenseSplit) []domain.Balance {
	paid := make(map[string]decimal.Decimal)
	owed := make(map[string]decimal.Decimal)

	for _, e := range expenses {
		paid[e.PaidByID] = paid[e.PaidByID].Add(e.Amount)
	}
	for _, s := range splits {
		owed[s.UserID] = owed[s.UserID].Add(s.Amount)
	}

	userIDs := make(map[string]struct{}, len(paid)+len(owed))
	for id := range paid {
		userIDs[id] = struct{}{}
	}
	for id := range owed {
		userIDs[id] = struct{}{}
	}

	balances := make([]domain.Balance, 0, len(userIDs))
	for id := range userIDs {
		totalPaid := paid[id]
		totalOwed := owed[id]
		balances = append(balances, domain.Balance{
			UserID:     id,
			GroupID:    groupID,
			TotalPaid:  totalPaid,
			TotalOwed:  totalOwed,
			NetBalance: totalPaid.Sub(totalOwed),
		})
	}

	sort.Slice(balances, func(i, j int) bool {
		cmp := balances[i].NetBalance.Cmp(balances[j].NetBalance)
		if cmp != 0 {
			return cmp > 0
		}
		return balances[i].UserID < balances[j].UserID
	})
	return balances
}

// SummarizeBalances folds a user's per-group balances into cross-group totals.
func SummarizeBalances(balances []domain.Balance) domain.BalanceSummary {
	summary := domain.BalanceSummary{
		TotalBalance:   decimal.Zero,
		TotalOwed:      decimal.Zero,
		TotalLent:      decimal.Zero,
		GroupBreakdown: balances,
	}
	for _, b := range balances {
		summary.TotalBalance = summary.TotalBalance.Add(b.NetBalance)
		summary.TotalOwed = summary.TotalOwed.Add(b.TotalOwed)
		summary.TotalLent = summary.TotalLent.Add(b.TotalPaid)
	}
	return summary
}
