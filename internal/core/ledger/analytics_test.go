package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/splitmate/splitmate_backend/internal/apperrors"
	"github.com/splitmate/splitmate_backend/internal/core/domain"
)

func TestParsePeriod(t *testing.T) {
	p, err := ParsePeriod("week")
	require.NoError(t, err)
	assert.Equal(t, PeriodWeek, p)

	p, err = ParsePeriod("")
	require.NoError(t, err)
	assert.Equal(t, PeriodMonth, p)

	_, err = ParsePeriod("decade")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestPeriodStart(t *testing.T) {
	now := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2025, 3, 8, 12, 0, 0, 0, time.UTC), PeriodStart(PeriodWeek, now))
	assert.Equal(t, time.Date(2025, 2, 15, 12, 0, 0, 0, time.UTC), PeriodStart(PeriodMonth, now))
	assert.Equal(t, time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC), PeriodStart(PeriodYear, now))
}

func TestAggregateByCategory(t *testing.T) {
	expenses := []domain.Expense{
		{Amount: mustDecimal(t, "30.00"), Category: domain.CategoryDining},
		{Amount: mustDecimal(t, "20.00"), Category: domain.CategoryDining},
		{Amount: mustDecimal(t, "15.50"), Category: domain.CategoryTransport},
	}

	buckets := AggregateByCategory(expenses)
	require.Len(t, buckets, 2)
	assert.True(t, buckets[domain.CategoryDining].Equal(mustDecimal(t, "50.00")))
	assert.True(t, buckets[domain.CategoryTransport].Equal(mustDecimal(t, "15.50")))

	bucketSum := TotalAmount(nil)
	for _, v := range buckets {
		bucketSum = bucketSum.Add(v)
	}
	assert.True(t, bucketSum.Equal(TotalAmount(expenses)))
}

func TestAggregateByDay(t *testing.T) {
	day1 := time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)
	day2 := time.Date(2025, 3, 11, 23, 59, 0, 0, time.UTC)

	expenses := []domain.Expense{
		{Amount: mustDecimal(t, "10.00"), AuditFields: domain.AuditFields{CreatedAt: day1}},
		{Amount: mustDecimal(t, "5.00"), AuditFields: domain.AuditFields{CreatedAt: day1.Add(2 * time.Hour)}},
		{Amount: mustDecimal(t, "7.25"), AuditFields: domain.AuditFields{CreatedAt: day2}},
	}

	buckets := AggregateByDay(expenses)
	require.Len(t, buckets, 2)
	assert.True(t, buckets["2025-03-10"].Equal(mustDecimal(t, "15.00")))
	assert.True(t, buckets["2025-03-11"].Equal(mustDecimal(t, "7.25")))
}

func TestTotalAmount(t *testing.T) {
	expenses := []domain.Expense{
		{Amount: mustDecimal(t, "10.00")},
		{Amount: mustDecimal(t, "2.50")},
	}
	assert.True(t, TotalAmount(expenses).Equal(mustDecimal(t, "12.50")))
	assert.True(t, TotalAmount(nil).IsZero())
}
