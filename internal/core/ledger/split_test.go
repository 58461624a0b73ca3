package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/splitmate/splitmate_backend/internal/apperrors"
	"github.com/splitmate/splitmate_backend/internal/core/domain"
)

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func TestComputeEqualSplit_EvenDivision(t *testing.T) {
	splits, err := ComputeEqualSplit(mustDecimal(t, "50.00"), []string{"user-b", "user-a"}, "user-a")
	require.NoError(t, err)
	require.Len(t, splits, 2)

	assert.Equal(t, "user-a", splits[0].UserID)
	assert.True(t, splits[0].Amount.Equal(mustDecimal(t, "25.00")))
	assert.True(t, splits[0].IsPaid)

	assert.Equal(t, "user-b", splits[1].UserID)
	assert.True(t, splits[1].Amount.Equal(mustDecimal(t, "25.00")))
	assert.False(t, splits[1].IsPaid)
}

func TestComputeEqualSplit_RemainderGoesToFirstParticipants(t *testing.T) {
	splits, err := ComputeEqualSplit(mustDecimal(t, "100.00"), []string{"user-c", "user-a", "user-b"}, "user-b")
	require.NoError(t, err)
	require.Len(t, splits, 3)

	// 10000 cents / 3 = 3333 with 1 cent left over for the first user.
	assert.True(t, splits[0].Amount.Equal(mustDecimal(t, "33.34")), "got %s", splits[0].Amount)
	assert.True(t, splits[1].Amount.Equal(mustDecimal(t, "33.33")))
	assert.True(t, splits[2].Amount.Equal(mustDecimal(t, "33.33")))

	sum := decimal.Zero
	for _, s := range splits {
		sum = sum.Add(s.Amount)
	}
	assert.True(t, sum.Equal(mustDecimal(t, "100.00")))
}

func TestComputeEqualSplit_SingleParticipant(t *testing.T) {
	splits, err := ComputeEqualSplit(mustDecimal(t, "19.99"), []string{"user-a"}, "user-a")
	require.NoError(t, err)
	require.Len(t, splits, 1)
	assert.True(t, splits[0].Amount.Equal(mustDecimal(t, "19.99")))
	assert.True(t, splits[0].IsPaid)
}

func TestComputeEqualSplit_DedupesParticipants(t *testing.T) {
	splits, err := ComputeEqualSplit(mustDecimal(t, "30.00"), []string{"user-a", "user-b", "user-a"}, "user-a")
	require.NoError(t, err)
	require.Len(t, splits, 2)
	assert.True(t, splits[0].Amount.Equal(mustDecimal(t, "15.00")))
	assert.True(t, splits[1].Amount.Equal(mustDecimal(t, "15.00")))
}

func TestComputeEqualSplit_PayerOutsideParticipants(t *testing.T) {
	splits, err := ComputeEqualSplit(mustDecimal(t, "40.00"), []string{"user-b", "user-c"}, "user-a")
	require.NoError(t, err)
	require.Len(t, splits, 2)
	for _, s := range splits {
		assert.False(t, s.IsPaid)
	}
}

func TestComputeEqualSplit_ValidationErrors(t *testing.T) {
	testCases := []struct {
		name         string
		amount       string
		participants []string
		expectedErr  error
	}{
		{name: "zero amount", amount: "0", participants: []string{"user-a"}, expectedErr: ErrNonPositiveAmount},
		{name: "negative amount", amount: "-10.00", participants: []string{"user-a"}, expectedErr: ErrNonPositiveAmount},
		{name: "no participants", amount: "10.00", participants: nil, expectedErr: ErrNoParticipants},
		{name: "sub-cent precision", amount: "10.001", participants: []string{"user-a"}, expectedErr: ErrAmountPrecision},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ComputeEqualSplit(mustDecimal(t, tc.amount), tc.participants, "user-a")
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.expectedErr)
			assert.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}
}

func TestComputeCustomSplit_Valid(t *testing.T) {
	shares := []CustomShare{
		{UserID: "user-b", Amount: mustDecimal(t, "70.00")},
		{UserID: "user-a", Amount: mustDecimal(t, "30.00")},
	}
	splits, err := ComputeCustomSplit(mustDecimal(t, "100.00"), shares, "user-b")
	require.NoError(t, err)
	require.Len(t, splits, 2)

	assert.Equal(t, "user-a", splits[0].UserID)
	assert.True(t, splits[0].Amount.Equal(mustDecimal(t, "30.00")))
	assert.False(t, splits[0].IsPaid)

	assert.Equal(t, "user-b", splits[1].UserID)
	assert.True(t, splits[1].Amount.Equal(mustDecimal(t, "70.00")))
	assert.True(t, splits[1].IsPaid)
}

func TestComputeCustomSplit_Errors(t *testing.T) {
	testCases := []struct {
		name        string
		total       string
		shares      []CustomShare
		expectedErr error
	}{
		{
			name:  "sum mismatch",
			total: "100.00",
			shares: []CustomShare{
				{UserID: "user-a", Amount: decimal.NewFromInt(60)},
				{UserID: "user-b", Amount: decimal.NewFromInt(30)},
			},
			expectedErr: ErrShareSumMismatch,
		},
		{
			name:  "zero share",
			total: "60.00",
			shares: []CustomShare{
				{UserID: "user-a", Amount: decimal.NewFromInt(60)},
				{UserID: "user-b", Amount: decimal.Zero},
			},
			expectedErr: ErrNonPositiveShare,
		},
		{
			name:  "duplicate user",
			total: "60.00",
			shares: []CustomShare{
				{UserID: "user-a", Amount: decimal.NewFromInt(30)},
				{UserID: "user-a", Amount: decimal.NewFromInt(30)},
			},
			expectedErr: ErrDuplicateShareUsers,
		},
		{
			name:        "no shares",
			total:       "60.00",
			shares:      nil,
			expectedErr: ErrNoParticipants,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ComputeCustomSplit(mustDecimal(t, tc.total), tc.shares, "user-a")
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.expectedErr)
		})
	}
}

func TestComputeSplits_Dispatch(t *testing.T) {
	splits, err := ComputeSplits(domain.SplitEqual, mustDecimal(t, "20.00"), []string{"user-a", "user-b"}, nil, "user-a")
	require.NoError(t, err)
	assert.Len(t, splits, 2)

	shares := []CustomShare{{UserID: "user-a", Amount: mustDecimal(t, "20.00")}}
	splits, err = ComputeSplits(domain.SplitCustom, mustDecimal(t, "20.00"), nil, shares, "user-a")
	require.NoError(t, err)
	assert.Len(t, splits, 1)

	_, err = ComputeSplits(domain.SplitType("PERCENT"), mustDecimal(t, "20.00"), nil, nil, "user-a")
	assert.ErrorIs(t, err, ErrUnsupportedSplit)
}
