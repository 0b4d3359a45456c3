package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocate_SumIsExact(t *testing.T) {
	totals := []string{"100.00", "99.99", "0.03", "1500.50", "333.33", "1.00"}

	for _, ts := range totals {
		total := decimal.RequireFromString(ts)
		for parts := 1; parts <= 24; parts++ {
			result, err := Allocate(total, parts)
			require.NoError(t, err)
			require.Len(t, result, parts)

			assert.True(t, Sum(result).Equal(total),
				"sum of parts must equal total exactly: total=%s parts=%d got=%s",
				ts, parts, Sum(result))
		}
	}
}

func TestAllocate_RemainderGoesToLastPart(t *testing.T) {
	total := decimal.RequireFromString("100.00")

	result, err := Allocate(total, 3)
	require.NoError(t, err)

	assert.Equal(t, "33.33", result[0].StringFixed(2))
	assert.Equal(t, "33.33", result[1].StringFixed(2))
	assert.Equal(t, "33.34", result[2].StringFixed(2))
}

func TestAllocate_SinglePartReturnsTotalUnchanged(t *testing.T) {
	total := decimal.RequireFromString("123.45")

	result, err := Allocate(total, 1)
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.True(t, result[0].Equal(total))
}

func TestAllocate_EvenSplitHasNoRemainder(t *testing.T) {
	total := decimal.RequireFromString("120.00")

	result, err := Allocate(total, 4)
	require.NoError(t, err)

	for _, part := range result {
		assert.Equal(t, "30.00", part.StringFixed(2))
	}
}

func TestAllocate_RejectsInvalidParts(t *testing.T) {
	_, err := Allocate(decimal.RequireFromString("10.00"), 0)
	assert.Error(t, err)

	_, err = Allocate(decimal.RequireFromString("10.00"), -3)
	assert.Error(t, err)
}
