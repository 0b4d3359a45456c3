package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-03-15")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-15", d.String())

	for _, bad := range []string{"", "15/03/2024", "2024-3-15", "2024-03-15T10:00:00Z", "not-a-date"} {
		_, err := ParseDate(bad)
		assert.Error(t, err, "input=%q", bad)
	}
}

func TestDateJSON(t *testing.T) {
	d := NewDate(2024, 3, 15)

	raw, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2024-03-15"`, string(raw))

	var parsed Date
	require.NoError(t, json.Unmarshal([]byte(`"2024-12-31"`), &parsed))
	assert.Equal(t, "2024-12-31", parsed.String())

	assert.Error(t, json.Unmarshal([]byte(`"31-12-2024"`), &parsed))
}

func TestAddMonthsClamped(t *testing.T) {
	cases := []struct {
		start  Date
		months int
		want   string
	}{
		{NewDate(2024, 1, 15), 1, "2024-02-15"},
		{NewDate(2024, 1, 31), 1, "2024-02-29"}, // leap year
		{NewDate(2023, 1, 31), 1, "2023-02-28"},
		{NewDate(2024, 1, 31), 2, "2024-03-31"},
		{NewDate(2024, 1, 31), 3, "2024-04-30"},
		{NewDate(2024, 11, 30), 3, "2025-02-28"}, // year rollover into non-leap
		{NewDate(2024, 5, 10), 0, "2024-05-10"},
		{NewDate(2024, 12, 31), 12, "2025-12-31"},
	}

	for _, tc := range cases {
		got := tc.start.AddMonthsClamped(tc.months)
		assert.Equal(t, tc.want, got.String(), "%s + %d months", tc.start, tc.months)
	}
}

func TestDateComparisons(t *testing.T) {
	a := NewDate(2024, 3, 1)
	b := NewDate(2024, 3, 2)

	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.False(t, a.Equal(b))
	assert.True(t, a.Equal(NewDate(2024, 3, 1)))
}

func TestDateRangeContains(t *testing.T) {
	rng := &DateRange{Start: NewDate(2024, 3, 1), End: NewDate(2024, 3, 31)}

	assert.True(t, rng.Contains(NewDate(2024, 3, 1)), "start is inclusive")
	assert.True(t, rng.Contains(NewDate(2024, 3, 31)), "end is inclusive")
	assert.True(t, rng.Contains(NewDate(2024, 3, 15)))
	assert.False(t, rng.Contains(NewDate(2024, 2, 29)))
	assert.False(t, rng.Contains(NewDate(2024, 4, 1)))

	var all *DateRange
	assert.True(t, all.Contains(NewDate(1999, 1, 1)), "nil range contains every date")
}

func TestInstallmentIsDueBefore(t *testing.T) {
	inst := Installment{DueDate: NewDate(2024, 3, 10), Status: InstallmentStatusPending}

	assert.False(t, inst.IsDueBefore(NewDate(2024, 3, 10)), "due today is not yet overdue")
	assert.True(t, inst.IsDueBefore(NewDate(2024, 3, 11)))
	assert.False(t, inst.IsDueBefore(NewDate(2024, 3, 9)))
}
