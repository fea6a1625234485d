package validate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "minehub/pkg/domain-errors"
)

func TestLength(t *testing.T) {
	var rules Rules
	rules.Length("Name", "A", 2, 20)
	rules.Length("Position", "Digger", 2, 20)

	err := rules.Err()
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidArgument))
	msgs := dErrors.MessagesOf(err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "'Name' must be between 2 and 20 characters. You entered 1 characters.", msgs[0])
}

func TestLengthCountsRunes(t *testing.T) {
	var rules Rules
	rules.Length("Name", "Göld Digger", 2, 20)
	assert.NoError(t, rules.Err())
}

func TestIntBetween(t *testing.T) {
	var rules Rules
	rules.IntBetween("Rating", 11, 0, 10)

	msgs := dErrors.MessagesOf(rules.Err())
	require.Len(t, msgs, 1)
	assert.Equal(t, "'Rating' must be between 0 and 10. You entered 11.", msgs[0])
}

func TestNonNegative(t *testing.T) {
	var rules Rules
	rules.NonNegative("Salary", -1)

	msgs := dErrors.MessagesOf(rules.Err())
	require.Len(t, msgs, 1)
	assert.Equal(t, "'Salary' must be greater than or equal to '0'.", msgs[0])
}

func TestPastYear(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	t.Run("skips zero times", func(t *testing.T) {
		var rules Rules
		rules.PastYear("Date", time.Time{}, now)
		assert.NoError(t, rules.Err())
	})

	t.Run("accepts a date within the past year", func(t *testing.T) {
		var rules Rules
		rules.PastYear("Date", now.AddDate(0, -6, 0), now)
		assert.NoError(t, rules.Err())
	})

	t.Run("rejects dates older than a year", func(t *testing.T) {
		var rules Rules
		rules.PastYear("Date", now.AddDate(-2, 0, 0), now)

		msgs := dErrors.MessagesOf(rules.Err())
		require.Len(t, msgs, 1)
		assert.Equal(t, "Dates must be some datetime value that occurred in the past year.", msgs[0])
	})

	t.Run("rejects future dates", func(t *testing.T) {
		var rules Rules
		rules.PastYear("Date", now.AddDate(0, 0, 1), now)
		assert.Error(t, rules.Err())
	})
}

func TestAccumulatesAllFailures(t *testing.T) {
	var rules Rules
	rules.Length("First Name", "J", 2, 20)
	rules.Length("Last Name", "", 2, 20)
	rules.IntBetween("Amount", 200, -180, 180)

	msgs := dErrors.MessagesOf(rules.Err())
	assert.Len(t, msgs, 3)
}
