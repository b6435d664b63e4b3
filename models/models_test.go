package models

import (
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEventStatus(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want EventStatus
		ok   bool
	}{
		{"draft", StatusDraft, true},
		{"published", StatusPublished, true},
		{"archived", "", false},
		{"Published", "", false},
		{"", "", false},
	} {
		t.Run(tc.in, func(t *testing.T) {
			got, ok := ParseEventStatus(tc.in)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
	assert.False(t, EventStatus("archived").Valid())
	assert.True(t, StatusDraft.Valid())
}

func TestParseRole(t *testing.T) {
	r, ok := ParseRole("admin")
	assert.True(t, ok)
	assert.Equal(t, RoleAdmin, r)

	_, ok = ParseRole("root")
	assert.False(t, ok)
}

func TestUserProfileIsAdmin(t *testing.T) {
	var nilProfile *UserProfile
	assert.False(t, nilProfile.IsAdmin())
	assert.False(t, (&UserProfile{Role: RoleUser}).IsAdmin())
	assert.True(t, (&UserProfile{Role: RoleAdmin}).IsAdmin())
}

func TestNormalizeScore(t *testing.T) {
	got, err := NormalizeScore(decimal.RequireFromString("72.456"))
	require.NoError(t, err)
	assert.Equal(t, "72.46", got.StringFixed(2))

	got, err = NormalizeScore(decimal.NewFromInt(100))
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.NewFromInt(100)))

	_, err = NormalizeScore(decimal.RequireFromString("100.01"))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "final_score_pct", verr.Field)

	_, err = NormalizeScore(decimal.RequireFromString("-0.5"))
	assert.ErrorAs(t, err, &verr)
}

func TestStoreErrorHidesDetail(t *testing.T) {
	inner := errors.New("pq: connection refused to 10.0.0.3")
	err := fmt.Errorf("list events: %w", &StoreError{Op: "list events", Err: inner})

	assert.NotContains(t, err.Error(), "10.0.0.3")
	assert.ErrorIs(t, err, inner)

	var serr *StoreError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "list events", serr.Op)
}
