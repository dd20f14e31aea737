package billing

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/nexonoperations/tutorbill/internal/domain/session"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultRates() RateCard {
	return RateCard{
		Individual: decimal.NewFromInt(360),
		Group:      decimal.NewFromInt(230),
	}
}

func newSession(id string, hours any, mode string) *session.Session {
	return &session.Session{
		ID:        id,
		StudentID: "stu_test",
		Subject:   "Wiskunde",
		Mode:      mode,
		Hours:     hours,
		Date:      time.Date(2026, 3, 12, 14, 0, 0, 0, time.UTC),
	}
}

func TestAggregateMixedModes(t *testing.T) {
	sessions := []*session.Session{
		newSession("ses_1", 2.0, "Individual"),
		newSession("ses_2", 1.5, "group"),
		newSession("ses_3", 0.0, "group"),
	}

	comp := Aggregate(sessions, defaultRates())

	require.Len(t, comp.Lines, 2)
	assert.Equal(t, "3.5", comp.TotalHours.String())
	// 2 x 360 + 1.5 x 230
	assert.Equal(t, "1065", comp.TotalCost.String())
	assert.Equal(t, "ses_1", comp.Lines[0].Session.ID)
	assert.Equal(t, "ses_2", comp.Lines[1].Session.ID)
	assert.Equal(t, "360", comp.Lines[0].Rate.String())
	assert.Equal(t, "230", comp.Lines[1].Rate.String())
	assert.Equal(t, "720", comp.Lines[0].Amount.String())
	assert.Equal(t, "345", comp.Lines[1].Amount.String())
}

func TestAggregateExcludesInvalidHours(t *testing.T) {
	tests := []struct {
		name  string
		hours any
	}{
		{"missing", nil},
		{"zero", 0.0},
		{"negative", -1.5},
		{"non numeric string", "abc"},
		{"unsupported type", map[string]any{"value": 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			comp := Aggregate([]*session.Session{newSession("ses_x", tt.hours, "group")}, defaultRates())

			assert.Empty(t, comp.Lines)
			assert.True(t, comp.TotalHours.IsZero())
			assert.True(t, comp.TotalCost.IsZero())
		})
	}
}

func TestAggregateAcceptsNumericVariants(t *testing.T) {
	sessions := []*session.Session{
		newSession("ses_1", 1, "group"),
		newSession("ses_2", int64(2), "group"),
		newSession("ses_3", "1.5", "group"),
		newSession("ses_4", json.Number("0.5"), "group"),
	}

	comp := Aggregate(sessions, defaultRates())

	require.Len(t, comp.Lines, 4)
	assert.Equal(t, "5", comp.TotalHours.String())
}

func TestAggregateModeSelection(t *testing.T) {
	tests := []struct {
		mode     string
		wantRate string
	}{
		{"individual", "360"},
		{"Individual", "360"},
		{"INDIVIDUAL", "360"},
		{"group", "230"},
		{"", "230"},
		{"something else", "230"},
	}

	for _, tt := range tests {
		comp := Aggregate([]*session.Session{newSession("ses_x", 1.0, tt.mode)}, defaultRates())
		require.Len(t, comp.Lines, 1, "mode=%q", tt.mode)
		assert.Equal(t, tt.wantRate, comp.Lines[0].Rate.String(), "mode=%q", tt.mode)
	}
}

func TestAggregateEmptyInput(t *testing.T) {
	comp := Aggregate(nil, defaultRates())

	assert.Empty(t, comp.Lines)
	assert.Empty(t, comp.ValidSessions())
	assert.True(t, comp.TotalHours.IsZero())
	assert.True(t, comp.TotalCost.IsZero())
}

func TestAggregatePreservesOrder(t *testing.T) {
	sessions := []*session.Session{
		newSession("ses_c", 1.0, "group"),
		newSession("ses_a", "bad", "group"),
		newSession("ses_b", 2.0, "individual"),
		newSession("ses_d", 0.5, "group"),
	}

	comp := Aggregate(sessions, defaultRates())

	ids := make([]string, 0, len(comp.Lines))
	for _, s := range comp.ValidSessions() {
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []string{"ses_c", "ses_b", "ses_d"}, ids)
}
