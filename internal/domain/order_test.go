package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEarning_RoundsToCents(t *testing.T) {
	assert.Equal(t, 11.00, Earning(33.33, 33))
	assert.Equal(t, 0.0, Earning(100, 0))
	assert.Equal(t, 100.0, Earning(100, 100))
	assert.Equal(t, 3.33, Earning(10, 33.3))
}

func TestWork_TotalEarnings(t *testing.T) {
	w := Work{
		Cost: 1000,
		Assignments: []MasterAssignment{
			{Master: User{ID: 1}, SalaryPercent: 30},
			{Master: User{ID: 2}, SalaryPercent: 12.5},
		},
	}
	assert.Equal(t, 425.0, w.TotalEarnings())

	empty := Work{Cost: 500}
	assert.Equal(t, 0.0, empty.TotalEarnings())
}

func TestOrderStatus_CanBeCancelled(t *testing.T) {
	assert.True(t, StatusNew.CanBeCancelled())
	assert.False(t, StatusInProgress.CanBeCancelled())
	assert.False(t, StatusCompleted.CanBeCancelled())
	assert.False(t, StatusCancelled.CanBeCancelled())
}

func TestOrderStatus_Transitions(t *testing.T) {
	tests := []struct {
		from, to OrderStatus
		want     bool
	}{
		{StatusNew, StatusInProgress, true},
		{StatusNew, StatusCancelled, true},
		{StatusNew, StatusCompleted, false},
		{StatusInProgress, StatusCompleted, true},
		{StatusInProgress, StatusCancelled, false},
		{StatusInProgress, StatusNew, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusCancelled, StatusInProgress, false},
		{OrderStatus("BOGUS"), StatusCancelled, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}

	assert.Equal(t, []OrderStatus{StatusInProgress, StatusCancelled}, StatusNew.AvailableTransitions())
	assert.Empty(t, StatusCompleted.AvailableTransitions())
}

func TestParseOrderStatus(t *testing.T) {
	s, err := ParseOrderStatus("COMPLETED")
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, s)

	_, err = ParseOrderStatus("done")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestOrder_HasMasterAndEndTime(t *testing.T) {
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	o := Order{
		ExecutionDate: start,
		Works: []Work{
			{Assignments: []MasterAssignment{{Master: User{ID: 7}}}},
		},
	}

	assert.True(t, o.HasMaster(7))
	assert.False(t, o.HasMaster(8))
	assert.Equal(t, start.Add(time.Hour), o.EndTime())
}
