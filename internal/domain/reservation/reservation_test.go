package reservation

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parkstack/service-parking/internal/domain"
)

func newTestReservation(t *testing.T) *Reservation {
	t.Helper()
	start := time.Now().UTC().Add(time.Hour)
	res, err := NewReservation(uuid.New(), uuid.New(), nil, start, start.Add(2*time.Hour))
	require.NoError(t, err)
	return res
}

func TestNewReservation_StartsBooked(t *testing.T) {
	res := newTestReservation(t)
	assert.Equal(t, StatusBooked, res.Status())
	assert.NotEqual(t, uuid.Nil, res.ID())
}

func TestNewReservation_RejectsInvertedWindow(t *testing.T) {
	start := time.Now().UTC()

	_, err := NewReservation(uuid.New(), uuid.New(), nil, start, start)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrValidation))

	_, err = NewReservation(uuid.New(), uuid.New(), nil, start, start.Add(-time.Hour))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrValidation))
}

func TestTransitionTo_AllowedPaths(t *testing.T) {
	tests := []struct {
		name      string
		from      Status
		to        Status
		wantDelta int
	}{
		{"booked to active", StatusBooked, StatusActive, 0},
		{"booked to paid", StatusBooked, StatusPaid, 0},
		{"booked to cancelled", StatusBooked, StatusCancelled, 1},
		{"active to paid", StatusActive, StatusPaid, 0},
		{"active to completed", StatusActive, StatusCompleted, 0},
		{"active to cancelled", StatusActive, StatusCancelled, 1},
		{"paid to completed", StatusPaid, StatusCompleted, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := reconstituteWithStatus(t, tt.from)
			delta, err := res.TransitionTo(tt.to)
			require.NoError(t, err)
			assert.Equal(t, tt.wantDelta, delta)
			assert.Equal(t, tt.to, res.Status())
		})
	}
}

func TestTransitionTo_DisallowedPaths(t *testing.T) {
	tests := []struct {
		name string
		from Status
		to   Status
	}{
		{"paid to active", StatusPaid, StatusActive},
		{"paid to cancelled", StatusPaid, StatusCancelled},
		{"completed to cancelled", StatusCompleted, StatusCancelled},
		{"completed to active", StatusCompleted, StatusActive},
		{"cancelled to active", StatusCancelled, StatusActive},
		{"cancelled to completed", StatusCancelled, StatusCompleted},
		{"cancelled to paid", StatusCancelled, StatusPaid},
		{"booked to booked", StatusBooked, StatusBooked},
		{"booked to completed", StatusBooked, StatusCompleted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := reconstituteWithStatus(t, tt.from)
			delta, err := res.TransitionTo(tt.to)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrInvalidState))
			assert.Equal(t, 0, delta)
			assert.Equal(t, tt.from, res.Status(), "failed transition must not change status")
		})
	}
}

func TestTransitionTo_CancellingSettledReservation(t *testing.T) {
	for _, from := range []Status{StatusPaid, StatusCompleted} {
		res := reconstituteWithStatus(t, from)
		_, err := res.TransitionTo(StatusCancelled)
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrInvalidState))
		assert.Contains(t, err.Error(), "cannot cancel a paid or completed reservation")
	}
}

func TestTransitionTo_UnknownStatus(t *testing.T) {
	res := newTestReservation(t)
	_, err := res.TransitionTo(Status("parked"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrValidation))
}

func TestCapacityDelta(t *testing.T) {
	assert.Equal(t, 1, CapacityDelta(StatusBooked, StatusCancelled))
	assert.Equal(t, 1, CapacityDelta(StatusActive, StatusCancelled))
	assert.Equal(t, 0, CapacityDelta(StatusBooked, StatusActive))
	assert.Equal(t, 0, CapacityDelta(StatusActive, StatusCompleted))
	assert.Equal(t, 0, CapacityDelta(StatusPaid, StatusCompleted))
	// Cancelling a settled reservation never refunds capacity, even though
	// the transition itself is also rejected upstream.
	assert.Equal(t, 0, CapacityDelta(StatusPaid, StatusCancelled))
	assert.Equal(t, 0, CapacityDelta(StatusCompleted, StatusCancelled))
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, IsTerminal(StatusCancelled))
	assert.True(t, IsTerminal(StatusCompleted))
	assert.False(t, IsTerminal(StatusBooked))
	assert.False(t, IsTerminal(StatusActive))
	assert.False(t, IsTerminal(StatusPaid))
}

func TestIsValidStatus(t *testing.T) {
	for _, s := range []Status{StatusBooked, StatusActive, StatusPaid, StatusCompleted, StatusCancelled} {
		assert.True(t, IsValidStatus(s))
	}
	assert.False(t, IsValidStatus(Status("pending")))
	assert.False(t, IsValidStatus(Status("")))
}

func reconstituteWithStatus(t *testing.T, status Status) *Reservation {
	t.Helper()
	now := time.Now().UTC()
	return Reconstitute(
		uuid.New(), uuid.New(), uuid.New(),
		nil,
		now.Add(time.Hour), now.Add(3*time.Hour),
		status,
		now, now,
	)
}
