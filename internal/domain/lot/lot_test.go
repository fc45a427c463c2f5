package lot

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parkstack/service-parking/internal/domain"
)

func TestNewLot_Defaults(t *testing.T) {
	l, err := NewLot("Central Garage", "12 Main St", 50, -1)
	require.NoError(t, err)
	assert.Equal(t, 50, l.TotalCapacity())
	assert.Equal(t, 50, l.AvailableCapacity(), "negative available means start fully free")
	assert.True(t, l.HasAvailability())
}

func TestNewLot_ExplicitAvailable(t *testing.T) {
	l, err := NewLot("Central Garage", "12 Main St", 50, 10)
	require.NoError(t, err)
	assert.Equal(t, 10, l.AvailableCapacity())
}

func TestNewLot_Validation(t *testing.T) {
	_, err := NewLot("", "12 Main St", 50, -1)
	assert.True(t, errors.Is(err, domain.ErrValidation))

	_, err = NewLot("Central Garage", "", 50, -1)
	assert.True(t, errors.Is(err, domain.ErrValidation))

	_, err = NewLot("Central Garage", "12 Main St", -1, -1)
	assert.True(t, errors.Is(err, domain.ErrValidation))

	_, err = NewLot("Central Garage", "12 Main St", 5, 6)
	assert.True(t, errors.Is(err, domain.ErrValidation))
}

func TestClaimSlot_ExhaustsCapacity(t *testing.T) {
	l, err := NewLot("Tiny Lot", "Corner", 2, -1)
	require.NoError(t, err)

	require.NoError(t, l.ClaimSlot())
	require.NoError(t, l.ClaimSlot())
	assert.Equal(t, 0, l.AvailableCapacity())
	assert.False(t, l.HasAvailability())

	err = l.ClaimSlot()
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConflict))
	assert.Equal(t, 0, l.AvailableCapacity(), "failed claim must not go negative")
}

func TestReleaseSlot_CapsAtTotal(t *testing.T) {
	l, err := NewLot("Tiny Lot", "Corner", 2, -1)
	require.NoError(t, err)

	err = l.ReleaseSlot()
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConflict))
	assert.Equal(t, 2, l.AvailableCapacity())

	require.NoError(t, l.ClaimSlot())
	require.NoError(t, l.ReleaseSlot())
	assert.Equal(t, 2, l.AvailableCapacity())
}

func TestUpdateDetails(t *testing.T) {
	l, err := NewLot("Central Garage", "12 Main St", 50, 20)
	require.NoError(t, err)

	name := "North Garage"
	total := 60
	require.NoError(t, l.UpdateDetails(&name, nil, &total, nil))
	assert.Equal(t, "North Garage", l.Name())
	assert.Equal(t, "12 Main St", l.Location())
	assert.Equal(t, 60, l.TotalCapacity())
	assert.Equal(t, 20, l.AvailableCapacity())

	// Shrinking total below available is rejected.
	small := 10
	err = l.UpdateDetails(nil, nil, &small, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrValidation))
	assert.Equal(t, 60, l.TotalCapacity(), "failed update must not change the lot")

	// Shrinking both together is fine.
	avail := 5
	require.NoError(t, l.UpdateDetails(nil, nil, &small, &avail))
	assert.Equal(t, 10, l.TotalCapacity())
	assert.Equal(t, 5, l.AvailableCapacity())

	negative := -1
	err = l.UpdateDetails(nil, nil, nil, &negative)
	assert.True(t, errors.Is(err, domain.ErrValidation))
}

func TestReconstitute(t *testing.T) {
	id := uuid.New()
	now := time.Now().UTC()
	l := Reconstitute(id, "Central Garage", "12 Main St", 50, 3, now, now)
	assert.Equal(t, id, l.ID())
	assert.Equal(t, 3, l.AvailableCapacity())
	assert.True(t, l.HasAvailability())
}
