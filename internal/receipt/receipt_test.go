package receipt

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataURL(t *testing.T) {
	g := NewGenerator(256)
	reservationID := uuid.New()

	url, err := g.DataURL(reservationID, "txn_abc", "card", 1500)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "data:image/png;base64,"))
	assert.Greater(t, len(url), len("data:image/png;base64,"))
}

func TestParsePayload(t *testing.T) {
	reservationID := uuid.New()
	raw, err := json.Marshal(Payload{
		Type:            "PARKING_RECEIPT",
		ReservationID:   reservationID,
		TransactionCode: "txn_abc",
		Method:          "cash",
		AmountCents:     2500,
	})
	require.NoError(t, err)

	p, err := ParsePayload(raw)
	require.NoError(t, err)
	assert.Equal(t, reservationID, p.ReservationID)
	assert.Equal(t, int64(2500), p.AmountCents)
}

func TestParsePayload_WrongType(t *testing.T) {
	raw, err := json.Marshal(Payload{Type: "CONCERT_TICKET"})
	require.NoError(t, err)

	_, err = ParsePayload(raw)
	assert.Error(t, err)
}

func TestParsePayload_Garbage(t *testing.T) {
	_, err := ParsePayload([]byte("{not json"))
	assert.Error(t, err)
}

func TestNewGenerator_DefaultSize(t *testing.T) {
	g := NewGenerator(0)
	url, err := g.DataURL(uuid.New(), "txn", "card", 100)
	require.NoError(t, err)
	assert.NotEmpty(t, url)
}
