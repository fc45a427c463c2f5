package kafka

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCloudEventEnvelope(t *testing.T) {
	type payload struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	ce, err := NewCloudEvent("service-parking", "parking.test.event", payload{Name: "gate-3", Count: 7})
	require.NoError(t, err)
	assert.NotEmpty(t, ce.ID)
	assert.Equal(t, "1.0", ce.SpecVersion)
	assert.Equal(t, "service-parking", ce.Source)
	assert.WithinDuration(t, time.Now().UTC(), ce.Time, time.Minute)

	var decoded payload
	require.NoError(t, ce.ParseData(&decoded))
	assert.Equal(t, "gate-3", decoded.Name)
	assert.Equal(t, 7, decoded.Count)
}

func TestParseCloudEvent_Invalid(t *testing.T) {
	_, err := ParseCloudEvent([]byte("not json"))
	assert.Error(t, err)
}

func TestNewCloudEvent_UnmarshalableData(t *testing.T) {
	_, err := NewCloudEvent("service-parking", "parking.test.event", make(chan int))
	assert.Error(t, err)
}
