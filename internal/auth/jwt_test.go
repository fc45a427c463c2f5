package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour)
	userID := uuid.New()

	token, err := manager.Generate(userID, RoleDriver)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := manager.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, RoleDriver, claims.Role)
}

func TestValidate_WrongSecret(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour)
	other := NewJWTManager("other-secret", time.Hour)

	token, err := manager.Generate(uuid.New(), RoleAdmin)
	require.NoError(t, err)

	_, err = other.Validate(token)
	assert.Error(t, err)
}

func TestValidate_ExpiredToken(t *testing.T) {
	manager := NewJWTManager("test-secret", -time.Minute)

	token, err := manager.Generate(uuid.New(), RoleDriver)
	require.NoError(t, err)

	_, err = manager.Validate(token)
	assert.Error(t, err)
}

func TestValidate_Garbage(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour)
	_, err := manager.Validate("not.a.token")
	assert.Error(t, err)
}
