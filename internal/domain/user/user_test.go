package user

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parkstack/service-parking/internal/domain"
)

func TestNewUser(t *testing.T) {
	u, err := NewUser("Dana", "  Dana@Example.COM ", "s3cret", "", "+60123456789")
	require.NoError(t, err)

	assert.Equal(t, "dana@example.com", u.Email(), "email is normalized")
	assert.Equal(t, "driver", u.Role(), "role defaults to driver")
	assert.NotEqual(t, "s3cret", u.PasswordHash(), "password must be hashed")
	assert.True(t, u.CheckPassword("s3cret"))
	assert.False(t, u.CheckPassword("wrong"))
}

func TestNewUser_AdminRole(t *testing.T) {
	u, err := NewUser("Ops", "ops@example.com", "s3cret", "admin", "")
	require.NoError(t, err)
	assert.Equal(t, "admin", u.Role())
}

func TestNewUser_Validation(t *testing.T) {
	_, err := NewUser("", "dana@example.com", "s3cret", "", "")
	assert.True(t, errors.Is(err, domain.ErrValidation))

	_, err = NewUser("Dana", "", "s3cret", "", "")
	assert.True(t, errors.Is(err, domain.ErrValidation))

	_, err = NewUser("Dana", "dana@example.com", "", "", "")
	assert.True(t, errors.Is(err, domain.ErrValidation))

	_, err = NewUser("Dana", "dana@example.com", "s3cret", "superuser", "")
	assert.True(t, errors.Is(err, domain.ErrValidation))
}
