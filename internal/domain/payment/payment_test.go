package payment

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parkstack/service-parking/internal/domain"
)

func TestNewPayment(t *testing.T) {
	p, err := NewPayment(uuid.New(), 1500, MethodCard)
	require.NoError(t, err)
	assert.Equal(t, PaymentPending, p.Status())
	assert.Nil(t, p.PaidAt())
}

func TestNewPayment_Validation(t *testing.T) {
	_, err := NewPayment(uuid.New(), 0, MethodCard)
	assert.True(t, errors.Is(err, domain.ErrValidation))

	_, err = NewPayment(uuid.New(), -100, MethodCash)
	assert.True(t, errors.Is(err, domain.ErrValidation))

	_, err = NewPayment(uuid.New(), 1500, Method("crypto"))
	assert.True(t, errors.Is(err, domain.ErrValidation))
}

func TestMarkPaid(t *testing.T) {
	p, err := NewPayment(uuid.New(), 1500, MethodCash)
	require.NoError(t, err)

	require.NoError(t, p.MarkPaid("txn_123"))
	assert.Equal(t, PaymentPaid, p.Status())
	assert.Equal(t, "txn_123", p.TransactionCode())
	require.NotNil(t, p.PaidAt())

	// Settled payments cannot be re-settled or failed.
	err = p.MarkPaid("txn_456")
	assert.True(t, errors.Is(err, domain.ErrInvalidState))
	err = p.Fail("too late")
	assert.True(t, errors.Is(err, domain.ErrInvalidState))
	assert.Equal(t, "txn_123", p.TransactionCode())
}

func TestFail(t *testing.T) {
	p, err := NewPayment(uuid.New(), 1500, MethodCard)
	require.NoError(t, err)

	require.NoError(t, p.Fail("card declined"))
	assert.Equal(t, PaymentFailed, p.Status())
	assert.Equal(t, "card declined", p.FailureReason())

	err = p.MarkPaid("txn_123")
	assert.True(t, errors.Is(err, domain.ErrInvalidState))
}
