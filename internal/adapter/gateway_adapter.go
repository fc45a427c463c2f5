package adapter

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PaymentGateway defines the Anti-Corruption Layer interface for the
// external payment provider. This abstraction decouples the domain from
// the provider's API.
type PaymentGateway interface {
	// Charge authorizes and captures a payment, returning the provider's
	// transaction code.
	Charge(ctx context.Context, amountCents int64, method string) (transactionCode string, err error)

	// VoidCharge reverses a previously captured charge.
	VoidCharge(ctx context.Context, transactionCode string) error
}

// MockGateway is a development/testing implementation of PaymentGateway.
// It simulates the provider without requiring a real merchant account;
// cash payments are recorded the same way with a generated code.
type MockGateway struct {
	logger *zap.Logger
}

// NewMockGateway creates a new mock payment gateway.
func NewMockGateway(logger *zap.Logger) *MockGateway {
	return &MockGateway{logger: logger}
}

// Charge simulates a successful charge and returns a generated
// transaction code.
func (m *MockGateway) Charge(ctx context.Context, amountCents int64, method string) (string, error) {
	code := uuid.New().String()
	m.logger.Info("[MOCK GATEWAY] charge captured",
		zap.String("transaction_code", code),
		zap.Int64("amount_cents", amountCents),
		zap.String("method", method),
	)
	return code, nil
}

// VoidCharge simulates reversing a charge.
func (m *MockGateway) VoidCharge(ctx context.Context, transactionCode string) error {
	if transactionCode == "" {
		return fmt.Errorf("transaction code is required")
	}
	m.logger.Info("[MOCK GATEWAY] charge voided",
		zap.String("transaction_code", transactionCode),
	)
	return nil
}
