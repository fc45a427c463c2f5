package saga

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSaga_AllStepsSucceed(t *testing.T) {
	s := NewSaga("test", zap.NewNop())

	var order []string
	for _, name := range []string{"one", "two", "three"} {
		name := name
		s.AddStep(SagaStep{
			Name: name,
			Execute: func(ctx context.Context) error {
				order = append(order, name)
				return nil
			},
			Compensate: func(ctx context.Context) error {
				order = append(order, "undo_"+name)
				return nil
			},
		})
	}

	require.NoError(t, s.Execute(context.Background()))
	assert.Equal(t, []string{"one", "two", "three"}, order)
}

func TestSaga_FailureCompensatesInReverseOrder(t *testing.T) {
	s := NewSaga("test", zap.NewNop())

	var order []string
	addStep := func(name string, fail bool) {
		s.AddStep(SagaStep{
			Name: name,
			Execute: func(ctx context.Context) error {
				if fail {
					return errors.New(name + " blew up")
				}
				order = append(order, name)
				return nil
			},
			Compensate: func(ctx context.Context) error {
				order = append(order, "undo_"+name)
				return nil
			},
		})
	}

	addStep("one", false)
	addStep("two", false)
	addStep("three", true)

	err := s.Execute(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "three")
	assert.Equal(t, []string{"one", "two", "undo_two", "undo_one"}, order)
}

func TestSaga_NilCompensationIsSkipped(t *testing.T) {
	s := NewSaga("test", zap.NewNop())

	var compensated []string
	s.AddStep(SagaStep{
		Name:       "irreversible",
		Execute:    func(ctx context.Context) error { return nil },
		Compensate: nil,
	})
	s.AddStep(SagaStep{
		Name:    "reversible",
		Execute: func(ctx context.Context) error { return nil },
		Compensate: func(ctx context.Context) error {
			compensated = append(compensated, "reversible")
			return nil
		},
	})
	s.AddStep(SagaStep{
		Name:    "boom",
		Execute: func(ctx context.Context) error { return errors.New("boom") },
	})

	require.Error(t, s.Execute(context.Background()))
	assert.Equal(t, []string{"reversible"}, compensated)
}

func TestSaga_CompensationErrorsDoNotMaskStepError(t *testing.T) {
	s := NewSaga("test", zap.NewNop())

	s.AddStep(SagaStep{
		Name:    "one",
		Execute: func(ctx context.Context) error { return nil },
		Compensate: func(ctx context.Context) error {
			return errors.New("compensation failed")
		},
	})
	s.AddStep(SagaStep{
		Name:    "two",
		Execute: func(ctx context.Context) error { return errors.New("step failed") },
	})

	err := s.Execute(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "step failed")
}
