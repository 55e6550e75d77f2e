package app

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"llb/internal/logger"
)

func recordingStep(name string, order *[]string, err error) Step {
	return Step{
		Name: name,
		Fn: func(context.Context) error {
			*order = append(*order, name)
			return err
		},
	}
}

func TestPipelineRunsStepsInOrder(t *testing.T) {
	var order []string
	var results []StepResult

	p := NewPipeline(logger.NewMockLogger(), func(result StepResult) {
		results = append(results, result)
	})

	err := p.Execute(context.Background(), []Step{
		recordingStep("first", &order, nil),
		recordingStep("second", &order, nil),
		recordingStep("third", &order, nil),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second", "third"}, order)

	require.Len(t, results, 3)
	for _, result := range results {
		assert.Equal(t, StepOK, result.Status)
	}
}

func TestPipelineAbortsOnFirstFailure(t *testing.T) {
	var order []string
	var results []StepResult

	p := NewPipeline(logger.NewMockLogger(), func(result StepResult) {
		results = append(results, result)
	})

	err := p.Execute(context.Background(), []Step{
		recordingStep("first", &order, nil),
		recordingStep("second", &order, errors.New("boom")),
		recordingStep("third", &order, nil),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "second failed")
	assert.Equal(t, []string{"first", "second"}, order)

	require.Len(t, results, 2)
	assert.Equal(t, StepFailed, results[1].Status)
}

func TestPipelineToleratedFailureContinues(t *testing.T) {
	var order []string
	var results []StepResult

	tolerated := errors.New("transient")
	step := recordingStep("flaky", &order, tolerated)
	step.Tolerate = func(err error) bool { return errors.Is(err, tolerated) }

	p := NewPipeline(logger.NewMockLogger(), func(result StepResult) {
		results = append(results, result)
	})

	err := p.Execute(context.Background(), []Step{
		recordingStep("first", &order, nil),
		step,
		recordingStep("third", &order, nil),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "flaky", "third"}, order)

	require.Len(t, results, 3)
	assert.Equal(t, StepTolerated, results[1].Status)
	assert.Equal(t, StepOK, results[2].Status)
}

func TestPipelineToleratePredicateIsSelective(t *testing.T) {
	var order []string

	step := recordingStep("flaky", &order, errors.New("fatal this time"))
	step.Tolerate = func(err error) bool { return false }

	p := NewPipeline(logger.NewMockLogger(), nil)

	err := p.Execute(context.Background(), []Step{step, recordingStep("later", &order, nil)})
	require.Error(t, err)
	assert.Equal(t, []string{"flaky"}, order)
}

func TestPipelineStopsOnCancelledContext(t *testing.T) {
	var order []string

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := NewPipeline(logger.NewMockLogger(), nil)
	err := p.Execute(ctx, []Step{recordingStep("first", &order, nil)})
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, order)
}
