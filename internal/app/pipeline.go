package app

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"llb/internal/logger"
)

// Step describes a single bootstrap phase.
type Step struct {
	Name string
	Fn   func(ctx context.Context) error

	// Tolerate, when set, marks specific failures as non-fatal: the failure
	// is logged and execution continues with the next step.
	Tolerate func(err error) bool
}

// StepStatus is the recorded outcome of a step.
type StepStatus string

const (
	StepOK        StepStatus = "ok"
	StepTolerated StepStatus = "tolerated"
	StepFailed    StepStatus = "failed"
)

// StepResult reports a finished step to the pipeline observer.
type StepResult struct {
	Name     string
	Status   StepStatus
	Err      error
	Duration time.Duration
}

// Pipeline executes bootstrap steps sequentially, aborting on the first
// failure that no step tolerates.
type Pipeline struct {
	log    logger.Logger
	onStep func(result StepResult)
}

// NewPipeline constructs a Pipeline. The observer may be nil.
func NewPipeline(log logger.Logger, onStep func(result StepResult)) *Pipeline {
	return &Pipeline{log: log, onStep: onStep}
}

// Execute runs through all steps in order.
func (p *Pipeline) Execute(ctx context.Context, steps []Step) error {
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return err
		}

		p.log.Progress(step.Name)
		start := time.Now()
		err := step.Fn(ctx)
		elapsed := time.Since(start)

		switch {
		case err == nil:
			p.log.ProgressDone(step.Name)
			p.notify(StepResult{Name: step.Name, Status: StepOK, Duration: elapsed})
		case step.Tolerate != nil && step.Tolerate(err):
			p.log.Warn("%s failed, continuing: %v", step.Name, err)
			p.notify(StepResult{Name: step.Name, Status: StepTolerated, Err: err, Duration: elapsed})
		default:
			p.notify(StepResult{Name: step.Name, Status: StepFailed, Err: err, Duration: elapsed})
			return errors.Wrapf(err, "%s failed", step.Name)
		}
	}

	return nil
}

func (p *Pipeline) notify(result StepResult) {
	if p.onStep != nil {
		p.onStep(result)
	}
}
