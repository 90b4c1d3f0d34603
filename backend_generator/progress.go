package backend_generator

import (
	"context"
	"fmt"
	"time"

	"github.com/meysamhadeli/susi/backend_generator/models"
)

const (
	DefaultStepDelay = time.Second
	startLabel       = "Sending summary to AI model..."
)

// DefaultGenerationSteps is the fixed five-stage table shown after a successful generation.
var DefaultGenerationSteps = []models.GenerationStep{
	{Label: "Creating database models", Progress: 20},
	{Label: "Setting up authentication", Progress: 40},
	{Label: "Generating API routes", Progress: 60},
	{Label: "Configuring email service", Progress: 80},
	{Label: "Finalizing backend", Progress: 100},
}

// ProgressSimulator walks the step table with a fixed delay. It does not reflect
// real generation progress; the remote call has already finished when it runs.
type ProgressSimulator struct {
	Steps []models.GenerationStep
	Delay time.Duration

	// wait is replaced in tests.
	wait func(ctx context.Context, d time.Duration) error
}

// NewProgressSimulator validates steps: strictly increasing percentages ending at 100.
func NewProgressSimulator(steps []models.GenerationStep, delay time.Duration) (*ProgressSimulator, error) {
	if len(steps) == 0 {
		return nil, fmt.Errorf("progress table is empty")
	}

	previous := 0
	for _, step := range steps {
		if step.Progress <= previous || step.Progress > 100 {
			return nil, fmt.Errorf("progress step '%s' must be above %d%% and at most 100%%", step.Label, previous)
		}
		previous = step.Progress
	}
	if previous != 100 {
		return nil, fmt.Errorf("progress table must end at 100%%, ends at %d%%", previous)
	}

	if delay < 0 {
		delay = 0
	}

	return &ProgressSimulator{
		Steps: append([]models.GenerationStep(nil), steps...),
		Delay: delay,
		wait:  sleepContext,
	}, nil
}

// Run publishes each step label, waits Delay, then publishes the step percentage.
// A canceled ctx ends the run early with ctx.Err().
func (p *ProgressSimulator) Run(ctx context.Context, observe func(models.ProgressState)) error {
	wait := p.wait
	if wait == nil {
		wait = sleepContext
	}

	percent := 0
	for _, step := range p.Steps {
		observe(models.ProgressState{Percent: percent, Label: step.Label})

		if err := wait(ctx, p.Delay); err != nil {
			return err
		}

		percent = step.Progress
		observe(models.ProgressState{Percent: percent, Label: step.Label})
	}
	return nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
