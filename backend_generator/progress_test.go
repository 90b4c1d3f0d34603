package backend_generator

import (
	"context"
	"testing"
	"time"

	"github.com/meysamhadeli/susi/backend_generator/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func instantSimulator(t *testing.T) (*ProgressSimulator, *[]time.Duration) {
	t.Helper()
	simulator, err := NewProgressSimulator(DefaultGenerationSteps, DefaultStepDelay)
	require.NoError(t, err)

	var waits []time.Duration
	simulator.wait = func(ctx context.Context, d time.Duration) error {
		waits = append(waits, d)
		return ctx.Err()
	}
	return simulator, &waits
}

func TestProgressSimulator_MonotonicAndEndsAt100(t *testing.T) {
	simulator, waits := instantSimulator(t)

	var states []models.ProgressState
	err := simulator.Run(context.Background(), func(state models.ProgressState) {
		states = append(states, state)
	})

	require.NoError(t, err)
	require.Len(t, states, 2*len(DefaultGenerationSteps))
	for i := 1; i < len(states); i++ {
		assert.GreaterOrEqual(t, states[i].Percent, states[i-1].Percent)
	}
	assert.Equal(t, 100, states[len(states)-1].Percent)
	assert.Equal(t, "Finalizing backend", states[len(states)-1].Label)
	assert.Len(t, *waits, len(DefaultGenerationSteps))
	for _, wait := range *waits {
		assert.Equal(t, time.Second, wait)
	}
}

func TestProgressSimulator_LabelBeforePercent(t *testing.T) {
	simulator, _ := instantSimulator(t)

	var states []models.ProgressState
	require.NoError(t, simulator.Run(context.Background(), func(state models.ProgressState) {
		states = append(states, state)
	}))

	assert.Equal(t, models.ProgressState{Percent: 0, Label: "Creating database models"}, states[0])
	assert.Equal(t, models.ProgressState{Percent: 20, Label: "Creating database models"}, states[1])
	assert.Equal(t, models.ProgressState{Percent: 20, Label: "Setting up authentication"}, states[2])
	assert.Equal(t, models.ProgressState{Percent: 40, Label: "Setting up authentication"}, states[3])
}

func TestProgressSimulator_RealDelay(t *testing.T) {
	simulator, err := NewProgressSimulator(DefaultGenerationSteps, time.Millisecond)
	require.NoError(t, err)

	started := time.Now()
	last := models.ProgressState{}
	require.NoError(t, simulator.Run(context.Background(), func(state models.ProgressState) { last = state }))

	assert.GreaterOrEqual(t, time.Since(started), 5*time.Millisecond)
	assert.Equal(t, 100, last.Percent)
}

func TestProgressSimulator_Canceled(t *testing.T) {
	simulator, err := NewProgressSimulator(DefaultGenerationSteps, time.Hour)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = simulator.Run(ctx, func(models.ProgressState) {})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewProgressSimulator_RejectsBadTables(t *testing.T) {
	tables := map[string][]models.GenerationStep{
		"empty":          nil,
		"decreasing":     {{Label: "a", Progress: 50}, {Label: "b", Progress: 40}, {Label: "c", Progress: 100}},
		"repeated":       {{Label: "a", Progress: 50}, {Label: "b", Progress: 50}, {Label: "c", Progress: 100}},
		"short of 100":   {{Label: "a", Progress: 50}, {Label: "b", Progress: 90}},
		"above 100":      {{Label: "a", Progress: 50}, {Label: "b", Progress: 120}},
		"starts at zero": {{Label: "a", Progress: 0}, {Label: "b", Progress: 100}},
	}

	for name, steps := range tables {
		t.Run(name, func(t *testing.T) {
			_, err := NewProgressSimulator(steps, time.Second)
			assert.Error(t, err)
		})
	}

	simulator, err := NewProgressSimulator([]models.GenerationStep{{Label: "done", Progress: 100}}, -time.Second)
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), simulator.Delay)
}

func TestProgressSimulator_LiteralUsesDefaultWait(t *testing.T) {
	simulator := &ProgressSimulator{Steps: DefaultGenerationSteps}

	var last models.ProgressState
	require.NotPanics(t, func() {
		require.NoError(t, simulator.Run(context.Background(), func(state models.ProgressState) { last = state }))
	})
	assert.Equal(t, 100, last.Percent)
}
