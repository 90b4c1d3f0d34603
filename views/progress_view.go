package views

import (
	"io"

	"github.com/meysamhadeli/susi/backend_generator/models"
	"github.com/pterm/pterm"
)

// ProgressView draws generation progress as a pterm progress bar.
type ProgressView struct {
	bar     *pterm.ProgressbarPrinter
	current int
}

// NewProgressView starts a bar from 0 to 100 printed to w.
func NewProgressView(w io.Writer) (*ProgressView, error) {
	bar, err := pterm.DefaultProgressbar.
		WithTotal(100).
		WithTitle("Generating backend").
		WithWriter(w).
		WithRemoveWhenDone(false).
		WithShowElapsedTime(false).
		Start()
	if err != nil {
		return nil, err
	}
	return &ProgressView{bar: bar}, nil
}

// Observe moves the bar to state. The bar never moves backwards.
func (pv *ProgressView) Observe(state models.ProgressState) {
	if state.Label != "" {
		pv.bar.UpdateTitle(state.Label)
	}
	if state.Percent > pv.current {
		pv.bar.Add(state.Percent - pv.current)
		pv.current = state.Percent
	}
}

// Percent is the value the bar currently shows.
func (pv *ProgressView) Percent() int {
	return pv.current
}

func (pv *ProgressView) Stop() {
	_, _ = pv.bar.Stop()
}
