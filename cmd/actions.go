package cmd

import (
	"context"
	"fmt"

	generator_models "github.com/meysamhadeli/susi/backend_generator/models"
	analyzer_models "github.com/meysamhadeli/susi/code_analyzer/models"
	"github.com/meysamhadeli/susi/views"
	"github.com/pterm/pterm"
)

func (deps *RootDependencies) startSpinner(text string) func() {
	if !deps.Interactive {
		return func() {}
	}

	spinner := pterm.DefaultSpinner.WithStyle(pterm.NewStyle(pterm.FgLightBlue)).WithSequence("⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏").WithDelay(100).WithRemoveWhenDone(true)
	started, err := spinner.Start(text)
	if err != nil {
		return func() {}
	}
	return func() {
		_ = started.Stop()
		fmt.Print("\r")
	}
}

// analyzeProject runs one analysis through the session store.
func analyzeProject(ctx context.Context, deps *RootDependencies, request analyzer_models.AnalysisRequest) (*analyzer_models.AnalysisResult, error) {
	if err := deps.Session.BeginAnalysis(request); err != nil {
		return nil, err
	}

	stop := deps.startSpinner("Analyzing project...")
	result, err := deps.Analyzer.Analyze(ctx, request)
	stop()

	deps.Session.EndAnalysis(result, err)
	if err != nil {
		deps.Logger.Debug("analysis failed", deps.Logger.Args("error", err.Error()))
		return nil, err
	}
	return result, nil
}

// generateBackend generates a backend for the current analysis and plays the progress display.
func generateBackend(ctx context.Context, deps *RootDependencies) (*generator_models.GenerationResult, error) {
	summary, err := deps.Session.BeginGeneration()
	if err != nil {
		return nil, err
	}

	var progress *views.ProgressView
	if deps.Interactive {
		progress, err = views.NewProgressView(deps.Out)
		if err != nil {
			deps.Logger.Debug("progress bar unavailable", deps.Logger.Args("error", err.Error()))
			progress = nil
		}
	}

	observe := func(state generator_models.ProgressState) {
		deps.Session.SetProgress(state)
		if progress != nil {
			progress.Observe(state)
			return
		}
		fmt.Fprintf(deps.Out, "[%3d%%] %s\n", state.Percent, state.Label)
	}

	result, err := deps.Generator.Generate(ctx, summary, observe)
	if progress != nil {
		progress.Stop()
	}

	deps.Session.EndGeneration(result, err)
	if err != nil {
		deps.Logger.Debug("generation failed", deps.Logger.Args("error", err.Error()))
		return nil, err
	}
	return result, nil
}

// downloadBackend saves the archive of the current generation into dir.
func downloadBackend(ctx context.Context, deps *RootDependencies, downloadURL string, dir string) (string, error) {
	if dir == "" {
		dir = deps.Config.GenerationConfig.OutputDir
	}

	stop := deps.startSpinner("Downloading backend.zip...")
	path, err := deps.Generator.Download(ctx, downloadURL, dir)
	stop()

	return path, err
}

// openPage announces and opens an external page; a failure prints the address instead.
func openPage(ctx context.Context, deps *RootDependencies, announcement string, target string) {
	views.NotifyInfo(deps.Out, announcement)
	if err := deps.Browser.Open(ctx, target); err != nil {
		deps.Logger.Debug("browser not opened", deps.Logger.Args("error", err.Error()))
		views.NotifyWarning(deps.Out, fmt.Sprintf("Could not open a browser, visit %s", target))
	}
}
