package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	analyzer_models "github.com/meysamhadeli/susi/code_analyzer/models"
	"github.com/meysamhadeli/susi/constants/lipgloss"
	"github.com/meysamhadeli/susi/errs"
	"github.com/meysamhadeli/susi/file_tree"
	"github.com/meysamhadeli/susi/utils"
	"github.com/meysamhadeli/susi/views"
)

func handleSessionCommand(ctx context.Context, rootDependencies *RootDependencies, in io.Reader) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	reader := bufio.NewReader(in)
	out := rootDependencies.Out

	fmt.Fprintln(out, lipgloss.BoxStyle.Render("Welcome to susi 🚀  Paste a GitHub URL or type /help"))

	for {
		select {
		case <-ctx.Done():
			utils.GracefulShutdown(ctx, cancel, func() {
				rootDependencies.Analyzer.ClearCache()
				rootDependencies.Session.Reset()
			})
			return nil
		default:
		}

		userInput, err := utils.InputPromptWithContext(ctx, reader)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				continue
			}
			if errors.Is(err, io.EOF) {
				if userInput != "" {
					runSessionCommand(ctx, rootDependencies, userInput)
				}
				return nil
			}
			fmt.Fprintln(out, lipgloss.Red.Render(err.Error()))
			continue
		}

		if userInput == "" {
			continue
		}

		if exit := runSessionCommand(ctx, rootDependencies, userInput); exit {
			return nil
		}
	}
}

// runSessionCommand executes one line of input and reports whether the session should end.
func runSessionCommand(ctx context.Context, deps *RootDependencies, input string) bool {
	out := deps.Out
	command, argument := splitCommand(input)

	switch command {
	case "/exit":
		fmt.Fprintln(out, lipgloss.Yellow.Render("👋 Bye!"))
		return true

	case "/help":
		reportRenderError(deps, views.RenderHelp(out))

	case "/clear":
		fmt.Fprint(out, "\033[2J\033[H")

	case "/analyze":
		sessionAnalyze(ctx, deps, analyzer_models.AnalysisRequest{Source: analyzer_models.SourceGithub, URL: argument})

	case "/upload":
		sessionAnalyze(ctx, deps, analyzer_models.AnalysisRequest{Source: analyzer_models.SourceFile, FilePath: argument})

	case "/reanalyze":
		last := deps.Session.Snapshot().LastRequest
		if last == nil {
			views.NotifyError(out, fmt.Errorf("%w: nothing to reanalyze", errs.ErrNoAnalysis))
			break
		}
		request := *last
		request.Refresh = true
		request.Framework = deps.Session.Snapshot().Framework
		sessionAnalyze(ctx, deps, request)

	case "/framework":
		if argument == "" {
			fmt.Fprintf(out, "Current framework: %s (available: %s)\n", deps.Session.Snapshot().Framework, strings.Join(analyzer_models.SupportedFrameworks, ", "))
			break
		}
		framework := analyzer_models.NormalizeFramework(argument)
		if !analyzer_models.IsSupportedFramework(framework) {
			views.NotifyError(out, errs.NewValidationError("framework", fmt.Sprintf("Unsupported framework '%s'. Use one of %s", argument, strings.Join(analyzer_models.SupportedFrameworks, ", "))))
			break
		}
		deps.Session.SetFramework(framework)
		views.NotifySuccess(out, fmt.Sprintf("Framework set to %s", framework))

	case "/generate":
		if _, err := generateBackend(ctx, deps); err != nil {
			views.NotifyError(out, err)
			break
		}
		views.NotifySuccess(out, "Backend generated successfully!")
		reportRenderError(deps, views.RenderBackend(out, deps.Session.Snapshot()))

	case "/tree":
		reportRenderError(deps, views.RenderProjectTree(out, deps.Session.Snapshot()))

	case "/backend":
		reportRenderError(deps, views.RenderBackend(out, deps.Session.Snapshot()))

	case "/toggle":
		snapshot := deps.Session.Snapshot()
		path := qualifyPath(snapshot.ProjectRoot, argument)
		if _, err := deps.Session.ToggleProjectFolder(path); err != nil {
			views.NotifyError(out, err)
			break
		}
		reportRenderError(deps, views.RenderProjectTree(out, deps.Session.Snapshot()))

	case "/toggle-backend":
		path := qualifyPath("backend", argument)
		if _, err := deps.Session.ToggleBackendFolder(path); err != nil {
			views.NotifyError(out, err)
			break
		}
		reportRenderError(deps, views.RenderBackendTree(out, deps.Session.Snapshot()))

	case "/expand-all":
		deps.Session.ExpandAllProject()
		deps.Session.ExpandAllBackend()
		snapshot := deps.Session.Snapshot()
		reportRenderError(deps, views.RenderProjectTree(out, snapshot))
		if snapshot.HasBackend() {
			reportRenderError(deps, views.RenderBackendTree(out, snapshot))
		}

	case "/download":
		path, err := downloadBackend(ctx, deps, deps.Session.Snapshot().DownloadURL(), argument)
		if err != nil {
			views.NotifyError(out, err)
			break
		}
		views.NotifySuccess(out, fmt.Sprintf("✅ Backend ZIP downloaded! Saved to %s", path))

	case "/deploy":
		openPage(ctx, deps, "Redirecting to Railway for deployment...", deps.Config.DeployURL)

	case "/feedback":
		openPage(ctx, deps, "Opening Feedback Form... Please fill out the form in your browser.", deps.Config.FeedbackURL)

	case "/reset-cache":
		deps.Analyzer.ClearCache()
		views.NotifySuccess(out, "✓ Analysis cache has been successfully reset!")

	case "/cache-stats":
		printCacheStats(out, deps.Analyzer.GetCacheStats())

	default:
		if analyzer_models.IsValidGithubURL(input) {
			sessionAnalyze(ctx, deps, analyzer_models.AnalysisRequest{Source: analyzer_models.SourceGithub, URL: input})
			break
		}
		fmt.Fprintln(out, lipgloss.Yellow.Render(fmt.Sprintf("Unknown command '%s', type /help for the list of commands.", command)))
	}

	return false
}

func sessionAnalyze(ctx context.Context, deps *RootDependencies, request analyzer_models.AnalysisRequest) {
	if request.Framework == "" {
		request.Framework = deps.Session.Snapshot().Framework
	}

	if _, err := analyzeProject(ctx, deps, request); err != nil {
		views.NotifyError(deps.Out, err)
		return
	}

	snapshot := deps.Session.Snapshot()
	reportRenderError(deps, views.RenderAnalysis(deps.Out, snapshot, deps.Config.Theme))
	fmt.Fprintln(deps.Out, lipgloss.Info.Render("Type /generate to create a backend for this project."))
}

func splitCommand(input string) (string, string) {
	input = strings.TrimSpace(input)
	command, argument, _ := strings.Cut(input, " ")
	return command, strings.TrimSpace(argument)
}

// qualifyPath accepts folder paths with or without the leading root name.
func qualifyPath(rootName string, path string) string {
	path = strings.Trim(strings.TrimSpace(path), "/")
	if rootName == "" || path == "" {
		return rootName
	}
	if path == rootName || strings.HasPrefix(path, rootName+"/") {
		return path
	}
	return file_tree.JoinPath(rootName, path)
}

func printCacheStats(out io.Writer, stats map[string]interface{}) {
	if enabled, ok := stats["cache_enabled"].(bool); !ok || !enabled {
		fmt.Fprintln(out, lipgloss.Yellow.Render("Cache is disabled."))
		return
	}

	keys := make([]string, 0, len(stats))
	for key := range stats {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var lines []string
	for _, key := range keys {
		lines = append(lines, fmt.Sprintf("%-18s %v", key, stats[key]))
	}
	fmt.Fprintln(out, lipgloss.BoxStyle.Render("Cache Statistics:\n"+strings.Join(lines, "\n")))
}

func reportRenderError(deps *RootDependencies, err error) {
	if err != nil {
		fmt.Fprintln(deps.Out, lipgloss.Red.Render(fmt.Sprintf("Error rendering output: %v", err)))
	}
}
