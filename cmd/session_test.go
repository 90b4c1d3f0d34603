package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/meysamhadeli/susi/backend_generator"
	"github.com/meysamhadeli/susi/code_analyzer"
	"github.com/meysamhadeli/susi/config"
	"github.com/meysamhadeli/susi/providers/mocks"
	provider_models "github.com/meysamhadeli/susi/providers/models"
	"github.com/meysamhadeli/susi/session_management"
	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const repoURL = "https://github.com/foo/bar"

type fakeBrowser struct {
	opened []string
	err    error
}

func (f *fakeBrowser) Open(ctx context.Context, target string) error {
	f.opened = append(f.opened, target)
	return f.err
}

type testSession struct {
	deps     *RootDependencies
	provider *mocks.SusiProvider
	browser  *fakeBrowser
	out      *bytes.Buffer
}

func newTestSession(t *testing.T) *testSession {
	t.Helper()
	pterm.DisableColor()

	cfg := config.DefaultConfig
	cfg.GenerationConfig = &config.GenerationConfig{OutputDir: t.TempDir()}

	cacheManager, err := code_analyzer.NewCacheManager(cfg.CacheSize)
	require.NoError(t, err)
	progress, err := backend_generator.NewProgressSimulator(backend_generator.DefaultGenerationSteps, 0)
	require.NoError(t, err)

	provider := &mocks.SusiProvider{}
	browser := &fakeBrowser{}
	out := &bytes.Buffer{}
	logger := pterm.DefaultLogger.WithLevel(pterm.LogLevelDisabled)

	return &testSession{
		deps: &RootDependencies{
			Cwd:       t.TempDir(),
			Config:    &cfg,
			Logger:    logger,
			Provider:  provider,
			Analyzer:  code_analyzer.NewCodeAnalyzer(provider, cacheManager, logger),
			Generator: backend_generator.NewBackendGenerator(provider, progress, logger),
			Session:   session_management.NewSessionManager(cfg.Framework),
			Browser:   browser,
			Out:       out,
		},
		provider: provider,
		browser:  browser,
		out:      out,
	}
}

func (s *testSession) run(input string) bool {
	s.out.Reset()
	return runSessionCommand(context.Background(), s.deps, input)
}

func sampleProject() *provider_models.ProjectData {
	return &provider_models.ProjectData{
		Framework:    "react",
		DetectedAPIs: []string{"/api/login", "/api/todos"},
		AISummary:    "A todo app with login.",
		Structure:    []string{"src/App.jsx", "src/components/Nav.jsx", "package.json"},
	}
}

const sampleBackend = "### backend/routes/auth.js\n...\n### backend/routes/user.js\n...\n### backend/server.js\n..."

func (s *testSession) expectAnalysis() {
	s.provider.On("Summarize", mock.Anything, provider_models.SummarizeRequest{RepoURL: repoURL}).Return(sampleProject(), nil)
}

func (s *testSession) expectGeneration(downloadURL string) {
	s.provider.On("Generate", mock.Anything, "A todo app with login.").Return(&provider_models.GenerateResponse{
		BackendCode: sampleBackend,
		DownloadURL: downloadURL,
	}, nil)
}

func TestSession_FullFlow(t *testing.T) {
	s := newTestSession(t)
	s.expectAnalysis()
	s.expectGeneration("https://files.example.com/backend.zip")
	s.provider.On("FetchArchive", mock.Anything, "https://files.example.com/backend.zip", mock.Anything).Return("PK-archive", nil).Once()

	assert.False(t, s.run("/analyze "+repoURL))
	assert.Contains(t, s.out.String(), "Files Detected: 3")
	assert.Contains(t, s.out.String(), "/api/todos")

	assert.False(t, s.run("/generate"))
	assert.Contains(t, s.out.String(), "Backend generated successfully!")
	assert.Contains(t, s.out.String(), "[100%] Finalizing backend")
	assert.Contains(t, s.out.String(), "server.js")

	dir := t.TempDir()
	assert.False(t, s.run("/download "+dir))
	assert.Contains(t, s.out.String(), "Backend ZIP downloaded!")
	content, err := os.ReadFile(filepath.Join(dir, "backend.zip"))
	require.NoError(t, err)
	assert.Equal(t, "PK-archive", string(content))

	assert.True(t, s.run("/exit"))
	s.provider.AssertExpectations(t)
}

func TestSession_PastedURLIsAnalyzed(t *testing.T) {
	s := newTestSession(t)
	s.expectAnalysis()

	s.run(repoURL)

	assert.True(t, s.deps.Session.Snapshot().HasAnalysis())
}

func TestSession_InvalidURLNeverCallsService(t *testing.T) {
	s := newTestSession(t)

	for _, url := range []string{"https://gitlab.com/foo/bar", "https://github.com/foo", "ftp://github.com/foo/bar"} {
		s.run("/analyze " + url)
		assert.Contains(t, s.out.String(), "Please enter a valid GitHub repository URL", url)
	}

	s.run("/analyze")
	assert.Contains(t, s.out.String(), "Please enter a GitHub URL")

	s.provider.AssertNotCalled(t, "Summarize", mock.Anything, mock.Anything)
}

func TestSession_AnalysisFailureIsGeneric(t *testing.T) {
	s := newTestSession(t)
	s.provider.On("Summarize", mock.Anything, mock.Anything).Return(nil, errors.New("upstream exploded"))

	s.run("/analyze " + repoURL)

	assert.Contains(t, s.out.String(), "Failed to analyze project.")
	assert.NotContains(t, s.out.String(), "upstream exploded")
	assert.False(t, s.deps.Session.Snapshot().HasAnalysis())
}

func TestSession_GenerateRequiresAnalysis(t *testing.T) {
	s := newTestSession(t)

	s.run("/generate")

	assert.Contains(t, s.out.String(), "Analyze a project first.")
	s.provider.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
}

func TestSession_GenerationFailureKeepsAnalysis(t *testing.T) {
	s := newTestSession(t)
	s.expectAnalysis()
	s.provider.On("Generate", mock.Anything, mock.Anything).Return(nil, errors.New("503"))

	s.run("/analyze " + repoURL)
	s.run("/generate")

	assert.Contains(t, s.out.String(), "Backend generation failed. Please try again.")
	snapshot := s.deps.Session.Snapshot()
	assert.True(t, snapshot.HasAnalysis())
	assert.False(t, snapshot.HasBackend())
}

func TestSession_DownloadWithoutLink(t *testing.T) {
	s := newTestSession(t)
	s.expectAnalysis()
	s.expectGeneration("")

	s.run("/download")
	assert.Contains(t, s.out.String(), "No download link available.")

	s.run("/analyze " + repoURL)
	s.run("/generate")
	assert.NotContains(t, s.out.String(), "/download  Download ZIP")
	s.run("/download")
	assert.Contains(t, s.out.String(), "No download link available.")

	s.provider.AssertNotCalled(t, "FetchArchive", mock.Anything, mock.Anything, mock.Anything)
}

func TestSession_DownloadFailure(t *testing.T) {
	s := newTestSession(t)
	s.expectAnalysis()
	s.expectGeneration("https://files.example.com/backend.zip")
	s.provider.On("FetchArchive", mock.Anything, mock.Anything, mock.Anything).Return("", errors.New("reset"))

	s.run("/analyze " + repoURL)
	s.run("/generate")
	s.run("/download")

	assert.Contains(t, s.out.String(), "Failed to download backend ZIP")
}

func TestSession_ToggleAndExpandAll(t *testing.T) {
	s := newTestSession(t)
	s.expectAnalysis()
	s.run("/analyze " + repoURL)

	s.run("/toggle src")
	assert.False(t, s.deps.Session.Snapshot().ProjectExpanded.IsOpen("bar/src"))
	assert.Contains(t, s.out.String(), "src ▸")

	s.run("/toggle bar/package.json")
	assert.Contains(t, s.out.String(), "is not a folder")

	s.run("/toggle-backend routes")
	assert.Contains(t, s.out.String(), "Generate a backend first.")

	s.run("/expand-all")
	assert.True(t, s.deps.Session.Snapshot().ProjectExpanded.IsOpen("bar/src"))
}

func TestSession_ReanalyzeSkipsCache(t *testing.T) {
	s := newTestSession(t)
	s.expectAnalysis()

	s.run("/reanalyze")
	assert.Contains(t, s.out.String(), "Analyze a project first.")

	s.run("/analyze " + repoURL)
	s.run("/analyze " + repoURL)
	s.provider.AssertNumberOfCalls(t, "Summarize", 1)
	assert.Contains(t, s.out.String(), "cached")

	s.run("/reanalyze")
	s.provider.AssertNumberOfCalls(t, "Summarize", 2)

	s.run("/reset-cache")
	assert.Contains(t, s.out.String(), "successfully reset")
	s.run("/analyze " + repoURL)
	s.provider.AssertNumberOfCalls(t, "Summarize", 3)

	s.run("/cache-stats")
	assert.Contains(t, s.out.String(), "cached_entries")
}

func TestSession_Framework(t *testing.T) {
	s := newTestSession(t)

	s.run("/framework Vue")
	assert.Equal(t, "vue", s.deps.Session.Snapshot().Framework)

	s.run("/framework ember")
	assert.Contains(t, s.out.String(), "Unsupported framework 'ember'")
	assert.Equal(t, "vue", s.deps.Session.Snapshot().Framework)

	s.run("/framework")
	assert.Contains(t, s.out.String(), "Current framework: vue")
}

func TestSession_DeployAndFeedback(t *testing.T) {
	s := newTestSession(t)

	s.run("/deploy")
	assert.Contains(t, s.out.String(), "Redirecting to Railway for deployment...")

	s.run("/feedback")
	assert.Contains(t, s.out.String(), "Opening Feedback Form...")
	assert.Equal(t, []string{"https://railway.app/new", "https://forms.gle/xdzg11DWCYSJSZqKA"}, s.browser.opened)

	s.browser.err = errors.New("no display")
	s.run("/deploy")
	assert.Contains(t, s.out.String(), "visit https://railway.app/new")
}

func TestSession_HelpAndUnknown(t *testing.T) {
	s := newTestSession(t)

	s.run("/help")
	assert.Contains(t, s.out.String(), "/toggle-backend <path>")

	s.run("/nope")
	assert.Contains(t, s.out.String(), "Unknown command '/nope'")
}

func TestHandleSessionCommand_EndsOnExitAndEOF(t *testing.T) {
	s := newTestSession(t)

	require.NoError(t, handleSessionCommand(context.Background(), s.deps, strings.NewReader("\n/help\n/exit\n/never-run\n")))
	assert.Contains(t, s.out.String(), "Bye!")
	assert.NotContains(t, s.out.String(), "Unknown command")

	s.out.Reset()
	require.NoError(t, handleSessionCommand(context.Background(), s.deps, strings.NewReader("/help")))
	assert.Contains(t, s.out.String(), "/reset-cache")
}

func TestQualifyPath(t *testing.T) {
	assert.Equal(t, "bar/src", qualifyPath("bar", "src"))
	assert.Equal(t, "bar/src", qualifyPath("bar", "bar/src/"))
	assert.Equal(t, "bar", qualifyPath("bar", ""))
	assert.Equal(t, "bar", qualifyPath("bar", "bar"))
	assert.Equal(t, "backend/routes", qualifyPath("backend", "/routes"))
}

func TestHandleSessionCommand_CanceledContextCleansUp(t *testing.T) {
	s := newTestSession(t)
	s.expectAnalysis()
	s.run("/analyze " + repoURL)
	require.True(t, s.deps.Session.Snapshot().HasAnalysis())
	require.Equal(t, 1, s.deps.Analyzer.GetCacheStats()["cached_entries"])

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.NotPanics(t, func() {
		assert.NoError(t, handleSessionCommand(ctx, s.deps, strings.NewReader("/analyze "+repoURL+"\n")))
	})

	snapshot := s.deps.Session.Snapshot()
	assert.False(t, snapshot.HasAnalysis())
	assert.Nil(t, snapshot.LastRequest)
	assert.Equal(t, 0, s.deps.Analyzer.GetCacheStats()["cached_entries"])
	s.provider.AssertNumberOfCalls(t, "Summarize", 1)
}
