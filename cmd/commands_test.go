package cmd

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	analyzer_models "github.com/meysamhadeli/susi/code_analyzer/models"
	"github.com/meysamhadeli/susi/errs"
	provider_models "github.com/meysamhadeli/susi/providers/models"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCommand(addFlags func(*cobra.Command)) *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	addFlags(cmd)
	cmd.SetContext(context.Background())
	return cmd
}

func TestAnalysisRequestFromArgs(t *testing.T) {
	request, err := analysisRequestFromArgs([]string{repoURL}, "")
	require.NoError(t, err)
	assert.Equal(t, repoURL, request.URL)

	request, err = analysisRequestFromArgs(nil, "frontend.zip")
	require.NoError(t, err)
	assert.Equal(t, "frontend.zip", request.FilePath)

	_, err = analysisRequestFromArgs([]string{repoURL}, "frontend.zip")
	assert.Error(t, err)
	_, err = analysisRequestFromArgs(nil, "")
	assert.Error(t, err)
}

func TestHandleAnalyzeCommand_WritesJSON(t *testing.T) {
	s := newTestSession(t)
	s.expectAnalysis()

	jsonPath := filepath.Join(t.TempDir(), "analysis.json")
	cmd := newCommand(addAnalyzeFlags)
	require.NoError(t, cmd.Flags().Set("json", jsonPath))

	require.NoError(t, handleAnalyzeCommand(cmd, s.deps, []string{repoURL}))
	assert.Contains(t, s.out.String(), "Analysis saved to")

	data, err := os.ReadFile(jsonPath)
	require.NoError(t, err)
	var saved provider_models.ProjectData
	require.NoError(t, json.Unmarshal(data, &saved))
	assert.Equal(t, "A todo app with login.", saved.AISummary)
	assert.Equal(t, repoURL, saved.RepoURL)
}

func TestHandleAnalyzeCommand_ReportsFailure(t *testing.T) {
	s := newTestSession(t)

	err := handleAnalyzeCommand(newCommand(addAnalyzeFlags), s.deps, []string{"https://gitlab.com/foo/bar"})

	assert.ErrorIs(t, err, errs.ErrValidation)
	var reported *reportedError
	assert.ErrorAs(t, err, &reported)
	assert.Contains(t, s.out.String(), "valid GitHub repository URL")
}

func TestHandleGenerateCommand_FromSummary(t *testing.T) {
	s := newTestSession(t)
	s.expectGeneration("https://files.example.com/backend.zip")
	s.provider.On("FetchArchive", mock.Anything, mock.Anything, mock.Anything).Return("PK", nil).Once()

	cmd := newCommand(addGenerateFlags)
	require.NoError(t, cmd.Flags().Set("summary", "A todo app with login."))
	require.NoError(t, cmd.Flags().Set("download", "true"))

	require.NoError(t, handleGenerateCommand(cmd, s.deps, nil))

	assert.Contains(t, s.out.String(), "Features Generated:")
	_, err := os.Stat(filepath.Join(s.deps.Config.GenerationConfig.OutputDir, "backend.zip"))
	assert.NoError(t, err)
}

func TestHandleGenerateCommand_FromAnalysisFile(t *testing.T) {
	s := newTestSession(t)
	s.expectGeneration("")

	project := sampleProject()
	project.RepoURL = repoURL
	data, err := json.Marshal(project)
	require.NoError(t, err)
	from := filepath.Join(t.TempDir(), "analysis.json")
	require.NoError(t, os.WriteFile(from, data, 0644))

	cmd := newCommand(addGenerateFlags)
	require.NoError(t, cmd.Flags().Set("from", from))

	require.NoError(t, handleGenerateCommand(cmd, s.deps, nil))
	snapshot := s.deps.Session.Snapshot()
	assert.Equal(t, "bar", snapshot.ProjectRoot)
	assert.True(t, snapshot.HasBackend())
}

func TestHandleGenerateCommand_RequiresSummary(t *testing.T) {
	s := newTestSession(t)

	err := handleGenerateCommand(newCommand(addGenerateFlags), s.deps, nil)

	assert.ErrorIs(t, err, errs.ErrNoAnalysis)
	s.provider.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
}

func TestHandleGenerateCommand_BusySessionIsReported(t *testing.T) {
	s := newTestSession(t)
	require.NoError(t, s.deps.Session.BeginAnalysis(analyzer_models.AnalysisRequest{}))

	cmd := newCommand(addGenerateFlags)
	require.NoError(t, cmd.Flags().Set("summary", "A todo app with login."))

	err := handleGenerateCommand(cmd, s.deps, nil)

	assert.ErrorIs(t, err, errs.ErrBusy)
	var reported *reportedError
	assert.ErrorAs(t, err, &reported)
	assert.Contains(t, s.out.String(), "A request is already in progress.")
	assert.NotContains(t, s.out.String(), "Analyze a project first.")
	s.provider.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
}
