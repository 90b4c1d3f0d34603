package backend_generator

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/meysamhadeli/susi/backend_generator/contracts"
	"github.com/meysamhadeli/susi/backend_generator/models"
	"github.com/meysamhadeli/susi/errs"
	"github.com/meysamhadeli/susi/file_tree"
	contracts_provider "github.com/meysamhadeli/susi/providers/contracts"
	"github.com/pterm/pterm"
)

const (
	// BackendRoot is the root folder of every generated project.
	BackendRoot = "backend"

	// ArchiveFileName is the fixed name of the downloaded archive.
	ArchiveFileName = "backend.zip"
)

// backendPathPattern matches the lines that announce a generated file.
var backendPathPattern = regexp.MustCompile(`### (` + BackendRoot + `/[^\n]*)`)

// BackendGenerator asks the remote service for a backend matching an analysis summary.
type BackendGenerator struct {
	provider contracts_provider.ISusiProvider
	progress *ProgressSimulator
	logger   *pterm.Logger
}

// NewBackendGenerator initializes a new BackendGenerator.
func NewBackendGenerator(provider contracts_provider.ISusiProvider, progress *ProgressSimulator, logger *pterm.Logger) contracts.IBackendGenerator {
	if progress == nil {
		progress, _ = NewProgressSimulator(DefaultGenerationSteps, DefaultStepDelay)
	}
	if logger == nil {
		logger = pterm.DefaultLogger.WithLevel(pterm.LogLevelDisabled)
	}

	return &BackendGenerator{
		provider: provider,
		progress: progress,
		logger:   logger,
	}
}

// ExtractBackendPaths returns every "### backend/<path>" announcement of text in order.
// Other lines are ignored.
func ExtractBackendPaths(text string) []string {
	matches := backendPathPattern.FindAllStringSubmatch(text, -1)

	paths := make([]string, 0, len(matches))
	for _, match := range matches {
		path := strings.TrimSpace(match[1])
		if path == BackendRoot+"/" {
			continue
		}
		paths = append(paths, path)
	}
	return paths
}

// Generate sends aiSummary to the service, builds the generated tree and then
// plays the progress table through observe. On failure no result is returned.
func (generator *BackendGenerator) Generate(ctx context.Context, aiSummary string, observe func(models.ProgressState)) (*models.GenerationResult, error) {
	if observe == nil {
		observe = func(models.ProgressState) {}
	}

	if strings.TrimSpace(aiSummary) == "" {
		return nil, fmt.Errorf("%w: %w", errs.ErrNoAnalysis, errs.NewValidationError("summary", "the analysis summary is empty"))
	}

	observe(models.ProgressState{Percent: 0, Label: startLabel})

	generated, err := generator.provider.Generate(ctx, aiSummary)
	if err != nil {
		if !errors.Is(err, errs.ErrGenerationFailed) {
			err = fmt.Errorf("%w: %w", errs.ErrGenerationFailed, err)
		}
		return nil, err
	}
	if generated == nil {
		return nil, fmt.Errorf("%w: empty response", errs.ErrGenerationFailed)
	}

	paths := ExtractBackendPaths(generated.BackendCode)
	generator.logger.Debug("backend generated", generator.logger.Args("files", len(paths), "has_archive", generated.DownloadURL != ""))

	tree := file_tree.Build(BackendRoot, paths)
	result := &models.GenerationResult{
		Paths:       paths,
		Tree:        tree,
		Expanded:    file_tree.ExpandAll(tree),
		DownloadURL: strings.TrimSpace(generated.DownloadURL),
	}

	if err := generator.progress.Run(ctx, observe); err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrGenerationFailed, err)
	}

	return result, nil
}

// Download saves the archive behind downloadURL as destDir/backend.zip and returns its path.
// The archive is streamed into a transient file that only becomes backend.zip once complete.
func (generator *BackendGenerator) Download(ctx context.Context, downloadURL string, destDir string) (string, error) {
	downloadURL = strings.TrimSpace(downloadURL)
	if downloadURL == "" {
		return "", errs.ErrNoArchive
	}

	if destDir == "" {
		destDir = "."
	}
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", fmt.Errorf("%w: failed to create output directory: %w", errs.ErrDownloadFailed, err)
	}

	transient, err := os.CreateTemp(destDir, ".backend-*.zip.part")
	if err != nil {
		return "", fmt.Errorf("%w: failed to create temporary file: %w", errs.ErrDownloadFailed, err)
	}
	transientPath := transient.Name()
	defer os.Remove(transientPath)

	written, err := generator.provider.FetchArchive(ctx, downloadURL, transient)
	closeErr := transient.Close()
	if err != nil {
		if !errors.Is(err, errs.ErrDownloadFailed) {
			err = fmt.Errorf("%w: %w", errs.ErrDownloadFailed, err)
		}
		return "", err
	}
	if closeErr != nil {
		return "", fmt.Errorf("%w: failed to write archive: %w", errs.ErrDownloadFailed, closeErr)
	}

	archivePath := filepath.Join(destDir, ArchiveFileName)
	if err := os.Rename(transientPath, archivePath); err != nil {
		return "", fmt.Errorf("%w: failed to save archive: %w", errs.ErrDownloadFailed, err)
	}

	generator.logger.Debug("archive downloaded", generator.logger.Args("path", archivePath, "bytes", written))
	return archivePath, nil
}
