package code_analyzer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/meysamhadeli/susi/code_analyzer/contracts"
	"github.com/meysamhadeli/susi/code_analyzer/models"
	"github.com/meysamhadeli/susi/errs"
	"github.com/meysamhadeli/susi/file_tree"
	contracts_provider "github.com/meysamhadeli/susi/providers/contracts"
	provider_models "github.com/meysamhadeli/susi/providers/models"
	"github.com/pterm/pterm"
)

// CodeAnalyzer submits frontend projects to the remote service.
type CodeAnalyzer struct {
	provider     contracts_provider.ISusiProvider
	cacheManager *CacheManager
	logger       *pterm.Logger
}

// NewCodeAnalyzer initializes a new CodeAnalyzer. A nil cacheManager disables caching.
func NewCodeAnalyzer(provider contracts_provider.ISusiProvider, cacheManager *CacheManager, logger *pterm.Logger) contracts.ICodeAnalyzer {
	if logger == nil {
		logger = pterm.DefaultLogger.WithLevel(pterm.LogLevelDisabled)
	}

	return &CodeAnalyzer{
		provider:     provider,
		cacheManager: cacheManager,
		logger:       logger,
	}
}

// Analyze validates request locally, then returns the cached or remote analysis.
// Validation failures never reach the network and nothing is retried.
func (analyzer *CodeAnalyzer) Analyze(ctx context.Context, request models.AnalysisRequest) (*models.AnalysisResult, error) {
	request.Framework = models.NormalizeFramework(request.Framework)
	request.URL = strings.TrimSpace(request.URL)

	if err := request.Validate(); err != nil {
		return nil, err
	}

	cacheKey := analyzer.cacheKey(request)
	if cacheKey != "" && !request.Refresh {
		if cached, found := analyzer.cacheManager.Get(cacheKey); found {
			analyzer.logger.Debug("analysis served from cache", analyzer.logger.Args("key", cacheKey))
			return buildResult(request, cached, true), nil
		}
	}

	summarizeRequest := provider_models.SummarizeRequest{RepoURL: request.URL}
	if request.Source == models.SourceFile {
		summarizeRequest = provider_models.SummarizeRequest{ZipPath: request.FilePath}
	}

	projectData, err := analyzer.provider.Summarize(ctx, summarizeRequest)
	if err != nil {
		if !errors.Is(err, errs.ErrAnalysisFailed) {
			err = fmt.Errorf("%w: %w", errs.ErrAnalysisFailed, err)
		}
		return nil, err
	}
	if projectData == nil {
		return nil, fmt.Errorf("%w: empty response", errs.ErrAnalysisFailed)
	}

	projectData.Normalize()
	if projectData.RepoURL == "" && request.Source == models.SourceGithub {
		projectData.RepoURL = request.URL
	}
	if projectData.Framework == "" {
		projectData.Framework = request.Framework
	}

	if cacheKey != "" {
		analyzer.cacheManager.Set(cacheKey, projectData)
	}

	return buildResult(request, projectData, false), nil
}

func (analyzer *CodeAnalyzer) cacheKey(request models.AnalysisRequest) string {
	if analyzer.cacheManager == nil {
		return ""
	}

	key, err := GenerateCacheKey(request)
	if err != nil {
		analyzer.logger.Warn("analysis cache disabled for request", analyzer.logger.Args("error", err))
		return ""
	}
	return key
}

func buildResult(request models.AnalysisRequest, projectData *provider_models.ProjectData, fromCache bool) *models.AnalysisResult {
	rootName := request.RootName()
	tree := file_tree.Build(rootName, projectData.Structure)

	return &models.AnalysisResult{
		Project:   projectData,
		RootName:  rootName,
		Tree:      tree,
		Expanded:  file_tree.ExpandAll(tree),
		FromCache: fromCache,
	}
}

// ClearCache drops every cached analysis.
func (analyzer *CodeAnalyzer) ClearCache() {
	if analyzer.cacheManager == nil {
		return
	}
	analyzer.cacheManager.Clear()
	analyzer.cacheManager.ResetPerformanceStats()
}

func (analyzer *CodeAnalyzer) GetCacheStats() map[string]interface{} {
	if analyzer.cacheManager == nil {
		return map[string]interface{}{"cache_enabled": false}
	}
	return analyzer.cacheManager.GetCacheStats()
}
