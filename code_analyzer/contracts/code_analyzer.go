package contracts

import (
	"context"

	"github.com/meysamhadeli/susi/code_analyzer/models"
)

type ICodeAnalyzer interface {
	Analyze(ctx context.Context, request models.AnalysisRequest) (*models.AnalysisResult, error)
	ClearCache()
	GetCacheStats() map[string]interface{}
}
