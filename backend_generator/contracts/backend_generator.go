package contracts

import (
	"context"

	"github.com/meysamhadeli/susi/backend_generator/models"
)

type IBackendGenerator interface {
	Generate(ctx context.Context, aiSummary string, observe func(models.ProgressState)) (*models.GenerationResult, error)
	Download(ctx context.Context, downloadURL string, destDir string) (string, error)
}
