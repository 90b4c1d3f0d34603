package contracts

import (
	"context"
	"io"

	"github.com/meysamhadeli/susi/providers/models"
)

// ISusiProvider is the remote analysis and generation service.
type ISusiProvider interface {
	Summarize(ctx context.Context, request models.SummarizeRequest) (*models.ProjectData, error)
	Generate(ctx context.Context, aiSummary string) (*models.GenerateResponse, error)
	FetchArchive(ctx context.Context, downloadURL string, dst io.Writer) (int64, error)
}
