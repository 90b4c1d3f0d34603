package mocks

import (
	"context"
	"io"

	"github.com/meysamhadeli/susi/providers/models"
	"github.com/stretchr/testify/mock"
)

// SusiProvider is a testify mock of contracts.ISusiProvider.
type SusiProvider struct {
	mock.Mock
}

func (m *SusiProvider) Summarize(ctx context.Context, request models.SummarizeRequest) (*models.ProjectData, error) {
	args := m.Called(ctx, request)
	data, _ := args.Get(0).(*models.ProjectData)
	return data, args.Error(1)
}

func (m *SusiProvider) Generate(ctx context.Context, aiSummary string) (*models.GenerateResponse, error) {
	args := m.Called(ctx, aiSummary)
	generated, _ := args.Get(0).(*models.GenerateResponse)
	return generated, args.Error(1)
}

// FetchArchive writes the string returned as the first mocked value to dst.
func (m *SusiProvider) FetchArchive(ctx context.Context, downloadURL string, dst io.Writer) (int64, error) {
	args := m.Called(ctx, downloadURL, dst)
	if err := args.Error(1); err != nil {
		return 0, err
	}
	written, err := io.WriteString(dst, args.String(0))
	return int64(written), err
}
