package utils

import (
	"context"
	"fmt"

	"github.com/meysamhadeli/susi/constants/lipgloss"
)

// GracefulShutdown waits for ctx to end, runs cleanup once and then cancels.
func GracefulShutdown(ctx context.Context, cancel context.CancelFunc, cleanup func()) {
	<-ctx.Done()

	if cleanup != nil {
		cleanup()
	}
	fmt.Println(lipgloss.Yellow.Render("\n🔄 Shutting down gracefully..."))
	cancel()
}
