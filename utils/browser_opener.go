package utils

import (
	"context"
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
)

// BrowserOpener opens external pages such as the deployment and feedback sites.
type BrowserOpener struct {
	GOOS string

	// run starts the opener command; replaced in tests.
	run func(ctx context.Context, name string, args ...string) error
}

// NewBrowserOpener creates an opener for the current platform.
func NewBrowserOpener() *BrowserOpener {
	return &BrowserOpener{
		GOOS: runtime.GOOS,
		run: func(ctx context.Context, name string, args ...string) error {
			return exec.CommandContext(ctx, name, args...).Start()
		},
	}
}

// Open launches the system browser on target. Only http and https pages are opened.
func (bo *BrowserOpener) Open(ctx context.Context, target string) error {
	if err := validateURL(target); err != nil {
		return err
	}

	name, args := bo.command(target)
	if err := bo.run(ctx, name, args...); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}
	return nil
}

func (bo *BrowserOpener) command(target string) (string, []string) {
	switch bo.GOOS {
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", target}
	case "darwin":
		return "open", []string{target}
	default:
		return "xdg-open", []string{target}
	}
}

func validateURL(target string) error {
	parsed, err := url.Parse(target)
	if err != nil {
		return fmt.Errorf("invalid url '%s': %w", target, err)
	}
	if (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return fmt.Errorf("refusing to open non-web url '%s'", target)
	}
	return nil
}
