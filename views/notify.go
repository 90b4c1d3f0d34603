package views

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/meysamhadeli/susi/errs"
	"github.com/pterm/pterm"
)

// ErrorMessage maps err to the short text shown to the user. Validation errors keep
// their own message; remote failures collapse to one message per stage.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}

	var validationErr *errs.ValidationError
	switch {
	case errors.Is(err, errs.ErrBusy):
		return "A request is already in progress."
	case errors.Is(err, errs.ErrNoArchive):
		return "No download link available."
	case errors.As(err, &validationErr) && !errors.Is(err, errs.ErrNoAnalysis):
		return validationErr.Message
	case errors.Is(err, errs.ErrNoAnalysis):
		return "Analyze a project first."
	case errors.Is(err, context.Canceled):
		return "Request canceled."
	case errors.Is(err, errs.ErrAnalysisFailed):
		return "Failed to analyze project."
	case errors.Is(err, errs.ErrGenerationFailed):
		return "Backend generation failed. Please try again."
	case errors.Is(err, errs.ErrDownloadFailed):
		return "Failed to download backend ZIP"
	default:
		return err.Error()
	}
}

func NotifyError(w io.Writer, err error) {
	fmt.Fprintln(w, pterm.Error.Sprint(ErrorMessage(err)))
}

func NotifySuccess(w io.Writer, message string) {
	fmt.Fprintln(w, pterm.Success.Sprint(message))
}

func NotifyInfo(w io.Writer, message string) {
	fmt.Fprintln(w, pterm.Info.Sprint(message))
}

func NotifyWarning(w io.Writer, message string) {
	fmt.Fprintln(w, pterm.Warning.Sprint(message))
}
