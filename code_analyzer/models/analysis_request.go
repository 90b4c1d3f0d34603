package models

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/meysamhadeli/susi/errs"
	"github.com/meysamhadeli/susi/file_tree"
	provider_models "github.com/meysamhadeli/susi/providers/models"
)

// SourceKind is how the frontend project is submitted.
type SourceKind string

const (
	SourceFile   SourceKind = "file"
	SourceGithub SourceKind = "github"
)

const (
	// MaxUploadSize is the largest archive accepted for upload (50 MiB).
	MaxUploadSize int64 = 50 * 1024 * 1024

	DefaultFramework = "react"
	DefaultRootName  = "project"
)

// SupportedFrameworks lists the framework hints the service understands.
var SupportedFrameworks = []string{"react", "vue", "angular", "svelte", "vanilla"}

var githubRepoPattern = regexp.MustCompile(`^https://github\.com/[\w-]+/[\w-]+/?$`)

// AnalysisRequest is one submission of a frontend project.
type AnalysisRequest struct {
	Source    SourceKind
	URL       string
	FilePath  string
	Framework string

	// Refresh skips the analysis cache.
	Refresh bool
}

// AnalysisResult is a successful analysis with its structure tree, fully expanded.
type AnalysisResult struct {
	Project   *provider_models.ProjectData
	RootName  string
	Tree      *file_tree.Folder
	Expanded  file_tree.ExpandState
	FromCache bool
}

// IsValidGithubURL reports whether url has the shape https://github.com/<owner>/<repo>.
func IsValidGithubURL(url string) bool {
	return githubRepoPattern.MatchString(url)
}

// IsSupportedFramework reports whether name is a known framework hint.
func IsSupportedFramework(name string) bool {
	for _, framework := range SupportedFrameworks {
		if framework == name {
			return true
		}
	}
	return false
}

// NormalizeFramework lowercases name and falls back to the default framework.
func NormalizeFramework(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return DefaultFramework
	}
	return name
}

// Validate checks the request locally. It never contacts the remote service.
func (r AnalysisRequest) Validate() error {
	if !IsSupportedFramework(NormalizeFramework(r.Framework)) {
		return errs.NewValidationError("framework", fmt.Sprintf("unsupported framework '%s' (use one of: %s)", r.Framework, strings.Join(SupportedFrameworks, ", ")))
	}

	switch r.Source {
	case SourceGithub:
		url := strings.TrimSpace(r.URL)
		if url == "" {
			return errs.NewValidationError("url", "Please enter a GitHub URL")
		}
		if !IsValidGithubURL(url) {
			return errs.NewValidationError("url", "Please enter a valid GitHub repository URL")
		}
		return nil

	case SourceFile:
		if strings.TrimSpace(r.FilePath) == "" {
			return errs.NewValidationError("file", "No ZIP file found")
		}
		if !strings.HasSuffix(strings.ToLower(r.FilePath), ".zip") {
			return errs.NewValidationError("file", "Please upload a .zip file")
		}
		fileInfo, err := os.Stat(r.FilePath)
		if err != nil {
			return errs.NewValidationError("file", fmt.Sprintf("cannot read '%s'", r.FilePath))
		}
		if fileInfo.IsDir() {
			return errs.NewValidationError("file", "Please upload a .zip file")
		}
		if fileInfo.Size() > MaxUploadSize {
			return errs.NewValidationError("file", "File size must be less than 50MB")
		}
		return nil

	default:
		return errs.NewValidationError("source", fmt.Sprintf("unknown source '%s'", r.Source))
	}
}

// RootName names the structure tree after the repository or the uploaded archive.
func (r AnalysisRequest) RootName() string {
	var name string
	switch r.Source {
	case SourceGithub:
		url := strings.TrimRight(strings.TrimSpace(r.URL), "/")
		name = url[strings.LastIndex(url, "/")+1:]
	case SourceFile:
		name = strings.TrimSuffix(filepath.Base(r.FilePath), filepath.Ext(r.FilePath))
	}

	if name == "" || name == "." {
		return DefaultRootName
	}
	return name
}
