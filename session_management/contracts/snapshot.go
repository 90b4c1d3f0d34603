package contracts

import (
	generator_models "github.com/meysamhadeli/susi/backend_generator/models"
	analyzer_models "github.com/meysamhadeli/susi/code_analyzer/models"
	"github.com/meysamhadeli/susi/file_tree"
	provider_models "github.com/meysamhadeli/susi/providers/models"
)

// Snapshot is a read-only copy of the session state handed to views.
// Maps and slices are never shared with the store.
type Snapshot struct {
	Framework       string
	LastRequest     *analyzer_models.AnalysisRequest
	Project         *provider_models.ProjectData
	ProjectRoot     string
	ProjectTree     *file_tree.Folder
	ProjectExpanded file_tree.ExpandState
	FromCache       bool

	Backend         *generator_models.GenerationResult
	BackendExpanded file_tree.ExpandState
	Progress        generator_models.ProgressState

	Analyzing  bool
	Generating bool
}

// HasAnalysis reports whether a project was analyzed successfully.
func (s Snapshot) HasAnalysis() bool {
	return s.Project != nil
}

// HasBackend reports whether a backend was generated for the current analysis.
func (s Snapshot) HasBackend() bool {
	return s.Backend != nil
}

// DownloadURL is the archive reference of the current generation, if any.
func (s Snapshot) DownloadURL() string {
	if s.Backend == nil {
		return ""
	}
	return s.Backend.DownloadURL
}
