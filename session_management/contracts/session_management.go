package contracts

import (
	generator_models "github.com/meysamhadeli/susi/backend_generator/models"
	analyzer_models "github.com/meysamhadeli/susi/code_analyzer/models"
)

type ISessionManagement interface {
	Snapshot() Snapshot
	SetFramework(framework string)
	BeginAnalysis(request analyzer_models.AnalysisRequest) error
	EndAnalysis(result *analyzer_models.AnalysisResult, err error)
	BeginGeneration() (string, error)
	EndGeneration(result *generator_models.GenerationResult, err error)
	SetProgress(state generator_models.ProgressState)
	ToggleProjectFolder(path string) (bool, error)
	ToggleBackendFolder(path string) (bool, error)
	ExpandAllProject()
	ExpandAllBackend()
	Reset()
}
