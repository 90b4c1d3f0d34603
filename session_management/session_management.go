package session_management

import (
	"fmt"
	"sync"

	generator_models "github.com/meysamhadeli/susi/backend_generator/models"
	analyzer_models "github.com/meysamhadeli/susi/code_analyzer/models"
	"github.com/meysamhadeli/susi/errs"
	"github.com/meysamhadeli/susi/file_tree"
	provider_models "github.com/meysamhadeli/susi/providers/models"
	"github.com/meysamhadeli/susi/session_management/contracts"
)

// sessionManager holds everything the interactive session knows about the current project.
type sessionManager struct {
	mu sync.RWMutex

	framework   string
	lastRequest *analyzer_models.AnalysisRequest

	project         *provider_models.ProjectData
	projectRoot     string
	projectTree     *file_tree.Folder
	projectExpanded file_tree.ExpandState
	fromCache       bool

	backend         *generator_models.GenerationResult
	backendExpanded file_tree.ExpandState
	progress        generator_models.ProgressState

	analyzing  bool
	generating bool
}

// NewSessionManager creates an empty session using framework as the initial hint.
func NewSessionManager(framework string) contracts.ISessionManagement {
	return &sessionManager{
		framework:       analyzer_models.NormalizeFramework(framework),
		projectExpanded: file_tree.ExpandState{},
		backendExpanded: file_tree.ExpandState{},
	}
}

func (sm *sessionManager) Snapshot() contracts.Snapshot {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	snapshot := contracts.Snapshot{
		Framework:       sm.framework,
		Project:         sm.project.Clone(),
		ProjectRoot:     sm.projectRoot,
		ProjectTree:     sm.projectTree,
		ProjectExpanded: sm.projectExpanded.Clone(),
		FromCache:       sm.fromCache,
		BackendExpanded: sm.backendExpanded.Clone(),
		Progress:        sm.progress,
		Analyzing:       sm.analyzing,
		Generating:      sm.generating,
	}

	if sm.lastRequest != nil {
		request := *sm.lastRequest
		snapshot.LastRequest = &request
	}

	if sm.backend != nil {
		backend := *sm.backend
		backend.Paths = append([]string(nil), sm.backend.Paths...)
		backend.Expanded = sm.backend.Expanded.Clone()
		snapshot.Backend = &backend
	}

	return snapshot
}

func (sm *sessionManager) SetFramework(framework string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.framework = analyzer_models.NormalizeFramework(framework)
}

// BeginAnalysis marks an analysis as running. Only one request may be in flight.
func (sm *sessionManager) BeginAnalysis(request analyzer_models.AnalysisRequest) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.analyzing || sm.generating {
		return errs.ErrBusy
	}
	sm.analyzing = true
	sm.lastRequest = &request
	return nil
}

// EndAnalysis clears the running flag. A successful result replaces the project
// and discards the previous generation; a failure leaves the prior state as it was.
func (sm *sessionManager) EndAnalysis(result *analyzer_models.AnalysisResult, err error) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.analyzing = false
	if err != nil || result == nil {
		return
	}

	sm.project = result.Project.Clone()
	sm.projectRoot = result.RootName
	sm.projectTree = result.Tree
	sm.projectExpanded = result.Expanded.Clone()
	sm.fromCache = result.FromCache
	if result.Project != nil && result.Project.Framework != "" {
		sm.framework = result.Project.Framework
	}

	sm.backend = nil
	sm.backendExpanded = file_tree.ExpandState{}
	sm.progress = generator_models.ProgressState{}
}

// BeginGeneration marks a generation as running and returns the summary to send.
func (sm *sessionManager) BeginGeneration() (string, error) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.analyzing || sm.generating {
		return "", errs.ErrBusy
	}
	if sm.project == nil {
		return "", fmt.Errorf("%w: analyze a project first", errs.ErrNoAnalysis)
	}

	sm.generating = true
	sm.progress = generator_models.ProgressState{}
	return sm.project.AISummary, nil
}

// EndGeneration clears the running flag. Only a successful result is kept.
func (sm *sessionManager) EndGeneration(result *generator_models.GenerationResult, err error) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.generating = false
	if err != nil || result == nil {
		sm.progress = generator_models.ProgressState{}
		return
	}

	backend := *result
	backend.Paths = append([]string(nil), result.Paths...)
	backend.Expanded = result.Expanded.Clone()
	sm.backend = &backend
	sm.backendExpanded = result.Expanded.Clone()
}

func (sm *sessionManager) SetProgress(state generator_models.ProgressState) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.progress = state
}

// ToggleProjectFolder flips one folder of the analyzed tree and returns its new state.
func (sm *sessionManager) ToggleProjectFolder(path string) (bool, error) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.projectTree == nil {
		return false, fmt.Errorf("%w: no project structure to toggle", errs.ErrNoAnalysis)
	}
	if !hasFolder(sm.projectTree, path) {
		return false, errs.NewValidationError("path", fmt.Sprintf("'%s' is not a folder of the project", path))
	}
	return sm.projectExpanded.Toggle(path), nil
}

// ToggleBackendFolder flips one folder of the generated tree and returns its new state.
func (sm *sessionManager) ToggleBackendFolder(path string) (bool, error) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.backend == nil {
		return false, errs.NewValidationError("backend", "Generate a backend first.")
	}
	if !hasFolder(sm.backend.Tree, path) {
		return false, errs.NewValidationError("path", fmt.Sprintf("'%s' is not a folder of the backend", path))
	}
	return sm.backendExpanded.Toggle(path), nil
}

func (sm *sessionManager) ExpandAllProject() {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if sm.projectTree != nil {
		sm.projectExpanded = file_tree.ExpandAll(sm.projectTree)
	}
}

func (sm *sessionManager) ExpandAllBackend() {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if sm.backend != nil {
		sm.backendExpanded = file_tree.ExpandAll(sm.backend.Tree)
	}
}

// Reset drops the project and generation but keeps the framework hint.
func (sm *sessionManager) Reset() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.lastRequest = nil
	sm.project = nil
	sm.projectRoot = ""
	sm.projectTree = nil
	sm.projectExpanded = file_tree.ExpandState{}
	sm.fromCache = false
	sm.backend = nil
	sm.backendExpanded = file_tree.ExpandState{}
	sm.progress = generator_models.ProgressState{}
	sm.analyzing = false
	sm.generating = false
}

func hasFolder(root *file_tree.Folder, path string) bool {
	found := false
	file_tree.Walk(root, func(visit file_tree.Visit) bool {
		if _, ok := visit.Node.(*file_tree.Folder); ok && visit.Path == path {
			found = true
		}
		return !found
	})
	return found
}
