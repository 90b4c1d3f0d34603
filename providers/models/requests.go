package models

// SummarizeRequest selects one of the two /summarize body shapes.
// When ZipPath is set the archive is sent as the multipart field "zip",
// otherwise RepoURL is sent as JSON.
type SummarizeRequest struct {
	RepoURL string `json:"repoUrl,omitempty"`
	ZipPath string `json:"-"`
}

type GenerateRequest struct {
	AISummary string `json:"aiSummary"`
}

// GenerateResponse is the body of POST /generate. BackendCode announces every
// generated file on a line of the form "### backend/<path>".
type GenerateResponse struct {
	BackendCode string `json:"backendCode"`
	DownloadURL string `json:"downloadUrl,omitempty"`
}

// APIError is the error body the service may return with a non-success status.
type APIError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Text returns the most specific message carried by the body.
func (e APIError) Text() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Error
}
