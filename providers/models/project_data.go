package models

import (
	"encoding/json"
	"fmt"
)

// SourceFile is one entry of ProjectData.Files. The service sends either an object
// with filename and code or a bare path string.
type SourceFile struct {
	Filename string `json:"filename"`
	Code     string `json:"code,omitempty"`
}

func (f *SourceFile) UnmarshalJSON(data []byte) error {
	var path string
	if err := json.Unmarshal(data, &path); err == nil {
		*f = SourceFile{Filename: path}
		return nil
	}

	type sourceFile SourceFile
	var decoded sourceFile
	if err := json.Unmarshal(data, &decoded); err != nil {
		return fmt.Errorf("error decoding source file: %w", err)
	}
	*f = SourceFile(decoded)
	return nil
}

// ProjectData is the analysis payload returned by POST /summarize.
type ProjectData struct {
	RepoURL      string       `json:"repoUrl,omitempty"`
	Framework    string       `json:"framework,omitempty"`
	Files        []SourceFile `json:"files"`
	DetectedAPIs []string     `json:"detectedApis,omitempty"`
	AISummary    string       `json:"aiSummary"`
	Structure    []string     `json:"structure"`
}

// Normalize removes duplicate API endpoints, keeping first-seen order, and
// replaces nil slices with empty ones.
func (p *ProjectData) Normalize() {
	seen := make(map[string]struct{}, len(p.DetectedAPIs))
	apis := make([]string, 0, len(p.DetectedAPIs))
	for _, api := range p.DetectedAPIs {
		if _, ok := seen[api]; ok {
			continue
		}
		seen[api] = struct{}{}
		apis = append(apis, api)
	}
	p.DetectedAPIs = apis

	if p.Files == nil {
		p.Files = []SourceFile{}
	}
	if p.Structure == nil {
		p.Structure = []string{}
	}
}

// Clone returns a deep copy.
func (p *ProjectData) Clone() *ProjectData {
	if p == nil {
		return nil
	}
	clone := *p
	clone.Files = make([]SourceFile, len(p.Files))
	copy(clone.Files, p.Files)
	clone.DetectedAPIs = make([]string, len(p.DetectedAPIs))
	copy(clone.DetectedAPIs, p.DetectedAPIs)
	clone.Structure = make([]string, len(p.Structure))
	copy(clone.Structure, p.Structure)
	return &clone
}
