package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectData_DecodesBothFileShapes(t *testing.T) {
	body := `{
		"repoUrl": "https://github.com/foo/bar",
		"framework": "react",
		"files": [{"filename": "src/App.tsx", "code": "export default App"}, "src/main.tsx"],
		"detectedApis": ["GET /api/users", "POST /api/login", "GET /api/users"],
		"aiSummary": "A todo app",
		"structure": ["src/App.tsx", "src/main.tsx"]
	}`

	var data ProjectData
	require.NoError(t, json.Unmarshal([]byte(body), &data))
	data.Normalize()

	assert.Equal(t, []SourceFile{
		{Filename: "src/App.tsx", Code: "export default App"},
		{Filename: "src/main.tsx"},
	}, data.Files)
	assert.Equal(t, []string{"GET /api/users", "POST /api/login"}, data.DetectedAPIs)
	assert.Equal(t, "A todo app", data.AISummary)
}

func TestProjectData_RejectsMalformedFile(t *testing.T) {
	var data ProjectData
	err := json.Unmarshal([]byte(`{"files": [42]}`), &data)

	assert.Error(t, err)
}

func TestProjectData_NormalizeFillsEmptySlices(t *testing.T) {
	data := ProjectData{AISummary: "summary"}
	data.Normalize()

	assert.NotNil(t, data.Files)
	assert.NotNil(t, data.Structure)
	assert.NotNil(t, data.DetectedAPIs)
}

func TestProjectData_CloneIsDeep(t *testing.T) {
	original := &ProjectData{Structure: []string{"a.js"}, DetectedAPIs: []string{"GET /"}}
	clone := original.Clone()

	clone.Structure[0] = "changed.js"
	clone.DetectedAPIs = append(clone.DetectedAPIs, "POST /")

	assert.Equal(t, []string{"a.js"}, original.Structure)
	assert.Equal(t, []string{"GET /"}, original.DetectedAPIs)

	var nilData *ProjectData
	assert.Nil(t, nilData.Clone())
}

func TestProjectData_CloneKeepsEmptySlices(t *testing.T) {
	data := &ProjectData{AISummary: "summary"}
	data.Normalize()

	clone := data.Clone()

	assert.NotNil(t, clone.Files)
	assert.NotNil(t, clone.DetectedAPIs)
	assert.NotNil(t, clone.Structure)
	assert.Equal(t, data, clone)

	encoded, err := json.Marshal(clone)
	require.NoError(t, err)
	assert.Contains(t, string(encoded), `"files":[]`)
	assert.Contains(t, string(encoded), `"structure":[]`)
}
