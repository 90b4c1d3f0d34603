package models

import "github.com/meysamhadeli/susi/file_tree"

// GenerationStep is one cosmetic checkpoint of the progress indicator.
type GenerationStep struct {
	Label    string
	Progress int
}

// ProgressState is what the progress indicator shows at a given moment.
type ProgressState struct {
	Percent int
	Label   string
}

// GenerationResult is a successful generation. Tree is rooted at "backend" and fully expanded.
type GenerationResult struct {
	Paths       []string
	Tree        *file_tree.Folder
	Expanded    file_tree.ExpandState
	DownloadURL string
}
