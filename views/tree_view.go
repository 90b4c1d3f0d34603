package views

import (
	"github.com/meysamhadeli/susi/file_tree"
	"github.com/pterm/pterm"
)

// MaxTreeDepth is the deepest level rendered. Deeper folders are shown as truncated.
const MaxTreeDepth = 64

const (
	openFolderMarker   = "📂 "
	closedFolderMarker = "📁 "
	fileMarker         = "📄 "
	closedSuffix       = " ▸"
	truncatedSuffix    = " …"
	cycleSuffix        = " ↺"
)

type pendingNode struct {
	folder *file_tree.Folder
	path   string
	depth  int
	target *pterm.TreeNode
}

// TreeNodes converts root into a pterm tree. Folders are expanded only when
// expanded marks their full path open; collapsed folders show no children.
func TreeNodes(root *file_tree.Folder, expanded file_tree.ExpandState) pterm.TreeNode {
	if root == nil {
		return pterm.TreeNode{}
	}

	var top pterm.TreeNode
	visited := map[*file_tree.Folder]struct{}{}
	stack := []pendingNode{{folder: root, path: root.Name, target: &top}}

	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		folder := current.folder
		if _, seen := visited[folder]; seen {
			current.target.Text = closedFolderMarker + folder.Name + cycleSuffix
			continue
		}
		visited[folder] = struct{}{}

		if !expanded.IsOpen(current.path) {
			current.target.Text = closedFolderMarker + folder.Name + closedSuffix
			continue
		}
		if current.depth >= MaxTreeDepth {
			current.target.Text = openFolderMarker + folder.Name + truncatedSuffix
			continue
		}

		current.target.Text = openFolderMarker + folder.Name
		current.target.Children = make([]pterm.TreeNode, len(folder.Children))

		// Children slice is never resized, so pointers into it stay valid.
		for i := len(folder.Children) - 1; i >= 0; i-- {
			switch child := folder.Children[i].(type) {
			case *file_tree.File:
				current.target.Children[i].Text = fileMarker + child.Name
			case *file_tree.Folder:
				stack = append(stack, pendingNode{
					folder: child,
					path:   file_tree.JoinPath(current.path, child.Name),
					depth:  current.depth + 1,
					target: &current.target.Children[i],
				})
			}
		}
	}

	return top
}

// RenderTree prints the tree of root the way TreeNodes lays it out.
func RenderTree(root *file_tree.Folder, expanded file_tree.ExpandState) (string, error) {
	return pterm.DefaultTree.WithRoot(TreeNodes(root, expanded)).Srender()
}
