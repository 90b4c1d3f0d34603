package file_tree

// ExpandState maps a folder's full path to whether its children are shown.
// Unknown paths are collapsed.
type ExpandState map[string]bool

// ExpandAll opens every folder of root, the root included. Files never become keys.
func ExpandAll(root *Folder) ExpandState {
	state := make(ExpandState)
	Walk(root, func(v Visit) bool {
		if _, ok := v.Node.(*Folder); ok {
			state[v.Path] = true
		}
		return true
	})
	return state
}

// IsOpen reports whether the folder at path is expanded.
func (s ExpandState) IsOpen(path string) bool {
	return s[path]
}

// Toggle flips the folder at path and returns the new value. An absent path counts as closed.
func (s ExpandState) Toggle(path string) bool {
	s[path] = !s[path]
	return s[path]
}

// Clone returns an independent copy.
func (s ExpandState) Clone() ExpandState {
	clone := make(ExpandState, len(s))
	for path, open := range s {
		clone[path] = open
	}
	return clone
}
