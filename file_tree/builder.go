package file_tree

import "strings"

// Node is either a *Folder or a *File.
type Node interface {
	NodeName() string
	isNode()
}

// Folder holds its children in first-seen order.
type Folder struct {
	Name     string
	Children []Node
}

// File is a leaf and never has children.
type File struct {
	Name string
}

func (f *Folder) NodeName() string { return f.Name }
func (f *File) NodeName() string   { return f.Name }

func (*Folder) isNode() {}
func (*File) isNode()   {}

// Build converts slash-delimited paths into a tree rooted at a folder named rootName.
// A leading "rootName/" is stripped from every path. Every segment but the last is a
// folder and the last one is a file. Siblings are matched by name and kind, so
// duplicate paths reuse the nodes created the first time.
func Build(rootName string, paths []string) *Folder {
	root := &Folder{Name: rootName, Children: []Node{}}
	prefix := rootName + "/"

	for _, fullPath := range paths {
		if rootName != "" {
			fullPath = strings.TrimPrefix(fullPath, prefix)
		}

		parts := splitSegments(fullPath)
		current := root
		for i, part := range parts {
			if i < len(parts)-1 {
				current = current.childFolder(part)
				continue
			}
			current.childFile(part)
		}
	}

	return root
}

func splitSegments(path string) []string {
	raw := strings.Split(path, "/")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		if part == "" {
			continue
		}
		parts = append(parts, part)
	}
	return parts
}

func (f *Folder) childFolder(name string) *Folder {
	for _, child := range f.Children {
		if folder, ok := child.(*Folder); ok && folder.Name == name {
			return folder
		}
	}
	folder := &Folder{Name: name, Children: []Node{}}
	f.Children = append(f.Children, folder)
	return folder
}

func (f *Folder) childFile(name string) *File {
	for _, child := range f.Children {
		if file, ok := child.(*File); ok && file.Name == name {
			return file
		}
	}
	file := &File{Name: name}
	f.Children = append(f.Children, file)
	return file
}

// JoinPath appends name to a parent path using "/" as separator.
func JoinPath(parent string, name string) string {
	if parent == "" {
		return name
	}
	return parent + "/" + name
}

// Visit is a node reached during Walk together with its full path and depth (root = 0).
type Visit struct {
	Path  string
	Node  Node
	Depth int
}

// Walk traverses the tree depth-first in pre-order, preserving child order.
// Folders already visited are skipped, so a malformed tree with a cycle still terminates.
// Returning false from fn stops descending into the visited folder.
func Walk(root *Folder, fn func(v Visit) bool) {
	if root == nil {
		return
	}

	visited := make(map[*Folder]struct{})
	stack := []Visit{{Path: root.Name, Node: root, Depth: 0}}

	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		folder, isFolder := current.Node.(*Folder)
		if isFolder {
			if _, seen := visited[folder]; seen {
				continue
			}
			visited[folder] = struct{}{}
		}

		if !fn(current) || !isFolder {
			continue
		}

		for i := len(folder.Children) - 1; i >= 0; i-- {
			child := folder.Children[i]
			stack = append(stack, Visit{
				Path:  JoinPath(current.Path, child.NodeName()),
				Node:  child,
				Depth: current.Depth + 1,
			})
		}
	}
}

// CountFiles returns the number of leaves below root.
func CountFiles(root *Folder) int {
	count := 0
	Walk(root, func(v Visit) bool {
		if _, ok := v.Node.(*File); ok {
			count++
		}
		return true
	})
	return count
}
