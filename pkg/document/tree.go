package document

import (
	"fmt"
	"sort"
	"strings"
)

// treeNode is one directory or file in the summary tree built from the
// discovered relative paths.
type treeNode struct {
	name     string
	children map[string]*treeNode
	isDir    bool
}

func newTreeNode(name string, isDir bool) *treeNode {
	return &treeNode{name: name, children: map[string]*treeNode{}, isDir: isDir}
}

// RenderTree renders the discovered relative paths as a connector-style
// directory tree, grouping files under their directories.
func RenderTree(relPaths []string) string {
	root := newTreeNode(".", true)
	for _, rel := range relPaths {
		insertPath(root, rel)
	}

	var b strings.Builder
	b.WriteString(".\n")
	renderChildren(&b, root, "")
	return b.String()
}

func insertPath(root *treeNode, rel string) {
	parts := strings.Split(rel, "/")
	node := root
	for i, part := range parts {
		isDir := i < len(parts)-1
		child, ok := node.children[part]
		if !ok {
			child = newTreeNode(part, isDir)
			node.children[part] = child
		}
		node = child
	}
}

func renderChildren(b *strings.Builder, node *treeNode, prefix string) {
	names := make([]string, 0, len(node.children))
	for name := range node.children {
		names = append(names, name)
	}
	// Directories first, then files, alphabetically.
	sort.Slice(names, func(i, j int) bool {
		a, c := node.children[names[i]], node.children[names[j]]
		if a.isDir != c.isDir {
			return a.isDir
		}
		return strings.ToLower(a.name) < strings.ToLower(c.name)
	})

	for i, name := range names {
		child := node.children[name]
		connector := "├── "
		extension := "│   "
		if i == len(names)-1 {
			connector = "└── "
			extension = "    "
		}

		if child.isDir {
			fmt.Fprintf(b, "%s%s%s/\n", prefix, connector, child.name)
			renderChildren(b, child, prefix+extension)
		} else {
			fmt.Fprintf(b, "%s%s%s\n", prefix, connector, child.name)
		}
	}
}
