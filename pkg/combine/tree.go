package combine

import (
	"path/filepath"
	"sort"
	"strings"
)

type treeNode struct {
	name     string
	children map[string]*treeNode
}

func (n *treeNode) child(name string) *treeNode {
	if n.children == nil {
		n.children = make(map[string]*treeNode)
	}
	c, ok := n.children[name]
	if !ok {
		c = &treeNode{name: name}
		n.children[name] = c
	}
	return c
}

// GenerateTree renders the included files, given relative to the walk root,
// as a box-drawing tree headed by label.
func GenerateTree(label string, files []string) string {
	root := &treeNode{}
	for _, f := range files {
		node := root
		for _, part := range strings.Split(filepath.ToSlash(f), "/") {
			if part == "" || part == "." {
				continue
			}
			node = node.child(part)
		}
	}

	var b strings.Builder
	b.WriteString(strings.TrimSuffix(filepath.ToSlash(label), "/") + "/\n")
	writeTreeRecursively(&b, root, "")
	return b.String()
}

// writeTreeRecursively lists directories first, then files, alphabetically.
func writeTreeRecursively(b *strings.Builder, node *treeNode, prefix string) {
	entries := make([]*treeNode, 0, len(node.children))
	for _, c := range node.children {
		entries = append(entries, c)
	}
	sort.Slice(entries, func(i, j int) bool {
		iDir, jDir := entries[i].children != nil, entries[j].children != nil
		if iDir != jDir {
			return iDir
		}
		li, lj := strings.ToLower(entries[i].name), strings.ToLower(entries[j].name)
		if li != lj {
			return li < lj
		}
		return entries[i].name < entries[j].name
	})

	for i, entry := range entries {
		connector := "├── "
		extension := "│   "
		if i == len(entries)-1 {
			connector = "└── "
			extension = "    "
		}

		b.WriteString(prefix + connector + entry.name)
		if entry.children != nil {
			b.WriteString("/\n")
			writeTreeRecursively(b, entry, prefix+extension)
			continue
		}
		b.WriteString("\n")
	}
}
