package tui

import (
	"EnvFlip/internal/tree"
)

// row is one visible line of the tree.
type row struct {
	node      tree.Node
	collapsed bool
	empty     bool // file with no visible variables
}

// buildRows flattens the provider's tree. Collapsed files contribute only
// their own row.
func buildRows(p *tree.Provider, collapsed map[string]bool) []row {
	var rows []row
	for _, root := range p.Roots() {
		children := p.Children(root)
		closed := collapsed[root.File.Path]
		rows = append(rows, row{node: root, collapsed: closed, empty: len(children) == 0})
		if closed {
			continue
		}
		for _, child := range children {
			rows = append(rows, row{node: child})
		}
	}
	return rows
}

// rowIndex finds the row showing the same node as target, matching files by
// path and variables by path and line.
func rowIndex(rows []row, target tree.Node) int {
	for i, r := range rows {
		if r.node.Kind != target.Kind || r.node.File.Path != target.File.Path {
			continue
		}
		if r.node.Kind == tree.FileKind || r.node.Variable.LineNumber == target.Variable.LineNumber {
			return i
		}
	}
	return -1
}
