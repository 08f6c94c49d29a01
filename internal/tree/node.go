package tree

import (
	"EnvFlip/internal/envfile"
	"strings"
)

// Kind distinguishes the two levels of the tree.
type Kind int

const (
	FileKind Kind = iota
	VariableKind
)

// Node is one row of the tree as a renderer sees it.
type Node struct {
	Kind        Kind
	Label       string
	Description string
	Tooltip     string
	Active      bool

	File     envfile.File
	Variable envfile.Variable
}

func fileNode(f envfile.File) Node {
	return Node{
		Kind:    FileKind,
		Label:   f.DisplayName,
		Tooltip: f.Path,
		File:    f,
	}
}

func variableNode(f envfile.File, v envfile.Variable) Node {
	return Node{
		Kind:        VariableKind,
		Label:       v.Key,
		Description: v.Value,
		Tooltip:     v.Key + "=" + v.Value,
		Active:      v.IsActive,
		File:        f,
		Variable:    v,
	}
}

// matches reports whether v passes a case-insensitive substring filter on
// its key or value. An empty filter matches everything.
func matches(v envfile.Variable, filter string) bool {
	if filter == "" {
		return true
	}
	needle := strings.ToLower(filter)
	return strings.Contains(strings.ToLower(v.Key), needle) ||
		strings.Contains(strings.ToLower(v.Value), needle)
}
