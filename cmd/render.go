package cmd

import (
	"EnvFlip/internal/console"
	"EnvFlip/internal/tree"
	"encoding/json"
	"fmt"
	"path/filepath"

	lgtree "charm.land/lipgloss/v2/tree"
	"gopkg.in/yaml.v3"
)

// listVariable and listFile are the --format json/yaml shapes. Line numbers
// are 1-based so they can be fed back to --toggle.
type listVariable struct {
	Key    string `json:"key" yaml:"key"`
	Value  string `json:"value" yaml:"value"`
	Active bool   `json:"active" yaml:"active"`
	Line   int    `json:"line" yaml:"line"`
}

type listFile struct {
	Path        string         `json:"path" yaml:"path"`
	DisplayName string         `json:"displayName" yaml:"displayName"`
	Variables   []listVariable `json:"variables" yaml:"variables"`
}

func relPath(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}

func listing(p *tree.Provider, root string) []listFile {
	files := []listFile{}
	for _, n := range p.Roots() {
		f := listFile{
			Path:        relPath(root, n.Tooltip),
			DisplayName: n.Label,
			Variables:   []listVariable{},
		}
		for _, child := range p.Children(n) {
			f.Variables = append(f.Variables, listVariable{
				Key:    child.Label,
				Value:  child.Description,
				Active: child.Active,
				Line:   child.Variable.LineNumber + 1,
			})
		}
		files = append(files, f)
	}
	return files
}

// renderList formats the provider's current tree.
func renderList(p *tree.Provider, root, format string, ascii, showValues bool) (string, error) {
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(listing(p, root), "", "  ")
		if err != nil {
			return "", err
		}
		return string(data) + "\n", nil
	case FormatYAML:
		data, err := yaml.Marshal(listing(p, root))
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	return renderTree(p, root, ascii, showValues), nil
}

// renderTree draws files and variables with lipgloss' tree renderer.
func renderTree(p *tree.Provider, root string, ascii, showValues bool) string {
	active, inactive := "✓", "⊘"
	if ascii {
		active, inactive = "+", "/"
	}

	out := ""
	if msg := p.Message(); msg != "" {
		out += console.Parse(fmt.Sprintf("{{_Filter_}}%s{{|-|}}", msg)) + "\n"
	}

	roots := p.Roots()
	if len(roots) == 0 {
		return out + "No .env files found\n"
	}

	enumerator, indenter := lgtree.Enumerator(lgtree.RoundedEnumerator), lgtree.Indenter(lgtree.DefaultIndenter)
	if ascii {
		enumerator, indenter = asciiEnumerator, asciiIndenter
	}

	t := lgtree.New().Enumerator(enumerator).Indenter(indenter)
	for _, n := range roots {
		file := lgtree.Root(console.Parse(fmt.Sprintf("{{_File_}}%s{{|-|}} %s", n.Label, relPath(root, n.Tooltip)))).
			Enumerator(enumerator).
			Indenter(indenter)
		for _, child := range p.Children(n) {
			line := fmt.Sprintf("{{_Active_}}%s{{|-|}} {{_Var_}}%s{{|-|}}", active, child.Label)
			if !child.Active {
				line = fmt.Sprintf("{{_Inactive_}}%s %s{{|-|}}", inactive, child.Label)
			}
			if showValues {
				line += fmt.Sprintf("=%s", child.Description)
			}
			line += fmt.Sprintf(" {{_Inactive_}}:%d{{|-|}}", child.Variable.LineNumber+1)
			file.Child(console.Parse(line))
		}
		t.Child(file)
	}
	return out + t.String() + "\n"
}

func asciiEnumerator(children lgtree.Children, index int) string {
	if children.Length()-1 == index {
		return "`--"
	}
	return "|--"
}

func asciiIndenter(children lgtree.Children, index int) string {
	if children.Length()-1 == index {
		return "   "
	}
	return "|  "
}
