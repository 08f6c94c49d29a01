package envfile

import "path/filepath"

// Variable is one assignment line, active or commented out.
// LineNumber is the 0-based index into the file's lines at parse time.
type Variable struct {
	Key          string `json:"key" yaml:"key"`
	Value        string `json:"value" yaml:"value"`
	IsActive     bool   `json:"isActive" yaml:"isActive"`
	LineNumber   int    `json:"lineNumber" yaml:"lineNumber"`
	OriginalLine string `json:"originalLine" yaml:"originalLine"`
}

// File is a parsed .env file. A refresh produces new File values rather than
// mutating existing ones.
type File struct {
	Path        string     `json:"path" yaml:"path"`
	DisplayName string     `json:"displayName" yaml:"displayName"`
	Variables   []Variable `json:"variables" yaml:"variables"`
}

// Name returns the base filename.
func (f File) Name() string {
	return filepath.Base(f.Path)
}

// Lookup returns the variables whose key equals key, in line order.
func (f File) Lookup(key string) []Variable {
	var out []Variable
	for _, v := range f.Variables {
		if v.Key == key {
			out = append(out, v)
		}
	}
	return out
}

// AtLine returns the variable parsed from the given 0-based line.
func (f File) AtLine(line int) (Variable, bool) {
	for _, v := range f.Variables {
		if v.LineNumber == line {
			return v, true
		}
	}
	return Variable{}, false
}
