package envfile

import (
	"slices"
	"testing"
)

func TestSortFiles(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{
			name:  "dot env first then alphabetical",
			input: []string{"/w/.env.production", "/w/.env.local", "/w/.env"},
			want:  []string{"/w/.env", "/w/.env.local", "/w/.env.production"},
		},
		{
			name:  "nested exact matches ordered by path",
			input: []string{"/w/b/.env", "/w/.env.test", "/w/a/.env"},
			want:  []string{"/w/a/.env", "/w/b/.env", "/w/.env.test"},
		},
		{
			name:  "envrc sorts with the rest",
			input: []string{"/w/.envrc", "/w/.env.dev", "/w/.env"},
			want:  []string{"/w/.env", "/w/.env.dev", "/w/.envrc"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := slices.Clone(tt.input)
			got := SortFiles(tt.input)
			if !slices.Equal(got, tt.want) {
				t.Errorf("SortFiles() = %v; want %v", got, tt.want)
			}
			if !slices.Equal(tt.input, input) {
				t.Errorf("SortFiles modified its input")
			}
		})
	}
}
