package envfile

import (
	"path/filepath"
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortFiles orders discovered paths for display: a file named exactly ".env"
// comes first, the rest follow by filename in collation order. Equal names
// (the same file in different directories) are ordered by full path.
func SortFiles(paths []string) []string {
	out := slices.Clone(paths)
	col := collate.New(language.Und)

	slices.SortStableFunc(out, func(a, b string) int {
		aName, bName := filepath.Base(a), filepath.Base(b)
		aEnv, bEnv := aName == ".env", bName == ".env"
		switch {
		case aEnv && !bEnv:
			return -1
		case bEnv && !aEnv:
			return 1
		}
		if c := col.CompareString(aName, bName); c != 0 {
			return c
		}
		return col.CompareString(a, b)
	})
	return out
}
