package testutils

import (
	"EnvFlip/internal/console"
	"strings"
	"testing"
	"text/tabwriter"
)

// TestCase is one row of a comparison table.
type TestCase struct {
	Input    string
	Expected string
	Actual   string
}

// Pass reports whether the case produced the expected value.
func (tc TestCase) Pass() bool {
	return tc.Expected == tc.Actual
}

// PrintTestTable logs every case as an aligned table, marking failed rows,
// and fails the test if any row failed.
func PrintTestTable(t *testing.T, cases []TestCase) {
	t.Helper()

	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 0, 3, ' ', 0)
	w.Write([]byte("  Input\tExpected\tActual\t\n"))

	failed := 0
	for _, tc := range cases {
		marker := " "
		color := console.CodeGreen
		if !tc.Pass() {
			failed++
			marker = console.CodeRed + ">" + console.CodeReset
			color = console.CodeRed
		}
		w.Write([]byte(marker + " " + quote(tc.Input) + "\t" + quote(tc.Expected) + "\t" +
			color + quote(tc.Actual) + console.CodeReset + "\t\n"))
	}
	w.Flush()
	t.Log("\n" + b.String())

	if failed > 0 {
		t.Errorf("%d of %d cases failed", failed, len(cases))
	}
}

func quote(s string) string {
	return "'" + s + "'"
}
