package strutil

import (
	"EnvFlip/internal/testutils"
	"fmt"
	"testing"

	"charm.land/lipgloss/v2"
)

func TestLimit(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"DB_HOST=localhost", 7, "DB_HOST"},
		{"DB_HOST", 20, "DB_HOST"},
		{"DB_HOST", 0, "DB_HOST"},
		{"", 5, ""},
	}

	var cases []testutils.TestCase
	for _, tt := range tests {
		cases = append(cases, testutils.TestCase{
			Input:    fmt.Sprintf("%s/%d", tt.in, tt.width),
			Expected: tt.want,
			Actual:   Limit(tt.in, tt.width),
		})
	}
	testutils.PrintTestTable(t, cases)
}

func TestLimitStyled(t *testing.T) {
	styled := lipgloss.NewStyle().Bold(true).Render("API_KEY=secret")
	if got := lipgloss.Width(Limit(styled, 4)); got != 4 {
		t.Errorf("width = %d, want 4", got)
	}
}

func TestRepeat(t *testing.T) {
	cases := []testutils.TestCase{
		{Input: "3", Expected: "   ", Actual: Repeat(" ", 3)},
		{Input: "0", Expected: "", Actual: Repeat(" ", 0)},
		{Input: "-1", Expected: "", Actual: Repeat(" ", -1)},
	}
	testutils.PrintTestTable(t, cases)
}
