package cmd

import (
	"EnvFlip/internal/testutils"
	"errors"
	"strings"
	"testing"
)

func formatGroups(groups []CommandGroup) string {
	parts := make([]string, len(groups))
	for i, g := range groups {
		parts[i] = strings.Join(g.FullSlice(), " ")
	}
	return strings.Join(parts, " | ")
}

func TestParse(t *testing.T) {
	tests := []struct {
		args string
		want string
	}{
		{"", ""},
		{"-l", "-l"},
		{"-vl", "--verbose -l"},
		{"-x --list", "--debug --list"},
		{"-C /tmp/project -l", "--dir=/tmp/project -l"},
		{"--dir=/tmp/project -w", "--dir=/tmp/project -w"},
		{"--format json -l --filter=db -w", "--format=json -l | --filter=db -w"},
		{"--filter -x -l", "--filter=-x -l"},
		{"-t .env:3 .env:KEY -l", "-t .env:3 .env:KEY | -l"},
		{"--toggle=.env:API_KEY", "--toggle .env:API_KEY"},
		{"-h", "-h"},
		{"-h --toggle", "-h --toggle"},
		{"-V --config-show", "-V | --config-show"},
		{"-v", "--verbose"},
		{"-C sub", "--dir=sub"},
	}

	var cases []testutils.TestCase
	for _, tt := range tests {
		var args []string
		if tt.args != "" {
			args = strings.Fields(tt.args)
		}
		groups, err := Parse(args)
		got := formatGroups(groups)
		if err != nil {
			got = "error: " + err.Error()
		}
		cases = append(cases, testutils.TestCase{Input: tt.args, Expected: tt.want, Actual: got})
	}
	testutils.PrintTestTable(t, cases)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		args    string
		index   int
		command string
	}{
		{"list", 0, ""},
		{"--bogus", 0, ""},
		{"-l -q", 1, ""},
		{"-t", 0, "-t"},
		{"-t .env:1 -l -t", 3, "-t"},
		{"-t .env:1 nocolon", 2, "-t"},
		{"-t .env:", 1, "-t"},
		{"--format xml -l", 1, "--format"},
		{"--dir", 0, "--dir"},
		{"--dir -l", 0, "--dir"},
		{"--verbose=1 -l", 0, "--verbose"},
		{"--list=1", 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.args, func(t *testing.T) {
			_, err := Parse(strings.Fields(tt.args))
			if err == nil {
				t.Fatalf("Parse(%q) succeeded, want error", tt.args)
			}
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("Parse(%q) error %T, want *ParseError", tt.args, err)
			}
			if perr.Index != tt.index {
				t.Errorf("Index = %d, want %d", perr.Index, tt.index)
			}
			if perr.FailingCommand != tt.command {
				t.Errorf("FailingCommand = %q, want %q", perr.FailingCommand, tt.command)
			}
		})
	}
}

func TestParseErrorMessage(t *testing.T) {
	_, err := Parse([]string{"-l", "--bogus"})
	if err == nil {
		t.Fatal("expected error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "Invalid option '{{_UserCommand_}}--bogus{{|-|}}'") {
		t.Errorf("message does not name the option:\n%s", msg)
	}
	if !strings.Contains(msg, "{{_UserCommandError_}}--bogus{{|-|}}") {
		t.Errorf("message does not highlight the option:\n%s", msg)
	}
	if !strings.Contains(msg, "--help") {
		t.Errorf("message does not point at --help:\n%s", msg)
	}
}

func TestValidTarget(t *testing.T) {
	var cases []testutils.TestCase
	for target, want := range map[string]bool{
		".env:1":           true,
		".env:KEY":         true,
		"sub/.env.dev:3":   true,
		`C:\proj\.env:KEY`: true,
		".env":             false,
		":KEY":             false,
		".env:":            false,
	} {
		got := validTarget(target)
		cases = append(cases, testutils.TestCase{Input: target, Expected: boolStr(want), Actual: boolStr(got)})
	}
	testutils.PrintTestTable(t, cases)
}

func boolStr(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

func TestGetUsage(t *testing.T) {
	all := GetUsage("")
	for _, want := range []string{"--list", "--toggle", "--watch", "--filter", "--format", "--dir", "--config-show"} {
		if !strings.Contains(all, want) {
			t.Errorf("global usage is missing %s", want)
		}
	}

	one := GetUsage("--toggle")
	if !strings.Contains(one, "--toggle") {
		t.Errorf("usage for --toggle does not mention it:\n%s", one)
	}
	if strings.Contains(one, "--watch") {
		t.Errorf("usage for --toggle includes other commands:\n%s", one)
	}
}
