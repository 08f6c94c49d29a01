package cmd

import (
	"EnvFlip/internal/console"
	"EnvFlip/internal/constants"
	"EnvFlip/internal/version"
	"fmt"
	"strings"
)

// PrintHelp prints usage information.
// If target is empty, prints global usage.
// If target is specified, prints usage for that specific flag/command.
func PrintHelp(target string) {
	fmt.Fprint(stdout, console.Parse(GetUsage(target)))
}

// GetUsage returns usage information as a string.
func GetUsage(target string) string {
	var sb strings.Builder
	printStr := func(s string) {
		sb.WriteString(s + "\n")
	}

	appName := version.ApplicationName
	appCmd := version.CommandName

	if target == "" {
		printStr(fmt.Sprintf("Usage: {{_UsageCommand_}}%s{{|-|}} [{{_UsageCommand_}}<Flags>{{|-|}}] [{{_UsageCommand_}}<Command>{{|-|}}] ...", appCmd))
		printStr("")
		printStr(fmt.Sprintf("{{_ApplicationName_}}%s{{|-|}} [{{_Version_}}%s{{|-|}}]", appName, version.Version))
		printStr(fmt.Sprintf("{{_ApplicationName_}}%s{{|-|}} lists the variables in your '{{_UsageFile_}}%s{{|-|}}' files and switches them", appName, constants.EnvFilePrefix+"*"))
		printStr("on and off by commenting and uncommenting their lines.")
		printStr("Run without a command to open the interactive tree view.")
		printStr("")
		printStr("You may include multiple commands on the command-line, and they will be executed in")
		printStr("the order given, only stopping on an error. Any flags included only apply to the")
		printStr("following command, and get reset before the next command.")
		printStr("")
		printStr("Flags:")
		printStr("")
	}

	showAll := target == ""
	match := func(opts ...string) bool {
		if showAll {
			return true
		}
		for _, o := range opts {
			if o == target {
				return true
			}
		}
		return false
	}

	// Flags
	if match("-v", "--verbose") {
		printStr("{{_UsageCommand_}}-v --verbose{{|-|}}")
		printStr("	Verbose")
	}
	if match("-x", "--debug") {
		printStr("{{_UsageCommand_}}-x --debug{{|-|}}")
		printStr("	Debug")
	}
	if match("-C", "--dir") {
		printStr("{{_UsageCommand_}}-C --dir{{|-|}} {{_UsageOption_}}<folder>{{|-|}}")
		printStr("	Use {{_UsageOption_}}<folder>{{|-|}} as the workspace instead of the current git worktree or folder")
	}
	if match("--filter") {
		printStr("{{_UsageCommand_}}--filter{{|-|}} {{_UsageOption_}}<text>{{|-|}}")
		printStr("	Only show variables whose key or value contains {{_UsageOption_}}<text>{{|-|}}, ignoring case")
	}
	if match("--format") {
		printStr("{{_UsageCommand_}}--format{{|-|}} < {{_UsageOption_}}tree{{|-|}} | {{_UsageOption_}}json{{|-|}} | {{_UsageOption_}}yaml{{|-|}} >")
		printStr("	Output format of '{{_UsageCommand_}}--list{{|-|}}'. The default is '{{_UsageOption_}}tree{{|-|}}'")
	}

	if showAll {
		printStr("")
		printStr("CLI Commands:")
		printStr("")
	}

	if match("-l", "--list") {
		printStr("{{_UsageCommand_}}-l --list{{|-|}}")
		printStr("	List every env file and its variables")
	}
	if match("-t", "--toggle") {
		printStr("{{_UsageCommand_}}-t --toggle{{|-|}} {{_UsageFile_}}<file>{{|-|}}:{{_UsageVar_}}<line>{{|-|}} [...]")
		printStr("{{_UsageCommand_}}-t --toggle{{|-|}} {{_UsageFile_}}<file>{{|-|}}:{{_UsageVar_}}<key>{{|-|}} [...]")
		printStr("	Activate an inactive variable or deactivate an active one. {{_UsageVar_}}<line>{{|-|}} counts from 1.")
		printStr("	{{_UsageFile_}}<file>{{|-|}} is a path relative to the workspace, or a file name when it is unique.")
	}
	if match("-w", "--watch") {
		printStr("{{_UsageCommand_}}-w --watch{{|-|}}")
		printStr("	Print the tree again every time an env file changes, until interrupted")
	}
	if match("--config-show") {
		printStr("{{_UsageCommand_}}--config-show{{|-|}}")
		printStr("	Show the current configuration")
	}
	if match("-V", "--version") {
		printStr("{{_UsageCommand_}}-V --version{{|-|}}")
		printStr("	Show version information")
	}
	if match("-h", "--help") {
		printStr("{{_UsageCommand_}}-h --help{{|-|}}")
		printStr("	Show this usage information")
		printStr("{{_UsageCommand_}}-h --help{{|-|}} {{_UsageOption_}}<option>{{|-|}}")
		printStr("	Show the usage of the specified option")
	}

	return sb.String()
}
