package cmd

import (
	"EnvFlip/internal/version"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

// ParseError wraps argument parsing errors, pointing at the failing argument.
type ParseError struct {
	Args           []string // The full argument list passed to Parse
	Index          int      // The index where the error occurred
	Message        string   // The specific error message
	FailingCommand string   // The command being processed (e.g. "--toggle")
}

func (e *ParseError) Error() string {
	indent := "   "

	cmdLineParts := []string{fmt.Sprintf("{{_UserCommand_}}%s{{|-|}}", version.CommandName)}
	for i := 0; i <= e.Index && i < len(e.Args); i++ {
		str := e.Args[i]
		if i == e.Index {
			// Highlight failing option
			str = fmt.Sprintf("{{_UserCommandError_}}%s{{|-|}}", str)
		} else {
			str = fmt.Sprintf("{{_UserCommand_}}%s{{|-|}}", str)
		}
		cmdLineParts = append(cmdLineParts, str)
	}
	cmdLineStr := "'" + strings.Join(cmdLineParts, " ") + "'"

	// indent + "'" + command + " " + previous args
	caretOffset := len(indent) + 1 + len(version.CommandName) + 1
	for i := 0; i < e.Index && i < len(e.Args); i++ {
		caretOffset += len(e.Args[i]) + 1
	}
	pointerLine := strings.Repeat(" ", caretOffset) + "{{_UserCommandErrorMarker_}}^{{|-|}}"

	// Message may contain %c (command) or %o (option)
	failingOpt := ""
	if e.Index < len(e.Args) {
		failingOpt = e.Args[e.Index]
	}
	replacer := strings.NewReplacer(
		"%c", fmt.Sprintf("'{{_UserCommand_}}%s{{|-|}}'", e.FailingCommand),
		"%o", fmt.Sprintf("'{{_UserCommand_}}%s{{|-|}}'", failingOpt),
	)
	formattedMsg := replacer.Replace(e.Message)

	out := fmt.Sprintf("Error in command line:\n\n%s%s\n%s\n\n%s%s\n", indent, cmdLineStr, pointerLine, indent, formattedMsg)

	if e.FailingCommand != "" {
		out += fmt.Sprintf("\n%sUsage is:\n", indent)
		for _, line := range strings.Split(strings.TrimRight(GetUsage(e.FailingCommand), "\n"), "\n") {
			out += fmt.Sprintf("%s%s\n", indent, line)
		}
	} else {
		out += fmt.Sprintf("\n%sRun '{{_UserCommand_}}%s --help{{|-|}}' for usage.\n", indent, version.CommandName)
	}

	return out
}

// CommandGroup is a command together with the modifier flags given before
// it. Flags taking a value are normalised to "--name=value".
type CommandGroup struct {
	Flags   []string
	Command string
	Args    []string
}

// FullSlice returns the reconstructed slice of strings for the group
func (cg CommandGroup) FullSlice() []string {
	var s []string
	s = append(s, cg.Flags...)
	if cg.Command != "" {
		s = append(s, cg.Command)
	}
	s = append(s, cg.Args...)
	return s
}

// modifiers do not end a group. The value is the canonical long name.
var modifiers = map[string]string{
	"-v": "--verbose", "--verbose": "--verbose",
	"-x": "--debug", "--debug": "--debug",
	"-C": "--dir", "--dir": "--dir",
	"--filter": "--filter",
	"--format": "--format",
}

// valueModifiers take exactly one argument.
var valueModifiers = map[string]bool{
	"--dir":    true,
	"--filter": true,
	"--format": true,
}

var validFormats = map[string]bool{
	FormatTree: true,
	FormatJSON: true,
	FormatYAML: true,
}

// Parse splits the command line into command groups. Commands run in the
// order given; modifiers apply to the command that follows them. Trailing
// modifiers with no command form a final group with an empty Command, which
// starts the TUI.
func Parse(args []string) ([]CommandGroup, error) {
	InitFlags()

	// Expand combined short flags (e.g. -vl -> -v -l)
	var expandedArgs []string
	for _, arg := range args {
		if strings.HasPrefix(arg, "-") && !strings.HasPrefix(arg, "--") && len(arg) > 2 {
			for _, c := range arg[1:] {
				expandedArgs = append(expandedArgs, fmt.Sprintf("-%c", c))
			}
		} else {
			expandedArgs = append(expandedArgs, arg)
		}
	}

	var groups []CommandGroup
	var currentGroup CommandGroup
	var lastCommand string

	i := 0
	for i < len(expandedArgs) {
		arg := expandedArgs[i]

		if !strings.HasPrefix(arg, "-") || arg == "-" {
			return nil, &ParseError{Args: expandedArgs, Index: i, Message: "Invalid option %o", FailingCommand: lastCommand}
		}

		name, inlineValue, hasInline := strings.Cut(arg, "=")

		if long, ok := modifiers[name]; ok {
			lastCommand = name
			if !valueModifiers[long] {
				if hasInline {
					return nil, &ParseError{Args: expandedArgs, Index: i, FailingCommand: name, Message: "Option %c does not take a value."}
				}
				currentGroup.Flags = append(currentGroup.Flags, long)
				i++
				continue
			}

			value := inlineValue
			valueIndex := i
			if !hasInline {
				valueIndex = i + 1
				if valueIndex >= len(expandedArgs) || (strings.HasPrefix(expandedArgs[valueIndex], "-") && long != "--filter") {
					return nil, &ParseError{Args: expandedArgs, Index: i, FailingCommand: name, Message: fmt.Sprintf("Option %s requires an argument.", name)}
				}
				value = expandedArgs[valueIndex]
			}
			if long == "--format" && !validFormats[value] {
				return nil, &ParseError{Args: expandedArgs, Index: valueIndex, FailingCommand: name, Message: "Invalid format %o"}
			}
			currentGroup.Flags = append(currentGroup.Flags, long+"="+value)
			i = valueIndex + 1
			continue
		}

		// Anything else starting with "-" must be a known command
		flagName := strings.TrimLeft(name, "-")
		var validFlag *pflag.Flag
		if strings.HasPrefix(name, "--") {
			validFlag = pflag.Lookup(flagName)
		} else if len(flagName) == 1 {
			validFlag = pflag.CommandLine.ShorthandLookup(flagName)
		}
		if validFlag == nil || (hasInline && name != "--toggle") {
			return nil, &ParseError{Args: expandedArgs, Index: i, Message: "Invalid option %o"}
		}

		currentGroup.Command = name
		lastCommand = name
		i++

		switch name {
		// One or more targets, until the next flag
		case "-t", "--toggle":
			var positions []int
			if hasInline {
				currentGroup.Args = append(currentGroup.Args, inlineValue)
				positions = append(positions, i-1)
			}
			for i < len(expandedArgs) && !strings.HasPrefix(expandedArgs[i], "-") {
				currentGroup.Args = append(currentGroup.Args, expandedArgs[i])
				positions = append(positions, i)
				i++
			}
			if len(currentGroup.Args) == 0 {
				return nil, &ParseError{Args: expandedArgs, Index: i - 1, FailingCommand: name, Message: fmt.Sprintf("Command %s requires an argument.", name)}
			}
			for j, target := range currentGroup.Args {
				if !validTarget(target) {
					return nil, &ParseError{Args: expandedArgs, Index: positions[j], FailingCommand: name, Message: "Invalid target %o, expected FILE:LINE or FILE:KEY"}
				}
			}

		// Help takes an optional flag or command to describe
		case "-h", "--help":
			if i < len(expandedArgs) && strings.HasPrefix(expandedArgs[i], "-") {
				currentGroup.Args = append(currentGroup.Args, expandedArgs[i])
				i++
			}

		// No arguments
		case "-l", "--list", "-w", "--watch", "-V", "--version", "--config-show":
		}

		groups = append(groups, currentGroup)
		currentGroup = CommandGroup{}
	}

	if len(currentGroup.Flags) > 0 {
		groups = append(groups, currentGroup)
	}

	return groups, nil
}

// validTarget checks the FILE:SELECTOR shape. Whether the file and variable
// exist is decided at run time.
func validTarget(target string) bool {
	i := strings.LastIndex(target, ":")
	return i > 0 && i < len(target)-1
}
