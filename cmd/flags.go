package cmd

import (
	"github.com/spf13/pflag"
)

// Output formats accepted by --format.
const (
	FormatTree = "tree"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// InitFlags defines the pflags used for argument validation and help.
// It is safe to call more than once.
func InitFlags() {
	if pflag.Lookup("help") != nil {
		return
	}

	// Modifiers
	pflag.BoolP("verbose", "v", false, "Verbose output")
	pflag.BoolP("debug", "x", false, "Debug output")
	pflag.StringP("dir", "C", "", "Workspace folder")
	pflag.String("filter", "", "Only show variables whose key or value contains the text")
	pflag.String("format", FormatTree, "List output format (tree, json, yaml)")

	// Commands
	pflag.BoolP("help", "h", false, "Show help")
	pflag.BoolP("version", "V", false, "Show version")
	pflag.BoolP("list", "l", false, "List env files and variables")
	pflag.StringP("toggle", "t", "", "Toggle variable(s) given as FILE:LINE or FILE:KEY")
	pflag.BoolP("watch", "w", false, "Print the tree after every change")
	pflag.Bool("config-show", false, "Show configuration")
}
