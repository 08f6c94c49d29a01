package console

// Raw ANSI Color Codes
const (
	// Reset
	CodeReset = "\033[0m"

	// Modifiers
	CodeBold      = "\033[1m"
	CodeDim       = "\033[2m"
	CodeUnderline = "\033[4m"
	CodeReverse   = "\033[7m"

	// Foreground
	CodeBlack   = "\033[30m"
	CodeRed     = "\033[31m"
	CodeGreen   = "\033[32m"
	CodeYellow  = "\033[33m"
	CodeBlue    = "\033[34m"
	CodeMagenta = "\033[35m"
	CodeCyan    = "\033[36m"
	CodeWhite   = "\033[37m"

	// Background
	CodeRedBg = "\033[41m"
)

// ansiMap maps direct tag names ({{|name|}}) to ANSI sequences.
var ansiMap = map[string]string{
	"-":         CodeReset,
	"reset":     CodeReset,
	"bold":      CodeBold,
	"dim":       CodeDim,
	"underline": CodeUnderline,
	"reverse":   CodeReverse,
	"black":     CodeBlack,
	"red":       CodeRed,
	"green":     CodeGreen,
	"yellow":    CodeYellow,
	"blue":      CodeBlue,
	"magenta":   CodeMagenta,
	"cyan":      CodeCyan,
	"white":     CodeWhite,
	"redbg":     CodeRedBg,
}

// semanticMap maps semantic tag names ({{_Name_}}) to ANSI sequences.
// Keys are lower case.
var semanticMap = map[string]string{
	"applicationname":        CodeCyan + CodeBold,
	"version":                CodeCyan,
	"file":                   CodeCyan + CodeBold,
	"folder":                 CodeCyan + CodeBold,
	"var":                    CodeMagenta,
	"value":                  CodeReset,
	"active":                 CodeGreen,
	"inactive":               CodeDim,
	"filter":                 CodeYellow,
	"usercommand":            CodeYellow + CodeBold,
	"usercommanderror":       CodeRed + CodeUnderline,
	"usercommanderrormarker": CodeRed,
	"usagecommand":           CodeYellow + CodeBold,
	"usageoption":            CodeYellow,
	"usagefile":              CodeCyan + CodeBold,
	"usagevar":               CodeMagenta,
	"fatalfooter":            CodeReset,
	"traceheader":            CodeRed,
	"tracefooter":            CodeRed,
}

// RegisterSemanticTag registers (or overrides) a semantic tag.
func RegisterSemanticTag(name, code string) {
	semanticMap[normalizeTag(name)] = code
}
