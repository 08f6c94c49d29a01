package constants

// File Names
const (
	EnvFileName       = ".env"
	EnvFilePrefix     = ".env"
	AppConfigFileName = "envflip.toml"
	LogFileName       = "envflip.log"
)

// Discovery patterns
const (
	EnvGlob         = "**/.env*"
	NodeModulesGlob = "**/node_modules/**"
)

// Config TOML keys, used by --config-show
const (
	IncludeKey       = "workspace.include"
	ExcludeKey       = "workspace.exclude"
	UseGitRootKey    = "workspace.use_git_root"
	StatusTimeoutKey = "ui.status_timeout"
	ASCIIKey         = "ui.ascii"
	ShowValuesKey    = "ui.show_values"
)
