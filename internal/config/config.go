package config

import (
	"EnvFlip/internal/constants"
	"EnvFlip/internal/paths"
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	toml "github.com/pelletier/go-toml/v2"
)

// DefaultStatusTimeout is how long a transient status message stays visible.
const DefaultStatusTimeout = 2 * time.Second

// AppConfig holds the application configuration settings.
type AppConfig struct {
	Workspace WorkspaceConfig `toml:"workspace"`
	UI        UIConfig        `toml:"ui"`

	// Runtime only, not saved to TOML
	Root string `toml:"-"`
}

// WorkspaceConfig controls which files are discovered.
type WorkspaceConfig struct {
	Include    string   `toml:"include"`
	Exclude    []string `toml:"exclude"`
	UseGitRoot bool     `toml:"use_git_root"`
}

// UIConfig holds user interface related settings.
type UIConfig struct {
	StatusTimeout string `toml:"status_timeout"` // Go duration string, e.g. "2s"
	ASCII         bool   `toml:"ascii"`
	ShowValues    bool   `toml:"show_values"`
}

// Default returns the built-in configuration.
func Default() AppConfig {
	return AppConfig{
		Workspace: WorkspaceConfig{
			Include:    constants.EnvGlob,
			Exclude:    []string{constants.NodeModulesGlob},
			UseGitRoot: true,
		},
		UI: UIConfig{
			StatusTimeout: DefaultStatusTimeout.String(),
			ShowValues:    true,
		},
	}
}

// StatusTTL parses UI.StatusTimeout, falling back to the default for
// empty, invalid or non-positive values.
func (c AppConfig) StatusTTL() time.Duration {
	d, err := time.ParseDuration(c.UI.StatusTimeout)
	if err != nil || d <= 0 {
		return DefaultStatusTimeout
	}
	return d
}

// ExpandVariables expands environment variables in the config values.
// It supports:
// - ${XDG_CONFIG_HOME} -> xdg.ConfigHome
// - ${XDG_DATA_HOME}   -> xdg.DataHome
// - ${XDG_STATE_HOME}  -> xdg.StateHome
// - ${HOME}            -> os.UserHomeDir()
// - ${USER}            -> Current username
// Anything else is looked up in the process environment.
func ExpandVariables(val string) string {
	mapper := func(varName string) string {
		switch varName {
		case "XDG_CONFIG_HOME":
			return xdg.ConfigHome
		case "XDG_DATA_HOME":
			return xdg.DataHome
		case "XDG_STATE_HOME":
			return xdg.StateHome
		case "HOME":
			home, err := os.UserHomeDir()
			if err != nil {
				return ""
			}
			return home
		case "USER":
			u, err := user.Current()
			if err != nil {
				return os.Getenv("USERNAME") // Fallback for Windows
			}
			return u.Username
		}
		return os.Getenv(varName)
	}
	return os.Expand(val, mapper)
}

// LoadAppConfig reads the configuration file and returns the configuration.
// A missing file is created with defaults; a file that fails to parse is
// reported and the defaults are used without overwriting it.
func LoadAppConfig() (AppConfig, error) {
	conf := Default()

	path := paths.GetConfigFilePath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return conf, SaveAppConfig(conf)
		}
		return conf, fmt.Errorf("reading %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &conf); err != nil {
		return Default(), fmt.Errorf("parsing %s: %w", path, err)
	}
	conf.Workspace.Include = ExpandVariables(conf.Workspace.Include)
	if conf.Workspace.Include == "" {
		conf.Workspace.Include = constants.EnvGlob
	}
	return conf, nil
}

// SaveAppConfig writes the configuration to envflip.toml.
func SaveAppConfig(conf AppConfig) error {
	path := paths.GetConfigFilePath()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := toml.Marshal(conf)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Describe returns key/value pairs for --config-show, in display order.
func (c AppConfig) Describe() [][2]string {
	return [][2]string{
		{constants.IncludeKey, c.Workspace.Include},
		{constants.ExcludeKey, fmt.Sprint(c.Workspace.Exclude)},
		{constants.UseGitRootKey, fmt.Sprint(c.Workspace.UseGitRoot)},
		{constants.StatusTimeoutKey, c.StatusTTL().String()},
		{constants.ASCIIKey, fmt.Sprint(c.UI.ASCII)},
		{constants.ShowValuesKey, fmt.Sprint(c.UI.ShowValues)},
	}
}
