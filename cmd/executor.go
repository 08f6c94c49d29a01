package cmd

import (
	"EnvFlip/internal/commands"
	"EnvFlip/internal/config"
	"EnvFlip/internal/console"
	"EnvFlip/internal/envfile"
	"EnvFlip/internal/logger"
	"EnvFlip/internal/paths"
	"EnvFlip/internal/tree"
	"EnvFlip/internal/tui"
	"EnvFlip/internal/version"
	"EnvFlip/internal/workspace"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
)

// stdout receives command output. Logging goes to stderr.
var stdout io.Writer = os.Stdout

// CmdState holds the modifiers that apply to a single command group.
type CmdState struct {
	Dir    string
	Filter string
	Format string
}

// applyFlags sets log levels and returns the group's state.
func applyFlags(flags []string) CmdState {
	state := CmdState{Format: FormatTree}
	for _, flag := range flags {
		name, value, _ := strings.Cut(flag, "=")
		switch name {
		case "--verbose":
			logger.SetLevel(logger.LevelInfo)
		case "--debug":
			logger.SetLevel(logger.LevelDebug)
		case "--dir":
			state.Dir = value
		case "--filter":
			state.Filter = value
		case "--format":
			state.Format = value
		}
	}
	return state
}

// Execute runs the command groups in order and returns the exit code. It
// stops at the first failing command.
func Execute(ctx context.Context, groups []CommandGroup) int {
	conf, err := config.LoadAppConfig()
	if err != nil {
		logger.Warn(ctx, "Using default configuration: %v", err)
	}

	if len(groups) == 0 {
		groups = []CommandGroup{{}}
	}

	for _, group := range groups {
		state := applyFlags(group.Flags)

		cmdStr := strings.Join(append([]string{version.CommandName}, group.FullSlice()...), " ")
		logger.Info(ctx, "%s command: '{{_UserCommand_}}%s{{|-|}}'", version.ApplicationName, cmdStr)
		logger.Debug(ctx, "Execution Args -> State: %+v, Command: %s, Args: %v", state, group.Command, group.Args)

		var err error
		switch group.Command {
		case "":
			err = handleTUI(ctx, conf, state)
		case "-h", "--help":
			handleHelp(&group)
		case "-V", "--version":
			handleVersion()
		case "--config-show":
			handleConfigShow(ctx, conf)
		case "-l", "--list":
			err = handleList(ctx, conf, state)
		case "-t", "--toggle":
			err = handleToggle(ctx, conf, state, group.Args)
		case "-w", "--watch":
			err = handleWatch(ctx, conf, state)
		default:
			err = fmt.Errorf("the '{{_UserCommand_}}%s{{|-|}}' command is not implemented", group.Command)
		}

		if err != nil {
			logger.Error(ctx, "%v", err)
			return 1
		}
	}
	return 0
}

// session is the provider for one command, rooted at the resolved workspace.
type session struct {
	root     string
	provider *tree.Provider
}

// openSession resolves the workspace root: --dir as given, otherwise the
// enclosing git worktree when configured, otherwise the current folder.
func openSession(ctx context.Context, conf config.AppConfig, state CmdState) (*session, error) {
	dir := state.Dir
	useGit := conf.Workspace.UseGitRoot && dir == ""
	if dir == "" {
		dir = "."
	}
	root, err := workspace.ResolveRoot(config.ExpandVariables(dir), useGit)
	if err != nil {
		return nil, fmt.Errorf("resolving workspace: %w", err)
	}
	fs, err := workspace.NewDir(root)
	if err != nil {
		return nil, fmt.Errorf("opening workspace: %w", err)
	}
	logger.Debug(ctx, "Workspace is '{{_Folder_}}%s{{|-|}}'", fs.Root)

	p := tree.NewProvider(fs, conf.Workspace.Include, conf.Workspace.Exclude)
	if state.Filter != "" {
		p.SetFilter(state.Filter)
	}
	return &session{root: fs.Root, provider: p}, nil
}

// load refreshes the provider. Files that could not be read are reported
// as warnings; a failed discovery is an error.
func (s *session) load(ctx context.Context) error {
	err := s.provider.Refresh(ctx)
	if err == nil {
		return nil
	}
	if errors.Is(err, envfile.ErrIO) {
		logger.Warn(ctx, "Some env files could not be read: %v", err)
		return nil
	}
	return err
}

func handleHelp(group *CommandGroup) {
	target := ""
	if len(group.Args) > 0 {
		target = group.Args[0]
	}
	PrintHelp(target)
}

func handleVersion() {
	fmt.Fprintln(stdout, console.Parse(fmt.Sprintf("{{_ApplicationName_}}%s{{|-|}} [{{_Version_}}%s{{|-|}}]", version.ApplicationName, version.Version)))
	fmt.Fprintf(stdout, "commit %s, built %s\n", version.Commit, version.BuildDate)
}

func handleConfigShow(ctx context.Context, conf config.AppConfig) {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(console.Parse("{{_UsageCommand_}}Option{{|-|}}"), console.Parse("{{_UsageCommand_}}Value{{|-|}}"))
	if conf.UI.ASCII {
		t = t.Border(lipgloss.ASCIIBorder())
	}
	for _, kv := range conf.Describe() {
		t = t.Row(kv[0], console.Parse(fmt.Sprintf("{{_Var_}}%s{{|-|}}", kv[1])))
	}

	logger.Notice(ctx, "Configuration options stored in '{{_File_}}%s{{|-|}}':", paths.GetConfigFilePath())
	fmt.Fprintln(stdout, t.String())
}

func handleList(ctx context.Context, conf config.AppConfig, state CmdState) error {
	s, err := openSession(ctx, conf, state)
	if err != nil {
		return err
	}
	if err := s.load(ctx); err != nil {
		return err
	}
	out, err := renderList(s.provider, s.root, state.Format, conf.UI.ASCII, conf.UI.ShowValues)
	if err != nil {
		return err
	}
	fmt.Fprint(stdout, out)
	return nil
}

func handleToggle(ctx context.Context, conf config.AppConfig, state CmdState, targets []string) error {
	s, err := openSession(ctx, conf, state)
	if err != nil {
		return err
	}
	if err := s.load(ctx); err != nil {
		return err
	}

	cmds := commands.New(s.provider, commands.LogNotifier{Ctx: ctx})
	cmds.StatusTTL = conf.StatusTTL()

	// Each toggle refreshes the tree, so later targets resolve against the
	// file as the earlier ones left it.
	for _, target := range targets {
		ref, err := cmds.Resolve(s.root, target)
		if err != nil {
			return fmt.Errorf("'{{_UserCommand_}}%s{{|-|}}': %w", target, err)
		}
		if err := cmds.ToggleVariable(ctx, ref); err != nil {
			// Already reported by the notifier
			return errors.New("toggle failed")
		}
	}
	return nil
}

func handleWatch(ctx context.Context, conf config.AppConfig, state CmdState) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	s, err := openSession(ctx, conf, state)
	if err != nil {
		return err
	}

	var mu sync.Mutex
	show := func() {
		out := renderTree(s.provider, s.root, conf.UI.ASCII, conf.UI.ShowValues)
		mu.Lock()
		defer mu.Unlock()
		fmt.Fprintln(stdout, console.Parse(fmt.Sprintf("{{_Inactive_}}%s{{|-|}}", time.Now().Format(time.TimeOnly))))
		fmt.Fprint(stdout, out)
	}

	if err := s.load(ctx); err != nil {
		return err
	}
	show()

	sub := s.provider.OnDidChange(show)
	defer sub.Close()

	if err := s.provider.Watch(ctx); err != nil {
		return err
	}
	defer s.provider.Close()

	logger.Notice(ctx, "Watching '{{_Folder_}}%s{{|-|}}' for changes. Press Ctrl+C to stop.", s.root)
	<-ctx.Done()
	return nil
}

func handleTUI(ctx context.Context, conf config.AppConfig, state CmdState) error {
	s, err := openSession(ctx, conf, state)
	if err != nil {
		return err
	}
	conf.Root = s.root
	return tui.Start(ctx, conf, s.provider)
}
