// Package tui is the interactive tree view.
package tui

import (
	"context"
	"fmt"

	"EnvFlip/internal/commands"
	"EnvFlip/internal/config"
	"EnvFlip/internal/console"
	"EnvFlip/internal/logger"
	"EnvFlip/internal/tree"

	tea "charm.land/bubbletea/v2"
	zone "github.com/lrstanley/bubblezone/v2"
)

// Start runs the tree view until the user quits. It starts watching the
// workspace and stops watching on return. Console logging is muted while the
// program owns the screen; file logging continues.
func Start(ctx context.Context, cfg config.AppConfig, p *tree.Provider) error {
	logger.Info(ctx, "TUI Starting...")

	zone.NewGlobal()

	n := &notifier{ttl: cfg.StatusTTL()}
	cmds := commands.New(p, n)
	cmds.StatusTTL = cfg.StatusTTL()

	program := tea.NewProgram(
		NewModel(ctx, cfg, p, cmds),
		tea.WithContext(ctx),
	)
	n.send = program.Send

	// Send blocks until the event loop reads the message, and the provider
	// fires from inside Update when the filter changes.
	sub := p.OnDidChange(func() { go program.Send(treeChangedMsg{}) })
	defer sub.Close()

	if err := p.Watch(ctx); err != nil {
		logger.Warn(ctx, "Not watching for changes: %v", err)
	}
	defer p.Close()

	restore := logger.MuteConsole()
	defer restore()
	console.SetTUIEnabled(true)
	defer console.SetTUIEnabled(false)
	console.TUIShutdown = program.Kill
	defer func() { console.TUIShutdown = nil }()

	_, err := program.Run()
	// Reset terminal colors on exit to prevent "bleeding" into the shell prompt
	fmt.Print("\x1b[0m")
	if err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}
