package logger

import (
	"EnvFlip/internal/console"
	"context"

	tea "charm.land/bubbletea/v2"
)

// Recover traps panics and displays them using FatalWithStackSkip.
// Usage: defer logger.Recover(ctx)
func Recover(ctx context.Context) {
	if r := recover(); r != nil {
		// Suppress further panics during recovery
		defer func() { _ = recover() }()

		if console.TUIShutdown != nil {
			console.TUIShutdown()
		}
		console.SetTUIEnabled(false)

		if _, ok := r.(FatalError); ok {
			return
		}

		// Skip Recover + runtime.panic
		FatalWithStackSkip(ctx, 2, "panic: %v", r)
	}
}

// RecoverTUI wraps a tea.Cmd in a recovery block that uses FatalWithStackSkip.
func RecoverTUI(ctx context.Context, cmd tea.Cmd) tea.Cmd {
	if cmd == nil {
		return nil
	}
	return func() tea.Msg {
		defer func() {
			if r := recover(); r != nil {
				defer func() { _ = recover() }()

				if console.TUIShutdown != nil {
					console.TUIShutdown()
				}
				console.SetTUIEnabled(false)

				if _, ok := r.(FatalError); ok {
					return
				}

				// Skip closure + runtime.panic
				FatalWithStackSkip(ctx, 2, "TUI Panic: %v", r)
			}
		}()
		return cmd()
	}
}
