package console

import "sync/atomic"

var tuiEnabled atomic.Bool

// TUIShutdown restores the terminal when a panic escapes the TUI. The tui
// package installs it while a program is running.
var TUIShutdown func()

// IsTUIEnabled returns true if the application is currently running in TUI mode.
func IsTUIEnabled() bool {
	return tuiEnabled.Load()
}

// SetTUIEnabled sets whether the application is running in TUI mode.
func SetTUIEnabled(enabled bool) {
	tuiEnabled.Store(enabled)
}
