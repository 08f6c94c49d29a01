package tui

import (
	"time"

	tea "charm.land/bubbletea/v2"
)

// statusMsg puts text on the status line. A zero ttl keeps it until the next
// status replaces it.
type statusMsg struct {
	text  string
	isErr bool
	ttl   time.Duration
}

// clearStatusMsg expires the status with the matching sequence number.
type clearStatusMsg struct {
	seq int
}

// treeChangedMsg reports that the provider's files or filter changed.
type treeChangedMsg struct{}

// notifier forwards command results to the running program.
type notifier struct {
	send func(tea.Msg)
	ttl  time.Duration
}

func (n *notifier) Status(msg string, ttl time.Duration) {
	n.send(statusMsg{text: msg, ttl: ttl})
}

func (n *notifier) Info(msg string) {
	n.send(statusMsg{text: msg, ttl: n.ttl})
}

func (n *notifier) Error(msg string) {
	n.send(statusMsg{text: msg, isErr: true})
}
