// Package commands holds the user-facing actions shared by the TUI and the
// command line. Every action reports its outcome through a Notifier and also
// returns the error, so interactive callers can ignore it and scripts can
// exit non-zero.
package commands

import (
	"EnvFlip/internal/config"
	"EnvFlip/internal/envfile"
	"EnvFlip/internal/logger"
	"EnvFlip/internal/tree"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sergi/go-diff/diffmatchpatch"
)

const refreshedMessage = "Environment files refreshed"

// Notifier shows the result of an action to the user.
type Notifier interface {
	// Status shows a transient message that disappears after ttl.
	Status(msg string, ttl time.Duration)
	Info(msg string)
	Error(msg string)
}

// Ref identifies a variable inside a file as the tree presented it.
type Ref struct {
	File     envfile.File
	Variable envfile.Variable
}

// Commands binds the actions to a provider and a notifier.
type Commands struct {
	Provider  *tree.Provider
	Notifier  Notifier
	StatusTTL time.Duration
}

// New returns Commands using the default status timeout.
func New(p *tree.Provider, n Notifier) *Commands {
	return &Commands{Provider: p, Notifier: n, StatusTTL: config.DefaultStatusTimeout}
}

// RefreshAll reloads every file.
func (c *Commands) RefreshAll(ctx context.Context) error {
	if err := c.Provider.Refresh(ctx); err != nil {
		c.Notifier.Error(fmt.Sprintf("Failed to refresh environment files: %v", err))
		return err
	}
	c.Notifier.Info(refreshedMessage)
	return nil
}

// ToggleVariable flips the referenced variable and reports "<KEY> activated"
// or "<KEY> deactivated" as a transient status.
func (c *Commands) ToggleVariable(ctx context.Context, ref Ref) error {
	res, err := c.Provider.Toggle(ctx, ref.File, ref.Variable)
	if err != nil {
		c.Notifier.Error(fmt.Sprintf("Failed to toggle variable: %v", err))
		return err
	}

	logger.Debug(ctx, "'{{_File_}}%s{{|-|}}' line %d: %s", res.Path, res.LineNumber+1, lineDiff(res.Before, res.After))
	c.Notifier.Status(fmt.Sprintf("%s %s", res.Key, res.Action()), c.ttl())
	return nil
}

// SetSearchFilter filters the tree by text. Empty text clears the filter.
func (c *Commands) SetSearchFilter(text string) {
	if strings.TrimSpace(text) == "" {
		c.Provider.ClearFilter()
		return
	}
	c.Provider.SetFilter(text)
}

// ClearFilter removes any filter.
func (c *Commands) ClearFilter() {
	c.Provider.ClearFilter()
}

func (c *Commands) ttl() time.Duration {
	if c.StatusTTL <= 0 {
		return config.DefaultStatusTimeout
	}
	return c.StatusTTL
}

// lineDiff renders the character changes between two lines with console
// colour tags.
func lineDiff(before, after string) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(before, after, false)

	var b strings.Builder
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			b.WriteString("{{|green|}}" + d.Text + "{{|-|}}")
		case diffmatchpatch.DiffDelete:
			b.WriteString("{{|red|}}" + d.Text + "{{|-|}}")
		default:
			b.WriteString(d.Text)
		}
	}
	return b.String()
}
