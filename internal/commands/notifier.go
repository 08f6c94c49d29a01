package commands

import (
	"EnvFlip/internal/logger"
	"context"
	"time"
)

// LogNotifier reports through the logger, for command-line use.
type LogNotifier struct {
	Ctx context.Context
}

func (n LogNotifier) ctx() context.Context {
	if n.Ctx == nil {
		return context.Background()
	}
	return n.Ctx
}

// Status logs msg at Notice level. The ttl has no meaning on a console.
func (n LogNotifier) Status(msg string, _ time.Duration) {
	logger.Notice(n.ctx(), msg)
}

// Info is logged at Notice level so it shows at the default verbosity.
func (n LogNotifier) Info(msg string) {
	logger.Notice(n.ctx(), msg)
}

func (n LogNotifier) Error(msg string) {
	logger.Error(n.ctx(), msg)
}
