package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"EnvFlip/cmd"
	"EnvFlip/internal/console"
	"EnvFlip/internal/logger"
	"EnvFlip/internal/version"
)

func main() {
	os.Exit(run())
}

func run() (exitCode int) {
	slog.SetDefault(logger.NewLogger())
	ctx := context.Background()

	// Defer cleanup to ensure it runs even if we return early or panic
	defer cleanup(ctx)

	// Recover from logger.FatalError to ensure cleanup runs
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(logger.FatalError); ok {
				// This panic was intentional from logger.Fatal
				exitCode = 1
			} else {
				// Re-panic for other errors
				panic(r)
			}
		}
		if exitCode != 0 {
			fmt.Fprintln(os.Stderr, console.Parse(fmt.Sprintf("{{_ApplicationName_}}%s{{|-|}} did not finish running successfully.", version.ApplicationName)))
		}
	}()

	// Parse command line arguments
	groups, err := cmd.Parse(os.Args[1:])
	if err != nil {
		var perr *cmd.ParseError
		if errors.As(err, &perr) {
			fmt.Fprint(os.Stderr, console.Parse(perr.Error()))
			return 1
		}
		logger.Error(ctx, err.Error())
		return 1
	}

	// Hand off execution to the cmd package
	exitCode = cmd.Execute(ctx, groups)

	return exitCode
}

func cleanup(ctx context.Context) {
	logger.Info(ctx, "Cleaning up...")
	logger.Cleanup()
}
