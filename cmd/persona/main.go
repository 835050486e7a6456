package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"persona-lab/internal"
	"syscall"

	"github.com/joho/godotenv"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run owns every resource opened by a subcommand so that deferred cleanup
// happens before main exits with a status code.
func run() error {
	// 1. Configuration
	_ = godotenv.Load()
	config, err := internal.LoadConfig()
	if err != nil {
		return err
	}

	// 2. Context & Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Dispatch
	a := &app{config: &config}
	defer a.close()
	return newRootCommand(a).ExecuteContext(ctx)
}
