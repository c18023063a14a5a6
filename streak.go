package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"tableflip.dev/streak/pkg/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := commands.New().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
