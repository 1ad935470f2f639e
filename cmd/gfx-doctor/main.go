package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/dragon-Elec/gfx-doctor/internal/cli"
)

func main() {
	// The signal context reaches every apt subprocess, so an interrupt
	// during an apply still unwinds through the deferred pin cleanup.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	cli.ExecuteContext(ctx)
}
