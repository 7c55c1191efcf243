package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/rbarchive/internal/cli"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli.Run(ctx)
	cancel()
	os.Exit(code)
}
