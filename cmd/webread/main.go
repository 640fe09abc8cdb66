package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/web-read/webread/internal/cli"
)

func main() {
	// Interrupts cancel the command context, so an in-flight browser tier
	// tears its Chrome process down before the process exits.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli.Execute(ctx)
}
