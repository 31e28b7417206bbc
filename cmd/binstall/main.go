package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/ZebulonRouseFrantzich/binstall/internal/platform"
)

// Version will be set at build time via -ldflags
var Version = "v0.1.0-dev"

func main() {
	// Interrupts cancel the context; the running step fails and deferred
	// workspace cleanup still runs before we exit.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	code := run(ctx, os.Args[1:], streams{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}, platform.NewDetector())

	stop()
	os.Exit(code)
}
