package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/ZebulonRouseFrantzich/phantomjs-installer/internal/platform"
)

// Version will be set at build time via -ldflags
var Version = "v0.1.0"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd := newRootCmd(app{
		stdout:   os.Stdout,
		stderr:   os.Stderr,
		detector: platform.NewDetector(),
	})
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
