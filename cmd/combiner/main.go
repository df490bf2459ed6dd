package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/bethropolis/combiner/internal/app"
	"github.com/bethropolis/combiner/internal/config"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "1.0.0"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd := config.NewCommand(version, func(cmd *cobra.Command, cfg *config.Config) error {
		return app.New(cfg, os.Stderr).Run(cmd.Context())
	})

	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		stop()
		os.Exit(1)
	}
}
