package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sclayai/proposal-intake/internal/config"
	"github.com/sclayai/proposal-intake/internal/infra/logger"
)

var version = "dev"

// app carries what every subcommand needs once the root has initialised it.
type app struct {
	cfg    config.Config
	logger *zap.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "intake",
		Short:         "Proposal intake service",
		Long:          "Serves the onboarding and prospect intake forms and the proposals dashboard.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.cfg = config.Load()
			l, err := logger.New(a.cfg.LogLevel, a.cfg.DevMode)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			a.logger = l
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	root.AddCommand(newServeCmd(a), newMigrateCmd(a))
	return root
}
