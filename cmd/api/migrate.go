package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sclayai/proposal-intake/internal/infra/database"
)

func newMigrateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.cfg.DatabaseURL == "" {
				return errors.New("DATABASE_URL is required")
			}
			db, err := database.NewDBConnection(cmd.Context(), a.cfg.DatabaseURL, database.DefaultPoolConfig())
			if err != nil {
				return err
			}
			defer db.Close()

			n, err := database.Migrate(cmd.Context(), db, a.logger)
			if err != nil {
				return err
			}
			a.logger.Info("migrations complete", zap.Int("applied", n))
			fmt.Fprintf(cmd.OutOrStdout(), "%d migration(s) applied\n", n)
			return nil
		},
	}
}
