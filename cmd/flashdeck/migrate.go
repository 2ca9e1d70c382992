package main

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/phrazzld/flashdeck/internal/config"
	"github.com/phrazzld/flashdeck/internal/platform/postgres"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate [" + strings.Join(postgres.MigrateCommands, "|") + "]",
	Short: "Run database migrations for the postgres backend",
	Long: `Apply, roll back or inspect the embedded schema migrations.

Requires storage.backend to be "postgres". Defaults to "up".`,
	Args: cobra.MaximumNArgs(1),
	RunE: runMigrate,
}

func runMigrate(cmd *cobra.Command, args []string) error {
	command := "up"
	if len(args) == 1 {
		command = args[0]
	}
	if !slices.Contains(postgres.MigrateCommands, command) {
		return fmt.Errorf("unknown migrate command %q (want one of %s)",
			command, strings.Join(postgres.MigrateCommands, ", "))
	}
	if cfg == nil || cfg.Storage.Backend != config.BackendPostgres {
		return errors.New("migrate requires storage.backend=postgres")
	}

	ctx := commandContext(cmd)
	app, err := newApplication(ctx, cfg, appLogger)
	if err != nil {
		return err
	}
	defer app.cleanup()

	if err := postgres.Migrate(ctx, app.db, command, app.logger); err != nil {
		return fmt.Errorf("migration %s failed: %w", command, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "migrate %s: done\n", command)
	return nil
}
