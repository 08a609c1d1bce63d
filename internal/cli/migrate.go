package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vinodrajapaksha/ttms-api/infrastructure/database/postgres"
	"github.com/vinodrajapaksha/ttms-api/infrastructure/migration"
)

func (cli *CLI) newMigrateCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or upgrade the snapshot cache tables",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()

			if dryRun {
				names, err := migration.Scripts()
				if err != nil {
					return err
				}
				for _, name := range names {
					fmt.Fprintln(out, name)
				}
				return nil
			}

			cfg, ctx, cancel, err := cli.session(cmd.Context())
			if err != nil {
				return err
			}
			defer cancel()

			conn, err := postgres.NewConnection(ctx, cfg.Database)
			if err != nil {
				return err
			}
			defer conn.Close()

			applied, err := migration.Apply(ctx, conn)
			if err != nil {
				return fmt.Errorf("apply migrations: %w", err)
			}

			if len(applied) == 0 {
				fmt.Fprintln(out, "schema is up to date")
				return nil
			}
			for _, name := range applied {
				fmt.Fprintf(out, "applied %s\n", name)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Only list the embedded migrations")

	return cmd
}
