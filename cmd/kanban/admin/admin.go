package admin

import (
	"fmt"
	"strconv"

	"github.com/caarlos0/tablewriter"
	"github.com/charmbracelet/kanban/cmd"
	"github.com/charmbracelet/kanban/pkg/db"
	"github.com/charmbracelet/kanban/pkg/db/migrate"
	"github.com/spf13/cobra"
)

var (
	// Command is the admin command.
	Command = &cobra.Command{
		Use:                "admin",
		Short:              "Administrate the server",
		PersistentPreRunE:  cmd.InitBackendContext,
		PersistentPostRunE: cmd.CloseDBContext,
	}

	migrateCmd = &cobra.Command{
		Use:   "migrate",
		Short: "Migrate the database to the latest version",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			ctx := c.Context()
			if err := migrate.Migrate(ctx, db.FromContext(ctx)); err != nil {
				return fmt.Errorf("migration: %w", err)
			}

			return nil
		},
	}

	rollbackCmd = &cobra.Command{
		Use:   "rollback",
		Short: "Rollback the database to the previous version",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			ctx := c.Context()
			if err := migrate.Rollback(ctx, db.FromContext(ctx)); err != nil {
				return fmt.Errorf("rollback: %w", err)
			}

			return nil
		},
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the database schema version",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			ctx := c.Context()
			v, err := migrate.Version(ctx, db.FromContext(ctx))
			if err != nil {
				return err
			}

			c.Println(v)
			return nil
		},
	}

	migrationsCmd = &cobra.Command{
		Use:   "migrations",
		Short: "List the schema migrations and whether they are applied",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			ctx := c.Context()
			ss, err := migrate.List(ctx, db.FromContext(ctx))
			if err != nil {
				return err
			}

			return tablewriter.Render(
				c.OutOrStdout(),
				ss,
				[]string{"Version", "Name", "Applied"},
				func(s migrate.Status) ([]string, error) {
					return []string{
						strconv.FormatInt(s.Version, 10),
						s.Name,
						strconv.FormatBool(s.Applied),
					}, nil
				},
			)
		},
	}
)

func init() {
	Command.AddCommand(
		migrateCmd,
		migrationsCmd,
		rollbackCmd,
		versionCmd,
	)
}
