package serve

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/kanban/cmd"
	"github.com/charmbracelet/kanban/pkg/backend"
	"github.com/charmbracelet/kanban/pkg/config"
	"github.com/charmbracelet/kanban/pkg/db"
	"github.com/charmbracelet/kanban/pkg/db/migrate"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// Command is the serve command.
var Command = &cobra.Command{
	Use:                "serve",
	Short:              "Start the server",
	Args:               cobra.NoArgs,
	PersistentPreRunE:  cmd.InitBackendContext,
	PersistentPostRunE: cmd.CloseDBContext,
	RunE: func(c *cobra.Command, _ []string) error {
		ctx := c.Context()
		cfg := config.FromContext(ctx)
		if err := cfg.ValidateServe(); err != nil {
			return err
		}

		if !cfg.Exist() {
			if err := cfg.WriteConfig(); err != nil {
				return fmt.Errorf("write config file: %w", err)
			}
		}

		if err := migrate.Migrate(ctx, db.FromContext(ctx)); err != nil {
			return fmt.Errorf("migration error: %w", err)
		}

		logger := log.FromContext(ctx)
		created, err := backend.FromContext(ctx).EnsureInitialAdmin(ctx)
		if err != nil {
			return fmt.Errorf("initial admin: %w", err)
		}
		if created {
			logger.Info("created initial admin", "username", cfg.InitialAdmin.Username)
		}

		s, err := NewServer(ctx)
		if err != nil {
			return fmt.Errorf("start server: %w", err)
		}

		lch := make(chan error, 1)
		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(sigs)

		go func() {
			lch <- s.Start()
		}()

	loop:
		for {
			select {
			case err := <-lch:
				if err != nil {
					return fmt.Errorf("server error: %w", err)
				}
				break loop
			case sig := <-sigs:
				if sig == syscall.SIGHUP {
					if err := s.ReloadCertificate(); err != nil {
						logger.Error("reload tls certificate", "err", err)
					} else {
						logger.Info("reloaded tls certificate")
					}
					continue
				}
				break loop
			}
		}

		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return s.Shutdown(ctx)
	},
}
