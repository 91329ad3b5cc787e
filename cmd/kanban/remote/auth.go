package remote

import (
	"github.com/charmbracelet/kanban/pkg/client"
	"github.com/spf13/cobra"
)

// Commands returns the client commands.
func Commands() []*cobra.Command {
	return []*cobra.Command{
		remoteCommand(),
		loginCommand(),
		logoutCommand(),
		whoamiCommand(),
		boardCommand(),
		columnCommand(),
		cardCommand(),
		commentCommand(),
		orgCommand(),
		teamCommand(),
		inviteCommand(),
		apiKeyCommand(),
	}
}

func remoteCommand() *cobra.Command {
	return &cobra.Command{
		Use:               "remote [URL]",
		Short:             "Show or set the server URL",
		Args:              cobra.MaximumNArgs(1),
		PersistentPreRunE: InitConfigContext,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ConfigFromContext(cmd.Context())
			if len(args) == 0 {
				cmd.Printf("Server URL: %s\n", cfg.Server.URL)
				return nil
			}

			if _, err := client.New(args[0]); err != nil {
				return err
			}

			cfg.Server.URL = args[0]
			if err := cfg.Save(); err != nil {
				return err
			}

			cmd.Printf("Server URL set to: %s\n", cfg.Server.URL)
			return nil
		},
	}
}

func loginCommand() *cobra.Command {
	var server string
	cmd := &cobra.Command{
		Use:               "login USERNAME PASSWORD",
		Short:             "Log in to a kanban server",
		Args:              cobra.ExactArgs(2),
		PersistentPreRunE: InitConfigContext,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := ConfigFromContext(ctx)
			if server != "" {
				cfg.Server.URL = server
			}

			c, err := client.New(cfg.Server.URL)
			if err != nil {
				return err
			}

			token, err := c.Login(ctx, args[0], args[1])
			if err != nil {
				return err
			}

			cfg.Auth = AuthConfig{Token: token}
			if err := cfg.Save(); err != nil {
				return err
			}

			cmd.Printf("Logged in as %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVarP(&server, "server", "s", "", "server URL, stored for later commands")

	return cmd
}

func logoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:               "logout",
		Short:             "Forget the stored credentials",
		Args:              cobra.NoArgs,
		PersistentPreRunE: InitConfigContext,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := ConfigFromContext(cmd.Context())
			cfg.Auth = AuthConfig{}
			if err := cfg.Save(); err != nil {
				return err
			}

			cmd.Println("Logged out")
			return nil
		},
	}
}

func whoamiCommand() *cobra.Command {
	return &cobra.Command{
		Use:               "whoami",
		Short:             "Show the logged in user",
		Args:              cobra.NoArgs,
		PersistentPreRunE: InitClientContext,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			c := ClientFromContext(ctx)
			u, err := c.Me(ctx)
			if err != nil {
				return err
			}

			cmd.Printf("Username: %s\n", u.Username)
			cmd.Printf("Admin: %t\n", u.Admin)
			return nil
		},
	}
}
