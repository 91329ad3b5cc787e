package user

import (
	"strconv"

	"github.com/caarlos0/tablewriter"
	"github.com/charmbracelet/kanban/cmd"
	"github.com/charmbracelet/kanban/pkg/backend"
	"github.com/charmbracelet/kanban/pkg/proto"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

// Command returns the user subcommand.
var Command = &cobra.Command{
	Use:                "user",
	Aliases:            []string{"users"},
	Short:              "Manage users",
	PersistentPreRunE:  cmd.InitBackendContext,
	PersistentPostRunE: cmd.CloseDBContext,
}

func init() {
	var (
		admin    bool
		email    string
		password string
	)
	userCreateCommand := &cobra.Command{
		Use:   "create USERNAME",
		Short: "Create a new user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			be := backend.FromContext(ctx)
			u, err := be.CreateUser(ctx, args[0], proto.UserOptions{
				Admin:    admin,
				Email:    email,
				Password: password,
			})
			if err != nil {
				return err
			}

			cmd.Printf("Created user %s (id %d)\n", u.Username(), u.ID())
			return nil
		},
	}

	userCreateCommand.Flags().BoolVarP(&admin, "admin", "a", false, "make the user an admin")
	userCreateCommand.Flags().StringVarP(&email, "email", "e", "", "the user's email")
	userCreateCommand.Flags().StringVarP(&password, "password", "p", "", "the user's password")

	userDeleteCommand := &cobra.Command{
		Use:     "delete USERNAME",
		Aliases: []string{"rm", "remove"},
		Short:   "Delete a user and everything they own",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			be := backend.FromContext(ctx)

			return be.DeleteUserByUsername(ctx, args[0])
		},
	}

	var page backend.Page
	userListCommand := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List users",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			be := backend.FromContext(ctx)
			users, err := be.Users(ctx, page)
			if err != nil {
				return err
			}

			if len(users) == 0 {
				cmd.Println("No users found")
				return nil
			}

			return tablewriter.Render(
				cmd.OutOrStdout(),
				users,
				[]string{"ID", "Username", "Email", "Admin", "Created"},
				func(u proto.User) ([]string, error) {
					email := u.Email()
					if email == "" {
						email = "-"
					}
					return []string{
						strconv.FormatInt(u.ID(), 10),
						u.Username(),
						email,
						strconv.FormatBool(u.IsAdmin()),
						humanize.Time(u.CreatedAt()),
					}, nil
				},
			)
		},
	}

	userListCommand.Flags().IntVar(&page.Page, "page", 1, "page number")
	userListCommand.Flags().IntVar(&page.PerPage, "per-page", backend.DefaultPerPage, "users per page")

	userSetAdminCommand := &cobra.Command{
		Use:   "set-admin USERNAME [true|false]",
		Short: "Make a user an admin",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			be := backend.FromContext(ctx)
			admin, err := strconv.ParseBool(args[1])
			if err != nil {
				return err
			}

			return be.SetAdmin(ctx, args[0], admin)
		},
	}

	userResetPasswordCommand := &cobra.Command{
		Use:   "reset-password USERNAME PASSWORD",
		Short: "Set a user's password",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			be := backend.FromContext(ctx)
			u, err := be.User(ctx, args[0])
			if err != nil {
				return err
			}

			return be.SetPassword(ctx, u.ID(), args[1])
		},
	}

	userInfoCommand := &cobra.Command{
		Use:   "info USERNAME",
		Short: "Show information about a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			be := backend.FromContext(ctx)
			u, err := be.User(ctx, args[0])
			if err != nil {
				return err
			}

			cmd.Printf("ID: %d\n", u.ID())
			cmd.Printf("Username: %s\n", u.Username())
			cmd.Printf("Email: %s\n", u.Email())
			cmd.Printf("Admin: %t\n", u.IsAdmin())
			cmd.Printf("Created: %s\n", humanize.Time(u.CreatedAt()))
			return nil
		},
	}

	Command.AddCommand(
		userCreateCommand,
		userDeleteCommand,
		userInfoCommand,
		userListCommand,
		userResetPasswordCommand,
		userSetAdminCommand,
	)
}
