package remote

import (
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/duration"
	"github.com/caarlos0/tablewriter"
	"github.com/charmbracelet/kanban/pkg/api"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func apiKeyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "api-key",
		Aliases:           []string{"api-keys", "key", "keys"},
		Short:             "Manage API keys",
		PersistentPreRunE: InitClientContext,
	}

	var expiresIn string
	createCmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create an API key",
		Long:  "Create an API key. The key is only printed once.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			var ttl time.Duration
			if expiresIn != "" {
				d, err := duration.Parse(expiresIn)
				if err != nil {
					return err
				}
				ttl = d
			}

			k, err := ClientFromContext(ctx).CreateAPIKey(ctx, strings.Join(args, " "), ttl)
			if err != nil {
				return err
			}

			notice := "API key created"
			if k.ExpiresAt != nil {
				notice += " (expires " + humanize.Time(*k.ExpiresAt) + ")"
			}

			cmd.PrintErrln(notice)
			cmd.Println(k.Key)
			return nil
		},
	}
	createCmd.Flags().StringVar(&expiresIn, "expires-in", "", "key expiration, rounded up to whole days (e.g. 1y, 3mo, 2w, 5d)")

	listCmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List your API keys",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			keys, err := ClientFromContext(ctx).APIKeys(ctx)
			if err != nil {
				return err
			}

			if len(keys) == 0 {
				cmd.Println("No API keys found")
				return nil
			}

			now := time.Now()
			return tablewriter.Render(
				cmd.OutOrStdout(),
				keys,
				[]string{"ID", "Name", "Prefix", "Active", "Expires", "Last Used"},
				func(k api.APIKey) ([]string, error) {
					expires := "-"
					if k.ExpiresAt != nil {
						if now.After(*k.ExpiresAt) {
							expires = "expired"
						} else {
							expires = humanize.Time(*k.ExpiresAt)
						}
					}
					lastUsed := "never"
					if k.LastUsedAt != nil {
						lastUsed = humanize.Time(*k.LastUsedAt)
					}

					return []string{
						strconv.FormatInt(k.ID, 10),
						k.Name,
						k.Prefix,
						strconv.FormatBool(k.IsActive),
						expires,
						lastUsed,
					}, nil
				},
			)
		},
	}

	revokeCmd := &cobra.Command{
		Use:     "revoke ID",
		Aliases: []string{"deactivate"},
		Short:   "Deactivate an API key",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			if err := ClientFromContext(ctx).RevokeAPIKey(ctx, id); err != nil {
				return err
			}

			cmd.Println("API key revoked")
			return nil
		},
	}

	activateCmd := &cobra.Command{
		Use:   "activate ID",
		Short: "Reactivate an API key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			if err := ClientFromContext(ctx).ActivateAPIKey(ctx, id); err != nil {
				return err
			}

			cmd.Println("API key activated")
			return nil
		},
	}

	cmd.AddCommand(createCmd, listCmd, revokeCmd, activateCmd)

	return cmd
}
