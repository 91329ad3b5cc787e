package remote

import (
	"strconv"
	"strings"

	"github.com/caarlos0/tablewriter"
	"github.com/charmbracelet/kanban/pkg/api"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func renderMembers(cmd *cobra.Command, members []api.Member) error {
	if len(members) == 0 {
		cmd.Println("No members found")
		return nil
	}

	return tablewriter.Render(
		cmd.OutOrStdout(),
		members,
		[]string{"User ID", "Username", "Joined"},
		func(m api.Member) ([]string, error) {
			return []string{
				strconv.FormatInt(m.UserID, 10),
				m.Username,
				humanize.Time(m.JoinedAt),
			}, nil
		},
	)
}

func orgCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "org",
		Aliases:           []string{"orgs", "organization", "organizations"},
		Short:             "Manage organizations",
		PersistentPreRunE: InitClientContext,
	}

	var slug string
	createCmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create an organization you own",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			o, err := ClientFromContext(ctx).CreateOrg(ctx, strings.Join(args, " "), slug)
			if err != nil {
				return err
			}

			cmd.Printf("Organization created with id=%d slug=%s\n", o.ID, o.Slug)
			return nil
		},
	}
	createCmd.Flags().StringVar(&slug, "slug", "", "organization slug, derived from the name when empty")

	listCmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List the organizations you belong to",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			orgs, err := ClientFromContext(ctx).Orgs(ctx)
			if err != nil {
				return err
			}

			if len(orgs) == 0 {
				cmd.Println("No organizations found")
				return nil
			}

			return tablewriter.Render(
				cmd.OutOrStdout(),
				orgs,
				[]string{"ID", "Name", "Slug", "Owner ID"},
				func(o api.Organization) ([]string, error) {
					return []string{
						strconv.FormatInt(o.ID, 10),
						o.Name,
						o.Slug,
						strconv.FormatInt(o.OwnerID, 10),
					}, nil
				},
			)
		},
	}

	membersCmd := &cobra.Command{
		Use:   "members ORG_ID",
		Short: "List the members of an organization",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			members, err := ClientFromContext(ctx).OrgMembers(ctx, id)
			if err != nil {
				return err
			}

			return renderMembers(cmd, members)
		},
	}

	addMemberCmd := &cobra.Command{
		Use:   "add-member ORG_ID USERNAME",
		Short: "Add a user to an organization",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			if _, err := ClientFromContext(ctx).AddOrgMember(ctx, id, args[1]); err != nil {
				return err
			}

			cmd.Printf("Added %s\n", args[1])
			return nil
		},
	}

	removeMemberCmd := &cobra.Command{
		Use:   "remove-member ORG_ID USER_ID",
		Short: "Remove a user from an organization",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			userID, err := parseID(args[1])
			if err != nil {
				return err
			}

			if err := ClientFromContext(ctx).RemoveOrgMember(ctx, id, userID); err != nil {
				return err
			}

			cmd.Println("Member removed")
			return nil
		},
	}

	cmd.AddCommand(createCmd, listCmd, membersCmd, addMemberCmd, removeMemberCmd)

	return cmd
}

func teamCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "team",
		Aliases:           []string{"teams"},
		Short:             "Manage teams",
		PersistentPreRunE: InitClientContext,
	}

	createCmd := &cobra.Command{
		Use:   "create ORG_ID NAME",
		Short: "Create a team in an organization",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			t, err := ClientFromContext(ctx).CreateTeam(ctx, id, strings.Join(args[1:], " "))
			if err != nil {
				return err
			}

			cmd.Printf("Team created with id=%d\n", t.ID)
			return nil
		},
	}

	listCmd := &cobra.Command{
		Use:     "list ORG_ID",
		Aliases: []string{"ls"},
		Short:   "List the teams of an organization",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			teams, err := ClientFromContext(ctx).Teams(ctx, id)
			if err != nil {
				return err
			}

			if len(teams) == 0 {
				cmd.Println("No teams found")
				return nil
			}

			return tablewriter.Render(
				cmd.OutOrStdout(),
				teams,
				[]string{"ID", "Name", "Created"},
				func(t api.Team) ([]string, error) {
					return []string{
						strconv.FormatInt(t.ID, 10),
						t.Name,
						humanize.Time(t.CreatedAt),
					}, nil
				},
			)
		},
	}

	membersCmd := &cobra.Command{
		Use:   "members TEAM_ID",
		Short: "List the members of a team",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			members, err := ClientFromContext(ctx).TeamMembers(ctx, id)
			if err != nil {
				return err
			}

			return renderMembers(cmd, members)
		},
	}

	addMemberCmd := &cobra.Command{
		Use:   "add-member TEAM_ID USERNAME",
		Short: "Add an organization member to a team",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			if _, err := ClientFromContext(ctx).AddTeamMember(ctx, id, args[1]); err != nil {
				return err
			}

			cmd.Printf("Added %s\n", args[1])
			return nil
		},
	}

	cmd.AddCommand(createCmd, listCmd, membersCmd, addMemberCmd)

	return cmd
}

func inviteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "invite",
		Aliases:           []string{"invites"},
		Short:             "Invite users to organizations",
		PersistentPreRunE: InitClientContext,
	}

	var email string
	createCmd := &cobra.Command{
		Use:   "create ORG_ID",
		Short: "Create an invite to an organization",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			inv, err := ClientFromContext(ctx).CreateInvite(ctx, id, email)
			if err != nil {
				return err
			}

			if inv.ExpiresAt != nil {
				cmd.PrintErrln("Invite created (expires " + humanize.Time(*inv.ExpiresAt) + ")")
			}
			cmd.Println(inv.Token)
			return nil
		},
	}
	createCmd.Flags().StringVarP(&email, "email", "e", "", "email the invite is meant for")

	acceptCmd := &cobra.Command{
		Use:   "accept TOKEN",
		Short: "Join the organization of an invite",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c := ClientFromContext(ctx)
			info, err := c.InviteInfo(ctx, args[0])
			if err != nil {
				return err
			}

			if _, err := c.AcceptInvite(ctx, args[0]); err != nil {
				return err
			}

			cmd.Printf("Joined %s\n", info.OrganizationName)
			return nil
		},
	}

	cmd.AddCommand(createCmd, acceptCmd)

	return cmd
}
