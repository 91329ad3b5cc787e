package remote

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/caarlos0/tablewriter"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/kanban/pkg/api"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/muesli/reflow/truncate"
	"github.com/spf13/cobra"
)

const (
	columnWidth  = 28
	markdownWrap = 80
)

var (
	boardTitleStyle = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	columnStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1).Width(columnWidth)
	columnNameStyle = lipgloss.NewStyle().Bold(true)
	cardIDStyle     = lipgloss.NewStyle().Faint(true)
)

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

func parseInt(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	return n, nil
}

func boardCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "board",
		Aliases:           []string{"boards"},
		Short:             "Manage boards",
		PersistentPreRunE: InitClientContext,
	}

	cmd.AddCommand(
		boardListCommand(),
		boardCreateCommand(),
		boardShowCommand(),
		boardRenameCommand(),
		boardDeleteCommand(),
		boardShareCommand(),
	)

	return cmd
}

func boardListCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List the boards you can see",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			boards, err := ClientFromContext(ctx).Boards(ctx)
			if err != nil {
				return err
			}

			if len(boards) == 0 {
				cmd.Println("No boards found")
				return nil
			}

			return tablewriter.Render(
				cmd.OutOrStdout(),
				boards,
				[]string{"ID", "Name", "Access", "Shared", "Updated"},
				func(b api.Board) ([]string, error) {
					return []string{
						strconv.FormatInt(b.ID, 10),
						b.Name,
						b.Access.String(),
						sharing(b),
						humanize.Time(b.UpdatedAt),
					}, nil
				},
			)
		},
	}
}

func sharing(b api.Board) string {
	var parts []string
	if b.SharedTeamID != nil {
		parts = append(parts, fmt.Sprintf("team %d", *b.SharedTeamID))
	}
	if b.IsPublicToOrg && b.OrganizationID != nil {
		parts = append(parts, fmt.Sprintf("org %d", *b.OrganizationID))
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, ", ")
}

func boardCreateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "create NAME",
		Short: "Create a board with the default columns",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			b, err := ClientFromContext(ctx).CreateBoard(ctx, strings.Join(args, " "))
			if err != nil {
				return err
			}

			cmd.Printf("Board created with id=%d\n", b.ID)
			return nil
		},
	}
}

func boardShowCommand() *cobra.Command {
	var long bool
	cmd := &cobra.Command{
		Use:   "show ID",
		Short: "Show a board with its columns and cards",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			b, err := ClientFromContext(ctx).Board(ctx, id)
			if err != nil {
				return err
			}

			out, err := renderBoard(b, long)
			if err != nil {
				return err
			}

			cmd.Println(out)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&long, "long", "l", false, "also render card descriptions")

	return cmd
}

// renderBoard lays the columns out side by side. With long set, card
// descriptions follow as rendered markdown.
func renderBoard(b api.BoardDetail, long bool) (string, error) {
	cols := append([]api.Column(nil), b.Columns...)
	sort.SliceStable(cols, func(i, j int) bool { return cols[i].Position < cols[j].Position })

	boxes := make([]string, 0, len(cols))
	for _, col := range cols {
		var sb strings.Builder
		sb.WriteString(columnNameStyle.Render(fmt.Sprintf("%s (%d)", col.Name, len(col.Cards))))
		for _, card := range col.Cards {
			id := fmt.Sprintf("#%d", card.ID)
			title := truncate.StringWithTail(card.Title, uint(columnWidth-3-len(id)), "…")
			sb.WriteString("\n" + cardIDStyle.Render(id) + " " + title)
		}
		boxes = append(boxes, columnStyle.Render(sb.String()))
	}

	out := boardTitleStyle.Render("Board: "+b.Name) + "\n" +
		lipgloss.JoinHorizontal(lipgloss.Top, boxes...)
	if !long {
		return out, nil
	}

	var md strings.Builder
	for _, col := range cols {
		for _, card := range col.Cards {
			if card.Description == nil || *card.Description == "" {
				continue
			}
			fmt.Fprintf(&md, "## #%d %s\n\n%s\n\n", card.ID, card.Title, *card.Description)
		}
	}
	if md.Len() == 0 {
		return out, nil
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("notty"),
		glamour.WithWordWrap(markdownWrap),
	)
	if err != nil {
		return "", err
	}
	desc, err := r.Render(md.String())
	if err != nil {
		return "", err
	}

	return out + "\n" + desc, nil
}

func boardRenameCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rename ID NAME",
		Short: "Rename a board",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			if _, err := ClientFromContext(ctx).RenameBoard(ctx, id, strings.Join(args[1:], " ")); err != nil {
				return err
			}

			cmd.Println("Board renamed")
			return nil
		},
	}
}

func boardDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "delete ID",
		Aliases: []string{"rm", "remove"},
		Short:   "Delete a board and everything on it",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			if err := ClientFromContext(ctx).DeleteBoard(ctx, id); err != nil {
				return err
			}

			cmd.Println("Board deleted")
			return nil
		},
	}
}

func boardShareCommand() *cobra.Command {
	var (
		team   int64
		org    int64
		public bool
	)
	cmd := &cobra.Command{
		Use:   "share ID",
		Short: "Share a board with a team or its organization",
		Long: "Share a board with a team or its organization. The board's sharing is replaced: " +
			"run without flags to make it private again.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			req := api.ShareRequest{IsPublicToOrg: public}
			if team > 0 {
				req.TeamID = &team
			}
			if org > 0 {
				req.OrganizationID = &org
			}

			b, err := ClientFromContext(ctx).ShareBoard(ctx, id, req)
			if err != nil {
				return err
			}

			cmd.Printf("Board shared: %s\n", sharing(b))
			return nil
		},
	}

	cmd.Flags().Int64VarP(&team, "team", "t", 0, "team to share the board with")
	cmd.Flags().Int64VarP(&org, "org", "o", 0, "organization of the board")
	cmd.Flags().BoolVarP(&public, "public", "p", false, "make the board visible to the whole organization")

	return cmd
}
