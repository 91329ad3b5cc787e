package remote

import (
	"strconv"
	"strings"

	"github.com/caarlos0/tablewriter"
	"github.com/charmbracelet/kanban/pkg/api"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func columnCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "column",
		Aliases:           []string{"columns", "col"},
		Short:             "Manage board columns",
		PersistentPreRunE: InitClientContext,
	}

	createCmd := &cobra.Command{
		Use:   "create BOARD_ID NAME POSITION",
		Short: "Add a column to a board",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			boardID, err := parseID(args[0])
			if err != nil {
				return err
			}
			pos, err := parseInt(args[2])
			if err != nil {
				return err
			}

			col, err := ClientFromContext(ctx).CreateColumn(ctx, boardID, args[1], pos)
			if err != nil {
				return err
			}

			cmd.Printf("Column created with id=%d\n", col.ID)
			return nil
		},
	}

	updateCmd := &cobra.Command{
		Use:   "update ID NAME POSITION",
		Short: "Rename or move a column",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			pos, err := parseInt(args[2])
			if err != nil {
				return err
			}

			if _, err := ClientFromContext(ctx).UpdateColumn(ctx, id, args[1], pos); err != nil {
				return err
			}

			cmd.Println("Column updated")
			return nil
		},
	}

	deleteCmd := &cobra.Command{
		Use:     "delete ID",
		Aliases: []string{"rm", "remove"},
		Short:   "Delete a column and its cards",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			if err := ClientFromContext(ctx).DeleteColumn(ctx, id); err != nil {
				return err
			}

			cmd.Println("Column deleted")
			return nil
		},
	}

	cmd.AddCommand(createCmd, updateCmd, deleteCmd)

	return cmd
}

func cardCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "card",
		Aliases:           []string{"cards"},
		Short:             "Manage cards",
		PersistentPreRunE: InitClientContext,
	}

	cmd.AddCommand(
		cardCreateCommand(),
		cardUpdateCommand(),
		cardDeleteCommand(),
	)

	return cmd
}

func cardFlags(cmd *cobra.Command, desc *string, pos *int) {
	cmd.Flags().StringVarP(desc, "description", "d", "", "card description, in markdown")
	cmd.Flags().IntVarP(pos, "position", "p", 0, "position in the column")
}

func cardRequest(cmd *cobra.Command, title, desc string, pos int) api.CardRequest {
	req := api.CardRequest{Title: title, Position: pos}
	if cmd.Flags().Changed("description") {
		req.Description = &desc
	}
	return req
}

func cardCreateCommand() *cobra.Command {
	var (
		desc string
		pos  int
	)
	cmd := &cobra.Command{
		Use:   "create COLUMN_ID TITLE",
		Short: "Add a card to a column",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			colID, err := parseID(args[0])
			if err != nil {
				return err
			}

			req := cardRequest(cmd, strings.Join(args[1:], " "), desc, pos)
			req.ColumnID = colID
			card, err := ClientFromContext(ctx).CreateCard(ctx, req)
			if err != nil {
				return err
			}

			cmd.Printf("Card created with id=%d\n", card.ID)
			return nil
		},
	}

	cardFlags(cmd, &desc, &pos)

	return cmd
}

func cardUpdateCommand() *cobra.Command {
	var (
		desc   string
		pos    int
		column int64
	)
	cmd := &cobra.Command{
		Use:   "update ID TITLE",
		Short: "Replace a card, optionally moving it to another column",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			req := cardRequest(cmd, strings.Join(args[1:], " "), desc, pos)
			req.ColumnID = column
			if _, err := ClientFromContext(ctx).UpdateCard(ctx, id, req); err != nil {
				return err
			}

			cmd.Println("Card updated")
			return nil
		},
	}

	cardFlags(cmd, &desc, &pos)
	cmd.Flags().Int64VarP(&column, "column", "c", 0, "move the card to this column")

	return cmd
}

func cardDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "delete ID",
		Aliases: []string{"rm", "remove"},
		Short:   "Delete a card",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			if err := ClientFromContext(ctx).DeleteCard(ctx, id); err != nil {
				return err
			}

			cmd.Println("Card deleted")
			return nil
		},
	}
}

func commentCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "comment",
		Aliases:           []string{"comments"},
		Short:             "Manage card comments",
		PersistentPreRunE: InitClientContext,
	}

	listCmd := &cobra.Command{
		Use:     "list CARD_ID",
		Aliases: []string{"ls"},
		Short:   "List the comments of a card",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			comments, err := ClientFromContext(ctx).Comments(ctx, id)
			if err != nil {
				return err
			}

			if len(comments) == 0 {
				cmd.Println("No comments found")
				return nil
			}

			return tablewriter.Render(
				cmd.OutOrStdout(),
				comments,
				[]string{"ID", "Author", "Comment", "Created"},
				func(c api.Comment) ([]string, error) {
					return []string{
						strconv.FormatInt(c.ID, 10),
						c.Username,
						c.Body,
						humanize.Time(c.CreatedAt),
					}, nil
				},
			)
		},
	}

	addCmd := &cobra.Command{
		Use:   "add CARD_ID BODY",
		Short: "Comment on a card",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			c, err := ClientFromContext(ctx).AddComment(ctx, id, strings.Join(args[1:], " "))
			if err != nil {
				return err
			}

			cmd.Printf("Comment added with id=%d\n", c.ID)
			return nil
		},
	}

	deleteCmd := &cobra.Command{
		Use:     "delete ID",
		Aliases: []string{"rm", "remove"},
		Short:   "Delete a comment",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			if err := ClientFromContext(ctx).DeleteComment(ctx, id); err != nil {
				return err
			}

			cmd.Println("Comment deleted")
			return nil
		},
	}

	cmd.AddCommand(listCmd, addCmd, deleteCmd)

	return cmd
}
