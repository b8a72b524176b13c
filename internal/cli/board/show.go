package board

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/corkboard/internal/cli"
	"github.com/thenoetrevino/corkboard/internal/cli/styles"
	"github.com/thenoetrevino/corkboard/internal/models"
)

// ShowCmd returns the board show subcommand
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [id]",
		Short: "Show a board with its columns and cards",
		Long: `Display a board with its active columns and their active cards.

Examples:
  corkboard board show 6f1c...
  corkboard board show --id=6f1c... --json
`,
		Args: cobra.MaximumNArgs(1),
		RunE: runShow,
	}

	cmd.Flags().String("id", "", "Board ID (can also be provided as positional argument)")
	cli.AddOutputFlags(cmd)
	return cmd
}

// boardView is the JSON shape of a board with its contents
type boardView struct {
	Board   *models.Board    `json:"board"`
	Columns []*models.Column `json:"columns"`
	Cards   []*models.Card   `json:"cards"`
}

func (v boardView) GetID() string {
	return v.Board.ID
}

func runShow(cmd *cobra.Command, args []string) error {
	return cli.Run(cmd, func(ctx context.Context, c *cli.CLI, f *cli.OutputFormatter) error {
		id, err := cli.ResolveID(cmd, args)
		if err != nil {
			return f.Fail(err)
		}

		board, err := c.App.Commands.GetBoard(ctx, id)
		if err != nil {
			return f.Fail(err)
		}
		if board == nil {
			return f.Fail(&models.NotFoundError{Kind: models.KindBoard, ID: id})
		}

		columns, err := c.App.Commands.ListColumns(ctx, id)
		if err != nil {
			return f.Fail(err)
		}
		cards, err := c.App.Commands.ListCardsForBoard(ctx, id)
		if err != nil {
			return f.Fail(err)
		}

		view := boardView{Board: board, Columns: columns, Cards: cards}
		if !f.Human() {
			return f.Success(view)
		}

		byColumn := make(map[string][]*models.Card, len(columns))
		for _, card := range cards {
			byColumn[card.ColumnID] = append(byColumn[card.ColumnID], card)
		}

		fmt.Println(styles.TitleStyle.Render(board.Name))
		fmt.Println(styles.SubtitleStyle.Render(board.ID))
		if len(columns) == 0 {
			fmt.Println("No columns yet")
			return nil
		}
		for _, column := range columns {
			fmt.Println(styles.RenderColumnHeader(column, len(byColumn[column.ID])))
			for _, card := range byColumn[column.ID] {
				fmt.Println("  " + styles.RenderCardLine(card))
			}
		}
		return nil
	})
}
