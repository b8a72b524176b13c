package card

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/corkboard/internal/cli"
	"github.com/thenoetrevino/corkboard/internal/cli/styles"
	"github.com/thenoetrevino/corkboard/internal/models"
)

// ListCmd returns the card list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List active cards of a board or a column",
		Long: `List active cards in display order. Pass exactly one of --board or --column.

Examples:
  corkboard card list --column=91ab...
  corkboard card list --board=6f1c... --json
`,
		Args: cobra.NoArgs,
		RunE: runList,
	}

	cmd.Flags().String("board", "", "Board ID")
	cmd.Flags().String("column", "", "Column ID")
	cmd.MarkFlagsMutuallyExclusive("board", "column")
	cmd.MarkFlagsOneRequired("board", "column")

	cli.AddOutputFlags(cmd)
	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	boardID, _ := cmd.Flags().GetString("board")
	columnID, _ := cmd.Flags().GetString("column")

	return cli.Run(cmd, func(ctx context.Context, c *cli.CLI, f *cli.OutputFormatter) error {
		var (
			cards []*models.Card
			err   error
		)
		switch {
		case boardID != "":
			cards, err = c.App.Commands.ListCardsForBoard(ctx, boardID)
		case columnID != "":
			cards, err = c.App.Commands.ListCardsForColumn(ctx, columnID)
		default:
			err = cli.Usage(errors.New("pass --board or --column"))
		}
		if err != nil {
			return f.Fail(err)
		}
		if !f.Human() {
			return cli.List(f, cards)
		}

		if len(cards) == 0 {
			fmt.Println("No cards found")
			return nil
		}

		fmt.Println(styles.TitleStyle.Render("Cards:"))
		for _, card := range cards {
			fmt.Printf("  %s %s\n", styles.RenderCardLine(card), styles.SubtitleStyle.Render(card.ID))
		}
		return nil
	})
}
