package column

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/corkboard/internal/cli"
	"github.com/thenoetrevino/corkboard/internal/cli/styles"
	"github.com/thenoetrevino/corkboard/internal/models"
)

// ShowCmd returns the column show subcommand
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [id]",
		Short: "Show a column and its active cards",
		Long:  "Display a column, archived or not, together with its active cards in display order.",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runShow,
	}

	cmd.Flags().String("id", "", "Column ID (can also be provided as positional argument)")
	cli.AddOutputFlags(cmd)
	return cmd
}

type columnView struct {
	Column *models.Column `json:"column"`
	Cards  []*models.Card `json:"cards"`
}

func (v columnView) GetID() string {
	return v.Column.ID
}

func runShow(cmd *cobra.Command, args []string) error {
	return cli.Run(cmd, func(ctx context.Context, c *cli.CLI, f *cli.OutputFormatter) error {
		id, err := cli.ResolveID(cmd, args)
		if err != nil {
			return f.Fail(err)
		}

		column, err := c.App.Commands.GetColumn(ctx, id)
		if err != nil {
			return f.Fail(err)
		}
		if column == nil {
			return f.Fail(&models.NotFoundError{Kind: models.KindColumn, ID: id})
		}

		cards, err := c.App.Commands.ListCardsForColumn(ctx, id)
		if err != nil {
			return f.Fail(err)
		}
		if !f.Human() {
			return f.Success(columnView{Column: column, Cards: cards})
		}

		fmt.Println(styles.RenderColumnHeader(column, len(cards)))
		fmt.Println(styles.Field("ID", column.ID))
		fmt.Println(styles.Field("Order", styles.FormatOrder(column.Order)))
		if column.Archived {
			fmt.Println(styles.ArchivedStyle.Render("archived"))
		}
		for _, card := range cards {
			fmt.Println("  " + styles.RenderCardLine(card))
		}
		return nil
	})
}
