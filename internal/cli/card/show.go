package card

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/corkboard/internal/cli"
	"github.com/thenoetrevino/corkboard/internal/cli/styles"
	"github.com/thenoetrevino/corkboard/internal/models"
)

// ShowCmd returns the card show subcommand
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [id]",
		Short: "Show card details",
		Long:  "Display all details of a card including its column, order, description and timestamps.",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runShow,
	}

	cmd.Flags().String("id", "", "Card ID (can also be provided as positional argument)")
	cli.AddOutputFlags(cmd)
	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {
	return cli.Run(cmd, func(ctx context.Context, c *cli.CLI, f *cli.OutputFormatter) error {
		id, err := cli.ResolveID(cmd, args)
		if err != nil {
			return f.Fail(err)
		}

		card, err := c.App.Commands.GetCard(ctx, id)
		if err != nil {
			return f.Fail(err)
		}
		if card == nil {
			return f.Fail(&models.NotFoundError{Kind: models.KindCard, ID: id})
		}
		if !f.Human() {
			return f.Success(card)
		}

		columnName := card.ColumnID
		if column, err := c.App.Commands.GetColumn(ctx, card.ColumnID); err == nil && column != nil {
			columnName = column.Name
		}

		fmt.Println(styles.RenderCardDetail(card, columnName))
		return nil
	})
}
