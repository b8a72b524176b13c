package card

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/corkboard/internal/cli"
	"github.com/thenoetrevino/corkboard/internal/cli/styles"
	"github.com/thenoetrevino/corkboard/internal/commands"
	"github.com/thenoetrevino/corkboard/internal/models"
	"github.com/thenoetrevino/corkboard/internal/ordering"
)

// MoveCmd returns the card move subcommand
func MoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move [id]",
		Short: "Move a card to a column and position",
		Long: `Move a card into a column (possibly its current one) at a new position.

The position is an explicit --order, or is placed relative to a card already
in the target column with --before / --after. With none of these the card
goes after the last active card of the target column.

Examples:
  corkboard card move 3c5d... --column=7e0f...
  corkboard card move 3c5d... --column=7e0f... --before=aa12...
  corkboard card move 3c5d... --column=7e0f... --order=1.5 --json
`,
		Args: cobra.MaximumNArgs(1),
		RunE: runMove,
	}

	cmd.Flags().String("id", "", "Card ID (can also be provided as positional argument)")
	cmd.Flags().String("column", "", "Target column ID (required)")
	if err := cmd.MarkFlagRequired("column"); err != nil {
		log.Printf("Error marking flag as required: %v", err)
	}

	cmd.Flags().Float64("order", 0, "Explicit sort key")
	cmd.Flags().String("before", "", "Place the card just before this card")
	cmd.Flags().String("after", "", "Place the card just after this card")
	cmd.MarkFlagsMutuallyExclusive("order", "before", "after")

	cli.AddOutputFlags(cmd)
	return cmd
}

func runMove(cmd *cobra.Command, args []string) error {
	columnID, _ := cmd.Flags().GetString("column")
	before, _ := cmd.Flags().GetString("before")
	after, _ := cmd.Flags().GetString("after")

	return cli.Run(cmd, func(ctx context.Context, c *cli.CLI, f *cli.OutputFormatter) error {
		id, err := cli.ResolveID(cmd, args)
		if err != nil {
			return f.Fail(err)
		}

		order := cli.OptionalFloat(cmd, "order")
		if order == nil {
			siblings, err := c.App.Commands.ListCardsForColumn(ctx, columnID)
			if err != nil {
				return f.Fail(err)
			}
			key, err := placement(siblings, id, before, after)
			if err != nil {
				return f.Fail(err)
			}
			order = &key
		}

		card, err := c.App.Commands.MoveCard(ctx, commands.MoveCardInput{
			ID:       id,
			ColumnID: columnID,
			Order:    order,
		})
		if err != nil {
			return f.Fail(err)
		}
		if !f.Human() {
			return f.Success(card)
		}

		fmt.Printf("%s Card '%s' moved (order %s)\n", styles.Check(), card.Title, styles.FormatOrder(card.Order))

		siblings, err := c.App.Commands.ListCardsForColumn(ctx, columnID)
		if err != nil {
			return f.Fail(err)
		}
		if crowded(siblings) {
			fmt.Println(styles.WarningStyle.Render(fmt.Sprintf(
				"Card order keys in this column are too close together; run 'corkboard card rebalance --column=%s'", columnID)))
		}
		return nil
	})
}

// placement computes the key for moving card id among siblings.
// An empty before and after appends to the end.
func placement(siblings []*models.Card, id, before, after string) (float64, error) {
	others := make([]*models.Card, 0, len(siblings))
	for _, card := range siblings {
		if card.ID != id {
			others = append(others, card)
		}
	}

	anchor := before
	if anchor == "" {
		anchor = after
	}
	if anchor == "" {
		if len(others) == 0 {
			return ordering.Next(nil), nil
		}
		last := others[len(others)-1].Order
		return ordering.Next(&last), nil
	}

	for i, card := range others {
		if card.ID != anchor {
			continue
		}
		var prev, next *float64
		if before != "" {
			next = &others[i].Order
			if i > 0 {
				prev = &others[i-1].Order
			}
		} else {
			prev = &others[i].Order
			if i+1 < len(others) {
				next = &others[i+1].Order
			}
		}
		return ordering.Between(prev, next), nil
	}
	return 0, &models.NotFoundError{Kind: models.KindCard, ID: anchor}
}

// crowded reports whether the active cards of a column can no longer take a
// key between every pair of neighbours.
func crowded(cards []*models.Card) bool {
	orders := make([]float64, len(cards))
	for i, card := range cards {
		orders[i] = card.Order
	}
	return ordering.NeedsRebalance(orders)
}
