package card

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/corkboard/internal/cli"
	"github.com/thenoetrevino/corkboard/internal/cli/styles"
)

// RebalanceCmd returns the card rebalance subcommand
func RebalanceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rebalance",
		Short: "Respace card sort keys to 1, 2, 3, ...",
		Long:  "Rewrite the sort keys of a column's cards to whole numbers, keeping their current order.",
		Args:  cobra.NoArgs,
		RunE:  runRebalance,
	}

	cmd.Flags().String("column", "", "Column ID (required)")
	if err := cmd.MarkFlagRequired("column"); err != nil {
		log.Printf("Error marking flag as required: %v", err)
	}

	cli.AddOutputFlags(cmd)
	return cmd
}

func runRebalance(cmd *cobra.Command, args []string) error {
	columnID, _ := cmd.Flags().GetString("column")

	return cli.Run(cmd, func(ctx context.Context, c *cli.CLI, f *cli.OutputFormatter) error {
		changed, err := c.App.Commands.RebalanceCards(ctx, columnID)
		if err != nil {
			return f.Fail(err)
		}

		if f.Quiet {
			fmt.Println(changed)
			return nil
		}
		if f.JSON {
			return f.Success(map[string]int{"changed": changed})
		}

		fmt.Printf("%s Rebalanced cards (%d changed)\n", styles.Check(), changed)
		return nil
	})
}
