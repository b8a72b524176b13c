package column

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/corkboard/internal/cli"
	"github.com/thenoetrevino/corkboard/internal/cli/styles"
)

// RebalanceCmd returns the column rebalance subcommand
func RebalanceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rebalance",
		Short: "Respace column sort keys to 1, 2, 3, ...",
		Long: `Rewrite the sort keys of a board's columns to whole numbers, keeping their
current order. Useful after many insertions between neighbours.

Examples:
  corkboard column rebalance --board=6f1c...
`,
		Args: cobra.NoArgs,
		RunE: runRebalance,
	}

	cmd.Flags().String("board", "", "Board ID (required)")
	if err := cmd.MarkFlagRequired("board"); err != nil {
		log.Printf("Error marking flag as required: %v", err)
	}

	cli.AddOutputFlags(cmd)
	return cmd
}

func runRebalance(cmd *cobra.Command, args []string) error {
	boardID, _ := cmd.Flags().GetString("board")

	return cli.Run(cmd, func(ctx context.Context, c *cli.CLI, f *cli.OutputFormatter) error {
		changed, err := c.App.Commands.RebalanceColumns(ctx, boardID)
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

		fmt.Printf("%s Rebalanced columns (%d changed)\n", styles.Check(), changed)
		return nil
	})
}
