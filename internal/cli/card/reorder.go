package card

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/corkboard/internal/cli"
	"github.com/thenoetrevino/corkboard/internal/cli/styles"
)

// ReorderCmd returns the card reorder subcommand
func ReorderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reorder <id>...",
		Short: "Put cards in the given order",
		Long: `Assign the sort keys 1, 2, 3, ... to the given cards in argument order.
Cards keep their columns. All updates are applied together; if any card does
not exist none are.

Examples:
  corkboard card reorder 3c5d... aa12... 0b9e...
`,
		Args: cobra.MinimumNArgs(1),
		RunE: runReorder,
	}

	cli.AddOutputFlags(cmd)
	return cmd
}

func runReorder(cmd *cobra.Command, args []string) error {
	updates := cli.SequentialOrders(args)

	return cli.Run(cmd, func(ctx context.Context, c *cli.CLI, f *cli.OutputFormatter) error {
		if err := c.App.Commands.BatchUpdateCardOrders(ctx, updates); err != nil {
			return f.Fail(err)
		}

		if f.Quiet {
			return nil
		}
		if f.JSON {
			return f.Success(updates)
		}

		fmt.Printf("%s Reordered %d cards\n", styles.Check(), len(updates))
		return nil
	})
}
