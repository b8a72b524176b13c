package column

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/corkboard/internal/cli"
	"github.com/thenoetrevino/corkboard/internal/cli/styles"
)

// ReorderCmd returns the column reorder subcommand
func ReorderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reorder <id>...",
		Short: "Put columns in the given order",
		Long: `Assign the sort keys 1, 2, 3, ... to the given columns in argument order.
All updates are applied together; if any column does not exist none are.

Examples:
  corkboard column reorder 91ab... 22cd... 7e0f...
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
		if err := c.App.Commands.ReorderColumns(ctx, updates); err != nil {
			return f.Fail(err)
		}

		if f.Quiet {
			return nil
		}
		if f.JSON {
			return f.Success(updates)
		}

		fmt.Printf("%s Reordered %d columns\n", styles.Check(), len(updates))
		return nil
	})
}
