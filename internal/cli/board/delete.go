package board

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/corkboard/internal/cli"
	"github.com/thenoetrevino/corkboard/internal/cli/styles"
)

// DeleteCmd returns the board delete subcommand
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a board with all its columns and cards",
		Long: `Delete a board. Its columns and their cards are removed with it.
Deleting a board that does not exist succeeds.

Examples:
  corkboard board delete 6f1c...
`,
		Args: cobra.MaximumNArgs(1),
		RunE: runDelete,
	}

	cmd.Flags().String("id", "", "Board ID (can also be provided as positional argument)")
	cli.AddOutputFlags(cmd)
	return cmd
}

func runDelete(cmd *cobra.Command, args []string) error {
	return cli.Run(cmd, func(ctx context.Context, c *cli.CLI, f *cli.OutputFormatter) error {
		id, err := cli.ResolveID(cmd, args)
		if err != nil {
			return f.Fail(err)
		}

		if err := c.App.Commands.DeleteBoard(ctx, id); err != nil {
			return f.Fail(err)
		}

		if f.Quiet {
			return nil
		}
		if f.JSON {
			return f.Success(map[string]string{"id": id})
		}

		fmt.Printf("%s Board %s deleted\n", styles.Check(), id)
		return nil
	})
}
