package board

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/corkboard/internal/cli"
	"github.com/thenoetrevino/corkboard/internal/cli/styles"
)

// OpenCmd returns the board open subcommand
func OpenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "open [id]",
		Short: "Mark a board as opened",
		Long:  "Record that a board was opened now, moving it to the top of the board list.",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runOpen,
	}

	cmd.Flags().String("id", "", "Board ID (can also be provided as positional argument)")
	cli.AddOutputFlags(cmd)
	return cmd
}

func runOpen(cmd *cobra.Command, args []string) error {
	return cli.Run(cmd, func(ctx context.Context, c *cli.CLI, f *cli.OutputFormatter) error {
		id, err := cli.ResolveID(cmd, args)
		if err != nil {
			return f.Fail(err)
		}

		if err := c.App.Commands.MarkBoardOpened(ctx, id); err != nil {
			return f.Fail(err)
		}

		board, err := c.App.Commands.GetBoard(ctx, id)
		if err != nil {
			return f.Fail(err)
		}
		if !f.Human() {
			return f.Success(board)
		}

		fmt.Printf("%s Board '%s' opened\n", styles.Check(), board.Name)
		return nil
	})
}
