package board

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/corkboard/internal/cli"
	"github.com/thenoetrevino/corkboard/internal/cli/styles"
	"github.com/thenoetrevino/corkboard/internal/commands"
	"github.com/thenoetrevino/corkboard/internal/models"
)

// UpdateCmd returns the board update subcommand
func UpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update [id]",
		Short: "Rename a board",
		Long: `Update a board's fields. Only the flags given are changed.

Examples:
  corkboard board update 6f1c... --name="Renamed"
`,
		Args: cobra.MaximumNArgs(1),
		RunE: runUpdate,
	}

	cmd.Flags().String("id", "", "Board ID (can also be provided as positional argument)")
	cmd.Flags().String("name", "", "New board name")
	cli.AddOutputFlags(cmd)
	return cmd
}

func runUpdate(cmd *cobra.Command, args []string) error {
	return cli.Run(cmd, func(ctx context.Context, c *cli.CLI, f *cli.OutputFormatter) error {
		id, err := cli.ResolveID(cmd, args)
		if err != nil {
			return f.Fail(err)
		}

		patch := models.BoardPatch{Name: cli.OptionalString(cmd, "name")}
		if patch.IsEmpty() {
			return f.Fail(cli.Usage(errors.New("nothing to update: pass --name")))
		}

		board, err := c.App.Commands.UpdateBoard(ctx, commands.UpdateBoardInput{ID: id, Name: patch.Name})
		if err != nil {
			return f.Fail(err)
		}
		if !f.Human() {
			return f.Success(board)
		}

		fmt.Printf("%s Board '%s' updated successfully (ID: %s)\n", styles.Check(), board.Name, board.ID)
		return nil
	})
}
