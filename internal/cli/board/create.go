package board

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/corkboard/internal/cli"
	"github.com/thenoetrevino/corkboard/internal/cli/styles"
	"github.com/thenoetrevino/corkboard/internal/commands"
)

// CreateCmd returns the board create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new board",
		Long: `Create a new, empty board.

Examples:
  # Create a board (human-readable output)
  corkboard board create --name="My Project"

  # JSON output for agents
  corkboard board create --name="My Project" --json

  # Quiet mode for bash capture
  BOARD_ID=$(corkboard board create --name="My Project" --quiet)
`,
		Args: cobra.NoArgs,
		RunE: runCreate,
	}

	cmd.Flags().String("name", "", "Board name (required)")
	if err := cmd.MarkFlagRequired("name"); err != nil {
		log.Printf("Error marking flag as required: %v", err)
	}

	cli.AddOutputFlags(cmd)
	return cmd
}

func runCreate(cmd *cobra.Command, args []string) error {
	name, _ := cmd.Flags().GetString("name")

	return cli.Run(cmd, func(ctx context.Context, c *cli.CLI, f *cli.OutputFormatter) error {
		board, err := c.App.Commands.CreateBoard(ctx, commands.CreateBoardInput{Name: name})
		if err != nil {
			return f.Fail(err)
		}
		if !f.Human() {
			return f.Success(board)
		}

		fmt.Printf("%s Board '%s' created successfully (ID: %s)\n", styles.Check(), board.Name, board.ID)
		return nil
	})
}
