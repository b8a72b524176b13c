package column

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/corkboard/internal/cli"
	"github.com/thenoetrevino/corkboard/internal/cli/styles"
	"github.com/thenoetrevino/corkboard/internal/commands"
)

// CreateCmd returns the column create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new column",
		Long: `Create a new column in a board.

Examples:
  # Create column at end (human-readable output)
  corkboard column create --name="Review" --board=6f1c...

  # JSON output for agents
  corkboard column create --name="Review" --board=6f1c... --json

  # Quiet mode for bash capture
  COLUMN_ID=$(corkboard column create --name="Review" --board=6f1c... --quiet)

  # Create column at an explicit position
  corkboard column create --name="Inbox" --board=6f1c... --order=0.5
`,
		Args: cobra.NoArgs,
		RunE: runCreate,
	}

	// Required flags
	cmd.Flags().String("name", "", "Column name (required)")
	if err := cmd.MarkFlagRequired("name"); err != nil {
		log.Printf("Error marking flag as required: %v", err)
	}

	cmd.Flags().String("board", "", "Board ID (required)")
	if err := cmd.MarkFlagRequired("board"); err != nil {
		log.Printf("Error marking flag as required: %v", err)
	}

	// Optional flags
	cmd.Flags().Float64("order", 0, "Sort key (default: after the last column)")

	cli.AddOutputFlags(cmd)
	return cmd
}

func runCreate(cmd *cobra.Command, args []string) error {
	name, _ := cmd.Flags().GetString("name")
	boardID, _ := cmd.Flags().GetString("board")
	order := cli.OptionalFloat(cmd, "order")

	return cli.Run(cmd, func(ctx context.Context, c *cli.CLI, f *cli.OutputFormatter) error {
		column, err := c.App.Commands.CreateColumn(ctx, commands.CreateColumnInput{
			BoardID: boardID,
			Name:    name,
			Order:   order,
		})
		if err != nil {
			return f.Fail(err)
		}
		if !f.Human() {
			return f.Success(column)
		}

		fmt.Printf("%s Column '%s' created successfully (ID: %s)\n", styles.Check(), column.Name, column.ID)
		fmt.Printf("  Order: %s\n", styles.FormatOrder(column.Order))
		return nil
	})
}
