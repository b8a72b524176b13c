package column

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/corkboard/internal/cli"
	"github.com/thenoetrevino/corkboard/internal/cli/styles"
)

// ListCmd returns the column list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the active columns of a board",
		Long: `List a board's active columns in display order.

Examples:
  corkboard column list --board=6f1c...
  corkboard column list --board=6f1c... --quiet
`,
		Args: cobra.NoArgs,
		RunE: runList,
	}

	cmd.Flags().String("board", "", "Board ID (required)")
	if err := cmd.MarkFlagRequired("board"); err != nil {
		log.Printf("Error marking flag as required: %v", err)
	}

	cli.AddOutputFlags(cmd)
	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	boardID, _ := cmd.Flags().GetString("board")

	return cli.Run(cmd, func(ctx context.Context, c *cli.CLI, f *cli.OutputFormatter) error {
		columns, err := c.App.Commands.ListColumns(ctx, boardID)
		if err != nil {
			return f.Fail(err)
		}
		if !f.Human() {
			return cli.List(f, columns)
		}

		if len(columns) == 0 {
			fmt.Println("No columns found")
			return nil
		}

		fmt.Println(styles.TitleStyle.Render("Columns:"))
		for i, col := range columns {
			fmt.Printf("  %d. %s %s\n", i+1, col.Name,
				styles.SubtitleStyle.Render(fmt.Sprintf("(ID: %s, order %s)", col.ID, styles.FormatOrder(col.Order))))
		}
		return nil
	})
}
