package card

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/corkboard/internal/cli"
	"github.com/thenoetrevino/corkboard/internal/cli/styles"
	"github.com/thenoetrevino/corkboard/internal/commands"
)

// CreateCmd returns the card create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new card",
		Long: `Create a new card in a column. Without --order the card goes after the last one.

Examples:
  # Create a card (human-readable output)
  corkboard card create --column=91ab... --title="Write docs"

  # With a description, JSON output for agents
  corkboard card create --column=91ab... --title="Write docs" --description="README first" --json

  # Quiet mode for bash capture
  CARD_ID=$(corkboard card create --column=91ab... --title="Write docs" --quiet)
`,
		Args: cobra.NoArgs,
		RunE: runCreate,
	}

	// Required flags
	cmd.Flags().String("title", "", "Card title (required)")
	if err := cmd.MarkFlagRequired("title"); err != nil {
		log.Printf("Error marking flag as required: %v", err)
	}

	cmd.Flags().String("column", "", "Column ID (required)")
	if err := cmd.MarkFlagRequired("column"); err != nil {
		log.Printf("Error marking flag as required: %v", err)
	}

	// Optional flags
	cmd.Flags().String("description", "", "Card description")
	cmd.Flags().Float64("order", 0, "Sort key (default: after the last card)")

	cli.AddOutputFlags(cmd)
	return cmd
}

func runCreate(cmd *cobra.Command, args []string) error {
	title, _ := cmd.Flags().GetString("title")
	columnID, _ := cmd.Flags().GetString("column")

	in := commands.CreateCardInput{
		ColumnID:    columnID,
		Title:       title,
		Description: cli.OptionalString(cmd, "description"),
		Order:       cli.OptionalFloat(cmd, "order"),
	}

	return cli.Run(cmd, func(ctx context.Context, c *cli.CLI, f *cli.OutputFormatter) error {
		card, err := c.App.Commands.CreateCard(ctx, in)
		if err != nil {
			return f.Fail(err)
		}
		if !f.Human() {
			return f.Success(card)
		}

		fmt.Printf("%s Card '%s' created successfully (ID: %s)\n", styles.Check(), card.Title, card.ID)
		fmt.Printf("  Order: %s\n", styles.FormatOrder(card.Order))
		return nil
	})
}
