package card

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

// UpdateCmd returns the card update subcommand
func UpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update [id]",
		Short: "Update a card",
		Long: `Update a card's title, description, order or archived state.
Only the flags given are changed.

Examples:
  corkboard card update 3c5d... --title="Write better docs"
  corkboard card update 3c5d... --description=""
  corkboard card update 3c5d... --archive --json
`,
		Args: cobra.MaximumNArgs(1),
		RunE: runUpdate,
	}

	cmd.Flags().String("id", "", "Card ID (can also be provided as positional argument)")
	cmd.Flags().String("title", "", "New card title")
	cmd.Flags().String("description", "", "New card description")
	cmd.Flags().Float64("order", 0, "New sort key")
	cmd.Flags().Bool("archive", false, "Hide the card from active listings")
	cmd.Flags().Bool("unarchive", false, "Show the card in active listings again")
	cli.AddOutputFlags(cmd)
	return cmd
}

func runUpdate(cmd *cobra.Command, args []string) error {
	return cli.Run(cmd, func(ctx context.Context, c *cli.CLI, f *cli.OutputFormatter) error {
		id, err := cli.ResolveID(cmd, args)
		if err != nil {
			return f.Fail(err)
		}
		archived, err := cli.ArchiveFlag(cmd)
		if err != nil {
			return f.Fail(err)
		}

		patch := models.CardPatch{
			Title:       cli.OptionalString(cmd, "title"),
			Description: cli.OptionalString(cmd, "description"),
			Order:       cli.OptionalFloat(cmd, "order"),
			Archived:    archived,
		}
		if patch.IsEmpty() {
			return f.Fail(cli.Usage(errors.New("nothing to update: pass --title, --description, --order, --archive or --unarchive")))
		}

		card, err := c.App.Commands.UpdateCard(ctx, commands.UpdateCardInput{
			ID:          id,
			Title:       patch.Title,
			Description: patch.Description,
			Order:       patch.Order,
			Archived:    patch.Archived,
		})
		if err != nil {
			return f.Fail(err)
		}
		if !f.Human() {
			return f.Success(card)
		}

		fmt.Printf("%s Card '%s' updated successfully (ID: %s)\n", styles.Check(), card.Title, card.ID)
		return nil
	})
}
