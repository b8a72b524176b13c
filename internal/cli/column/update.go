package column

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

// UpdateCmd returns the column update subcommand
func UpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update [id]",
		Short: "Update a column",
		Long: `Update a column's name, order or archived state. Only the flags given are changed.

Examples:
  corkboard column update 91ab... --name="Doing"
  corkboard column update 91ab... --archive
  corkboard column update 91ab... --order=2.5 --json
`,
		Args: cobra.MaximumNArgs(1),
		RunE: runUpdate,
	}

	cmd.Flags().String("id", "", "Column ID (can also be provided as positional argument)")
	cmd.Flags().String("name", "", "New column name")
	cmd.Flags().Float64("order", 0, "New sort key")
	cmd.Flags().Bool("archive", false, "Hide the column from active listings")
	cmd.Flags().Bool("unarchive", false, "Show the column in active listings again")
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

		patch := models.ColumnPatch{
			Name:     cli.OptionalString(cmd, "name"),
			Order:    cli.OptionalFloat(cmd, "order"),
			Archived: archived,
		}
		if patch.IsEmpty() {
			return f.Fail(cli.Usage(errors.New("nothing to update: pass --name, --order, --archive or --unarchive")))
		}

		column, err := c.App.Commands.UpdateColumn(ctx, commands.UpdateColumnInput{
			ID:       id,
			Name:     patch.Name,
			Order:    patch.Order,
			Archived: patch.Archived,
		})
		if err != nil {
			return f.Fail(err)
		}
		if !f.Human() {
			return f.Success(column)
		}

		fmt.Printf("%s Column '%s' updated successfully (ID: %s)\n", styles.Check(), column.Name, column.ID)
		return nil
	})
}
