package backup

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/corkboard/internal/cli"
	"github.com/thenoetrevino/corkboard/internal/cli/styles"
)

// CreateCmd returns the backup create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Snapshot the database now",
		Long: `Copy the database file into the backup directory as kanban_backup_<timestamp>.db.

Examples:
  corkboard backup create
  BACKUP=$(corkboard backup create --quiet)
`,
		Args: cobra.NoArgs,
		RunE: runCreate,
	}

	cli.AddOutputFlags(cmd)
	return cmd
}

func runCreate(cmd *cobra.Command, args []string) error {
	return cli.Run(cmd, func(ctx context.Context, c *cli.CLI, f *cli.OutputFormatter) error {
		path, err := c.App.Commands.CreateBackup(ctx)
		if err != nil {
			return f.Fail(err)
		}

		if f.Quiet {
			fmt.Println(path)
			return nil
		}
		if f.JSON {
			return f.Success(map[string]string{"path": path})
		}

		fmt.Printf("%s Backup created: %s\n", styles.Check(), path)
		return nil
	})
}
