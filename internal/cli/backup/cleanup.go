package backup

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/corkboard/internal/cli"
	"github.com/thenoetrevino/corkboard/internal/cli/styles"
	"github.com/thenoetrevino/corkboard/internal/config"
)

// CleanupCmd returns the backup cleanup subcommand
func CleanupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cleanup",
		Short: "Delete all but the newest snapshots",
		Long: `Keep the --keep newest snapshots and delete the rest.

Examples:
  corkboard backup cleanup --keep=3
`,
		Args: cobra.NoArgs,
		RunE: runCleanup,
	}

	cmd.Flags().Int("keep", config.DefaultBackupKeep, "Number of snapshots to keep")
	cli.AddOutputFlags(cmd)
	return cmd
}

func runCleanup(cmd *cobra.Command, args []string) error {
	keep, _ := cmd.Flags().GetInt("keep")

	return cli.Run(cmd, func(ctx context.Context, c *cli.CLI, f *cli.OutputFormatter) error {
		removed, err := c.App.Commands.CleanupOldBackups(keep)
		if err != nil {
			return f.Fail(err)
		}

		if f.Quiet {
			fmt.Println(removed)
			return nil
		}
		if f.JSON {
			return f.Success(map[string]int{"removed": removed})
		}

		fmt.Printf("%s Removed %d old backups (kept %d)\n", styles.Check(), removed, keep)
		return nil
	})
}
