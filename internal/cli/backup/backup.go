package backup

import (
	"github.com/spf13/cobra"
)

// BackupCmd returns the backup parent command
func BackupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Manage database snapshots",
	}

	cmd.AddCommand(CreateCmd())
	cmd.AddCommand(ListCmd())
	cmd.AddCommand(CleanupCmd())
	cmd.AddCommand(CheckCmd())

	return cmd
}
