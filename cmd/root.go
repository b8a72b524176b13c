package cmd

import (
	"github.com/spf13/cobra"
	"github.com/thenoetrevino/corkboard/internal/cli"
	"github.com/thenoetrevino/corkboard/internal/cli/backup"
	"github.com/thenoetrevino/corkboard/internal/cli/board"
	"github.com/thenoetrevino/corkboard/internal/cli/call"
	"github.com/thenoetrevino/corkboard/internal/cli/card"
	"github.com/thenoetrevino/corkboard/internal/cli/column"
	"github.com/thenoetrevino/corkboard/internal/cli/serve"
	"github.com/thenoetrevino/corkboard/internal/cli/status"
)

var rootCmd = &cobra.Command{
	Use:   "corkboard",
	Short: "Corkboard - a local-first kanban board",
	Long: `Corkboard keeps boards, columns and cards in a local SQLite database.

Every command accepts --json for agents and --quiet for scripts.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return cli.Usage(err)
	})

	rootCmd.AddCommand(board.BoardCmd())
	rootCmd.AddCommand(column.ColumnCmd())
	rootCmd.AddCommand(card.CardCmd())
	rootCmd.AddCommand(backup.BackupCmd())
	rootCmd.AddCommand(status.StatusCmd())
	rootCmd.AddCommand(call.CallCmd())
	rootCmd.AddCommand(serve.ServeCmd())
}

// Execute runs the root command. Errors have already been reported by the
// command that failed; cli.ExitCode maps them to the process exit code.
func Execute() error {
	return rootCmd.Execute()
}
