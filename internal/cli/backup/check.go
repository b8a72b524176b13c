package backup

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/corkboard/internal/cli"
	"github.com/thenoetrevino/corkboard/internal/cli/styles"
)

var errIntegrity = errors.New("database failed its integrity check")

// CheckCmd returns the backup check subcommand
func CheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Run the database integrity check",
		Long:  "Run the database integrity check. Exits non-zero when the check fails; nothing is repaired.",
		Args:  cobra.NoArgs,
		RunE:  runCheck,
	}

	cli.AddOutputFlags(cmd)
	return cmd
}

func runCheck(cmd *cobra.Command, args []string) error {
	return cli.Run(cmd, func(ctx context.Context, c *cli.CLI, f *cli.OutputFormatter) error {
		ok, err := c.App.Commands.CheckIntegrity(ctx)
		if err != nil {
			return f.Fail(err)
		}

		switch {
		case f.Quiet:
			fmt.Println(ok)
		case f.JSON:
			if err := f.Success(map[string]bool{"ok": ok}); err != nil {
				return err
			}
		case ok:
			fmt.Printf("%s Integrity check passed\n", styles.Check())
		default:
			fmt.Println(styles.ErrorStyle.Render("✗ Integrity check failed, see the log for details"))
		}

		if !ok {
			return cli.Exit(cli.ExitDataErr, errIntegrity)
		}
		return nil
	})
}
