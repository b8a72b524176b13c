package backup

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/thenoetrevino/corkboard/internal/cli"
	"github.com/thenoetrevino/corkboard/internal/cli/styles"
)

// ListCmd returns the backup list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List snapshots, newest first",
		Args:  cobra.NoArgs,
		RunE:  runList,
	}

	cli.AddOutputFlags(cmd)
	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	return cli.Run(cmd, func(ctx context.Context, c *cli.CLI, f *cli.OutputFormatter) error {
		backups, err := c.App.Commands.ListBackups()
		if err != nil {
			return f.Fail(err)
		}

		if f.Quiet {
			for _, b := range backups {
				fmt.Println(b.Path)
			}
			return nil
		}
		if f.JSON {
			return f.Success(backups)
		}

		if len(backups) == 0 {
			fmt.Println("No backups found")
			return nil
		}

		var total uint64
		fmt.Println(styles.TitleStyle.Render("Backups:"))
		for _, b := range backups {
			total += uint64(b.Size)
			fmt.Printf("  %-48s %8s  %s\n", b.Filename, humanize.Bytes(uint64(b.Size)),
				styles.SubtitleStyle.Render(humanize.Time(b.CreatedAt)))
		}
		fmt.Printf("%d backups, %s total\n", len(backups), humanize.Bytes(total))
		return nil
	})
}
