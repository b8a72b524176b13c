package board

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/corkboard/internal/cli"
	"github.com/thenoetrevino/corkboard/internal/cli/styles"
)

// ListCmd returns the board list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all boards",
		Long:  "List all boards, most recently opened first.",
		Args:  cobra.NoArgs,
		RunE:  runList,
	}

	cli.AddOutputFlags(cmd)
	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	return cli.Run(cmd, func(ctx context.Context, c *cli.CLI, f *cli.OutputFormatter) error {
		boards, err := c.App.Commands.ListBoards(ctx)
		if err != nil {
			return f.Fail(err)
		}
		if !f.Human() {
			return cli.List(f, boards)
		}

		if len(boards) == 0 {
			fmt.Println("No boards found")
			return nil
		}

		fmt.Println(styles.TitleStyle.Render("Boards:"))
		for _, board := range boards {
			opened := "never opened"
			if board.LastOpenedAt != nil {
				opened = "opened " + board.LastOpenedAt.Local().Format("2006-01-02 15:04")
			}
			fmt.Printf("  %s  %s %s\n", board.ID, board.Name, styles.SubtitleStyle.Render("("+opened+")"))
		}
		return nil
	})
}
