package status

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/thenoetrevino/corkboard/internal/cli"
	"github.com/thenoetrevino/corkboard/internal/cli/styles"
	"github.com/thenoetrevino/corkboard/internal/daemon"
	"github.com/thenoetrevino/corkboard/internal/database"
)

// daemonProbeTimeout bounds how long status waits for a daemon that may not be running
const daemonProbeTimeout = 500 * time.Millisecond

// Report is everything the status command shows
type Report struct {
	DataDir    string                      `json:"dataDir,omitempty"`
	Database   string                      `json:"database,omitempty"`
	Size       int64                       `json:"size,omitempty"`
	Migrations []database.AppliedMigration `json:"migrations"`
	Integrity  bool                        `json:"integrity"`
	Backups    int                         `json:"backups"`
	LastBackup *time.Time                  `json:"lastBackup,omitempty"`
	Daemon     *daemon.MetricsSnapshot     `json:"daemon,omitempty"`
}

// StatusCmd returns the status command
func StatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show store, backup and daemon status",
		Long: `Show the applied migrations, the integrity check result, the snapshots on
disk and, when one is running, the daemon's counters.`,
		Args: cobra.NoArgs,
		RunE: runStatus,
	}

	cmd.Flags().String("socket", "", "Daemon socket to probe (default: from config)")
	cli.AddOutputFlags(cmd)
	return cmd
}

func runStatus(cmd *cobra.Command, args []string) error {
	socketPath, _ := cmd.Flags().GetString("socket")

	return cli.Run(cmd, func(ctx context.Context, c *cli.CLI, f *cli.OutputFormatter) error {
		report, err := collect(ctx, c, socketPath)
		if err != nil {
			return f.Fail(err)
		}

		if f.Quiet {
			fmt.Println(report.Integrity)
			return nil
		}
		if f.JSON {
			return f.Success(report)
		}

		printReport(report)
		return nil
	})
}

func collect(ctx context.Context, c *cli.CLI, socketPath string) (*Report, error) {
	report := &Report{}
	if c.Config != nil {
		report.DataDir = c.Config.DataDir
		report.Database = c.Config.DBPath()
		if info, err := os.Stat(report.Database); err == nil {
			report.Size = info.Size()
		}
		if socketPath == "" {
			socketPath = c.Config.Socket()
		}
	}

	migrations, err := c.App.Commands.ListMigrations(ctx)
	if err != nil {
		return nil, err
	}
	report.Migrations = migrations

	if report.Integrity, err = c.App.Commands.CheckIntegrity(ctx); err != nil {
		return nil, err
	}

	backups, err := c.App.Commands.ListBackups()
	if err != nil {
		return nil, err
	}
	report.Backups = len(backups)
	if len(backups) > 0 {
		report.LastBackup = &backups[0].CreatedAt
	}

	if socketPath != "" {
		report.Daemon = probeDaemon(ctx, socketPath)
	}
	return report, nil
}

// probeDaemon returns nil when no daemon answers on socketPath
func probeDaemon(ctx context.Context, socketPath string) *daemon.MetricsSnapshot {
	ctx, cancel := context.WithTimeout(ctx, daemonProbeTimeout)
	defer cancel()

	client, err := daemon.Dial(ctx, socketPath)
	if err != nil {
		return nil
	}
	defer func() {
		_ = client.Close()
	}()

	snapshot, err := client.Status(ctx)
	if err != nil {
		return nil
	}
	return &snapshot
}

func printReport(r *Report) {
	fmt.Println(styles.TitleStyle.Render("corkboard status"))
	if r.Database != "" {
		fmt.Println(styles.Field("Database", fmt.Sprintf("%s (%s)", r.Database, humanize.Bytes(uint64(r.Size)))))
	}

	integrity := styles.SuccessStyle.Render("ok")
	if !r.Integrity {
		integrity = styles.ErrorStyle.Render("FAILED")
	}
	fmt.Println(styles.Field("Integrity", integrity))

	backups := fmt.Sprintf("%d", r.Backups)
	if r.LastBackup != nil {
		backups += ", last " + humanize.Time(*r.LastBackup)
	}
	fmt.Println(styles.Field("Backups", backups))

	if r.Daemon != nil {
		fmt.Println(styles.Field("Daemon", fmt.Sprintf("running for %s, %d requests, %d clients",
			r.Daemon.Uptime, r.Daemon.RequestsTotal, r.Daemon.ConnectedClients)))
	} else {
		fmt.Println(styles.Field("Daemon", styles.SubtitleStyle.Render("not running")))
	}

	fmt.Println(styles.SectionStyle.Render("Migrations"))
	for _, m := range r.Migrations {
		fmt.Printf("  %s %s\n", m.Name, styles.SubtitleStyle.Render(m.AppliedAt.Local().Format("2006-01-02 15:04")))
	}
}
