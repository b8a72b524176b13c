package serve

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/corkboard/internal/app"
	"github.com/thenoetrevino/corkboard/internal/cli"
	"github.com/thenoetrevino/corkboard/internal/daemon"
)

// ServeCmd returns the serve command, which runs the daemon in the foreground
func ServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve command calls on a unix socket",
		Long: `Run the daemon in the foreground. Each newline-delimited JSON request
{"id": ..., "command": ..., "input": ...} on the socket is answered with a
{"id": ..., "ok": ..., "data": ..., "error": ...} response.

Stops on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}

	cmd.Flags().String("socket", "", "Socket path (default: from config)")
	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	socketPath, _ := cmd.Flags().GetString("socket")

	return cli.Run(cmd, func(ctx context.Context, c *cli.CLI, f *cli.OutputFormatter) error {
		if socketPath == "" && c.Config != nil {
			socketPath = c.Config.Socket()
		}
		ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
		defer cancel()

		return Run(ctx, c.App, socketPath, slog.Default())
	})
}

// Run serves a's registry on socketPath until ctx is cancelled
func Run(ctx context.Context, a *app.App, socketPath string, logger *slog.Logger) error {
	server, err := daemon.NewServer(socketPath, a.Registry, logger)
	if err != nil {
		return err
	}

	logger.Info("corkboard daemon starting", "socket_path", socketPath, "pid", os.Getpid())
	if err := server.Start(ctx); err != nil {
		return err
	}
	logger.Info("corkboard daemon shutting down gracefully")
	return nil
}
