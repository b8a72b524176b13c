package call

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/corkboard/internal/cli"
	"github.com/thenoetrevino/corkboard/internal/commands"
	"github.com/thenoetrevino/corkboard/internal/daemon"
)

var errCallFailed = errors.New("call failed")

// CallCmd returns the call command, which performs one named call of the
// command surface and prints its JSON response
func CallCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "call <command> [input-json]",
		Short: "Perform a raw command call",
		Long: `Perform one named call, the same way the UI shell does, and print the
{"ok": ..., "data": ..., "error": ...} response.

The input is a JSON object; pass "-" to read it from stdin. With --daemon the
call is sent to the running daemon instead of opening the store directly.

Examples:
  corkboard call listBoards
  corkboard call createBoard '{"name":"My Project"}'
  echo '{"boardId":"6f1c..."}' | corkboard call listColumns -
  corkboard call --daemon listBoards
  corkboard call --list
`,
		Args: cobra.RangeArgs(0, 2),
		RunE: runCall,
	}

	cmd.Flags().Bool("daemon", false, "Send the call to the running daemon")
	cmd.Flags().String("socket", "", "Daemon socket (default: from config)")
	cmd.Flags().Bool("list", false, "List the available call names")
	return cmd
}

func runCall(cmd *cobra.Command, args []string) error {
	listNames, _ := cmd.Flags().GetBool("list")
	useDaemon, _ := cmd.Flags().GetBool("daemon")
	socketPath, _ := cmd.Flags().GetString("socket")

	if !listNames && len(args) == 0 {
		return cli.Usage(errors.New("a command name is required"))
	}

	var input json.RawMessage
	if len(args) == 2 {
		raw, err := readInput(args[1])
		if err != nil {
			return cli.Usage(err)
		}
		input = raw
	}

	return cli.Run(cmd, func(ctx context.Context, c *cli.CLI, f *cli.OutputFormatter) error {
		if listNames {
			for _, name := range c.App.Registry.Names() {
				fmt.Println(name)
			}
			return nil
		}

		var resp commands.Response
		if useDaemon {
			if socketPath == "" && c.Config != nil {
				socketPath = c.Config.Socket()
			}
			resp = viaDaemon(ctx, socketPath, args[0], input)
		} else {
			resp = c.App.Registry.Dispatch(ctx, args[0], input)
		}

		if err := json.NewEncoder(os.Stdout).Encode(resp); err != nil {
			return err
		}
		if !resp.OK {
			return cli.Exit(cli.ExitError, fmt.Errorf("%w: %s", errCallFailed, resp.Error))
		}
		return nil
	})
}

func readInput(arg string) (json.RawMessage, error) {
	if arg == "-" {
		var raw json.RawMessage
		if err := json.NewDecoder(os.Stdin).Decode(&raw); err != nil {
			return nil, fmt.Errorf("failed to read input from stdin: %w", err)
		}
		return raw, nil
	}
	if !json.Valid([]byte(arg)) {
		return nil, fmt.Errorf("input is not valid JSON: %s", strings.TrimSpace(arg))
	}
	return json.RawMessage(arg), nil
}

func viaDaemon(ctx context.Context, socketPath, name string, input json.RawMessage) commands.Response {
	if socketPath == "" {
		return commands.Response{Error: "no daemon socket configured"}
	}
	client, err := daemon.Dial(ctx, socketPath)
	if err != nil {
		return commands.Response{Error: err.Error()}
	}
	defer func() {
		_ = client.Close()
	}()

	var payload any
	if len(input) > 0 {
		payload = input
	}
	data, err := client.CallRaw(ctx, name, payload)
	if err != nil {
		var callErr *daemon.CallError
		if errors.As(err, &callErr) {
			return commands.Response{Error: callErr.Message}
		}
		return commands.Response{Error: err.Error()}
	}
	resp := commands.Response{OK: true}
	if len(data) > 0 {
		resp.Data = data
	}
	return resp
}
