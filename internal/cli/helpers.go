package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/corkboard/internal/models"
	"github.com/thenoetrevino/corkboard/internal/ordering"
)

// ErrMissingID is returned when neither a positional ID nor --id was given
var ErrMissingID = errors.New("an ID is required")

// AddOutputFlags registers the agent-friendly --json and --quiet flags
func AddOutputFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (ID only)")
}

// NewFormatter builds the formatter selected by the output flags
func NewFormatter(cmd *cobra.Command) *OutputFormatter {
	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")
	return &OutputFormatter{JSON: jsonOutput, Quiet: quietMode}
}

// Run opens the CLI for cmd, passes it to fn and closes it afterwards.
// Errors returned by fn are expected to be already reported through the formatter.
func Run(cmd *cobra.Command, fn func(ctx context.Context, c *CLI, f *OutputFormatter) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	formatter := NewFormatter(cmd)

	cliInstance, err := GetCLIFromContext(ctx)
	if err != nil {
		if fmtErr := formatter.Error("INITIALIZATION_ERROR", err.Error()); fmtErr != nil {
			slog.Error("Error formatting error message", "error", fmtErr)
		}
		return Exit(ExitError, err)
	}
	defer func() {
		if err := cliInstance.Close(); err != nil {
			slog.Error("Error closing CLI", "error", err)
		}
	}()

	return fn(ctx, cliInstance, formatter)
}

// ResolveID takes the ID from the first positional argument or the --id flag
func ResolveID(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 && args[0] != "" {
		return args[0], nil
	}
	if id, _ := cmd.Flags().GetString("id"); id != "" {
		return id, nil
	}
	return "", Usage(fmt.Errorf("%w: pass it as an argument or with --id", ErrMissingID))
}

// OptionalFloat returns the flag value only when the flag was set
func OptionalFloat(cmd *cobra.Command, name string) *float64 {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetFloat64(name)
	return &v
}

// OptionalString returns the flag value only when the flag was set
func OptionalString(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetString(name)
	return &v
}

// ArchiveFlag turns --archive / --unarchive into an optional archived value
func ArchiveFlag(cmd *cobra.Command) (*bool, error) {
	archive, _ := cmd.Flags().GetBool("archive")
	unarchive, _ := cmd.Flags().GetBool("unarchive")
	switch {
	case archive && unarchive:
		return nil, Usage(errors.New("--archive and --unarchive cannot be combined"))
	case archive:
		v := true
		return &v, nil
	case unarchive:
		v := false
		return &v, nil
	}
	return nil, nil
}

// SequentialOrders assigns evenly spaced keys to ids in the given sequence
func SequentialOrders(ids []string) []models.OrderUpdate {
	keys := ordering.Rebalance(len(ids))
	out := make([]models.OrderUpdate, len(ids))
	for i, id := range ids {
		out[i] = models.OrderUpdate{ID: id, Order: keys[i]}
	}
	return out
}
