package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/bingoforge/pkg/buildinfo"
)

// ExecuteCards runs the bingo-cards CLI.
func ExecuteCards(ctx context.Context) error {
	return execute(ctx, newCardsCmd())
}

// ExecuteCaller runs the bingo-caller CLI.
func ExecuteCaller(ctx context.Context) error {
	return execute(ctx, newCallerCmd())
}

// execute wires version output and verbose logging into a root command
// and runs it.
//
// Logging:
//   - Default: info level (logs to stderr)
//   - With --verbose (-v): debug level
//
// The logger is attached to the context and accessible to the command
// via loggerFromContext.
func execute(ctx context.Context, root *cobra.Command) error {
	var verbose bool

	root.Version = buildinfo.Version
	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		level := charmlog.InfoLevel
		if verbose {
			level = charmlog.DebugLevel
		}
		cmd.SetContext(withLogger(cmd.Context(), newLogger(os.Stderr, level)))
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	return root.ExecuteContext(ctx)
}
