package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/bingoforge/pkg/card"
	"github.com/matzehuels/bingoforge/pkg/draw"
	"github.com/matzehuels/bingoforge/pkg/errors"
	"github.com/matzehuels/bingoforge/pkg/pool"
)

// callerOpts holds the command-line flags for the caller tool.
type callerOpts struct {
	cardSize     string // card size whose default number pool to draw from
	valueFile    string // custom value file; mutually exclusive with card size
	ignoreColumn bool   // announce values without their column label
	plain        bool   // line-based loop instead of the interactive screen
	seed         uint64 // random seed; 0 draws fresh entropy
}

// newCallerCmd creates the bingo-caller root command.
func newCallerCmd() *cobra.Command {
	opts := callerOpts{cardSize: defaultCardSize}

	cmd := &cobra.Command{
		Use:   "bingo-caller [flags]",
		Short: "Draw bingo values one at a time for game play",
		Long: `bingo-caller shuffles the value pool of a bingo game and announces one
value at a time, each exactly once. Values come from the standard
number ranges for the chosen card size or from the same value file the
cards were generated with.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("card-size") && cmd.Flags().Changed("value-file") {
				return errors.New(errors.ErrCodeInvalidConfig,
					"--card-size and --value-file are mutually exclusive")
			}
			return runCaller(cmd.Context(), &opts, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&opts.cardSize, "card-size", opts.cardSize, "card size whose standard values to draw: 3x3, 4x4 or 5x5")
	cmd.Flags().StringVar(&opts.valueFile, "value-file", "", "file with values to draw, one per line or COLUMN::VALUE")
	cmd.Flags().BoolVar(&opts.ignoreColumn, "ignore-column", false, "announce values without their column label")
	cmd.Flags().BoolVar(&opts.plain, "plain", false, "plain line-based prompt instead of the interactive screen")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "random seed for a reproducible draw order (0 = random)")

	return cmd
}

// runCaller builds the draw sequence and hands it to the chosen loop.
func runCaller(ctx context.Context, opts *callerOpts, in io.Reader, out io.Writer) error {
	logger := loggerFromContext(ctx)

	_, cols, err := card.ParseSize(opts.cardSize)
	if err != nil {
		return err
	}
	p, err := buildPool(opts.valueFile, cols, logger.Warnf)
	if err != nil {
		return err
	}

	seq := draw.New(newRNG(opts.seed), p)
	sayColumns := !opts.ignoreColumn && p.Tagged()
	logger.Debugf("Drawing from a pool of %d values", seq.Len())

	if opts.plain {
		return runPlainDraw(in, out, seq, sayColumns)
	}
	return runDrawScreen(seq, sayColumns)
}

// announce formats a drawn value for display.
func announce(v pool.Value, sayColumns bool) string {
	if sayColumns && v.Label != "" {
		return v.Label + " " + v.Text
	}
	return v.Text
}

// runPlainDraw announces one value per line, waiting for enter between
// draws. Entering q stops the game early.
func runPlainDraw(in io.Reader, out io.Writer, seq *draw.Sequence, sayColumns bool) error {
	fmt.Fprintln(out, "Press enter for the next value, q to quit.")

	scanner := bufio.NewScanner(in)
	count := 0
	for {
		v, ok := seq.Next()
		if !ok {
			fmt.Fprintln(out, "All the values have been drawn.")
			return nil
		}
		count++
		fmt.Fprintf(out, "%d) %s\n", count, announce(v, sayColumns))

		if !scanner.Scan() {
			return scanner.Err()
		}
		if strings.EqualFold(strings.TrimSpace(scanner.Text()), "q") {
			return nil
		}
	}
}

// runDrawScreen runs the interactive caller screen.
func runDrawScreen(seq *draw.Sequence, sayColumns bool) error {
	_, err := tea.NewProgram(newDrawModel(seq, sayColumns)).Run()
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "caller screen")
	}
	return nil
}
