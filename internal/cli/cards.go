package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/bingoforge/internal/config"
	"github.com/matzehuels/bingoforge/pkg/card"
	"github.com/matzehuels/bingoforge/pkg/errors"
	"github.com/matzehuels/bingoforge/pkg/pool"
	"github.com/matzehuels/bingoforge/pkg/render/sheet"
)

// Built-in generator defaults, overridable via config file and flags.
const (
	defaultCardFile      = "bingo_cards.pdf"
	defaultCardSize      = "5x5"
	defaultCardsPerPage  = 4
	defaultColumnLabels  = "B,I,N,G,O"
	defaultMultilineSize = 12
	defaultFreeText      = "FREE"
)

// cardsOpts holds the command-line flags for the card generator.
type cardsOpts struct {
	cardFile          string // output PDF path
	cardSize          string // grid dimensions: "3x3", "4x4" or "5x5"
	cardsPerPage      int    // cards per printed page: 1, 2 or 4
	cardTitle         string // optional title above each card
	columnLabels      string // comma-delimited column labels
	labelsOff         bool   // suppress the column-label header row
	multilineFontSize int    // fixed font size for multi-line cell values
	noFree            bool   // disable the free space
	scatter           bool   // place values anywhere instead of per column
	valueFile         string // value file path; empty uses the number defaults
	freeText          string // free-space marker text (config only)
	seed              uint64 // random seed; 0 draws fresh entropy
}

// newCardsCmd creates the bingo-cards root command.
//
// The positional argument is the number of cards to generate. Defaults
// come from the built-ins, overridden by the config file, overridden by
// explicit flags.
func newCardsCmd() *cobra.Command {
	opts := cardsOpts{
		cardFile:          defaultCardFile,
		cardSize:          defaultCardSize,
		cardsPerPage:      defaultCardsPerPage,
		columnLabels:      defaultColumnLabels,
		multilineFontSize: defaultMultilineSize,
		freeText:          defaultFreeText,
	}

	cmd := &cobra.Command{
		Use:   "bingo-cards [flags] N",
		Short: "Generate printable bingo cards as a PDF",
		Long: `bingo-cards generates N printable bingo cards and writes them to a
multi-page PDF. Values come from the standard bingo number ranges or
from a value file with one value per line, optionally prefixed with a
column label as COLUMN::VALUE.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := parseCardCount(args[0])
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("column-labels") && opts.labelsOff {
				return errors.New(errors.ErrCodeInvalidConfig,
					"--column-labels and --column-labels-off are mutually exclusive")
			}
			if err := applyCardsConfig(cmd, &opts); err != nil {
				return err
			}
			return runCards(cmd.Context(), n, &opts, cmd.Flags().Changed("column-labels"))
		},
	}

	cmd.Flags().StringVar(&opts.cardFile, "card-file", opts.cardFile, "output PDF file")
	cmd.Flags().StringVar(&opts.cardSize, "card-size", opts.cardSize, "card rows and columns: 3x3, 4x4 or 5x5")
	cmd.Flags().IntVar(&opts.cardsPerPage, "cards-per-page", opts.cardsPerPage, "cards per printed page: 1, 2 or 4")
	cmd.Flags().StringVar(&opts.cardTitle, "card-title", "", "title printed on each card")
	cmd.Flags().StringVar(&opts.columnLabels, "column-labels", opts.columnLabels, "comma-delimited column labels")
	cmd.Flags().BoolVar(&opts.labelsOff, "column-labels-off", false, "do not print column labels")
	cmd.Flags().IntVar(&opts.multilineFontSize, "multiline-font-size", opts.multilineFontSize, "font size for multi-line cell values")
	cmd.Flags().BoolVar(&opts.noFree, "no-free", false, "do not reserve a free space on each card")
	cmd.Flags().BoolVar(&opts.scatter, "scatter", false, "scatter values across the card instead of per column")
	cmd.Flags().StringVar(&opts.valueFile, "value-file", "", "file with card space values, one per line or COLUMN::VALUE")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "random seed for reproducible cards (0 = random)")

	return cmd
}

// applyCardsConfig overlays config-file values onto flags the user did
// not set explicitly.
func applyCardsConfig(cmd *cobra.Command, opts *cardsOpts) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if !flags.Changed("card-file") && cfg.CardFile != "" {
		opts.cardFile = cfg.CardFile
	}
	if !flags.Changed("card-size") && cfg.CardSize != "" {
		opts.cardSize = cfg.CardSize
	}
	if !flags.Changed("cards-per-page") && cfg.CardsPerPage != 0 {
		opts.cardsPerPage = cfg.CardsPerPage
	}
	if !flags.Changed("column-labels") && cfg.ColumnLabels != "" {
		opts.columnLabels = cfg.ColumnLabels
	}
	if !flags.Changed("multiline-font-size") && cfg.MultilineFontSize != 0 {
		opts.multilineFontSize = cfg.MultilineFontSize
	}
	if cfg.FreeText != "" {
		opts.freeText = cfg.FreeText
	}
	return nil
}

// runCards loads the value pool, generates the cards, and writes the PDF.
func runCards(ctx context.Context, n int, opts *cardsOpts, labelsExplicit bool) error {
	logger := loggerFromContext(ctx)

	rows, cols, err := card.ParseSize(opts.cardSize)
	if err != nil {
		return err
	}

	p, err := buildPool(opts.valueFile, cols, logger.Warnf)
	if err != nil {
		return err
	}
	if err := p.ValidateFor(rows, cols, opts.scatter); err != nil {
		return err
	}
	if p.Tagged() && len(p.Labels()) > cols {
		logger.Warnf("pool defines %d columns; using the first %d", len(p.Labels()), cols)
		p = p.Trim(cols)
	}

	labels, err := resolveLabels(p, cols, opts.columnLabels, labelsExplicit, opts.labelsOff, opts.valueFile != "", printWarning)
	if err != nil {
		return err
	}

	spec := card.Spec{Rows: rows, Cols: cols, FreeSpace: !opts.noFree, Scatter: opts.scatter}
	logger.Debugf("Generating %d cards (%s, scatter=%v, free=%v)", n, opts.cardSize, spec.Scatter, spec.FreeSpace)

	prog := newProgress(logger)
	cards, err := card.Generate(newRNG(opts.seed), p, spec, n)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Generated %d cards", len(cards)))

	r, err := sheet.New(
		sheet.WithCardsPerPage(opts.cardsPerPage),
		sheet.WithTitle(opts.cardTitle),
		sheet.WithLabels(labels),
		sheet.WithMultilineFontSize(float64(opts.multilineFontSize)),
		sheet.WithFreeText(opts.freeText),
	)
	if err != nil {
		return err
	}
	if err := r.RenderFile(cards, opts.cardFile); err != nil {
		return err
	}

	printSuccess("Generated %d bingo cards", len(cards))
	printFile(opts.cardFile)
	printStats(len(cards), r.Pages(len(cards)))
	return nil
}

// buildPool constructs the value pool from the defaults or a value file.
func buildPool(valueFile string, cols int, warnf func(string, ...any)) (*pool.Pool, error) {
	if valueFile == "" {
		return pool.Defaults(cols), nil
	}
	return pool.Load(valueFile, pool.WithWarnf(warnf))
}

// resolveLabels decides the column labels shown in the card header.
//
// A tagged value file defines the labels; explicitly given CLI labels
// must then match them as a set or the run fails with
// VALIDATION_FAILED. Otherwise a label count that does not match the
// grid suppresses the header with a warning rather than failing, so
// the default B,I,N,G,O never blocks smaller grids.
func resolveLabels(p *pool.Pool, cols int, raw string, explicit, off, fromFile bool, warnf func(string, ...any)) ([]string, error) {
	if off {
		return nil, nil
	}

	cli := splitLabels(raw)
	if fromFile && p.Tagged() {
		fileLabels := p.Labels()
		if len(fileLabels) > cols {
			fileLabels = fileLabels[:cols]
		}
		if explicit && !sameLabelSet(cli, fileLabels) {
			return nil, errors.New(errors.ErrCodeValidation,
				"--column-labels %v do not match the value file columns %v", cli, fileLabels)
		}
		return fileLabels, nil
	}

	if len(cli) != cols {
		warnf("%d column labels for %d columns; omitting labels", len(cli), cols)
		return nil, nil
	}
	return cli, nil
}
