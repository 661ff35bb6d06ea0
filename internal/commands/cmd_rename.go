package commands

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/urfave/cli/v3"

	"github.com/scramble-dev/scramble/internal/core/batch"
	"github.com/scramble-dev/scramble/internal/core/config"
	"github.com/scramble-dev/scramble/internal/printer"
	"github.com/scramble-dev/scramble/internal/scramble"
	"github.com/scramble-dev/scramble/internal/styles"
	"github.com/scramble-dev/scramble/internal/tui"
)

type RenameCmd struct {
	flags *Flags

	charSet     string
	customChars string
	casing      string
	length      int
	prefix      string
	suffix      string
	extMode     string
	staticExt   string
	confirm     string
	batchSize   int
	errMode     string
	strategy    string
	dryRun      bool
}

// NewRenameCmd creates the default rename action.
func NewRenameCmd(flags *Flags) *RenameCmd {
	return &RenameCmd{flags: flags}
}

// Flags returns the rename flags, registered on the root command since
// renaming is the default action.
func (cmd *RenameCmd) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "char-set",
			Aliases:     []string{"s"},
			Usage:       "character set for random names (letters, numbers, alpha_numeric, base16, base64, custom)",
			Destination: &cmd.charSet,
		},
		&cli.StringFlag{
			Name:        "custom-chars",
			Usage:       "characters to draw from when --char-set=custom",
			Destination: &cmd.customChars,
		},
		&cli.StringFlag{
			Name:        "case",
			Usage:       "character case where applicable (lower, upper, mixed)",
			Destination: &cmd.casing,
		},
		&cli.IntFlag{
			Name:        "length",
			Aliases:     []string{"l"},
			Usage:       "number of random characters per name, excluding prefix, suffix, and extension",
			Destination: &cmd.length,
		},
		&cli.StringFlag{
			Name:        "prefix",
			Usage:       "static string prepended to each name",
			Destination: &cmd.prefix,
		},
		&cli.StringFlag{
			Name:        "suffix",
			Usage:       "static string appended to each name, before the extension",
			Destination: &cmd.suffix,
		},
		&cli.StringFlag{
			Name:        "ext-mode",
			Aliases:     []string{"x"},
			Usage:       "extension handling (keep_last, keep_all, static, discard)",
			Destination: &cmd.extMode,
		},
		&cli.StringFlag{
			Name:        "static-ext",
			Usage:       "extension to apply when --ext-mode=static, without the leading dot",
			Destination: &cmd.staticExt,
		},
		&cli.StringFlag{
			Name:        "confirm",
			Aliases:     []string{"c"},
			Usage:       "confirmation mode (none, batch, each, tui)",
			Destination: &cmd.confirm,
		},
		&cli.IntFlag{
			Name:        "confirm-batch",
			Usage:       "files per confirmation batch, 0 confirms all at once",
			Value:       -1,
			Destination: &cmd.batchSize,
		},
		&cli.StringFlag{
			Name:        "errors",
			Aliases:     []string{"e"},
			Usage:       "error handling mode (ignore, warn, halt)",
			Destination: &cmd.errMode,
		},
		&cli.StringFlag{
			Name:        "strategy",
			Usage:       "force a generation strategy (on_demand, match); for benchmarking only",
			Destination: &cmd.strategy,
		},
		&cli.BoolFlag{
			Name:        "dry-run",
			Aliases:     []string{"d"},
			Usage:       "preview the renames without touching any file",
			Destination: &cmd.dryRun,
		},
	}
}

// Run plans and executes a rename batch for the positional file arguments.
func (cmd *RenameCmd) Run(ctx context.Context, c *cli.Command) error {
	p := printer.Ctx(ctx)

	args := c.Args().Slice()
	if len(args) == 0 {
		return fmt.Errorf("no files given. Run 'scramble --help' for usage")
	}

	rc := cmd.resolveOptions()

	if cmd.dryRun {
		p.Warnf("Dry run mode: your files will not be touched")
	}

	inputs, err := expandGlobs(args)
	if err != nil {
		return err
	}

	onErr := cmd.errorHandler(p, rc.Errors)

	files, err := scramble.ResolveInputs(inputs, onErr)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		p.Infof("Nothing to rename")
		return nil
	}

	opts, err := scramble.OptionsFromConfig(rc, cmd.flags.Config.Engine.StrategyThreshold, cmd.strategy)
	if err != nil {
		return err
	}

	plan, err := cmd.flags.Service.Plan(ctx, files, opts)
	if err != nil {
		return err
	}

	executed, err := cmd.execute(ctx, c, plan.Pairs, rc, onErr)
	if err != nil {
		return err
	}

	if !cmd.dryRun {
		if _, err := cmd.flags.Service.Record(ctx, executed); err != nil {
			return err
		}
	}

	suffix := ""
	if cmd.dryRun {
		suffix = " (dry run)"
	}
	p.Successf("Renamed %d file(s)%s", len(executed), suffix)
	return nil
}

// resolveOptions merges config defaults with command line flags. A set flag
// always wins.
func (cmd *RenameCmd) resolveOptions() config.RenameConfig {
	rc := cmd.flags.Config.Rename

	if cmd.charSet != "" {
		rc.CharSet = cmd.charSet
	}
	if cmd.customChars != "" {
		rc.CustomChars = cmd.customChars
	}
	if cmd.casing != "" {
		rc.Case = cmd.casing
	}
	if cmd.length > 0 {
		rc.Length = cmd.length
	}
	if cmd.prefix != "" {
		rc.Prefix = cmd.prefix
	}
	if cmd.suffix != "" {
		rc.Suffix = cmd.suffix
	}
	if cmd.extMode != "" {
		rc.ExtMode = cmd.extMode
	}
	if cmd.staticExt != "" {
		rc.StaticExt = cmd.staticExt
	}
	if cmd.confirm != "" {
		rc.Confirm = cmd.confirm
	}
	if cmd.batchSize >= 0 {
		rc.BatchSize = &cmd.batchSize
	}
	if cmd.errMode != "" {
		rc.Errors = cmd.errMode
	}

	return rc
}

// execute drives the confirmation flow and performs the renames.
func (cmd *RenameCmd) execute(ctx context.Context, c *cli.Command, pairs []batch.Pair, rc config.RenameConfig, onErr scramble.OnError) ([]batch.Pair, error) {
	out := c.Root().Writer

	confirm := rc.Confirm
	if cmd.dryRun {
		// identical plan output, no prompting, no execution
		fmt.Fprintln(out, styles.RenderPairs(pairs))
		return pairs, nil
	}

	switch confirm {
	case config.ConfirmNone:
		return cmd.flags.Service.Execute(ctx, pairs, onErr)

	case config.ConfirmTUI:
		// no terminal to review in; degrade to proceeding like the
		// other prompts do
		if !isInteractive() {
			return cmd.flags.Service.Execute(ctx, pairs, onErr)
		}

		selected, err := tui.ReviewPlan(pairs)
		if err != nil {
			return nil, err
		}
		if len(selected) == 0 {
			return nil, nil
		}
		return cmd.flags.Service.Execute(ctx, selected, onErr)

	case config.ConfirmBatch, config.ConfirmEach:
		size := rc.BatchLimit()
		if confirm == config.ConfirmEach {
			size = 1
		}
		if size <= 0 {
			size = len(pairs)
		}
		return cmd.executeBatched(ctx, c, pairs, size, onErr)

	default:
		return nil, fmt.Errorf("unknown confirm mode %q", confirm)
	}
}

// executeBatched shows and confirms the plan in chunks.
func (cmd *RenameCmd) executeBatched(ctx context.Context, c *cli.Command, pairs []batch.Pair, size int, onErr scramble.OnError) ([]batch.Pair, error) {
	var (
		out        = c.Root().Writer
		executed   []batch.Pair
		batchCount = (len(pairs) + size - 1) / size
		batchIdx   = 0
	)

	for chunk := range slices.Chunk(pairs, size) {
		batchIdx++
		fmt.Fprintf(out, "%s\n%s\n", styles.RenderBatchHeader(batchIdx, batchCount), styles.RenderPairs(chunk))

		decision, err := confirmBatch("Rename this batch?")
		if err != nil {
			return executed, err
		}

		switch decision {
		case batchSkip:
			continue
		case batchHalt:
			return executed, nil
		}

		done, err := cmd.flags.Service.Execute(ctx, chunk, onErr)
		executed = append(executed, done...)
		if err != nil {
			return executed, err
		}
	}

	return executed, nil
}

// errorHandler maps an error handling mode to a per-file recovery handler.
func (cmd *RenameCmd) errorHandler(p *printer.Printer, mode string) scramble.OnError {
	return func(path string, err error) scramble.Recovery {
		switch mode {
		case config.ErrorsIgnore:
			return scramble.RecoverySkip
		case config.ErrorsHalt:
			return scramble.RecoveryHalt
		default: // warn
			p.Errorf("%s: %v", path, err)
			recovery, promptErr := errorRecoveryPrompt("What to do with this file?")
			if promptErr != nil {
				return scramble.RecoveryHalt
			}
			return recovery
		}
	}
}

// expandGlobs turns glob pattern arguments into matching paths. Literal
// paths pass through untouched so a missing file still surfaces an error.
func expandGlobs(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		if !strings.ContainsAny(arg, "*?[{") {
			paths = append(paths, arg)
			continue
		}

		matches, err := doublestar.FilepathGlob(arg, doublestar.WithNoFollow())
		if err != nil {
			return nil, fmt.Errorf("bad glob pattern %q: %w", arg, err)
		}
		paths = append(paths, matches...)
	}
	return paths, nil
}
