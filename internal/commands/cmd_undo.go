package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/scramble-dev/scramble/internal/core/batch"
	"github.com/scramble-dev/scramble/internal/printer"
)

type UndoCmd struct {
	flags *Flags
}

// NewUndoCmd creates a new undo command
func NewUndoCmd(flags *Flags) *UndoCmd {
	return &UndoCmd{flags: flags}
}

// Register adds the undo command to the application
func (cmd *UndoCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:        "undo",
		Usage:       "Revert the most recent rename batch",
		UsageText:   "scramble undo",
		Description: "Restores the original names of the newest batch that has not been reverted yet. Files that were moved or replaced since the batch ran are left alone.",
		Action:      cmd.run,
	})

	return app
}

func (cmd *UndoCmd) run(ctx context.Context, _ *cli.Command) error {
	p := printer.Ctx(ctx)

	record, restored, err := cmd.flags.Service.Undo(ctx)
	switch {
	case errors.Is(err, batch.ErrEmpty):
		p.Infof("Nothing to undo")
		return nil
	case err != nil:
		return fmt.Errorf("undo batch: %w", err)
	}

	skipped := len(record.Pairs) - restored
	if skipped > 0 {
		p.Warnf("Skipped %d file(s) that no longer match the recorded batch", skipped)
	}

	p.Successf("Restored %d file(s) from batch %s", restored, record.ID)
	return nil
}
