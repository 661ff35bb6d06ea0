package commands

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/scramble-dev/scramble/internal/printer"
)

type HistoryCmd struct {
	flags *Flags
}

// NewHistoryCmd creates a new history command
func NewHistoryCmd(flags *Flags) *HistoryCmd {
	return &HistoryCmd{flags: flags}
}

// Register adds the history command to the application
func (cmd *HistoryCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:        "history",
		Usage:       "List executed rename batches",
		UsageText:   "scramble history",
		Description: "Displays a table of recorded batches with their id, time, file count, and undo state.",
		Action:      cmd.run,
	})

	return app
}

func (cmd *HistoryCmd) run(ctx context.Context, c *cli.Command) error {
	p := printer.Ctx(ctx)

	records, err := cmd.flags.Service.History(ctx)
	if err != nil {
		return fmt.Errorf("list history: %w", err)
	}

	if len(records) == 0 {
		p.Infof("No batches recorded")
		return nil
	}

	out := c.Root().Writer

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tEXECUTED\tFILES\tSTATE")

	for _, rec := range records {
		state := "applied"
		if rec.Reverted {
			state = "reverted"
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%d\t%s\n",
			rec.ID,
			rec.ExecutedAt.Local().Format(time.DateTime),
			len(rec.Pairs),
			state,
		)
	}

	return w.Flush()
}
