package commands

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/scramble-dev/scramble/internal/core/charset"
)

type CharsetsCmd struct {
	flags *Flags
}

// NewCharsetsCmd creates a new charsets command
func NewCharsetsCmd(flags *Flags) *CharsetsCmd {
	return &CharsetsCmd{flags: flags}
}

// Register adds the charsets command to the application
func (cmd *CharsetsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:        "charsets",
		Usage:       "List the built-in character sets",
		UsageText:   "scramble charsets",
		Description: "Displays every built-in character set with its supported cases, symbols, and size.",
		Action:      cmd.run,
	})

	return app
}

func (cmd *CharsetsCmd) run(_ context.Context, c *cli.Command) error {
	casings := []charset.Casing{
		charset.CasingLower,
		charset.CasingUpper,
		charset.CasingMixed,
	}

	w := tabwriter.NewWriter(c.Root().Writer, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "NAME\tCASE\tSYMBOLS\tSIZE")

	for _, sel := range charset.Selections {
		if sel == charset.SelCustom {
			continue
		}

		// Sets without casing support resolve only with the default case.
		set, err := charset.Resolve(sel, "", charset.CasingDefault)
		if err == nil && !supportsCasing(sel) {
			_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", sel, "-", set, set.Len())
			continue
		}

		for _, casing := range casings {
			set, err := charset.Resolve(sel, "", casing)
			if err != nil {
				continue
			}
			_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", sel, casing, set, set.Len())
		}
	}

	if err := w.Flush(); err != nil {
		return err
	}

	_, _ = fmt.Fprintln(c.Root().Writer)
	_, _ = fmt.Fprintln(c.Root().Writer, "Use --char-set=custom with --custom-chars to supply your own symbols.")
	return nil
}

func supportsCasing(sel string) bool {
	return sel != charset.SelNumbers && sel != charset.SelBase64
}
