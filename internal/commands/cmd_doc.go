package commands

import (
	"context"
	_ "embed"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

//go:embed doc.md
var docMarkdown string

type DocCmd struct {
	flags *Flags
}

// NewDocCmd creates a new doc command
func NewDocCmd(flags *Flags) *DocCmd {
	return &DocCmd{flags: flags}
}

// Register adds the doc command to the application
func (cmd *DocCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:        "doc",
		Usage:       "Show the usage guide",
		UsageText:   "scramble doc",
		Description: "Renders the full usage guide, covering character sets, name composition, confirmation modes, and history.",
		Action:      cmd.run,
	})

	return app
}

func (cmd *DocCmd) run(_ context.Context, c *cli.Command) error {
	out := c.Root().Writer

	if !isInteractive() {
		_, err := fmt.Fprint(out, docMarkdown)
		return err
	}

	width := 100
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 && w < width {
		width = w
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("tokyo-night"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		_, werr := fmt.Fprint(out, docMarkdown)
		return werr
	}

	rendered, err := renderer.Render(docMarkdown)
	if err != nil {
		_, werr := fmt.Fprint(out, docMarkdown)
		return werr
	}

	_, err = fmt.Fprint(out, rendered)
	return err
}
