// Package styles provides shared lipgloss styles for CLI output.
package styles

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/scramble-dev/scramble/internal/core/batch"
)

// Tokyo Night color palette.
var (
	ColorGreen  = lipgloss.Color("#9ece6a")
	ColorYellow = lipgloss.Color("#e0af68")
	ColorBlue   = lipgloss.Color("#7aa2f7")
	ColorGray   = lipgloss.Color("#565f89")
	ColorWhite  = lipgloss.Color("#c0caf5")
)

// SourceStyle styles the original filename of a rename pair.
var SourceStyle = lipgloss.NewStyle().
	Foreground(ColorYellow)

// DestStyle styles the new filename of a rename pair.
var DestStyle = lipgloss.NewStyle().
	Foreground(ColorGreen)

// ArrowStyle styles the separator between the two.
var ArrowStyle = lipgloss.NewStyle().
	Foreground(ColorGray)

// HeaderStyle styles batch headers.
var HeaderStyle = lipgloss.NewStyle().
	Foreground(ColorBlue).
	Bold(true)

// DirStyle styles directory prefixes, de-emphasized next to filenames.
var DirStyle = lipgloss.NewStyle().
	Foreground(ColorGray)

// RenderPair renders one rename as "dir/old -> new".
func RenderPair(p batch.Pair) string {
	dir := filepath.Dir(p.Source)
	return fmt.Sprintf("  %s%s %s %s",
		DirStyle.Render(dir+string(filepath.Separator)),
		SourceStyle.Render(filepath.Base(p.Source)),
		ArrowStyle.Render("->"),
		DestStyle.Render(filepath.Base(p.Destination)),
	)
}

// RenderPairs renders a block of rename pairs, one per line.
func RenderPairs(pairs []batch.Pair) string {
	lines := make([]string, len(pairs))
	for i, p := range pairs {
		lines[i] = RenderPair(p)
	}
	return strings.Join(lines, "\n")
}

// RenderBatchHeader renders a "Batch #n/total:" header line.
func RenderBatchHeader(n, total int) string {
	return HeaderStyle.Render(fmt.Sprintf("Batch #%d/%d:", n, total))
}
