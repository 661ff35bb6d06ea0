// Package compose turns raw generated names into final filenames by applying
// prefix, suffix, and extension policy.
package compose

import (
	"fmt"
	"strings"

	"github.com/scramble-dev/scramble/internal/core/charset"
)

// ExtMode controls what happens to the original file's extension.
type ExtMode string

const (
	// ExtKeepLast keeps the trailing extension: "a.tar.gz" keeps ".gz".
	ExtKeepLast ExtMode = "keep_last"
	// ExtKeepAll keeps the full compound suffix: "a.tar.gz" keeps ".tar.gz".
	ExtKeepAll ExtMode = "keep_all"
	// ExtStatic replaces the extension with a configured one.
	ExtStatic ExtMode = "static"
	// ExtDiscard drops the extension entirely.
	ExtDiscard ExtMode = "discard"
)

// ExtModes lists the recognized --ext-mode values.
var ExtModes = []string{string(ExtKeepLast), string(ExtKeepAll), string(ExtStatic), string(ExtDiscard)}

// Composer builds final filenames as prefix + raw + suffix + extension.
type Composer struct {
	prefix    string
	suffix    string
	mode      ExtMode
	staticExt string
}

// New creates a Composer. Prefix, suffix, and the static extension are
// stripped of filename-unsafe runes.
func New(prefix, suffix string, mode ExtMode, staticExt string) (Composer, error) {
	switch mode {
	case ExtKeepLast, ExtKeepAll, ExtStatic, ExtDiscard:
	default:
		return Composer{}, fmt.Errorf("unknown extension mode %q", mode)
	}
	if mode != ExtStatic && staticExt != "" {
		return Composer{}, fmt.Errorf("--static-ext requires --ext-mode=static")
	}

	return Composer{
		prefix:    sanitize(prefix),
		suffix:    sanitize(suffix),
		mode:      mode,
		staticExt: sanitize(strings.TrimPrefix(staticExt, ".")),
	}, nil
}

// Compose produces the final filename for a raw generated core, given the
// original filename the extension policy applies to.
func (c Composer) Compose(raw, original string) string {
	var sb strings.Builder
	sb.WriteString(c.prefix)
	sb.WriteString(raw)
	sb.WriteString(c.suffix)

	switch c.mode {
	case ExtKeepLast:
		sb.WriteString(LastExt(original))
	case ExtKeepAll:
		sb.WriteString(FullExt(original))
	case ExtStatic:
		if c.staticExt != "" {
			sb.WriteString("." + c.staticExt)
		}
	case ExtDiscard:
	}

	return sb.String()
}

// LastExt returns the trailing extension of name including the dot, splitting
// on the last dot that is not at position 0. A leading dot marks a hidden
// file, not an extension. Compound suffixes are not specially recognized:
// "archive.tar.gz" yields ".gz".
func LastExt(name string) string {
	idx := strings.LastIndex(name, ".")
	if idx <= 0 {
		return ""
	}
	return name[idx:]
}

// FullExt returns everything from the first dot that is not at position 0,
// so "archive.tar.gz" yields ".tar.gz".
func FullExt(name string) string {
	trimmed := name
	if strings.HasPrefix(trimmed, ".") {
		trimmed = trimmed[1:]
	}
	idx := strings.Index(trimmed, ".")
	if idx < 0 {
		return ""
	}
	return trimmed[idx:]
}

// sanitize removes runes that are not filename-safe.
func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		if charset.FilenameSafe(r) {
			return r
		}
		return -1
	}, s)
}
