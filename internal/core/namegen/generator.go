package namegen

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/rs/zerolog"

	"github.com/scramble-dev/scramble/internal/core/charset"
)

const (
	// MaxFiles caps the number of files a single batch may contain.
	MaxFiles = 1 << 24
	// MaxEnumerate caps the number of names the match strategy will
	// materialize in memory.
	MaxEnumerate = 1 << 28

	// onDemandRetryCap bounds collision retries per file when the naming
	// space is too large to measure. Exceeding it means something is very
	// wrong with the registry or the randomness source.
	onDemandRetryCap = 1 << 20
)

// ErrTooManyFiles is returned when a batch exceeds MaxFiles.
var ErrTooManyFiles = errors.New("too many files in one batch")

// ErrSpaceTooLarge is returned when the match strategy is asked to enumerate
// a naming space larger than MaxEnumerate. Only reachable by forcing the
// strategy, since the selector never picks match for sparse batches.
var ErrSpaceTooLarge = errors.New("naming space is too large to enumerate")

// ExhaustedSpaceError reports that a batch cannot be uniquely named within
// its naming space.
type ExhaustedSpaceError struct {
	Needs int
	Space uint64
}

func (e *ExhaustedSpaceError) Error() string {
	return fmt.Sprintf(
		"this combination of character set and length cannot uniquely cover every file: %d files but only %d names available",
		e.Needs, e.Space,
	)
}

// ComposeFunc maps a raw generated name for target i to the final composed
// destination path. Collision checks run on composed paths, so prefix,
// suffix, and extension handling all participate in uniqueness.
type ComposeFunc func(i int, raw string) string

// Generator assigns unique names from a naming space. Randomness comes from
// a caller-provided source so tests can inject a fixed seed.
type Generator struct {
	space charset.Space
	rng   *rand.Rand
	log   zerolog.Logger
}

// New creates a Generator over the given naming space.
func New(space charset.Space, rng *rand.Rand, log zerolog.Logger) *Generator {
	return &Generator{space: space, rng: rng, log: log}
}

// Generate produces one composed destination path per target, all distinct
// from each other and from every path already reserved in the registry. The
// result has exactly n entries in target order, or an error and no partial
// assignment is usable.
func (g *Generator) Generate(dec Decision, reg *Registry, compose ComposeFunc, n int) ([]string, error) {
	if n > MaxFiles {
		return nil, fmt.Errorf("%w: %d files, limit is %d", ErrTooManyFiles, n, MaxFiles)
	}
	if !dec.Infinite && uint64(n) > dec.Space {
		return nil, &ExhaustedSpaceError{Needs: n, Space: dec.Space}
	}

	switch dec.Strategy {
	case StrategyMatch:
		return g.generateThenMatch(dec, reg, compose, n)
	case StrategyOnDemand:
		return g.generateOnDemand(dec, reg, compose, n)
	default:
		return nil, fmt.Errorf("unknown generation strategy %q", dec.Strategy)
	}
}

// generateOnDemand draws each name independently and retries on collision.
func (g *Generator) generateOnDemand(dec Decision, reg *Registry, compose ComposeFunc, n int) ([]string, error) {
	g.log.Debug().Int("files", n).Msg("using on-demand generation strategy")

	retryBound := uint64(onDemandRetryCap)
	if !dec.Infinite && dec.Space < retryBound {
		retryBound = dec.Space
	}

	out := make([]string, n)
	for i := range out {
		var reserved bool
		for attempt := uint64(0); attempt <= retryBound; attempt++ {
			path := compose(i, g.randomName())
			if reg.Reserve(path) {
				out[i] = path
				reserved = true
				break
			}
			g.log.Debug().Str("name", path).Msg("random name conflict, retrying")
		}
		if !reserved {
			return nil, &ExhaustedSpaceError{Needs: n, Space: dec.Space}
		}
	}

	return out, nil
}

// generateThenMatch enumerates the full naming space, shuffles it, and
// assigns names in permuted order, skipping names already on disk.
func (g *Generator) generateThenMatch(dec Decision, reg *Registry, compose ComposeFunc, n int) ([]string, error) {
	g.log.Debug().Int("files", n).Msg("using generate-then-match strategy")

	if dec.Infinite || dec.Space > MaxEnumerate {
		return nil, fmt.Errorf("%w: %s with length %d", ErrSpaceTooLarge, g.space.Set(), g.space.Length())
	}

	candidates := g.enumerate()
	g.rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	// A candidate is only spent when its reservation succeeds. Composition
	// is per-file, so a candidate rejected for one file may still compose
	// to a free path for a later file with a different extension.
	used := make([]bool, len(candidates))
	start := 0

	out := make([]string, n)
	for i := range out {
		var reserved bool
		for j := start; j < len(candidates); j++ {
			if used[j] {
				if j == start {
					start++
				}
				continue
			}

			path := compose(i, candidates[j])
			if reg.Reserve(path) {
				out[i] = path
				used[j] = true
				reserved = true
				break
			}
			g.log.Debug().Str("name", path).Msg("candidate already taken on disk, skipping")
		}
		if !reserved {
			return nil, &ExhaustedSpaceError{Needs: n, Space: dec.Space}
		}
	}

	return out, nil
}

// randomName draws one uniformly random name from the space.
func (g *Generator) randomName() string {
	runes := g.space.Set().Runes()
	buf := make([]rune, g.space.Length())
	for i := range buf {
		buf[i] = runes[g.rng.IntN(len(runes))]
	}
	return string(buf)
}

// enumerate lists every name in the space in lexicographic symbol order.
func (g *Generator) enumerate() []string {
	var (
		runes  = g.space.Set().Runes()
		length = g.space.Length()
	)

	size, _ := g.space.Size()
	names := make([]string, 0, size)

	idx := make([]int, length)
	buf := make([]rune, length)
	for {
		for i, j := range idx {
			buf[i] = runes[j]
		}
		names = append(names, string(buf))

		pos := length - 1
		for pos >= 0 {
			idx[pos]++
			if idx[pos] < len(runes) {
				break
			}
			idx[pos] = 0
			pos--
		}
		if pos < 0 {
			return names
		}
	}
}
