// Package scramble orchestrates rename planning and execution.
package scramble

import (
	"context"
	"fmt"
	"math/rand/v2"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/scramble-dev/scramble/internal/core/batch"
	"github.com/scramble-dev/scramble/internal/core/charset"
	"github.com/scramble-dev/scramble/internal/core/compose"
	"github.com/scramble-dev/scramble/internal/core/config"
	"github.com/scramble-dev/scramble/internal/core/namegen"
)

// Options are the resolved engine options for one rename invocation.
type Options struct {
	Space     charset.Space
	Composer  compose.Composer
	Threshold float64          // strategy ratio threshold, <= 0 means default
	Forced    namegen.Strategy // empty means let the selector decide
}

// Plan is a fully computed rename assignment. Nothing touches the filesystem
// until a plan is executed, so a planning failure never leaves a
// half-renamed batch.
type Plan struct {
	Pairs     []batch.Pair
	Decisions []namegen.Decision // one per directory group, in group order
}

// Service orchestrates scramble operations.
type Service struct {
	config  *config.Config
	history batch.Store
	rng     *rand.Rand
	log     zerolog.Logger
}

// New creates a new Service. The random source is injected so tests can use
// a fixed seed.
func New(cfg *config.Config, history batch.Store, rng *rand.Rand, log zerolog.Logger) *Service {
	return &Service{
		config:  cfg,
		history: history,
		rng:     rng,
		log:     log,
	}
}

// Plan assigns a unique random destination to every file. Files must be
// absolute, existing paths (see ResolveInputs). Targets are grouped by
// directory; each group gets its own strategy decision, seeded against the
// directory's existing entries. Pair order follows input order.
func (s *Service) Plan(ctx context.Context, files []string, opts Options) (*Plan, error) {
	if len(files) == 0 {
		return &Plan{}, nil
	}
	if len(files) > namegen.MaxFiles {
		return nil, fmt.Errorf("%w: %d files, limit is %d", namegen.ErrTooManyFiles, len(files), namegen.MaxFiles)
	}

	space, size, infinite := opts.Space, uint64(0), true
	if q, ok := opts.Space.Size(); ok {
		size, infinite = q, false
	}
	s.log.Debug().
		Str("charset", space.Set().String()).
		Int("length", space.Length()).
		Uint64("space", size).
		Bool("infinite", infinite).
		Int("files", len(files)).
		Msg("planning rename batch")

	// Group files by directory, preserving input order within each group.
	var dirs []string
	groups := make(map[string][]int)
	for i, file := range files {
		dir := filepath.Dir(file)
		if _, ok := groups[dir]; !ok {
			dirs = append(dirs, dir)
		}
		groups[dir] = append(groups[dir], i)
	}

	registry := namegen.NewRegistry()
	for _, dir := range dirs {
		if err := registry.SeedDir(dir); err != nil {
			return nil, err
		}
	}

	plan := &Plan{Pairs: make([]batch.Pair, len(files))}
	gen := namegen.New(space, s.rng, s.log.With().Str("component", "namegen").Logger())

	for _, dir := range dirs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		indices := groups[dir]
		dec := namegen.Select(len(indices), size, infinite, opts.Threshold, opts.Forced)
		plan.Decisions = append(plan.Decisions, dec)
		s.log.Debug().
			Str("dir", dir).
			Int("files", dec.Files).
			Float64("ratio", dec.Ratio).
			Str("strategy", string(dec.Strategy)).
			Bool("forced", dec.Forced).
			Msg("selected generation strategy")

		composeFn := func(i int, raw string) string {
			original := filepath.Base(files[indices[i]])
			return filepath.Join(dir, opts.Composer.Compose(raw, original))
		}

		destinations, err := gen.Generate(dec, registry, composeFn, len(indices))
		if err != nil {
			return nil, fmt.Errorf("generate names for %s: %w", dir, err)
		}

		for i, idx := range indices {
			plan.Pairs[idx] = batch.Pair{
				Source:      files[idx],
				Destination: destinations[i],
			}
		}
	}

	s.log.Info().Int("pairs", len(plan.Pairs)).Msg("rename plan assembled")
	return plan, nil
}

// OptionsFromConfig resolves engine options from a rename configuration.
func OptionsFromConfig(rc config.RenameConfig, threshold float64, forced string) (Options, error) {
	set, err := charset.Resolve(rc.CharSet, rc.CustomChars, charset.Casing(rc.Case))
	if err != nil {
		return Options{}, err
	}

	space, err := charset.NewSpace(set, rc.Length)
	if err != nil {
		return Options{}, err
	}

	composer, err := compose.New(rc.Prefix, rc.Suffix, compose.ExtMode(rc.ExtMode), rc.StaticExt)
	if err != nil {
		return Options{}, err
	}

	switch namegen.Strategy(forced) {
	case "", namegen.StrategyOnDemand, namegen.StrategyMatch:
	default:
		return Options{}, fmt.Errorf("unknown generation strategy %q", forced)
	}

	return Options{
		Space:     space,
		Composer:  composer,
		Threshold: threshold,
		Forced:    namegen.Strategy(forced),
	}, nil
}
