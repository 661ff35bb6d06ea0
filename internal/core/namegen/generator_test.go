package namegen

import (
	"errors"
	"io"
	"math/rand/v2"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scramble-dev/scramble/internal/core/charset"
)

func newTestGenerator(t *testing.T, chars string, length int, seed uint64) (*Generator, charset.Space) {
	t.Helper()

	set, err := charset.Resolve(charset.SelCustom, chars, charset.CasingDefault)
	require.NoError(t, err)
	space, err := charset.NewSpace(set, length)
	require.NoError(t, err)

	rng := rand.New(rand.NewPCG(seed, seed+1))
	return New(space, rng, zerolog.New(io.Discard)), space
}

// identity composes raw names unchanged, so registry keys are the raw names.
func identity(_ int, raw string) string { return raw }

func decisionFor(space charset.Space, files int, forced Strategy) Decision {
	q, ok := space.Size()
	return Select(files, q, !ok, DefaultRatioThreshold, forced)
}

func TestGenerate_OnDemand(t *testing.T) {
	t.Run("q=4 p=3 terminates with distinct names", func(t *testing.T) {
		gen, space := newTestGenerator(t, "ab", 2, 42)
		dec := decisionFor(space, 3, StrategyOnDemand)
		require.Equal(t, StrategyOnDemand, dec.Strategy)

		names, err := gen.Generate(dec, NewRegistry(), identity, 3)
		require.NoError(t, err)
		require.Len(t, names, 3)

		seen := make(map[string]bool)
		for _, n := range names {
			assert.Len(t, n, 2)
			assert.False(t, seen[n], "name %q assigned twice", n)
			seen[n] = true
		}
	})

	t.Run("avoids pre-seeded names", func(t *testing.T) {
		gen, space := newTestGenerator(t, "ab", 2, 7)
		reg := NewRegistry()
		reg.Reserve("aa")
		reg.Reserve("ab")

		dec := decisionFor(space, 2, StrategyOnDemand)
		names, err := gen.Generate(dec, reg, identity, 2)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"ba", "bb"}, names)
	})

	t.Run("p greater than q fails", func(t *testing.T) {
		gen, space := newTestGenerator(t, "ab", 2, 1)
		dec := decisionFor(space, 5, StrategyOnDemand)

		_, err := gen.Generate(dec, NewRegistry(), identity, 5)
		var exhausted *ExhaustedSpaceError
		require.Error(t, err)
		require.True(t, errors.As(err, &exhausted))
		assert.Equal(t, 5, exhausted.Needs)
		assert.Equal(t, uint64(4), exhausted.Space)
	})

	t.Run("fully seeded space exhausts instead of looping", func(t *testing.T) {
		gen, space := newTestGenerator(t, "ab", 1, 3)
		reg := NewRegistry()
		reg.Reserve("a")
		reg.Reserve("b")

		dec := decisionFor(space, 1, StrategyOnDemand)
		_, err := gen.Generate(dec, reg, identity, 1)
		var exhausted *ExhaustedSpaceError
		assert.True(t, errors.As(err, &exhausted))
	})
}

func TestGenerate_Match(t *testing.T) {
	t.Run("q=10 p=10 assigns the whole space", func(t *testing.T) {
		for _, seed := range []uint64{1, 99} {
			gen, space := newTestGenerator(t, "0123456789", 1, seed)
			dec := decisionFor(space, 10, "")
			require.Equal(t, StrategyMatch, dec.Strategy)

			names, err := gen.Generate(dec, NewRegistry(), identity, 10)
			require.NoError(t, err)

			// every name of the space appears exactly once
			assert.ElementsMatch(t,
				[]string{"0", "1", "2", "3", "4", "5", "6", "7", "8", "9"},
				names,
			)
		}
	})

	t.Run("skips names already on disk", func(t *testing.T) {
		gen, space := newTestGenerator(t, "01", 2, 5)
		reg := NewRegistry()
		reg.Reserve("00")
		reg.Reserve("11")

		dec := decisionFor(space, 2, "")
		names, err := gen.Generate(dec, reg, identity, 2)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"01", "10"}, names)
	})

	t.Run("rejected candidate stays available for other extensions", func(t *testing.T) {
		// Two files in one group with different extensions. Every raw name
		// composes to a taken .txt path for file 0, but the same raw names
		// are free as .md paths, so a valid assignment always exists.
		compose := func(i int, raw string) string {
			if i == 0 {
				return raw + ".txt"
			}
			return raw + ".md"
		}

		for seed := uint64(0); seed < 50; seed++ {
			gen, space := newTestGenerator(t, "abc", 1, seed)
			reg := NewRegistry()
			reg.Reserve("a.txt")
			reg.Reserve("b.txt")

			dec := decisionFor(space, 2, "")
			require.Equal(t, StrategyMatch, dec.Strategy)

			names, err := gen.Generate(dec, reg, compose, 2)
			require.NoError(t, err, "seed %d", seed)
			require.Len(t, names, 2)
			assert.Equal(t, "c.txt", names[0], "seed %d", seed)
			assert.True(t, names[1] == "a.md" || names[1] == "b.md", "seed %d: got %q", seed, names[1])
		}
	})

	t.Run("seeded saturation exhausts", func(t *testing.T) {
		gen, space := newTestGenerator(t, "01", 1, 5)
		reg := NewRegistry()
		reg.Reserve("0")

		dec := decisionFor(space, 2, "")
		_, err := gen.Generate(dec, reg, identity, 2)
		var exhausted *ExhaustedSpaceError
		assert.True(t, errors.As(err, &exhausted))
	})

	t.Run("p greater than q fails", func(t *testing.T) {
		gen, space := newTestGenerator(t, "ab", 2, 1)
		dec := decisionFor(space, 5, StrategyMatch)

		_, err := gen.Generate(dec, NewRegistry(), identity, 5)
		var exhausted *ExhaustedSpaceError
		assert.True(t, errors.As(err, &exhausted))
	})

	t.Run("forcing match against a huge space is refused", func(t *testing.T) {
		gen, space := newTestGenerator(t, "0123456789abcdef", 16, 1)
		dec := decisionFor(space, 2, StrategyMatch)

		_, err := gen.Generate(dec, NewRegistry(), identity, 2)
		assert.ErrorIs(t, err, ErrSpaceTooLarge)
	})
}

func TestEnumerate(t *testing.T) {
	gen, _ := newTestGenerator(t, "ab", 2, 1)
	assert.Equal(t, []string{"aa", "ab", "ba", "bb"}, gen.enumerate())
}
