package namegen

// Strategy identifies a name generation strategy.
type Strategy string

const (
	// StrategyOnDemand samples names independently and retries on collision.
	// Cheap while the batch is small relative to the naming space.
	StrategyOnDemand Strategy = "on_demand"
	// StrategyMatch enumerates the whole naming space, shuffles it, and
	// assigns names in permuted order. Cheap as the batch approaches the
	// size of the space, since it never wastes a draw.
	StrategyMatch Strategy = "match"
)

// DefaultRatioThreshold is the saturation ratio (files / naming space) at
// which generation switches from on-demand sampling to enumerate-then-match.
// The expected number of wasted draws under independent sampling grows
// hyperbolically as the ratio approaches 1; the crossover point is an
// empirical constant, tunable via config.
const DefaultRatioThreshold = 0.1

// Decision records the strategy chosen for one group of files.
type Decision struct {
	Files    int      // files needing a name in this group
	Space    uint64   // naming space size, meaningless when Infinite
	Infinite bool     // space size overflowed uint64
	Ratio    float64  // Files / Space, 0 when Infinite
	Strategy Strategy // chosen strategy
	Forced   bool     // strategy was forced by the caller
}

// Select picks a generation strategy for a group of files. A non-empty
// forced strategy bypasses the ratio heuristic. threshold <= 0 falls back to
// DefaultRatioThreshold.
func Select(files int, space uint64, infinite bool, threshold float64, forced Strategy) Decision {
	if threshold <= 0 {
		threshold = DefaultRatioThreshold
	}

	dec := Decision{
		Files:    files,
		Space:    space,
		Infinite: infinite,
	}
	if !infinite {
		dec.Ratio = float64(files) / float64(space)
	}

	if forced != "" {
		dec.Strategy = forced
		dec.Forced = true
		return dec
	}

	if !infinite && dec.Ratio >= threshold {
		dec.Strategy = StrategyMatch
	} else {
		dec.Strategy = StrategyOnDemand
	}
	return dec
}
