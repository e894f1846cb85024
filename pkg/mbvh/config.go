package mbvh

// MinLargeLeafLevels is the number of levels before maxDepth at which the
// driver switches to building a balanced large leaf rather than risking
// running out of depth mid-split.
const MinLargeLeafLevels = 8

// SingleThreadedThreshold is the subtree size at or below which recursion
// stays on the calling goroutine instead of forking child tasks.
const SingleThreadedThreshold = 1024

// NumObjectBins is the number of buckets the object-split heuristic bins
// primitive centers into along each axis.
const NumObjectBins = 12

// DefaultNumTemporalBins is the number of sub-ranges the temporal-split
// heuristic divides the time range into when Config.NumTemporalBins is 1 or
// less.
const DefaultNumTemporalBins = 2

// Config holds the builder's tunable parameters.
type Config struct {
	BranchingFactor       int     // max children per inner node, <= MaxBranchingFactor
	MaxDepth              int     // must be > MinLargeLeafLevels
	LogBlockSize          uint    // log2 of the intersection block size used by the leaf SAH term
	MinLeafSize           int     // the SAH loop never splits <= this many primitives; the large-leaf path still may under SingleLeafTimeSegment
	MaxLeafSize           int     // leaves hold at most this many primitives, barring forced leafification
	TravCost              float64 // traversal cost coefficient
	IntCost               float64 // intersection cost coefficient
	SingleLeafTimeSegment bool    // if true, every leaf primitive covers exactly one time segment
	NumTemporalBins       int     // equal time sub-ranges the temporal heuristic tests the interior boundaries of; <= 1 = DefaultNumTemporalBins
}

// DefaultConfig returns sensible default values, mirroring typical SAH
// builder tunings (travCost=1, intCost=1, a handful of primitives per leaf).
func DefaultConfig() Config {
	return Config{
		BranchingFactor:       2,
		MaxDepth:              32,
		LogBlockSize:          0,
		MinLeafSize:           1,
		MaxLeafSize:           8,
		TravCost:              1.0,
		IntCost:               1.0,
		SingleLeafTimeSegment: false,
		NumTemporalBins:       DefaultNumTemporalBins,
	}
}

// Validate checks the configuration constraints from the builder's
// external contract, returning a *ConfigError describing the first
// violation found.
func (c Config) Validate() error {
	if c.BranchingFactor > MaxBranchingFactor {
		return &ConfigError{Reason: "branchingFactor exceeds MaxBranchingFactor"}
	}
	if c.BranchingFactor < 2 {
		return &ConfigError{Reason: "branchingFactor must be at least 2"}
	}
	if c.MinLeafSize > c.MaxLeafSize {
		return &ConfigError{Reason: "minLeafSize must not exceed maxLeafSize"}
	}
	if c.MaxDepth <= MinLargeLeafLevels {
		return &ConfigError{Reason: "maxDepth must be greater than MinLargeLeafLevels"}
	}
	return nil
}

// temporalBins returns the configured bin count, or the default if unset.
func (c Config) temporalBins() int {
	if c.NumTemporalBins <= 0 {
		return DefaultNumTemporalBins
	}
	return c.NumTemporalBins
}
