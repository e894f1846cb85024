// Package mbvh builds bounding volume hierarchies over motion-blurred
// primitives: a top-down, recursive, SAH-guided construction that chooses
// between object-space and temporal splits at each node.
package mbvh

import "github.com/dcroot/mbvh/pkg/core"

// Builder is the façade entry point: a validated Config, the caller's
// Callbacks, and the two split heuristics it dispatches between.
type Builder struct {
	config        Config
	callbacks     Callbacks
	logger        core.Logger
	objectSplit   ObjectSplitFinder
	temporalSplit TemporalSplitFinder
}

// NewBuilder validates config and constructs a Builder wired to callbacks.
// A nil logger installs core.NopLogger.
func NewBuilder(config Config, callbacks Callbacks, logger core.Logger) (*Builder, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = core.NopLogger{}
	}
	return &Builder{
		config:        config,
		callbacks:     callbacks,
		logger:        logger,
		objectSplit:   NewBinnedSAHObjectSplit(),
		temporalSplit: NewMBlurTemporalSplit(callbacks.Recalculate, config.temporalBins()),
	}, nil
}

// find chooses record's split. The object split is always computed. The
// temporal split is computed, and preferred, only when it is strictly
// cheaper than the object split AND the set's time range is wide enough --
// relative to the finest time segmentation among its primitives -- that
// narrowing it could plausibly help; below that width, the range is no
// wider than about one time segment of its most finely segmented primitive
// and a temporal split could only fragment the set for little bounds
// improvement.
func (b *Builder) find(record BuildRecord) Split {
	objectSplit := b.objectSplit.Find(record.Prims, record.Info, b.config.LogBlockSize)

	if record.Info.MaxTimeSegments <= 0 {
		return objectSplit
	}
	if record.Prims.Time.Size() <= 1.01/float64(record.Info.MaxTimeSegments) {
		return objectSplit
	}

	temporalSplit := b.temporalSplit.Find(record.Prims, record.Info, b.config.LogBlockSize)
	if temporalSplit.Valid() && temporalSplit.SplitSAH() < objectSplit.SplitSAH() {
		return temporalSplit
	}
	return objectSplit
}

// Build runs the builder to completion over root and returns its
// reduction value.
func (b *Builder) Build(root BuildRecord) (Reduction, error) {
	alloc := b.callbacks.CreateAlloc()
	reduction, err := b.recurse(root, alloc)
	if err != nil {
		return nil, err
	}
	b.logger.Infof("build complete: %d primitives", root.Size())
	return reduction, nil
}
