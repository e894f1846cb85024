package mbvh

import (
	"math"
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcroot/mbvh/pkg/core"
)

// recordingCallbacks is the "instrumented caller that records node/leaf
// calls" the end-to-end scenarios are specified against. It does not model
// a real tree: CreateNode/CreateLeaf record what they were called with and,
// like UpdateNode, return nil, since the scenarios below assert on the
// call log, not on any reduction value. CreateLeaf also copies each leaf's
// primitives, because buffers made by temporal splits are released before
// Build returns.
type recordingCallbacks struct {
	mu         sync.Mutex
	leafCalls  []BuildRecord
	leafPrims  [][]PrimRefMB
	nodeEvents []nodeEvent
}

type nodeEvent struct {
	parentSize int
	children   []BuildRecord
}

func (rc *recordingCallbacks) toCallbacks(recalc RecalculateFunc) Callbacks {
	return Callbacks{
		CreateAlloc: func() Allocator { return nil },
		CreateNode: func(parent BuildRecord, children []BuildRecord, numChildren int, alloc Allocator) NodeHandle {
			rc.mu.Lock()
			defer rc.mu.Unlock()
			rc.nodeEvents = append(rc.nodeEvents, nodeEvent{
				parentSize: parent.Size(),
				children:   append([]BuildRecord(nil), children[:numChildren]...),
			})
			return nil
		},
		UpdateNode: func(node NodeHandle, parentSet SetMB, childReductions []Reduction, numChildren int) Reduction {
			return nil
		},
		CreateLeaf: func(record BuildRecord, alloc Allocator) Reduction {
			rc.mu.Lock()
			defer rc.mu.Unlock()
			rc.leafCalls = append(rc.leafCalls, record)
			rc.leafPrims = append(rc.leafPrims, append([]PrimRefMB(nil), record.Prims.Prims()...))
			return nil
		},
		Recalculate: recalc,
	}
}

func (rc *recordingCallbacks) leafCount() int {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return len(rc.leafCalls)
}

func (rc *recordingCallbacks) nodeCount() int {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return len(rc.nodeEvents)
}

// recalcKeepBounds is a RecalculateFunc for scenarios whose primitives do
// not actually move: bounds are held constant across any narrower time
// window, only the local time-segment range shrinks.
func recalcKeepBounds(p PrimRefMB, tr core.TimeRange) (PrimRefMB, Range) {
	segRange := timeSegmentRange(tr, p.TotalTimeSegments)
	out := p
	out.LocalTimeSegments = segRange.Size()
	return out, segRange
}

func buildRoot(prims []PrimRefMB, tr core.TimeRange) BuildRecord {
	buf := NewSharedPrimitiveBuffer(prims, 1)
	r := NewRange(0, len(prims))
	set := NewSetMB(buf, r, tr)
	info := scanInfo(buf, r, tr)
	return NewBuildRecord(0, set, info)
}

// Scenario 1: a single primitive with a single time segment builds one
// leaf and no inner node.
func TestScenario_SinglePrimitive(t *testing.T) {
	prims := []PrimRefMB{{Bounds: unitBoxAt(0), TotalTimeSegments: 1, PrimID: 0}}
	root := buildRoot(prims, core.NewTimeRange(0, 1))

	rc := &recordingCallbacks{}
	b, err := NewBuilder(DefaultConfig(), rc.toCallbacks(recalcKeepBounds), nil)
	require.NoError(t, err)

	_, err = b.Build(root)
	require.NoError(t, err)

	assert.Equal(t, 1, rc.leafCount(), "expected exactly one createLeaf call")
	assert.Equal(t, 0, rc.nodeCount(), "expected no createNode calls")
}

// Scenario 2: two spatially separated, single-time-segment primitives with
// branchingFactor=2 produce one inner node and two leaves, via an object
// split that leaves the parent's time range untouched on both children.
func TestScenario_TwoSpatiallySeparatedPrimitives(t *testing.T) {
	prims := []PrimRefMB{
		{Bounds: unitBoxAt(0), TotalTimeSegments: 1, PrimID: 0},
		{Bounds: unitBoxAt(10), TotalTimeSegments: 1, PrimID: 1},
	}
	root := buildRoot(prims, core.NewTimeRange(0, 1))

	cfg := DefaultConfig()
	cfg.BranchingFactor = 2
	cfg.MinLeafSize = 1
	cfg.MaxLeafSize = 1

	rc := &recordingCallbacks{}
	b, err := NewBuilder(cfg, rc.toCallbacks(recalcKeepBounds), nil)
	require.NoError(t, err)

	_, err = b.Build(root)
	require.NoError(t, err)

	assert.Equal(t, 2, rc.leafCount(), "expected two leaves")
	require.Equal(t, 1, rc.nodeCount(), "expected one inner node")

	ev := rc.nodeEvents[0]
	require.Len(t, ev.children, 2)
	total := 0
	for _, c := range ev.children {
		total += c.Size()
		assert.Equal(t, core.NewTimeRange(0, 1), c.Prims.Time, "an object split must not narrow the time range")
	}
	assert.Equal(t, 2, total, "children's primitive counts must sum to the parent's")
}

// Scenario 3 (simplified to 2 total time segments, see DESIGN.md): two
// temporally disjoint, spatially identical primitives with
// singleLeafTimeSegment=true split on time at the range's midpoint, and
// both resulting halves become leaves directly.
func TestScenario_TemporallyDisjointPrimitives(t *testing.T) {
	box := unitBoxAt(0)
	prims := []PrimRefMB{
		{Bounds: box, TotalTimeSegments: 2, PrimID: 0},
		{Bounds: box, TotalTimeSegments: 2, PrimID: 1},
	}
	root := buildRoot(prims, core.NewTimeRange(0, 1))

	cfg := DefaultConfig()
	cfg.BranchingFactor = 2
	cfg.MinLeafSize = 2
	cfg.MaxLeafSize = 4
	cfg.SingleLeafTimeSegment = true
	cfg.NumTemporalBins = 2

	rc := &recordingCallbacks{}
	b, err := NewBuilder(cfg, rc.toCallbacks(recalcKeepBounds), nil)
	require.NoError(t, err)

	_, err = b.Build(root)
	require.NoError(t, err)

	require.Equal(t, 1, rc.nodeCount(), "expected exactly one inner node")
	ev := rc.nodeEvents[0]
	require.Len(t, ev.children, 2)

	assert.InDelta(t, 0.5, ev.children[0].Prims.Time.End, 1e-9)
	assert.InDelta(t, 0.5, ev.children[1].Prims.Time.Begin, 1e-9)
	for _, c := range ev.children {
		assert.Equal(t, 2, c.Size(), "a temporal split carries every primitive to both sides")
	}
	assert.Equal(t, 2, rc.leafCount(), "expected both temporal halves to become leaves directly")
}

// Scenario 4: 1024 pseudo-random primitives across 8 time segments build a
// tree respecting the depth bound and leaf-size invariant.
func TestScenario_ManyRandomPrimitives(t *testing.T) {
	const n = 1024
	rng := rand.New(rand.NewSource(1))
	prims := make([]PrimRefMB, n)
	for i := range prims {
		x := rng.Float64() * 1000
		prims[i] = PrimRefMB{Bounds: unitBoxAt(x), TotalTimeSegments: 8, PrimID: i}
	}
	root := buildRoot(prims, core.NewTimeRange(0, 1))

	cfg := DefaultConfig()
	cfg.BranchingFactor = 4
	cfg.MaxLeafSize = 8
	cfg.MinLeafSize = 1
	cfg.SingleLeafTimeSegment = false

	rc := &recordingCallbacks{}
	b, err := NewBuilder(cfg, rc.toCallbacks(recalcKeepBounds), nil)
	require.NoError(t, err)

	_, err = b.Build(root)
	require.NoError(t, err)

	totalPrims := 0
	for _, leaf := range rc.leafCalls {
		assert.LessOrEqual(t, leaf.Size(), cfg.MaxLeafSize, "every leaf must respect maxLeafSize")
		assert.LessOrEqual(t, leaf.Depth, cfg.MaxDepth, "every leaf must respect maxDepth")
		totalPrims += leaf.Size()
	}
	assert.Equal(t, n, totalPrims, "leaf primitive counts must sum to the input size")
}

// Scenario 5: 100 overlapping primitives with identical bounds force the
// fallback median splitter to dominate, yielding a roughly balanced binary
// tree.
func TestScenario_DegenerateOverlappingPrimitives(t *testing.T) {
	const n = 100
	box := unitBoxAt(0)
	prims := make([]PrimRefMB, n)
	for i := range prims {
		prims[i] = PrimRefMB{Bounds: box, TotalTimeSegments: 1, PrimID: i}
	}
	root := buildRoot(prims, core.NewTimeRange(0, 1))

	cfg := DefaultConfig()
	cfg.BranchingFactor = 2
	cfg.MaxLeafSize = 4
	cfg.MinLeafSize = 1

	rc := &recordingCallbacks{}
	b, err := NewBuilder(cfg, rc.toCallbacks(recalcKeepBounds), nil)
	require.NoError(t, err)

	_, err = b.Build(root)
	require.NoError(t, err)

	expectedDepth := int(math.Ceil(math.Log2(float64(n) / float64(cfg.MaxLeafSize))))
	totalPrims := 0
	for _, leaf := range rc.leafCalls {
		assert.LessOrEqual(t, leaf.Size(), cfg.MaxLeafSize)
		assert.LessOrEqual(t, leaf.Depth, expectedDepth+1, "degenerate input should still build a roughly balanced tree")
		totalPrims += leaf.Size()
	}
	assert.Equal(t, n, totalPrims)
}

// Scenario 6: a single primitive spanning 4 time segments alone in its set,
// with singleLeafTimeSegment=true, must be repeatedly temporal-split until
// every leaf covers exactly one segment.
func TestScenario_SinglePrimitiveForcedTemporalSplits(t *testing.T) {
	prims := []PrimRefMB{{Bounds: unitBoxAt(0), TotalTimeSegments: 4, PrimID: 0}}
	root := buildRoot(prims, core.NewTimeRange(0, 1))

	cfg := DefaultConfig()
	cfg.BranchingFactor = 2
	cfg.MinLeafSize = 1
	cfg.MaxLeafSize = 8
	cfg.SingleLeafTimeSegment = true
	cfg.NumTemporalBins = 2

	rc := &recordingCallbacks{}
	b, err := NewBuilder(cfg, rc.toCallbacks(recalcKeepBounds), nil)
	require.NoError(t, err)

	_, err = b.Build(root)
	require.NoError(t, err)

	assert.Equal(t, 3, rc.nodeCount(), "expected three temporal splits")
	assert.Equal(t, 4, rc.leafCount(), "expected four single-segment leaves")
	for i, leaf := range rc.leafCalls {
		for _, p := range rc.leafPrims[i] {
			assert.Equal(t, 1, timeSegmentRange(leaf.Prims.Time, p.TotalTimeSegments).Size(),
				"every leaf primitive must cover exactly one time segment")
		}
	}
}
