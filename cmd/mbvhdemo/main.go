package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/dcroot/mbvh/pkg/core"
	"github.com/dcroot/mbvh/pkg/mbvh"
	"github.com/dcroot/mbvh/pkg/mbvhlog"
	"github.com/dcroot/mbvh/pkg/scene"
)

// subtreeStats is the Reduction type this demo's callbacks thread bottom-up:
// a count of leaves and nodes, the deepest leaf seen, and the primitive
// count covered, folded together by updateNode.
type subtreeStats struct {
	leafCount int
	nodeCount int
	maxDepth  int
	primCount int
}

func (s *subtreeStats) absorb(child *subtreeStats) {
	s.leafCount += child.leafCount
	s.nodeCount += child.nodeCount
	s.primCount += child.primCount
	if child.maxDepth > s.maxDepth {
		s.maxDepth = child.maxDepth
	}
}

func buildCallbacks(logger core.Logger, src *scene.Source) mbvh.Callbacks {
	return mbvh.Callbacks{
		CreateAlloc: func() mbvh.Allocator { return nil },
		CreateNode: func(parent mbvh.BuildRecord, children []mbvh.BuildRecord, numChildren int, alloc mbvh.Allocator) mbvh.NodeHandle {
			return nil
		},
		UpdateNode: func(node mbvh.NodeHandle, parentSet mbvh.SetMB, childReductions []mbvh.Reduction, numChildren int) mbvh.Reduction {
			agg := &subtreeStats{nodeCount: 1}
			for i := 0; i < numChildren; i++ {
				agg.absorb(childReductions[i].(*subtreeStats))
			}
			return agg
		},
		CreateLeaf: func(record mbvh.BuildRecord, alloc mbvh.Allocator) mbvh.Reduction {
			return &subtreeStats{leafCount: 1, maxDepth: record.Depth, primCount: record.Size()}
		},
		ProgressMonitor: func(sizeHint int) {
			logger.Debugf("single-threaded subtree of %d primitives", sizeHint)
		},
		Recalculate: src.Recalculate,
	}
}

func main() {
	gridSize := flag.Int("grid", 10, "grid is N x N moving spheres")
	spacing := flag.Float64("spacing", 2.0, "distance between adjacent sphere centers")
	radius := flag.Float64("radius", 0.5, "sphere radius")
	timeSegments := flag.Int("time-segments", 4, "number of time segments per sphere")
	branchingFactor := flag.Int("branching", 2, "BVH branching factor")
	maxLeafSize := flag.Int("max-leaf-size", 8, "maximum primitives per leaf")
	singleSegment := flag.Bool("single-leaf-time-segment", false, "force every leaf primitive to cover exactly one time segment")
	verbose := flag.Bool("verbose", false, "enable debug logging")
	help := flag.Bool("help", false, "show help information")
	flag.Parse()

	if *help {
		fmt.Println("mbvhdemo: build a motion-blur BVH over a synthetic grid of moving spheres")
		fmt.Println("Usage: mbvhdemo [options]")
		fmt.Println()
		flag.PrintDefaults()
		return
	}

	if *verbose {
		mbvhlog.SetLevel(mbvhlog.Debug)
	}
	logger := mbvhlog.New("mbvhdemo")

	spheres := scene.NewMovingSphereGrid(0, *gridSize, *gridSize, *spacing, *radius, *timeSegments)
	src := scene.NewSource(spheres)

	sceneTime := core.NewTimeRange(0, 1)
	prims := src.PrimRefs(sceneTime)
	buf := mbvh.NewSharedPrimitiveBuffer(prims, 1)
	root := mbvh.NewRootBuildRecord(buf, mbvh.NewRange(0, len(prims)), sceneTime)

	config := mbvh.DefaultConfig()
	config.BranchingFactor = *branchingFactor
	config.MaxLeafSize = *maxLeafSize
	config.SingleLeafTimeSegment = *singleSegment

	builder, err := mbvh.NewBuilder(config, buildCallbacks(logger, src), logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	logger.Infof("building over %d primitives (%dx%d grid)", len(prims), *gridSize, *gridSize)
	start := time.Now()
	reduction, err := builder.Build(root)
	elapsed := time.Since(start)
	if err != nil {
		fmt.Fprintf(os.Stderr, "build failed: %v\n", err)
		os.Exit(1)
	}

	result := reduction.(*subtreeStats)
	logger.Infof("build complete in %v: %d nodes, %d leaves, max depth %d, %d primitives",
		elapsed, result.nodeCount, result.leafCount, result.maxDepth, result.primCount)
}
