package mbvh

// needsForcedSplit reports whether record cannot yet become a leaf: either
// it holds more primitives than maxLeafSize allows, or SingleLeafTimeSegment
// is set and at least one of its primitives still straddles more than one
// time segment within record's time range.
func (b *Builder) needsForcedSplit(record BuildRecord) bool {
	if record.Size() > b.config.MaxLeafSize {
		return true
	}
	return b.config.SingleLeafTimeSegment && hasMultiSegmentPrimitive(record)
}

// createLargeLeaf builds a leaf, or an inner node whose children are in turn
// built by createLargeLeaf, for a subtree the driver has committed to
// leafifying: either it is already small enough,
// or continuing the SAH-guided recursion risks exhausting the depth
// budget. Unlike recurse, child splits here come only from the fallback
// splitter -- a deterministic object-median split, or a temporal split at
// a time-segment boundary if SingleLeafTimeSegment forbids a leaf
// primitive from straddling one -- never the SAH heuristic, since this
// path exists to guarantee termination, not to minimize traversal cost.
func (b *Builder) createLargeLeaf(record BuildRecord, alloc Allocator) (Reduction, error) {
	if record.Depth > b.config.MaxDepth {
		return nil, &DepthExhaustedError{Depth: record.Depth, MaxDepth: b.config.MaxDepth}
	}
	if !b.needsForcedSplit(record) {
		return b.callbacks.CreateLeaf(record, alloc), nil
	}

	children := NewChildList(record)
	defer children.Close()

	for children.Len() < b.config.BranchingFactor {
		bestChild := -1
		bestSize := -1
		for i := 0; i < children.Len(); i++ {
			c := children.At(i)
			if !b.needsForcedSplit(*c) {
				continue
			}
			if c.Size() > bestSize {
				bestSize = c.Size()
				bestChild = i
			}
		}
		if bestChild == -1 {
			break
		}

		parent := *children.At(bestChild)
		split := findFallback(parent, b.config.SingleLeafTimeSegment)
		left, right := b.applySplit(parent, split)
		children.Split(bestChild, left, right)
	}

	numChildren := children.Len()
	node := b.callbacks.CreateNode(record, children.Records(), numChildren, alloc)

	reductions := make([]Reduction, numChildren)
	for i := 0; i < numChildren; i++ {
		r, err := b.createLargeLeaf(*children.At(i), alloc)
		if err != nil {
			return nil, err
		}
		reductions[i] = r
	}

	return b.callbacks.UpdateNode(node, record.Prims, reductions, numChildren), nil
}
