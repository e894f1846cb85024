package mbvh

import "golang.org/x/sync/errgroup"

// recurse is the unit of work the driver schedules per subtree: build a
// node (or commit to a leaf) for record, then recurse into its children
// either serially or in parallel depending on record's size.
func (b *Builder) recurse(record BuildRecord, alloc Allocator) (Reduction, error) {
	if record.Size() <= b.config.MinLeafSize || record.Depth+MinLargeLeafLevels >= b.config.MaxDepth {
		return b.createLargeLeaf(record, alloc)
	}
	if record.Size() <= b.config.MaxLeafSize {
		split := b.find(record)
		leafSAH := b.config.IntCost * record.Info.LeafSAH(b.config.LogBlockSize)
		splitSAH := b.config.TravCost*record.Info.HalfArea() + b.config.IntCost*split.SplitSAH()
		if leafSAH <= splitSAH {
			return b.createLargeLeaf(record, alloc)
		}
	}

	children := NewChildList(record)
	defer children.Close()

	for children.Len() < b.config.BranchingFactor {
		bestChild := -1
		bestArea := -1.0
		for i := 0; i < children.Len(); i++ {
			c := children.At(i)
			if c.Size() <= b.config.MinLeafSize {
				continue
			}
			area := c.Info.GeomBounds.ExpectedHalfArea()
			if area > bestArea {
				bestArea = area
				bestChild = i
			}
		}
		if bestChild == -1 {
			break
		}

		parent := *children.At(bestChild)
		split := b.find(parent)
		children.At(bestChild).Split = split
		left, right := b.applySplit(parent, split)
		children.Split(bestChild, left, right)
	}

	if children.Len() == 1 {
		return b.createLargeLeaf(record, alloc)
	}

	numChildren := children.Len()
	node := b.callbacks.CreateNode(record, children.Records(), numChildren, alloc)
	reductions := make([]Reduction, numChildren)

	if record.Size() > SingleThreadedThreshold {
		group := new(errgroup.Group)
		for i := 0; i < numChildren; i++ {
			i := i
			childRecord := *children.At(i)
			group.Go(func() error {
				childAlloc := b.callbacks.CreateAlloc()
				r, err := b.recurse(childRecord, childAlloc)
				if err != nil {
					return err
				}
				reductions[i] = r
				return nil
			})
		}
		if err := group.Wait(); err != nil {
			return nil, err
		}
	} else {
		if b.callbacks.ProgressMonitor != nil {
			b.callbacks.ProgressMonitor(record.Size())
		}
		for i := numChildren - 1; i >= 0; i-- {
			r, err := b.recurse(*children.At(i), alloc)
			if err != nil {
				return nil, err
			}
			reductions[i] = r
		}
	}

	return b.callbacks.UpdateNode(node, record.Prims, reductions, numChildren), nil
}
