package mbvh

// MaxBranchingFactor is the maximal supported BVH branching factor.
const MaxBranchingFactor = 8

// ChildList is a recursion frame's set of up to MaxBranchingFactor child
// build records together with the shared buffer each one currently
// references. It owns one reference per slot: NewChildList takes the
// single reference its root slot needs, Split maintains the invariant as
// slots are added, and Close releases exactly one reference per live slot.
//
// Go has no RAII, so where the original takes this reference in its
// constructor and releases it in its destructor, ChildList requires an
// explicit Close() -- callers must `defer childList.Close()` immediately
// after construction.
type ChildList struct {
	children []BuildRecord
	buffers  []*SharedPrimitiveBuffer
}

// NewChildList bootstraps a child list with one child: root. It takes a new
// reference on root's buffer for the slot it creates.
func NewChildList(root BuildRecord) *ChildList {
	root.Prims.Buffer.IncRef()
	cl := &ChildList{
		children: make([]BuildRecord, 0, 2*MaxBranchingFactor),
		buffers:  make([]*SharedPrimitiveBuffer, 0, 2*MaxBranchingFactor),
	}
	cl.children = append(cl.children, root)
	cl.buffers = append(cl.buffers, root.Prims.Buffer)
	return cl
}

// Close releases the list's reference on every live slot's buffer. Must be
// called exactly once, after the list is no longer needed.
func (cl *ChildList) Close() {
	for _, buf := range cl.buffers {
		buf.DecRef()
	}
}

// Len returns the number of children currently in the list.
func (cl *ChildList) Len() int {
	return len(cl.children)
}

// At returns a pointer to the i-th child record, for in-place mutation
// (e.g. assigning its best split).
func (cl *ChildList) At(i int) *BuildRecord {
	return &cl.children[i]
}

// Records returns the current children as a slice, for passing to
// createNode/createLeaf callbacks. The slice must not be retained past the
// next call to Split.
func (cl *ChildList) Records() []BuildRecord {
	return cl.children
}

// Split replaces children[bestChild] with left and appends right. The
// buffer each new child references is resolved by identity of the buffer
// pointer against the parent's (pre-split) buffer:
//
//   - if a new child's buffer equals the parent's, this is the object-split
//     or fallback-split case: both sides alias the parent array, so the
//     existing handle is reused and increfed;
//   - otherwise the temporal-split heuristic produced a fresh buffer (with
//     its own refcount of 1 already), which is installed directly.
//
// After both sides are installed, the old parent handle is decrefed once:
// it has been "spent" by this split.
func (cl *ChildList) Split(bestChild int, left, right BuildRecord) {
	parentBuf := cl.buffers[bestChild]

	var leftBuf *SharedPrimitiveBuffer
	if left.Prims.Buffer == parentBuf {
		leftBuf = parentBuf
		parentBuf.IncRef()
	} else {
		leftBuf = left.Prims.Buffer
	}

	var rightBuf *SharedPrimitiveBuffer
	if right.Prims.Buffer == parentBuf {
		rightBuf = parentBuf
		parentBuf.IncRef()
	} else {
		rightBuf = right.Prims.Buffer
	}

	parentBuf.DecRef()

	cl.children[bestChild] = left
	cl.buffers[bestChild] = leftBuf
	cl.children = append(cl.children, right)
	cl.buffers = append(cl.buffers, rightBuf)
}
