package mbvh

import "fmt"

// ConfigError reports an invalid Config passed to NewBuilder.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("mbvh: invalid configuration: %s", e.Reason)
}

// DepthExhaustedError is a fatal, non-recoverable build error: the
// large-leaf builder was entered on a subtree already past maxDepth. It
// signals a pathological input -- degenerate primitives, or excessive
// fragmentation from SingleLeafTimeSegment -- that the heuristics could
// not resolve within the configured depth budget.
type DepthExhaustedError struct {
	Depth    int
	MaxDepth int
}

func (e *DepthExhaustedError) Error() string {
	return fmt.Sprintf("mbvh: depth limit reached: depth %d exceeds maxDepth %d", e.Depth, e.MaxDepth)
}
