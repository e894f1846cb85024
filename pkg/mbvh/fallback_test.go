package mbvh

import (
	"testing"

	"github.com/dcroot/mbvh/pkg/core"
)

func TestTimeSegmentRange(t *testing.T) {
	cases := []struct {
		name     string
		tr       core.TimeRange
		segments int
		begin    int
		end      int
	}{
		{"full range", core.NewTimeRange(0, 1), 4, 0, 4},
		{"first half", core.NewTimeRange(0, 0.5), 4, 0, 2},
		{"straddles one boundary", core.NewTimeRange(0.4, 0.6), 4, 1, 3},
		{"single segment", core.NewTimeRange(0.1, 0.2), 4, 0, 1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := timeSegmentRange(c.tr, c.segments)
			if got.Begin != c.begin || got.End != c.end {
				t.Errorf("timeSegmentRange(%v, %d) = [%d,%d), want [%d,%d)", c.tr, c.segments, got.Begin, got.End, c.begin, c.end)
			}
		})
	}
}

func TestFindFallback_PlainFallbackWhenSingleSegmentNotRequired(t *testing.T) {
	buf := spreadAlongX(4)
	r := NewRange(0, 4)
	tr := core.NewTimeRange(0, 1)
	set := NewSetMB(buf, r, tr)
	info := scanInfo(buf, r, tr)
	record := NewBuildRecord(0, set, info)

	split := findFallback(record, false)
	if split.Kind != SplitFallback {
		t.Errorf("expected SplitFallback, got %v", split.Kind)
	}
}

func TestFindFallback_TemporalWhenSingleSegmentRequiredAndPrimitiveStraddles(t *testing.T) {
	straddling := PrimRefMB{Bounds: unitBoxAt(0), TotalTimeSegments: 4, PrimID: 0}
	buf := NewSharedPrimitiveBuffer([]PrimRefMB{straddling}, 1)
	r := NewRange(0, 1)
	tr := core.NewTimeRange(0, 1)
	set := NewSetMB(buf, r, tr)
	info := scanInfo(buf, r, tr)
	record := NewBuildRecord(0, set, info)

	split := findFallback(record, true)
	if split.Kind != SplitTemporal {
		t.Errorf("expected SplitTemporal when a primitive straddles more than one time segment, got %v", split.Kind)
	}
}

func TestSplitFallback_MedianSplitIsDeterministic(t *testing.T) {
	buf := spreadAlongX(6)
	r := NewRange(0, 6)
	tr := core.NewTimeRange(0, 1)
	set := NewSetMB(buf, r, tr)

	left, right, leftInfo, rightInfo := splitFallback(set)

	if left.Size() != 3 || right.Size() != 3 {
		t.Fatalf("expected an even median split of 6 primitives, got %d and %d", left.Size(), right.Size())
	}
	if leftInfo.Count != 3 || rightInfo.Count != 3 {
		t.Error("expected recomputed PrimInfoMB counts to match the median split")
	}
	if left.Buffer != buf || right.Buffer != buf {
		t.Error("expected the fallback split to alias the parent buffer")
	}

	for _, p := range left.Prims() {
		for _, q := range right.Prims() {
			if !p.Less(q) {
				t.Errorf("expected every left primitive to sort before every right primitive: %v vs %v", p, q)
			}
		}
	}
}
