package mbvh

import "testing"

func makePrims(n int) []PrimRefMB {
	prims := make([]PrimRefMB, n)
	for i := range prims {
		prims[i] = PrimRefMB{SceneID: 0, PrimID: i, TotalTimeSegments: 1}
	}
	return prims
}

func TestSharedPrimitiveBuffer_RefCounting(t *testing.T) {
	buf := NewSharedPrimitiveBuffer(makePrims(4), 1)
	if buf.RefCount() != 1 {
		t.Fatalf("expected initial refcount 1, got %d", buf.RefCount())
	}

	buf.IncRef()
	if buf.RefCount() != 2 {
		t.Fatalf("expected refcount 2 after IncRef, got %d", buf.RefCount())
	}

	if freed := buf.DecRef(); freed {
		t.Fatal("expected DecRef to report not-freed while refcount > 0")
	}
	if buf.RefCount() != 1 {
		t.Fatalf("expected refcount 1 after one DecRef, got %d", buf.RefCount())
	}

	if freed := buf.DecRef(); !freed {
		t.Fatal("expected DecRef to report freed when refcount reaches 0")
	}
	if buf.Prims() != nil {
		t.Error("expected Prims() to be nil after buffer is freed")
	}
}

func TestSharedPrimitiveBuffer_PrimsView(t *testing.T) {
	prims := makePrims(3)
	buf := NewSharedPrimitiveBuffer(prims, 1)
	if len(buf.Prims()) != 3 {
		t.Fatalf("expected 3 prims, got %d", len(buf.Prims()))
	}
	if buf.Prims()[1].PrimID != 1 {
		t.Errorf("expected PrimID 1 at index 1, got %d", buf.Prims()[1].PrimID)
	}
}
