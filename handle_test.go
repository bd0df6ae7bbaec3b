package rsg

import "testing"

func TestHandleIsNilForZeroValue(t *testing.T) {
	var h NodeHandle
	if !h.IsNil() {
		t.Fatalf("zero value Handle should be nil")
	}
}

func TestSlotArenaReusesFreedSlotWithBumpedGeneration(t *testing.T) {
	a := newSlotArena[transformKey, int]()
	h1 := a.Insert(1)
	a.Remove(h1)
	h2 := a.Insert(2)

	if h1.index != h2.index {
		t.Fatalf("expected freed slot to be reused, got index %d then %d", h1.index, h2.index)
	}
	if h1.generation == h2.generation {
		t.Fatalf("expected generation to bump on reuse")
	}
	if a.Get(h1) != nil {
		t.Fatalf("stale handle h1 should no longer resolve")
	}
	if got := a.Get(h2); got == nil || *got != 2 {
		t.Fatalf("h2 should resolve to 2, got %v", got)
	}
}

func TestSlotArenaLenTracksLiveEntries(t *testing.T) {
	a := newSlotArena[transformKey, int]()
	h1 := a.Insert(1)
	a.Insert(2)
	if a.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", a.Len())
	}
	a.Remove(h1)
	if a.Len() != 1 {
		t.Fatalf("Len() = %d, want 1 after remove", a.Len())
	}
}

func TestMustGetPanicsOnStaleHandle(t *testing.T) {
	a := newSlotArena[transformKey, int]()
	h := a.Insert(1)
	a.Remove(h)
	defer func() {
		if recover() == nil {
			t.Fatalf("expected MustGet to panic on stale handle")
		}
	}()
	a.MustGet(h)
}
