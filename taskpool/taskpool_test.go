package taskpool

import (
	"errors"
	"sync/atomic"
	"testing"
)

func TestErrGroupRunnerRunsAllTasks(t *testing.T) {
	r := NewErrGroupRunner()
	var count int32
	for i := 0; i < 8; i++ {
		r.Go(func() error {
			atomic.AddInt32(&count, 1)
			return nil
		})
	}
	if err := r.Wait(); err != nil {
		t.Fatalf("Wait returned %v, want nil", err)
	}
	if count != 8 {
		t.Fatalf("count = %d, want 8", count)
	}
}

func TestErrGroupRunnerPropagatesError(t *testing.T) {
	r := NewErrGroupRunner()
	wantErr := errors.New("boom")
	r.Go(func() error { return nil })
	r.Go(func() error { return wantErr })
	if err := r.Wait(); !errors.Is(err, wantErr) {
		t.Fatalf("Wait returned %v, want %v", err, wantErr)
	}
}

func TestSequentialRunsInline(t *testing.T) {
	r := &Sequential{}
	var order []int
	r.Go(func() error { order = append(order, 1); return nil })
	r.Go(func() error { order = append(order, 2); return nil })
	if err := r.Wait(); err != nil {
		t.Fatalf("Wait returned %v, want nil", err)
	}
	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Fatalf("order = %v, want [1 2]", order)
	}
}

func TestSequentialKeepsFirstError(t *testing.T) {
	r := &Sequential{}
	first := errors.New("first")
	second := errors.New("second")
	r.Go(func() error { return first })
	r.Go(func() error { return second })
	if err := r.Wait(); !errors.Is(err, first) {
		t.Fatalf("Wait returned %v, want %v", err, first)
	}
}
