// Package taskpool provides a small scoped-task abstraction used by
// BuildRenderLists to run the opacity and transform inheritance passes in
// the background while the render-list traversal proceeds, joining each
// one in only once a mesh-bearing node actually needs its result.
package taskpool

import "golang.org/x/sync/errgroup"

// Runner starts background tasks and waits for all of them to finish. A
// Runner is used for exactly one build: Go is called zero or more times,
// then Wait once.
type Runner interface {
	Go(func() error)
	Wait() error
}

// ErrGroupRunner is a Runner backed by golang.org/x/sync/errgroup, running
// each task on its own goroutine.
type ErrGroupRunner struct {
	group errgroup.Group
}

// NewErrGroupRunner returns a ready-to-use ErrGroupRunner.
func NewErrGroupRunner() *ErrGroupRunner {
	return &ErrGroupRunner{}
}

// Go runs fn on a new goroutine.
func (r *ErrGroupRunner) Go(fn func() error) {
	r.group.Go(fn)
}

// Wait blocks until every task started with Go has returned, and returns
// the first non-nil error any of them returned, if any.
func (r *ErrGroupRunner) Wait() error {
	return r.group.Wait()
}

// Sequential is a Runner that executes every task inline, synchronously,
// as soon as Go is called. Useful for tests and for callers that don't
// want the background-goroutine behavior (e.g. WASM targets without
// usable goroutine parallelism).
type Sequential struct {
	err error
}

// Go runs fn immediately and records its error, if any, for Wait.
func (r *Sequential) Go(fn func() error) {
	if err := fn(); err != nil && r.err == nil {
		r.err = err
	}
}

// Wait returns the first error recorded by a Go call, if any.
func (r *Sequential) Wait() error {
	return r.err
}
