package transport

import (
	"context"

	"golang.org/x/sync/semaphore"
)

// Guard serializes access to a Transport (and, by the same token, the
// triple-source handle a session pairs with it) across the suspending
// operations sharedscalar and sharedpoint expose, giving spec §5/§9's
// "scoped exclusive borrow, no re-entrant borrow" discipline a single
// enforcement point instead of leaving it to caller discipline.
//
// A Guard protects one primitive suspending call at a time (ShareSecret,
// Open, CommitAndOpen, one BatchShare/BatchOpen/BatchMul round, each of the
// two opens of a scalar*point Beaver multiplication): the same per-call
// granularity beaver.Counter already uses internally, not whole composite
// call chains like Inverse's multiply-then-open. Two top-level calls issued
// concurrently from different goroutines against values sharing a Guard
// never interleave their wire traffic; a caller that issues them
// sequentially, the only supported calling convention, sees no difference
// at all. A nil *Guard is a no-op, so sharedscalar/sharedpoint values built
// directly against a transport.Transport (as this module's own tests do)
// are unaffected.
type Guard struct {
	sem *semaphore.Weighted
}

// NewGuard returns a Guard with one unit of concurrency: only one borrower
// at a time.
func NewGuard() *Guard {
	return &Guard{sem: semaphore.NewWeighted(1)}
}

// With runs fn while holding g exclusively. A nil receiver runs fn
// unguarded.
func (g *Guard) With(ctx context.Context, fn func() error) error {
	if g == nil {
		return fn()
	}
	if err := g.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	defer g.sem.Release(1)
	return fn()
}
