// Package beaver wraps a triples.Source with the single-use consumption
// accounting spec.md §9 calls for ("a session-level counter should track
// triple consumption so a source that runs dry fails loudly rather than
// silently reusing material"). sharedscalar and sharedpoint both consume
// triples through a Counter rather than talking to a triples.Source
// directly, so the accounting happens exactly once regardless of which
// package triggers the multiplication.
package beaver

import (
	"sync"

	"github.com/renegade-fi/mpc-ristretto-go/curvegroup"
	"github.com/renegade-fi/mpc-ristretto-go/mpcerr"
	"github.com/renegade-fi/mpc-ristretto-go/triples"
)

// Counter wraps a triples.Source, tracking how many items (triples, shared
// bits, shared values, inverse pairs) have been consumed this session. Safe for concurrent use, though spec §5's
// cooperative single-threaded scheduling model means contention is not
// expected in practice.
type Counter struct {
	mu       sync.Mutex
	source   triples.Source
	consumed uint64
}

// NewCounter wraps source in a fresh Counter.
func NewCounter(source triples.Source) *Counter {
	return &Counter{source: source}
}

// Consumed reports how many items of any kind have been drawn from this
// counter.
func (c *Counter) Consumed() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.consumed
}

// NextTriplet draws one Beaver triple, incrementing the consumption count.
func (c *Counter) NextTriplet() (a, b, cc *curvegroup.Scalar, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	a, b, cc, err = c.source.NextTriplet()
	if err != nil {
		return nil, nil, nil, mpcerr.TriplesDry(c.consumed)
	}
	c.consumed++
	return a, b, cc, nil
}

// NextSharedBit draws one shared random bit.
func (c *Counter) NextSharedBit() (*curvegroup.Scalar, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	bit, err := c.source.NextSharedBit()
	if err != nil {
		return nil, mpcerr.TriplesDry(c.consumed)
	}
	c.consumed++
	return bit, nil
}

// NextSharedValue draws one shared random field element.
func (c *Counter) NextSharedValue() (*curvegroup.Scalar, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	v, err := c.source.NextSharedValue()
	if err != nil {
		return nil, mpcerr.TriplesDry(c.consumed)
	}
	c.consumed++
	return v, nil
}

// NextSharedInversePair draws one shared (r, r^-1) pair.
func (c *Counter) NextSharedInversePair() (r, rInv *curvegroup.Scalar, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	r, rInv, err = c.source.NextSharedInversePair()
	if err != nil {
		return nil, nil, mpcerr.TriplesDry(c.consumed)
	}
	c.consumed++
	return r, rInv, nil
}
