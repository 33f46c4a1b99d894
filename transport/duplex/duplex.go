// Package duplex implements an in-process, channel-backed transport.Transport
// for this repository's own tests and for cmd/mpcdemo. It is not a
// production transport: spec §1 explicitly carves the wire transport out of
// scope, and a real deployment needs something like original_source's
// QuicTwoPartyNet (a QUIC connection pinned to the peer's party-id
// certificate). duplex exists only so the engine has something concrete to
// run against without a real network stack.
package duplex

import (
	"context"
	"fmt"
	"sync"

	"github.com/renegade-fi/mpc-ristretto-go/curvegroup"
	"github.com/renegade-fi/mpc-ristretto-go/mpcerr"
)

// envelope is the wire unit exchanged over the duplex channel pair, playing
// the role original_source's length-prefixed frames play on a real network.
type envelope struct {
	scalars []*curvegroup.Scalar
	points  []*curvegroup.Element
}

// channelDepth bounds how many messages either party may have in flight
// before a Send blocks. One party's out channel is the other's in channel.
const channelDepth = 16

// Transport is an in-process duplex channel pair implementing
// transport.Transport.
type Transport struct {
	partyID  uint8
	out      chan envelope
	in       chan envelope
	closed   chan struct{}
	closeOne sync.Once
}

// NewPair wires two Transport values to each other's channels: party 0's
// out is party 1's in, and vice versa.
func NewPair() (party0, party1 *Transport) {
	ch01 := make(chan envelope, channelDepth)
	ch10 := make(chan envelope, channelDepth)
	party0 = &Transport{partyID: 0, out: ch01, in: ch10, closed: make(chan struct{})}
	party1 = &Transport{partyID: 1, out: ch10, in: ch01, closed: make(chan struct{})}
	return party0, party1
}

// PartyID returns 0 or 1.
func (t *Transport) PartyID() uint8 { return t.partyID }

// AmKing reports whether this party is party 0.
func (t *Transport) AmKing() bool { return t.partyID == 0 }

func (t *Transport) send(ctx context.Context, env envelope) error {
	select {
	case <-t.closed:
		return mpcerr.Network(fmt.Errorf("transport closed"))
	default:
	}
	select {
	case t.out <- env:
		return nil
	case <-t.closed:
		return mpcerr.Network(fmt.Errorf("transport closed"))
	case <-ctx.Done():
		return mpcerr.Network(ctx.Err())
	}
}

func (t *Transport) recv(ctx context.Context) (envelope, error) {
	select {
	case env, ok := <-t.in:
		if !ok {
			return envelope{}, mpcerr.Network(fmt.Errorf("peer closed transport"))
		}
		return env, nil
	case <-t.closed:
		return envelope{}, mpcerr.Network(fmt.Errorf("transport closed"))
	case <-ctx.Done():
		return envelope{}, mpcerr.Network(ctx.Err())
	}
}

// SendScalar sends a single scalar.
func (t *Transport) SendScalar(ctx context.Context, s *curvegroup.Scalar) error {
	return t.send(ctx, envelope{scalars: []*curvegroup.Scalar{s}})
}

// SendPoint sends a single point.
func (t *Transport) SendPoint(ctx context.Context, p *curvegroup.Element) error {
	return t.send(ctx, envelope{points: []*curvegroup.Element{p}})
}

// SendScalarBatch sends a vector of scalars as one message.
func (t *Transport) SendScalarBatch(ctx context.Context, ss []*curvegroup.Scalar) error {
	return t.send(ctx, envelope{scalars: ss})
}

// SendPointBatch sends a vector of points as one message.
func (t *Transport) SendPointBatch(ctx context.Context, ps []*curvegroup.Element) error {
	return t.send(ctx, envelope{points: ps})
}

// RecvScalar receives a single scalar.
func (t *Transport) RecvScalar(ctx context.Context) (*curvegroup.Scalar, error) {
	env, err := t.recv(ctx)
	if err != nil {
		return nil, err
	}
	if len(env.scalars) != 1 {
		return nil, mpcerr.Serialization("expected a single scalar envelope")
	}
	return env.scalars[0], nil
}

// RecvPoint receives a single point.
func (t *Transport) RecvPoint(ctx context.Context) (*curvegroup.Element, error) {
	env, err := t.recv(ctx)
	if err != nil {
		return nil, err
	}
	if len(env.points) != 1 {
		return nil, mpcerr.Serialization("expected a single point envelope")
	}
	return env.points[0], nil
}

// RecvScalarBatch receives a vector of n scalars sent as one message.
func (t *Transport) RecvScalarBatch(ctx context.Context, n int) ([]*curvegroup.Scalar, error) {
	env, err := t.recv(ctx)
	if err != nil {
		return nil, err
	}
	if len(env.scalars) != n {
		return nil, mpcerr.Serialization(fmt.Sprintf("expected %d scalars, got %d", n, len(env.scalars)))
	}
	return env.scalars, nil
}

// RecvPointBatch receives a vector of n points sent as one message.
func (t *Transport) RecvPointBatch(ctx context.Context, n int) ([]*curvegroup.Element, error) {
	env, err := t.recv(ctx)
	if err != nil {
		return nil, err
	}
	if len(env.points) != n {
		return nil, mpcerr.Serialization(fmt.Sprintf("expected %d points, got %d", n, len(env.points)))
	}
	return env.points, nil
}

// BroadcastScalar sends local and returns the peer's scalar.
func (t *Transport) BroadcastScalar(ctx context.Context, local *curvegroup.Scalar) (*curvegroup.Scalar, error) {
	if err := t.SendScalar(ctx, local); err != nil {
		return nil, err
	}
	return t.RecvScalar(ctx)
}

// BroadcastPoint sends local and returns the peer's point.
func (t *Transport) BroadcastPoint(ctx context.Context, local *curvegroup.Element) (*curvegroup.Element, error) {
	if err := t.SendPoint(ctx, local); err != nil {
		return nil, err
	}
	return t.RecvPoint(ctx)
}

// BroadcastScalarBatch sends local and returns the peer's scalar vector.
func (t *Transport) BroadcastScalarBatch(ctx context.Context, local []*curvegroup.Scalar) ([]*curvegroup.Scalar, error) {
	if err := t.SendScalarBatch(ctx, local); err != nil {
		return nil, err
	}
	return t.RecvScalarBatch(ctx, len(local))
}

// BroadcastPointBatch sends local and returns the peer's point vector.
func (t *Transport) BroadcastPointBatch(ctx context.Context, local []*curvegroup.Element) ([]*curvegroup.Element, error) {
	if err := t.SendPointBatch(ctx, local); err != nil {
		return nil, err
	}
	return t.RecvPointBatch(ctx, len(local))
}

// Close tears down this half of the duplex pair: it stops accepting local
// sends and closes the outbound channel so the peer's next receive observes
// end-of-stream rather than blocking forever. Idempotent.
func (t *Transport) Close() error {
	t.closeOne.Do(func() {
		close(t.closed)
		close(t.out)
	})
	return nil
}
