// Package transport defines the two-party wire contract the MPC engine
// relies on (spec §6). The engine never implements a production transport
// itself; a real deployment plugs in something like a QUIC connection with
// party-id-pinned certificates (see original_source's QuicTwoPartyNet). This
// package only names the contract, plus (in the duplex subpackage) an
// in-process test double used by this repo's own tests.
package transport

import (
	"context"

	"github.com/renegade-fi/mpc-ristretto-go/curvegroup"
)

// Transport is the two-party wire contract every suspending operation in
// sharedscalar, sharedpoint and authenticated is built on top of. All
// messages are length-prefixed by the implementation; the engine assumes a
// reliable, in-order, authenticated channel per party and does not defend
// against a dishonest transport.
type Transport interface {
	// PartyID returns this party's id, either 0 or 1.
	PartyID() uint8
	// AmKing reports whether this party is party 0, the king.
	AmKing() bool

	SendScalar(ctx context.Context, s *curvegroup.Scalar) error
	SendPoint(ctx context.Context, p *curvegroup.Element) error
	SendScalarBatch(ctx context.Context, ss []*curvegroup.Scalar) error
	SendPointBatch(ctx context.Context, ps []*curvegroup.Element) error

	RecvScalar(ctx context.Context) (*curvegroup.Scalar, error)
	RecvPoint(ctx context.Context) (*curvegroup.Element, error)
	RecvScalarBatch(ctx context.Context, n int) ([]*curvegroup.Scalar, error)
	RecvPointBatch(ctx context.Context, n int) ([]*curvegroup.Element, error)

	// BroadcastScalar sends local and returns the peer's value: a symmetric
	// exchange primitive used by open() and commit_and_open().
	BroadcastScalar(ctx context.Context, local *curvegroup.Scalar) (*curvegroup.Scalar, error)
	BroadcastPoint(ctx context.Context, local *curvegroup.Element) (*curvegroup.Element, error)
	BroadcastScalarBatch(ctx context.Context, local []*curvegroup.Scalar) ([]*curvegroup.Scalar, error)
	BroadcastPointBatch(ctx context.Context, local []*curvegroup.Element) ([]*curvegroup.Element, error)

	// Close tears the channel down. Called unconditionally on the first
	// authentication failure observed by the session (spec §7).
	Close() error
}
