// Package authenticated implements the SPDZ-style MAC-carrying shared
// values of spec §4.4: a value wrapped together with a share of alpha*value
// under a session-wide MAC key alpha, with a checked-open that detects any
// unilateral deviation by a malicious peer.
package authenticated

import (
	"github.com/renegade-fi/mpc-ristretto-go/beaver"
	"github.com/renegade-fi/mpc-ristretto-go/sharedscalar"
	"github.com/renegade-fi/mpc-ristretto-go/transport"
)

// WithGuard returns a copy of k whose key scalar carries g as its borrow
// guard, so every authenticated operation that runs a Beaver multiplication
// by alpha (NewScalar, NewPoint, Mul, ScalarMul) acquires g for its own wire
// round trip the same way any other session-scoped value does. CheckedOpen uses alpha's
// share only locally; its MAC-contribution round runs under the opened
// value's guard.
func (k *MACKey) WithGuard(g *transport.Guard) *MACKey {
	return &MACKey{alpha: k.alpha.WithGuard(g)}
}

// MACKey is the session-wide authentication key alpha: an additively shared
// scalar, identical in shape to any other Shared sharedscalar.Scalar, but
// treated as immutable for the life of the session once created (spec §5:
// "Global, session-lived state is limited to the MAC key handle").
type MACKey struct {
	alpha *sharedscalar.Scalar
}

// NewMACKey draws a fresh, jointly-unknown alpha from the triple source's
// shared-value preprocessing stream (spec §9: preprocessing material
// supplies session setup, not just multiplication triples).
func NewMACKey(t transport.Transport, tc *beaver.Counter) (*MACKey, error) {
	share, err := tc.NextSharedValue()
	if err != nil {
		return nil, err
	}
	return &MACKey{alpha: sharedscalar.FromShare(share, t, tc)}, nil
}

// Scalar exposes this session's MAC key as a plain Shared scalar, for
// callers that need to fold alpha into a computation directly (e.g. a
// public-operand MAC update that multiplies alpha by a public scalar).
func (k *MACKey) Scalar() *sharedscalar.Scalar { return k.alpha }
