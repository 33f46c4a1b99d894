// Package mpcristretto re-exports the engine's subpackages at the module
// root, the same shape soatok-frost's frost.go gives its own internal
// package: a caller wiring up a session only needs this one import, with
// curvegroup, sharedscalar, sharedpoint, authenticated, session, transport
// and triples available underneath for anyone who needs the lower layers
// directly.
package mpcristretto

import (
	"context"

	"github.com/renegade-fi/mpc-ristretto-go/authenticated"
	"github.com/renegade-fi/mpc-ristretto-go/curvegroup"
	"github.com/renegade-fi/mpc-ristretto-go/session"
	"github.com/renegade-fi/mpc-ristretto-go/sharedpoint"
	"github.com/renegade-fi/mpc-ristretto-go/sharedscalar"
	"github.com/renegade-fi/mpc-ristretto-go/transport"
	"github.com/renegade-fi/mpc-ristretto-go/triples"
)

type (
	// Scalar is an element of the Curve25519 scalar field.
	Scalar = curvegroup.Scalar
	// Element is a point on the Ristretto255 group.
	Element = curvegroup.Element

	// SharedScalar is a scalar tagged with a visibility and scoped to a
	// transport and triple source.
	SharedScalar = sharedscalar.Scalar
	// SharedPoint is SharedScalar's Element analogue.
	SharedPoint = sharedpoint.Point

	// AuthenticatedScalar is a Shared scalar carrying a SPDZ-style MAC
	// share, openable only through a checked open.
	AuthenticatedScalar = authenticated.Scalar
	// AuthenticatedPoint is AuthenticatedScalar's Element analogue.
	AuthenticatedPoint = authenticated.Point

	// MACKey is the session-wide additive share of the MAC key alpha.
	MACKey = authenticated.MACKey

	// Session owns one transport and one triple source for the lifetime
	// of a two-party protocol run.
	Session = session.Session
	// SessionConfig carries Session's construction-time knobs.
	SessionConfig = session.Config

	// Transport is the two-party wire contract a session runs over.
	Transport = transport.Transport
	// TripleSource supplies Beaver triples and other preprocessed
	// randomness to a session.
	TripleSource = triples.Source
)

// NewScalar returns the zero scalar.
func NewScalar() *Scalar { return curvegroup.NewScalar() }

// ScalarFromUint64 encodes n as a scalar.
func ScalarFromUint64(n uint64) *Scalar { return curvegroup.ScalarFromUint64(n) }

// RandomScalar draws a uniformly random scalar.
func RandomScalar() (*Scalar, error) { return curvegroup.RandomScalar() }

// ScalarFromBytes decodes the canonical 32-byte encoding of a scalar.
func ScalarFromBytes(b []byte) (*Scalar, error) { return curvegroup.NewScalar().SetBytes(b) }

// NewElement returns the group identity element.
func NewElement() *Element { return curvegroup.NewElement() }

// GeneratorElement returns the Ristretto255 base point.
func GeneratorElement() *Element { return curvegroup.Generator() }

// ElementFromBytes decodes the canonical 32-byte encoding of a point.
func ElementFromBytes(b []byte) (*Element, error) { return curvegroup.NewElement().SetBytes(b) }

// NewSession establishes a session over t, drawing preprocessing material
// from source, and runs the one-time MAC key agreement.
func NewSession(ctx context.Context, t Transport, source TripleSource, cfg SessionConfig) (*Session, error) {
	return session.New(ctx, t, source, cfg)
}
