// Package sharedpoint implements additively-shared Ristretto group elements
// (spec §4.3): construction, sharing, opening, and scalar*point
// multiplication via a reused scalar Beaver triple.
//
// A Point transparently dispatches between local computation and the
// interactive protocols in beaver/transport, mirroring sharedscalar.Scalar.
package sharedpoint

import (
	"context"

	"github.com/renegade-fi/mpc-ristretto-go/beaver"
	"github.com/renegade-fi/mpc-ristretto-go/commitment"
	"github.com/renegade-fi/mpc-ristretto-go/curvegroup"
	"github.com/renegade-fi/mpc-ristretto-go/mpcerr"
	"github.com/renegade-fi/mpc-ristretto-go/sharedscalar"
	"github.com/renegade-fi/mpc-ristretto-go/transport"
	"github.com/renegade-fi/mpc-ristretto-go/visibility"
)

// Point is a Ristretto group element carrying a visibility tag plus the
// shared handles needed to act on it. The zero value is not usable;
// construct via FromPrivate, FromPublic, ShareSecret or ReceiveValue.
type Point struct {
	value     *curvegroup.Element
	vis       visibility.Visibility
	transport transport.Transport
	triples   *beaver.Counter
	guard     *transport.Guard
}

func wrap(v *curvegroup.Element, vis visibility.Visibility, t transport.Transport, tc *beaver.Counter, g *transport.Guard) *Point {
	return &Point{value: v, vis: vis, transport: t, triples: tc, guard: g}
}

func chooseGuard(a, b *transport.Guard) *transport.Guard {
	if a != nil {
		return a
	}
	return b
}

// FromPrivate wraps a local point as Private. The result carries no borrow
// guard; attach one with WithGuard.
func FromPrivate(v *curvegroup.Element, t transport.Transport, tc *beaver.Counter) *Point {
	return wrap(v.Clone(), visibility.Private, t, tc, nil)
}

// FromPublic wraps a local point as Public.
func FromPublic(v *curvegroup.Element, t transport.Transport, tc *beaver.Counter) *Point {
	return wrap(v.Clone(), visibility.Public, t, tc, nil)
}

// FromShare wraps a raw additive share the caller already holds as a Shared
// point, without running the ShareSecret protocol. Exported for packages
// layered on top of sharedpoint, such as authenticated.
func FromShare(v *curvegroup.Element, t transport.Transport, tc *beaver.Counter) *Point {
	return wrap(v.Clone(), visibility.Shared, t, tc, nil)
}

// WithGuard returns a copy of z carrying g as its borrow guard, mirroring
// sharedscalar.Scalar.WithGuard.
func (z *Point) WithGuard(g *transport.Guard) *Point {
	return wrap(z.value.Clone(), z.vis, z.transport, z.triples, g)
}

// Guard exposes z's borrow guard, for packages layered on top of
// sharedpoint that construct sibling Points directly (e.g. authenticated's
// MAC contribution shares).
func (z *Point) Guard() *transport.Guard { return z.guard }

// Visibility reports z's visibility tag.
func (z *Point) Visibility() visibility.Visibility { return z.vis }

// Transport exposes z's transport handle, for callers layered on top of
// sharedpoint that need to construct sibling Points directly.
func (z *Point) Transport() transport.Transport { return z.transport }

// Triples exposes z's triple counter handle, for the same reason as Transport.
func (z *Point) Triples() *beaver.Counter { return z.triples }

// Value exposes the underlying point: this party's share if z is Shared, the
// plaintext if z is Public or Private.
func (z *Point) Value() *curvegroup.Element { return z.value }

// Bytes returns the compressed encoding of z's local value.
func (z *Point) Bytes() []byte { return z.value.Bytes() }

// Clone returns an independent copy of z.
func (z *Point) Clone() *Point {
	return wrap(z.value.Clone(), z.vis, z.transport, z.triples, z.guard)
}

// Equal reports whether z and x carry bit-equal local values.
func (z *Point) Equal(x *Point) bool {
	return z.value.Equal(x.value)
}

// CompressedPoint is Point's wire-format encoding: the local share's (or
// plaintext's) CompressedRistretto bytes, tagged with the same visibility
// and handles the Point carried (spec §4.3's compress/decompress, mirroring
// the original implementation's MpcCompressedRistretto, which threads
// visibility/network/beaver_source through the round trip rather than
// dropping them to raw bytes).
type CompressedPoint struct {
	bytes     []byte
	vis       visibility.Visibility
	transport transport.Transport
	triples   *beaver.Counter
	guard     *transport.Guard
}

// Compress encodes z's local share as a CompressedPoint, preserving z's
// visibility and handles. Purely local: compression never touches the
// network, regardless of z's visibility, the same way Clone or Bytes don't.
func (z *Point) Compress() *CompressedPoint {
	return &CompressedPoint{
		bytes:     z.Bytes(),
		vis:       z.vis,
		transport: z.transport,
		triples:   z.triples,
		guard:     z.guard,
	}
}

// Bytes exposes c's compressed encoding, e.g. for wire transmission
// alongside an out-of-band visibility tag.
func (c *CompressedPoint) Bytes() []byte { return c.bytes }

// Visibility reports the visibility c carries.
func (c *CompressedPoint) Visibility() visibility.Visibility { return c.vis }

// Decompress reverses Compress: it decodes c's bytes back into a Point
// share, restoring the visibility and handles c carried. An invalid
// encoding reports a Serialization error rather than panicking.
func (c *CompressedPoint) Decompress() (*Point, error) {
	v, err := curvegroup.NewElement().SetBytes(c.bytes)
	if err != nil {
		return nil, err
	}
	return wrap(v, c.vis, c.transport, c.triples, c.guard), nil
}

// ShareSecret distributes z, additively, to the peer, the Point analogue of
// sharedscalar.Scalar.ShareSecret. The wire round trip runs under z's
// borrow guard, if any.
func (z *Point) ShareSecret(ctx context.Context, ownerPartyID uint8) (*Point, error) {
	if z.transport.PartyID() != ownerPartyID {
		return z.receiveValue(ctx)
	}
	if !z.vis.IsPrivate() {
		return nil, mpcerr.Visibility("share_secret: owner's value must be Private")
	}

	var result *Point
	err := z.guard.With(ctx, func() error {
		r, err := curvegroup.RandomScalar()
		if err != nil {
			return err
		}
		rG := curvegroup.NewElement().ScalarBaseMult(r)
		if err := z.transport.SendPoint(ctx, rG); err != nil {
			return mpcerr.Network(err)
		}
		myShare := curvegroup.NewElement().Sub(z.value, rG)
		result = wrap(myShare, visibility.Shared, z.transport, z.triples, z.guard)
		return nil
	})
	return result, err
}

func (z *Point) receiveValue(ctx context.Context) (*Point, error) {
	var result *Point
	err := z.guard.With(ctx, func() error {
		share, err := z.transport.RecvPoint(ctx)
		if err != nil {
			return mpcerr.Network(err)
		}
		result = wrap(share, visibility.Shared, z.transport, z.triples, z.guard)
		return nil
	})
	return result, err
}

// ReceiveValue is the non-owner's half of ShareSecret. The result carries no
// borrow guard; attach one with WithGuard if needed.
func ReceiveValue(ctx context.Context, t transport.Transport, tc *beaver.Counter) (*Point, error) {
	share, err := t.RecvPoint(ctx)
	if err != nil {
		return nil, mpcerr.Network(err)
	}
	return wrap(share, visibility.Shared, t, tc, nil), nil
}

// Open reconstructs z, broadcasting shares if z is Shared. Runs under z's
// borrow guard, if any.
func (z *Point) Open(ctx context.Context) (*Point, error) {
	if z.vis.IsPrivate() {
		return nil, mpcerr.Visibility("open: cannot open a Private value")
	}
	if z.vis.IsPublic() {
		return z.Clone(), nil
	}

	var result *Point
	err := z.guard.With(ctx, func() error {
		peerShare, err := z.transport.BroadcastPoint(ctx, z.value)
		if err != nil {
			return mpcerr.Network(err)
		}
		sum := curvegroup.NewElement().Add(z.value, peerShare)
		result = wrap(sum, visibility.Public, z.transport, z.triples, z.guard)
		return nil
	})
	return result, err
}

// CommitAndOpen opens z the same way Open does, but via a commit-then-reveal
// exchange so neither party can adapt its opened share to the other's. The
// whole three-message exchange runs under z's borrow guard, if any, as a
// single borrow.
func (z *Point) CommitAndOpen(ctx context.Context) (*Point, error) {
	if !z.vis.IsShared() {
		return nil, mpcerr.Visibility("commit_and_open: operand must be Shared")
	}

	var result *Point
	err := z.guard.With(ctx, func() error {
		blind, err := curvegroup.RandomScalar()
		if err != nil {
			return err
		}
		myHash := curvegroup.HashToScalar("mpc-ristretto point commitment v1", z.value.Bytes())
		cm := commitment.CommitWithBlind(myHash, blind)

		peerC, err := z.transport.BroadcastPoint(ctx, cm.C)
		if err != nil {
			return mpcerr.Network(err)
		}
		peerR, err := z.transport.BroadcastScalar(ctx, cm.R)
		if err != nil {
			return mpcerr.Network(err)
		}
		peerPoint, err := z.transport.BroadcastPoint(ctx, z.value)
		if err != nil {
			return mpcerr.Network(err)
		}
		peerHash := curvegroup.HashToScalar("mpc-ristretto point commitment v1", peerPoint.Bytes())

		if !commitment.Verify(peerC, peerR, peerHash) {
			return mpcerr.Authentication("commit_and_open: peer's opening did not match its commitment")
		}

		sum := curvegroup.NewElement().Add(z.value, peerPoint)
		result = wrap(sum, visibility.Public, z.transport, z.triples, z.guard)
		return nil
	})
	return result, err
}

// Add returns x + y, purely local, mirroring sharedscalar.Add's Public/Shared
// asymmetric king rule (spec I3).
func Add(x, y *Point) *Point {
	result := curvegroup.NewElement()
	switch {
	case x.vis.IsPublic() && y.vis.IsShared():
		result = addPublicIntoShared(x, y)
	case x.vis.IsShared() && y.vis.IsPublic():
		result = addPublicIntoShared(y, x)
	default:
		result.Add(x.value, y.value)
	}
	return wrap(result, visibility.Min2(x.vis, y.vis), x.transport, x.triples, chooseGuard(x.guard, y.guard))
}

func addPublicIntoShared(pub, shared *Point) *curvegroup.Element {
	if shared.transport.AmKing() {
		return curvegroup.NewElement().Add(shared.value, pub.value)
	}
	return shared.value.Clone()
}

// Sub returns x - y.
func Sub(x, y *Point) *Point {
	return Add(x, Negate(y))
}

// Negate returns -x.
func Negate(x *Point) *Point {
	return wrap(curvegroup.NewElement().Negate(x.value), x.vis, x.transport, x.triples, x.guard)
}

// ScalarMul returns scalar*point, dispatching on visibility:
//
//   - Either Public (not mixed with Private): local scalar multiplication.
//   - Private*Private: local, result Private.
//   - Shared scalar times Shared point: the reused-scalar-triple Beaver
//     protocol below.
//
// Both mixed-Private combinations (a Private scalar times a non-Private
// point, or a non-Private scalar times a Private point) are rejected the
// same way sharedscalar.Mul rejects a mixed Private operand.
func ScalarMul(ctx context.Context, s *sharedscalar.Scalar, p *Point) (*Point, error) {
	switch {
	case s.Visibility().IsPrivate() || p.vis.IsPrivate():
		if !(s.Visibility().IsPrivate() && p.vis.IsPrivate()) {
			return nil, mpcerr.Visibility("scalar_mul: cannot mix a Private operand with a Shared or Public operand")
		}
		product := curvegroup.NewElement().ScalarMult(s.Value(), p.value)
		return wrap(product, visibility.Private, p.transport, p.triples, chooseGuard(s.Guard(), p.guard)), nil

	case s.Visibility().IsPublic() || p.vis.IsPublic():
		// A public operand on either side needs no network round trip: each
		// party scales its own point share (or the shared point) by its own
		// scalar share (or the public scalar) directly.
		product := curvegroup.NewElement().ScalarMult(s.Value(), p.value)
		return wrap(product, visibility.Min2(s.Visibility(), p.vis), p.transport, p.triples, chooseGuard(s.Guard(), p.guard)), nil

	default:
		return beaverScalarMul(ctx, s, p)
	}
}

// beaverScalarMul computes alpha*P for a Shared scalar alpha and a Shared
// point P by reusing a plain SCALAR Beaver triple (a, b, c) with c = a*b,
// rather than a dedicated point triple:
//
//	d = open(alpha - a)                (scalar open)
//	bG = ScalarBaseMult(b); cG = ScalarBaseMult(c)     (local, no network)
//	E  = open(P - bG)                  (point open)
//	alpha*P = (d+a)(E+bG) = d*E + d*bG + a*E + cG
//
// Each party computes d*bG + a*E + cG locally from its own triple share; the
// king additionally folds in d*E so the two local results sum to the
// correct product (spec §4.3). The two opens each run under s's borrow
// guard (or p's, if s has none) as their own separate borrow.
func beaverScalarMul(ctx context.Context, s *sharedscalar.Scalar, p *Point) (*Point, error) {
	g := chooseGuard(s.Guard(), p.guard)

	a, b, c, err := p.triples.NextTriplet()
	if err != nil {
		return nil, err
	}

	dShare := curvegroup.NewScalar().Sub(s.Value(), a)
	d, err := openRawScalar(ctx, p.transport, g, dShare)
	if err != nil {
		return nil, err
	}

	bG := curvegroup.NewElement().ScalarBaseMult(b)
	cG := curvegroup.NewElement().ScalarBaseMult(c)

	eShare := curvegroup.NewElement().Sub(p.value, bG)
	e, err := openRawPoint(ctx, p.transport, g, eShare)
	if err != nil {
		return nil, err
	}

	result := curvegroup.NewElement().ScalarMult(d, bG)
	result.Add(result, curvegroup.NewElement().ScalarMult(a, e))
	result.Add(result, cG)
	if p.transport.AmKing() {
		result.Add(result, curvegroup.NewElement().ScalarMult(d, e))
	}

	return wrap(result, visibility.Shared, p.transport, p.triples, g), nil
}

func openRawScalar(ctx context.Context, t transport.Transport, g *transport.Guard, share *curvegroup.Scalar) (*curvegroup.Scalar, error) {
	var result *curvegroup.Scalar
	err := g.With(ctx, func() error {
		peer, err := t.BroadcastScalar(ctx, share)
		if err != nil {
			return mpcerr.Network(err)
		}
		result = curvegroup.NewScalar().Add(share, peer)
		return nil
	})
	return result, err
}

func openRawPoint(ctx context.Context, t transport.Transport, g *transport.Guard, share *curvegroup.Element) (*curvegroup.Element, error) {
	var result *curvegroup.Element
	err := g.With(ctx, func() error {
		peer, err := t.BroadcastPoint(ctx, share)
		if err != nil {
			return mpcerr.Network(err)
		}
		result = curvegroup.NewElement().Add(share, peer)
		return nil
	})
	return result, err
}

// MultiScalarMult computes sum(scalars[i]*points[i]) over possibly-shared
// operands (spec §4.3), dispatching per term: an all-Public input is routed
// to VartimeMultiscalarMul's faster variable-time path; otherwise every term
// that's locally computable without a network round and is not
// Public*Public (a Private*Private pair, or a pair with one Public and one
// Shared operand) is folded into one constant-time
// curvegroup.MultiScalarMult call, the Public*Public terms are summed in a
// second such call, and every remaining Shared*Shared term runs ScalarMul's
// reused-scalar-triple Beaver protocol individually. The partial results
// are summed via Add, so a Public partial sum is folded into a Shared one by
// the king only.
func MultiScalarMult(ctx context.Context, scalars []*sharedscalar.Scalar, points []*Point) (*Point, error) {
	if len(scalars) == 0 || len(points) == 0 {
		return nil, mpcerr.Arithmetic("multiscalar multiplication requires at least one term")
	}
	if len(scalars) != len(points) {
		return nil, mpcerr.Arithmetic("multiscalar multiplication requires equal-length operand slices")
	}

	allPublic := true
	for i := range scalars {
		if !scalars[i].Visibility().IsPublic() || !points[i].vis.IsPublic() {
			allPublic = false
			break
		}
	}
	if allPublic {
		return VartimeMultiscalarMul(scalars, points)
	}

	t, tc, g := points[0].transport, points[0].triples, points[0].guard

	var localScalars []*curvegroup.Scalar
	var localPoints []*curvegroup.Element
	var localVis []visibility.Visibility
	var pubScalars []*curvegroup.Scalar
	var pubPoints []*curvegroup.Element
	var beaverIdx []int

	for i := range scalars {
		sv, pv := scalars[i].Visibility(), points[i].vis
		if sv.IsPrivate() || pv.IsPrivate() {
			if !(sv.IsPrivate() && pv.IsPrivate()) {
				return nil, mpcerr.Visibility("multiscalar_mult: cannot mix a Private operand with a Shared or Public operand")
			}
		}
		if sv.IsShared() && pv.IsShared() {
			beaverIdx = append(beaverIdx, i)
			continue
		}
		if sv.IsPublic() && pv.IsPublic() {
			pubScalars = append(pubScalars, scalars[i].Value())
			pubPoints = append(pubPoints, points[i].value)
			continue
		}
		localScalars = append(localScalars, scalars[i].Value())
		localPoints = append(localPoints, points[i].value)
		localVis = append(localVis, visibility.Min2(sv, pv))
	}

	var acc *Point
	if len(localScalars) > 0 {
		sum, err := curvegroup.NewElement().MultiScalarMult(localScalars, localPoints)
		if err != nil {
			return nil, err
		}
		acc = wrap(sum, visibility.MinN(localVis...), t, tc, g)
	}
	if len(pubScalars) > 0 {
		sum, err := curvegroup.NewElement().MultiScalarMult(pubScalars, pubPoints)
		if err != nil {
			return nil, err
		}
		pub := wrap(sum, visibility.Public, t, tc, g)
		if acc == nil {
			acc = pub
		} else {
			acc = Add(acc, pub)
		}
	}

	for _, i := range beaverIdx {
		term, err := beaverScalarMul(ctx, scalars[i], points[i])
		if err != nil {
			return nil, err
		}
		if acc == nil {
			acc = term
		} else {
			acc = Add(acc, term)
		}
	}

	return acc, nil
}

// VartimeMultiscalarMul is the variable-time counterpart of MultiScalarMult,
// usable only when every scalar and point is Public (e.g. verifying a batch
// of already-opened commitments), where timing side channels leak nothing
// secret.
func VartimeMultiscalarMul(scalars []*sharedscalar.Scalar, points []*Point) (*Point, error) {
	if len(scalars) == 0 || len(points) == 0 {
		return nil, mpcerr.Arithmetic("multiscalar multiplication requires at least one term")
	}
	if len(scalars) != len(points) {
		return nil, mpcerr.Arithmetic("multiscalar multiplication requires equal-length operand slices")
	}

	rawScalars := make([]*curvegroup.Scalar, len(scalars))
	rawPoints := make([]*curvegroup.Element, len(points))
	for i := range scalars {
		if !scalars[i].Visibility().IsPublic() || !points[i].vis.IsPublic() {
			return nil, mpcerr.Visibility("vartime_multiscalar_mul: every operand must be Public")
		}
		rawScalars[i] = scalars[i].Value()
		rawPoints[i] = points[i].value
	}

	sum, err := curvegroup.NewElement().VarTimeMultiScalarMult(rawScalars, rawPoints)
	if err != nil {
		return nil, err
	}
	return wrap(sum, visibility.Public, points[0].transport, points[0].triples, points[0].guard), nil
}
