// Package sharedscalar implements additively-shared elements of the
// Curve25519 scalar field (spec §4.2): construction, sharing, opening, the
// Beaver-triple multiplication protocol, and the batched primitives that
// amortize round trips across many operands.
//
// A Scalar transparently dispatches between local computation and the
// interactive protocols in beaver/transport based on its own and its
// operand's visibility; callers never branch on visibility themselves.
package sharedscalar

import (
	"context"

	"github.com/renegade-fi/mpc-ristretto-go/beaver"
	"github.com/renegade-fi/mpc-ristretto-go/commitment"
	"github.com/renegade-fi/mpc-ristretto-go/curvegroup"
	"github.com/renegade-fi/mpc-ristretto-go/mpcerr"
	"github.com/renegade-fi/mpc-ristretto-go/transport"
	"github.com/renegade-fi/mpc-ristretto-go/visibility"
)

// Scalar is a Curve25519 scalar field element carrying a visibility tag plus
// the shared handles (transport, triple counter) needed to act on it. The
// zero value is not usable; construct via FromPrivate, FromPublic,
// ShareSecret or ReceiveValue.
type Scalar struct {
	value     *curvegroup.Scalar
	vis       visibility.Visibility
	transport transport.Transport
	triples   *beaver.Counter
	guard     *transport.Guard
}

func wrap(v *curvegroup.Scalar, vis visibility.Visibility, t transport.Transport, tc *beaver.Counter, g *transport.Guard) *Scalar {
	return &Scalar{value: v, vis: vis, transport: t, triples: tc, guard: g}
}

func chooseGuard(a, b *transport.Guard) *transport.Guard {
	if a != nil {
		return a
	}
	return b
}

// FromPrivate wraps a local value as Private: known only to this party, not
// yet shared with the peer. The result carries no borrow guard; attach one
// with WithGuard.
func FromPrivate(v *curvegroup.Scalar, t transport.Transport, tc *beaver.Counter) *Scalar {
	return wrap(v.Clone(), visibility.Private, t, tc, nil)
}

// FromPublic wraps a local value as Public: both parties are assumed to
// already hold the identical value.
func FromPublic(v *curvegroup.Scalar, t transport.Transport, tc *beaver.Counter) *Scalar {
	return wrap(v.Clone(), visibility.Public, t, tc, nil)
}

// FromPrivateUint64 is a convenience wrapper around FromPrivate for small
// integer inputs.
func FromPrivateUint64(n uint64, t transport.Transport, tc *beaver.Counter) *Scalar {
	return FromPrivate(curvegroup.ScalarFromUint64(n), t, tc)
}

// FromPublicUint64 is a convenience wrapper around FromPublic for small
// integer inputs.
func FromPublicUint64(n uint64, t transport.Transport, tc *beaver.Counter) *Scalar {
	return FromPublic(curvegroup.ScalarFromUint64(n), t, tc)
}

// FromShare wraps a raw additive share the caller already holds (e.g. a MAC
// contribution derived outside this package) as a Shared value, without
// running the ShareSecret protocol. Exported for packages layered on top of
// sharedscalar, such as authenticated, that compute their own shares
// directly.
func FromShare(v *curvegroup.Scalar, t transport.Transport, tc *beaver.Counter) *Scalar {
	return wrap(v.Clone(), visibility.Shared, t, tc, nil)
}

// WithGuard returns a copy of z carrying g as its borrow guard. Every
// suspending operation derived from the result (ShareSecret, Open,
// CommitAndOpen, and the batch equivalents) acquires g exclusively for the
// duration of its own wire round trip, and every value derived from the
// result inherits g in turn (spec §5/§9's scoped-borrow discipline). Passing
// a nil g clears it.
func (z *Scalar) WithGuard(g *transport.Guard) *Scalar {
	return wrap(z.value.Clone(), z.vis, z.transport, z.triples, g)
}

// Guard exposes z's borrow guard, for packages layered on top of
// sharedscalar that need to propagate it onto sibling values they construct
// directly (e.g. authenticated's MAC contribution shares).
func (z *Scalar) Guard() *transport.Guard { return z.guard }

// Visibility reports z's visibility tag.
func (z *Scalar) Visibility() visibility.Visibility { return z.vis }

// Transport exposes z's transport handle, for callers layered on top of
// sharedscalar that need to construct sibling Scalars directly.
func (z *Scalar) Transport() transport.Transport { return z.transport }

// Triples exposes z's triple counter handle, for the same reason as Transport.
func (z *Scalar) Triples() *beaver.Counter { return z.triples }

// Value exposes the underlying field element: this party's share if z is
// Shared, the plaintext if z is Public or Private. Intended for tests and
// debugging; production code should prefer Open/CommitAndOpen to reveal a
// value deliberately.
func (z *Scalar) Value() *curvegroup.Scalar { return z.value }

// Bytes returns the canonical encoding of z's local value (share or
// plaintext, per Value's caveat).
func (z *Scalar) Bytes() []byte { return z.value.Bytes() }

// Clone returns an independent copy of z sharing the same transport, triple
// counter and guard handles.
func (z *Scalar) Clone() *Scalar {
	return wrap(z.value.Clone(), z.vis, z.transport, z.triples, z.guard)
}

// Equal reports whether z and x carry bit-equal local values. This compares
// local shares, not reconstructed values; callers comparing Shared operands
// almost always want to Open both sides first.
func (z *Scalar) Equal(x *Scalar) bool {
	return z.value.Equal(x.value)
}

// ShareSecret distributes z, additively, to the peer. Called by both
// parties with the same ownerPartyID: the owner's z must be Private and is
// split into (s-r, r); the non-owner's z is ignored and it instead receives
// its share over the wire. Both results are Shared (spec §4.2, I1). The
// wire round trip runs under z's borrow guard, if any.
func (z *Scalar) ShareSecret(ctx context.Context, ownerPartyID uint8) (*Scalar, error) {
	if z.transport.PartyID() != ownerPartyID {
		return z.receiveValue(ctx)
	}
	if !z.vis.IsPrivate() {
		return nil, mpcerr.Visibility("share_secret: owner's value must be Private")
	}

	var result *Scalar
	err := z.guard.With(ctx, func() error {
		r, err := curvegroup.RandomScalar()
		if err != nil {
			return err
		}
		if err := z.transport.SendScalar(ctx, r); err != nil {
			return mpcerr.Network(err)
		}
		myShare := curvegroup.NewScalar().Sub(z.value, r)
		result = wrap(myShare, visibility.Shared, z.transport, z.triples, z.guard)
		return nil
	})
	return result, err
}

// receiveValue is the guarded, value-carrying form of ReceiveValue: it
// inherits z's guard and handles, used for the non-owner half of
// ShareSecret where a placeholder Scalar already exists.
func (z *Scalar) receiveValue(ctx context.Context) (*Scalar, error) {
	var result *Scalar
	err := z.guard.With(ctx, func() error {
		share, err := z.transport.RecvScalar(ctx)
		if err != nil {
			return mpcerr.Network(err)
		}
		result = wrap(share, visibility.Shared, z.transport, z.triples, z.guard)
		return nil
	})
	return result, err
}

// ReceiveValue is the non-owner's half of ShareSecret, usable directly when
// no placeholder Scalar exists yet. The result carries no borrow guard;
// attach one with WithGuard if the caller needs one.
func ReceiveValue(ctx context.Context, t transport.Transport, tc *beaver.Counter) (*Scalar, error) {
	share, err := t.RecvScalar(ctx)
	if err != nil {
		return nil, mpcerr.Network(err)
	}
	return wrap(share, visibility.Shared, t, tc, nil), nil
}

// Open reconstructs z, broadcasting shares if z is Shared. A Public value is
// returned as a no-op clone; opening a Private value is a programmer error.
// The broadcast runs under z's borrow guard, if any.
func (z *Scalar) Open(ctx context.Context) (*Scalar, error) {
	if z.vis.IsPrivate() {
		return nil, mpcerr.Visibility("open: cannot open a Private value")
	}
	if z.vis.IsPublic() {
		return z.Clone(), nil
	}

	var result *Scalar
	err := z.guard.With(ctx, func() error {
		peerShare, err := z.transport.BroadcastScalar(ctx, z.value)
		if err != nil {
			return mpcerr.Network(err)
		}
		sum := curvegroup.NewScalar().Add(z.value, peerShare)
		result = wrap(sum, visibility.Public, z.transport, z.triples, z.guard)
		return nil
	})
	return result, err
}

// CommitAndOpen opens z the same way Open does, but each party first
// commits to its share and only reveals it once both commitments are
// exchanged, so neither party can adapt its opened share to the other's
// (spec §4.5). Requires z to be Shared; returns AuthenticationError if the
// peer's opening doesn't match its commitment. The three-message exchange
// runs under z's borrow guard, if any, as a single borrow: the commit,
// reveal and open messages cannot be interleaved with another protocol
// step's wire traffic.
func (z *Scalar) CommitAndOpen(ctx context.Context) (*Scalar, error) {
	if !z.vis.IsShared() {
		return nil, mpcerr.Visibility("commit_and_open: operand must be Shared")
	}

	var result *Scalar
	err := z.guard.With(ctx, func() error {
		cm, err := commitment.Commit(z.value)
		if err != nil {
			return err
		}

		peerC, err := z.transport.BroadcastPoint(ctx, cm.C)
		if err != nil {
			return mpcerr.Network(err)
		}
		peerR, err := z.transport.BroadcastScalar(ctx, cm.R)
		if err != nil {
			return mpcerr.Network(err)
		}
		peerV, err := z.transport.BroadcastScalar(ctx, cm.V)
		if err != nil {
			return mpcerr.Network(err)
		}

		if !commitment.Verify(peerC, peerR, peerV) {
			return mpcerr.Authentication("commit_and_open: peer's opening did not match its commitment")
		}

		sum := curvegroup.NewScalar().Add(z.value, peerV)
		result = wrap(sum, visibility.Public, z.transport, z.triples, z.guard)
		return nil
	})
	return result, err
}

// Add returns x + y. Purely local: when both operands are Shared or both
// Public, each party adds its own share; when exactly one is Public, only
// the king folds it in (spec I3), so invariant I1 is preserved.
func Add(x, y *Scalar) *Scalar {
	result := curvegroup.NewScalar()
	switch {
	case x.vis.IsPublic() && y.vis.IsPublic():
		result.Add(x.value, y.value)
	case x.vis.IsPublic() && y.vis.IsShared():
		result = addPublicIntoShared(x, y)
	case x.vis.IsShared() && y.vis.IsPublic():
		result = addPublicIntoShared(y, x)
	default:
		// Shared+Shared, Private+anything, or Public+Private: combine
		// locally. Mixing Private with Shared/Public is not separately
		// rejected for addition (only for multiplication, per the spec's
		// open question) since additive taint to Private is always safe.
		result.Add(x.value, y.value)
	}
	return wrap(result, visibility.Min2(x.vis, y.vis), x.transport, x.triples, chooseGuard(x.guard, y.guard))
}

func addPublicIntoShared(pub, shared *Scalar) *curvegroup.Scalar {
	if shared.transport.AmKing() {
		return curvegroup.NewScalar().Add(shared.value, pub.value)
	}
	return shared.value.Clone()
}

// Sub returns x - y.
func Sub(x, y *Scalar) *Scalar {
	return Add(x, Negate(y))
}

// Negate returns -x. Works for any visibility: each party negates its own
// share (or its plaintext, if Public/Private).
func Negate(x *Scalar) *Scalar {
	return wrap(curvegroup.NewScalar().Negate(x.value), x.vis, x.transport, x.triples, x.guard)
}

// Mul returns x * y, dispatching on visibility:
//
//   - Public*Public or Public*Shared: local multiplication by the public
//     factor.
//   - Private*Private: local multiplication, result Private. Mixing a
//     Private operand with a Shared or Public one is rejected
//     (spec §9's open question, resolved here in favor of "forbid it").
//   - Shared*Shared: the Beaver-triple protocol (spec §4.2), consuming one
//     triple and performing a single batched open of (d, e).
func (z *Scalar) Mul(ctx context.Context, other *Scalar) (*Scalar, error) {
	switch {
	case z.vis.IsPrivate() || other.vis.IsPrivate():
		if !(z.vis.IsPrivate() && other.vis.IsPrivate()) {
			return nil, mpcerr.Visibility("mul: cannot mix a Private operand with a Shared or Public operand")
		}
		product := curvegroup.NewScalar().Mul(z.value, other.value)
		return wrap(product, visibility.Private, z.transport, z.triples, chooseGuard(z.guard, other.guard)), nil

	case z.vis.IsPublic() || other.vis.IsPublic():
		product := curvegroup.NewScalar().Mul(z.value, other.value)
		return wrap(product, visibility.Min2(z.vis, other.vis), z.transport, z.triples, chooseGuard(z.guard, other.guard)), nil

	default:
		results, err := BatchMul(ctx, []*Scalar{z}, []*Scalar{other})
		if err != nil {
			return nil, err
		}
		return results[0], nil
	}
}

// Inverse returns z^-1 via masked inversion: it multiplies z by a shared
// random r drawn from the triple source's inverse-pair stream, opens z*r,
// inverts that public scalar locally, then scales r's share by it, since
// r*(z*r)^-1 = z^-1. Requires z to be
// Shared; costs one Beaver multiplication plus one open (two rounds), each
// acquiring z's borrow guard separately.
func (z *Scalar) Inverse(ctx context.Context) (*Scalar, error) {
	if !z.vis.IsShared() {
		return nil, mpcerr.Visibility("inverse: operand must be Shared")
	}

	rShare, _, err := z.triples.NextSharedInversePair()
	if err != nil {
		return nil, err
	}
	r := wrap(rShare, visibility.Shared, z.transport, z.triples, z.guard)

	masked, err := z.Mul(ctx, r)
	if err != nil {
		return nil, err
	}
	maskedPublic, err := masked.Open(ctx)
	if err != nil {
		return nil, err
	}
	if maskedPublic.value.IsZero() {
		return nil, mpcerr.Arithmetic("inverse: masked value opened to zero")
	}

	maskedInv := curvegroup.NewScalar().Invert(maskedPublic.value)
	resultShare := curvegroup.NewScalar().Mul(rShare, maskedInv)
	return wrap(resultShare, visibility.Shared, z.transport, z.triples, z.guard), nil
}

// Sum adds every element of vs locally; always Public-lattice-correct since
// addition never suspends (spec §4.2: "sum is fully local per I6").
func Sum(vs []*Scalar) (*Scalar, error) {
	if len(vs) == 0 {
		return nil, mpcerr.Arithmetic("sum requires at least one term")
	}
	acc := vs[0].Clone()
	for _, v := range vs[1:] {
		acc = Add(acc, v)
	}
	return acc, nil
}

// Product left-folds Mul across vs, batch-size-1 at a time.
func Product(ctx context.Context, vs []*Scalar) (*Scalar, error) {
	if len(vs) == 0 {
		return nil, mpcerr.Arithmetic("product requires at least one term")
	}
	acc := vs[0]
	for _, v := range vs[1:] {
		var err error
		acc, err = acc.Mul(ctx, v)
		if err != nil {
			return nil, err
		}
	}
	return acc, nil
}

// LinearCombination computes sum(vs[i] * cs[i]) via a single BatchMul round
// followed by a local sum (spec §4.2).
func LinearCombination(ctx context.Context, vs, cs []*Scalar) (*Scalar, error) {
	if len(vs) != len(cs) {
		return nil, mpcerr.Arithmetic("linear_combination requires equal-length slices")
	}
	if len(vs) == 0 {
		return nil, mpcerr.Arithmetic("linear_combination requires at least one term")
	}
	products, err := BatchMul(ctx, vs, cs)
	if err != nil {
		return nil, err
	}
	return Sum(products)
}
