package sharedscalar

import (
	"context"

	"github.com/renegade-fi/mpc-ristretto-go/beaver"
	"github.com/renegade-fi/mpc-ristretto-go/curvegroup"
	"github.com/renegade-fi/mpc-ristretto-go/mpcerr"
	"github.com/renegade-fi/mpc-ristretto-go/transport"
	"github.com/renegade-fi/mpc-ristretto-go/visibility"
)

// BatchShare distributes a whole vector of the owner's Private values in one
// message, mirroring ShareSecret but amortized across the batch (spec §4.6:
// "one message carries a vector"). As with ShareSecret, both parties must
// call BatchShare with the same ownerPartyID and a slice of the same length;
// the non-owner's slice contents are ignored. The whole batch round trip
// runs under vs[0]'s borrow guard, if any.
func BatchShare(ctx context.Context, ownerPartyID uint8, vs []*Scalar) ([]*Scalar, error) {
	if len(vs) == 0 {
		return nil, nil
	}
	t, tc, g := vs[0].transport, vs[0].triples, vs[0].guard

	if t.PartyID() != ownerPartyID {
		return batchReceiveValue(ctx, t, tc, g, len(vs))
	}

	var out []*Scalar
	err := g.With(ctx, func() error {
		randoms := make([]*curvegroup.Scalar, len(vs))
		shares := make([]*curvegroup.Scalar, len(vs))
		for i, v := range vs {
			if !v.vis.IsPrivate() {
				return mpcerr.Visibility("batch_share: owner's values must be Private")
			}
			r, err := curvegroup.RandomScalar()
			if err != nil {
				return err
			}
			randoms[i] = r
			shares[i] = curvegroup.NewScalar().Sub(v.value, r)
		}

		if err := t.SendScalarBatch(ctx, randoms); err != nil {
			return mpcerr.Network(err)
		}

		out = make([]*Scalar, len(vs))
		for i, s := range shares {
			out[i] = wrap(s, visibility.Shared, t, tc, g)
		}
		return nil
	})
	return out, err
}

// BatchReceiveValue is the non-owner's half of BatchShare, usable directly
// when no placeholder slice exists yet. The result carries no borrow guard;
// attach one per-element if needed.
func BatchReceiveValue(ctx context.Context, t transport.Transport, tc *beaver.Counter, n int) ([]*Scalar, error) {
	return batchReceiveValue(ctx, t, tc, nil, n)
}

func batchReceiveValue(ctx context.Context, t transport.Transport, tc *beaver.Counter, g *transport.Guard, n int) ([]*Scalar, error) {
	var out []*Scalar
	err := g.With(ctx, func() error {
		shares, err := t.RecvScalarBatch(ctx, n)
		if err != nil {
			return mpcerr.Network(err)
		}
		out = make([]*Scalar, n)
		for i, s := range shares {
			out[i] = wrap(s, visibility.Shared, t, tc, g)
		}
		return nil
	})
	return out, err
}

// BatchOpen reconstructs a vector of values with a single round trip: only
// the Shared entries are broadcast (as one concatenated message); Public
// entries are cloned locally, and a Private entry is a VisibilityError, all
// per-entry, matching Open's single-value semantics. The broadcast runs
// under vs[0]'s borrow guard, if any.
func BatchOpen(ctx context.Context, vs []*Scalar) ([]*Scalar, error) {
	if len(vs) == 0 {
		return nil, nil
	}
	t, g := vs[0].transport, vs[0].guard
	results := make([]*Scalar, len(vs))
	sharedIdx := make([]int, 0, len(vs))
	local := make([]*curvegroup.Scalar, 0, len(vs))

	for i, v := range vs {
		switch {
		case v.vis.IsPrivate():
			return nil, mpcerr.Visibility("batch_open: cannot open a Private value")
		case v.vis.IsPublic():
			results[i] = v.Clone()
		default:
			sharedIdx = append(sharedIdx, i)
			local = append(local, v.value)
		}
	}

	if len(sharedIdx) == 0 {
		return results, nil
	}

	err := g.With(ctx, func() error {
		peer, err := t.BroadcastScalarBatch(ctx, local)
		if err != nil {
			return mpcerr.Network(err)
		}
		for k, idx := range sharedIdx {
			sum := curvegroup.NewScalar().Add(local[k], peer[k])
			results[idx] = wrap(sum, visibility.Public, vs[idx].transport, vs[idx].triples, vs[idx].guard)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

// BatchMul multiplies xs[i]*ys[i] elementwise. Pairs that don't both need
// the Beaver protocol (one or both operands Public, or both Private) are
// computed immediately with no network traffic; every Shared*Shared pair
// shares a single batched open of the concatenated (d, e) vectors, so the
// round count is constant (one round) regardless of how many Shared*Shared
// pairs are present (spec §4.6, P8). That single round runs under the
// batch's borrow guard, if any.
func BatchMul(ctx context.Context, xs, ys []*Scalar) ([]*Scalar, error) {
	if len(xs) != len(ys) {
		return nil, mpcerr.Arithmetic("batch_mul requires equal-length slices")
	}
	if len(xs) == 0 {
		return nil, nil
	}

	type pending struct {
		idx            int
		a, b, c        *curvegroup.Scalar
		dShare, eShare *curvegroup.Scalar
	}

	results := make([]*Scalar, len(xs))
	var pendings []pending
	var t transport.Transport
	var tc *beaver.Counter
	var g *transport.Guard

	for i := range xs {
		x, y := xs[i], ys[i]
		if t == nil {
			t, tc, g = x.transport, x.triples, chooseGuard(x.guard, y.guard)
		}

		switch {
		case x.vis.IsPrivate() || y.vis.IsPrivate():
			if !(x.vis.IsPrivate() && y.vis.IsPrivate()) {
				return nil, mpcerr.Visibility("batch_mul: cannot mix a Private operand with a Shared or Public operand")
			}
			product := curvegroup.NewScalar().Mul(x.value, y.value)
			results[i] = wrap(product, visibility.Private, x.transport, x.triples, chooseGuard(x.guard, y.guard))

		case x.vis.IsPublic() || y.vis.IsPublic():
			product := curvegroup.NewScalar().Mul(x.value, y.value)
			results[i] = wrap(product, visibility.Min2(x.vis, y.vis), x.transport, x.triples, chooseGuard(x.guard, y.guard))

		default:
			a, b, c, err := tc.NextTriplet()
			if err != nil {
				return nil, err
			}
			pendings = append(pendings, pending{
				idx:    i,
				a:      a,
				b:      b,
				c:      c,
				dShare: curvegroup.NewScalar().Sub(x.value, a),
				eShare: curvegroup.NewScalar().Sub(y.value, b),
			})
		}
	}

	if len(pendings) == 0 {
		return results, nil
	}

	err := g.With(ctx, func() error {
		local := make([]*curvegroup.Scalar, 0, 2*len(pendings))
		for _, p := range pendings {
			local = append(local, p.dShare, p.eShare)
		}
		peer, err := t.BroadcastScalarBatch(ctx, local)
		if err != nil {
			return mpcerr.Network(err)
		}

		amKing := t.AmKing()
		for i, p := range pendings {
			d := curvegroup.NewScalar().Add(p.dShare, peer[2*i])
			e := curvegroup.NewScalar().Add(p.eShare, peer[2*i+1])

			res := curvegroup.NewScalar().Mul(d, p.b)
			res.Add(res, curvegroup.NewScalar().Mul(e, p.a))
			res.Add(res, p.c)
			if amKing {
				res.Add(res, curvegroup.NewScalar().Mul(d, e))
			}
			results[p.idx] = wrap(res, visibility.Shared, t, tc, g)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}
