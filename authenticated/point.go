package authenticated

import (
	"context"

	"github.com/renegade-fi/mpc-ristretto-go/curvegroup"
	"github.com/renegade-fi/mpc-ristretto-go/mpcerr"
	"github.com/renegade-fi/mpc-ristretto-go/sharedpoint"
	"github.com/renegade-fi/mpc-ristretto-go/sharedscalar"
)

// Point is a shared Ristretto point together with a share of alpha*value,
// the Point analogue of Scalar (spec §4.4, generalized per SPEC_FULL.md:
// the distilled spec describes this table only in prose for scalars, but
// the original source authenticates points the same way).
type Point struct {
	value *sharedpoint.Point
	mac   *sharedpoint.Point
	key   *MACKey
	state state
}

// NewPoint authenticates a freshly Shared point under key, computing its
// MAC share via one scalar*point Beaver multiplication of alpha*value.
func NewPoint(ctx context.Context, value *sharedpoint.Point, key *MACKey) (*Point, error) {
	mac, err := sharedpoint.ScalarMul(ctx, key.alpha, value)
	if err != nil {
		return nil, err
	}
	return &Point{value: value, mac: mac, key: key, state: stateFresh}, nil
}

// Value exposes the underlying shared point, bypassing the MAC check.
func (x *Point) Value() *sharedpoint.Point { return x.value }

func (x *Point) checkFresh(op string) error {
	if x.state != stateFresh {
		return mpcerr.Arithmetic(op + ": authenticated value already Opened")
	}
	return nil
}

// AddPoints returns x + y.
func AddPoints(x, y *Point) (*Point, error) {
	if err := x.checkFresh("add"); err != nil {
		return nil, err
	}
	if err := y.checkFresh("add"); err != nil {
		return nil, err
	}
	return &Point{
		value: sharedpoint.Add(x.value, y.value),
		mac:   sharedpoint.Add(x.mac, y.mac),
		key:   x.key,
		state: stateFresh,
	}, nil
}

// AddPublic returns x + p for a Public sharedpoint.Point p.
func (x *Point) AddPublic(ctx context.Context, p *sharedpoint.Point) (*Point, error) {
	if err := x.checkFresh("add_public"); err != nil {
		return nil, err
	}
	alphaP, err := sharedpoint.ScalarMul(ctx, x.key.alpha, p)
	if err != nil {
		return nil, err
	}
	return &Point{
		value: sharedpoint.Add(x.value, p),
		mac:   sharedpoint.Add(x.mac, alphaP),
		key:   x.key,
		state: stateFresh,
	}, nil
}

// NegatePoint returns -x.
func NegatePoint(x *Point) (*Point, error) {
	if err := x.checkFresh("negate"); err != nil {
		return nil, err
	}
	return &Point{
		value: sharedpoint.Negate(x.value),
		mac:   sharedpoint.Negate(x.mac),
		key:   x.key,
		state: stateFresh,
	}, nil
}

// ScalarMulPublic returns p*x for a Public sharedscalar.Scalar p, local on
// both the value and the MAC share.
func (x *Point) ScalarMulPublic(ctx context.Context, p *sharedscalar.Scalar) (*Point, error) {
	if err := x.checkFresh("scalar_mul_public"); err != nil {
		return nil, err
	}
	value, err := sharedpoint.ScalarMul(ctx, p, x.value)
	if err != nil {
		return nil, err
	}
	mac, err := sharedpoint.ScalarMul(ctx, p, x.mac)
	if err != nil {
		return nil, err
	}
	return &Point{value: value, mac: mac, key: x.key, state: stateFresh}, nil
}

// ScalarMul returns s*x for a Shared authenticated scalar s and a Shared
// authenticated point x: one scalar*point Beaver multiplication for the
// value, a second for the MAC update, mirroring Mul's two-round shape.
func ScalarMul(ctx context.Context, s *Scalar, x *Point) (*Point, error) {
	if err := s.checkFresh("scalar_mul"); err != nil {
		return nil, err
	}
	if err := x.checkFresh("scalar_mul"); err != nil {
		return nil, err
	}
	value, err := sharedpoint.ScalarMul(ctx, s.value, x.value)
	if err != nil {
		return nil, err
	}
	mac, err := sharedpoint.ScalarMul(ctx, x.key.alpha, value)
	if err != nil {
		return nil, err
	}
	return &Point{value: value, mac: mac, key: x.key, state: stateFresh}, nil
}

// CheckedOpen reveals x's value and verifies it against the MAC share, the
// Point analogue of Scalar.CheckedOpen: the zero-check contribution here is
// a group element, verified via sharedpoint's commit-and-open rather than
// sharedscalar's.
func (x *Point) CheckedOpen(ctx context.Context) (*curvegroup.Element, error) {
	if err := x.checkFresh("checked_open"); err != nil {
		return nil, err
	}
	x.state = stateOpened

	vHat, err := x.value.Open(ctx)
	if err != nil {
		return nil, err
	}

	alphaShare := x.key.alpha.Value()
	contribution := curvegroup.NewElement().ScalarMult(alphaShare, vHat.Value())
	contribution.Negate(contribution)
	contribution.Add(contribution, x.mac.Value())

	contribShared := sharedpoint.FromShare(contribution, x.value.Transport(), x.value.Triples()).WithGuard(x.value.Guard())
	sum, err := contribShared.CommitAndOpen(ctx)
	if err != nil {
		return nil, err
	}
	if !sum.Value().IsIdentity() {
		return nil, mpcerr.Authentication("checked_open: MAC check failed")
	}
	return vHat.Value(), nil
}
