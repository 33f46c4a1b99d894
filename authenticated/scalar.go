package authenticated

import (
	"context"

	"github.com/renegade-fi/mpc-ristretto-go/curvegroup"
	"github.com/renegade-fi/mpc-ristretto-go/mpcerr"
	"github.com/renegade-fi/mpc-ristretto-go/sharedscalar"
)

// state tracks the Fresh -> Opened state machine shared by Scalar and
// Point (spec §4.4): every arithmetic operation is valid only on a Fresh
// value, and Opened is terminal.
type state int

const (
	stateFresh state = iota
	stateOpened
)

// Scalar is a shared scalar value together with a share of alpha*value
// under a session MACKey, where alpha is the key's shared scalar (spec
// §4.4, I4).
type Scalar struct {
	value *sharedscalar.Scalar
	mac   *sharedscalar.Scalar
	key   *MACKey
	state state
}

// NewScalar authenticates a freshly Shared value under key, computing its
// MAC share via one Beaver multiplication of alpha*value.
func NewScalar(ctx context.Context, value *sharedscalar.Scalar, key *MACKey) (*Scalar, error) {
	mac, err := key.alpha.Mul(ctx, value)
	if err != nil {
		return nil, err
	}
	return &Scalar{value: value, mac: mac, key: key, state: stateFresh}, nil
}

// Value exposes the underlying shared value, bypassing the MAC check.
// Production code should prefer CheckedOpen to reveal a value.
func (x *Scalar) Value() *sharedscalar.Scalar { return x.value }

func (x *Scalar) checkFresh(op string) error {
	if x.state != stateFresh {
		return mpcerr.Arithmetic(op + ": authenticated value already Opened")
	}
	return nil
}

// Add returns x + y, preserving both the value and MAC invariants (spec
// §4.4's arithmetic table, first row).
func Add(x, y *Scalar) (*Scalar, error) {
	if err := x.checkFresh("add"); err != nil {
		return nil, err
	}
	if err := y.checkFresh("add"); err != nil {
		return nil, err
	}
	return &Scalar{
		value: sharedscalar.Add(x.value, y.value),
		mac:   sharedscalar.Add(x.mac, y.mac),
		key:   x.key,
		state: stateFresh,
	}, nil
}

// AddPublic returns x + p for a Public sharedscalar.Scalar p: only the king
// folds p into the value share, but both parties fold alpha_i*p into their
// own MAC share locally (spec §4.4, second row).
func (x *Scalar) AddPublic(ctx context.Context, p *sharedscalar.Scalar) (*Scalar, error) {
	if err := x.checkFresh("add_public"); err != nil {
		return nil, err
	}
	alphaP, err := x.key.alpha.Mul(ctx, p)
	if err != nil {
		return nil, err
	}
	return &Scalar{
		value: sharedscalar.Add(x.value, p),
		mac:   sharedscalar.Add(x.mac, alphaP),
		key:   x.key,
		state: stateFresh,
	}, nil
}

// Negate returns -x.
func Negate(x *Scalar) (*Scalar, error) {
	if err := x.checkFresh("negate"); err != nil {
		return nil, err
	}
	return &Scalar{
		value: sharedscalar.Negate(x.value),
		mac:   sharedscalar.Negate(x.mac),
		key:   x.key,
		state: stateFresh,
	}, nil
}

// MulPublic returns x * p for a Public sharedscalar.Scalar p, local on both
// the value and the MAC share (spec §4.4, fourth row).
func (x *Scalar) MulPublic(ctx context.Context, p *sharedscalar.Scalar) (*Scalar, error) {
	if err := x.checkFresh("mul_public"); err != nil {
		return nil, err
	}
	value, err := x.value.Mul(ctx, p)
	if err != nil {
		return nil, err
	}
	mac, err := x.mac.Mul(ctx, p)
	if err != nil {
		return nil, err
	}
	return &Scalar{value: value, mac: mac, key: x.key, state: stateFresh}, nil
}

// Mul returns x * y for two Shared*Shared authenticated scalars: one Beaver
// multiplication reconstructs the value, a second scales the result by
// alpha to update the MAC share (spec §4.4, fifth row: "implementers may
// batch the two Beaver consumptions into one round" — not done here, since
// the second multiplication's inputs depend on the first's output).
func Mul(ctx context.Context, x, y *Scalar) (*Scalar, error) {
	if err := x.checkFresh("mul"); err != nil {
		return nil, err
	}
	if err := y.checkFresh("mul"); err != nil {
		return nil, err
	}
	value, err := x.value.Mul(ctx, y.value)
	if err != nil {
		return nil, err
	}
	mac, err := x.key.alpha.Mul(ctx, value)
	if err != nil {
		return nil, err
	}
	return &Scalar{value: value, mac: mac, key: x.key, state: stateFresh}, nil
}

// CheckedOpen reveals x's value and verifies it against the MAC share
// before returning it: each party reconstructs v-hat, computes its local
// contribution cᵢ = mᵢ - alpha_i*v-hat, and the two contributions are
// zero-checked via commit-and-open so neither party can adapt its
// contribution to the other's (spec §4.4, P7). x transitions to Opened
// regardless of outcome; a failed check returns AuthenticationError.
func (x *Scalar) CheckedOpen(ctx context.Context) (*curvegroup.Scalar, error) {
	if err := x.checkFresh("checked_open"); err != nil {
		return nil, err
	}
	x.state = stateOpened

	vHat, err := x.value.Open(ctx)
	if err != nil {
		return nil, err
	}

	alphaShare := x.key.alpha.Value()
	contribution := curvegroup.NewScalar().Mul(alphaShare, vHat.Value())
	contribution.Negate(contribution)
	contribution.Add(contribution, x.mac.Value())

	contribShared := sharedscalar.FromShare(contribution, x.value.Transport(), x.value.Triples()).WithGuard(x.value.Guard())
	sum, err := contribShared.CommitAndOpen(ctx)
	if err != nil {
		return nil, err
	}
	if !sum.Value().IsZero() {
		return nil, mpcerr.Authentication("checked_open: MAC check failed")
	}
	return vHat.Value(), nil
}
