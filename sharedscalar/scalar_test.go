package sharedscalar_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renegade-fi/mpc-ristretto-go/beaver"
	"github.com/renegade-fi/mpc-ristretto-go/commitment"
	"github.com/renegade-fi/mpc-ristretto-go/curvegroup"
	"github.com/renegade-fi/mpc-ristretto-go/mpcerr"
	"github.com/renegade-fi/mpc-ristretto-go/sharedscalar"
	"github.com/renegade-fi/mpc-ristretto-go/transport"
	"github.com/renegade-fi/mpc-ristretto-go/transport/duplex"
	"github.com/renegade-fi/mpc-ristretto-go/triples/fixture"
)

// runBothParties runs fn concurrently for both parties of a fresh duplex
// pair with fixture Beaver sources, and returns each party's result.
func runBothParties(t *testing.T, fn func(t *testing.T, tr transport.Transport, tc *beaver.Counter) (*sharedscalar.Scalar, error)) (p0, p1 *sharedscalar.Scalar) {
	t.Helper()
	tr0, tr1 := duplex.NewPair()
	tc0 := beaver.NewCounter(fixture.NewPartyIDSource(0))
	tc1 := beaver.NewCounter(fixture.NewPartyIDSource(1))

	var wg sync.WaitGroup
	var err0, err1 error
	wg.Add(2)
	go func() {
		defer wg.Done()
		p0, err0 = fn(t, tr0, tc0)
	}()
	go func() {
		defer wg.Done()
		p1, err1 = fn(t, tr1, tc1)
	}()
	wg.Wait()

	require.NoError(t, err0)
	require.NoError(t, err1)
	return p0, p1
}

func TestScenarioAdd(t *testing.T) {
	// P0 inputs 42, P1 inputs 33; open(s0 + s1 + public(58)) == 133.
	p0, p1 := runBothParties(t, func(t *testing.T, tr transport.Transport, tc *beaver.Counter) (*sharedscalar.Scalar, error) {
		ctx := context.Background()
		var mine *sharedscalar.Scalar
		if tr.PartyID() == 0 {
			mine = sharedscalar.FromPrivateUint64(42, tr, tc)
		} else {
			mine = sharedscalar.FromPrivateUint64(33, tr, tc)
		}

		s0, err := mine.ShareSecret(ctx, 0)
		if err != nil {
			return nil, err
		}
		s1, err := mine.ShareSecret(ctx, 1)
		if err != nil {
			return nil, err
		}

		pub := sharedscalar.FromPublicUint64(58, tr, tc)
		sum := sharedscalar.Add(sharedscalar.Add(s0, s1), pub)
		return sum.Open(ctx)
	})

	assert.True(t, p0.Value().Equal(curvegroup.ScalarFromUint64(133)))
	assert.True(t, p1.Value().Equal(curvegroup.ScalarFromUint64(133)))
}

func TestScenarioMul(t *testing.T) {
	// P0 inputs 10, P1 inputs 6; open(s0*s1) == 60. public(15)*s0 is
	// covered by TestScenarioPublicTimesShared.
	p0, p1 := runBothParties(t, func(t *testing.T, tr transport.Transport, tc *beaver.Counter) (*sharedscalar.Scalar, error) {
		ctx := context.Background()
		var mine *sharedscalar.Scalar
		if tr.PartyID() == 0 {
			mine = sharedscalar.FromPrivateUint64(10, tr, tc)
		} else {
			mine = sharedscalar.FromPrivateUint64(6, tr, tc)
		}

		s0, err := mine.ShareSecret(ctx, 0)
		if err != nil {
			return nil, err
		}
		s1, err := mine.ShareSecret(ctx, 1)
		if err != nil {
			return nil, err
		}

		product, err := s0.Mul(ctx, s1)
		if err != nil {
			return nil, err
		}
		return product.Open(ctx)
	})

	assert.True(t, p0.Value().Equal(curvegroup.ScalarFromUint64(60)))
	assert.True(t, p1.Value().Equal(curvegroup.ScalarFromUint64(60)))
}

func TestScenarioPublicTimesShared(t *testing.T) {
	p0, p1 := runBothParties(t, func(t *testing.T, tr transport.Transport, tc *beaver.Counter) (*sharedscalar.Scalar, error) {
		ctx := context.Background()
		var mine *sharedscalar.Scalar
		if tr.PartyID() == 0 {
			mine = sharedscalar.FromPrivateUint64(10, tr, tc)
		} else {
			mine = sharedscalar.FromPrivateUint64(6, tr, tc)
		}
		s0, err := mine.ShareSecret(ctx, 0)
		if err != nil {
			return nil, err
		}

		pub := sharedscalar.FromPublicUint64(15, tr, tc)
		scaled, err := pub.Mul(ctx, s0)
		if err != nil {
			return nil, err
		}
		return scaled.Open(ctx)
	})

	assert.True(t, p0.Value().Equal(curvegroup.ScalarFromUint64(150)))
	assert.True(t, p1.Value().Equal(curvegroup.ScalarFromUint64(150)))
}

func TestScenarioPublicTimesPublic(t *testing.T) {
	p0, p1 := runBothParties(t, func(t *testing.T, tr transport.Transport, tc *beaver.Counter) (*sharedscalar.Scalar, error) {
		ctx := context.Background()
		a := sharedscalar.FromPublicUint64(15, tr, tc)
		b := sharedscalar.FromPublicUint64(15, tr, tc)
		return a.Mul(ctx, b)
	})

	assert.True(t, p0.Value().Equal(curvegroup.ScalarFromUint64(225)))
	assert.True(t, p1.Value().Equal(curvegroup.ScalarFromUint64(225)))
}

func TestScenarioBatchMulValues(t *testing.T) {
	// vs = [0..9], even indices Public, odd indices shared by P0.
	// batch_mul(vs, vs) == [0,1,4,9,...,81].
	tr0, tr1 := duplex.NewPair()
	tc0 := beaver.NewCounter(fixture.NewPartyIDSource(0))
	tc1 := beaver.NewCounter(fixture.NewPartyIDSource(1))
	ctx := context.Background()

	run := func(tr transport.Transport, tc *beaver.Counter) ([]*sharedscalar.Scalar, error) {
		vs := make([]*sharedscalar.Scalar, 10)
		for i := 0; i < 10; i++ {
			if i%2 == 0 {
				vs[i] = sharedscalar.FromPublicUint64(uint64(i), tr, tc)
				continue
			}
			var mine *sharedscalar.Scalar
			if tr.PartyID() == 0 {
				mine = sharedscalar.FromPrivateUint64(uint64(i), tr, tc)
			} else {
				mine = sharedscalar.FromPrivateUint64(0, tr, tc)
			}
			shared, err := mine.ShareSecret(ctx, 0)
			if err != nil {
				return nil, err
			}
			vs[i] = shared
		}
		products, err := sharedscalar.BatchMul(ctx, vs, vs)
		if err != nil {
			return nil, err
		}
		return sharedscalar.BatchOpen(ctx, products)
	}

	var wg sync.WaitGroup
	var out0, out1 []*sharedscalar.Scalar
	var err0, err1 error
	wg.Add(2)
	go func() { defer wg.Done(); out0, err0 = run(tr0, tc0) }()
	go func() { defer wg.Done(); out1, err1 = run(tr1, tc1) }()
	wg.Wait()

	require.NoError(t, err0)
	require.NoError(t, err1)
	require.Len(t, out0, 10)

	for i := 0; i < 10; i++ {
		expected := curvegroup.ScalarFromUint64(uint64(i * i))
		assert.Truef(t, out0[i].Value().Equal(expected), "index %d: expected %d^2", i, i)
		assert.Truef(t, out1[i].Value().Equal(expected), "index %d: expected %d^2", i, i)
	}
}

func TestScenarioCommitAndOpen(t *testing.T) {
	p0, p1 := runBothParties(t, func(t *testing.T, tr transport.Transport, tc *beaver.Counter) (*sharedscalar.Scalar, error) {
		ctx := context.Background()
		var mine *sharedscalar.Scalar
		if tr.PartyID() == 0 {
			mine = sharedscalar.FromPrivateUint64(42, tr, tc)
		} else {
			mine = sharedscalar.FromPrivateUint64(0, tr, tc)
		}
		shared, err := mine.ShareSecret(ctx, 0)
		if err != nil {
			return nil, err
		}
		return shared.CommitAndOpen(ctx)
	})

	assert.True(t, p0.Value().Equal(curvegroup.ScalarFromUint64(42)))
	assert.True(t, p1.Value().Equal(curvegroup.ScalarFromUint64(42)))
}

func TestCommitAndOpenDetectsTamperedPeer(t *testing.T) {
	// P0 runs CommitAndOpen honestly. P1 commits to its real share but, after
	// seeing P0's commitment, reveals a different value than it committed to
	// (spec §8 scenario 4's negative half, P6/P7): P0 must reject.
	tr0, tr1 := duplex.NewPair()
	tc0 := beaver.NewCounter(fixture.NewPartyIDSource(0))
	tc1 := beaver.NewCounter(fixture.NewPartyIDSource(1))
	ctx := context.Background()

	var wg sync.WaitGroup
	var honestErr, maliciousErr error
	wg.Add(2)

	go func() {
		defer wg.Done()
		mine := sharedscalar.FromPrivateUint64(42, tr0, tc0)
		shared, err := mine.ShareSecret(ctx, 0)
		if err != nil {
			honestErr = err
			return
		}
		_, honestErr = shared.CommitAndOpen(ctx)
	}()

	go func() {
		defer wg.Done()
		mine := sharedscalar.FromPrivateUint64(0, tr1, tc1)
		shared, err := mine.ShareSecret(ctx, 0)
		if err != nil {
			maliciousErr = err
			return
		}

		cm, err := commitment.Commit(shared.Value())
		if err != nil {
			maliciousErr = err
			return
		}
		if _, err := tr1.BroadcastPoint(ctx, cm.C); err != nil {
			maliciousErr = err
			return
		}
		if _, err := tr1.BroadcastScalar(ctx, cm.R); err != nil {
			maliciousErr = err
			return
		}
		tampered := curvegroup.NewScalar().Add(shared.Value(), curvegroup.ScalarFromUint64(1))
		if _, err := tr1.BroadcastScalar(ctx, tampered); err != nil {
			maliciousErr = err
			return
		}
	}()

	wg.Wait()
	require.NoError(t, maliciousErr)
	require.Error(t, honestErr)
	assert.ErrorIs(t, honestErr, mpcerr.ErrAuthentication)
}

func TestCommitAndOpenRejectsNonShared(t *testing.T) {
	tr0, _ := duplex.NewPair()
	tc0 := beaver.NewCounter(fixture.NewPartyIDSource(0))
	pub := sharedscalar.FromPublicUint64(1, tr0, tc0)
	_, err := pub.CommitAndOpen(context.Background())
	assert.Error(t, err)
}

func TestOpenRejectsPrivate(t *testing.T) {
	tr0, _ := duplex.NewPair()
	tc0 := beaver.NewCounter(fixture.NewPartyIDSource(0))
	priv := sharedscalar.FromPrivateUint64(1, tr0, tc0)
	_, err := priv.Open(context.Background())
	assert.Error(t, err)
}

func TestMulRejectsMixedPrivate(t *testing.T) {
	tr0, _ := duplex.NewPair()
	tc0 := beaver.NewCounter(fixture.NewPartyIDSource(0))
	priv := sharedscalar.FromPrivateUint64(1, tr0, tc0)
	pub := sharedscalar.FromPublicUint64(1, tr0, tc0)
	_, err := priv.Mul(context.Background(), pub)
	assert.Error(t, err)
}

func TestScenarioLinearCombination(t *testing.T) {
	// values 1..5 shared by P0, coefficients 7..11 shared by P1.
	// open(sum(v_i * c_i)) == 145.
	p0, p1 := runBothParties(t, func(t *testing.T, tr transport.Transport, tc *beaver.Counter) (*sharedscalar.Scalar, error) {
		ctx := context.Background()
		values := make([]*sharedscalar.Scalar, 5)
		coeffs := make([]*sharedscalar.Scalar, 5)

		for i := 0; i < 5; i++ {
			var v *sharedscalar.Scalar
			if tr.PartyID() == 0 {
				v = sharedscalar.FromPrivateUint64(uint64(i+1), tr, tc)
			} else {
				v = sharedscalar.FromPrivateUint64(0, tr, tc)
			}
			shared, err := v.ShareSecret(ctx, 0)
			if err != nil {
				return nil, err
			}
			values[i] = shared

			var c *sharedscalar.Scalar
			if tr.PartyID() == 1 {
				c = sharedscalar.FromPrivateUint64(uint64(i+7), tr, tc)
			} else {
				c = sharedscalar.FromPrivateUint64(0, tr, tc)
			}
			sharedC, err := c.ShareSecret(ctx, 1)
			if err != nil {
				return nil, err
			}
			coeffs[i] = sharedC
		}

		lc, err := sharedscalar.LinearCombination(ctx, values, coeffs)
		if err != nil {
			return nil, err
		}
		return lc.Open(ctx)
	})

	assert.True(t, p0.Value().Equal(curvegroup.ScalarFromUint64(145)))
	assert.True(t, p1.Value().Equal(curvegroup.ScalarFromUint64(145)))
}

func TestScenarioSimpleMPC(t *testing.T) {
	// Each party inputs its party id, shares to both, adds 1 to each share,
	// sums, squares, opens. Result is 9 (per spec §8 scenario 5:
	// (0+1) + (1+1) = 3, 3^2 = 9).
	p0, p1 := runBothParties(t, func(t *testing.T, tr transport.Transport, tc *beaver.Counter) (*sharedscalar.Scalar, error) {
		ctx := context.Background()
		mine := sharedscalar.FromPrivateUint64(uint64(tr.PartyID()), tr, tc)

		shareFrom0, err := mine.ShareSecret(ctx, 0)
		if err != nil {
			return nil, err
		}
		shareFrom1, err := mine.ShareSecret(ctx, 1)
		if err != nil {
			return nil, err
		}

		one := sharedscalar.FromPublicUint64(1, tr, tc)
		plusOne0 := sharedscalar.Add(shareFrom0, one)
		plusOne1 := sharedscalar.Add(shareFrom1, one)

		total := sharedscalar.Add(plusOne0, plusOne1)
		squared, err := total.Mul(ctx, total)
		if err != nil {
			return nil, err
		}
		return squared.Open(ctx)
	})

	assert.True(t, p0.Value().Equal(curvegroup.ScalarFromUint64(9)))
	assert.True(t, p1.Value().Equal(curvegroup.ScalarFromUint64(9)))
}

func TestInverse(t *testing.T) {
	p0, p1 := runBothParties(t, func(t *testing.T, tr transport.Transport, tc *beaver.Counter) (*sharedscalar.Scalar, error) {
		ctx := context.Background()
		var mine *sharedscalar.Scalar
		if tr.PartyID() == 0 {
			mine = sharedscalar.FromPrivateUint64(7, tr, tc)
		} else {
			mine = sharedscalar.FromPrivateUint64(0, tr, tc)
		}
		shared, err := mine.ShareSecret(ctx, 0)
		if err != nil {
			return nil, err
		}
		inv, err := shared.Inverse(ctx)
		if err != nil {
			return nil, err
		}
		product, err := shared.Mul(ctx, inv)
		if err != nil {
			return nil, err
		}
		return product.Open(ctx)
	})

	assert.True(t, p0.Value().Equal(curvegroup.ScalarFromUint64(1)))
	assert.True(t, p1.Value().Equal(curvegroup.ScalarFromUint64(1)))
}
