package authenticated_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renegade-fi/mpc-ristretto-go/authenticated"
	"github.com/renegade-fi/mpc-ristretto-go/beaver"
	"github.com/renegade-fi/mpc-ristretto-go/curvegroup"
	"github.com/renegade-fi/mpc-ristretto-go/sharedpoint"
	"github.com/renegade-fi/mpc-ristretto-go/sharedscalar"
	"github.com/renegade-fi/mpc-ristretto-go/transport"
	"github.com/renegade-fi/mpc-ristretto-go/transport/duplex"
	"github.com/renegade-fi/mpc-ristretto-go/triples/fixture"
)

func runBothParties(t *testing.T, fn func(t *testing.T, tr transport.Transport, tc *beaver.Counter) (*curvegroup.Scalar, error)) (r0, r1 *curvegroup.Scalar) {
	t.Helper()
	tr0, tr1 := duplex.NewPair()
	tc0 := beaver.NewCounter(fixture.NewPartyIDSource(0))
	tc1 := beaver.NewCounter(fixture.NewPartyIDSource(1))

	var wg sync.WaitGroup
	var err0, err1 error
	wg.Add(2)
	go func() {
		defer wg.Done()
		r0, err0 = fn(t, tr0, tc0)
	}()
	go func() {
		defer wg.Done()
		r1, err1 = fn(t, tr1, tc1)
	}()
	wg.Wait()

	require.NoError(t, err0)
	require.NoError(t, err1)
	return r0, r1
}

func shareUint64(ctx context.Context, owner uint8, v uint64, tr transport.Transport, tc *beaver.Counter) (*sharedscalar.Scalar, error) {
	var mine *sharedscalar.Scalar
	if tr.PartyID() == owner {
		mine = sharedscalar.FromPrivateUint64(v, tr, tc)
	} else {
		mine = sharedscalar.FromPrivateUint64(0, tr, tc)
	}
	return mine.ShareSecret(ctx, owner)
}

func TestAuthenticatedAddAndCheckedOpen(t *testing.T) {
	r0, r1 := runBothParties(t, func(t *testing.T, tr transport.Transport, tc *beaver.Counter) (*curvegroup.Scalar, error) {
		ctx := context.Background()
		key, err := authenticated.NewMACKey(tr, tc)
		if err != nil {
			return nil, err
		}

		a, err := shareUint64(ctx, 0, 4, tr, tc)
		if err != nil {
			return nil, err
		}
		b, err := shareUint64(ctx, 1, 5, tr, tc)
		if err != nil {
			return nil, err
		}

		authA, err := authenticated.NewScalar(ctx, a, key)
		if err != nil {
			return nil, err
		}
		authB, err := authenticated.NewScalar(ctx, b, key)
		if err != nil {
			return nil, err
		}

		sum, err := authenticated.Add(authA, authB)
		if err != nil {
			return nil, err
		}
		return sum.CheckedOpen(ctx)
	})

	assert.True(t, r0.Equal(curvegroup.ScalarFromUint64(9)))
	assert.True(t, r1.Equal(curvegroup.ScalarFromUint64(9)))
}

func TestAuthenticatedMulAndCheckedOpen(t *testing.T) {
	r0, r1 := runBothParties(t, func(t *testing.T, tr transport.Transport, tc *beaver.Counter) (*curvegroup.Scalar, error) {
		ctx := context.Background()
		key, err := authenticated.NewMACKey(tr, tc)
		if err != nil {
			return nil, err
		}

		a, err := shareUint64(ctx, 0, 6, tr, tc)
		if err != nil {
			return nil, err
		}
		b, err := shareUint64(ctx, 1, 7, tr, tc)
		if err != nil {
			return nil, err
		}

		authA, err := authenticated.NewScalar(ctx, a, key)
		if err != nil {
			return nil, err
		}
		authB, err := authenticated.NewScalar(ctx, b, key)
		if err != nil {
			return nil, err
		}

		product, err := authenticated.Mul(ctx, authA, authB)
		if err != nil {
			return nil, err
		}
		return product.CheckedOpen(ctx)
	})

	assert.True(t, r0.Equal(curvegroup.ScalarFromUint64(42)))
	assert.True(t, r1.Equal(curvegroup.ScalarFromUint64(42)))
}

func TestAuthenticatedAddPublicAndMulPublic(t *testing.T) {
	r0, r1 := runBothParties(t, func(t *testing.T, tr transport.Transport, tc *beaver.Counter) (*curvegroup.Scalar, error) {
		ctx := context.Background()
		key, err := authenticated.NewMACKey(tr, tc)
		if err != nil {
			return nil, err
		}

		a, err := shareUint64(ctx, 0, 3, tr, tc)
		if err != nil {
			return nil, err
		}
		authA, err := authenticated.NewScalar(ctx, a, key)
		if err != nil {
			return nil, err
		}

		five := sharedscalar.FromPublicUint64(5, tr, tc)
		plusFive, err := authA.AddPublic(ctx, five)
		if err != nil {
			return nil, err
		}

		two := sharedscalar.FromPublicUint64(2, tr, tc)
		scaled, err := plusFive.MulPublic(ctx, two)
		if err != nil {
			return nil, err
		}
		return scaled.CheckedOpen(ctx)
	})

	// (3 + 5) * 2 == 16
	assert.True(t, r0.Equal(curvegroup.ScalarFromUint64(16)))
	assert.True(t, r1.Equal(curvegroup.ScalarFromUint64(16)))
}

func TestAuthenticatedPointCheckedOpen(t *testing.T) {
	target := curvegroup.NewElement().ScalarBaseMult(curvegroup.ScalarFromUint64(11))

	tr0, tr1 := duplex.NewPair()
	tc0 := beaver.NewCounter(fixture.NewPartyIDSource(0))
	tc1 := beaver.NewCounter(fixture.NewPartyIDSource(1))

	run := func(tr transport.Transport, tc *beaver.Counter) (*curvegroup.Element, error) {
		ctx := context.Background()
		key, err := authenticated.NewMACKey(tr, tc)
		if err != nil {
			return nil, err
		}

		var mine *sharedpoint.Point
		if tr.PartyID() == 0 {
			mine = sharedpoint.FromPrivate(target, tr, tc)
		} else {
			mine = sharedpoint.FromPrivate(curvegroup.NewElement(), tr, tc)
		}
		shared, err := mine.ShareSecret(ctx, 0)
		if err != nil {
			return nil, err
		}

		authPoint, err := authenticated.NewPoint(ctx, shared, key)
		if err != nil {
			return nil, err
		}
		return authPoint.CheckedOpen(ctx)
	}

	var wg sync.WaitGroup
	var p0, p1 *curvegroup.Element
	var err0, err1 error
	wg.Add(2)
	go func() { defer wg.Done(); p0, err0 = run(tr0, tc0) }()
	go func() { defer wg.Done(); p1, err1 = run(tr1, tc1) }()
	wg.Wait()

	require.NoError(t, err0)
	require.NoError(t, err1)
	assert.True(t, p0.Equal(target))
	assert.True(t, p1.Equal(target))
}
