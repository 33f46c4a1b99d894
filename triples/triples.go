// Package triples defines the Beaver-triple / randomness source contract
// (spec §6). Like transport, this is an external collaborator: a real
// deployment plugs in a dedicated preprocessing service. This package only
// names the contract; triples/fixture ships a deterministic, insecure
// implementation used solely by this repo's own tests.
package triples

import "github.com/renegade-fi/mpc-ristretto-go/curvegroup"

// Source supplies this party's share of preprocessed randomness. Every
// method returns only the calling party's share; sources are stateful and
// assumed to be accessed by one operation at a time (spec §5).
type Source interface {
	// NextSharedBit returns this party's share of a uniformly random bit,
	// represented as a scalar in {0, 1} split additively across the two
	// parties.
	NextSharedBit() (*curvegroup.Scalar, error)

	// NextSharedValue returns this party's share of a uniformly random
	// field element.
	NextSharedValue() (*curvegroup.Scalar, error)

	// NextTriplet returns this party's share (a, b, c) of a Beaver triple
	// with c = a*b held as an invariant by the source. A single-use
	// resource: spec invariant I5.
	NextTriplet() (a, b, c *curvegroup.Scalar, err error)

	// NextSharedInversePair returns this party's share (r, rInv) of a pair
	// of random field elements whose product is 1, used by
	// sharedscalar.Inverse's masked-inversion trick.
	NextSharedInversePair() (r, rInv *curvegroup.Scalar, err error)
}
