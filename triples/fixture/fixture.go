// Package fixture provides a deterministic, insecure triples.Source for
// this repository's own tests, a direct port of original_source's
// PartyIDBeaverSource (integration/mpc_scalar.rs). It is never safe to use
// outside tests: it returns the exact same triple on every call, keyed only
// by party id, so every multiplication in a session using it consumes the
// same preprocessing material, an invariant violation (spec I5) a real
// source must never allow.
package fixture

import "github.com/renegade-fi/mpc-ristretto-go/curvegroup"

// PartyIDSource is a fixed-triple test double. Per the comment on the
// original Rust fixture: assume a = 2, b = 3 ⟹ c = 6, with [a] = (1, 1),
// [b] = (3, 0), [c] = (2, 4). Party 0 holds (1, 3, 2); party 1 holds (1, 0, 4).
type PartyIDSource struct {
	partyID uint8
}

// NewPartyIDSource builds the fixture for the given party id (0 or 1).
func NewPartyIDSource(partyID uint8) *PartyIDSource {
	return &PartyIDSource{partyID: partyID}
}

// NextSharedBit returns this party's id as a {0,1}-valued shared bit, as the
// original fixture does.
func (f *PartyIDSource) NextSharedBit() (*curvegroup.Scalar, error) {
	return curvegroup.ScalarFromUint64(uint64(f.partyID)), nil
}

// NextTriplet returns the fixed triple share for this party.
func (f *PartyIDSource) NextTriplet() (a, b, c *curvegroup.Scalar, err error) {
	if f.partyID == 0 {
		return curvegroup.ScalarFromUint64(1), curvegroup.ScalarFromUint64(3), curvegroup.ScalarFromUint64(2), nil
	}
	return curvegroup.ScalarFromUint64(1), curvegroup.ScalarFromUint64(0), curvegroup.ScalarFromUint64(4), nil
}

// NextSharedInversePair returns shares of the trivial pair (1, 1), whose
// product is 1: party 0 holds (1, 1), party 1 holds (0, 0).
func (f *PartyIDSource) NextSharedInversePair() (r, rInv *curvegroup.Scalar, err error) {
	if f.partyID == 0 {
		one := curvegroup.ScalarFromUint64(1)
		return one, one.Clone(), nil
	}
	return curvegroup.NewScalar(), curvegroup.NewScalar(), nil
}

// NextSharedValue returns this party's id as a shared field element.
func (f *PartyIDSource) NextSharedValue() (*curvegroup.Scalar, error) {
	return curvegroup.ScalarFromUint64(uint64(f.partyID)), nil
}
