package curvegroup

import (
	"fmt"

	"filippo.io/edwards25519/extra/ristretto255"

	"github.com/renegade-fi/mpc-ristretto-go/mpcerr"
)

// ElementSize is the CompressedRistretto encoding length.
const ElementSize = 32

// Element is a point in the Ristretto prime-order group.
type Element struct {
	p *ristretto255.Element
}

// NewElement returns the identity element.
func NewElement() *Element {
	return &Element{p: ristretto255.NewElement()}
}

// Generator returns the distinguished Ristretto base point.
func Generator() *Element {
	return &Element{p: ristretto255.NewGeneratorElement()}
}

// SetBytes decodes a 32-byte CompressedRistretto encoding. It reports a
// Serialization error (not a panic) if the bytes are not a valid encoding,
// matching the "decompress ... signals absent" contract in spec §4.3.
func (z *Element) SetBytes(b []byte) (*Element, error) {
	if _, err := z.p.Decode(b); err != nil {
		return nil, mpcerr.Serialization(fmt.Sprintf("invalid Ristretto encoding: %v", err))
	}
	return z, nil
}

// Bytes returns the 32-byte CompressedRistretto encoding of z.
func (z *Element) Bytes() []byte {
	return z.p.Encode(make([]byte, 0, ElementSize))
}

// Set copies x into z.
func (z *Element) Set(x *Element) *Element {
	z.p.Set(x.p)
	return z
}

// Clone returns an independent copy of z.
func (z *Element) Clone() *Element {
	return NewElement().Set(z)
}

// Add sets z = x + y and returns z.
func (z *Element) Add(x, y *Element) *Element {
	z.p.Add(x.p, y.p)
	return z
}

// Sub sets z = x - y and returns z.
func (z *Element) Sub(x, y *Element) *Element {
	z.p.Subtract(x.p, y.p)
	return z
}

// Negate sets z = -x and returns z.
func (z *Element) Negate(x *Element) *Element {
	z.p.Negate(x.p)
	return z
}

// ScalarMult sets z = s*p and returns z.
func (z *Element) ScalarMult(s *Scalar, p *Element) *Element {
	z.p.ScalarMult(s.inner(), p.p)
	return z
}

// ScalarBaseMult sets z = s*G, where G is the Ristretto base point, and
// returns z.
func (z *Element) ScalarBaseMult(s *Scalar) *Element {
	z.p.ScalarBaseMult(s.inner())
	return z
}

// MultiScalarMult sets z = sum(scalars[i]*points[i]) using the
// constant-time algorithm, appropriate whenever any operand carries secret
// data. Returns an ArithmeticError if the slices are empty or mismatched in
// length.
func (z *Element) MultiScalarMult(scalars []*Scalar, points []*Element) (*Element, error) {
	if len(scalars) == 0 || len(points) == 0 {
		return nil, mpcerr.Arithmetic("multiscalar multiplication requires at least one term")
	}
	if len(scalars) != len(points) {
		return nil, mpcerr.Arithmetic("multiscalar multiplication requires equal-length operand slices")
	}
	ss := make([]*ristretto255.Scalar, len(scalars))
	ps := make([]*ristretto255.Element, len(points))
	for i := range scalars {
		ss[i] = scalars[i].inner()
		ps[i] = points[i].p
	}
	z.p.MultiScalarMult(ss, ps)
	return z, nil
}

// VarTimeMultiScalarMult is the public-data-only counterpart of
// MultiScalarMult: it runs a variable-time algorithm, which is only safe
// when every scalar and point is Public (spec §4.3).
func (z *Element) VarTimeMultiScalarMult(scalars []*Scalar, points []*Element) (*Element, error) {
	if len(scalars) == 0 || len(points) == 0 {
		return nil, mpcerr.Arithmetic("multiscalar multiplication requires at least one term")
	}
	if len(scalars) != len(points) {
		return nil, mpcerr.Arithmetic("multiscalar multiplication requires equal-length operand slices")
	}
	ss := make([]*ristretto255.Scalar, len(scalars))
	ps := make([]*ristretto255.Element, len(points))
	for i := range scalars {
		ss[i] = scalars[i].inner()
		ps[i] = points[i].p
	}
	z.p.VarTimeMultiScalarMult(ss, ps)
	return z, nil
}

// Equal reports whether z and x encode the same group element.
func (z *Element) Equal(x *Element) bool {
	return z.p.Equal(x.p) == 1
}

// IsIdentity reports whether z is the group identity.
func (z *Element) IsIdentity() bool {
	return z.Equal(NewElement())
}
