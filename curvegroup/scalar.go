// Package curvegroup wraps filippo.io/edwards25519/extra/ristretto255 behind
// Scalar and Element types in the canonical dst.Op(a, b)-returns-dst style,
// the same shape soatok-frost uses for its Ed25519 Scalar/Element wrappers.
// This is the "local computation" substrate sharedscalar, sharedpoint,
// authenticated and commitment dispatch to; it carries no notion of
// visibility or networking.
package curvegroup

import (
	"crypto/rand"
	"fmt"

	"filippo.io/edwards25519/extra/ristretto255"

	"github.com/renegade-fi/mpc-ristretto-go/mpcerr"
)

// ScalarSize is the canonical little-endian encoding length of a Curve25519
// scalar.
const ScalarSize = 32

// Scalar is an element of the Curve25519 scalar field.
type Scalar struct {
	s *ristretto255.Scalar
}

// NewScalar returns the zero scalar.
func NewScalar() *Scalar {
	return &Scalar{s: ristretto255.NewScalar()}
}

// ScalarFromUint64 encodes n as a scalar.
func ScalarFromUint64(n uint64) *Scalar {
	buf := make([]byte, 64)
	for i := 0; i < 8; i++ {
		buf[i] = byte(n >> (8 * i))
	}
	s, err := ristretto255.NewScalar().SetUniformBytes(buf)
	if err != nil {
		// SetUniformBytes only fails on a length mismatch, never on content.
		panic(fmt.Sprintf("curvegroup: unreachable SetUniformBytes failure: %v", err))
	}
	return &Scalar{s: s}
}

// RandomScalar draws a uniformly random scalar using crypto/rand.
func RandomScalar() (*Scalar, error) {
	buf := make([]byte, 64)
	if _, err := rand.Read(buf); err != nil {
		return nil, fmt.Errorf("curvegroup: reading randomness: %w", err)
	}
	s, err := ristretto255.NewScalar().SetUniformBytes(buf)
	if err != nil {
		return nil, fmt.Errorf("curvegroup: reducing randomness to scalar: %w", err)
	}
	return &Scalar{s: s}, nil
}

// SetBytes decodes the canonical 32-byte little-endian encoding of a scalar.
func (z *Scalar) SetBytes(b []byte) (*Scalar, error) {
	if _, err := z.s.SetCanonicalBytes(b); err != nil {
		return nil, mpcerr.Serialization(fmt.Sprintf("invalid scalar encoding: %v", err))
	}
	return z, nil
}

// Bytes returns the canonical 32-byte little-endian encoding of z.
func (z *Scalar) Bytes() []byte {
	return z.s.Encode(make([]byte, 0, ScalarSize))
}

// Set copies x into z.
func (z *Scalar) Set(x *Scalar) *Scalar {
	z.s.Set(x.s)
	return z
}

// Clone returns an independent copy of z.
func (z *Scalar) Clone() *Scalar {
	return NewScalar().Set(z)
}

// Add sets z = x + y and returns z.
func (z *Scalar) Add(x, y *Scalar) *Scalar {
	z.s.Add(x.s, y.s)
	return z
}

// Sub sets z = x - y and returns z.
func (z *Scalar) Sub(x, y *Scalar) *Scalar {
	z.s.Subtract(x.s, y.s)
	return z
}

// Negate sets z = -x and returns z.
func (z *Scalar) Negate(x *Scalar) *Scalar {
	z.s.Negate(x.s)
	return z
}

// Mul sets z = x * y and returns z.
func (z *Scalar) Mul(x, y *Scalar) *Scalar {
	z.s.Multiply(x.s, y.s)
	return z
}

// Invert sets z = x^-1 and returns z. Panics if x is zero, matching
// ristretto255.Scalar.Invert's own contract.
func (z *Scalar) Invert(x *Scalar) *Scalar {
	z.s.Invert(x.s)
	return z
}

// Equal reports whether z and x encode the same scalar.
func (z *Scalar) Equal(x *Scalar) bool {
	return z.s.Equal(x.s) == 1
}

// IsZero reports whether z is the additive identity.
func (z *Scalar) IsZero() bool {
	return z.Equal(NewScalar())
}

// inner exposes the wrapped ristretto255 scalar for use within curvegroup
// (Element.ScalarMult and friends need the unwrapped type).
func (z *Scalar) inner() *ristretto255.Scalar { return z.s }
