package curvegroup

import (
	"crypto/sha512"

	"filippo.io/edwards25519/extra/ristretto255"
)

// HashToScalar reduces an arbitrary byte string to a scalar via SHA-512
// followed by wide reduction, the same "hash then SetUniformBytes" idiom
// soatok-frost's Ed25519Sha512 ciphersuite uses for its H1/H3 hash
// functions, adapted here as a general-purpose domain-separated derivation
// helper rather than a FROST-specific challenge hash.
func HashToScalar(domain string, msg []byte) *Scalar {
	h := sha512.New()
	h.Write([]byte(domain))
	h.Write(msg)
	s, err := ristretto255.NewScalar().SetUniformBytes(h.Sum(nil))
	if err != nil {
		// sha512.Sum is always 64 bytes, SetUniformBytes cannot fail on it.
		panic("curvegroup: unreachable SetUniformBytes failure in HashToScalar")
	}
	return &Scalar{s: s}
}

// HashToElement derives an independent group element from a domain tag via
// two independent SHA-512 digests fed into ristretto255's uniform-bytes
// hash-to-group construction. Used once, at package init, to derive the
// Pedersen commitment generator H in the commitment package so that nobody
// learns a discrete log relating H to the base point G.
func HashToElement(domain string) *Element {
	h1 := sha512.Sum512(append([]byte(domain), 0x00))
	h2 := sha512.Sum512(append([]byte(domain), 0x01))
	wide := make([]byte, 0, 128)
	wide = append(wide, h1[:]...)
	wide = append(wide, h2[:]...)
	p := ristretto255.NewElement().FromUniformBytes(wide)
	return &Element{p: p}
}
