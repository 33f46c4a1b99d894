// Package commitment implements the Pedersen-style hiding, binding
// commitment over Ristretto used as the sole subroutine behind
// sharedscalar/sharedpoint's CommitAndOpen and authenticated's MAC check
// (spec §4.5).
package commitment

import (
	"encoding/base64"
	"encoding/json"

	"github.com/renegade-fi/mpc-ristretto-go/curvegroup"
	"github.com/renegade-fi/mpc-ristretto-go/mpcerr"
)

// generatorDomain is the fixed domain-separation tag used to derive H, the
// commitment scheme's second generator, independent of the Ristretto base
// point G.
const generatorDomain = "mpc-ristretto commitment generator v1"

// h is computed once at package init via curvegroup.HashToElement, so no
// party ever learns a discrete-log relation between G and H.
var h = curvegroup.HashToElement(generatorDomain)

// Generator returns the commitment scheme's independent generator H.
func Generator() *curvegroup.Element {
	return h.Clone()
}

// Commitment is an opened-or-unopened Pedersen commitment C = v*G + r*H to a
// scalar value v under blinding factor r.
type Commitment struct {
	C *curvegroup.Element
	R *curvegroup.Scalar
	V *curvegroup.Scalar
}

// Commit produces a fresh commitment to v with a randomly sampled blinding
// factor.
func Commit(v *curvegroup.Scalar) (*Commitment, error) {
	r, err := curvegroup.RandomScalar()
	if err != nil {
		return nil, err
	}
	return CommitWithBlind(v, r), nil
}

// CommitWithBlind produces a commitment to v using an explicit blinding
// factor r. Used by sharedpoint's CommitAndOpen, which draws its own blind.
func CommitWithBlind(v, r *curvegroup.Scalar) *Commitment {
	vg := curvegroup.NewElement().ScalarBaseMult(v)
	rh := curvegroup.NewElement().ScalarMult(r, h)
	c := curvegroup.NewElement().Add(vg, rh)
	return &Commitment{C: c, R: r, V: v}
}

// Open returns the opening (r, v) a peer needs to verify this commitment.
func (cm *Commitment) Open() (r, v *curvegroup.Scalar) {
	return cm.R, cm.V
}

// Verify reports whether (r, v) is a valid opening of the commitment c.
func Verify(c *curvegroup.Element, r, v *curvegroup.Scalar) bool {
	vg := curvegroup.NewElement().ScalarBaseMult(v)
	rh := curvegroup.NewElement().ScalarMult(r, h)
	expected := curvegroup.NewElement().Add(vg, rh)
	return expected.Equal(c)
}

// wireCommitment is the base64-JSON wire shape, the same
// base64.URLEncoding-wrapped-struct idiom soatok-frost's
// internal/serializing.go uses for Commitment/SignatureShare.
type wireCommitment struct {
	C string `json:"c"`
	R string `json:"r"`
	V string `json:"v"`
}

// EncodeJSON serializes the commitment for transmission over a JSON-based
// side channel (e.g. a debugging transcript dump).
func (cm *Commitment) EncodeJSON() ([]byte, error) {
	w := wireCommitment{
		C: base64.URLEncoding.EncodeToString(cm.C.Bytes()),
		R: base64.URLEncoding.EncodeToString(cm.R.Bytes()),
		V: base64.URLEncoding.EncodeToString(cm.V.Bytes()),
	}
	return json.Marshal(w)
}

// FromJSON deserializes a commitment previously produced by EncodeJSON.
func FromJSON(j []byte) (*Commitment, error) {
	var w wireCommitment
	if err := json.Unmarshal(j, &w); err != nil {
		return nil, mpcerr.Serialization(err.Error())
	}

	cBytes, err := base64.URLEncoding.DecodeString(w.C)
	if err != nil {
		return nil, mpcerr.Serialization(err.Error())
	}
	rBytes, err := base64.URLEncoding.DecodeString(w.R)
	if err != nil {
		return nil, mpcerr.Serialization(err.Error())
	}
	vBytes, err := base64.URLEncoding.DecodeString(w.V)
	if err != nil {
		return nil, mpcerr.Serialization(err.Error())
	}

	c, err := curvegroup.NewElement().SetBytes(cBytes)
	if err != nil {
		return nil, err
	}
	r, err := curvegroup.NewScalar().SetBytes(rBytes)
	if err != nil {
		return nil, err
	}
	v, err := curvegroup.NewScalar().SetBytes(vBytes)
	if err != nil {
		return nil, err
	}
	return &Commitment{C: c, R: r, V: v}, nil
}
