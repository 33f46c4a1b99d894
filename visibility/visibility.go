// Package visibility implements the three-level lattice that governs how
// MPC arithmetic operators dispatch between local computation and the
// interactive protocols in sharedscalar, sharedpoint and authenticated.
package visibility

// Visibility tags how much of a shared value's underlying data this party
// and its peer hold.
type Visibility int

const (
	// Private values are known only to this party; the peer holds no
	// corresponding share.
	Private Visibility = iota
	// Shared values are split additively between the two parties; neither
	// party alone knows the value.
	Shared
	// Public values are held in full, identically, by both parties.
	Public
)

func (v Visibility) String() string {
	switch v {
	case Private:
		return "Private"
	case Shared:
		return "Shared"
	case Public:
		return "Public"
	default:
		return "Unknown"
	}
}

// IsPrivate reports whether v is Private.
func (v Visibility) IsPrivate() bool { return v == Private }

// IsShared reports whether v is Shared.
func (v Visibility) IsShared() bool { return v == Shared }

// IsPublic reports whether v is Public.
func (v Visibility) IsPublic() bool { return v == Public }

// Min2 returns the lower of two visibilities in the order
// Private < Shared < Public. A Private operand taints a result as Private;
// a Shared operand absorbs a Public one.
func Min2(a, b Visibility) Visibility {
	if a < b {
		return a
	}
	return b
}

// MinN returns the minimum visibility across vs. MinN of an empty slice
// returns Public, the identity element for the min operation under this
// lattice.
func MinN(vs ...Visibility) Visibility {
	result := Public
	for _, v := range vs {
		result = Min2(result, v)
	}
	return result
}
