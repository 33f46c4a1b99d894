// Package mpcerr defines the typed error taxonomy surfaced by the MPC
// engine (spec §6-§7): network failures, visibility misuse, authentication
// failures, serialization failures and arithmetic misuse. Every suspending
// operation in this module returns one of these, wrapped with context via
// fmt.Errorf's %w verb, so callers can dispatch on the sentinel with
// errors.Is while still getting a readable message.
package mpcerr

import (
	"errors"
	"fmt"
)

// Sentinels for errors.Is matching. Callers should never compare error
// strings directly.
var (
	ErrNetwork        = errors.New("mpc: network error")
	ErrVisibility     = errors.New("mpc: wrong visibility for operation")
	ErrAuthentication = errors.New("mpc: authentication failed")
	ErrSerialization  = errors.New("mpc: serialization error")
	ErrArithmetic     = errors.New("mpc: arithmetic error")
	ErrTriplesDry     = errors.New("mpc: triple source exhausted")
)

// Network wraps a transport-layer failure. The engine never retries these;
// a two-party MPC transcript is state-carrying and cannot be resumed after a
// dropped message.
func Network(inner error) error {
	return fmt.Errorf("%w: %v", ErrNetwork, inner)
}

// Visibility reports that an operation was invoked on an operand of the
// wrong visibility (e.g. opening a Private value, committing a Public one).
// These are programmer bugs: raised, never silently handled.
func Visibility(msg string) error {
	return fmt.Errorf("%w: %s", ErrVisibility, msg)
}

// Authentication reports a commit-and-open mismatch or a failed MAC check.
// Callers must treat this as terminal for the session: the peer is
// considered compromised and the session should tear down before opening
// anything further.
func Authentication(msg string) error {
	return fmt.Errorf("%w: %s", ErrAuthentication, msg)
}

// Serialization reports an invalid wire encoding, e.g. a CompressedRistretto
// that doesn't decode to a valid curve point.
func Serialization(msg string) error {
	return fmt.Errorf("%w: %s", ErrSerialization, msg)
}

// Arithmetic reports a misuse of an arithmetic primitive, e.g. invoking
// multiscalar multiplication with mismatched or empty operand slices.
func Arithmetic(msg string) error {
	return fmt.Errorf("%w: %s", ErrArithmetic, msg)
}

// TriplesDry reports that a Beaver triple source has been exhausted.
func TriplesDry(consumed uint64) error {
	return fmt.Errorf("%w: after consuming %d triples", ErrTriplesDry, consumed)
}
