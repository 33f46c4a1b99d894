// Package session ties together one transport, one Beaver triple source,
// and one session MAC key into the "arena plus handle" spec §3/§9 describe
// but does not name: the single owner of the resources every shared value
// in a protocol run needs. The scoped exclusive-borrow discipline spec §5/§9
// require (spec §9: "no re-entrant borrow") is enforced per primitive
// suspending call (ShareSecret, Open, CommitAndOpen, one batch round) via a
// transport.Guard attached to every sharedscalar.Scalar/sharedpoint.Point
// and the session MAC key Session constructs, rather than by Session
// wrapping whole composite call chains itself: Authenticate, for instance,
// calls into a Beaver multiplication that already borrows the guard for its
// own open, so a second, outer borrow around the whole call would deadlock
// against the inner one.
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/renegade-fi/mpc-ristretto-go/authenticated"
	"github.com/renegade-fi/mpc-ristretto-go/beaver"
	"github.com/renegade-fi/mpc-ristretto-go/curvegroup"
	"github.com/renegade-fi/mpc-ristretto-go/mpcerr"
	"github.com/renegade-fi/mpc-ristretto-go/sharedpoint"
	"github.com/renegade-fi/mpc-ristretto-go/sharedscalar"
	"github.com/renegade-fi/mpc-ristretto-go/transport"
	"github.com/renegade-fi/mpc-ristretto-go/triples"
)

// Session owns one transport.Transport and one triples.Source (wrapped in
// a beaver.Counter) for the lifetime of a single two-party protocol run,
// plus the session MAC key negotiated once at construction and treated as
// immutable thereafter (spec §5: "Global, session-lived state is limited
// to the MAC key handle"), and the borrow guard attached to every value the
// session constructs.
type Session struct {
	id        uuid.UUID
	transport transport.Transport
	triples   *beaver.Counter
	macKey    *authenticated.MACKey
	logger    *zap.Logger
	guard     *transport.Guard

	teardownOnce sync.Once
}

// New establishes a session over t, drawing preprocessing material from
// source, and runs the one-time MAC key agreement. NewMACKey itself only
// draws from the triple source, which beaver.Counter already serializes
// internally per draw, so no borrow is needed for the agreement itself; the
// resulting key is attached to the session's guard so every later
// Authenticate call borrows it correctly.
func New(ctx context.Context, t transport.Transport, source triples.Source, cfg Config) (*Session, error) {
	logger := cfg.logger()
	id := uuid.New()

	s := &Session{
		id:        id,
		transport: t,
		triples:   beaver.NewCounter(source),
		logger:    logger,
		guard:     transport.NewGuard(),
	}

	key, err := authenticated.NewMACKey(s.transport, s.triples)
	if err != nil {
		logger.Error("mac key agreement failed", zap.String("session_id", id.String()), zap.Error(err))
		return nil, err
	}

	s.macKey = key.WithGuard(s.guard)
	logger.Info("session established", zap.String("session_id", id.String()), zap.Uint8("party_id", t.PartyID()))
	return s, nil
}

// ID returns this session's unique identifier, for correlating log lines
// across both parties' processes.
func (s *Session) ID() uuid.UUID { return s.id }

// NewPrivateScalar wraps v as a Private value scoped to this session's
// transport, triple source and borrow guard.
func (s *Session) NewPrivateScalar(v *curvegroup.Scalar) *sharedscalar.Scalar {
	return sharedscalar.FromPrivate(v, s.transport, s.triples).WithGuard(s.guard)
}

// NewPublicScalar wraps v as a Public value scoped to this session.
func (s *Session) NewPublicScalar(v *curvegroup.Scalar) *sharedscalar.Scalar {
	return sharedscalar.FromPublic(v, s.transport, s.triples).WithGuard(s.guard)
}

// NewPrivatePoint wraps v as a Private point scoped to this session.
func (s *Session) NewPrivatePoint(v *curvegroup.Element) *sharedpoint.Point {
	return sharedpoint.FromPrivate(v, s.transport, s.triples).WithGuard(s.guard)
}

// NewPublicPoint wraps v as a Public point scoped to this session.
func (s *Session) NewPublicPoint(v *curvegroup.Element) *sharedpoint.Point {
	return sharedpoint.FromPublic(v, s.transport, s.triples).WithGuard(s.guard)
}

// Authenticate wraps a Shared scalar with a fresh MAC share under this
// session's key. The one Beaver multiplication that computes the MAC share
// borrows the session guard carried by the MAC key for its open (value's
// own guard is used only if the key carried none).
func (s *Session) Authenticate(ctx context.Context, value *sharedscalar.Scalar) (*authenticated.Scalar, error) {
	return authenticated.NewScalar(ctx, value, s.macKey)
}

// AuthenticatePoint is Authenticate's Point analogue.
func (s *Session) AuthenticatePoint(ctx context.Context, value *sharedpoint.Point) (*authenticated.Point, error) {
	return authenticated.NewPoint(ctx, value, s.macKey)
}

// CheckedOpenScalar opens x and tears down the session on the first
// authentication failure (spec §7).
func (s *Session) CheckedOpenScalar(ctx context.Context, x *authenticated.Scalar) (*curvegroup.Scalar, error) {
	result, err := x.CheckedOpen(ctx)
	if err != nil && errors.Is(err, mpcerr.ErrAuthentication) {
		s.Teardown()
	}
	return result, err
}

// CheckedOpenPoint is CheckedOpenScalar's Point analogue.
func (s *Session) CheckedOpenPoint(ctx context.Context, x *authenticated.Point) (*curvegroup.Element, error) {
	result, err := x.CheckedOpen(ctx)
	if err != nil && errors.Is(err, mpcerr.ErrAuthentication) {
		s.Teardown()
	}
	return result, err
}

// Teardown closes the underlying transport. Safe to call more than once;
// only the first call has any effect. Called automatically by
// CheckedOpenScalar/CheckedOpenPoint on the first AuthenticationError.
func (s *Session) Teardown() {
	s.teardownOnce.Do(func() {
		s.logger.Error("tearing down session", zap.String("session_id", s.id.String()))
		_ = s.transport.Close()
	})
}
