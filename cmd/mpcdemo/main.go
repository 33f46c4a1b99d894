// Command mpcdemo is an in-process integration harness: it wires two
// parties together over an in-memory duplex.Transport pair and a pair of
// insecure fixture.PartyIDSource Beaver sources, then runs a scenario list
// end to end and reports pass/fail per scenario, the same shape as the
// original integration harness this module was distilled from.
//
// This is a demo/integration entry point only, not the production
// two-party CLI — a real deployment needs an authenticated, reliable
// transport (e.g. QUIC with party-id-pinned certificates), which is
// explicitly out of scope for this module.
package main

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/spf13/cobra"

	"github.com/renegade-fi/mpc-ristretto-go/authenticated"
	"github.com/renegade-fi/mpc-ristretto-go/curvegroup"
	"github.com/renegade-fi/mpc-ristretto-go/session"
	"github.com/renegade-fi/mpc-ristretto-go/sharedscalar"
	"github.com/renegade-fi/mpc-ristretto-go/transport/duplex"
	"github.com/renegade-fi/mpc-ristretto-go/triples/fixture"
)

// scenario is one named end-to-end test, run once per party against that
// party's own Session; both runs must agree on the expected result for the
// scenario to pass.
type scenario struct {
	name     string
	expected *curvegroup.Scalar
	run      func(ctx context.Context, s *session.Session) (*curvegroup.Scalar, error)
}

// buildScenarios constructs the demo's scenario list: party 0 contributes
// a, party 1 contributes b.
func buildScenarios(a, b uint64) []scenario {
	shareBoth := func(ctx context.Context, s *session.Session) (*sharedscalar.Scalar, *sharedscalar.Scalar, error) {
		sa, err := s.NewPrivateScalar(curvegroup.ScalarFromUint64(a)).ShareSecret(ctx, 0)
		if err != nil {
			return nil, nil, err
		}
		sb, err := s.NewPrivateScalar(curvegroup.ScalarFromUint64(b)).ShareSecret(ctx, 1)
		if err != nil {
			return nil, nil, err
		}
		return sa, sb, nil
	}

	return []scenario{
		{
			name:     "add: shared(a) + shared(b) + public(58)",
			expected: curvegroup.ScalarFromUint64(a + b + 58),
			run: func(ctx context.Context, s *session.Session) (*curvegroup.Scalar, error) {
				sa, sb, err := shareBoth(ctx, s)
				if err != nil {
					return nil, err
				}
				pub := s.NewPublicScalar(curvegroup.ScalarFromUint64(58))
				sum := sharedscalar.Add(sharedscalar.Add(sa, sb), pub)
				opened, err := sum.Open(ctx)
				if err != nil {
					return nil, err
				}
				return opened.Value(), nil
			},
		},
		{
			name:     "mul: shared(a) * shared(b)",
			expected: curvegroup.ScalarFromUint64(a * b),
			run: func(ctx context.Context, s *session.Session) (*curvegroup.Scalar, error) {
				sa, sb, err := shareBoth(ctx, s)
				if err != nil {
					return nil, err
				}
				product, err := sa.Mul(ctx, sb)
				if err != nil {
					return nil, err
				}
				opened, err := product.Open(ctx)
				if err != nil {
					return nil, err
				}
				return opened.Value(), nil
			},
		},
		{
			name:     "authenticated: checked-open(shared(a) + shared(b))",
			expected: curvegroup.ScalarFromUint64(a + b),
			run: func(ctx context.Context, s *session.Session) (*curvegroup.Scalar, error) {
				sa, sb, err := shareBoth(ctx, s)
				if err != nil {
					return nil, err
				}
				authA, err := s.Authenticate(ctx, sa)
				if err != nil {
					return nil, err
				}
				authB, err := s.Authenticate(ctx, sb)
				if err != nil {
					return nil, err
				}
				sum, err := authenticated.Add(authA, authB)
				if err != nil {
					return nil, err
				}
				return s.CheckedOpenScalar(ctx, sum)
			},
		},
	}
}

func runAll() error {
	tr0, tr1 := duplex.NewPair()
	ctx := context.Background()

	s0, err := session.New(ctx, tr0, fixture.NewPartyIDSource(0), session.Config{})
	if err != nil {
		return fmt.Errorf("party 0 session setup: %w", err)
	}
	s1, err := session.New(ctx, tr1, fixture.NewPartyIDSource(1), session.Config{})
	if err != nil {
		return fmt.Errorf("party 1 session setup: %w", err)
	}

	cases := buildScenarios(42, 33)

	allPassed := true
	for _, c := range cases {
		var r0, r1 *curvegroup.Scalar
		var e0, e1 error
		var wg sync.WaitGroup
		wg.Add(2)
		go func() { defer wg.Done(); r0, e0 = c.run(ctx, s0) }()
		go func() { defer wg.Done(); r1, e1 = c.run(ctx, s1) }()
		wg.Wait()

		ok := e0 == nil && e1 == nil && r0 != nil && r1 != nil &&
			r0.Equal(c.expected) && r1.Equal(c.expected)

		status := "PASS"
		if !ok {
			status = "FAIL"
			allPassed = false
		}
		fmt.Printf("[%s] %s\n", status, c.name)
		if e0 != nil {
			fmt.Printf("       party0 error: %v\n", e0)
		}
		if e1 != nil {
			fmt.Printf("       party1 error: %v\n", e1)
		}
	}

	if !allPassed {
		return fmt.Errorf("one or more scenarios failed")
	}
	return nil
}

func main() {
	root := &cobra.Command{
		Use:   "mpcdemo",
		Short: "Run the in-process two-party MPC arithmetic demo",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAll()
		},
	}

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
