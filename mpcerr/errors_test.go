package mpcerr_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/renegade-fi/mpc-ristretto-go/mpcerr"
)

func TestConstructorsWrapTheirSentinel(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want error
	}{
		{"network", mpcerr.Network(errors.New("closed")), mpcerr.ErrNetwork},
		{"visibility", mpcerr.Visibility("bad op"), mpcerr.ErrVisibility},
		{"authentication", mpcerr.Authentication("mac mismatch"), mpcerr.ErrAuthentication},
		{"serialization", mpcerr.Serialization("bad point"), mpcerr.ErrSerialization},
		{"arithmetic", mpcerr.Arithmetic("empty slice"), mpcerr.ErrArithmetic},
		{"triples dry", mpcerr.TriplesDry(12), mpcerr.ErrTriplesDry},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.ErrorIs(t, c.err, c.want)
		})
	}
}

func TestSentinelsAreDistinct(t *testing.T) {
	assert.False(t, errors.Is(mpcerr.Network(errors.New("x")), mpcerr.ErrVisibility))
	assert.False(t, errors.Is(mpcerr.Visibility("x"), mpcerr.ErrAuthentication))
}
