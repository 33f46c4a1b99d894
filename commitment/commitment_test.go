package commitment_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renegade-fi/mpc-ristretto-go/commitment"
	"github.com/renegade-fi/mpc-ristretto-go/curvegroup"
)

func TestCommitVerifyRoundTrip(t *testing.T) {
	v := curvegroup.ScalarFromUint64(42)
	cm, err := commitment.Commit(v)
	require.NoError(t, err)

	r, openedV := cm.Open()
	assert.True(t, commitment.Verify(cm.C, r, openedV))
}

func TestVerifyRejectsTamperedValue(t *testing.T) {
	v := curvegroup.ScalarFromUint64(42)
	cm, err := commitment.Commit(v)
	require.NoError(t, err)

	r, _ := cm.Open()
	tampered := curvegroup.ScalarFromUint64(43)
	assert.False(t, commitment.Verify(cm.C, r, tampered))
}

func TestVerifyRejectsTamperedBlind(t *testing.T) {
	v := curvegroup.ScalarFromUint64(42)
	cm, err := commitment.Commit(v)
	require.NoError(t, err)

	_, openedV := cm.Open()
	tamperedR := curvegroup.ScalarFromUint64(7)
	assert.False(t, commitment.Verify(cm.C, tamperedR, openedV))
}

func TestGeneratorIndependentOfBasePoint(t *testing.T) {
	assert.False(t, commitment.Generator().Equal(curvegroup.Generator()))
}

func TestEncodeJSONRoundTrip(t *testing.T) {
	v := curvegroup.ScalarFromUint64(7)
	cm, err := commitment.Commit(v)
	require.NoError(t, err)

	j, err := cm.EncodeJSON()
	require.NoError(t, err)

	decoded, err := commitment.FromJSON(j)
	require.NoError(t, err)

	assert.True(t, decoded.C.Equal(cm.C))
	assert.True(t, decoded.R.Equal(cm.R))
	assert.True(t, decoded.V.Equal(cm.V))
}
