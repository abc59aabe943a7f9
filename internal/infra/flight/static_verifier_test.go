package flight

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticVerifierAcceptsIATAFormats(t *testing.T) {
	verifier := NewStaticVerifier()

	for _, flightNumber := range []string{"BA75", "W3 107", "KL1234", "9W 44"} {
		info, err := verifier.Verify(context.Background(), flightNumber)
		require.NoError(t, err)
		require.NotNil(t, info, flightNumber)
	}
}

func TestStaticVerifierNormalizes(t *testing.T) {
	verifier := NewStaticVerifier()

	info, err := verifier.Verify(context.Background(), "  ba75 ")
	require.NoError(t, err)
	require.NotNil(t, info)
	assert.Equal(t, "BA75", info.FlightNumber)
}

func TestStaticVerifierRejectsMalformed(t *testing.T) {
	verifier := NewStaticVerifier()

	for _, flightNumber := range []string{"", "B", "BA", "BA-75", "BRITISH75", "BA 75 X"} {
		info, err := verifier.Verify(context.Background(), flightNumber)
		require.NoError(t, err)
		assert.Nil(t, info, flightNumber)
	}
}
