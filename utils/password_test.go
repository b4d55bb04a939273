package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSecurePassword(t *testing.T) {
	short, err := GenerateSecurePassword(4)
	require.NoError(t, err)
	assert.Len(t, short, 12)

	a, err := GenerateSecurePassword(20)
	require.NoError(t, err)
	b, err := GenerateSecurePassword(20)
	require.NoError(t, err)
	assert.Len(t, a, 20)
	assert.NotEqual(t, a, b)
	assert.NotContains(t, a, "/")
}
