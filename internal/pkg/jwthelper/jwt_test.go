package jwthelper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndVerifyToken(t *testing.T) {
	key := []byte("test-signing-key")

	token, err := GenerateToken(key, 42, "test-agent")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := VerifyToken(key, token, "test-agent")
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.AdminID)
}

func TestVerifyToken_WrongKey(t *testing.T) {
	token, err := GenerateToken([]byte("key-one"), 42, "test-agent")
	require.NoError(t, err)

	_, err = VerifyToken([]byte("key-two"), token, "test-agent")
	assert.Error(t, err)
}

func TestVerifyToken_WrongUserAgent(t *testing.T) {
	key := []byte("test-signing-key")

	token, err := GenerateToken(key, 42, "test-agent")
	require.NoError(t, err)

	_, err = VerifyToken(key, token, "another-agent")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
