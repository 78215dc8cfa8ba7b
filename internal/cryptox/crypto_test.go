package cryptox

import (
	"bytes"
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveKey_Deterministic(t *testing.T) {
	password := []byte("secret1")
	salt := []byte("fixed-salt")

	key1 := DeriveKey(password, salt)
	key2 := DeriveKey(password, salt)

	require.Len(t, key1, 32)
	assert.True(t, bytes.Equal(key1, key2), "same inputs must give the same key")
}

func TestDeriveKey_DifferentSalts(t *testing.T) {
	password := []byte("secret1")

	key1 := DeriveKey(password, []byte("salt-1"))
	key2 := DeriveKey(password, []byte("salt-2"))

	assert.False(t, bytes.Equal(key1, key2), "different salts must give different keys")
}

func TestMakeVerifier_IsSHA256(t *testing.T) {
	key := []byte("key")
	want := sha256.Sum256(key)
	assert.Equal(t, want[:], MakeVerifier(key))
}

func TestNewCredential_CheckPassword(t *testing.T) {
	salt, verifier := NewCredential([]byte("secret1"))

	require.Len(t, salt, SaltSize)
	require.Len(t, verifier, sha256.Size)

	assert.True(t, CheckPassword([]byte("secret1"), salt, verifier))
	assert.False(t, CheckPassword([]byte("secret2"), salt, verifier))
	assert.False(t, CheckPassword([]byte("secret1"), []byte("other-salt"), verifier))
}

func TestNewCredential_FreshSaltEachTime(t *testing.T) {
	salt1, v1 := NewCredential([]byte("secret1"))
	salt2, v2 := NewCredential([]byte("secret1"))

	assert.NotEqual(t, salt1, salt2)
	assert.NotEqual(t, v1, v2)
}
