// Package cryptox derives password verifiers for locally stored accounts.
// Passwords themselves are never persisted: an account keeps a random salt
// and the SHA-256 of the argon2id key derived from (password, salt).
package cryptox

import (
	"crypto/sha256"
	"crypto/subtle"

	"github.com/dmitrijs2005/studymate/internal/common"
	"golang.org/x/crypto/argon2"
)

// SaltSize is the length of freshly generated salts.
const SaltSize = 32

func DeriveKey(password []byte, salt []byte) []byte {
	return argon2.IDKey(password, salt, 1, 64*1024, 4, 32)
}

func MakeVerifier(key []byte) []byte {
	hash := sha256.Sum256(key)
	return hash[:]
}

// NewCredential generates a salt and the matching verifier for password.
func NewCredential(password []byte) (salt, verifier []byte) {
	salt = common.GenerateRandByteArray(SaltSize)
	key := DeriveKey(password, salt)
	defer common.WipeByteArray(key)
	return salt, MakeVerifier(key)
}

// CheckPassword reports whether password reproduces verifier under salt.
// The comparison runs in constant time.
func CheckPassword(password, salt, verifier []byte) bool {
	key := DeriveKey(password, salt)
	defer common.WipeByteArray(key)
	return subtle.ConstantTimeCompare(MakeVerifier(key), verifier) == 1
}
