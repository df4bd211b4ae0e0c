// Package kdf derives keys from other keys or from passwords: HKDF-SHA256,
// BLAKE3's native KDF mode, and Argon2id for password-based derivation and
// hashing.
package kdf

import (
	"crypto/sha256"
	"io"

	"golang.org/x/crypto/hkdf"

	tallowcrypto "tallow/internal/crypto"
)

// Derive runs HKDF-SHA256 over ikm with the given salt and info, returning
// length bytes of output keying material. salt may be empty.
func Derive(salt, ikm, info []byte, length int) ([]byte, error) {
	r := hkdf.New(sha256.New, ikm, salt, info)
	okm := make([]byte, length)
	if _, err := io.ReadFull(r, okm); err != nil {
		return nil, tallowcrypto.New(tallowcrypto.KeyGeneration, "HKDF expansion failed", err)
	}
	return okm, nil
}

// Context pairs an HKDF info string with the output length to derive for it.
type Context struct {
	Info   []byte
	Length int
}

// DeriveMultiple expands several independent keys from one extract step,
// cheaper than calling Derive repeatedly when ikm and salt are shared.
func DeriveMultiple(salt, ikm []byte, contexts []Context) ([][]byte, error) {
	outs := make([][]byte, len(contexts))
	for i, c := range contexts {
		rd := hkdf.New(sha256.New, ikm, salt, c.Info)
		okm := make([]byte, c.Length)
		if _, err := io.ReadFull(rd, okm); err != nil {
			return nil, tallowcrypto.New(tallowcrypto.KeyGeneration, "HKDF expansion failed", err)
		}
		outs[i] = okm
	}
	return outs, nil
}
