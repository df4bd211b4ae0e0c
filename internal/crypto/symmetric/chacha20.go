package symmetric

import (
	"golang.org/x/crypto/chacha20poly1305"

	tallowcrypto "tallow/internal/crypto"
)

// EncryptChaCha20Poly1305 seals plaintext under key and nonce, authenticating
// aad. key must be 32 bytes and nonce 12 bytes.
func EncryptChaCha20Poly1305(key *[KeySize]byte, nonce *[NonceSize]byte, plaintext, aad []byte) ([]byte, error) {
	aead, err := chacha20poly1305.New(key[:])
	if err != nil {
		return nil, tallowcrypto.New(tallowcrypto.InvalidKey, "invalid ChaCha20-Poly1305 key", err)
	}
	return aead.Seal(nil, nonce[:], plaintext, aad), nil
}

// DecryptChaCha20Poly1305 opens ciphertext (including the trailing
// authentication tag) under key and nonce, checking aad.
func DecryptChaCha20Poly1305(key *[KeySize]byte, nonce *[NonceSize]byte, ciphertext, aad []byte) ([]byte, error) {
	aead, err := chacha20poly1305.New(key[:])
	if err != nil {
		return nil, tallowcrypto.New(tallowcrypto.InvalidKey, "invalid ChaCha20-Poly1305 key", err)
	}
	pt, err := aead.Open(nil, nonce[:], ciphertext, aad)
	if err != nil {
		return nil, tallowcrypto.New(tallowcrypto.Decryption, "ChaCha20-Poly1305 decryption failed", err)
	}
	return pt, nil
}
