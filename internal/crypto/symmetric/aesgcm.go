package symmetric

import (
	"crypto/aes"
	"crypto/cipher"

	tallowcrypto "tallow/internal/crypto"
)

// EncryptAESGCM seals plaintext under key and nonce, authenticating aad.
// key must be 32 bytes and nonce 12 bytes.
func EncryptAESGCM(key *[KeySize]byte, nonce *[NonceSize]byte, plaintext, aad []byte) ([]byte, error) {
	aead, err := newAESGCM(key)
	if err != nil {
		return nil, err
	}
	return aead.Seal(nil, nonce[:], plaintext, aad), nil
}

// DecryptAESGCM opens ciphertext (which must include the trailing
// authentication tag) under key and nonce, checking aad.
func DecryptAESGCM(key *[KeySize]byte, nonce *[NonceSize]byte, ciphertext, aad []byte) ([]byte, error) {
	aead, err := newAESGCM(key)
	if err != nil {
		return nil, err
	}
	pt, err := aead.Open(nil, nonce[:], ciphertext, aad)
	if err != nil {
		return nil, tallowcrypto.New(tallowcrypto.Decryption, "AES-GCM decryption failed", err)
	}
	return pt, nil
}

func newAESGCM(key *[KeySize]byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, tallowcrypto.New(tallowcrypto.InvalidKey, "invalid AES-256 key", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, tallowcrypto.New(tallowcrypto.Encryption, "failed to construct AES-GCM", err)
	}
	return aead, nil
}
