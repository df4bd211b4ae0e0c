package keys

import (
	"crypto/rand"

	tallowcrypto "tallow/internal/crypto"
	"tallow/internal/crypto/kdf"
	"tallow/internal/crypto/mem"
	"tallow/internal/crypto/symmetric"
)

// EncryptedKeyring is a passphrase-protected blob of serialized key
// material: an Argon2id-derived key under a ChaCha20-Poly1305 AEAD, for
// storing a peer's keys at rest.
type EncryptedKeyring struct {
	Salt       [16]byte
	Nonce      [symmetric.NonceSize]byte
	Ciphertext []byte
}

// EncryptKeyring derives a key from passphrase with Argon2id and seals
// keys under it with ChaCha20-Poly1305.
func EncryptKeyring(passphrase string, keys []byte) (*EncryptedKeyring, error) {
	var salt [16]byte
	if _, err := rand.Read(salt[:]); err != nil {
		return nil, tallowcrypto.New(tallowcrypto.KeyGeneration, "failed to generate keyring salt", err)
	}
	var nonce [symmetric.NonceSize]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return nil, tallowcrypto.New(tallowcrypto.KeyGeneration, "failed to generate keyring nonce", err)
	}

	keyBytes, err := kdf.DeriveKey([]byte(passphrase), salt[:], symmetric.KeySize)
	if err != nil {
		return nil, err
	}
	defer mem.Wipe(keyBytes)
	var key [symmetric.KeySize]byte
	copy(key[:], keyBytes)
	defer mem.Wipe(key[:])

	ciphertext, err := symmetric.EncryptChaCha20Poly1305(&key, &nonce, keys, nil)
	if err != nil {
		return nil, err
	}

	return &EncryptedKeyring{Salt: salt, Nonce: nonce, Ciphertext: ciphertext}, nil
}

// DecryptKeyring reverses EncryptKeyring, returning the original key
// material if passphrase is correct.
func DecryptKeyring(passphrase string, keyring *EncryptedKeyring) ([]byte, error) {
	keyBytes, err := kdf.DeriveKey([]byte(passphrase), keyring.Salt[:], symmetric.KeySize)
	if err != nil {
		return nil, err
	}
	defer mem.Wipe(keyBytes)
	var key [symmetric.KeySize]byte
	copy(key[:], keyBytes)
	defer mem.Wipe(key[:])

	return symmetric.DecryptChaCha20Poly1305(&key, &keyring.Nonce, keyring.Ciphertext, nil)
}
