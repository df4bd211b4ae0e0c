// Package sig implements digital signatures: classical Ed25519,
// post-quantum ML-DSA-87 and SLH-DSA-SHA2-256f, and a hybrid combination,
// plus per-chunk file signing built on top of Ed25519.
package sig

import (
	"crypto/ed25519"
	"crypto/rand"

	tallowcrypto "tallow/internal/crypto"
)

const (
	Ed25519PublicKeySize = ed25519.PublicKeySize
	Ed25519SignatureSize = ed25519.SignatureSize
)

// Ed25519Signer holds an Ed25519 keypair.
type Ed25519Signer struct {
	priv ed25519.PrivateKey
	pub  ed25519.PublicKey
}

// GenerateEd25519 creates a fresh Ed25519 keypair.
func GenerateEd25519() (*Ed25519Signer, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, tallowcrypto.New(tallowcrypto.KeyGeneration, "Ed25519 key generation failed", err)
	}
	return &Ed25519Signer{priv: priv, pub: pub}, nil
}

// Ed25519FromSeed rebuilds a signer from a 32-byte seed.
func Ed25519FromSeed(seed [32]byte) *Ed25519Signer {
	priv := ed25519.NewKeyFromSeed(seed[:])
	pub := priv.Public().(ed25519.PublicKey)
	return &Ed25519Signer{priv: priv, pub: pub}
}

// Sign produces a 64-byte Ed25519 signature over message.
func (s *Ed25519Signer) Sign(message []byte) [Ed25519SignatureSize]byte {
	var out [Ed25519SignatureSize]byte
	copy(out[:], ed25519.Sign(s.priv, message))
	return out
}

// Seed returns the signer's 32-byte private seed, from which the full
// keypair is recoverable via Ed25519FromSeed. It must only ever be
// persisted inside an encrypted keyring.
func (s *Ed25519Signer) Seed() [32]byte {
	var out [32]byte
	copy(out[:], s.priv.Seed())
	return out
}

// PublicKeyBytes returns the 32-byte verifying key.
func (s *Ed25519Signer) PublicKeyBytes() [Ed25519PublicKeySize]byte {
	var out [Ed25519PublicKeySize]byte
	copy(out[:], s.pub)
	return out
}

// VerifyEd25519 checks a 64-byte Ed25519 signature over message against
// publicKey.
func VerifyEd25519(publicKey [Ed25519PublicKeySize]byte, message []byte, signature [Ed25519SignatureSize]byte) error {
	if !ed25519.Verify(ed25519.PublicKey(publicKey[:]), message, signature[:]) {
		return tallowcrypto.New(tallowcrypto.Verification, "Ed25519 signature verification failed", nil)
	}
	return nil
}

// Zeroize is a documented no-op: crypto/ed25519.PrivateKey is a plain byte
// slice with no zeroizing destructor, so the key's lifetime is bounded by
// GC rather than an explicit wipe.
func (s *Ed25519Signer) Zeroize() {}
