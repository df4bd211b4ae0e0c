// Package kem implements key-encapsulation mechanisms: classical X25519,
// post-quantum ML-KEM-1024, and a hybrid combination of the two.
package kem

import (
	"crypto/rand"

	"golang.org/x/crypto/curve25519"

	tallowcrypto "tallow/internal/crypto"
	"tallow/internal/crypto/mem"
)

const X25519KeySize = 32

// X25519SharedSecret is the raw 32-byte output of an X25519 Diffie-Hellman
// exchange.
type X25519SharedSecret [32]byte

// X25519KeyPair is a classical Diffie-Hellman keypair on Curve25519.
type X25519KeyPair struct {
	public [X25519KeySize]byte
	secret [X25519KeySize]byte
}

// GenerateX25519 creates a fresh X25519 keypair.
func GenerateX25519() (*X25519KeyPair, error) {
	var secret [X25519KeySize]byte
	if _, err := rand.Read(secret[:]); err != nil {
		return nil, tallowcrypto.New(tallowcrypto.KeyGeneration, "failed to generate X25519 secret", err)
	}

	var public [X25519KeySize]byte
	curve25519.ScalarBaseMult(&public, &secret)

	return &X25519KeyPair{public: public, secret: secret}, nil
}

// X25519FromSecret rebuilds a keypair from an existing 32-byte secret.
func X25519FromSecret(secret [X25519KeySize]byte) *X25519KeyPair {
	var public [X25519KeySize]byte
	curve25519.ScalarBaseMult(&public, &secret)
	return &X25519KeyPair{public: public, secret: secret}
}

// PublicKey returns this keypair's public component.
func (kp *X25519KeyPair) PublicKey() [X25519KeySize]byte { return kp.public }

// DiffieHellman computes the shared secret with theirPublic. An all-zero
// result (only reachable by a peer supplying a low-order point) is rejected
// rather than silently returned, since it carries no entropy from either
// party's secret.
func (kp *X25519KeyPair) DiffieHellman(theirPublic [X25519KeySize]byte) (X25519SharedSecret, error) {
	var shared X25519SharedSecret
	out, err := curve25519.X25519(kp.secret[:], theirPublic[:])
	if err != nil {
		return shared, tallowcrypto.New(tallowcrypto.InvalidKey, "X25519 scalar multiplication failed", err)
	}
	copy(shared[:], out)

	if isAllZero(shared[:]) {
		return X25519SharedSecret{}, tallowcrypto.New(tallowcrypto.InvalidKey, "X25519 DH produced an all-zero output (low-order point)", nil)
	}
	return shared, nil
}

// Zeroize wipes the keypair's secret scalar.
func (kp *X25519KeyPair) Zeroize() {
	mem.Wipe(kp.secret[:])
}

func isAllZero(b []byte) bool {
	var acc byte
	for _, v := range b {
		acc |= v
	}
	return acc == 0
}
