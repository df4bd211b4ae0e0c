package keys

import "tallow/internal/crypto/kem"

// EphemeralKeyPair is a single-use X25519 keypair, generated fresh for one
// handshake or PAKE exchange and discarded afterward.
type EphemeralKeyPair struct {
	inner *kem.X25519KeyPair
}

// GenerateEphemeral creates a fresh ephemeral X25519 keypair.
func GenerateEphemeral() (*EphemeralKeyPair, error) {
	inner, err := kem.GenerateX25519()
	if err != nil {
		return nil, err
	}
	return &EphemeralKeyPair{inner: inner}, nil
}

// Inner returns the underlying X25519 keypair.
func (kp *EphemeralKeyPair) Inner() *kem.X25519KeyPair { return kp.inner }

// PublicBytes returns the keypair's public key bytes.
func (kp *EphemeralKeyPair) PublicBytes() [kem.X25519KeySize]byte { return kp.inner.PublicKey() }

// Zeroize wipes the underlying secret.
func (kp *EphemeralKeyPair) Zeroize() { kp.inner.Zeroize() }
