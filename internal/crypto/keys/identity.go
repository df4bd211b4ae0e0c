// Package keys manages the long-term and short-lived key material Tallow
// peers exchange: identity keys, ephemeral keys, pre-key bundles, rotation
// records, and an Argon2id-encrypted keyring for local storage.
package keys

import (
	"tallow/internal/crypto/hash"
	"tallow/internal/crypto/sig"
)

// IdentityKeyPair is a peer's long-term hybrid (ML-DSA-87 + Ed25519)
// signing identity. Every pre-key and rotation record a peer publishes is
// ultimately rooted in this key, so it is never used for anything but
// signing other key material.
type IdentityKeyPair struct {
	signer *sig.HybridSigner
	id     [hash.Size]byte
}

// GenerateIdentity creates a fresh identity keypair, deriving its
// fingerprint from a BLAKE3 hash of the serialized hybrid public key.
func GenerateIdentity() (*IdentityKeyPair, error) {
	signer, err := sig.GenerateHybridSigner()
	if err != nil {
		return nil, err
	}
	pub := signer.PublicKey()
	id := hash.Hash(serializeHybridPublicKey(pub))
	return &IdentityKeyPair{signer: signer, id: id}, nil
}

// Signer returns the underlying hybrid signer.
func (kp *IdentityKeyPair) Signer() *sig.HybridSigner { return kp.signer }

// ID returns the identity's fingerprint.
func (kp *IdentityKeyPair) ID() [hash.Size]byte { return kp.id }

// PublicKey returns the identity's public hybrid signing key.
func (kp *IdentityKeyPair) PublicKey() sig.HybridPublicKey { return kp.signer.PublicKey() }

// Export serializes the identity's secret material into a blob for
// keyring storage. The blob contains raw signing keys; it must only ever
// be persisted inside an EncryptedKeyring.
func (kp *IdentityKeyPair) Export() []byte {
	return kp.signer.SecretKeyBytes()
}

// ImportIdentity rebuilds an identity from an Export blob, recomputing the
// fingerprint from the restored public key.
func ImportIdentity(blob []byte) (*IdentityKeyPair, error) {
	signer, err := sig.HybridSignerFromSecretKeyBytes(blob)
	if err != nil {
		return nil, err
	}
	id := hash.Hash(serializeHybridPublicKey(signer.PublicKey()))
	return &IdentityKeyPair{signer: signer, id: id}, nil
}

// serializeHybridPublicKey is the deterministic byte encoding hashed into
// an identity fingerprint; it is the same wire form collaborators carry.
func serializeHybridPublicKey(pk sig.HybridPublicKey) []byte {
	return pk.Bytes()
}
