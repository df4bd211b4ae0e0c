package keys

import (
	"encoding/binary"
	"time"

	tallowcrypto "tallow/internal/crypto"
	"tallow/internal/crypto/kem"
	"tallow/internal/crypto/sig"
)

// SignedPreKey is a medium-term hybrid KEM public key, published once and
// reused until rotated. Its signature binds it to a specific identity so a
// peer can't be tricked into key-agreeing with an unauthenticated key.
type SignedPreKey struct {
	ID        uint32
	PublicKey *kem.HybridPublicKey
	Signature *sig.HybridSignature
	Timestamp uint64
}

// GenerateSignedPreKey creates a signed pre-key under the given identity.
// Per Tallow's key-inventory policy, pre-keys are always signed with the
// hybrid identity key; Ed25519 alone is never sufficient.
func GenerateSignedPreKey(id uint32, identity *sig.HybridSigner) (*SignedPreKey, error) {
	pk, _, err := kem.GenerateHybridKeyPair()
	if err != nil {
		return nil, err
	}
	timestamp := uint64(time.Now().Unix())

	message := signedPreKeyMessage(id, pk, timestamp)
	signature, err := identity.Sign(message)
	if err != nil {
		return nil, err
	}

	return &SignedPreKey{ID: id, PublicKey: pk, Signature: signature, Timestamp: timestamp}, nil
}

// Verify checks the pre-key's hybrid signature against identityKey.
func (k *SignedPreKey) Verify(identityKey sig.HybridPublicKey) error {
	message := signedPreKeyMessage(k.ID, k.PublicKey, k.Timestamp)
	return sig.VerifyHybrid(identityKey, message, k.Signature)
}

func signedPreKeyMessage(id uint32, pk *kem.HybridPublicKey, timestamp uint64) []byte {
	pkBytes := serializeHybridKemPublicKey(pk)
	message := make([]byte, 0, 4+len(pkBytes)+8)

	var idBuf [4]byte
	binary.LittleEndian.PutUint32(idBuf[:], id)
	message = append(message, idBuf[:]...)
	message = append(message, pkBytes...)

	var tsBuf [8]byte
	binary.LittleEndian.PutUint64(tsBuf[:], timestamp)
	message = append(message, tsBuf[:]...)

	return message
}

// OneTimePreKey is a single-use hybrid KEM public key; a peer consumes one
// per session initiation and never reuses it, giving every first message
// its own forward-secret key-agreement contribution.
type OneTimePreKey struct {
	ID        uint32
	PublicKey *kem.HybridPublicKey
}

// GenerateOneTimePreKey creates a fresh one-time pre-key.
func GenerateOneTimePreKey(id uint32) (*OneTimePreKey, error) {
	pk, _, err := kem.GenerateHybridKeyPair()
	if err != nil {
		return nil, err
	}
	return &OneTimePreKey{ID: id, PublicKey: pk}, nil
}

// PreKeyBundle is what one peer publishes for another to initiate a
// session with: the identity key, a signed pre-key, and optionally one
// one-time pre-key (absent once exhausted).
type PreKeyBundle struct {
	IdentityKey   sig.HybridPublicKey
	SignedPreKey  *SignedPreKey
	OneTimePreKey *OneTimePreKey // nil when exhausted
}

// Verify checks the bundle's signed pre-key against its own identity key.
func (b *PreKeyBundle) Verify() error {
	if b.SignedPreKey == nil {
		return tallowcrypto.New(tallowcrypto.Verification, "pre-key bundle is missing its signed pre-key", nil)
	}
	return b.SignedPreKey.Verify(b.IdentityKey)
}

func serializeHybridKemPublicKey(pk *kem.HybridPublicKey) []byte {
	return pk.Bytes()
}
