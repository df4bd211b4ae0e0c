package keys

import (
	"encoding/binary"
	"time"

	"tallow/internal/crypto/sig"
)

// KeyRotationRecord documents an identity-key rotation: the old key signs
// a statement naming its successor, so peers who already trust the old key
// can verify the transition instead of re-establishing trust from scratch.
type KeyRotationRecord struct {
	OldKeyID  [sig.Ed25519PublicKeySize]byte
	NewKeyID  [sig.Ed25519PublicKeySize]byte
	Timestamp uint64
	Signature [sig.Ed25519SignatureSize]byte
}

// NewKeyRotationRecord signs a rotation from oldIdentity to newIdentity
// with oldIdentity's key, proving the new key's adoption was authorized by
// whoever controlled the old one.
func NewKeyRotationRecord(oldIdentity, newIdentity *sig.Ed25519Signer) *KeyRotationRecord {
	oldKeyID := oldIdentity.PublicKeyBytes()
	newKeyID := newIdentity.PublicKeyBytes()
	timestamp := uint64(time.Now().Unix())

	message := rotationMessage(oldKeyID, newKeyID, timestamp)
	signature := oldIdentity.Sign(message)

	return &KeyRotationRecord{
		OldKeyID:  oldKeyID,
		NewKeyID:  newKeyID,
		Timestamp: timestamp,
		Signature: signature,
	}
}

// Verify checks the rotation record's signature against its own OldKeyID.
func (r *KeyRotationRecord) Verify() error {
	message := rotationMessage(r.OldKeyID, r.NewKeyID, r.Timestamp)
	return sig.VerifyEd25519(r.OldKeyID, message, r.Signature)
}

func rotationMessage(oldKeyID, newKeyID [sig.Ed25519PublicKeySize]byte, timestamp uint64) []byte {
	message := make([]byte, 0, 2*sig.Ed25519PublicKeySize+8)
	message = append(message, oldKeyID[:]...)
	message = append(message, newKeyID[:]...)

	var tsBuf [8]byte
	binary.LittleEndian.PutUint64(tsBuf[:], timestamp)
	message = append(message, tsBuf[:]...)

	return message
}
