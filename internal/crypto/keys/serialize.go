package keys

import (
	"encoding/binary"

	tallowcrypto "tallow/internal/crypto"
	"tallow/internal/crypto/kem"
	"tallow/internal/crypto/sig"
	"tallow/internal/crypto/symmetric"
)

// Wire encodings for the key inventory's published and stored artifacts.
// Variable-length fields carry a 4-byte big-endian length prefix; fixed
// fields are raw. Collaborators carry these blobs verbatim, so any change
// here is a protocol revision.

// Marshal serializes the keyring: 16-byte salt, 12-byte nonce,
// length-prefixed ciphertext.
func (k *EncryptedKeyring) Marshal() []byte {
	out := make([]byte, 0, 16+symmetric.NonceSize+4+len(k.Ciphertext))
	out = append(out, k.Salt[:]...)
	out = append(out, k.Nonce[:]...)
	out = appendPrefixed(out, k.Ciphertext)
	return out
}

// UnmarshalKeyring parses a serialized keyring.
func UnmarshalKeyring(b []byte) (*EncryptedKeyring, error) {
	rest := b
	if len(rest) < 16+symmetric.NonceSize {
		return nil, tallowcrypto.New(tallowcrypto.Serialization, "truncated keyring", nil)
	}

	k := &EncryptedKeyring{}
	copy(k.Salt[:], rest[:16])
	copy(k.Nonce[:], rest[16:16+symmetric.NonceSize])
	rest = rest[16+symmetric.NonceSize:]

	ciphertext, rest, err := readPrefixed(rest, "keyring ciphertext")
	if err != nil {
		return nil, err
	}
	if len(rest) != 0 {
		return nil, tallowcrypto.New(tallowcrypto.Serialization, "trailing bytes after keyring", nil)
	}
	k.Ciphertext = ciphertext
	return k, nil
}

// Marshal serializes the signed pre-key: 32-bit id, length-prefixed
// hybrid KEM public key, length-prefixed hybrid signature, 64-bit
// timestamp.
func (k *SignedPreKey) Marshal() []byte {
	pkBytes := k.PublicKey.Bytes()
	sigBytes := k.Signature.Bytes()

	out := make([]byte, 0, 4+4+len(pkBytes)+4+len(sigBytes)+8)
	out = binary.BigEndian.AppendUint32(out, k.ID)
	out = appendPrefixed(out, pkBytes)
	out = appendPrefixed(out, sigBytes)
	out = binary.BigEndian.AppendUint64(out, k.Timestamp)
	return out
}

// UnmarshalSignedPreKey parses a serialized signed pre-key. The caller
// still must Verify it against the publisher's identity before use.
func UnmarshalSignedPreKey(b []byte) (*SignedPreKey, error) {
	if len(b) < 4 {
		return nil, tallowcrypto.New(tallowcrypto.Serialization, "truncated signed pre-key", nil)
	}
	id := binary.BigEndian.Uint32(b[:4])
	rest := b[4:]

	pkBytes, rest, err := readPrefixed(rest, "signed pre-key public key")
	if err != nil {
		return nil, err
	}
	pk, err := kem.HybridPublicKeyFromBytes(pkBytes)
	if err != nil {
		return nil, err
	}

	sigBytes, rest, err := readPrefixed(rest, "signed pre-key signature")
	if err != nil {
		return nil, err
	}
	signature, err := sig.HybridSignatureFromBytes(sigBytes)
	if err != nil {
		return nil, err
	}

	if len(rest) != 8 {
		return nil, tallowcrypto.New(tallowcrypto.Serialization, "malformed signed pre-key timestamp", nil)
	}
	timestamp := binary.BigEndian.Uint64(rest)

	return &SignedPreKey{ID: id, PublicKey: pk, Signature: signature, Timestamp: timestamp}, nil
}

// Marshal serializes the bundle: length-prefixed identity key,
// length-prefixed signed pre-key, then a presence byte and, when present,
// the one-time pre-key's id and length-prefixed public key.
func (b *PreKeyBundle) Marshal() []byte {
	out := appendPrefixed(nil, b.IdentityKey.Bytes())
	out = appendPrefixed(out, b.SignedPreKey.Marshal())
	if b.OneTimePreKey == nil {
		return append(out, 0)
	}
	out = append(out, 1)
	out = binary.BigEndian.AppendUint32(out, b.OneTimePreKey.ID)
	out = appendPrefixed(out, b.OneTimePreKey.PublicKey.Bytes())
	return out
}

// UnmarshalPreKeyBundle parses a serialized bundle. The caller still must
// Verify it before using any of its keys.
func UnmarshalPreKeyBundle(b []byte) (*PreKeyBundle, error) {
	identityBytes, rest, err := readPrefixed(b, "bundle identity key")
	if err != nil {
		return nil, err
	}
	identity, err := sig.HybridPublicKeyFromBytes(identityBytes)
	if err != nil {
		return nil, err
	}

	spkBytes, rest, err := readPrefixed(rest, "bundle signed pre-key")
	if err != nil {
		return nil, err
	}
	spk, err := UnmarshalSignedPreKey(spkBytes)
	if err != nil {
		return nil, err
	}

	bundle := &PreKeyBundle{IdentityKey: identity, SignedPreKey: spk}
	if len(rest) < 1 {
		return nil, tallowcrypto.New(tallowcrypto.Serialization, "truncated pre-key bundle", nil)
	}
	present, rest := rest[0], rest[1:]
	switch present {
	case 0:
		if len(rest) != 0 {
			return nil, tallowcrypto.New(tallowcrypto.Serialization, "trailing bytes after pre-key bundle", nil)
		}
		return bundle, nil
	case 1:
	default:
		return nil, tallowcrypto.New(tallowcrypto.Serialization, "malformed one-time pre-key marker", nil)
	}

	if len(rest) < 4 {
		return nil, tallowcrypto.New(tallowcrypto.Serialization, "truncated one-time pre-key", nil)
	}
	otkID := binary.BigEndian.Uint32(rest[:4])
	otkBytes, rest, err := readPrefixed(rest[4:], "one-time pre-key public key")
	if err != nil {
		return nil, err
	}
	if len(rest) != 0 {
		return nil, tallowcrypto.New(tallowcrypto.Serialization, "trailing bytes after pre-key bundle", nil)
	}
	otkPK, err := kem.HybridPublicKeyFromBytes(otkBytes)
	if err != nil {
		return nil, err
	}
	bundle.OneTimePreKey = &OneTimePreKey{ID: otkID, PublicKey: otkPK}
	return bundle, nil
}

// rotationRecordSize is the fixed wire size of a rotation record: two
// 32-byte key ids, a 64-bit timestamp, and a 64-byte Ed25519 signature.
const rotationRecordSize = 2*sig.Ed25519PublicKeySize + 8 + sig.Ed25519SignatureSize

// Marshal serializes the rotation record into its fixed-width wire form.
func (r *KeyRotationRecord) Marshal() []byte {
	out := make([]byte, 0, rotationRecordSize)
	out = append(out, r.OldKeyID[:]...)
	out = append(out, r.NewKeyID[:]...)
	out = binary.BigEndian.AppendUint64(out, r.Timestamp)
	out = append(out, r.Signature[:]...)
	return out
}

// UnmarshalKeyRotationRecord parses a serialized rotation record.
func UnmarshalKeyRotationRecord(b []byte) (*KeyRotationRecord, error) {
	if len(b) != rotationRecordSize {
		return nil, tallowcrypto.New(tallowcrypto.Serialization, "malformed key rotation record", nil)
	}

	r := &KeyRotationRecord{}
	copy(r.OldKeyID[:], b[:32])
	copy(r.NewKeyID[:], b[32:64])
	r.Timestamp = binary.BigEndian.Uint64(b[64:72])
	copy(r.Signature[:], b[72:])
	return r, nil
}

func appendPrefixed(dst, field []byte) []byte {
	dst = binary.BigEndian.AppendUint32(dst, uint32(len(field)))
	return append(dst, field...)
}

func readPrefixed(b []byte, what string) ([]byte, []byte, error) {
	if len(b) < 4 {
		return nil, nil, tallowcrypto.New(tallowcrypto.Serialization, "truncated "+what, nil)
	}
	n := int(binary.BigEndian.Uint32(b[:4]))
	if len(b)-4 < n {
		return nil, nil, tallowcrypto.New(tallowcrypto.Serialization, "truncated "+what, nil)
	}
	return append([]byte(nil), b[4:4+n]...), b[4+n:], nil
}
