package kem

import (
	"encoding/binary"

	tallowcrypto "tallow/internal/crypto"
)

// Wire encodings for hybrid KEM artifacts: a 4-byte big-endian length
// prefix on the ML-KEM component followed by the fixed 32-byte X25519
// component. Collaborators (transport, keyring storage) carry these blobs
// verbatim; any change here is a protocol revision.

// Bytes serializes the hybrid public key.
func (pk *HybridPublicKey) Bytes() []byte {
	return appendPrefixed(pk.MlKem.Bytes(), pk.X25519[:])
}

// HybridPublicKeyFromBytes parses a serialized hybrid public key,
// validating the embedded ML-KEM-1024 component.
func HybridPublicKeyFromBytes(b []byte) (*HybridPublicKey, error) {
	mlkemBytes, x25519Bytes, err := splitPrefixed(b, "hybrid public key")
	if err != nil {
		return nil, err
	}
	mlkemPK, err := MlKemPublicKeyFromBytes(mlkemBytes)
	if err != nil {
		return nil, err
	}

	pk := &HybridPublicKey{MlKem: mlkemPK}
	copy(pk.X25519[:], x25519Bytes)
	return pk, nil
}

// Bytes serializes the hybrid secret key. The output contains raw secret
// material; it must only ever be persisted inside an encrypted keyring.
func (sk *HybridSecretKey) Bytes() []byte {
	return appendPrefixed(sk.MlKem.bytes, sk.X25519.secret[:])
}

// HybridSecretKeyFromBytes parses a serialized hybrid secret key,
// validating the embedded ML-KEM-1024 component and rebuilding the X25519
// keypair from its secret scalar.
func HybridSecretKeyFromBytes(b []byte) (*HybridSecretKey, error) {
	mlkemBytes, x25519Bytes, err := splitPrefixed(b, "hybrid secret key")
	if err != nil {
		return nil, err
	}
	mlkemSK, err := MlKemSecretKeyFromBytes(mlkemBytes)
	if err != nil {
		return nil, err
	}

	var secret [X25519KeySize]byte
	copy(secret[:], x25519Bytes)
	return &HybridSecretKey{MlKem: mlkemSK, X25519: X25519FromSecret(secret)}, nil
}

// Bytes serializes the hybrid ciphertext.
func (ct *HybridCiphertext) Bytes() []byte {
	return appendPrefixed(ct.MlKem.bytes, ct.X25519Public[:])
}

// HybridCiphertextFromBytes parses a serialized hybrid ciphertext. The
// ML-KEM component's validity is checked at decapsulation time.
func HybridCiphertextFromBytes(b []byte) (*HybridCiphertext, error) {
	mlkemBytes, x25519Bytes, err := splitPrefixed(b, "hybrid ciphertext")
	if err != nil {
		return nil, err
	}

	ct := &HybridCiphertext{MlKem: MlKemCiphertextFromBytes(mlkemBytes)}
	copy(ct.X25519Public[:], x25519Bytes)
	return ct, nil
}

func appendPrefixed(mlkemPart []byte, x25519Part []byte) []byte {
	out := make([]byte, 0, 4+len(mlkemPart)+len(x25519Part))
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(mlkemPart)))
	out = append(out, lenBuf[:]...)
	out = append(out, mlkemPart...)
	out = append(out, x25519Part...)
	return out
}

// splitPrefixed splits a serialized hybrid artifact into its
// length-prefixed ML-KEM part and its trailing 32-byte X25519 part.
func splitPrefixed(b []byte, what string) ([]byte, []byte, error) {
	if len(b) < 4 {
		return nil, nil, tallowcrypto.New(tallowcrypto.Serialization, "truncated "+what, nil)
	}
	mlkemLen := int(binary.BigEndian.Uint32(b[:4]))
	if len(b) != 4+mlkemLen+X25519KeySize {
		return nil, nil, tallowcrypto.New(tallowcrypto.Serialization, "malformed "+what, nil)
	}
	return b[4 : 4+mlkemLen], b[4+mlkemLen:], nil
}
