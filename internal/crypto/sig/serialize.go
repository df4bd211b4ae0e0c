package sig

import (
	"encoding/binary"

	tallowcrypto "tallow/internal/crypto"
)

// Wire encodings for hybrid signature artifacts: a 4-byte big-endian
// length prefix on the ML-DSA component followed by the fixed-size Ed25519
// component. The ML-DSA lengths are fixed by FIPS 204, but the prefix
// keeps the framing self-describing so parsers never depend on a
// parameter-set constant they can't verify.

// Bytes serializes the hybrid public key.
func (pk HybridPublicKey) Bytes() []byte {
	return appendPrefixed(pk.MlDsa, pk.Ed25519[:])
}

// HybridPublicKeyFromBytes parses a serialized hybrid public key.
func HybridPublicKeyFromBytes(b []byte) (HybridPublicKey, error) {
	mldsaBytes, edBytes, err := splitPrefixed(b, Ed25519PublicKeySize, "hybrid public key")
	if err != nil {
		return HybridPublicKey{}, err
	}
	if len(mldsaBytes) != MlDsaPublicKeySize {
		return HybridPublicKey{}, tallowcrypto.New(tallowcrypto.Serialization, "wrong ML-DSA-87 public key length in hybrid public key", nil)
	}

	pk := HybridPublicKey{MlDsa: append([]byte(nil), mldsaBytes...)}
	copy(pk.Ed25519[:], edBytes)
	return pk, nil
}

// Bytes serializes the hybrid signature.
func (s *HybridSignature) Bytes() []byte {
	return appendPrefixed(s.MlDsa, s.Ed25519[:])
}

// HybridSignatureFromBytes parses a serialized hybrid signature.
func HybridSignatureFromBytes(b []byte) (*HybridSignature, error) {
	mldsaBytes, edBytes, err := splitPrefixed(b, Ed25519SignatureSize, "hybrid signature")
	if err != nil {
		return nil, err
	}
	if len(mldsaBytes) != MlDsaSignatureSize {
		return nil, tallowcrypto.New(tallowcrypto.Serialization, "wrong ML-DSA-87 signature length in hybrid signature", nil)
	}

	s := &HybridSignature{MlDsa: append([]byte(nil), mldsaBytes...)}
	copy(s.Ed25519[:], edBytes)
	return s, nil
}

func appendPrefixed(mldsaPart, edPart []byte) []byte {
	out := make([]byte, 0, 4+len(mldsaPart)+len(edPart))
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(mldsaPart)))
	out = append(out, lenBuf[:]...)
	out = append(out, mldsaPart...)
	out = append(out, edPart...)
	return out
}

func splitPrefixed(b []byte, edLen int, what string) ([]byte, []byte, error) {
	if len(b) < 4 {
		return nil, nil, tallowcrypto.New(tallowcrypto.Serialization, "truncated "+what, nil)
	}
	mldsaLen := int(binary.BigEndian.Uint32(b[:4]))
	if len(b) != 4+mldsaLen+edLen {
		return nil, nil, tallowcrypto.New(tallowcrypto.Serialization, "malformed "+what, nil)
	}
	return b[4 : 4+mldsaLen], b[4+mldsaLen:], nil
}
