package symmetric

import tallowcrypto "tallow/internal/crypto"

// EncryptAEGIS256 and DecryptAEGIS256 are unimplemented: no package in this
// module's dependency tree (golang.org/x/crypto, circl, zeebo/blake3)
// exposes AEGIS-256. CipherSuite negotiation never selects Aegis256 as a
// result (see negotiation.go), so these are reachable only via direct,
// explicit calls.

func EncryptAEGIS256(key *[KeySize]byte, nonce *[NonceSize]byte, plaintext, aad []byte) ([]byte, error) {
	return nil, tallowcrypto.New(tallowcrypto.Unsupported, "AEGIS-256 is not available in this build", nil)
}

func DecryptAEGIS256(key *[KeySize]byte, nonce *[NonceSize]byte, ciphertext, aad []byte) ([]byte, error) {
	return nil, tallowcrypto.New(tallowcrypto.Unsupported, "AEGIS-256 is not available in this build", nil)
}
