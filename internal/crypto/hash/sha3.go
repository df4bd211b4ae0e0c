package hash

import "golang.org/x/crypto/sha3"

// SHA3_256 returns the SHA3-256 digest of data. Carried alongside BLAKE3 for
// interop with external verifiers that expect a NIST hash rather than
// BLAKE3's non-standard tree construction.
func SHA3_256(data []byte) [Size]byte {
	return sha3.Sum256(data)
}
