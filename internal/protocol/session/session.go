package session

import (
	"tallow/internal/crypto/hash"
	"tallow/internal/crypto/kem"
	"tallow/internal/crypto/mem"
)

// DeriveRootSecret combines a CPace session secret with a hybrid-KEM shared
// secret into the 32-byte root secret handed to a ratchet's init. Both
// inputs must be present: the PAKE secret binds the session to a shared
// code phrase, the KEM secret supplies the post-quantum and classical DH
// contribution a passive PAKE eavesdropper can't derive.
func DeriveRootSecret(pakeSecret [32]byte, kemSecret kem.HybridSharedSecret) [32]byte {
	mixed := make([]byte, 0, 64)
	mixed = append(mixed, pakeSecret[:]...)
	mixed = append(mixed, kemSecret[:]...)
	defer mem.Wipe(mixed)

	return hash.DeriveKey(hash.DomainSessionKeyKemPake, mixed)
}
