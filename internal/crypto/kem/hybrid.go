package kem

import (
	"tallow/internal/crypto/hash"
	"tallow/internal/crypto/mem"
)

// HybridPublicKey combines an ML-KEM-1024 public key with an X25519 public
// key; an attacker must break both components to recover the shared
// secret.
type HybridPublicKey struct {
	MlKem  *MlKemPublicKey
	X25519 [X25519KeySize]byte
}

// HybridSecretKey combines the corresponding secret components.
type HybridSecretKey struct {
	MlKem  *MlKemSecretKey
	X25519 *X25519KeyPair
}

// HybridCiphertext carries the ML-KEM-1024 encapsulation and the sender's
// ephemeral X25519 public key.
type HybridCiphertext struct {
	MlKem        *MlKemCiphertext
	X25519Public [X25519KeySize]byte
}

// HybridSharedSecret is the combined 32-byte output.
type HybridSharedSecret [32]byte

// GenerateHybridKeyPair creates a fresh hybrid keypair.
func GenerateHybridKeyPair() (*HybridPublicKey, *HybridSecretKey, error) {
	mlkemPK, mlkemSK, err := GenerateMlKem1024()
	if err != nil {
		return nil, nil, err
	}
	x25519KP, err := GenerateX25519()
	if err != nil {
		return nil, nil, err
	}

	pk := &HybridPublicKey{MlKem: mlkemPK, X25519: x25519KP.PublicKey()}
	sk := &HybridSecretKey{MlKem: mlkemSK, X25519: x25519KP}
	return pk, sk, nil
}

// EncapsulateHybrid encapsulates a shared secret to pk, combining a fresh
// ML-KEM-1024 encapsulation with an ephemeral X25519 Diffie-Hellman.
func EncapsulateHybrid(pk *HybridPublicKey) (*HybridCiphertext, HybridSharedSecret, error) {
	var zero HybridSharedSecret

	mlkemCt, mlkemSS, err := EncapsulateMlKem1024(pk.MlKem)
	if err != nil {
		return nil, zero, err
	}

	ephemeral, err := GenerateX25519()
	if err != nil {
		return nil, zero, err
	}
	defer ephemeral.Zeroize()

	x25519SS, err := ephemeral.DiffieHellman(pk.X25519)
	if err != nil {
		return nil, zero, err
	}

	combined := combineSecrets(mlkemSS, x25519SS)

	ct := &HybridCiphertext{MlKem: mlkemCt, X25519Public: ephemeral.PublicKey()}
	return ct, combined, nil
}

// DecapsulateHybrid recovers the shared secret from ct using sk.
func DecapsulateHybrid(sk *HybridSecretKey, ct *HybridCiphertext) (HybridSharedSecret, error) {
	var zero HybridSharedSecret

	mlkemSS, err := DecapsulateMlKem1024(sk.MlKem, ct.MlKem)
	if err != nil {
		return zero, err
	}

	x25519SS, err := sk.X25519.DiffieHellman(ct.X25519Public)
	if err != nil {
		return zero, err
	}

	return combineSecrets(mlkemSS, x25519SS), nil
}

// combineSecrets mixes the post-quantum and classical shared secrets with
// BLAKE3 under a dedicated domain tag, so that breaking either KEM alone
// yields no information about the combined output.
func combineSecrets(mlkemSS MlKemSharedSecret, x25519SS X25519SharedSecret) HybridSharedSecret {
	combinedInput := make([]byte, 0, 64)
	combinedInput = append(combinedInput, mlkemSS[:]...)
	combinedInput = append(combinedInput, x25519SS[:]...)
	defer mem.Wipe(combinedInput)

	return HybridSharedSecret(hash.DeriveKey(hash.DomainHybridCombine, combinedInput))
}

// Zeroize wipes the secret key's X25519 scalar. The ML-KEM-1024 secret key
// bytes are retained in a plain slice, mirroring circl's own lack of a
// zeroizing secret-key type.
func (sk *HybridSecretKey) Zeroize() {
	sk.X25519.Zeroize()
}
