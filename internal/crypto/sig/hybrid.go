package sig

import tallowcrypto "tallow/internal/crypto"

// HybridSigner combines ML-DSA-87 and Ed25519; a valid hybrid signature
// requires both component signatures to verify, so an attacker must break
// both the post-quantum and classical scheme to forge one.
type HybridSigner struct {
	mldsa   *MlDsaSigner
	ed25519 *Ed25519Signer
}

// HybridSignature carries both component signatures.
type HybridSignature struct {
	MlDsa   []byte
	Ed25519 [Ed25519SignatureSize]byte
}

// HybridPublicKey carries both component public keys.
type HybridPublicKey struct {
	MlDsa   []byte
	Ed25519 [Ed25519PublicKeySize]byte
}

// NewHybridSigner composes existing ML-DSA-87 and Ed25519 signers.
func NewHybridSigner(mldsa *MlDsaSigner, ed25519 *Ed25519Signer) *HybridSigner {
	return &HybridSigner{mldsa: mldsa, ed25519: ed25519}
}

// SecretKeyBytes serializes both components' secret halves: the
// length-prefixed ML-DSA-87 signing key followed by the 32-byte Ed25519
// seed. It must only ever be persisted inside an encrypted keyring.
func (s *HybridSigner) SecretKeyBytes() []byte {
	seed := s.ed25519.Seed()
	return appendPrefixed(s.mldsa.SecretKeyBytes(), seed[:])
}

// HybridSignerFromSecretKeyBytes rebuilds a hybrid signer from the blob
// produced by SecretKeyBytes.
func HybridSignerFromSecretKeyBytes(b []byte) (*HybridSigner, error) {
	mldsaBytes, seedBytes, err := splitPrefixed(b, 32, "hybrid signing key")
	if err != nil {
		return nil, err
	}
	mldsaSigner, err := MlDsaSignerFromSecretKeyBytes(mldsaBytes)
	if err != nil {
		return nil, err
	}

	var seed [32]byte
	copy(seed[:], seedBytes)
	return &HybridSigner{mldsa: mldsaSigner, ed25519: Ed25519FromSeed(seed)}, nil
}

// GenerateHybridSigner creates a fresh hybrid keypair.
func GenerateHybridSigner() (*HybridSigner, error) {
	mldsaSigner, err := GenerateMlDsa87()
	if err != nil {
		return nil, err
	}
	ed25519Signer, err := GenerateEd25519()
	if err != nil {
		return nil, err
	}
	return &HybridSigner{mldsa: mldsaSigner, ed25519: ed25519Signer}, nil
}

// Sign produces signatures from both component schemes over message.
func (s *HybridSigner) Sign(message []byte) (*HybridSignature, error) {
	mldsaSig, err := s.mldsa.Sign(message)
	if err != nil {
		return nil, err
	}
	return &HybridSignature{
		MlDsa:   mldsaSig,
		Ed25519: s.ed25519.Sign(message),
	}, nil
}

// PublicKey returns the hybrid public key.
func (s *HybridSigner) PublicKey() HybridPublicKey {
	return HybridPublicKey{
		MlDsa:   s.mldsa.PublicKeyBytes(),
		Ed25519: s.ed25519.PublicKeyBytes(),
	}
}

// VerifyHybrid checks a hybrid signature; both components must verify.
func VerifyHybrid(publicKey HybridPublicKey, message []byte, signature *HybridSignature) error {
	if err := VerifyMlDsa87(publicKey.MlDsa, message, signature.MlDsa); err != nil {
		return tallowcrypto.New(tallowcrypto.Verification, "hybrid signature: ML-DSA-87 component failed", err)
	}
	if err := VerifyEd25519(publicKey.Ed25519, message, signature.Ed25519); err != nil {
		return tallowcrypto.New(tallowcrypto.Verification, "hybrid signature: Ed25519 component failed", err)
	}
	return nil
}
