package sig

import (
	"crypto/rand"

	"filippo.io/mldsa/mldsa87"

	tallowcrypto "tallow/internal/crypto"
)

// ML-DSA-87 (FIPS 204) key and signature byte lengths.
const (
	MlDsaPublicKeySize = 2592
	MlDsaSecretKeySize = 4896
	MlDsaSignatureSize = 4627
)

// MlDsaSigner holds an ML-DSA-87 keypair.
type MlDsaSigner struct {
	priv *mldsa87.PrivateKey
	pub  *mldsa87.PublicKey
}

// GenerateMlDsa87 creates a fresh ML-DSA-87 keypair.
func GenerateMlDsa87() (*MlDsaSigner, error) {
	priv, err := mldsa87.GenerateKey(rand.Reader)
	if err != nil {
		return nil, tallowcrypto.New(tallowcrypto.KeyGeneration, "ML-DSA-87 key generation failed", err)
	}
	return &MlDsaSigner{priv: priv, pub: priv.PublicKey()}, nil
}

// Sign produces an ML-DSA-87 signature over message.
func (s *MlDsaSigner) Sign(message []byte) ([]byte, error) {
	sig, err := s.priv.Sign(rand.Reader, message, nil)
	if err != nil {
		return nil, tallowcrypto.New(tallowcrypto.Signing, "ML-DSA-87 signing failed", err)
	}
	return sig, nil
}

// PublicKeyBytes returns the serialized ML-DSA-87 public key.
func (s *MlDsaSigner) PublicKeyBytes() []byte {
	return s.pub.Bytes()
}

// SecretKeyBytes returns the serialized ML-DSA-87 signing key. It must
// only ever be persisted inside an encrypted keyring.
func (s *MlDsaSigner) SecretKeyBytes() []byte {
	return s.priv.Bytes()
}

// MlDsaSignerFromSecretKeyBytes rebuilds a signer from a serialized
// signing key.
func MlDsaSignerFromSecretKeyBytes(b []byte) (*MlDsaSigner, error) {
	if len(b) != MlDsaSecretKeySize {
		return nil, tallowcrypto.New(tallowcrypto.InvalidKey, "invalid ML-DSA-87 signing key length", nil)
	}
	priv, err := mldsa87.NewPrivateKey(b)
	if err != nil {
		return nil, tallowcrypto.New(tallowcrypto.InvalidKey, "malformed ML-DSA-87 signing key", err)
	}
	return &MlDsaSigner{priv: priv, pub: priv.PublicKey()}, nil
}

// VerifyMlDsa87 checks an ML-DSA-87 signature over message against a
// serialized public key.
func VerifyMlDsa87(publicKey, message, signature []byte) error {
	if len(publicKey) != MlDsaPublicKeySize {
		return tallowcrypto.New(tallowcrypto.Verification, "invalid ML-DSA-87 public key length", nil)
	}
	if len(signature) != MlDsaSignatureSize {
		return tallowcrypto.New(tallowcrypto.Verification, "invalid ML-DSA-87 signature length", nil)
	}

	pub, err := mldsa87.NewPublicKey(publicKey)
	if err != nil {
		return tallowcrypto.New(tallowcrypto.Verification, "invalid ML-DSA-87 public key", err)
	}

	if !pub.Verify(message, signature, nil) {
		return tallowcrypto.New(tallowcrypto.Verification, "ML-DSA-87 signature verification failed", nil)
	}
	return nil
}
