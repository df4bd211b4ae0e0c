package sig

import (
	"crypto/rand"

	"github.com/cloudflare/circl/sign/slhdsa"

	tallowcrypto "tallow/internal/crypto"
)

// SLH-DSA-SHA2-256f (FIPS 205) key and signature byte lengths.
const (
	SlhDsaPublicKeySize = 64
	SlhDsaSecretKeySize = 128
	SlhDsaSignatureSize = 49856
)

const slhdsaParamID = slhdsa.ParamIDSHA2256f

// SlhDsaSigner holds an SLH-DSA-SHA2-256f keypair. SLH-DSA is a stateless
// hash-based signature scheme: unlike SPHINCS+'s few-time-signature
// ancestors it carries no forward state that must be tracked across calls.
type SlhDsaSigner struct {
	priv slhdsa.PrivateKey
	pub  slhdsa.PublicKey
}

// GenerateSlhDsa creates a fresh SLH-DSA-SHA2-256f keypair.
func GenerateSlhDsa() (*SlhDsaSigner, error) {
	pub, priv, err := slhdsaParamID.GenerateKey(rand.Reader)
	if err != nil {
		return nil, tallowcrypto.New(tallowcrypto.KeyGeneration, "SLH-DSA keygen failed", err)
	}
	return &SlhDsaSigner{priv: priv, pub: pub}, nil
}

// Sign produces an SLH-DSA-SHA2-256f signature over message.
func (s *SlhDsaSigner) Sign(message []byte) ([]byte, error) {
	sig, err := slhdsa.SignRandomized(s.priv, rand.Reader, message, "")
	if err != nil {
		return nil, tallowcrypto.New(tallowcrypto.Signing, "SLH-DSA signing failed", err)
	}
	return sig, nil
}

// PublicKeyBytes returns the serialized SLH-DSA public key.
func (s *SlhDsaSigner) PublicKeyBytes() []byte {
	b, _ := s.pub.MarshalBinary()
	return b
}

// VerifySlhDsa checks an SLH-DSA-SHA2-256f signature over message against a
// serialized public key.
func VerifySlhDsa(publicKey, message, signature []byte) error {
	if len(publicKey) != SlhDsaPublicKeySize {
		return tallowcrypto.New(tallowcrypto.Verification, "invalid SLH-DSA public key length", nil)
	}
	if len(signature) != SlhDsaSignatureSize {
		return tallowcrypto.New(tallowcrypto.Verification, "invalid SLH-DSA signature length", nil)
	}

	pub, err := slhdsaParamID.PublicKeyFromBytes(publicKey)
	if err != nil {
		return tallowcrypto.New(tallowcrypto.Verification, "invalid SLH-DSA public key", err)
	}

	if !slhdsa.Verify(pub, message, signature, "") {
		return tallowcrypto.New(tallowcrypto.Verification, "SLH-DSA signature verification failed", nil)
	}
	return nil
}
