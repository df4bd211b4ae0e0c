package kem

import (
	"crypto/rand"
	"io"

	"github.com/cloudflare/circl/kem"
	"github.com/cloudflare/circl/kem/mlkem/mlkem1024"

	tallowcrypto "tallow/internal/crypto"
)

var mlkemScheme = mlkem1024.Scheme()

// MlKemPublicKey and MlKemSecretKey hold ML-KEM-1024 keys in their
// serialized wire form, since circl's kem.PublicKey/kem.PrivateKey
// interfaces are not directly comparable or zeroizable.
type MlKemPublicKey struct {
	bytes []byte
}

type MlKemSecretKey struct {
	bytes []byte
}

// MlKemCiphertext is an ML-KEM-1024 encapsulation.
type MlKemCiphertext struct {
	bytes []byte
}

// MlKemSharedSecret is the 32-byte symmetric output of encapsulation or
// decapsulation.
type MlKemSharedSecret [32]byte

// GenerateMlKem1024 creates a fresh ML-KEM-1024 keypair.
func GenerateMlKem1024() (*MlKemPublicKey, *MlKemSecretKey, error) {
	pk, sk, err := mlkemScheme.GenerateKeyPair()
	if err != nil {
		return nil, nil, tallowcrypto.New(tallowcrypto.KeyGeneration, "ML-KEM-1024 key generation failed", err)
	}
	pkBytes, err := pk.MarshalBinary()
	if err != nil {
		return nil, nil, tallowcrypto.New(tallowcrypto.KeyGeneration, "failed to marshal ML-KEM-1024 public key", err)
	}
	skBytes, err := sk.MarshalBinary()
	if err != nil {
		return nil, nil, tallowcrypto.New(tallowcrypto.KeyGeneration, "failed to marshal ML-KEM-1024 secret key", err)
	}
	return &MlKemPublicKey{bytes: pkBytes}, &MlKemSecretKey{bytes: skBytes}, nil
}

// Bytes returns the serialized public key.
func (pk *MlKemPublicKey) Bytes() []byte { return pk.bytes }

// MlKemPublicKeyFromBytes parses a serialized ML-KEM-1024 public key.
func MlKemPublicKeyFromBytes(b []byte) (*MlKemPublicKey, error) {
	if _, err := mlkemScheme.UnmarshalBinaryPublicKey(b); err != nil {
		return nil, tallowcrypto.New(tallowcrypto.InvalidKey, "malformed ML-KEM-1024 public key", err)
	}
	return &MlKemPublicKey{bytes: append([]byte(nil), b...)}, nil
}

// Bytes returns the serialized secret key. It must only ever be persisted
// inside an encrypted keyring.
func (sk *MlKemSecretKey) Bytes() []byte { return sk.bytes }

// MlKemSecretKeyFromBytes parses a serialized ML-KEM-1024 secret key.
func MlKemSecretKeyFromBytes(b []byte) (*MlKemSecretKey, error) {
	if _, err := mlkemScheme.UnmarshalBinaryPrivateKey(b); err != nil {
		return nil, tallowcrypto.New(tallowcrypto.InvalidKey, "malformed ML-KEM-1024 secret key", err)
	}
	return &MlKemSecretKey{bytes: append([]byte(nil), b...)}, nil
}

// EncapsulateMlKem1024 encapsulates a fresh shared secret to pk.
func EncapsulateMlKem1024(pk *MlKemPublicKey) (*MlKemCiphertext, MlKemSharedSecret, error) {
	var zero MlKemSharedSecret

	schemePK, err := mlkemScheme.UnmarshalBinaryPublicKey(pk.bytes)
	if err != nil {
		return nil, zero, tallowcrypto.New(tallowcrypto.InvalidKey, "malformed ML-KEM-1024 public key", err)
	}

	seed := make([]byte, mlkemScheme.EncapsulationSeedSize())
	if _, err := io.ReadFull(rand.Reader, seed); err != nil {
		return nil, zero, tallowcrypto.New(tallowcrypto.KeyGeneration, "failed to generate ML-KEM-1024 encapsulation randomness", err)
	}

	ct, ss, err := mlkemScheme.EncapsulateDeterministically(schemePK, seed)
	if err != nil {
		return nil, zero, tallowcrypto.New(tallowcrypto.Encryption, "ML-KEM-1024 encapsulation failed", err)
	}

	var shared MlKemSharedSecret
	copy(shared[:], ss)
	return &MlKemCiphertext{bytes: ct}, shared, nil
}

// DecapsulateMlKem1024 recovers the shared secret encapsulated in ct.
func DecapsulateMlKem1024(sk *MlKemSecretKey, ct *MlKemCiphertext) (MlKemSharedSecret, error) {
	var zero MlKemSharedSecret

	schemeSK, err := mlkemScheme.UnmarshalBinaryPrivateKey(sk.bytes)
	if err != nil {
		return zero, tallowcrypto.New(tallowcrypto.InvalidKey, "malformed ML-KEM-1024 secret key", err)
	}

	ss, err := mlkemScheme.Decapsulate(schemeSK, ct.bytes)
	if err != nil {
		return zero, tallowcrypto.New(tallowcrypto.Decryption, "ML-KEM-1024 decapsulation failed", err)
	}

	var shared MlKemSharedSecret
	copy(shared[:], ss)
	return shared, nil
}

// Bytes returns the serialized ciphertext.
func (ct *MlKemCiphertext) Bytes() []byte { return ct.bytes }

// MlKemCiphertextFromBytes wraps raw ciphertext bytes. Validity is checked
// at decapsulation time.
func MlKemCiphertextFromBytes(b []byte) *MlKemCiphertext {
	return &MlKemCiphertext{bytes: append([]byte(nil), b...)}
}

var _ kem.Scheme = mlkemScheme
