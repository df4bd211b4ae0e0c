package session_test

import (
	"bytes"
	"testing"

	"tallow/internal/crypto/kem"
	"tallow/internal/protocol/session"
)

func TestDeriveRootSecretDeterministic(t *testing.T) {
	var pake [32]byte
	copy(pake[:], bytes.Repeat([]byte{0x11}, 32))
	var kemSecret kem.HybridSharedSecret
	copy(kemSecret[:], bytes.Repeat([]byte{0x22}, 32))

	a := session.DeriveRootSecret(pake, kemSecret)
	b := session.DeriveRootSecret(pake, kemSecret)
	if a != b {
		t.Fatal("DeriveRootSecret is not deterministic for identical inputs")
	}
}

func TestDeriveRootSecretSensitiveToEachInput(t *testing.T) {
	var pake1, pake2 [32]byte
	copy(pake1[:], bytes.Repeat([]byte{0x11}, 32))
	copy(pake2[:], bytes.Repeat([]byte{0x33}, 32))
	var kemSecret kem.HybridSharedSecret
	copy(kemSecret[:], bytes.Repeat([]byte{0x22}, 32))

	a := session.DeriveRootSecret(pake1, kemSecret)
	b := session.DeriveRootSecret(pake2, kemSecret)
	if a == b {
		t.Fatal("changing the PAKE secret did not change the derived root secret")
	}

	var kemSecret2 kem.HybridSharedSecret
	copy(kemSecret2[:], bytes.Repeat([]byte{0x44}, 32))
	c := session.DeriveRootSecret(pake1, kemSecret2)
	if a == c {
		t.Fatal("changing the KEM secret did not change the derived root secret")
	}
}
