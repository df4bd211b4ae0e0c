package keys

import (
	"bytes"
	"testing"

	"tallow/internal/crypto/hash"
	"tallow/internal/crypto/sig"
)

func TestGenerateIdentityProducesStableFingerprint(t *testing.T) {
	id, err := GenerateIdentity()
	if err != nil {
		t.Fatalf("GenerateIdentity: %v", err)
	}
	fp1 := id.ID()
	fp2 := hashViaSerialize(id.PublicKey())
	if fp1 != fp2 {
		t.Fatal("identity fingerprint does not match a fresh hash of its own public key")
	}
}

func hashViaSerialize(pk sig.HybridPublicKey) [32]byte {
	return hash.Hash(serializeHybridPublicKey(pk))
}

func TestGenerateEphemeral(t *testing.T) {
	kp, err := GenerateEphemeral()
	if err != nil {
		t.Fatalf("GenerateEphemeral: %v", err)
	}
	if kp.PublicBytes() == ([32]byte{}) {
		t.Fatal("expected a non-zero ephemeral public key")
	}
}

func TestSignedPreKeyGenerateAndVerify(t *testing.T) {
	identity, err := GenerateIdentity()
	if err != nil {
		t.Fatalf("GenerateIdentity: %v", err)
	}

	pk, err := GenerateSignedPreKey(1, identity.Signer())
	if err != nil {
		t.Fatalf("GenerateSignedPreKey: %v", err)
	}

	if err := pk.Verify(identity.PublicKey()); err != nil {
		t.Fatalf("Verify: %v", err)
	}
}

func TestSignedPreKeyRejectsWrongIdentity(t *testing.T) {
	identity, err := GenerateIdentity()
	if err != nil {
		t.Fatalf("GenerateIdentity: %v", err)
	}
	other, err := GenerateIdentity()
	if err != nil {
		t.Fatalf("GenerateIdentity: %v", err)
	}

	pk, err := GenerateSignedPreKey(1, identity.Signer())
	if err != nil {
		t.Fatalf("GenerateSignedPreKey: %v", err)
	}

	if err := pk.Verify(other.PublicKey()); err == nil {
		t.Fatal("expected verification against the wrong identity to fail")
	}
}

func TestPreKeyBundleVerify(t *testing.T) {
	identity, err := GenerateIdentity()
	if err != nil {
		t.Fatalf("GenerateIdentity: %v", err)
	}
	spk, err := GenerateSignedPreKey(1, identity.Signer())
	if err != nil {
		t.Fatalf("GenerateSignedPreKey: %v", err)
	}
	otk, err := GenerateOneTimePreKey(1)
	if err != nil {
		t.Fatalf("GenerateOneTimePreKey: %v", err)
	}

	bundle := PreKeyBundle{
		IdentityKey:   identity.PublicKey(),
		SignedPreKey:  spk,
		OneTimePreKey: otk,
	}
	if err := bundle.Verify(); err != nil {
		t.Fatalf("Verify: %v", err)
	}
}

func TestPreKeyBundleMissingSignedPreKey(t *testing.T) {
	identity, err := GenerateIdentity()
	if err != nil {
		t.Fatalf("GenerateIdentity: %v", err)
	}
	bundle := PreKeyBundle{IdentityKey: identity.PublicKey()}
	if err := bundle.Verify(); err == nil {
		t.Fatal("expected an error for a bundle missing its signed pre-key")
	}
}

func TestKeyRotationRecordVerify(t *testing.T) {
	oldIdentity, err := sig.GenerateEd25519()
	if err != nil {
		t.Fatalf("GenerateEd25519: %v", err)
	}
	newIdentity, err := sig.GenerateEd25519()
	if err != nil {
		t.Fatalf("GenerateEd25519: %v", err)
	}

	record := NewKeyRotationRecord(oldIdentity, newIdentity)
	if err := record.Verify(); err != nil {
		t.Fatalf("Verify: %v", err)
	}
}

func TestKeyRotationRecordRejectsTamperedNewKey(t *testing.T) {
	oldIdentity, err := sig.GenerateEd25519()
	if err != nil {
		t.Fatalf("GenerateEd25519: %v", err)
	}
	newIdentity, err := sig.GenerateEd25519()
	if err != nil {
		t.Fatalf("GenerateEd25519: %v", err)
	}
	record := NewKeyRotationRecord(oldIdentity, newIdentity)
	record.NewKeyID[0] ^= 0xFF

	if err := record.Verify(); err == nil {
		t.Fatal("expected verification to fail after tampering with the new key id")
	}
}

func TestEncryptDecryptKeyringRoundTrip(t *testing.T) {
	keys := []byte("super secret key material")
	keyring, err := EncryptKeyring("correct horse battery staple", keys)
	if err != nil {
		t.Fatalf("EncryptKeyring: %v", err)
	}

	decrypted, err := DecryptKeyring("correct horse battery staple", keyring)
	if err != nil {
		t.Fatalf("DecryptKeyring: %v", err)
	}
	if !bytes.Equal(decrypted, keys) {
		t.Fatal("decrypted keyring does not match original")
	}
}

func TestDecryptKeyringWrongPassphrase(t *testing.T) {
	keyring, err := EncryptKeyring("correct passphrase", []byte("secret"))
	if err != nil {
		t.Fatalf("EncryptKeyring: %v", err)
	}
	if _, err := DecryptKeyring("wrong passphrase", keyring); err == nil {
		t.Fatal("expected decryption with the wrong passphrase to fail")
	}
}

func TestSignedPreKeyRejectsMutatedFields(t *testing.T) {
	identity, err := GenerateIdentity()
	if err != nil {
		t.Fatalf("GenerateIdentity: %v", err)
	}
	spk, err := GenerateSignedPreKey(42, identity.Signer())
	if err != nil {
		t.Fatalf("GenerateSignedPreKey: %v", err)
	}

	mutatedID := *spk
	mutatedID.ID = 43
	if err := mutatedID.Verify(identity.PublicKey()); err == nil {
		t.Fatal("expected verification to fail after mutating the id")
	}

	mutatedTS := *spk
	mutatedTS.Timestamp++
	if err := mutatedTS.Verify(identity.PublicKey()); err == nil {
		t.Fatal("expected verification to fail after mutating the timestamp")
	}
}
