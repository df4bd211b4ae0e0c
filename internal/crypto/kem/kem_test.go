package kem

import "testing"

func TestX25519Exchange(t *testing.T) {
	alice, err := GenerateX25519()
	if err != nil {
		t.Fatalf("GenerateX25519: %v", err)
	}
	bob, err := GenerateX25519()
	if err != nil {
		t.Fatalf("GenerateX25519: %v", err)
	}

	aliceShared, err := alice.DiffieHellman(bob.PublicKey())
	if err != nil {
		t.Fatalf("alice.DiffieHellman: %v", err)
	}
	bobShared, err := bob.DiffieHellman(alice.PublicKey())
	if err != nil {
		t.Fatalf("bob.DiffieHellman: %v", err)
	}
	if aliceShared != bobShared {
		t.Fatal("shared secrets do not match")
	}
}

func TestX25519FromSecretDeterministic(t *testing.T) {
	var secret [32]byte
	for i := range secret {
		secret[i] = 42
	}
	kp1 := X25519FromSecret(secret)
	kp2 := X25519FromSecret(secret)
	if kp1.PublicKey() != kp2.PublicKey() {
		t.Fatal("same secret should produce the same public key")
	}
}

func TestX25519LowOrderPointRejected(t *testing.T) {
	kp, err := GenerateX25519()
	if err != nil {
		t.Fatalf("GenerateX25519: %v", err)
	}
	var zeroPK [32]byte
	if _, err := kp.DiffieHellman(zeroPK); err == nil {
		t.Fatal("expected DH with an all-zero public key to fail")
	}
}

func TestMlKem1024RoundTrip(t *testing.T) {
	pk, sk, err := GenerateMlKem1024()
	if err != nil {
		t.Fatalf("GenerateMlKem1024: %v", err)
	}

	ct, ss1, err := EncapsulateMlKem1024(pk)
	if err != nil {
		t.Fatalf("EncapsulateMlKem1024: %v", err)
	}

	ss2, err := DecapsulateMlKem1024(sk, ct)
	if err != nil {
		t.Fatalf("DecapsulateMlKem1024: %v", err)
	}

	if ss1 != ss2 {
		t.Fatal("encapsulated and decapsulated shared secrets do not match")
	}
}

func TestMlKem1024WireRoundTrip(t *testing.T) {
	pk, _, err := GenerateMlKem1024()
	if err != nil {
		t.Fatalf("GenerateMlKem1024: %v", err)
	}

	parsed, err := MlKemPublicKeyFromBytes(pk.Bytes())
	if err != nil {
		t.Fatalf("MlKemPublicKeyFromBytes: %v", err)
	}

	ct, ss1, err := EncapsulateMlKem1024(parsed)
	if err != nil {
		t.Fatalf("EncapsulateMlKem1024: %v", err)
	}
	ct2 := MlKemCiphertextFromBytes(ct.Bytes())
	if len(ct2.Bytes()) != len(ct.Bytes()) {
		t.Fatal("ciphertext did not round-trip through bytes")
	}
	_ = ss1
}

func TestHybridRoundTrip(t *testing.T) {
	pk, sk, err := GenerateHybridKeyPair()
	if err != nil {
		t.Fatalf("GenerateHybridKeyPair: %v", err)
	}

	ct, ss1, err := EncapsulateHybrid(pk)
	if err != nil {
		t.Fatalf("EncapsulateHybrid: %v", err)
	}

	ss2, err := DecapsulateHybrid(sk, ct)
	if err != nil {
		t.Fatalf("DecapsulateHybrid: %v", err)
	}

	if ss1 != ss2 {
		t.Fatal("hybrid shared secrets do not match")
	}
}

func TestHybridBreaksIfEitherComponentDiffers(t *testing.T) {
	pk, sk, err := GenerateHybridKeyPair()
	if err != nil {
		t.Fatalf("GenerateHybridKeyPair: %v", err)
	}
	ct, ss1, err := EncapsulateHybrid(pk)
	if err != nil {
		t.Fatalf("EncapsulateHybrid: %v", err)
	}

	// Tamper with the X25519 ephemeral public key only.
	tampered := *ct
	tampered.X25519Public[0] ^= 0xFF

	ss2, err := DecapsulateHybrid(sk, &tampered)
	if err == nil && ss1 == ss2 {
		t.Fatal("tampering with the X25519 component should change the combined secret")
	}
}

func TestNegotiateHybridPreferred(t *testing.T) {
	got, ok := Negotiate(AllCapabilities(), AllCapabilities())
	if !ok || got != Hybrid {
		t.Fatalf("expected Hybrid, got %v ok=%v", got, ok)
	}
}

func TestNegotiatePQOnly(t *testing.T) {
	got, ok := Negotiate(PQOnlyCapabilities(), AllCapabilities())
	if !ok || got != MlKem1024Only {
		t.Fatalf("expected MlKem1024Only, got %v ok=%v", got, ok)
	}
}

func TestNegotiateNoMatch(t *testing.T) {
	if _, ok := Negotiate(PQOnlyCapabilities(), ClassicalOnlyCapabilities()); ok {
		t.Fatal("expected no negotiated algorithm")
	}
}

func TestCapabilitiesSupports(t *testing.T) {
	all := AllCapabilities()
	if !all.Supports(Hybrid) || !all.Supports(MlKem1024Only) || !all.Supports(X25519Only) {
		t.Fatal("AllCapabilities should support every algorithm")
	}
	pq := PQOnlyCapabilities()
	if pq.Supports(X25519Only) {
		t.Fatal("PQOnlyCapabilities should not support X25519Only")
	}
}
