package symmetric

import (
	"bytes"
	"testing"
)

func TestAESGCMRoundTrip(t *testing.T) {
	var key [KeySize]byte
	var nonce [NonceSize]byte
	nonce[0] = 1
	plaintext := []byte("hello world")
	aad := []byte("metadata")

	ct, err := EncryptAESGCM(&key, &nonce, plaintext, aad)
	if err != nil {
		t.Fatalf("EncryptAESGCM: %v", err)
	}
	pt, err := DecryptAESGCM(&key, &nonce, ct, aad)
	if err != nil {
		t.Fatalf("DecryptAESGCM: %v", err)
	}
	if !bytes.Equal(pt, plaintext) {
		t.Fatal("round trip did not recover plaintext")
	}
}

func TestAESGCMRejectsTamperedCiphertext(t *testing.T) {
	var key [KeySize]byte
	var nonce [NonceSize]byte
	ct, err := EncryptAESGCM(&key, &nonce, []byte("data"), nil)
	if err != nil {
		t.Fatalf("EncryptAESGCM: %v", err)
	}
	ct[0] ^= 0xFF
	if _, err := DecryptAESGCM(&key, &nonce, ct, nil); err == nil {
		t.Fatal("expected decryption to fail for tampered ciphertext")
	}
}

func TestAESGCMRejectsWrongAAD(t *testing.T) {
	var key [KeySize]byte
	var nonce [NonceSize]byte
	ct, err := EncryptAESGCM(&key, &nonce, []byte("data"), []byte("aad1"))
	if err != nil {
		t.Fatalf("EncryptAESGCM: %v", err)
	}
	if _, err := DecryptAESGCM(&key, &nonce, ct, []byte("aad2")); err == nil {
		t.Fatal("expected decryption to fail for mismatched AAD")
	}
}

func TestChaCha20Poly1305RoundTrip(t *testing.T) {
	var key [KeySize]byte
	var nonce [NonceSize]byte
	nonce[0] = 7
	plaintext := []byte("the quick brown fox")
	aad := []byte("header")

	ct, err := EncryptChaCha20Poly1305(&key, &nonce, plaintext, aad)
	if err != nil {
		t.Fatalf("EncryptChaCha20Poly1305: %v", err)
	}
	pt, err := DecryptChaCha20Poly1305(&key, &nonce, ct, aad)
	if err != nil {
		t.Fatalf("DecryptChaCha20Poly1305: %v", err)
	}
	if !bytes.Equal(pt, plaintext) {
		t.Fatal("round trip did not recover plaintext")
	}
}

func TestChaCha20Poly1305RejectsTamperedCiphertext(t *testing.T) {
	var key [KeySize]byte
	var nonce [NonceSize]byte
	ct, err := EncryptChaCha20Poly1305(&key, &nonce, []byte("data"), nil)
	if err != nil {
		t.Fatalf("EncryptChaCha20Poly1305: %v", err)
	}
	ct[len(ct)-1] ^= 0xFF
	if _, err := DecryptChaCha20Poly1305(&key, &nonce, ct, nil); err == nil {
		t.Fatal("expected decryption to fail for tampered ciphertext")
	}
}

func TestAEGIS256Unsupported(t *testing.T) {
	var key [KeySize]byte
	var nonce [NonceSize]byte
	if _, err := EncryptAEGIS256(&key, &nonce, []byte("x"), nil); err == nil {
		t.Fatal("expected AEGIS-256 to report Unsupported")
	}
}

func TestNegotiate(t *testing.T) {
	our := []CipherSuite{Aes256Gcm, ChaCha20Poly1305}
	their := []CipherSuite{ChaCha20Poly1305}

	got, ok := Negotiate(our, their)
	if !ok || got != ChaCha20Poly1305 {
		t.Fatalf("expected ChaCha20Poly1305, got %v ok=%v", got, ok)
	}
}

func TestNegotiateNoOverlap(t *testing.T) {
	our := []CipherSuite{Aes256Gcm}
	their := []CipherSuite{ChaCha20Poly1305}

	if _, ok := Negotiate(our, their); ok {
		t.Fatal("expected no negotiated suite")
	}
}

func TestDefaultSuitesNonEmpty(t *testing.T) {
	suites := DefaultSuites()
	if len(suites) == 0 {
		t.Fatal("DefaultSuites must not be empty")
	}
	hasAES, hasChaCha := false, false
	for _, s := range suites {
		if s == Aes256Gcm {
			hasAES = true
		}
		if s == ChaCha20Poly1305 {
			hasChaCha = true
		}
	}
	if !hasAES || !hasChaCha {
		t.Fatal("expected both AES-256-GCM and ChaCha20-Poly1305 in default suites")
	}
}

func TestNonceGenerationProducesDistinctNonces(t *testing.T) {
	gen, err := New(DirectionSend)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	n1 := gen.NextNonce()
	n2 := gen.NextNonce()
	if n1 == n2 {
		t.Fatal("consecutive nonces must differ")
	}
}

func TestNonceCounterAdvances(t *testing.T) {
	gen, err := New(DirectionSend)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if gen.Counter() != 0 {
		t.Fatal("expected initial counter of 0")
	}
	gen.NextNonce()
	if gen.Counter() != 1 {
		t.Fatal("expected counter 1 after one nonce")
	}
	gen.NextNonce()
	if gen.Counter() != 2 {
		t.Fatal("expected counter 2 after two nonces")
	}
}

func TestNonceDirectionEncoding(t *testing.T) {
	var seed [32]byte
	for i := range seed {
		seed[i] = 42
	}
	send := FromSeed(seed, DirectionSend)
	recv := FromSeed(seed, DirectionReceive)

	sendNonce := send.NextNonce()
	recvNonce := recv.NextNonce()

	if !bytes.Equal(sendNonce[:8], recvNonce[:8]) {
		t.Fatal("counter bytes should match across directions at the same counter value")
	}
	if sendNonce[8] == recvNonce[8] {
		t.Fatal("direction bit should make byte 8 differ")
	}
}

func TestNonceSetCounter(t *testing.T) {
	gen, err := New(DirectionSend)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	gen.SetCounter(100)
	nonce := gen.NextNonce()
	if gen.Counter() != 101 {
		t.Fatalf("expected counter 101, got %d", gen.Counter())
	}

	var counterBytes uint64
	for i := 0; i < 8; i++ {
		counterBytes = counterBytes<<8 | uint64(nonce[i])
	}
	if counterBytes != 100 {
		t.Fatalf("expected encoded counter 100, got %d", counterBytes)
	}
}
