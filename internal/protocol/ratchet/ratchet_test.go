package ratchet_test

import (
	"bytes"
	"testing"

	"tallow/internal/crypto/kem"
	"tallow/internal/protocol/ratchet"
)

func sharedSecret(t *testing.T) [32]byte {
	t.Helper()
	var s [32]byte
	copy(s[:], bytes.Repeat([]byte{0x42}, 32))
	return s
}

func TestDoubleRatchetOneRoundTrip(t *testing.T) {
	rootSecret := sharedSecret(t)

	responderDH, err := kem.GenerateX25519()
	if err != nil {
		t.Fatalf("GenerateX25519: %v", err)
	}

	sender, err := ratchet.InitSender(rootSecret, responderDH.PublicKey())
	if err != nil {
		t.Fatalf("InitSender: %v", err)
	}
	receiver := ratchet.InitReceiver(rootSecret, responderDH)

	header, ct, err := sender.Encrypt(nil, []byte("hi"))
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	pt, err := receiver.Decrypt(nil, header, ct)
	if err != nil {
		t.Fatalf("Decrypt: %v", err)
	}
	if string(pt) != "hi" {
		t.Fatalf("got %q, want %q", pt, "hi")
	}
}

func TestDoubleRatchetMultipleMessagesAndReply(t *testing.T) {
	rootSecret := sharedSecret(t)
	responderDH, err := kem.GenerateX25519()
	if err != nil {
		t.Fatalf("GenerateX25519: %v", err)
	}

	sender, err := ratchet.InitSender(rootSecret, responderDH.PublicKey())
	if err != nil {
		t.Fatalf("InitSender: %v", err)
	}
	receiver := ratchet.InitReceiver(rootSecret, responderDH)

	for i, msg := range []string{"first", "second", "third"} {
		header, ct, err := sender.Encrypt(nil, []byte(msg))
		if err != nil {
			t.Fatalf("Encrypt %d: %v", i, err)
		}
		pt, err := receiver.Decrypt(nil, header, ct)
		if err != nil {
			t.Fatalf("Decrypt %d: %v", i, err)
		}
		if string(pt) != msg {
			t.Fatalf("message %d: got %q, want %q", i, pt, msg)
		}
	}

	// Reply ratchets the receiver's send chain forward for the first time.
	header, ct, err := receiver.Encrypt(nil, []byte("reply"))
	if err != nil {
		t.Fatalf("reply Encrypt: %v", err)
	}
	pt, err := sender.Decrypt(nil, header, ct)
	if err != nil {
		t.Fatalf("reply Decrypt: %v", err)
	}
	if string(pt) != "reply" {
		t.Fatalf("got %q, want %q", pt, "reply")
	}
}

func TestDoubleRatchetOutOfOrderWithinSkipWindow(t *testing.T) {
	rootSecret := sharedSecret(t)
	responderDH, err := kem.GenerateX25519()
	if err != nil {
		t.Fatalf("GenerateX25519: %v", err)
	}

	sender, err := ratchet.InitSender(rootSecret, responderDH.PublicKey())
	if err != nil {
		t.Fatalf("InitSender: %v", err)
	}
	receiver := ratchet.InitReceiver(rootSecret, responderDH)

	h0, ct0, err := sender.Encrypt(nil, []byte("zero"))
	if err != nil {
		t.Fatalf("Encrypt 0: %v", err)
	}
	h1, ct1, err := sender.Encrypt(nil, []byte("one"))
	if err != nil {
		t.Fatalf("Encrypt 1: %v", err)
	}

	pt1, err := receiver.Decrypt(nil, h1, ct1)
	if err != nil {
		t.Fatalf("Decrypt 1 (out of order): %v", err)
	}
	if string(pt1) != "one" {
		t.Fatalf("got %q, want %q", pt1, "one")
	}

	pt0, err := receiver.Decrypt(nil, h0, ct0)
	if err != nil {
		t.Fatalf("Decrypt 0 (skipped): %v", err)
	}
	if string(pt0) != "zero" {
		t.Fatalf("got %q, want %q", pt0, "zero")
	}
}

func TestDoubleRatchetTamperedCiphertextFails(t *testing.T) {
	rootSecret := sharedSecret(t)
	responderDH, err := kem.GenerateX25519()
	if err != nil {
		t.Fatalf("GenerateX25519: %v", err)
	}
	sender, err := ratchet.InitSender(rootSecret, responderDH.PublicKey())
	if err != nil {
		t.Fatalf("InitSender: %v", err)
	}
	receiver := ratchet.InitReceiver(rootSecret, responderDH)

	header, ct, err := sender.Encrypt(nil, []byte("hi"))
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	ct[0] ^= 0xFF

	if _, err := receiver.Decrypt(nil, header, ct); err == nil {
		t.Fatal("expected decryption of tampered ciphertext to fail")
	}
}

func TestTripleRatchetAcrossPQRekey(t *testing.T) {
	rootSecret := sharedSecret(t)
	responderDH, err := kem.GenerateX25519()
	if err != nil {
		t.Fatalf("GenerateX25519: %v", err)
	}

	sender, err := ratchet.InitTripleSender(rootSecret, responderDH.PublicKey(), 2)
	if err != nil {
		t.Fatalf("InitTripleSender: %v", err)
	}
	receiver := ratchet.InitTripleReceiver(rootSecret, responderDH, 2)

	header, ct, err := sender.Encrypt(nil, []byte("before"))
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	pt, err := receiver.Decrypt(nil, header, ct)
	if err != nil {
		t.Fatalf("Decrypt: %v", err)
	}
	if string(pt) != "before" {
		t.Fatalf("got %q, want %q", pt, "before")
	}

	if _, err := sender.Step(); err != nil {
		t.Fatalf("sender.Step 1: %v", err)
	}
	if _, err := sender.Step(); err != nil {
		t.Fatalf("sender.Step 2: %v", err)
	}
	if _, err := receiver.Step(); err != nil {
		t.Fatalf("receiver.Step 1: %v", err)
	}
	if _, err := receiver.Step(); err != nil {
		t.Fatalf("receiver.Step 2: %v", err)
	}

	header, ct, err = sender.Encrypt(nil, []byte("after pq rekey"))
	if err != nil {
		t.Fatalf("Encrypt after rekey: %v", err)
	}
	pt, err = receiver.Decrypt(nil, header, ct)
	if err != nil {
		t.Fatalf("Decrypt after rekey: %v", err)
	}
	if string(pt) != "after pq rekey" {
		t.Fatalf("got %q, want %q", pt, "after pq rekey")
	}
}

func TestTripleRatchetPQRekeyRoundTrip(t *testing.T) {
	rootSecret := sharedSecret(t)
	responderDH, err := kem.GenerateX25519()
	if err != nil {
		t.Fatalf("GenerateX25519: %v", err)
	}

	initiator, err := ratchet.InitTripleSender(rootSecret, responderDH.PublicKey(), 1)
	if err != nil {
		t.Fatalf("InitTripleSender: %v", err)
	}
	peer := ratchet.InitTripleReceiver(rootSecret, responderDH, 1)

	pk, err := initiator.Step()
	if err != nil {
		t.Fatalf("Step: %v", err)
	}
	if pk == nil {
		t.Fatal("expected a PQ public key on the first step with rekey_interval=1")
	}

	ct, err := peer.ReceivePQPublicKey(pk)
	if err != nil {
		t.Fatalf("ReceivePQPublicKey: %v", err)
	}

	rekeyed, err := initiator.ProcessPQCiphertext(ct)
	if err != nil {
		t.Fatalf("ProcessPQCiphertext: %v", err)
	}
	if !rekeyed {
		t.Fatal("expected ProcessPQCiphertext to report a completed rekey")
	}

	if initiator.PQ.CurrentSecret() != peer.PQ.CurrentSecret() {
		t.Fatal("initiator and peer PQ secrets diverged after a rekey round")
	}
}
