package pake_test

import (
	"testing"

	"tallow/internal/crypto/pake"
)

func TestCPaceRoundTripMatchingSecrets(t *testing.T) {
	phrase := []byte("correct horse battery staple")

	alice, err := pake.New(phrase)
	if err != nil {
		t.Fatalf("New(alice): %v", err)
	}
	bob, err := pake.New(phrase)
	if err != nil {
		t.Fatalf("New(bob): %v", err)
	}

	aliceMsg := alice.PublicMessage()
	bobMsg := bob.PublicMessage()

	aliceSecret, err := alice.Finish(bobMsg[:])
	if err != nil {
		t.Fatalf("alice.Finish: %v", err)
	}
	bobSecret, err := bob.Finish(aliceMsg[:])
	if err != nil {
		t.Fatalf("bob.Finish: %v", err)
	}

	if aliceSecret != bobSecret {
		t.Fatal("CPace parties derived different session secrets")
	}
}

func TestCPaceMismatchedPhrasesDiverge(t *testing.T) {
	alice, err := pake.New([]byte("correct horse battery staple"))
	if err != nil {
		t.Fatalf("New(alice): %v", err)
	}
	bob, err := pake.New([]byte("wrong phrase entirely"))
	if err != nil {
		t.Fatalf("New(bob): %v", err)
	}

	aliceMsg := alice.PublicMessage()
	bobMsg := bob.PublicMessage()

	aliceSecret, err := alice.Finish(bobMsg[:])
	if err != nil {
		t.Fatalf("alice.Finish: %v", err)
	}
	bobSecret, err := bob.Finish(aliceMsg[:])
	if err != nil {
		t.Fatalf("bob.Finish: %v", err)
	}

	if aliceSecret == bobSecret {
		t.Fatal("expected mismatched code phrases to derive different secrets")
	}
}

func TestCPaceRejectsWrongLengthPublicMessage(t *testing.T) {
	alice, err := pake.New([]byte("phrase"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := alice.Finish([]byte{1, 2, 3}); err == nil {
		t.Fatal("expected Finish to reject a too-short public message")
	}
}
