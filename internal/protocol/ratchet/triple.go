package ratchet

import "tallow/internal/crypto/kem"

// TripleState composes a Double Ratchet with a sparse PQ ratchet: message
// encryption/decryption delegate entirely to the double ratchet, while an
// out-of-band PQ rekey round periodically mixes fresh ML-KEM-1024 material
// into the double ratchet's root key for post-compromise, post-quantum
// recovery.
type TripleState struct {
	Double *State
	PQ     *SparsePQState
}

// InitTripleSender starts a triple ratchet as the party who ratchets
// first, composing Double Ratchet and sparse-PQ-ratchet initialization
// from the same mixed root secret.
func InitTripleSender(rootSecret [32]byte, theirDHPub [kem.X25519KeySize]byte, rekeyInterval uint64) (*TripleState, error) {
	double, err := InitSender(rootSecret, theirDHPub)
	if err != nil {
		return nil, err
	}
	return &TripleState{
		Double: double,
		PQ:     InitSparsePQRatchet(rootSecret, rekeyInterval),
	}, nil
}

// InitTripleReceiver starts a triple ratchet as the party who published
// ownDH for the peer to ratchet against.
func InitTripleReceiver(rootSecret [32]byte, ownDH *kem.X25519KeyPair, rekeyInterval uint64) *TripleState {
	return &TripleState{
		Double: InitReceiver(rootSecret, ownDH),
		PQ:     InitSparsePQRatchet(rootSecret, rekeyInterval),
	}
}

// Encrypt delegates to the double ratchet.
func (t *TripleState) Encrypt(associatedData, plaintext []byte) (Header, []byte, error) {
	return t.Double.Encrypt(associatedData, plaintext)
}

// Decrypt delegates to the double ratchet.
func (t *TripleState) Decrypt(associatedData []byte, header Header, ciphertext []byte) ([]byte, error) {
	return t.Double.Decrypt(associatedData, header, ciphertext)
}

// Step advances the sparse PQ ratchet's step counter. When a rekey round
// comes due it returns the fresh ML-KEM-1024 public key to send to the
// peer; otherwise it returns (nil, nil). Generating this keypair does not
// by itself change the double ratchet's root key — the PQ secret only
// updates, and gets mixed in, once the round completes via
// ReceivePQPublicKey or ProcessPQCiphertext.
func (t *TripleState) Step() (*kem.MlKemPublicKey, error) {
	return t.PQ.Step()
}

// ReceivePQPublicKey is called by the peer that receives a public key
// produced by the other side's Step. It encapsulates a fresh shared
// secret, mixes it into the double ratchet's root key immediately, and
// returns the ciphertext to send back.
func (t *TripleState) ReceivePQPublicKey(pk *kem.MlKemPublicKey) (*kem.MlKemCiphertext, error) {
	ct, err := t.PQ.EncapsulateTo(pk)
	if err != nil {
		return nil, err
	}
	t.Double.MixPQSecret(t.PQ.CurrentSecret())
	return ct, nil
}

// ProcessPQCiphertext completes a rekey round this side initiated with
// Step: it decapsulates ct with the pending secret key and, if a pending
// key was in fact outstanding, mixes the recovered secret into the double
// ratchet's root key. An out-of-sequence ciphertext (no pending key) is a
// no-op, matching the sparse PQ ratchet's own failure semantics.
func (t *TripleState) ProcessPQCiphertext(ct *kem.MlKemCiphertext) (bool, error) {
	rekeyed, err := t.PQ.ProcessCiphertext(ct)
	if err != nil {
		return false, err
	}
	if rekeyed {
		t.Double.MixPQSecret(t.PQ.CurrentSecret())
	}
	return rekeyed, nil
}

// Zeroize scrubs both component ratchets.
func (t *TripleState) Zeroize() {
	t.Double.Zeroize()
	t.PQ.Zeroize()
}
