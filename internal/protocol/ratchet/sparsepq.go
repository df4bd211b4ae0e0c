package ratchet

import (
	"tallow/internal/crypto/hash"
	"tallow/internal/crypto/kem"
	"tallow/internal/crypto/mem"
)

// neverRekey is rekey_interval's internal representation when the caller
// passes 0 ("never"), avoiding a modulo-by-zero on every Step.
const neverRekey = ^uint64(0)

// SparsePQState is a ratchet that performs a full ML-KEM-1024 rekey only
// every rekeyInterval steps, rather than per message, trading continuous
// post-quantum forward secrecy for much lower per-message PQ cost.
type SparsePQState struct {
	currentSecret [32]byte
	pendingSK     *kem.MlKemSecretKey
	stepCount     uint64
	rekeyInterval uint64
}

// InitSparsePQRatchet seeds a sparse PQ ratchet from initialSecret.
// rekeyInterval of 0 means "never rekey" (stored internally as the
// maximum uint64 so Step's modulo check is always false).
func InitSparsePQRatchet(initialSecret [32]byte, rekeyInterval uint64) *SparsePQState {
	if rekeyInterval == 0 {
		rekeyInterval = neverRekey
	}
	return &SparsePQState{currentSecret: initialSecret, rekeyInterval: rekeyInterval}
}

// CurrentSecret returns the ratchet's current 32-byte secret.
func (s *SparsePQState) CurrentSecret() [32]byte { return s.currentSecret }

// Step advances the step counter. Once it reaches a multiple of the rekey
// interval, a fresh ML-KEM-1024 keypair is generated, its secret half
// retained as pending, and its public half returned for transmission to
// the peer. Every other step returns (nil, nil): the caller sends nothing.
//
// After 2^64-1 steps the internal counter saturates rather than wrapping,
// per the sparse-PQ-ratchet's explicit modulo-check design; callers should
// terminate sessions long before that.
func (s *SparsePQState) Step() (*kem.MlKemPublicKey, error) {
	if s.stepCount != ^uint64(0) {
		s.stepCount++
	}
	if s.stepCount%s.rekeyInterval != 0 {
		return nil, nil
	}

	pk, sk, err := kem.GenerateMlKem1024()
	if err != nil {
		return nil, err
	}
	s.pendingSK = sk
	return pk, nil
}

// EncapsulateTo is called by the peer that just received a fresh public
// key from the other side's Step: it encapsulates a shared secret to pk,
// mixes it into this side's current secret immediately (it has no
// pending secret key to wait on), and returns the ciphertext to send back.
func (s *SparsePQState) EncapsulateTo(pk *kem.MlKemPublicKey) (*kem.MlKemCiphertext, error) {
	ct, ss, err := kem.EncapsulateMlKem1024(pk)
	if err != nil {
		return nil, err
	}
	s.mix(ss)
	return ct, nil
}

// ProcessCiphertext decapsulates ct with the stored pending secret key and
// mixes the recovered shared secret into the current secret, then clears
// the consumed keypair. A ciphertext arriving with no pending secret key
// (out of sequence, or this side never initiated a rekey) is a no-op, not
// a failure: it returns (false, nil).
func (s *SparsePQState) ProcessCiphertext(ct *kem.MlKemCiphertext) (bool, error) {
	if s.pendingSK == nil {
		return false, nil
	}
	ss, err := kem.DecapsulateMlKem1024(s.pendingSK, ct)
	if err != nil {
		return false, err
	}
	s.mix(ss)
	s.pendingSK = nil
	return true, nil
}

// mix folds a freshly (de)encapsulated ML-KEM shared secret into the
// current secret via BLAKE3(current_secret || ss), zeroizing the
// concatenation buffer immediately afterward.
func (s *SparsePQState) mix(ss kem.MlKemSharedSecret) {
	buf := make([]byte, 0, len(s.currentSecret)+len(ss))
	buf = append(buf, s.currentSecret[:]...)
	buf = append(buf, ss[:]...)
	s.currentSecret = hash.Hash(buf)
	mem.Wipe(buf)
}

// Zeroize wipes the current secret. The pending ML-KEM secret key, if any,
// is simply dropped: circl's ML-KEM secret key bytes have no zeroizing
// destructor of their own, the same best-effort posture this tree takes
// with Ed25519's library-owned key type.
func (s *SparsePQState) Zeroize() {
	mem.Wipe(s.currentSecret[:])
	s.pendingSK = nil
}
