package ratchet

import (
	"encoding/binary"

	tallowcrypto "tallow/internal/crypto"
	"tallow/internal/crypto/hash"
	"tallow/internal/crypto/kdf"
	"tallow/internal/crypto/kem"
	"tallow/internal/crypto/mem"
	"tallow/internal/crypto/symmetric"
)

const maxSkippedMessageKeys = 1000

// rootInfo and chainInfo domain-separate the two HKDF derivations the
// ratchet performs, both built on the shared "ratchet v1" registry tag
// per the versioned-tag-or-suffix rule in hash/domain.go.
var (
	rootInfo   = []byte(hash.DomainRatchet + ".root")
	chainInfo  = []byte(hash.DomainRatchet + ".chain")
	msgKeyInfo = []byte(hash.DomainRatchet + ".chain.msgkey")
	pqMixInfo  = []byte(hash.DomainRatchet + ".pq-mix")
)

// Header travels alongside every ciphertext: the sender's current DH
// ratchet public key and the counters needed to place the message in its
// chain (or buffer it as a skipped key).
type Header struct {
	DHPub [kem.X25519KeySize]byte
	PN    uint32
	N     uint32
}

// State is one party's view of a Double Ratchet conversation.
type State struct {
	RootKey   [32]byte
	DH        *kem.X25519KeyPair
	PeerDHPub [kem.X25519KeySize]byte
	SendCK    []byte // nil until this side has ratcheted forward at least once
	RecvCK    []byte
	Ns, Nr    uint32
	PN        uint32
	Skipped   map[string][]byte
}

// InitSender starts a conversation as the party who has not yet received a
// message: it immediately performs the first DH ratchet step against
// theirDHPub, deriving a fresh send chain from rootSecret.
func InitSender(rootSecret [32]byte, theirDHPub [kem.X25519KeySize]byte) (*State, error) {
	ownDH, err := kem.GenerateX25519()
	if err != nil {
		return nil, err
	}

	dh, err := ownDH.DiffieHellman(theirDHPub)
	if err != nil {
		return nil, err
	}
	newRoot, sendCK, err := kdfRootChain(rootSecret, dh[:])
	mem.Wipe(dh[:])
	if err != nil {
		return nil, err
	}

	return &State{
		RootKey:   newRoot,
		DH:        ownDH,
		PeerDHPub: theirDHPub,
		SendCK:    sendCK,
		Skipped:   make(map[string][]byte),
	}, nil
}

// InitReceiver starts a conversation as the party who published ownDH (a
// signed pre-key or equivalent) for the sender to ratchet against. Its
// chains stay nil until the first message arrives (see Decrypt), mirroring
// InitSender's lazy ratchet on the send side.
func InitReceiver(rootSecret [32]byte, ownDH *kem.X25519KeyPair) *State {
	return &State{
		RootKey: rootSecret,
		DH:      ownDH,
		Skipped: make(map[string][]byte),
	}
}

// MixPQSecret folds a 32-byte secret (typically from a sparse PQ ratchet
// rekey) into the root key, composing post-quantum forward secrecy on top
// of the classical DH ratchet without disturbing the current chain keys.
func (s *State) MixPQSecret(secret [32]byte) {
	mixed := make([]byte, 0, 64)
	mixed = append(mixed, s.RootKey[:]...)
	mixed = append(mixed, secret[:]...)
	defer mem.Wipe(mixed)

	out, err := kdf.Derive(nil, mixed, pqMixInfo, 32)
	if err != nil {
		// Derive only fails for absurd output lengths; 32 is never one.
		panic("ratchet: MixPQSecret HKDF expansion failed: " + err.Error())
	}
	copy(s.RootKey[:], out)
	mem.Wipe(out)
}

// Encrypt advances the send chain by one step and AEAD-encrypts plaintext.
// If this side has never ratcheted forward (the lazy responder case), it
// performs that DH step first.
func (s *State) Encrypt(associatedData, plaintext []byte) (Header, []byte, error) {
	if s.SendCK == nil {
		if err := s.ratchetSendStep(); err != nil {
			return Header{}, nil, err
		}
	}

	mk, err := advanceChain(&s.SendCK)
	if err != nil {
		return Header{}, nil, err
	}
	defer mem.Wipe(mk)

	header := Header{DHPub: s.DH.PublicKey(), PN: s.PN, N: s.Ns}
	ct, err := seal(mk, header, associatedData, plaintext)
	if err != nil {
		return Header{}, nil, err
	}
	s.Ns++
	return header, ct, nil
}

// Decrypt accepts a header and ciphertext, performing a DH ratchet step if
// the header carries a new peer public key, buffering skipped message keys
// as needed, and AEAD-decrypting. Stale messages beyond
// maxSkippedMessageKeys are unrecoverable.
func (s *State) Decrypt(associatedData []byte, header Header, ciphertext []byte) ([]byte, error) {
	if mk, ok := s.takeSkipped(header); ok {
		defer mem.Wipe(mk)
		return open(mk, header, associatedData, ciphertext)
	}

	if s.RecvCK == nil || header.DHPub != s.PeerDHPub {
		if err := s.ratchetRecvStep(header.PN, header.DHPub); err != nil {
			return nil, err
		}
	}

	s.skipUntil(header.N)

	mk, err := advanceChain(&s.RecvCK)
	if err != nil {
		return nil, err
	}
	defer mem.Wipe(mk)

	pt, err := open(mk, header, associatedData, ciphertext)
	if err != nil {
		return nil, err
	}
	s.Nr = header.N + 1
	return pt, nil
}

// Zeroize scrubs every secret this state holds: root key, both chain
// keys, the DH keypair, and any buffered skipped message keys.
func (s *State) Zeroize() {
	mem.Wipe(s.RootKey[:])
	if s.SendCK != nil {
		mem.Wipe(s.SendCK)
	}
	if s.RecvCK != nil {
		mem.Wipe(s.RecvCK)
	}
	s.DH.Zeroize()
	for k, v := range s.Skipped {
		mem.Wipe(v)
		delete(s.Skipped, k)
	}
}

func (s *State) ratchetSendStep() error {
	s.PN = s.Ns
	s.Ns, s.Nr = 0, 0

	ownDH, err := kem.GenerateX25519()
	if err != nil {
		return err
	}
	dh, err := ownDH.DiffieHellman(s.PeerDHPub)
	if err != nil {
		return err
	}
	newRoot, sendCK, err := kdfRootChain(s.RootKey, dh[:])
	mem.Wipe(dh[:])
	if err != nil {
		return err
	}

	s.DH.Zeroize()
	s.DH, s.RootKey, s.SendCK = ownDH, newRoot, sendCK
	return nil
}

func (s *State) ratchetRecvStep(pn uint32, peerDHPub [kem.X25519KeySize]byte) error {
	s.skipUntilLocked(pn)

	dh, err := s.DH.DiffieHellman(peerDHPub)
	if err != nil {
		return err
	}
	newRoot, recvCK, err := kdfRootChain(s.RootKey, dh[:])
	mem.Wipe(dh[:])
	if err != nil {
		return err
	}

	ownDH, err := kem.GenerateX25519()
	if err != nil {
		return err
	}
	dh2, err := ownDH.DiffieHellman(peerDHPub)
	if err != nil {
		return err
	}
	root2, sendCK, err := kdfRootChain(newRoot, dh2[:])
	mem.Wipe(dh2[:])
	if err != nil {
		return err
	}

	s.PN, s.Ns, s.Nr = s.Ns, 0, 0
	s.DH.Zeroize()
	s.DH, s.PeerDHPub = ownDH, peerDHPub
	s.RootKey, s.SendCK, s.RecvCK = root2, sendCK, recvCK
	return nil
}

// skipUntil derives and buffers receive-chain keys for messages numbered
// below n that haven't arrived yet, so they can still be decrypted out of
// order within the skip window.
func (s *State) skipUntil(n uint32) {
	for s.Nr < n {
		mk, err := advanceChain(&s.RecvCK)
		if err != nil {
			return
		}
		s.storeSkipped(s.PeerDHPub, s.Nr, mk)
		s.Nr++
	}
}

func (s *State) skipUntilLocked(pn uint32) {
	if s.RecvCK == nil {
		return
	}
	for s.Nr < pn {
		mk, err := advanceChain(&s.RecvCK)
		if err != nil {
			return
		}
		s.storeSkipped(s.PeerDHPub, s.Nr, mk)
		s.Nr++
	}
}

func (s *State) storeSkipped(peerDHPub [kem.X25519KeySize]byte, n uint32, mk []byte) {
	if len(s.Skipped) >= maxSkippedMessageKeys {
		for k, v := range s.Skipped {
			mem.Wipe(v)
			delete(s.Skipped, k)
			break
		}
	}
	s.Skipped[skippedKeyID(peerDHPub, n)] = mk
}

func (s *State) takeSkipped(header Header) ([]byte, bool) {
	id := skippedKeyID(header.DHPub, header.N)
	mk, ok := s.Skipped[id]
	if ok {
		delete(s.Skipped, id)
	}
	return mk, ok
}

// kdfRootChain derives a new root key and chain key from a DH output,
// using the current root as HKDF salt so each step's output depends on
// the entire ratchet history, not just the latest DH.
func kdfRootChain(root [32]byte, dh []byte) ([32]byte, []byte, error) {
	outs, err := kdf.DeriveMultiple(root[:], dh, []kdf.Context{
		{Info: rootInfo, Length: 32},
		{Info: chainInfo, Length: 32},
	})
	if err != nil {
		return [32]byte{}, nil, err
	}
	var newRoot [32]byte
	copy(newRoot[:], outs[0])
	mem.Wipe(outs[0])
	return newRoot, outs[1], nil
}

// advanceChain derives the next chain key and a message key from *chain,
// replacing *chain in place. Returns InvalidKey if the chain is nil
// (uninitialized).
func advanceChain(chain *[]byte) ([]byte, error) {
	if *chain == nil {
		return nil, tallowcrypto.New(tallowcrypto.InvalidKey, "ratchet chain key not yet initialized", nil)
	}
	outs, err := kdf.DeriveMultiple(*chain, []byte{0x01}, []kdf.Context{
		{Info: chainInfo, Length: 32},
		{Info: msgKeyInfo, Length: 32},
	})
	if err != nil {
		return nil, err
	}
	mem.Wipe(*chain)
	*chain = outs[0]
	return outs[1], nil
}

func seal(mk []byte, header Header, ad, plaintext []byte) ([]byte, error) {
	var key [symmetric.KeySize]byte
	copy(key[:], mk)
	defer mem.Wipe(key[:])

	nonce := messageNonce(header.N)
	return symmetric.EncryptChaCha20Poly1305(&key, &nonce, plaintext, messageAAD(ad, header))
}

func open(mk []byte, header Header, ad, ciphertext []byte) ([]byte, error) {
	var key [symmetric.KeySize]byte
	copy(key[:], mk)
	defer mem.Wipe(key[:])

	nonce := messageNonce(header.N)
	return symmetric.DecryptChaCha20Poly1305(&key, &nonce, ciphertext, messageAAD(ad, header))
}

// messageAAD binds the caller's associated data and the wire header under
// the AEAD, in a fresh slice so the caller's backing array is never
// written through.
func messageAAD(ad []byte, header Header) []byte {
	hb := headerBytes(header)
	aad := make([]byte, 0, len(ad)+len(hb))
	aad = append(aad, ad...)
	return append(aad, hb...)
}

// messageNonce is safe to reuse across messages only because the AEAD key
// mk is itself unique per message (freshly derived from the chain each
// call); the (key, nonce) pair as a whole is still used exactly once.
func messageNonce(n uint32) [symmetric.NonceSize]byte {
	var nonce [symmetric.NonceSize]byte
	binary.BigEndian.PutUint32(nonce[symmetric.NonceSize-4:], n)
	return nonce
}

func headerBytes(h Header) []byte {
	out := make([]byte, 0, kem.X25519KeySize+8)
	out = append(out, h.DHPub[:]...)
	var tmp [4]byte
	binary.BigEndian.PutUint32(tmp[:], h.PN)
	out = append(out, tmp[:]...)
	binary.BigEndian.PutUint32(tmp[:], h.N)
	out = append(out, tmp[:]...)
	return out
}

func skippedKeyID(pub [kem.X25519KeySize]byte, n uint32) string {
	var buf [kem.X25519KeySize + 4]byte
	copy(buf[:kem.X25519KeySize], pub[:])
	binary.BigEndian.PutUint32(buf[kem.X25519KeySize:], n)
	return string(buf[:])
}
