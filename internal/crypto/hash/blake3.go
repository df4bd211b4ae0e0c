package hash

import "github.com/zeebo/blake3"

// Size is the digest length produced by every hash function in this file.
const Size = 32

// Hash returns the one-shot BLAKE3 digest of data.
func Hash(data []byte) [Size]byte {
	return blake3.Sum256(data)
}

// KeyedHash computes a BLAKE3 MAC over data under a 32-byte key.
func KeyedHash(key [Size]byte, data []byte) [Size]byte {
	h, err := blake3.NewKeyed(key[:])
	if err != nil {
		// key is always exactly 32 bytes here, so NewKeyed cannot fail.
		panic("hash: NewKeyed rejected a 32-byte key: " + err.Error())
	}
	h.Write(data)
	var out [Size]byte
	copy(out[:], h.Sum(nil))
	return out
}

// DeriveKey runs BLAKE3 in key-derivation mode: context is the versioned
// domain-separation tag, ikm is the input key material. Faster than HKDF for
// deriving from already-uniform secrets (KEM outputs, ratchet chain keys).
func DeriveKey(context string, ikm []byte) [Size]byte {
	var out [Size]byte
	blake3.DeriveKey(context, ikm, out[:])
	return out
}

// StreamHasher is a resumable BLAKE3 hasher for data that arrives in parts
// (e.g. a large file read in chunks). Update accumulates; Sum is idempotent
// and does not consume accumulated state, matching the one-shot Hash output
// for the same concatenated input.
type StreamHasher struct {
	h *blake3.Hasher
}

// NewStreamHasher returns an unkeyed streaming hasher.
func NewStreamHasher() *StreamHasher {
	return &StreamHasher{h: blake3.New()}
}

// NewKeyedStreamHasher returns a streaming hasher in MAC mode.
func NewKeyedStreamHasher(key [Size]byte) (*StreamHasher, error) {
	h, err := blake3.NewKeyed(key[:])
	if err != nil {
		return nil, err
	}
	return &StreamHasher{h: h}, nil
}

// Update feeds more data into the hasher.
func (s *StreamHasher) Update(data []byte) { s.h.Write(data) }

// Sum returns the current digest without resetting accumulated state.
func (s *StreamHasher) Sum() [Size]byte {
	var out [Size]byte
	copy(out[:], s.h.Sum(nil))
	return out
}
