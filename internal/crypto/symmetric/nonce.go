package symmetric

import (
	"crypto/rand"
	"encoding/binary"

	tallowcrypto "tallow/internal/crypto"
	"tallow/internal/crypto/mem"
)

// Direction distinguishes the two halves of a bidirectional channel so
// that a sender's and receiver's nonce streams can share a seed without
// ever colliding.
type Direction int

const (
	DirectionSend Direction = iota
	DirectionReceive
)

// NonceGenerator produces a strictly increasing, collision-free stream of
// 12-byte AEAD nonces: an 8-byte big-endian counter followed by 4 seed
// bytes, the first of which is XORed with a direction bit. Two generators
// built from the same seed but opposite directions never produce the same
// nonce for the same counter value.
type NonceGenerator struct {
	counter   uint64
	seed      [32]byte
	direction Direction
}

// New creates a nonce generator with a fresh random 32-byte seed.
func New(direction Direction) (*NonceGenerator, error) {
	var seed [32]byte
	if _, err := rand.Read(seed[:]); err != nil {
		return nil, tallowcrypto.New(tallowcrypto.KeyGeneration, "failed to generate nonce seed", err)
	}
	return &NonceGenerator{seed: seed, direction: direction}, nil
}

// FromSeed creates a nonce generator from an explicit 32-byte seed, for
// deterministic testing or for resuming a persisted session.
func FromSeed(seed [32]byte, direction Direction) *NonceGenerator {
	return &NonceGenerator{seed: seed, direction: direction}
}

// NextNonce returns the next nonce in the stream and advances the counter.
func (g *NonceGenerator) NextNonce() [NonceSize]byte {
	var nonce [NonceSize]byte
	binary.BigEndian.PutUint64(nonce[:8], g.counter)

	var directionBit byte
	if g.direction == DirectionReceive {
		directionBit = 0x80
	}
	nonce[8] = g.seed[0] ^ directionBit
	nonce[9] = g.seed[1]
	nonce[10] = g.seed[2]
	nonce[11] = g.seed[3]

	g.counter++
	return nonce
}

// Counter returns the current counter value (the count of nonces already
// issued).
func (g *NonceGenerator) Counter() uint64 { return g.counter }

// SetCounter resumes the stream at a specific counter value. Callers must
// ensure this is strictly greater than any counter value already used with
// this seed, or nonces will repeat.
func (g *NonceGenerator) SetCounter(counter uint64) { g.counter = counter }

// Zeroize wipes the generator's seed so it cannot be recovered from process
// memory after the generator goes out of use.
func (g *NonceGenerator) Zeroize() {
	mem.Wipe(g.seed[:])
	g.counter = 0
}
