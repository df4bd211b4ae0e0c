// Package pake implements password-authenticated key exchange: a
// simplified CPace-style construction over X25519 that derives a strong
// session secret from a low-entropy code phrase, without ever putting the
// phrase itself on the wire.
//
// This is the simplified two-round X25519 construction, not the full
// draft-irtf-cfrg-cpace generator-derivation-from-hash-to-curve
// construction; see DESIGN.md for why that tradeoff was kept rather than
// upgraded (it would be a wire-incompatible protocol change).
package pake

import (
	tallowcrypto "tallow/internal/crypto"
	"tallow/internal/crypto/hash"
	"tallow/internal/crypto/kem"
)

// PublicMessageSize is the size of the single public message a CPace party
// sends: a raw X25519 point.
const PublicMessageSize = kem.X25519KeySize

// CPace holds one party's state across a single password-authenticated
// exchange: an ephemeral X25519 keypair and the shared code phrase. It is
// single-use — call Finish at most once, then discard it.
type CPace struct {
	ephemeral  *kem.X25519KeyPair
	codePhrase []byte
}

// New starts a CPace exchange over codePhrase, generating a fresh
// ephemeral X25519 keypair. codePhrase bytes are retained for Finish and
// should be wiped by the caller once the exchange completes.
func New(codePhrase []byte) (*CPace, error) {
	eph, err := kem.GenerateX25519()
	if err != nil {
		return nil, err
	}
	return &CPace{
		ephemeral:  eph,
		codePhrase: append([]byte(nil), codePhrase...),
	}, nil
}

// PublicMessage returns this party's 32-byte public contribution to send
// to the peer.
func (c *CPace) PublicMessage() [PublicMessageSize]byte {
	return c.ephemeral.PublicKey()
}

// Finish consumes the peer's public message and derives the shared
// session secret: BLAKE3(DH(ours, theirs) || code_phrase) under the PAKE
// domain tag. theirPublic must be exactly 32 bytes; the underlying X25519
// Diffie-Hellman rejects an all-zero (low-order-point) result.
func (c *CPace) Finish(theirPublic []byte) ([32]byte, error) {
	var zero [32]byte
	if len(theirPublic) != PublicMessageSize {
		return zero, tallowcrypto.New(tallowcrypto.InvalidKey, "CPace public message must be 32 bytes", nil)
	}

	var theirs [kem.X25519KeySize]byte
	copy(theirs[:], theirPublic)

	dh, err := c.ephemeral.DiffieHellman(theirs)
	if err != nil {
		return zero, err
	}
	defer func() { dh = kem.X25519SharedSecret{} }()

	mixed := make([]byte, 0, len(dh)+len(c.codePhrase))
	mixed = append(mixed, dh[:]...)
	mixed = append(mixed, c.codePhrase...)

	secret := hash.DeriveKey(hash.DomainPake, mixed)
	for i := range mixed {
		mixed[i] = 0
	}
	return secret, nil
}

// Zeroize wipes the ephemeral keypair's secret and the retained code
// phrase.
func (c *CPace) Zeroize() {
	c.ephemeral.Zeroize()
	for i := range c.codePhrase {
		c.codePhrase[i] = 0
	}
}
