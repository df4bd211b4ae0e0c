// Package session derives the root secret that seeds a ratchet
// conversation: the PAKE-derived secret from internal/crypto/pake and the
// hybrid-KEM shared secret from internal/crypto/kem, mixed under a single
// domain-separated tag.
package session
