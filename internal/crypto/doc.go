// Package crypto roots the Tallow cryptographic core: hashing and domain
// separation (hash), key derivation (kdf), symmetric AEAD (symmetric), key
// encapsulation (kem), signatures (sig), key inventory (keys), password-
// authenticated key exchange (pake), the ratchet family (ratchet, via
// internal/protocol), and the file-chunk pipeline (filepipeline).
//
// This file itself holds only the shared fallible-operation type (Error,
// in errors.go): every subpackage depends on it so callers can pattern-
// match failures from any layer the same way.
package crypto
