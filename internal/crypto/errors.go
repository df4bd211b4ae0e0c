package crypto

import "fmt"

// Kind is the closed set of ways a cryptographic operation can fail.
type Kind int

const (
	// KeyGeneration covers RNG failure, invalid KDF parameters, or clock
	// failure while timestamping a key.
	KeyGeneration Kind = iota
	// Encryption covers AEAD encryption failures (rare; shape mismatches).
	Encryption
	// Decryption covers AEAD authentication failure or malformed ciphertext.
	Decryption
	// Signing covers signer-internal failures or malformed signing keys.
	Signing
	// Verification covers signature failure or malformed key/signature bytes.
	Verification
	// HashMismatch carries expected/actual digests for a tampered-data check.
	HashMismatch
	// InvalidKey covers wrong-length keys, small-subgroup points, and
	// malformed keyring bytes.
	InvalidKey
	// InvalidNonce covers wrong-length nonces.
	InvalidNonce
	// BufferTooSmall covers an output buffer shorter than required.
	BufferTooSmall
	// Unsupported covers a feature compiled or configured out (e.g. AEGIS).
	Unsupported
	// Serialization covers encode/decode failures for keys or bundles.
	Serialization
	// Io covers only optional init-time operations (core-dump suppression).
	Io
)

func (k Kind) String() string {
	switch k {
	case KeyGeneration:
		return "key generation"
	case Encryption:
		return "encryption"
	case Decryption:
		return "decryption"
	case Signing:
		return "signing"
	case Verification:
		return "verification"
	case HashMismatch:
		return "hash mismatch"
	case InvalidKey:
		return "invalid key"
	case InvalidNonce:
		return "invalid nonce"
	case BufferTooSmall:
		return "buffer too small"
	case Unsupported:
		return "unsupported"
	case Serialization:
		return "serialization"
	case Io:
		return "io"
	default:
		return "unknown"
	}
}

// Error is the single error type returned by every fallible operation in
// this tree. Callers pattern-match on Kind via errors.As/Is rather than
// string-comparing messages.
type Error struct {
	Kind Kind
	Msg  string

	// Needed/Actual are populated for BufferTooSmall.
	Needed, Actual int

	// Expected/Got are populated for HashMismatch. Production callers
	// should treat these as redactable; they never carry raw digests
	// outside of test builds that opt in.
	Expected, Got string

	Err error
}

func (e *Error) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error with the same Kind, so callers
// can write errors.Is(err, crypto.Err(crypto.Decryption)).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Msg == ""
}

// New constructs an *Error of the given kind wrapping an optional cause.
func New(kind Kind, msg string, cause error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: cause}
}

// Err returns a sentinel *Error of the given kind, suitable for use with
// errors.Is as a match target (its own Msg/Err fields are ignored by Is).
func Err(kind Kind) *Error { return &Error{Kind: kind} }

// NewBufferTooSmall reports a caller-supplied output buffer shorter than
// the operation needs.
func NewBufferTooSmall(needed, actual int) *Error {
	return &Error{
		Kind:   BufferTooSmall,
		Msg:    fmt.Sprintf("need %d bytes, got %d", needed, actual),
		Needed: needed,
		Actual: actual,
	}
}

// NewHashMismatch reports a tampered-data integrity check failure. Digests
// are passed through as caller-chosen redactable strings; production code
// should pass "[redacted]" rather than raw hex.
func NewHashMismatch(expected, got string) *Error {
	return &Error{
		Kind:     HashMismatch,
		Msg:      fmt.Sprintf("expected %s, got %s", expected, got),
		Expected: expected,
		Got:      got,
	}
}
