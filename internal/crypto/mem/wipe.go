// Package mem provides constant-time comparison, scoped zeroization, and
// the one process-wide effect this tree is allowed (core-dump suppression).
package mem

import (
	"crypto/subtle"
	"runtime"

	"golang.org/x/sys/unix"

	tallowcrypto "tallow/internal/crypto"
)

// Wipe overwrites b with zeros. It is best-effort: the Go runtime may have
// already copied b's contents elsewhere (stack growth, GC), so Wipe reduces
// the lifetime of a secret in memory rather than guaranteeing its absence.
func Wipe(b []byte) {
	if len(b) == 0 {
		return
	}
	for i := range b {
		b[i] = 0
	}
	runtime.KeepAlive(b)
}

// WipeString returns after attempting to destroy a string's backing bytes.
// Go strings are immutable, so this only works on strings built from a byte
// slice the caller still owns; it is provided for symmetry with Wipe and is
// a no-op when given a conventional string literal.
func WipeString(_ *string) {}

// ConstantTimeEqual compares two byte slices in constant time. It returns
// false immediately for mismatched lengths without reading past the shorter
// slice; only the match-or-not of equal-length inputs is timing-hardened.
func ConstantTimeEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare(a, b) == 1
}

// SuppressCoreDumps sets RLIMIT_CORE to zero for this process so sensitive
// material is never written to a core file. It is the only process-wide
// effect this tree has, and is opt-in at caller's init time.
func SuppressCoreDumps() error {
	if err := unix.Setrlimit(unix.RLIMIT_CORE, &unix.Rlimit{Cur: 0, Max: 0}); err != nil {
		return tallowcrypto.New(tallowcrypto.Io, "failed to set RLIMIT_CORE", err)
	}
	return nil
}
