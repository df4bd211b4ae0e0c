package symmetric

import "golang.org/x/sys/cpu"

// DetectAESNI reports whether the running CPU has hardware AES
// acceleration, used to prefer AES-256-GCM only where it is actually fast.
func DetectAESNI() bool {
	return cpu.X86.HasAES
}

// SelectCipher picks the best default cipher suite for this machine:
// AES-256-GCM when AES-NI is present, ChaCha20-Poly1305 otherwise (which is
// constant-time in software without hardware support).
func SelectCipher() CipherSuite {
	if DetectAESNI() {
		return Aes256Gcm
	}
	return ChaCha20Poly1305
}

// Negotiate returns the first suite in ourSuites (preference order) that
// also appears in theirSuites, or false if there is no overlap.
func Negotiate(ourSuites, theirSuites []CipherSuite) (CipherSuite, bool) {
	theirs := make(map[CipherSuite]bool, len(theirSuites))
	for _, s := range theirSuites {
		theirs[s] = true
	}
	for _, s := range ourSuites {
		if theirs[s] {
			return s, true
		}
	}
	return 0, false
}

// DefaultSuites returns this host's supported suites in preference order.
// AEGIS-256 is never included: see aegis.go.
func DefaultSuites() []CipherSuite {
	if DetectAESNI() {
		return []CipherSuite{Aes256Gcm, ChaCha20Poly1305}
	}
	return []CipherSuite{ChaCha20Poly1305, Aes256Gcm}
}
