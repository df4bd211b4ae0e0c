package kem

// Algorithm is a negotiable KEM choice.
type Algorithm int

const (
	// Hybrid is the default: ML-KEM-1024 + X25519.
	Hybrid Algorithm = iota
	MlKem1024Only
	X25519Only
)

// Capabilities lists the KEM algorithms a peer supports, in preference
// order.
type Capabilities struct {
	Supported []Algorithm
}

// AllCapabilities supports every algorithm, preferring Hybrid.
func AllCapabilities() Capabilities {
	return Capabilities{Supported: []Algorithm{Hybrid, MlKem1024Only, X25519Only}}
}

// PQOnlyCapabilities supports only the pure post-quantum KEM.
func PQOnlyCapabilities() Capabilities {
	return Capabilities{Supported: []Algorithm{MlKem1024Only}}
}

// ClassicalOnlyCapabilities supports only classical X25519.
func ClassicalOnlyCapabilities() Capabilities {
	return Capabilities{Supported: []Algorithm{X25519Only}}
}

// Supports reports whether algorithm is in c's supported list.
func (c Capabilities) Supports(algorithm Algorithm) bool {
	for _, a := range c.Supported {
		if a == algorithm {
			return true
		}
	}
	return false
}

// Negotiate returns the first algorithm in ours' preference order that
// theirs also supports, or false if there is no overlap.
func Negotiate(ours, theirs Capabilities) (Algorithm, bool) {
	for _, a := range ours.Supported {
		if theirs.Supports(a) {
			return a, true
		}
	}
	return 0, false
}
