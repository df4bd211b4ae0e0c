package pake

import tallowcrypto "tallow/internal/crypto"

// Opaque is a non-functional stub reserving the OPAQUE surface for a later
// release. Every method returns Unsupported; nothing here derives or
// transmits key material.
type Opaque struct{}

// NewOpaque returns a stub OPAQUE party. It never fails at construction
// time; failure is deferred to the first call that would need real crypto.
func NewOpaque() *Opaque { return &Opaque{} }

// Register is unimplemented.
func (o *Opaque) Register(password []byte) error {
	return tallowcrypto.New(tallowcrypto.Unsupported, "OPAQUE registration is not implemented in this build", nil)
}

// Finish is unimplemented.
func (o *Opaque) Finish(message []byte) ([32]byte, error) {
	return [32]byte{}, tallowcrypto.New(tallowcrypto.Unsupported, "OPAQUE exchange is not implemented in this build", nil)
}
