package mem

import "runtime"

// SecureBuf wraps a byte slice that must be wiped on every exit path. Go has
// no destructors, so callers should call Close (typically via defer)
// immediately after construction; Close is idempotent. A finalizer backstops
// callers that drop the buffer without closing it (including panic unwinds
// that never reach a defer): the wipe then happens at collection time rather
// than never.
type SecureBuf struct {
	data []byte
}

// NewSecureBuf takes ownership of data; the caller must not retain other
// references to it.
func NewSecureBuf(data []byte) *SecureBuf {
	s := &SecureBuf{data: data}
	runtime.SetFinalizer(s, (*SecureBuf).Close)
	return s
}

// Expose returns the wrapped bytes. Callers must not retain the returned
// slice past the buffer's Close.
func (s *SecureBuf) Expose() []byte { return s.data }

// Len reports the buffer length.
func (s *SecureBuf) Len() int { return len(s.data) }

// Close wipes the buffer. Safe to call more than once.
func (s *SecureBuf) Close() {
	if s.data == nil {
		return
	}
	Wipe(s.data)
	s.data = nil
	runtime.SetFinalizer(s, nil)
}
