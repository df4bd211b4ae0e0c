package filepipeline

import (
	"encoding/binary"

	tallowcrypto "tallow/internal/crypto"
	"tallow/internal/crypto/hash"
)

// Marshal serializes the chunk into its wire form: 64-bit big-endian
// index, length-prefixed ciphertext, 32-byte hash. Transport carries this
// blob verbatim.
func (c *EncryptedChunk) Marshal() []byte {
	out := make([]byte, 0, 8+4+len(c.Ciphertext)+hash.Size)
	out = binary.BigEndian.AppendUint64(out, c.Index)
	out = binary.BigEndian.AppendUint32(out, uint32(len(c.Ciphertext)))
	out = append(out, c.Ciphertext...)
	out = append(out, c.Hash[:]...)
	return out
}

// UnmarshalChunk parses a serialized chunk. Integrity is checked later by
// DecryptChunk, not here.
func UnmarshalChunk(b []byte) (EncryptedChunk, error) {
	if len(b) < 8+4 {
		return EncryptedChunk{}, tallowcrypto.New(tallowcrypto.Serialization, "truncated encrypted chunk", nil)
	}
	index := binary.BigEndian.Uint64(b[:8])
	ctLen := int(binary.BigEndian.Uint32(b[8:12]))
	if len(b) != 8+4+ctLen+hash.Size {
		return EncryptedChunk{}, tallowcrypto.New(tallowcrypto.Serialization, "malformed encrypted chunk", nil)
	}

	chunk := EncryptedChunk{
		Index:      index,
		Ciphertext: append([]byte(nil), b[12:12+ctLen]...),
	}
	copy(chunk.Hash[:], b[12+ctLen:])
	return chunk, nil
}
