package filepipeline

import (
	"encoding/binary"

	tallowcrypto "tallow/internal/crypto"
	"tallow/internal/crypto/hash"
	"tallow/internal/crypto/mem"
	"tallow/internal/crypto/symmetric"
)

// EncryptedChunk is one AEAD-sealed, integrity-hashed segment of a file.
type EncryptedChunk struct {
	Index      uint64
	Ciphertext []byte
	Hash       [hash.Size]byte
}

// EncryptChunk derives a per-chunk key from fileKey and chunkIndex, seals
// plaintext under suite with a counter nonce built from chunkIndex, and
// hashes the resulting ciphertext for the receiver to check before
// decryption.
func EncryptChunk(suite symmetric.CipherSuite, fileKey [32]byte, chunkIndex uint64, plaintext []byte) (EncryptedChunk, error) {
	chunkKey := deriveChunkKey(fileKey, chunkIndex)
	defer mem.Wipe(chunkKey[:])

	nonce := chunkNonce(chunkIndex)
	aad := chunkIndexBytes(chunkIndex)

	ct, err := sealWithSuite(suite, chunkKey, nonce, plaintext, aad)
	if err != nil {
		return EncryptedChunk{}, err
	}

	return EncryptedChunk{
		Index:      chunkIndex,
		Ciphertext: ct,
		Hash:       hash.Hash(ct),
	}, nil
}

// DecryptChunk re-derives the chunk's key and nonce, verifies the stored
// integrity hash against the ciphertext in constant time (HashMismatch on
// tamper), and AEAD-opens it (Decryption on tag failure).
func DecryptChunk(suite symmetric.CipherSuite, fileKey [32]byte, chunk EncryptedChunk) ([]byte, error) {
	actualHash := hash.Hash(chunk.Ciphertext)
	if !mem.ConstantTimeEqual(actualHash[:], chunk.Hash[:]) {
		return nil, tallowcrypto.NewHashMismatch("[redacted]", "[redacted]")
	}

	chunkKey := deriveChunkKey(fileKey, chunk.Index)
	defer mem.Wipe(chunkKey[:])

	nonce := chunkNonce(chunk.Index)
	aad := chunkIndexBytes(chunk.Index)

	return openWithSuite(suite, chunkKey, nonce, chunk.Ciphertext, aad)
}

func deriveChunkKey(fileKey [32]byte, chunkIndex uint64) [32]byte {
	ikm := make([]byte, 0, 32+8)
	ikm = append(ikm, fileKey[:]...)
	ikm = append(ikm, chunkIndexBytes(chunkIndex)...)
	defer mem.Wipe(ikm)
	return hash.DeriveKey(hash.DomainChunk, ikm)
}

func chunkNonce(chunkIndex uint64) [symmetric.NonceSize]byte {
	var nonce [symmetric.NonceSize]byte
	binary.LittleEndian.PutUint64(nonce[:8], chunkIndex)
	return nonce
}

func chunkIndexBytes(chunkIndex uint64) []byte {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, chunkIndex)
	return buf
}

func sealWithSuite(suite symmetric.CipherSuite, key [32]byte, nonce [symmetric.NonceSize]byte, plaintext, aad []byte) ([]byte, error) {
	switch suite {
	case symmetric.Aes256Gcm:
		return symmetric.EncryptAESGCM(&key, &nonce, plaintext, aad)
	case symmetric.ChaCha20Poly1305:
		return symmetric.EncryptChaCha20Poly1305(&key, &nonce, plaintext, aad)
	case symmetric.Aegis256:
		return symmetric.EncryptAEGIS256(&key, &nonce, plaintext, aad)
	default:
		return nil, tallowcrypto.New(tallowcrypto.Unsupported, "unknown cipher suite", nil)
	}
}

func openWithSuite(suite symmetric.CipherSuite, key [32]byte, nonce [symmetric.NonceSize]byte, ciphertext, aad []byte) ([]byte, error) {
	switch suite {
	case symmetric.Aes256Gcm:
		return symmetric.DecryptAESGCM(&key, &nonce, ciphertext, aad)
	case symmetric.ChaCha20Poly1305:
		return symmetric.DecryptChaCha20Poly1305(&key, &nonce, ciphertext, aad)
	case symmetric.Aegis256:
		return symmetric.DecryptAEGIS256(&key, &nonce, ciphertext, aad)
	default:
		return nil, tallowcrypto.New(tallowcrypto.Unsupported, "unknown cipher suite", nil)
	}
}
