package sig

import (
	"encoding/binary"

	tallowcrypto "tallow/internal/crypto"
	"tallow/internal/crypto/hash"
	"tallow/internal/crypto/mem"
)

// ChunkSignature binds a file chunk's index and content hash together with
// an Ed25519 signature, so a receiver can verify each chunk independently
// as it arrives rather than buffering the whole file first.
type ChunkSignature struct {
	Index     uint64
	ChunkHash [hash.Size]byte
	Signature [Ed25519SignatureSize]byte
}

// SignChunk signs chunkData at chunkIndex with signer.
func SignChunk(signer *Ed25519Signer, chunkData []byte, chunkIndex uint64) ChunkSignature {
	chunkHash := hash.Hash(chunkData)
	message := chunkSignMessage(chunkIndex, chunkHash)

	return ChunkSignature{
		Index:     chunkIndex,
		ChunkHash: chunkHash,
		Signature: signer.Sign(message),
	}
}

// VerifyChunk checks that chunkData matches sig.ChunkHash and that sig's
// Ed25519 signature over (index, chunk hash) verifies under publicKey.
func VerifyChunk(publicKey [Ed25519PublicKeySize]byte, chunkData []byte, s ChunkSignature) error {
	actualHash := hash.Hash(chunkData)
	if !mem.ConstantTimeEqual(actualHash[:], s.ChunkHash[:]) {
		return tallowcrypto.NewHashMismatch("[redacted]", "[redacted]")
	}

	message := chunkSignMessage(s.Index, s.ChunkHash)
	return VerifyEd25519(publicKey, message, s.Signature)
}

func chunkSignMessage(index uint64, chunkHash [hash.Size]byte) []byte {
	message := make([]byte, 8+hash.Size)
	binary.LittleEndian.PutUint64(message[:8], index)
	copy(message[8:], chunkHash[:])
	return message
}

// FileManifest records every chunk signature for a file, letting a
// receiver verify the whole transfer chunk-by-chunk once it is complete.
type FileManifest struct {
	FileSize  uint64
	ChunkSize int
	Chunks    []ChunkSignature
	PublicKey [Ed25519PublicKeySize]byte
}

// VerifyAll checks fileData against every chunk signature in the manifest.
func (m *FileManifest) VerifyAll(fileData []byte) error {
	if uint64(len(fileData)) != m.FileSize {
		return tallowcrypto.New(tallowcrypto.Verification, "file size does not match manifest", nil)
	}

	for i, chunkSig := range m.Chunks {
		start := i * m.ChunkSize
		end := start + m.ChunkSize
		if end > len(fileData) {
			end = len(fileData)
		}
		if start > len(fileData) {
			return tallowcrypto.New(tallowcrypto.Verification, "manifest chunk count exceeds file data", nil)
		}

		if err := VerifyChunk(m.PublicKey, fileData[start:end], chunkSig); err != nil {
			return err
		}
	}
	return nil
}
