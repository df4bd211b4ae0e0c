package kdf

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/argon2"

	tallowcrypto "tallow/internal/crypto"
	"tallow/internal/crypto/mem"
)

// Production Argon2id parameters (OWASP recommendation): 256 MiB memory,
// 3 iterations, 4 parallel lanes.
const (
	prodMemoryKiB  = 262_144
	prodIterations = 3
	prodLanes      = 4
)

// TestParams are reduced Argon2id parameters for use in tests, where the
// production cost would make the suite too slow to run routinely.
var TestParams = Params{MemoryKiB: 16_384, Iterations: 1, Lanes: 1}

// ProdParams are the production Argon2id cost parameters.
var ProdParams = Params{MemoryKiB: prodMemoryKiB, Iterations: prodIterations, Lanes: prodLanes}

// Params is an Argon2id cost parameter set.
type Params struct {
	MemoryKiB  uint32
	Iterations uint32
	Lanes      uint8
}

const saltLen = 16

// HashPassword produces a PHC-encoded Argon2id hash of password using
// ProdParams and a freshly generated random salt.
func HashPassword(password []byte) (string, error) {
	return HashPasswordWithParams(password, ProdParams)
}

// HashPasswordWithParams is HashPassword with caller-chosen cost
// parameters, exposed so tests can substitute TestParams.
func HashPasswordWithParams(password []byte, p Params) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", tallowcrypto.New(tallowcrypto.KeyGeneration, "failed to generate Argon2 salt", err)
	}
	hashLen := uint32(32)
	digest := argon2.IDKey(password, salt, p.Iterations, p.MemoryKiB, p.Lanes, hashLen)
	return encodePHC(p, salt, digest), nil
}

// VerifyPassword checks password against a PHC-encoded Argon2id hash
// produced by HashPassword, using the parameters embedded in the string.
func VerifyPassword(password []byte, encoded string) (bool, error) {
	p, salt, digest, err := decodePHC(encoded)
	if err != nil {
		return false, err
	}
	candidate := argon2.IDKey(password, salt, p.Iterations, p.MemoryKiB, p.Lanes, uint32(len(digest)))
	return mem.ConstantTimeEqual(candidate, digest), nil
}

// DeriveKey derives outputLen bytes from password and a 16-byte salt using
// ProdParams. Used for keyring encryption keys, not for password storage.
func DeriveKey(password, salt []byte, outputLen int) ([]byte, error) {
	return deriveKeyWithParams(password, salt, outputLen, ProdParams)
}

// DeriveKeyWithParams is DeriveKey with caller-chosen cost parameters,
// exposed so tests can substitute TestParams.
func DeriveKeyWithParams(password, salt []byte, outputLen int, p Params) ([]byte, error) {
	return deriveKeyWithParams(password, salt, outputLen, p)
}

func deriveKeyWithParams(password, salt []byte, outputLen int, p Params) ([]byte, error) {
	if len(salt) != saltLen {
		return nil, tallowcrypto.New(tallowcrypto.InvalidKey, fmt.Sprintf("argon2 salt must be %d bytes", saltLen), nil)
	}
	return argon2.IDKey(password, salt, p.Iterations, p.MemoryKiB, p.Lanes, uint32(outputLen)), nil
}

func encodePHC(p Params, salt, digest []byte) string {
	return fmt.Sprintf(
		"$argon2id$v=19$m=%d,t=%d,p=%d$%s$%s",
		p.MemoryKiB, p.Iterations, p.Lanes,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(digest),
	)
}

func decodePHC(encoded string) (Params, []byte, []byte, error) {
	parts := strings.Split(encoded, "$")
	// ["", "argon2id", "v=19", "m=...,t=...,p=...", salt, digest]
	if len(parts) != 6 || parts[1] != "argon2id" {
		return Params{}, nil, nil, tallowcrypto.New(tallowcrypto.InvalidKey, "malformed Argon2id PHC string", nil)
	}

	var p Params
	for _, field := range strings.Split(parts[3], ",") {
		kv := strings.SplitN(field, "=", 2)
		if len(kv) != 2 {
			return Params{}, nil, nil, tallowcrypto.New(tallowcrypto.InvalidKey, "malformed Argon2id PHC parameters", nil)
		}
		n, err := strconv.ParseUint(kv[1], 10, 32)
		if err != nil {
			return Params{}, nil, nil, tallowcrypto.New(tallowcrypto.InvalidKey, "malformed Argon2id PHC parameter value", err)
		}
		switch kv[0] {
		case "m":
			p.MemoryKiB = uint32(n)
		case "t":
			p.Iterations = uint32(n)
		case "p":
			p.Lanes = uint8(n)
		}
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return Params{}, nil, nil, tallowcrypto.New(tallowcrypto.InvalidKey, "malformed Argon2id PHC salt", err)
	}
	digest, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return Params{}, nil, nil, tallowcrypto.New(tallowcrypto.InvalidKey, "malformed Argon2id PHC digest", err)
	}
	return p, salt, digest, nil
}
