package bitcoin

import (
	"crypto/sha1"
	"crypto/sha256"
	"hash"

	"golang.org/x/crypto/ripemd160"
)

// HashAlgorithm is the external crypto contract the VM's hashing opcodes are built against:
// an opaque {init, update, final, hash} handle. A caller may swap in a different
// implementation (e.g. a WASM-backed one) without the VM knowing the difference.
type HashAlgorithm interface {
	Init() hash.Hash
	Update(state hash.Hash, input []byte) hash.Hash
	Final(state hash.Hash) []byte
	Hash(input []byte) []byte
}

type stdHashAlgorithm struct {
	new func() hash.Hash
}

func (a stdHashAlgorithm) Init() hash.Hash {
	return a.new()
}

func (a stdHashAlgorithm) Update(state hash.Hash, input []byte) hash.Hash {
	state.Write(input)
	return state
}

func (a stdHashAlgorithm) Final(state hash.Hash) []byte {
	return state.Sum(nil)
}

func (a stdHashAlgorithm) Hash(input []byte) []byte {
	state := a.Init()
	state.Write(input)
	return state.Sum(nil)
}

// Sha1Algorithm, Sha256Algorithm, and Ripemd160Algorithm are the HashAlgorithm collaborators
// backing OP_SHA1, OP_SHA256, and OP_RIPEMD160.
var (
	Sha1Algorithm      HashAlgorithm = stdHashAlgorithm{new: sha1.New}
	Sha256Algorithm    HashAlgorithm = stdHashAlgorithm{new: sha256.New}
	Ripemd160Algorithm HashAlgorithm = stdHashAlgorithm{new: ripemd160.New}
)

// Sha1 returns the SHA-1 digest of the input.
func Sha1(b []byte) []byte {
	result := sha1.Sum(b)
	return result[:]
}

// Ripemd160 returns the RIPEMD (RIPE Message Digest) of the input.
//
// This is a wrapper for easy access to a chosen implementation.
//
// See https://en.wikipedia.org/wiki/RIPEMD
func Ripemd160(b []byte) []byte {
	hasher := ripemd160.New()
	hasher.Write(b)
	return hasher.Sum(nil)
}

// Sha256 returns the SHA256 (Secure Hash Algorithm) of the input.
//
// This is a wrapper for easy access to a chosen implementation.
//
// See https://en.wikipedia.org/wiki/SHA-2
func Sha256(b []byte) []byte {
	result := sha256.Sum256(b)
	return result[:]
}

// Hash160 returns the Ripemd160(SHA256(input)) of the input.
//
// This is a wrapper for easy access to a chosen implementation.
func Hash160(b []byte) []byte {
	return Ripemd160(Sha256(b))
}

// DoubleSha256 performs a double Sha256 hash on the bytes.
func DoubleSha256(b []byte) []byte {
	return Sha256(Sha256(b))
}
