package merkle

import (
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"hash"

	"golang.org/x/crypto/sha3"
)

// HashType identifies one of the supported digest algorithms. The zero
// value is not a valid HashType; use one of the HashSHA* constants.
type HashType uint8

// Supported hash functions. There is no provision for registering a
// caller-supplied algorithm.
const (
	HashSHA224 HashType = iota + 1
	HashSHA256
	HashSHA384
	HashSHA512
	HashSHA3_224
	HashSHA3_256
	HashSHA3_384
	HashSHA3_512
)

// String returns the canonical lowercase name used in JSON and error
// messages (e.g. "sha3_256").
func (t HashType) String() string {
	switch t {
	case HashSHA224:
		return "sha224"
	case HashSHA256:
		return "sha256"
	case HashSHA384:
		return "sha384"
	case HashSHA512:
		return "sha512"
	case HashSHA3_224:
		return "sha3_224"
	case HashSHA3_256:
		return "sha3_256"
	case HashSHA3_384:
		return "sha3_384"
	case HashSHA3_512:
		return "sha3_512"
	default:
		return "unknown"
	}
}

// ParseHashType maps a canonical name back to a HashType, for JSON interop.
func ParseHashType(name string) (HashType, error) {
	switch name {
	case "sha224":
		return HashSHA224, nil
	case "sha256":
		return HashSHA256, nil
	case "sha384":
		return HashSHA384, nil
	case "sha512":
		return HashSHA512, nil
	case "sha3_224":
		return HashSHA3_224, nil
	case "sha3_256":
		return HashSHA3_256, nil
	case "sha3_384":
		return HashSHA3_384, nil
	case "sha3_512":
		return HashSHA3_512, nil
	default:
		return 0, fmt.Errorf("%w: unknown hash type %q", ErrInvalidType, name)
	}
}

func (t HashType) newHasher() (hash.Hash, error) {
	switch t {
	case HashSHA224:
		return sha256.New224(), nil
	case HashSHA256:
		return sha256.New(), nil
	case HashSHA384:
		return sha512.New384(), nil
	case HashSHA512:
		return sha512.New(), nil
	case HashSHA3_224:
		return sha3.New224(), nil
	case HashSHA3_256:
		return sha3.New256(), nil
	case HashSHA3_384:
		return sha3.New384(), nil
	case HashSHA3_512:
		return sha3.New512(), nil
	default:
		return nil, fmt.Errorf("%w: unknown hash type %d", ErrInvalidType, t)
	}
}

// Domain-separation tags mirroring common Merkle-security practice: 0x00
// marks leaf-input contexts, 0x01 marks internal-node-input contexts.
const (
	leafPrefixTag     = byte(0x00)
	internalPrefixTag = byte(0x01)
)

// hasher wraps a configured HashType with the leaf/internal domain
// separation policy. It is stateless and safe for concurrent reuse across
// goroutines: every call constructs a fresh hash.Hash.
//
// Every digest this produces is stored and passed around as hex text,
// re-encoded under the tree's configured Encoding (not the hash
// function's raw output), mirroring pymerkle's nodes.
type hasher struct {
	typ      HashType
	security bool
	enc      Encoding
}

func newHasher(typ HashType, security bool, enc Encoding) hasher {
	return hasher{typ: typ, security: security, enc: enc}
}

func (h hasher) sum(parts ...[]byte) []byte {
	hh, err := h.typ.newHasher()
	if err != nil {
		// Unreachable: HashType is validated at construction time.
		panic(err)
	}
	for _, p := range parts {
		hh.Write(p)
	}
	raw := hh.Sum(nil)

	out, err := h.enc.encode(hex.EncodeToString(raw))
	if err != nil {
		// Unreachable: hex digits are representable under every Encoding.
		panic(err)
	}
	return out
}

// leafDigest computes H(prefix_single || record) in security mode, or
// H(record) otherwise.
func (h hasher) leafDigest(record []byte) []byte {
	if h.security {
		return h.sum([]byte{leafPrefixTag}, record)
	}
	return h.sum(record)
}

// internalDigest computes H(prefix_left || left || prefix_right || right)
// in security mode, or H(left || right) otherwise.
func (h hasher) internalDigest(left, right []byte) []byte {
	if h.security {
		return h.sum([]byte{internalPrefixTag}, left, []byte{internalPrefixTag}, right)
	}
	return h.sum(left, right)
}

// emptyDigest is used only internally, by mth() and rightFold() on empty
// input; RootHash() itself raises ErrEmptyTree. It is H() with no prefix, the "hash of an empty string"
// convention from RFC 6962 §2.1.
func (h hasher) emptyDigest() []byte {
	return h.sum()
}

// rightFold combines digests right-associatively: the two rightmost first,
// then folding left.
func (h hasher) rightFold(digests [][]byte) []byte {
	n := len(digests)
	if n == 0 {
		return h.emptyDigest()
	}
	acc := digests[n-1]
	for i := n - 2; i >= 0; i-- {
		acc = h.internalDigest(digests[i], acc)
	}
	return acc
}
