package hashcache

import "hash/fnv"

// Hasher accumulates descriptor fields into a 64-bit FNV-1a digest.
// The zero value is not usable; call NewHasher.
type Hasher struct {
	h uint64
}

const (
	fnvOffset = 14695981039346656037
	fnvPrime  = 1099511628211
)

// NewHasher returns a Hasher seeded with the FNV-1a offset basis.
func NewHasher() *Hasher {
	return &Hasher{h: fnvOffset}
}

func (h *Hasher) writeByte(b byte) {
	h.h ^= uint64(b)
	h.h *= fnvPrime
}

// WriteBytes mixes raw bytes into the digest.
func (h *Hasher) WriteBytes(p []byte) {
	for _, b := range p {
		h.writeByte(b)
	}
}

// WriteString mixes a string into the digest, followed by a
// terminator so adjacent strings cannot alias.
func (h *Hasher) WriteString(s string) {
	for i := 0; i < len(s); i++ {
		h.writeByte(s[i])
	}
	h.writeByte(0)
}

// WriteUint32 mixes a 32-bit value into the digest.
func (h *Hasher) WriteUint32(v uint32) {
	h.writeByte(byte(v))
	h.writeByte(byte(v >> 8))
	h.writeByte(byte(v >> 16))
	h.writeByte(byte(v >> 24))
}

// WriteUint64 mixes a 64-bit value into the digest.
func (h *Hasher) WriteUint64(v uint64) {
	h.WriteUint32(uint32(v))
	h.WriteUint32(uint32(v >> 32))
}

// WriteBool mixes a boolean into the digest.
func (h *Hasher) WriteBool(v bool) {
	if v {
		h.writeByte(1)
	} else {
		h.writeByte(0)
	}
}

// Sum returns the current digest.
func (h *Hasher) Sum() uint64 { return h.h }

// HashString computes the FNV-1a hash of a string key.
func HashString(s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s)) // fnv.Write never returns an error
	return h.Sum64()
}

// HashUint64 is the identity hash for keys that are already digests.
func HashUint64(u uint64) uint64 { return u }
