package protocol

import (
	"encoding/hex"

	"github.com/zeebo/blake3"
)

// Digest is the BLAKE3-256 hash of an encoding. It is only content-stable
// under a canonical strategy.
type Digest [32]byte

func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// Digest hashes the encoding of m without buffering it.
func (c *MapCodec[K, V]) Digest(m MapSource[K, V]) (Digest, error) {
	hasher := blake3.New()
	if err := c.Encode(hasher, m); err != nil {
		return Digest{}, err
	}
	return sum(hasher), nil
}

func (c *SetCodec[T]) Digest(s SetSource[T]) (Digest, error) {
	hasher := blake3.New()
	if err := c.Encode(hasher, s); err != nil {
		return Digest{}, err
	}
	return sum(hasher), nil
}

func sum(hasher *blake3.Hasher) Digest {
	var d Digest
	copy(d[:], hasher.Sum(nil))
	return d
}
