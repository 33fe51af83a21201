package protocol

import (
	"bytes"
	"fmt"
	"io"

	"github.com/danmuck/ordcodec/internal/ordered"
	"github.com/danmuck/ordcodec/internal/protocol/field"
	"github.com/rs/zerolog/log"
)

// Decode reads one map from r, inserting entries in stream order. A later
// duplicate key overwrites the earlier value in place.
func (c *MapCodec[K, V]) Decode(r io.Reader) (*ordered.Map[K, V], error) {
	if err := checkZeroSized[K](); err != nil {
		return nil, err
	}
	count, err := readCount(r, c.limits)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return ordered.NewMap[K, V](0), nil
	}
	m := ordered.NewMap[K, V](c.limits.capacityHint(count))
	for i := uint32(0); i < count; i++ {
		k, err := c.key.Decode(r)
		if err != nil {
			return nil, err
		}
		v, err := c.value.Decode(r)
		if err != nil {
			return nil, err
		}
		m.Set(k, v)
	}
	log.Debug().Uint32("count", count).Int("len", m.Len()).Msg("protocol.MapCodec.Decode")
	return m, nil
}

// Unmarshal decodes b, which must hold exactly one map.
func (c *MapCodec[K, V]) Unmarshal(b []byte) (*ordered.Map[K, V], error) {
	r := bytes.NewReader(b)
	m, err := c.Decode(r)
	if err != nil {
		return nil, err
	}
	if r.Len() != 0 {
		return nil, fmt.Errorf("%w: %d", ErrTrailingBytes, r.Len())
	}
	return m, nil
}

// Decode reads one set from r.
func (c *SetCodec[T]) Decode(r io.Reader) (*ordered.Set[T], error) {
	if err := checkZeroSized[T](); err != nil {
		return nil, err
	}
	count, err := readCount(r, c.limits)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return ordered.NewSet[T](0), nil
	}
	s := ordered.NewSet[T](c.limits.capacityHint(count))
	for i := uint32(0); i < count; i++ {
		v, err := c.elem.Decode(r)
		if err != nil {
			return nil, err
		}
		s.Insert(v)
	}
	log.Debug().Uint32("count", count).Int("len", s.Len()).Msg("protocol.SetCodec.Decode")
	return s, nil
}

func (c *SetCodec[T]) Unmarshal(b []byte) (*ordered.Set[T], error) {
	r := bytes.NewReader(b)
	s, err := c.Decode(r)
	if err != nil {
		return nil, err
	}
	if r.Len() != 0 {
		return nil, fmt.Errorf("%w: %d", ErrTrailingBytes, r.Len())
	}
	return s, nil
}

func readCount(r io.Reader, limits Limits) (uint32, error) {
	count, err := field.U32.Decode(r)
	if err != nil {
		return 0, err
	}
	if limits.MaxEntries != 0 && count > limits.MaxEntries {
		log.Error().Uint32("count", count).Uint32("max", limits.MaxEntries).Msg("protocol.readCount over limit")
		return 0, fmt.Errorf("%w: %d > %d", ErrTooManyEntries, count, limits.MaxEntries)
	}
	return count, nil
}
