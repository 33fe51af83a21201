package protocol

import (
	"bytes"
	"fmt"
	"io"
	"iter"
	"math"

	"github.com/danmuck/ordcodec/internal/protocol/field"
	"github.com/rs/zerolog/log"
)

// Encode writes m to w. A field error is returned unchanged and bytes
// already written are not retracted.
func (c *MapCodec[K, V]) Encode(w io.Writer, m MapSource[K, V]) error {
	if err := checkZeroSized[K](); err != nil {
		return err
	}
	n := m.Len()
	log.Debug().Str("strategy", c.strategy.Name()).Int("count", n).Msg("protocol.MapCodec.Encode")
	return encodeRecords(w, n, c.strategy.Arrange(m.All(), n), func(w io.Writer, k K, v V) error {
		if err := c.key.Encode(w, k); err != nil {
			return err
		}
		return c.value.Encode(w, v)
	})
}

// Marshal returns the encoding of m.
func (c *MapCodec[K, V]) Marshal(m MapSource[K, V]) ([]byte, error) {
	var buf bytes.Buffer
	if err := c.Encode(&buf, m); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Encode writes s to w.
func (c *SetCodec[T]) Encode(w io.Writer, s SetSource[T]) error {
	if err := checkZeroSized[T](); err != nil {
		return err
	}
	n := s.Len()
	log.Debug().Str("strategy", c.strategy.Name()).Int("count", n).Msg("protocol.SetCodec.Encode")
	return encodeRecords(w, n, c.strategy.Arrange(withUnit(s.All()), n), func(w io.Writer, v T, _ struct{}) error {
		return c.elem.Encode(w, v)
	})
}

func (c *SetCodec[T]) Marshal(s SetSource[T]) ([]byte, error) {
	var buf bytes.Buffer
	if err := c.Encode(&buf, s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeRecords[K, V any](w io.Writer, n int, entries iter.Seq2[K, V], write func(io.Writer, K, V) error) error {
	count, err := lengthPrefix(n)
	if err != nil {
		return err
	}
	if err := field.U32.Encode(w, count); err != nil {
		return err
	}
	var written uint64
	for k, v := range entries {
		if written == uint64(count) {
			return fmt.Errorf("%w: advertised %d", ErrCountMismatch, count)
		}
		if err := write(w, k, v); err != nil {
			return err
		}
		written++
	}
	if written != uint64(count) {
		return fmt.Errorf("%w: advertised %d, yielded %d", ErrCountMismatch, count, written)
	}
	return nil
}

func lengthPrefix(n int) (uint32, error) {
	if n < 0 || uint64(n) > math.MaxUint32 {
		log.Error().Int("count", n).Msg("protocol.lengthPrefix overflow")
		return 0, ErrCardinalityOverflow
	}
	return uint32(n), nil
}
