package field

import (
	"fmt"
	"io"
	"reflect"

	"github.com/danmuck/ordcodec/internal/protocol/schema"
	"github.com/fxamacker/cbor/v2"
)

// encMode uses Core Deterministic Encoding (RFC 8949 §4.2) so equal values
// always produce equal bytes.
var encMode cbor.EncMode

var decMode cbor.DecMode

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("field: CBOR encoder initialization failed: " + err.Error())
	}
	decMode, err = cbor.DecOptions{}.DecMode()
	if err != nil {
		panic("field: CBOR decoder initialization failed: " + err.Error())
	}
}

type cborCodec[T any] struct{}

// CBOR returns a codec for arbitrary structured values. Each value is a u32
// length followed by its deterministic CBOR encoding.
func CBOR[T any]() Codec[T] {
	return cborCodec[T]{}
}

func (cborCodec[T]) Name() string { return "cbor" }

func (cborCodec[T]) Declaration() schema.Declaration {
	return "Cbor<" + reflect.TypeFor[T]().String() + ">"
}

func (c cborCodec[T]) DefineRecursively(reg schema.Registry) error {
	if err := schema.Add(reg, c.Declaration(), schema.Sequence{
		LengthWidth: schema.DefaultLengthWidth,
		LengthRange: schema.DefaultLengthRange,
		Elements:    U8.Declaration(),
	}); err != nil {
		return err
	}
	return U8.DefineRecursively(reg)
}

func (cborCodec[T]) Encode(w io.Writer, v T) error {
	data, err := encMode.Marshal(v)
	if err != nil {
		return fmt.Errorf("field: cbor encode: %w", err)
	}
	return writeLenPrefixed(w, data)
}

func (cborCodec[T]) Decode(r io.Reader) (T, error) {
	var v T
	data, err := readLenPrefixed(r)
	if err != nil {
		return v, err
	}
	if err := decMode.Unmarshal(data, &v); err != nil {
		return v, fmt.Errorf("field: cbor decode: %w", err)
	}
	return v, nil
}
