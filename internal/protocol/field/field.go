package field

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/danmuck/ordcodec/internal/protocol/schema"
	"github.com/tchajed/marshal"
)

var (
	ErrTruncated     = errors.New("field: truncated data")
	ErrInvalidBool   = errors.New("field: invalid bool value")
	ErrInvalidUTF8   = errors.New("field: invalid utf-8 string")
	ErrValueTooLarge = errors.New("field: value too large for u32 length")
)

// Codec encodes and decodes one field type. Implementations are stateless.
type Codec[T any] interface {
	schema.Declarer
	// Name is the codec identifier used in diagnostics.
	Name() string
	Encode(w io.Writer, v T) error
	Decode(r io.Reader) (T, error)
}

// Primitive codecs.
var (
	U8     Codec[uint8]    = u8Codec{}
	U16    Codec[uint16]   = u16Codec{}
	U32    Codec[uint32]   = u32Codec{}
	U64    Codec[uint64]   = u64Codec{}
	I32    Codec[int32]    = i32Codec{}
	I64    Codec[int64]    = i64Codec{}
	Bool   Codec[bool]     = boolCodec{}
	String Codec[string]   = stringCodec{}
	Bytes  Codec[[]byte]   = bytesCodec{}
	Unit   Codec[struct{}] = unitCodec{}
)

type u8Codec struct{}

func (u8Codec) Name() string { return "u8" }
func (u8Codec) Declaration() schema.Declaration { return "u8" }
func (c u8Codec) DefineRecursively(reg schema.Registry) error {
	return schema.Add(reg, c.Declaration(), schema.Primitive{Size: 1})
}

func (u8Codec) Encode(w io.Writer, v uint8) error {
	return write(w, []byte{v})
}

func (u8Codec) Decode(r io.Reader) (uint8, error) {
	var b [1]byte
	if err := readFull(r, b[:]); err != nil {
		return 0, err
	}
	return b[0], nil
}

type u16Codec struct{}

func (u16Codec) Name() string { return "u16" }
func (u16Codec) Declaration() schema.Declaration { return "u16" }
func (c u16Codec) DefineRecursively(reg schema.Registry) error {
	return schema.Add(reg, c.Declaration(), schema.Primitive{Size: 2})
}

func (u16Codec) Encode(w io.Writer, v uint16) error {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	return write(w, b[:])
}

func (u16Codec) Decode(r io.Reader) (uint16, error) {
	var b [2]byte
	if err := readFull(r, b[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b[:]), nil
}

type u32Codec struct{}

func (u32Codec) Name() string { return "u32" }
func (u32Codec) Declaration() schema.Declaration { return "u32" }
func (c u32Codec) DefineRecursively(reg schema.Registry) error {
	return schema.Add(reg, c.Declaration(), schema.Primitive{Size: 4})
}

func (u32Codec) Encode(w io.Writer, v uint32) error {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	return write(w, b[:])
}

func (u32Codec) Decode(r io.Reader) (uint32, error) {
	var b [4]byte
	if err := readFull(r, b[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b[:]), nil
}

type i32Codec struct{}

func (i32Codec) Name() string { return "i32" }
func (i32Codec) Declaration() schema.Declaration { return "i32" }
func (c i32Codec) DefineRecursively(reg schema.Registry) error {
	return schema.Add(reg, c.Declaration(), schema.Primitive{Size: 4})
}

func (i32Codec) Encode(w io.Writer, v int32) error {
	return u32Codec{}.Encode(w, uint32(v))
}

func (i32Codec) Decode(r io.Reader) (int32, error) {
	v, err := u32Codec{}.Decode(r)
	return int32(v), err
}

// 64-bit words go through marshal, which is little-endian like the rest
// of the wire format.
type u64Codec struct{}

func (u64Codec) Name() string { return "u64" }
func (u64Codec) Declaration() schema.Declaration { return "u64" }
func (c u64Codec) DefineRecursively(reg schema.Registry) error {
	return schema.Add(reg, c.Declaration(), schema.Primitive{Size: 8})
}

func (u64Codec) Encode(w io.Writer, v uint64) error {
	enc := make([]byte, 0, 8)
	enc = marshal.WriteInt(enc, v)
	return write(w, enc)
}

func (u64Codec) Decode(r io.Reader) (uint64, error) {
	buf := make([]byte, 8)
	if err := readFull(r, buf); err != nil {
		return 0, err
	}
	v, _ := marshal.ReadInt(buf)
	return v, nil
}

type i64Codec struct{}

func (i64Codec) Name() string { return "i64" }
func (i64Codec) Declaration() schema.Declaration { return "i64" }
func (c i64Codec) DefineRecursively(reg schema.Registry) error {
	return schema.Add(reg, c.Declaration(), schema.Primitive{Size: 8})
}

func (i64Codec) Encode(w io.Writer, v int64) error {
	return u64Codec{}.Encode(w, uint64(v))
}

func (i64Codec) Decode(r io.Reader) (int64, error) {
	v, err := u64Codec{}.Decode(r)
	return int64(v), err
}

type boolCodec struct{}

func (boolCodec) Name() string { return "bool" }
func (boolCodec) Declaration() schema.Declaration { return "bool" }
func (c boolCodec) DefineRecursively(reg schema.Registry) error {
	return schema.Add(reg, c.Declaration(), schema.Primitive{Size: 1})
}

func (boolCodec) Encode(w io.Writer, v bool) error {
	b := byte(0)
	if v {
		b = 1
	}
	return write(w, []byte{b})
}

func (boolCodec) Decode(r io.Reader) (bool, error) {
	b, err := u8Codec{}.Decode(r)
	if err != nil {
		return false, err
	}
	switch b {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, fmt.Errorf("%w: 0x%02x", ErrInvalidBool, b)
	}
}

type bytesCodec struct{}

func (bytesCodec) Name() string { return "bytes" }
func (bytesCodec) Declaration() schema.Declaration { return "Vec<u8>" }
func (c bytesCodec) DefineRecursively(reg schema.Registry) error {
	if err := schema.Add(reg, c.Declaration(), schema.Sequence{
		LengthWidth: schema.DefaultLengthWidth,
		LengthRange: schema.DefaultLengthRange,
		Elements:    U8.Declaration(),
	}); err != nil {
		return err
	}
	return U8.DefineRecursively(reg)
}

func (bytesCodec) Encode(w io.Writer, v []byte) error {
	return writeLenPrefixed(w, v)
}

func (bytesCodec) Decode(r io.Reader) ([]byte, error) {
	return readLenPrefixed(r)
}

type stringCodec struct{}

func (stringCodec) Name() string { return "string" }
func (stringCodec) Declaration() schema.Declaration { return "String" }
func (c stringCodec) DefineRecursively(reg schema.Registry) error {
	if err := schema.Add(reg, c.Declaration(), schema.Sequence{
		LengthWidth: schema.DefaultLengthWidth,
		LengthRange: schema.DefaultLengthRange,
		Elements:    U8.Declaration(),
	}); err != nil {
		return err
	}
	return U8.DefineRecursively(reg)
}

func (stringCodec) Encode(w io.Writer, v string) error {
	return writeLenPrefixed(w, []byte(v))
}

func (stringCodec) Decode(r io.Reader) (string, error) {
	raw, err := readLenPrefixed(r)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(raw) {
		return "", ErrInvalidUTF8
	}
	return string(raw), nil
}

// unitCodec carries no bytes. Its Go type has zero size.
type unitCodec struct{}

func (unitCodec) Name() string { return "unit" }
func (unitCodec) Declaration() schema.Declaration { return "()" }
func (c unitCodec) DefineRecursively(reg schema.Registry) error {
	return schema.Add(reg, c.Declaration(), schema.Primitive{Size: 0})
}

func (unitCodec) Encode(io.Writer, struct{}) error { return nil }
func (unitCodec) Decode(io.Reader) (struct{}, error) { return struct{}{}, nil }

func writeLenPrefixed(w io.Writer, v []byte) error {
	if uint64(len(v)) > uint64(^uint32(0)) {
		return ErrValueTooLarge
	}
	if err := U32.Encode(w, uint32(len(v))); err != nil {
		return err
	}
	if len(v) == 0 {
		return nil
	}
	return write(w, v)
}

func readLenPrefixed(r io.Reader) ([]byte, error) {
	n, err := U32.Decode(r)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return []byte{}, nil
	}
	// Grow in bounded steps so a hostile length cannot force one huge allocation.
	const chunk = 64 * 1024
	remaining := uint64(n)
	out := make([]byte, 0, min(remaining, chunk))
	for remaining > 0 {
		step := min(remaining, chunk)
		start := len(out)
		out = append(out, make([]byte, step)...)
		if err := readFull(r, out[start:]); err != nil {
			return nil, err
		}
		remaining -= step
	}
	return out, nil
}

func write(w io.Writer, b []byte) error {
	_, err := w.Write(b)
	return err
}

func readFull(r io.Reader, b []byte) error {
	if _, err := io.ReadFull(r, b); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: %w", ErrTruncated, err)
		}
		return err
	}
	return nil
}
