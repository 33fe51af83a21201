package protocol

import (
	"cmp"
	"iter"

	"github.com/danmuck/ordcodec/internal/protocol/field"
	"github.com/danmuck/ordcodec/internal/protocol/schema"
)

// MapSource is the read side of an ordered map as the encoder sees it.
type MapSource[K comparable, V any] interface {
	Len() int
	All() iter.Seq2[K, V]
}

// SetSource is the read side of an ordered set as the encoder sees it.
type SetSource[T comparable] interface {
	Len() int
	All() iter.Seq[T]
}

// MapCodec encodes and decodes ordered maps. It holds no per-call state and
// may be shared across goroutines.
type MapCodec[K comparable, V any] struct {
	key      field.Codec[K]
	value    field.Codec[V]
	strategy Strategy[K, V]
	limits   Limits
}

// NewMapCodec writes entries in the map's own enumeration order.
func NewMapCodec[K comparable, V any](key field.Codec[K], value field.Codec[V], opts ...Option) *MapCodec[K, V] {
	return newMapCodec(key, value, IterationOrder[K, V](), opts)
}

// NewSortedMapCodec canonicalizes by the natural ordering of K.
func NewSortedMapCodec[K cmp.Ordered, V any](key field.Codec[K], value field.Codec[V], opts ...Option) *MapCodec[K, V] {
	return newMapCodec(key, value, NaturalOrder[K, V](), opts)
}

// NewCanonicalMapCodec canonicalizes by a caller-supplied total order.
func NewCanonicalMapCodec[K comparable, V any](
	key field.Codec[K],
	value field.Codec[V],
	compare func(a, b K) int,
	opts ...Option,
) *MapCodec[K, V] {
	return newMapCodec(key, value, CanonicalSort[K, V](compare), opts)
}

// NewOrderedMapCodec picks the strategy from a configured mode.
func NewOrderedMapCodec[K cmp.Ordered, V any](
	key field.Codec[K],
	value field.Codec[V],
	mode Mode,
	opts ...Option,
) (*MapCodec[K, V], error) {
	strategy, err := strategyFor[K, V](mode)
	if err != nil {
		return nil, err
	}
	return newMapCodec(key, value, strategy, opts), nil
}

func newMapCodec[K comparable, V any](key field.Codec[K], value field.Codec[V], strategy Strategy[K, V], opts []Option) *MapCodec[K, V] {
	o := buildOptions(opts)
	return &MapCodec[K, V]{key: key, value: value, strategy: strategy, limits: o.limits}
}

func (c *MapCodec[K, V]) Strategy() Strategy[K, V] { return c.strategy }

func (c *MapCodec[K, V]) Limits() Limits { return c.limits }

func (c *MapCodec[K, V]) Declaration() schema.Declaration {
	return "OrderedMap<" + c.key.Declaration() + ", " + c.value.Declaration() + ">"
}

// DefineRecursively registers the map as a u32-prefixed sequence of
// (K, V) tuples, then the tuple and both field types.
func (c *MapCodec[K, V]) DefineRecursively(reg schema.Registry) error {
	def := schema.Sequence{
		LengthWidth: schema.DefaultLengthWidth,
		LengthRange: schema.DefaultLengthRange,
		Elements:    schema.TupleDeclaration(c.key.Declaration(), c.value.Declaration()),
	}
	if err := schema.Add(reg, c.Declaration(), def); err != nil {
		return err
	}
	return schema.DefineTuple(reg, c.key, c.value)
}

// SetCodec encodes and decodes ordered sets.
type SetCodec[T comparable] struct {
	elem     field.Codec[T]
	strategy Strategy[T, struct{}]
	limits   Limits
}

// NewSetCodec writes elements in the set's own enumeration order.
func NewSetCodec[T comparable](elem field.Codec[T], opts ...Option) *SetCodec[T] {
	return newSetCodec(elem, IterationOrder[T, struct{}](), opts)
}

// NewSortedSetCodec canonicalizes by the natural ordering of T.
func NewSortedSetCodec[T cmp.Ordered](elem field.Codec[T], opts ...Option) *SetCodec[T] {
	return newSetCodec(elem, NaturalOrder[T, struct{}](), opts)
}

// NewCanonicalSetCodec canonicalizes by a caller-supplied total order.
func NewCanonicalSetCodec[T comparable](elem field.Codec[T], compare func(a, b T) int, opts ...Option) *SetCodec[T] {
	return newSetCodec(elem, CanonicalSort[T, struct{}](compare), opts)
}

// NewOrderedSetCodec picks the strategy from a configured mode.
func NewOrderedSetCodec[T cmp.Ordered](elem field.Codec[T], mode Mode, opts ...Option) (*SetCodec[T], error) {
	strategy, err := strategyFor[T, struct{}](mode)
	if err != nil {
		return nil, err
	}
	return newSetCodec(elem, strategy, opts), nil
}

func newSetCodec[T comparable](elem field.Codec[T], strategy Strategy[T, struct{}], opts []Option) *SetCodec[T] {
	o := buildOptions(opts)
	return &SetCodec[T]{elem: elem, strategy: strategy, limits: o.limits}
}

func (c *SetCodec[T]) Strategy() Strategy[T, struct{}] { return c.strategy }

func (c *SetCodec[T]) Limits() Limits { return c.limits }

func (c *SetCodec[T]) Declaration() schema.Declaration {
	return "OrderedSet<" + c.elem.Declaration() + ">"
}

func (c *SetCodec[T]) DefineRecursively(reg schema.Registry) error {
	def := schema.Sequence{
		LengthWidth: schema.DefaultLengthWidth,
		LengthRange: schema.DefaultLengthRange,
		Elements:    c.elem.Declaration(),
	}
	if err := schema.Add(reg, c.Declaration(), def); err != nil {
		return err
	}
	return c.elem.DefineRecursively(reg)
}

func withUnit[T any](seq iter.Seq[T]) iter.Seq2[T, struct{}] {
	return func(yield func(T, struct{}) bool) {
		for v := range seq {
			if !yield(v, struct{}{}) {
				return
			}
		}
	}
}
