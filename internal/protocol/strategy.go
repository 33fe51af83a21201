package protocol

import (
	"cmp"
	"fmt"
	"iter"
	"slices"
	"strings"
)

// Strategy decides the order entries are written in.
type Strategy[K comparable, V any] interface {
	Name() string
	// Arrange returns entries in write order. n is the advertised count.
	Arrange(entries iter.Seq2[K, V], n int) iter.Seq2[K, V]
}

// Mode names a strategy for configuration.
type Mode string

const (
	ModeCanonical Mode = "canonical"
	ModeIteration Mode = "iteration"
)

// ParseMode accepts a strategy name as found in config files.
func ParseMode(raw string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "canonical", "sorted", "sort":
		return ModeCanonical, nil
	case "iteration", "insertion", "":
		return ModeIteration, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, raw)
	}
}

type iterationOrder[K comparable, V any] struct{}

// IterationOrder writes entries exactly as the container enumerates them.
func IterationOrder[K comparable, V any]() Strategy[K, V] {
	return iterationOrder[K, V]{}
}

func (iterationOrder[K, V]) Name() string { return string(ModeIteration) }

func (iterationOrder[K, V]) Arrange(entries iter.Seq2[K, V], _ int) iter.Seq2[K, V] {
	return entries
}

type canonicalSort[K comparable, V any] struct {
	compare func(a, b K) int
}

// CanonicalSort writes entries ordered by compare, which must be a total
// order over keys. Output depends only on content, not insertion history.
func CanonicalSort[K comparable, V any](compare func(a, b K) int) Strategy[K, V] {
	return canonicalSort[K, V]{compare: compare}
}

// NaturalOrder is CanonicalSort over the built-in ordering of K.
func NaturalOrder[K cmp.Ordered, V any]() Strategy[K, V] {
	return CanonicalSort[K, V](cmp.Compare[K])
}

func (canonicalSort[K, V]) Name() string { return string(ModeCanonical) }

type entry[K comparable, V any] struct {
	key   K
	value V
}

func (s canonicalSort[K, V]) Arrange(entries iter.Seq2[K, V], n int) iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		sorted := make([]entry[K, V], 0, n)
		for k, v := range entries {
			sorted = append(sorted, entry[K, V]{key: k, value: v})
		}
		slices.SortFunc(sorted, func(a, b entry[K, V]) int {
			return s.compare(a.key, b.key)
		})
		for _, e := range sorted {
			if !yield(e.key, e.value) {
				return
			}
		}
	}
}

func strategyFor[K cmp.Ordered, V any](mode Mode) (Strategy[K, V], error) {
	switch mode {
	case ModeCanonical:
		return NaturalOrder[K, V](), nil
	case ModeIteration:
		return IterationOrder[K, V](), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
}
