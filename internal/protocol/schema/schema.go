package schema

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/rs/zerolog/log"
)

// Declaration is the canonical type name a definition is registered under.
type Declaration = string

// Length prefix shape shared by every sequence the codec emits.
const (
	DefaultLengthWidth uint8 = 4
)

var ErrConflictingDefinition = errors.New("schema: conflicting definition")

// DefaultLengthRange is the closed range a u32 length prefix can carry.
var DefaultLengthRange = LengthRange{Min: 0, Max: math.MaxUint32}

// LengthRange bounds the element count of a sequence.
type LengthRange struct {
	Min uint64
	Max uint64
}

// Definition is the structural shape of one declaration.
type Definition interface {
	definition()
	String() string
}

// Primitive is a fixed-width value of Size bytes.
type Primitive struct {
	Size uint8
}

// Sequence is a length prefix of LengthWidth bytes followed by that many Elements.
type Sequence struct {
	LengthWidth uint8
	LengthRange LengthRange
	Elements    Declaration
}

// Tuple is a fixed run of heterogeneous elements.
type Tuple struct {
	Elements []Declaration
}

func (Primitive) definition() {}
func (Sequence) definition() {}
func (Tuple) definition() {}

func (p Primitive) String() string {
	return fmt.Sprintf("primitive(%d)", p.Size)
}

func (s Sequence) String() string {
	return fmt.Sprintf("sequence(width=%d range=[%d,%d] elements=%s)",
		s.LengthWidth, s.LengthRange.Min, s.LengthRange.Max, s.Elements)
}

func (t Tuple) String() string {
	return fmt.Sprintf("tuple(%s)", strings.Join(t.Elements, ", "))
}

// Registry maps declarations to definitions. Callers own its lifetime and
// pass it into every registration; entries are never replaced.
type Registry map[Declaration]Definition

// Declarer is implemented by anything that can describe its encoded shape.
type Declarer interface {
	Declaration() Declaration
	DefineRecursively(reg Registry) error
}

// ConflictError reports a second, different definition for a declaration.
type ConflictError struct {
	Declaration Declaration
	Existing    Definition
	Proposed    Definition
}

func (e ConflictError) Error() string {
	return fmt.Sprintf("schema: declaration=%q: existing %s, proposed %s",
		e.Declaration, e.Existing, e.Proposed)
}

func (e ConflictError) Unwrap() error {
	return ErrConflictingDefinition
}

// Add registers def under decl. Re-adding an equal definition is a no-op.
func Add(reg Registry, decl Declaration, def Definition) error {
	existing, ok := reg[decl]
	if !ok {
		log.Debug().Str("declaration", decl).Str("definition", def.String()).Msg("schema.Add")
		reg[decl] = def
		return nil
	}
	if equal(existing, def) {
		return nil
	}
	log.Error().Str("declaration", decl).Msg("schema.Add conflicting definition")
	return ConflictError{Declaration: decl, Existing: existing, Proposed: def}
}

// TupleDeclaration renders the canonical name of a tuple of decls.
func TupleDeclaration(decls ...Declaration) Declaration {
	return "(" + strings.Join(decls, ", ") + ")"
}

// DefineTuple registers a tuple of the given members and recurses into each.
func DefineTuple(reg Registry, members ...Declarer) error {
	decls := make([]Declaration, len(members))
	for i, m := range members {
		decls[i] = m.Declaration()
	}
	if err := Add(reg, TupleDeclaration(decls...), Tuple{Elements: decls}); err != nil {
		return err
	}
	for _, m := range members {
		if err := m.DefineRecursively(reg); err != nil {
			return err
		}
	}
	return nil
}

// Keys returns the registered declarations in sorted order.
func (r Registry) Keys() []Declaration {
	keys := make([]Declaration, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func equal(a, b Definition) bool {
	at, ok := a.(Tuple)
	if !ok {
		return a == b
	}
	bt, ok := b.(Tuple)
	return ok && slices.Equal(at.Elements, bt.Elements)
}
