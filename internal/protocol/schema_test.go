package protocol

import (
	"errors"
	"testing"

	"github.com/danmuck/ordcodec/internal/protocol/field"
	"github.com/danmuck/ordcodec/internal/protocol/schema"
	"github.com/danmuck/ordcodec/internal/testutil/testlog"
)

func TestMapSchemaMatchesWireLayout(t *testing.T) {
	testlog.Start(t)
	codec := NewMapCodec(field.I32, field.String)
	if got := codec.Declaration(); got != "OrderedMap<i32, String>" {
		t.Fatalf("unexpected declaration %q", got)
	}
	reg := schema.Registry{}
	if err := codec.DefineRecursively(reg); err != nil {
		t.Fatalf("define: %v", err)
	}
	seq, ok := reg["OrderedMap<i32, String>"].(schema.Sequence)
	if !ok {
		t.Fatalf("expected sequence, got %v", reg["OrderedMap<i32, String>"])
	}
	if seq.LengthWidth != 4 || seq.LengthRange != schema.DefaultLengthRange || seq.Elements != "(i32, String)" {
		t.Fatalf("unexpected sequence %v", seq)
	}
	for _, decl := range []string{"(i32, String)", "i32", "String", "u8"} {
		if _, ok := reg[decl]; !ok {
			t.Fatalf("missing declaration %q in %v", decl, reg.Keys())
		}
	}
}

func TestSetSchemaSharesRegistry(t *testing.T) {
	testlog.Start(t)
	reg := schema.Registry{}
	setCodec := NewSortedSetCodec(field.U64)
	mapCodec := NewSortedMapCodec(field.U64, field.Bool)
	if err := setCodec.DefineRecursively(reg); err != nil {
		t.Fatalf("define set: %v", err)
	}
	if err := mapCodec.DefineRecursively(reg); err != nil {
		t.Fatalf("define map: %v", err)
	}
	seq, ok := reg["OrderedSet<u64>"].(schema.Sequence)
	if !ok || seq.Elements != "u64" {
		t.Fatalf("unexpected set definition %v", reg["OrderedSet<u64>"])
	}
	if _, ok := reg["OrderedMap<u64, bool>"]; !ok {
		t.Fatalf("map declaration missing: %v", reg.Keys())
	}
	if len(reg) != 5 {
		t.Fatalf("expected 5 declarations, got %v", reg.Keys())
	}
}

func TestSchemaConflictSurfaces(t *testing.T) {
	testlog.Start(t)
	reg := schema.Registry{"i32": schema.Primitive{Size: 8}}
	err := NewSetCodec(field.I32).DefineRecursively(reg)
	if !errors.Is(err, schema.ErrConflictingDefinition) {
		t.Fatalf("expected conflict, got %v", err)
	}
}
