package ordered_test

import (
	"testing"

	"github.com/danmuck/ordcodec/internal/ordered"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapKeepsInsertionOrder(t *testing.T) {
	m := ordered.NewMap[string, int](4)
	for i, k := range []string{"c", "a", "b"} {
		_, existed := m.Set(k, i)
		require.False(t, existed)
	}
	assert.Equal(t, []string{"c", "a", "b"}, m.Keys())
	assert.Equal(t, 3, m.Len())

	old, existed := m.Set("c", 99)
	require.True(t, existed)
	assert.Equal(t, 0, old)
	assert.Equal(t, []string{"c", "a", "b"}, m.Keys(), "update keeps position")

	v, ok := m.Get("c")
	require.True(t, ok)
	assert.Equal(t, 99, v)
	_, ok = m.Get("missing")
	assert.False(t, ok)
}

func TestMapDeleteShiftsLaterEntries(t *testing.T) {
	m := ordered.NewMap[int, string](0)
	for _, k := range []int{5, 1, 4, 2} {
		m.Set(k, "v")
	}
	require.True(t, m.Delete(1))
	require.False(t, m.Delete(1))
	assert.Equal(t, []int{5, 4, 2}, m.Keys())
	assert.True(t, m.Has(2))
	assert.False(t, m.Has(1))

	m.Set(1, "again")
	assert.Equal(t, []int{5, 4, 2, 1}, m.Keys())
	v, _ := m.Get(2)
	assert.Equal(t, "v", v)
}

func TestMapAllStopsEarly(t *testing.T) {
	m := ordered.NewMap[int, int](0)
	for i := 0; i < 10; i++ {
		m.Set(i, i*i)
	}
	var seen []int
	for k, v := range m.All() {
		if k == 3 {
			break
		}
		seen = append(seen, v)
	}
	assert.Equal(t, []int{0, 1, 4}, seen)
}

func TestZeroValueAndNilContainers(t *testing.T) {
	var m ordered.Map[string, int]
	m.Set("x", 1)
	assert.Equal(t, []string{"x"}, m.Keys())

	var nilMap *ordered.Map[string, int]
	assert.Equal(t, 0, nilMap.Len())
	assert.Nil(t, nilMap.Keys())
	for range nilMap.All() {
		t.Fatal("nil map yielded an entry")
	}

	var nilSet *ordered.Set[int]
	assert.Equal(t, 0, nilSet.Len())
	assert.Nil(t, nilSet.Values())
}

func TestNegativeCapacityIsIgnored(t *testing.T) {
	m := ordered.NewMap[int, int](-5)
	m.Set(1, 1)
	assert.Equal(t, 1, m.Len())
}

func TestSetCollapsesRepeats(t *testing.T) {
	s := ordered.SetOf(3, 1, 3, 2, 1)
	assert.Equal(t, []int{3, 1, 2}, s.Values())
	assert.Equal(t, 3, s.Len())
	assert.False(t, s.Insert(2))
	assert.True(t, s.Insert(7))
	assert.True(t, s.Has(7))
	require.True(t, s.Delete(3))
	assert.Equal(t, []int{1, 2, 7}, s.Values())

	var got []int
	for v := range s.All() {
		got = append(got, v)
	}
	assert.Equal(t, []int{1, 2, 7}, got)
}
