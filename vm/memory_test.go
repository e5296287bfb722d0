package vm

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemoryPushPopRoundTrip(t *testing.T) {
	m := NewMemory(0)
	for _, v := range []int32{0, 1, -1, 42, -123456, 2147483647, -2147483648} {
		require.NoError(t, m.Push(v))
		got, err := m.Pop()
		require.NoError(t, err)
		require.Equal(t, v, got)
	}
}

func TestMemoryStackUnderflow(t *testing.T) {
	m := NewMemory(0)
	_, err := m.Pop()
	require.ErrorIs(t, err, ErrStackUnderflow)
}

func TestMemoryStackOverflow(t *testing.T) {
	m := NewMemory(MemSize - 1)
	require.NoError(t, m.Push(1))
	err := m.Push(2)
	require.ErrorIs(t, err, ErrStackOverflow)
}

func TestMemoryDepth(t *testing.T) {
	m := NewMemory(0)
	require.Equal(t, 0, m.Depth())
	require.NoError(t, m.Push(1))
	require.NoError(t, m.Push(2))
	require.Equal(t, 2, m.Depth())
	_, err := m.Pop()
	require.NoError(t, err)
	require.Equal(t, 1, m.Depth())
}

func TestMemoryAllocMonotonic(t *testing.T) {
	m := NewMemory(0)
	a, err := m.Alloc(4)
	require.NoError(t, err)
	b, err := m.Alloc(8)
	require.NoError(t, err)
	require.Equal(t, uint32(0), a)
	require.Equal(t, uint32(4), b)
	require.Equal(t, uint32(12), m.HeapEnd())
}

func TestMemoryAllocHeapOverflow(t *testing.T) {
	m := NewMemory(0)
	m.sp = 3 // leave only 4 live cells [0..3] for the heap to grow into
	_, err := m.Alloc(5)
	require.ErrorIs(t, err, ErrHeapOverflow)
}

func TestMemoryStringRoundTrip(t *testing.T) {
	m := NewMemory(64)
	m.WriteString(10, "42")
	require.Equal(t, "42", m.ReadString(10))
}

func TestMemoryResetReseedsHeap(t *testing.T) {
	m := NewMemory(16)
	require.NoError(t, m.Push(7))
	m.Reset(8, []HeapSeed{{Addr: 2, Value: 99}})
	require.Equal(t, uint32(MemSize-1), m.SP())
	require.Equal(t, uint32(8), m.HeapEnd())
	require.Equal(t, int32(99), m.At(2))
	require.Equal(t, int32(0), m.At(0))
}
