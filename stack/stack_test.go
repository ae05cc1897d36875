package stack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/tierkit/record"
	"github.com/joshuapare/tierkit/tier"
)

type frame struct {
	X, Y  int16
	Depth uint8
}

func newChannel(t *testing.T) (*tier.Channel, *tier.MemStore) {
	t.Helper()
	s, err := tier.NewMemStore(1)
	require.NoError(t, err)
	return tier.NewChannel(s), s
}

var variants = []struct {
	name string
	new  func(t *testing.T, capacity int) Stack[frame]
}{
	{"local", func(t *testing.T, capacity int) Stack[frame] {
		s, err := NewLocal[frame](capacity)
		require.NoError(t, err)
		return s
	}},
	{"tiered", func(t *testing.T, capacity int) Stack[frame] {
		ch, _ := newChannel(t)
		s, err := NewTiered(ch, 0x1000, capacity, record.MustBinary[frame]())
		require.NoError(t, err)
		return s
	}},
}

func TestLIFO(t *testing.T) {
	for _, v := range variants {
		t.Run(v.name, func(t *testing.T) {
			s := v.new(t, 5)
			for i := range int16(5) {
				require.NoError(t, s.Push(frame{X: i, Y: -i, Depth: uint8(i)}))
			}
			require.ErrorIs(t, s.Push(frame{}), ErrFull)
			assert.Equal(t, 5, s.Size())

			top, err := s.Peek()
			require.NoError(t, err)
			assert.Equal(t, frame{X: 4, Y: -4, Depth: 4}, top)

			for i := int16(4); i >= 0; i-- {
				got, err := s.Pop()
				require.NoError(t, err)
				assert.Equal(t, i, got.X)
			}
			_, err = s.Pop()
			require.ErrorIs(t, err, ErrEmpty)
			_, err = s.Peek()
			require.ErrorIs(t, err, ErrEmpty)
		})
	}
}

func TestGetAndPopInto(t *testing.T) {
	for _, v := range variants {
		t.Run(v.name, func(t *testing.T) {
			s := v.new(t, 4)
			require.NoError(t, s.Push(frame{X: 1}))
			require.NoError(t, s.Push(frame{X: 2}))
			require.NoError(t, s.Push(frame{X: 3}))

			got, err := s.Get(0)
			require.NoError(t, err)
			assert.Equal(t, int16(1), got.X, "index 0 is the bottom")
			got, err = s.Get(2)
			require.NoError(t, err)
			assert.Equal(t, int16(3), got.X)

			_, err = s.Get(3)
			require.ErrorIs(t, err, ErrOutOfRange)
			_, err = s.Get(-1)
			require.ErrorIs(t, err, ErrOutOfRange)

			var dst frame
			require.NoError(t, s.PopInto(&dst))
			assert.Equal(t, int16(3), dst.X)
			assert.Equal(t, 2, s.Size())

			s.Clear()
			assert.Zero(t, s.Size())
			require.ErrorIs(t, s.PopInto(&dst), ErrEmpty)
			assert.Equal(t, 4, s.Capacity())
		})
	}
}

func TestTiered_Transfers(t *testing.T) {
	ch, store := newChannel(t)
	s, err := NewTiered[uint32](ch, 0x20, 8, record.Uint32{})
	require.NoError(t, err)

	ch.ResetStats()
	for i := range uint32(3) {
		require.NoError(t, s.Push(i + 0x10))
	}
	assert.Equal(t, uint64(3), ch.Stats().Transfers)
	assert.Equal(t, []byte{0x12, 0, 0, 0}, store.Bytes()[0x28:0x2C], "record 2 at base+2*4")

	ch.ResetStats()
	_, err = s.Pop()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), ch.Stats().Transfers)

	// Clear only resets the pointer.
	s.Clear()
	assert.Equal(t, byte(0x10), store.Bytes()[0x20])
	assert.Equal(t, tier.Addr(0x40), s.Handle().End)
}

func TestTiered_FailedPushKeepsPointer(t *testing.T) {
	ch, _ := newChannel(t)
	s, err := NewTiered[uint8](ch, 0, 2, record.Uint8{})
	require.NoError(t, err)

	ch.SetControl(tier.FixTier)
	require.ErrorIs(t, s.Push(1), tier.ErrModeActive)
	assert.Zero(t, s.Size())

	ch.Reset()
	require.NoError(t, s.Push(1))
	assert.Equal(t, 1, s.Size())
}

func TestConstructors(t *testing.T) {
	_, err := NewLocal[int](0)
	require.ErrorIs(t, err, ErrCapacity)
	ch, _ := newChannel(t)
	_, err = NewTiered[uint8](ch, 0, 0, record.Uint8{})
	require.ErrorIs(t, err, ErrCapacity)
}
