package minheap

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/tierkit/record"
	"github.com/joshuapare/tierkit/tier"
)

type item = record.Item[uint16, uint32]

var codec = record.NewItemCodec[uint16, uint32](record.Uint16{}, record.Uint32{})

func newChannel(t *testing.T) (*tier.Channel, *tier.MemStore) {
	t.Helper()
	s, err := tier.NewMemStore(1)
	require.NoError(t, err)
	return tier.NewChannel(s), s
}

var variants = []struct {
	name string
	new  func(t *testing.T, capacity int) Heap[uint16, uint32]
}{
	{"local", func(t *testing.T, capacity int) Heap[uint16, uint32] {
		h, err := NewLocal[uint16, uint32](capacity)
		require.NoError(t, err)
		return h
	}},
	{"tiered", func(t *testing.T, capacity int) Heap[uint16, uint32] {
		ch, _ := newChannel(t)
		h, err := NewTiered(ch, 0x30, capacity, codec)
		require.NoError(t, err)
		return h
	}},
}

func drain(t *testing.T, h Heap[uint16, uint32]) []item {
	t.Helper()
	var out []item
	for h.Size() > 0 {
		it, err := h.Pop()
		require.NoError(t, err)
		out = append(out, it)
	}
	return out
}

func priorities(items []item) []uint16 {
	p := make([]uint16, len(items))
	for i, it := range items {
		p[i] = it.Priority
	}
	return p
}

func TestPushPop_Order(t *testing.T) {
	for _, v := range variants {
		t.Run(v.name, func(t *testing.T) {
			h := v.new(t, 8)
			for _, p := range []uint16{5, 3, 8, 1, 9, 2, 7} {
				require.NoError(t, h.Push(item{Priority: p, Value: uint32(p) * 100}))
			}
			assert.Equal(t, 7, h.Size())

			top, err := h.Peek()
			require.NoError(t, err)
			assert.Equal(t, item{Priority: 1, Value: 100}, top)
			assert.Equal(t, 7, h.Size(), "peek keeps the item")

			got := drain(t, h)
			assert.Equal(t, []uint16{1, 2, 3, 5, 7, 8, 9}, priorities(got))
			for _, it := range got {
				assert.Equal(t, uint32(it.Priority)*100, it.Value, "payload travels with priority")
			}
		})
	}
}

func TestEmptyAndFull(t *testing.T) {
	for _, v := range variants {
		t.Run(v.name, func(t *testing.T) {
			h := v.new(t, 2)
			_, err := h.Pop()
			require.ErrorIs(t, err, ErrEmpty)
			_, err = h.Peek()
			require.ErrorIs(t, err, ErrEmpty)
			var dst item
			require.ErrorIs(t, h.PopInto(&dst), ErrEmpty)

			require.NoError(t, h.Push(item{Priority: 2}))
			require.NoError(t, h.Push(item{Priority: 1}))
			require.ErrorIs(t, h.Push(item{Priority: 0}), ErrFull)
			assert.Equal(t, 2, h.Size())
			assert.Equal(t, 2, h.Capacity())

			require.NoError(t, h.PopInto(&dst))
			assert.Equal(t, uint16(1), dst.Priority)

			h.Clear()
			assert.Zero(t, h.Size())
			_, err = h.Pop()
			require.ErrorIs(t, err, ErrEmpty)
		})
	}
}

func TestInterleaved_MatchesSortedReference(t *testing.T) {
	for _, v := range variants {
		t.Run(v.name, func(t *testing.T) {
			const capacity = 128
			h := v.new(t, capacity)
			var ref []uint16
			rng := rand.New(rand.NewPCG(3, 4))

			for range 3000 {
				if len(ref) < capacity && (len(ref) == 0 || rng.IntN(5) < 3) {
					p := uint16(rng.IntN(50))
					require.NoError(t, h.Push(item{Priority: p, Value: uint32(p)}))
					ref = append(ref, p)
					continue
				}
				slices.Sort(ref)
				it, err := h.Pop()
				require.NoError(t, err)
				require.Equal(t, ref[0], it.Priority)
				ref = ref[1:]
				require.Equal(t, len(ref), h.Size())
			}
		})
	}
}

func TestInit_MatchesPushes(t *testing.T) {
	rng := rand.New(rand.NewPCG(9, 9))
	for _, v := range variants {
		for _, n := range []int{0, 1, 2, 3, 7, 8, 31, 64} {
			items := make([]item, n)
			for i := range items {
				p := uint16(rng.IntN(20))
				items[i] = item{Priority: p, Value: uint32(p)}
			}

			a := v.new(t, 64)
			require.NoError(t, a.Init(items))
			assert.Equal(t, n, a.Size())

			b := v.new(t, 64)
			for _, it := range items {
				require.NoError(t, b.Push(it))
			}

			want := priorities(items)
			slices.Sort(want)
			fromInit := priorities(drain(t, a))
			fromPush := priorities(drain(t, b))
			if n == 0 {
				assert.Empty(t, fromInit)
				assert.Empty(t, fromPush)
				continue
			}
			assert.Equal(t, want, fromInit, "%s n=%d", v.name, n)
			assert.Equal(t, fromPush, fromInit, "%s n=%d", v.name, n)
		}
	}
}

func TestInit_ReplacesContents(t *testing.T) {
	for _, v := range variants {
		t.Run(v.name, func(t *testing.T) {
			h := v.new(t, 4)
			require.NoError(t, h.Push(item{Priority: 0}))
			require.NoError(t, h.Init([]item{{Priority: 4}, {Priority: 3}}))
			assert.Equal(t, []uint16{3, 4}, priorities(drain(t, h)))

			err := h.Init(make([]item, 5))
			require.ErrorIs(t, err, ErrFull)
		})
	}
}

func TestTiered_SameArrayAsLocal(t *testing.T) {
	ch, store := newChannel(t)
	tiered, err := NewTiered(ch, 0, 32, codec)
	require.NoError(t, err)
	local, err := NewLocal[uint16, uint32](32)
	require.NoError(t, err)

	rng := rand.New(rand.NewPCG(5, 6))
	items := make([]item, 20)
	for i := range items {
		// Equal priorities with distinct payloads expose tie handling.
		items[i] = item{Priority: uint16(rng.IntN(4)), Value: uint32(i)}
	}
	require.NoError(t, tiered.Init(items))
	require.NoError(t, local.Init(items))
	for i := range 10 {
		p := item{Priority: uint16(rng.IntN(4)), Value: uint32(100 + i)}
		require.NoError(t, tiered.Push(p))
		require.NoError(t, local.Push(p))
	}

	arr := local.h.a.(localArray[uint16, uint32])
	for i := range local.Size() {
		off := i * codec.Size()
		assert.Equal(t, arr[i], codec.Get(store.Bytes()[off:]), "record %d", i)
	}

	for local.Size() > 0 {
		a, err := local.Pop()
		require.NoError(t, err)
		b, err := tiered.Pop()
		require.NoError(t, err)
		require.Equal(t, a, b)
	}
}

func TestTiered_ReadsPriorityOnly(t *testing.T) {
	ch, _ := newChannel(t)
	h, err := NewTiered(ch, 0, 16, codec)
	require.NoError(t, err)
	for p := range uint16(15) {
		require.NoError(t, h.Push(item{Priority: p + 10}))
	}

	ch.ResetStats()
	require.NoError(t, h.Push(item{Priority: 1}))
	// Slot 15 climbs to the root past 7, 3, 1 and 0: four priority reads,
	// four moves (read+write), one final write.
	st := ch.Stats()
	assert.Equal(t, uint64(13), st.Transfers)
	assert.Equal(t, uint64(4*2+4*6), st.FromTier)
	assert.Equal(t, uint64(5*6), st.ToTier)
}

func TestTiered_Errors(t *testing.T) {
	ch, _ := newChannel(t)
	_, err := NewTiered(ch, 0, 0, codec)
	require.ErrorIs(t, err, ErrCapacity)
	_, err = NewLocal[int, int](0)
	require.ErrorIs(t, err, ErrCapacity)

	_, err = NewTiered(ch, tier.AddrSpace-6, 2, codec)
	require.ErrorIs(t, err, tier.ErrOutOfRange)

	h, err := NewTiered(ch, 0x100, 4, codec)
	require.NoError(t, err)
	assert.Equal(t, tier.Addr(0x100), h.Handle().Base)
	assert.Equal(t, tier.Addr(0x118), h.Handle().End)

	require.NoError(t, h.Push(item{Priority: 1}))
	ch.SetControl(tier.FixTier)
	_, err = h.Pop()
	require.ErrorIs(t, err, tier.ErrModeActive)
}
