package minheap

import (
	"fmt"
	"testing"

	"github.com/joshuapare/tierkit/record"
	"github.com/joshuapare/tierkit/tier"
)

func benchHeap(b *testing.B, impl string, capacity int) Heap[uint32, uint32] {
	b.Helper()
	if impl == "local" {
		h, err := NewLocal[uint32, uint32](capacity)
		if err != nil {
			b.Fatal(err)
		}
		return h
	}
	store, err := tier.NewMemStore(1)
	if err != nil {
		b.Fatal(err)
	}
	c := record.NewItemCodec[uint32, uint32](record.Uint32{}, record.Uint32{})
	h, err := NewTiered(tier.NewChannel(store), 0, capacity, c)
	if err != nil {
		b.Fatal(err)
	}
	return h
}

func benchItems(n int) []record.Item[uint32, uint32] {
	items := make([]record.Item[uint32, uint32], n)
	for i := range items {
		items[i] = record.Item[uint32, uint32]{Priority: uint32(i) * 2654435761, Value: uint32(i)}
	}
	return items
}

// BenchmarkPushPop pushes capacity items one at a time and pops them all.
func BenchmarkPushPop(b *testing.B) {
	for _, impl := range []string{"local", "tiered"} {
		for _, capacity := range []int{256, 4096} {
			b.Run(fmt.Sprintf("%s/cap%d", impl, capacity), func(b *testing.B) {
				h := benchHeap(b, impl, capacity)
				items := benchItems(capacity)
				b.ResetTimer()
				for range b.N {
					for _, it := range items {
						if err := h.Push(it); err != nil {
							b.Fatal(err)
						}
					}
					for h.Size() > 0 {
						if _, err := h.Pop(); err != nil {
							b.Fatal(err)
						}
					}
				}
			})
		}
	}
}

// BenchmarkInit bulk-loads capacity items.
func BenchmarkInit(b *testing.B) {
	for _, impl := range []string{"local", "tiered"} {
		for _, capacity := range []int{256, 4096} {
			b.Run(fmt.Sprintf("%s/cap%d", impl, capacity), func(b *testing.B) {
				h := benchHeap(b, impl, capacity)
				items := benchItems(capacity)
				b.ResetTimer()
				for range b.N {
					if err := h.Init(items); err != nil {
						b.Fatal(err)
					}
				}
			})
		}
	}
}
