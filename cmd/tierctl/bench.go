package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/joshuapare/tierkit/hashtable"
	"github.com/joshuapare/tierkit/minheap"
	"github.com/joshuapare/tierkit/record"
	"github.com/joshuapare/tierkit/tier"
)

var benchOps int

func init() {
	cmd := newBenchCmd()
	cmd.Flags().IntVar(&benchOps, "ops", 10000, "Number of keys and heap items per workload")
	rootCmd.AddCommand(cmd)
}

func newBenchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Measure transfer traffic of tiered containers",
		Long: `The bench command fills a tiered hash set to about 70% load, looks every
key up again, and pushes and pops a tiered min-heap. For each workload it
reports the transfers and bytes moved per operation and the elapsed time.

Example:
  tierctl bench --ops 20000
  tierctl bench --backend mmap --path tier.img --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBench()
		},
	}
	return cmd
}

type benchResult struct {
	Workload     string        `json:"workload"`
	Ops          int           `json:"ops"`
	Transfers    uint64        `json:"transfers"`
	BytesMoved   uint64        `json:"bytes_moved"`
	Elapsed      time.Duration `json:"elapsed_ns"`
	TransfersPer float64       `json:"transfers_per_op"`
}

func runBench() (err error) {
	if benchOps < 1 {
		return fmt.Errorf("--ops must be positive, got %d", benchOps)
	}
	s, err := openTier()
	if err != nil {
		return err
	}
	defer s.closeInto(&err)

	banks, err := tier.Detect(s.ch)
	if err != nil {
		return fmt.Errorf("detection failed: %w", err)
	}

	capacity := benchOps * 10 / 7
	// Set records are [marker][uint32], heap records [uint32][uint32].
	need := int64(capacity)*5 + int64(benchOps)*8
	if have := int64(banks) * tier.BankSize; need > have {
		return fmt.Errorf("workload needs %s, tier has %s", formatBytes(need), formatBytes(have))
	}

	set, err := hashtable.NewTieredSet(s.ch, 0, capacity, record.HashInt[uint32], record.Uint32{})
	if err != nil {
		return fmt.Errorf("set layout: %w", err)
	}
	codec := record.NewItemCodec[uint32, uint32](record.Uint32{}, record.Uint32{})
	heap, err := minheap.NewTiered(s.ch, set.Handle().End, benchOps, codec)
	if err != nil {
		return fmt.Errorf("heap layout: %w", err)
	}

	// Multiplicative scrambling spreads keys without a real hash.
	key := func(i int) uint32 { return uint32(i) * 2654435761 }

	var results []benchResult
	measure := func(name string, fn func() error) error {
		s.ch.ResetStats()
		start := time.Now()
		if err := fn(); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		st := s.ch.Stats()
		results = append(results, benchResult{
			Workload:     name,
			Ops:          benchOps,
			Transfers:    st.Transfers,
			BytesMoved:   st.ToTier + st.FromTier,
			Elapsed:      time.Since(start),
			TransfersPer: float64(st.Transfers) / float64(benchOps),
		})
		return nil
	}

	steps := []struct {
		name string
		fn   func() error
	}{
		{"set-insert", func() error {
			for i := range benchOps {
				if err := set.Insert(key(i)); err != nil {
					return err
				}
			}
			return nil
		}},
		{"set-find", func() error {
			for i := range benchOps {
				if ok, err := set.Contains(key(i)); err != nil {
					return err
				} else if !ok {
					return fmt.Errorf("key %d lost", key(i))
				}
			}
			return nil
		}},
		{"heap-push", func() error {
			for i := range benchOps {
				it := record.Item[uint32, uint32]{Priority: key(i), Value: uint32(i)}
				if err := heap.Push(it); err != nil {
					return err
				}
			}
			return nil
		}},
		{"heap-pop", func() error {
			for heap.Size() > 0 {
				if _, err := heap.Pop(); err != nil {
					return err
				}
			}
			return nil
		}},
	}
	for _, st := range steps {
		printVerbose("Running %s\n", st.name)
		if err := measure(st.name, st.fn); err != nil {
			return err
		}
	}

	if jsonOut {
		return printJSON(results)
	}
	printInfo("\nBenchmark (%s, %d ops):\n", backend, benchOps)
	for _, r := range results {
		printInfo("  %-11s %12d transfers  %6.2f/op  %12s  %v\n",
			r.Workload, r.Transfers, r.TransfersPer, formatBytes(int64(r.BytesMoved)), r.Elapsed.Round(time.Microsecond))
	}
	return nil
}
