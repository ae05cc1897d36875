package main

import (
	"bytes"
	"errors"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/joshuapare/tierkit/hashtable"
	"github.com/joshuapare/tierkit/minheap"
	"github.com/joshuapare/tierkit/queue"
	"github.com/joshuapare/tierkit/record"
	"github.com/joshuapare/tierkit/stack"
	"github.com/joshuapare/tierkit/tier"
)

func init() {
	rootCmd.AddCommand(newSelftestCmd())
}

func newSelftestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "selftest",
		Short: "Run the tiered containers against the selected tier",
		Long: `The selftest command runs a fixed set of container scenarios through the
transfer channel of the selected tier and reports the outcome and transfer
count of each. It overwrites the first bank.

Example:
  tierctl selftest
  tierctl selftest --backend leveldb --path tierdb --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSelftest()
		},
	}
	return cmd
}

type check struct {
	name string
	run  func(ch *tier.Channel) error
}

var checks = []check{
	{"length-sentinel", checkLengthSentinel},
	{"set-tombstone-reuse", checkSetTombstone},
	{"table-upsert", checkTableUpsert},
	{"table-clear", checkTableClear},
	{"heap-order", checkHeapOrder},
	{"stack-lifo", checkStackLIFO},
	{"queue-wraparound", checkQueueWraparound},
}

type checkResult struct {
	Name      string `json:"name"`
	Passed    bool   `json:"passed"`
	Error     string `json:"error,omitempty"`
	Transfers uint64 `json:"transfers"`
}

var errSelftest = errors.New("selftest failed")

func runSelftest() (err error) {
	s, err := openTier()
	if err != nil {
		return err
	}
	defer s.closeInto(&err)

	if banks, err := tier.Detect(s.ch); err != nil {
		return fmt.Errorf("detection failed: %w", err)
	} else if banks == 0 {
		return errors.New("no secondary tier present")
	}

	results := runChecks(s.ch)
	failed := 0
	for _, r := range results {
		if !r.Passed {
			failed++
		}
	}

	if jsonOut {
		if err := printJSON(results); err != nil {
			return err
		}
	} else {
		printInfo("\nSelf-test (%s):\n", backend)
		for _, r := range results {
			if r.Passed {
				printInfo("  ✓ %-22s %d transfers\n", r.Name, r.Transfers)
			} else {
				printInfo("  ✗ %-22s %s\n", r.Name, r.Error)
			}
		}
	}
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d checks", errSelftest, failed, len(results))
	}
	return nil
}

func runChecks(ch *tier.Channel) []checkResult {
	results := make([]checkResult, 0, len(checks))
	for _, c := range checks {
		ch.Reset()
		ch.ResetStats()
		err := c.run(ch)
		r := checkResult{Name: c.name, Passed: err == nil, Transfers: ch.Stats().Transfers}
		if err != nil {
			r.Error = err.Error()
		}
		results = append(results, r)
	}
	return results
}

func expect[T comparable](what string, got, want T) error {
	if got != want {
		return fmt.Errorf("%s: got %v, want %v", what, got, want)
	}
	return nil
}

func checkLengthSentinel(ch *tier.Channel) error {
	out := make([]byte, tier.BankSize)
	for i := range out {
		out[i] = byte(i*7 + 3)
	}
	if err := ch.Copy(out, 0, 0, tier.ToTier); err != nil {
		return err
	}
	in := make([]byte, tier.BankSize)
	if err := ch.Copy(in, 0, 0, tier.FromTier); err != nil {
		return err
	}
	if !bytes.Equal(in, out) {
		return errors.New("length 0 did not move a full bank")
	}
	return nil
}

func checkSetTombstone(ch *tier.Channel) error {
	set, err := hashtable.NewTieredSet(ch, 0, 8, record.HashInt[uint16], record.Uint16{})
	if err != nil {
		return err
	}
	for _, k := range []uint16{1, 2, 3} {
		if err := set.Insert(k); err != nil {
			return err
		}
	}
	if err := set.Remove(2); err != nil {
		return err
	}
	if err := set.Insert(10); err != nil {
		return err
	}
	i, err := set.Find(10)
	if err != nil {
		return err
	}
	if err := expect("slot of 10", i, 2); err != nil {
		return err
	}
	i, err = set.Find(2)
	if err != nil {
		return err
	}
	return expect("slot of 2", i, hashtable.Invalid)
}

func checkTableUpsert(ch *tier.Channel) error {
	t, err := hashtable.NewTieredTable(ch, 0, 16, record.HashInt[uint16], record.Uint16{}, record.Uint32{})
	if err != nil {
		return err
	}
	if err := t.Insert(5, 1); err != nil {
		return err
	}
	if err := t.Insert(5, 2); err != nil {
		return err
	}
	v, ok, err := t.Get(5)
	if err != nil {
		return err
	}
	if !ok {
		return errors.New("key 5 missing")
	}
	if err := expect("item of 5", v, uint32(2)); err != nil {
		return err
	}
	n, err := t.Size()
	if err != nil {
		return err
	}
	return expect("size", n, 1)
}

func checkTableClear(ch *tier.Channel) error {
	t, err := hashtable.NewTieredTable(ch, 0x100, 64, record.HashInt[uint16], record.Uint16{}, record.Uint16{})
	if err != nil {
		return err
	}
	for k := range uint16(40) {
		if err := t.Insert(k*5, k); err != nil {
			return err
		}
	}
	if err := t.Clear(); err != nil {
		return err
	}
	for k := range uint16(40) {
		i, err := t.Find(k * 5)
		if err != nil {
			return err
		}
		if i != hashtable.Invalid {
			return fmt.Errorf("key %d still present after clear", k*5)
		}
	}
	return nil
}

func checkHeapOrder(ch *tier.Channel) error {
	codec := record.NewItemCodec[uint16, uint16](record.Uint16{}, record.Uint16{})
	h, err := minheap.NewTiered(ch, 0, 64, codec)
	if err != nil {
		return err
	}
	var items []record.Item[uint16, uint16]
	for i := range uint16(64) {
		p := (i*37 + 11) % 50
		items = append(items, record.Item[uint16, uint16]{Priority: p, Value: i})
	}
	if err := h.Init(items[:32]); err != nil {
		return err
	}
	for _, it := range items[32:] {
		if err := h.Push(it); err != nil {
			return err
		}
	}
	var got []uint16
	for h.Size() > 0 {
		it, err := h.Pop()
		if err != nil {
			return err
		}
		got = append(got, it.Priority)
	}
	if !slices.IsSorted(got) || len(got) != len(items) {
		return fmt.Errorf("pop order not ascending: %v", got)
	}
	return nil
}

func checkStackLIFO(ch *tier.Channel) error {
	st, err := stack.NewTiered[uint32](ch, 0, 8, record.Uint32{})
	if err != nil {
		return err
	}
	for i := range uint32(8) {
		if err := st.Push(i); err != nil {
			return err
		}
	}
	if err := st.Push(8); !errors.Is(err, stack.ErrFull) {
		return fmt.Errorf("push beyond capacity: got %v", err)
	}
	for i := uint32(8); i > 0; i-- {
		v, err := st.Pop()
		if err != nil {
			return err
		}
		if err := expect("pop", v, i-1); err != nil {
			return err
		}
	}
	return nil
}

func checkQueueWraparound(ch *tier.Channel) error {
	q, err := queue.NewTiered[uint8](ch, 0, 4, record.Uint8{})
	if err != nil {
		return err
	}
	for _, c := range []byte("ABCD") {
		if err := q.Push(c); err != nil {
			return err
		}
	}
	if v, err := q.Pop(); err != nil {
		return err
	} else if err := expect("first pop", v, byte('A')); err != nil {
		return err
	}
	if err := q.Push('E'); err != nil {
		return err
	}
	var got []byte
	for q.Size() > 0 {
		v, err := q.Pop()
		if err != nil {
			return err
		}
		got = append(got, v)
	}
	return expect("drain", string(got), "BCDE")
}
