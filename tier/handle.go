package tier

import (
	"fmt"

	"github.com/joshuapare/tierkit/internal/buf"
	"github.com/joshuapare/tierkit/internal/logger"
)

// Handle is the [Base, End) byte range a tiered container owns. It holds
// Capacity records of RecordSize bytes each.
type Handle struct {
	Base       Addr
	End        Addr
	Capacity   int
	RecordSize int
}

// NewHandle lays out capacity records of recordSize bytes starting at base.
func NewHandle(base Addr, capacity, recordSize int) (Handle, error) {
	if capacity <= 0 || recordSize <= 0 {
		return Handle{}, fmt.Errorf("%w: capacity=%d record=%d", ErrBadHandle, capacity, recordSize)
	}
	end, err := buf.CheckRecordRange(AddrSpace, int(base), capacity, recordSize)
	if err != nil {
		return Handle{}, fmt.Errorf("%w: %v", ErrOutOfRange, err)
	}
	return Handle{
		Base:       base,
		End:        Addr(end),
		Capacity:   capacity,
		RecordSize: recordSize,
	}, nil
}

// Addr returns the tier address of record i. i is not range checked.
func (h Handle) Addr(i int) Addr {
	return h.Base + Addr(i*h.RecordSize)
}

// Len returns the number of bytes the handle spans.
func (h Handle) Len() int { return int(h.End - h.Base) }

// Overlaps reports whether h and o share any byte.
func (h Handle) Overlaps(o Handle) bool {
	return h.Base < o.End && o.Base < h.End
}

// Fits reports whether the range lies inside the first banks banks.
func (h Handle) Fits(banks int) bool {
	return int(h.End) <= banks*BankSize
}

// Clear zero-fills the handle's range, which marks every record slot empty.
// Each transfer stays inside one bank and never runs past End.
func (h Handle) Clear(ch *Channel) error {
	addr, end := int(h.Base), int(h.End)
	transfers := 0
	for addr < end {
		n := min(BankSize-addr%BankSize, end-addr)
		// n == BankSize encodes as 0, the register's 65536.
		if err := ch.Fill(Addr(addr), 0, uint16(n)); err != nil {
			return fmt.Errorf("tier: clear handle 0x%06x..0x%06x: %w", uint32(h.Base), uint32(h.End), err)
		}
		addr += n
		transfers++
	}
	logger.Debug("tier handle cleared", "base", uint32(h.Base), "end", uint32(h.End), "transfers", transfers)
	return nil
}
