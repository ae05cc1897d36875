package tier

import (
	"fmt"

	"github.com/joshuapare/tierkit/internal/logger"
)

// signature returns the 4-byte detection pattern for bank.
func signature(bank int) [4]byte {
	return [4]byte{byte(bank), 'r', 'e', 'u'}
}

// Detect probes the tier and returns the number of installed 64KB banks
// (0 = no tier, 256 = the full 16MB). It resets the address control register
// first and overwrites the first four bytes of every bank.
//
// Signatures are written from bank 255 down to 0, then read back from bank 0
// up. On a store with fewer banks the high banks alias the low ones and are
// overwritten by the later, lower writes, so the first bank whose signature
// does not read back is the installed count.
func Detect(ch *Channel) (int, error) {
	ch.Reset()

	for bank := MaxBanks - 1; bank >= 0; bank-- {
		sig := signature(bank)
		if err := ch.Write(sig[:], BankAddr(bank)); err != nil {
			return 0, fmt.Errorf("tier: detect: write bank %d: %w", bank, err)
		}
	}

	var got [4]byte
	for bank := range MaxBanks {
		if err := ch.Read(got[:], BankAddr(bank)); err != nil {
			return 0, fmt.Errorf("tier: detect: read bank %d: %w", bank, err)
		}
		if got != signature(bank) {
			logger.Debug("tier detected", "banks", bank)
			return bank, nil
		}
	}
	logger.Debug("tier detected", "banks", MaxBanks)
	return MaxBanks, nil
}

// BanksNeeded returns the number of 64KB banks that cover size bytes.
func BanksNeeded(size uint32) int {
	return int((uint64(size) + BankSize - 1) / BankSize)
}

// ClearBanks zero-fills banks 0..n-1, one full-bank transfer each.
func ClearBanks(ch *Channel, n int) error {
	if n < 0 || n > MaxBanks {
		return fmt.Errorf("%w: %d", ErrBanks, n)
	}
	for bank := range n {
		if err := ch.Fill(BankAddr(bank), 0, 0); err != nil {
			return fmt.Errorf("tier: clear bank %d: %w", bank, err)
		}
	}
	return nil
}

// MemCopy copies src to dst (both primary memory) by staging the bytes in the
// tier at scratch. It clobbers len(src) tier bytes starting at scratch.
// dst and src may overlap.
func MemCopy(ch *Channel, dst, src []byte, scratch Addr) error {
	if len(dst) < len(src) {
		return fmt.Errorf("%w: dst %d < src %d", ErrShortBuffer, len(dst), len(src))
	}
	if err := ch.Write(src, scratch); err != nil {
		return err
	}
	return ch.Read(dst[:len(src)], scratch)
}
