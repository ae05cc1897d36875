package tier

import (
	"bytes"
	"fmt"
)

// Addr is a 24-bit tier address. Arithmetic wraps at AddrSpace.
type Addr uint32

// BankAddr returns the address of the first byte of bank.
func BankAddr(bank int) Addr { return Addr(bank) << 16 & AddrMask }

// Command selects the transfer direction. Values match the controller's
// command register encoding.
type Command uint8

const (
	ToTier   Command = 0x90 // primary -> tier
	FromTier Command = 0x91 // tier -> primary
	Swap     Command = 0x92 // exchange primary and tier bytes
	Compare  Command = 0x93 // compare, result in the status register
)

func (c Command) String() string {
	switch c {
	case ToTier:
		return "to-tier"
	case FromTier:
		return "from-tier"
	case Swap:
		return "swap"
	case Compare:
		return "compare"
	default:
		return fmt.Sprintf("command(0x%02x)", uint8(c))
	}
}

// AddrControl is the address control register.
type AddrControl uint8

const (
	// AdvanceBoth advances local and tier addresses per byte. This is the only
	// mode in which Copy may be used.
	AdvanceBoth AddrControl = 0x00

	// FixTier holds the tier address and advances the local address (bit 6).
	FixTier AddrControl = 0x40

	// FixLocal holds the local address and advances the tier address (bit 7).
	FixLocal AddrControl = 0x80

	controlMask AddrControl = FixTier | FixLocal
)

// Status register bits.
const (
	StatusFault      uint8 = 0x20 // last Compare found a mismatch
	StatusEndOfBlock uint8 = 0x40 // last transfer ran to completion
)

// Length decodes the 16-bit length register: 0 means 65536.
func Length(reg uint16) int {
	if reg == 0 {
		return BankSize
	}
	return int(reg)
}

// EncodeLength encodes n (1..65536) onto the 16-bit length register.
func EncodeLength(n int) (uint16, error) {
	if n < 1 || n > BankSize {
		return 0, fmt.Errorf("%w: %d", ErrLength, n)
	}
	return uint16(n), nil // 65536 truncates to 0, which is the register's encoding
}

// Stats counts channel traffic. A round trip is one executed transfer.
type Stats struct {
	Transfers uint64 // executed transfers of any command
	ToTier    uint64 // bytes written to the tier
	FromTier  uint64 // bytes read from the tier
	Swaps     uint64
	Compares  uint64
}

// Channel is the only path between primary memory and a tier Store.
//
// NOT thread-safe. The zero value is not usable; create channels with NewChannel.
type Channel struct {
	store   Store
	control AddrControl
	status  uint8
	stats   Stats
	scoped  bool // a WithMode scope is open
}

// NewChannel attaches a transfer engine to s. A nil store behaves like an
// absent tier: writes are dropped and reads return 0xFF.
func NewChannel(s Store) *Channel {
	return &Channel{store: s}
}

// Store returns the attached store (may be nil).
func (c *Channel) Store() Store { return c.store }

// Control returns the address control register.
func (c *Channel) Control() AddrControl { return c.control }

// SetControl writes the address control register directly. Prefer WithMode,
// which guarantees restoration; this exists for callers driving the registers
// by hand and for misuse tests.
func (c *Channel) SetControl(ctl AddrControl) { c.control = ctl & controlMask }

// Reset forces the address control register back to AdvanceBoth.
func (c *Channel) Reset() { c.control = AdvanceBoth }

// Status returns the status register.
func (c *Channel) Status() uint8 { return c.status }

// Stats returns the traffic counters.
func (c *Channel) Stats() Stats { return c.stats }

// ResetStats zeroes the traffic counters.
func (c *Channel) ResetStats() { c.stats = Stats{} }

// Copy executes one transfer of Length(length) bytes between local and the tier
// at addr. The address control register must be AdvanceBoth.
func (c *Channel) Copy(local []byte, addr Addr, length uint16, cmd Command) error {
	if c.control != AdvanceBoth {
		return fmt.Errorf("%w: control=0x%02x", ErrModeActive, uint8(c.control))
	}
	return c.exec(local, addr, Length(length), cmd)
}

// Read fills p from the tier starting at addr in a single transfer.
// An empty p is a no-op and costs no round trip.
func (c *Channel) Read(p []byte, addr Addr) error {
	if len(p) == 0 {
		return nil
	}
	reg, err := EncodeLength(len(p))
	if err != nil {
		return err
	}
	return c.Copy(p, addr, reg, FromTier)
}

// Write stores p into the tier starting at addr in a single transfer.
// An empty p is a no-op and costs no round trip.
func (c *Channel) Write(p []byte, addr Addr) error {
	if len(p) == 0 {
		return nil
	}
	reg, err := EncodeLength(len(p))
	if err != nil {
		return err
	}
	return c.Copy(p, addr, reg, ToTier)
}

// Equal compares p with the tier bytes at addr using the Compare command.
func (c *Channel) Equal(p []byte, addr Addr) (bool, error) {
	if len(p) == 0 {
		return true, nil
	}
	reg, err := EncodeLength(len(p))
	if err != nil {
		return false, err
	}
	if err := c.Copy(p, addr, reg, Compare); err != nil {
		return false, err
	}
	return c.status&StatusFault == 0, nil
}

// exec runs a transfer under the current control register. Callers have
// already checked whether the mode is allowed.
func (c *Channel) exec(local []byte, addr Addr, n int, cmd Command) error {
	fixLocal := c.control&FixLocal != 0
	fixTier := c.control&FixTier != 0

	need := n
	if fixLocal {
		need = 1
	}
	if len(local) < need {
		return fmt.Errorf("%w: have %d, need %d", ErrShortBuffer, len(local), need)
	}

	addr &= AddrMask
	var err error
	switch {
	case !fixLocal && !fixTier:
		err = c.execLinear(local[:n], addr, cmd)
	case fixLocal && !fixTier && cmd == ToTier:
		err = c.fill(addr, local[0], n)
	case fixTier && !fixLocal && cmd == FromTier:
		var b [1]byte
		if err = c.read(b[:], addr); err == nil {
			for i := range local[:n] {
				local[i] = b[0]
			}
			c.stats.FromTier += uint64(n)
		}
	default:
		err = c.execBytewise(local, addr, n, cmd, fixLocal, fixTier)
	}
	if err != nil {
		return fmt.Errorf("tier: %s at 0x%06x len %d: %w", cmd, uint32(addr), n, err)
	}

	c.stats.Transfers++
	c.status |= StatusEndOfBlock
	return nil
}

func (c *Channel) execLinear(local []byte, addr Addr, cmd Command) error {
	switch cmd {
	case ToTier:
		if err := c.write(local, addr); err != nil {
			return err
		}
		c.stats.ToTier += uint64(len(local))
	case FromTier:
		if err := c.read(local, addr); err != nil {
			return err
		}
		c.stats.FromTier += uint64(len(local))
	case Swap:
		tmp := make([]byte, len(local))
		if err := c.read(tmp, addr); err != nil {
			return err
		}
		if err := c.write(local, addr); err != nil {
			return err
		}
		copy(local, tmp)
		c.stats.Swaps++
		c.stats.ToTier += uint64(len(local))
		c.stats.FromTier += uint64(len(local))
	case Compare:
		tmp := make([]byte, len(local))
		if err := c.read(tmp, addr); err != nil {
			return err
		}
		c.setFault(!bytes.Equal(tmp, local))
		c.stats.Compares++
		c.stats.FromTier += uint64(len(local))
	default:
		return ErrBadCommand
	}
	return nil
}

// execBytewise covers the fixed-address combinations that have no bulk
// equivalent on the store. It steps the two address counters one byte at a time.
func (c *Channel) execBytewise(local []byte, addr Addr, n int, cmd Command, fixLocal, fixTier bool) error {
	if cmd < ToTier || cmd > Compare {
		return ErrBadCommand
	}
	if cmd == Compare {
		c.setFault(false)
	}
	var t [1]byte
	li, ta := 0, addr
	for range n {
		switch cmd {
		case ToTier:
			if err := c.write(local[li:li+1], ta); err != nil {
				return err
			}
			c.stats.ToTier++
		case FromTier:
			if err := c.read(local[li:li+1], ta); err != nil {
				return err
			}
			c.stats.FromTier++
		case Swap:
			if err := c.read(t[:], ta); err != nil {
				return err
			}
			if err := c.write(local[li:li+1], ta); err != nil {
				return err
			}
			local[li] = t[0]
		case Compare:
			if err := c.read(t[:], ta); err != nil {
				return err
			}
			if t[0] != local[li] {
				c.setFault(true)
			}
		}
		if !fixLocal {
			li++
		}
		if !fixTier {
			ta = (ta + 1) & AddrMask
		}
	}
	switch cmd {
	case Swap:
		c.stats.Swaps++
	case Compare:
		c.stats.Compares++
	}
	return nil
}

func (c *Channel) setFault(fault bool) {
	if fault {
		c.status |= StatusFault
	} else {
		c.status &^= StatusFault
	}
}

// present reports whether a store with at least one byte is attached.
func (c *Channel) present() bool {
	return c.store != nil && c.store.Size() > 0
}

// segments splits the run [addr, addr+n) into physical store ranges, wrapping
// at the 24-bit boundary and folding the address onto the installed size.
func (c *Channel) segments(addr Addr, n int, fn func(phys int64, lo, hi int) error) error {
	size := c.store.Size()
	done := 0
	a := int64(addr & AddrMask)
	for done < n {
		phys := a % size
		seg := int64(n - done)
		if rem := int64(AddrSpace) - a; seg > rem {
			seg = rem
		}
		if rem := size - phys; seg > rem {
			seg = rem
		}
		if err := fn(phys, done, done+int(seg)); err != nil {
			return err
		}
		done += int(seg)
		a = (a + seg) & AddrMask
	}
	return nil
}

func (c *Channel) read(p []byte, addr Addr) error {
	if !c.present() {
		for i := range p {
			p[i] = 0xFF
		}
		return nil
	}
	return c.segments(addr, len(p), func(phys int64, lo, hi int) error {
		_, err := c.store.ReadAt(p[lo:hi], phys)
		return err
	})
}

func (c *Channel) write(p []byte, addr Addr) error {
	if !c.present() {
		return nil
	}
	return c.segments(addr, len(p), func(phys int64, lo, hi int) error {
		_, err := c.store.WriteAt(p[lo:hi], phys)
		return err
	})
}

func (c *Channel) fill(addr Addr, value byte, n int) error {
	if !c.present() {
		return nil
	}
	err := c.segments(addr, n, func(phys int64, lo, hi int) error {
		return c.store.Fill(phys, value, hi-lo)
	})
	if err == nil {
		c.stats.ToTier += uint64(n)
	}
	return err
}
