package tier

import "fmt"

// Transfer issues raw transfers under the mode of an open WithMode scope.
// It is only valid inside the callback it was passed to.
type Transfer struct {
	ch   *Channel
	mode AddrControl
}

// Mode returns the address control value the scope was opened with.
func (t Transfer) Mode() AddrControl { return t.mode }

// Exec runs one transfer of Length(length) bytes under the scope's mode.
// With FixLocal only local[0] is used; with FixTier the tier address stays put.
func (t Transfer) Exec(local []byte, addr Addr, length uint16, cmd Command) error {
	if t.ch == nil || !t.ch.scoped || t.ch.control != t.mode {
		return fmt.Errorf("%w: transfer used outside its scope", ErrModeActive)
	}
	return t.ch.exec(local, addr, Length(length), cmd)
}

// WithMode sets the address control register to mode, runs fn, and restores
// AdvanceBoth when fn returns or panics. Opening a scope while another is open,
// or while the register was left in a fixed mode, returns ErrModeActive.
func (c *Channel) WithMode(mode AddrControl, fn func(Transfer) error) error {
	if mode&^controlMask != 0 {
		return fmt.Errorf("%w: control=0x%02x", ErrBadCommand, uint8(mode))
	}
	if c.scoped || c.control != AdvanceBoth {
		return fmt.Errorf("%w: nested mode 0x%02x", ErrModeActive, uint8(mode))
	}

	c.scoped = true
	c.control = mode
	defer func() {
		c.control = AdvanceBoth
		c.scoped = false
	}()
	return fn(Transfer{ch: c, mode: mode})
}

// Fill writes Length(length) copies of value starting at addr in one transfer
// with the local address fixed.
func (c *Channel) Fill(addr Addr, value byte, length uint16) error {
	src := [1]byte{value}
	return c.WithMode(FixLocal, func(t Transfer) error {
		return t.Exec(src[:], addr, length, ToTier)
	})
}

// FillLocal replicates the tier byte at addr into the first Length(length) bytes
// of local in one transfer with the tier address fixed.
func (c *Channel) FillLocal(addr Addr, local []byte, length uint16) error {
	return c.WithMode(FixTier, func(t Transfer) error {
		return t.Exec(local, addr, length, FromTier)
	})
}
