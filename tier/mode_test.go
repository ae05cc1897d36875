package tier

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFill(t *testing.T) {
	ch, s := newTestChannel(t, 1)

	require.NoError(t, ch.Fill(0x10, 0xAB, 5))
	assert.Equal(t, []byte{0xAB, 0xAB, 0xAB, 0xAB, 0xAB, 0}, s.Bytes()[0x10:0x16])
	assert.Equal(t, byte(0), s.Bytes()[0x0F])
	assert.Equal(t, AdvanceBoth, ch.Control(), "mode restored after fill")
	assert.Equal(t, uint64(1), ch.Stats().Transfers)
}

func TestFill_FullBank(t *testing.T) {
	ch, s := newTestChannel(t, 2)
	require.NoError(t, ch.Fill(BankAddr(1), 0x5A, 0))

	data := s.Bytes()
	assert.Equal(t, byte(0), data[BankSize-1])
	for i := BankSize; i < 2*BankSize; i++ {
		if data[i] != 0x5A {
			t.Fatalf("byte 0x%x = 0x%02x, want 0x5a", i, data[i])
		}
	}
	assert.Equal(t, uint64(1), ch.Stats().Transfers)
}

func TestFillLocal(t *testing.T) {
	ch, s := newTestChannel(t, 1)
	s.Bytes()[0x20] = 0x5A

	local := make([]byte, 10)
	require.NoError(t, ch.FillLocal(0x20, local, 8))
	assert.Equal(t, []byte{0x5A, 0x5A, 0x5A, 0x5A, 0x5A, 0x5A, 0x5A, 0x5A, 0, 0}, local)
	assert.Equal(t, AdvanceBoth, ch.Control())
	assert.Equal(t, byte(0), s.Bytes()[0x21], "tier side untouched")

	st := ch.Stats()
	assert.Equal(t, uint64(8), st.FromTier)
	assert.Zero(t, st.ToTier)
}

func TestFill_StatsMatchFillLocal(t *testing.T) {
	ch, _ := newTestChannel(t, 1)
	require.NoError(t, ch.Fill(0x40, 0x11, 6))
	require.NoError(t, ch.FillLocal(0x40, make([]byte, 6), 6))

	st := ch.Stats()
	assert.Equal(t, st.ToTier, st.FromTier)
	assert.Equal(t, uint64(2), st.Transfers)
}

func TestFillLocal_ShortBuffer(t *testing.T) {
	ch, _ := newTestChannel(t, 1)
	err := ch.FillLocal(0, make([]byte, 4), 8)
	require.ErrorIs(t, err, ErrShortBuffer)
	assert.Equal(t, AdvanceBoth, ch.Control())
}

func TestWithMode_RestoresOnError(t *testing.T) {
	ch, _ := newTestChannel(t, 1)
	boom := errors.New("boom")

	err := ch.WithMode(FixLocal, func(Transfer) error {
		assert.Equal(t, FixLocal, ch.Control())
		return boom
	})
	require.ErrorIs(t, err, boom)
	assert.Equal(t, AdvanceBoth, ch.Control())

	// The channel is usable again.
	require.NoError(t, ch.Write([]byte{1}, 0))
}

func TestWithMode_RestoresOnPanic(t *testing.T) {
	ch, _ := newTestChannel(t, 1)

	assert.Panics(t, func() {
		_ = ch.WithMode(FixTier, func(Transfer) error {
			panic("transfer callback failed")
		})
	})
	assert.Equal(t, AdvanceBoth, ch.Control())
	require.NoError(t, ch.Fill(0, 1, 1), "a new scope opens after the panic")
}

func TestWithMode_Nested(t *testing.T) {
	ch, _ := newTestChannel(t, 1)

	err := ch.WithMode(FixLocal, func(Transfer) error {
		return ch.WithMode(FixTier, func(Transfer) error { return nil })
	})
	require.ErrorIs(t, err, ErrModeActive)
	assert.Equal(t, AdvanceBoth, ch.Control())
}

func TestWithMode_CopyInsideScope(t *testing.T) {
	ch, _ := newTestChannel(t, 1)

	err := ch.WithMode(FixLocal, func(Transfer) error {
		return ch.Write([]byte{1, 2}, 0)
	})
	require.ErrorIs(t, err, ErrModeActive)
}

func TestWithMode_StaleRegister(t *testing.T) {
	ch, _ := newTestChannel(t, 1)
	ch.SetControl(FixTier)

	err := ch.Fill(0, 0, 1)
	require.ErrorIs(t, err, ErrModeActive)
	assert.Equal(t, FixTier, ch.Control(), "a refused scope leaves the register alone")
}

func TestWithMode_BadMode(t *testing.T) {
	ch, _ := newTestChannel(t, 1)
	err := ch.WithMode(AddrControl(0x01), func(Transfer) error { return nil })
	require.ErrorIs(t, err, ErrBadCommand)
}

func TestTransfer_EscapedScope(t *testing.T) {
	ch, _ := newTestChannel(t, 1)

	var kept Transfer
	require.NoError(t, ch.WithMode(FixLocal, func(tr Transfer) error {
		kept = tr
		assert.Equal(t, FixLocal, tr.Mode())
		return nil
	}))
	err := kept.Exec([]byte{1}, 0, 1, ToTier)
	require.ErrorIs(t, err, ErrModeActive)

	var zero Transfer
	require.ErrorIs(t, zero.Exec([]byte{1}, 0, 1, ToTier), ErrModeActive)
}

func TestTransfer_BytewiseModes(t *testing.T) {
	t.Run("fixed tier store keeps last byte", func(t *testing.T) {
		ch, s := newTestChannel(t, 1)
		require.NoError(t, ch.WithMode(FixTier, func(tr Transfer) error {
			return tr.Exec([]byte{1, 2, 3}, 0x30, 3, ToTier)
		}))
		assert.Equal(t, []byte{3, 0}, s.Bytes()[0x30:0x32])
	})

	t.Run("fixed local load keeps last byte", func(t *testing.T) {
		ch, s := newTestChannel(t, 1)
		copy(s.Bytes()[0x30:], []byte{4, 5, 6})
		local := []byte{0, 0}
		require.NoError(t, ch.WithMode(FixLocal, func(tr Transfer) error {
			return tr.Exec(local, 0x30, 3, FromTier)
		}))
		assert.Equal(t, []byte{6, 0}, local)
	})

	t.Run("fixed local compare", func(t *testing.T) {
		ch, s := newTestChannel(t, 1)
		copy(s.Bytes()[0x30:], []byte{7, 7, 7, 8})
		require.NoError(t, ch.WithMode(FixLocal, func(tr Transfer) error {
			return tr.Exec([]byte{7}, 0x30, 3, Compare)
		}))
		assert.Zero(t, ch.Status()&StatusFault)

		require.NoError(t, ch.WithMode(FixLocal, func(tr Transfer) error {
			return tr.Exec([]byte{7}, 0x30, 4, Compare)
		}))
		assert.NotZero(t, ch.Status()&StatusFault)
	})
}
