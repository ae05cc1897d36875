package tier

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestChannel(t *testing.T, banks int) (*Channel, *MemStore) {
	t.Helper()
	s, err := NewMemStore(banks)
	require.NoError(t, err)
	return NewChannel(s), s
}

func TestLengthRegister(t *testing.T) {
	assert.Equal(t, BankSize, Length(0))
	assert.Equal(t, 1, Length(1))
	assert.Equal(t, 0xFFFF, Length(0xFFFF))

	reg, err := EncodeLength(BankSize)
	require.NoError(t, err)
	assert.Equal(t, uint16(0), reg)

	reg, err = EncodeLength(12)
	require.NoError(t, err)
	assert.Equal(t, uint16(12), reg)

	_, err = EncodeLength(0)
	require.ErrorIs(t, err, ErrLength)
	_, err = EncodeLength(BankSize + 1)
	require.ErrorIs(t, err, ErrLength)
}

func TestChannel_WriteRead(t *testing.T) {
	ch, s := newTestChannel(t, 1)

	require.NoError(t, ch.Write([]byte("hello"), 0x100))
	assert.Equal(t, []byte("hello"), s.Bytes()[0x100:0x105])

	got := make([]byte, 5)
	require.NoError(t, ch.Read(got, 0x100))
	assert.Equal(t, []byte("hello"), got)

	st := ch.Stats()
	assert.Equal(t, uint64(2), st.Transfers)
	assert.Equal(t, uint64(5), st.ToTier)
	assert.Equal(t, uint64(5), st.FromTier)

	ch.ResetStats()
	assert.Equal(t, Stats{}, ch.Stats())
}

func TestChannel_EmptyTransferIsFree(t *testing.T) {
	ch, _ := newTestChannel(t, 1)
	require.NoError(t, ch.Write(nil, 0))
	require.NoError(t, ch.Read([]byte{}, 0))
	assert.Zero(t, ch.Stats().Transfers)
}

func TestChannel_OversizedSlice(t *testing.T) {
	ch, _ := newTestChannel(t, 2)
	err := ch.Write(make([]byte, BankSize+1), 0)
	require.ErrorIs(t, err, ErrLength)
}

func TestChannel_LengthZeroMovesFullBank(t *testing.T) {
	ch, s := newTestChannel(t, 2)

	src := make([]byte, BankSize)
	for i := range src {
		src[i] = byte(i*7 + 3)
	}
	require.NoError(t, ch.Copy(src, BankAddr(1), 0, ToTier))
	assert.True(t, bytes.Equal(src, s.Bytes()[BankSize:]))
	assert.Equal(t, uint64(BankSize), ch.Stats().ToTier)

	dst := make([]byte, BankSize)
	require.NoError(t, ch.Copy(dst, BankAddr(1), 0, FromTier))
	assert.True(t, bytes.Equal(src, dst))
}

func TestChannel_ShortBuffer(t *testing.T) {
	ch, _ := newTestChannel(t, 1)
	err := ch.Copy(make([]byte, 3), 0, 4, ToTier)
	require.ErrorIs(t, err, ErrShortBuffer)
	assert.Zero(t, ch.Stats().Transfers)
}

func TestChannel_CopyRejectsFixedMode(t *testing.T) {
	ch, s := newTestChannel(t, 1)

	for _, mode := range []AddrControl{FixLocal, FixTier, FixLocal | FixTier} {
		ch.SetControl(mode)
		err := ch.Copy([]byte{1, 2}, 0, 2, ToTier)
		require.ErrorIs(t, err, ErrModeActive, "mode 0x%02x", uint8(mode))
		_, err = ch.Equal([]byte{0}, 0)
		require.ErrorIs(t, err, ErrModeActive)
	}
	assert.Equal(t, []byte{0, 0}, s.Bytes()[:2], "no bytes move under a stale mode")

	ch.Reset()
	assert.Equal(t, AdvanceBoth, ch.Control())
	require.NoError(t, ch.Copy([]byte{1, 2}, 0, 2, ToTier))
}

func TestChannel_UnknownCommand(t *testing.T) {
	ch, _ := newTestChannel(t, 1)
	err := ch.Copy([]byte{1}, 0, 1, Command(0x94))
	require.ErrorIs(t, err, ErrBadCommand)
	assert.Contains(t, Command(0x94).String(), "0x94")
}

func TestChannel_BankAliasing(t *testing.T) {
	ch, s := newTestChannel(t, 1)

	// Bank 3 aliases bank 0 on a single-bank store, and the run splits at the
	// physical end.
	require.NoError(t, ch.Write([]byte{1, 2, 3, 4}, BankAddr(3)+0xFFFE))
	data := s.Bytes()
	assert.Equal(t, []byte{1, 2}, data[0xFFFE:])
	assert.Equal(t, []byte{3, 4}, data[:2])

	got := make([]byte, 4)
	require.NoError(t, ch.Read(got, 0xFFFE))
	assert.Equal(t, []byte{1, 2, 3, 4}, got)
}

func TestChannel_AddressSpaceWrap(t *testing.T) {
	ch, s := newTestChannel(t, 1)
	require.NoError(t, ch.Write([]byte{0xAA, 0xBB}, AddrMask))
	assert.Equal(t, byte(0xAA), s.Bytes()[0xFFFF])
	assert.Equal(t, byte(0xBB), s.Bytes()[0])

	// Out-of-range addresses are masked to 24 bits.
	got := make([]byte, 1)
	require.NoError(t, ch.Read(got, Addr(AddrSpace)))
	assert.Equal(t, byte(0xBB), got[0])
}

func TestChannel_NoStore(t *testing.T) {
	for name, ch := range map[string]*Channel{
		"nil":   NewChannel(nil),
		"empty": NewChannel(&MemStore{}),
	} {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, ch.Write([]byte{1, 2, 3}, 0))
			got := []byte{0, 0, 0}
			require.NoError(t, ch.Read(got, 0))
			assert.Equal(t, []byte{0xFF, 0xFF, 0xFF}, got)
			assert.Nil(t, NewChannel(nil).Store())
		})
	}
}

func TestChannel_Swap(t *testing.T) {
	ch, s := newTestChannel(t, 1)
	copy(s.Bytes()[0x40:], []byte{1, 2, 3})

	local := []byte{9, 8, 7}
	require.NoError(t, ch.Copy(local, 0x40, 3, Swap))
	assert.Equal(t, []byte{1, 2, 3}, local)
	assert.Equal(t, []byte{9, 8, 7}, s.Bytes()[0x40:0x43])
	assert.Equal(t, uint64(1), ch.Stats().Swaps)
}

func TestChannel_Compare(t *testing.T) {
	ch, s := newTestChannel(t, 1)
	copy(s.Bytes()[0x10:], []byte("abcd"))

	eq, err := ch.Equal([]byte("abcd"), 0x10)
	require.NoError(t, err)
	assert.True(t, eq)
	assert.Zero(t, ch.Status()&StatusFault)

	eq, err = ch.Equal([]byte("abXd"), 0x10)
	require.NoError(t, err)
	assert.False(t, eq)
	assert.NotZero(t, ch.Status()&StatusFault)

	// Compare never modifies either side.
	assert.Equal(t, []byte("abcd"), s.Bytes()[0x10:0x14])

	eq, err = ch.Equal(nil, 0)
	require.NoError(t, err)
	assert.True(t, eq)
	assert.Equal(t, uint64(2), ch.Stats().Compares)
}
