package tier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetect(t *testing.T) {
	for _, banks := range []int{0, 1, 2, 3, 16, 100, MaxBanks} {
		ch, _ := newTestChannel(t, banks)
		got, err := Detect(ch)
		require.NoError(t, err)
		assert.Equal(t, banks, got, "installed banks")
	}
}

func TestDetect_NoStore(t *testing.T) {
	got, err := Detect(NewChannel(nil))
	require.NoError(t, err)
	assert.Zero(t, got)
}

func TestDetect_ResetsStaleMode(t *testing.T) {
	ch, _ := newTestChannel(t, 4)
	ch.SetControl(FixLocal)

	got, err := Detect(ch)
	require.NoError(t, err)
	assert.Equal(t, 4, got)
	assert.Equal(t, AdvanceBoth, ch.Control())
}

func TestDetect_SignatureLayout(t *testing.T) {
	ch, s := newTestChannel(t, 2)
	_, err := Detect(ch)
	require.NoError(t, err)

	data := s.Bytes()
	assert.Equal(t, []byte{0, 'r', 'e', 'u'}, data[0:4])
	assert.Equal(t, []byte{1, 'r', 'e', 'u'}, data[BankSize:BankSize+4])
}

func TestBankAddr(t *testing.T) {
	assert.Equal(t, Addr(0), BankAddr(0))
	assert.Equal(t, Addr(0x030000), BankAddr(3))
	assert.Equal(t, Addr(0xFF0000), BankAddr(255))
	assert.Equal(t, Addr(0), BankAddr(256), "bank numbers wrap with the address space")
}

func TestBanksNeeded(t *testing.T) {
	cases := []struct {
		size uint32
		want int
	}{
		{0, 0},
		{1, 1},
		{BankSize - 1, 1},
		{BankSize, 1},
		{BankSize + 1, 2},
		{AddrSpace, MaxBanks},
		{0xFFFFFFFF, 0x10000},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, BanksNeeded(tc.size), "size %d", tc.size)
	}
}

func TestClearBanks(t *testing.T) {
	ch, s := newTestChannel(t, 3)
	data := s.Bytes()
	for i := range data {
		data[i] = 0xEE
	}

	require.NoError(t, ClearBanks(ch, 2))
	assert.Equal(t, uint64(2), ch.Stats().Transfers, "one transfer per bank")
	assert.Equal(t, byte(0), data[0])
	assert.Equal(t, byte(0), data[2*BankSize-1])
	assert.Equal(t, byte(0xEE), data[2*BankSize], "bank 2 untouched")

	require.ErrorIs(t, ClearBanks(ch, -1), ErrBanks)
	require.ErrorIs(t, ClearBanks(ch, MaxBanks+1), ErrBanks)
}

func TestMemCopy(t *testing.T) {
	ch, s := newTestChannel(t, 1)

	src := []byte("tier copy")
	dst := make([]byte, len(src))
	require.NoError(t, MemCopy(ch, dst, src, 0x200))
	assert.Equal(t, src, dst)
	assert.Equal(t, src, s.Bytes()[0x200:0x200+len(src)], "scratch area clobbered")

	// Overlapping ranges behave like memmove.
	buf := []byte{1, 2, 3, 4, 5, 6}
	require.NoError(t, MemCopy(ch, buf[2:], buf[:4], 0))
	assert.Equal(t, []byte{1, 2, 1, 2, 3, 4}, buf)

	require.ErrorIs(t, MemCopy(ch, make([]byte, 1), src, 0), ErrShortBuffer)
}
