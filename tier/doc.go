// Package tier models a secondary memory tier that is reachable only through a
// register-driven block-transfer engine, never by direct addressing.
//
// # Overview
//
// A tier is a byte-addressable region of up to 16MB (24-bit addresses) split into
// 64KB banks. Bytes move between primary memory (a Go []byte) and the tier through
// a Channel, which reproduces the transfer registers of an expansion-unit style
// controller:
//
//	| Register        | Width  | Meaning                                         |
//	|-----------------|--------|-------------------------------------------------|
//	| local address   | slice  | primary-memory buffer                           |
//	| tier address    | 24 bit | byte offset into the tier                       |
//	| length          | 16 bit | bytes to transfer; 0 means 65536                |
//	| command         | 8 bit  | ToTier, FromTier, Swap, Compare                 |
//	| address control | 8 bit  | bit 7 fixes local, bit 6 fixes tier, 0 = both   |
//
// The bytes themselves live in a Store. MemStore keeps them in a slice; the
// mmapstore and levelstore subpackages put them in a mapped file or a LevelDB
// keyspace.
//
// # Addressing Modes
//
// Every ordinary transfer advances both addresses. Fill-style transfers need a
// fixed address on one side, which is a scoped resource on the channel:
//
//	err := ch.WithMode(tier.FixLocal, func(t tier.Transfer) error {
//	    return t.Exec(value[:], addr, 0, tier.ToTier) // 65536 copies of value[0]
//	})
//
// WithMode restores AdvanceBoth on every exit path. Issuing Copy while a fixed
// mode is active returns ErrModeActive: a stale mode would corrupt every later
// transfer, so it is treated as a programming error rather than retried.
//
// # Capacity Discovery
//
// Detect writes a {bank, 'r', 'e', 'u'} signature to the start of every bank from
// 255 down to 0 and reads them back from 0 upward. Smaller stores alias their
// banks, so the first signature that fails to read back gives the installed bank
// count (0 = no tier).
//
// # Handles
//
// A Handle is the [Base, End) byte range a tiered container owns. Handles are
// plain values; callers lay them out so they do not overlap.
//
// # Thread Safety
//
// Channel and the stores are not thread-safe. The tier is a single shared
// channel and all transfers are expected to come from one flow of control.
package tier
