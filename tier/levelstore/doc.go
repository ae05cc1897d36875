// Package levelstore backs a tier with a LevelDB keyspace.
//
// The tier is cut into fixed-size pages. Page N is stored under the key
// prefix || uint64be(N), so pages sort in address order and several tiers can
// share one database under different prefixes. The key made of the prefix
// alone holds the tier size in banks.
//
// Pages that were never written, or that were filled entirely with zero, have
// no key and read back as zeros. Clearing a container's handle therefore also
// frees the space it used.
//
// Every WriteAt and Fill is committed as one leveldb.Batch, so a transfer that
// spans pages is applied atomically.
//
// Store is NOT thread-safe, matching the single-channel model of package tier.
package levelstore
