package mmapstore

import (
	"os"
	"sort"
)

// defaultRangeCapacity is the pre-allocated capacity for dirty ranges.
const defaultRangeCapacity = 64

// FlushMode controls what Flush does after syncing dirty pages.
type FlushMode int

const (
	// FlushAuto msyncs dirty pages and then fdatasyncs the file.
	FlushAuto FlushMode = iota

	// FlushDataOnly only msyncs dirty pages.
	FlushDataOnly

	// FlushFull msyncs dirty pages and then forces the data to the device
	// (F_FULLFSYNC on macOS).
	FlushFull
)

func (m FlushMode) String() string {
	switch m {
	case FlushAuto:
		return "auto"
	case FlushDataOnly:
		return "data-only"
	case FlushFull:
		return "full"
	default:
		return "unknown"
	}
}

// Range is a dirty byte range (absolute file offsets).
type Range struct {
	Off int64
	Len int64
}

// tracker accumulates dirty ranges until the next flush.
//
// NOT thread-safe.
type tracker struct {
	ranges   []Range
	pageSize int64
}

func newTracker() *tracker {
	return &tracker{
		ranges:   make([]Range, 0, defaultRangeCapacity),
		pageSize: int64(os.Getpagesize()),
	}
}

// add records a dirty range. Alignment and merging happen at flush time.
func (t *tracker) add(off int64, length int) {
	if length <= 0 {
		return
	}
	t.ranges = append(t.ranges, Range{Off: off, Len: int64(length)})
}

func (t *tracker) reset() { t.ranges = t.ranges[:0] }

func (t *tracker) empty() bool { return len(t.ranges) == 0 }

// coalesce page-aligns all ranges, sorts them, and merges overlapping or
// adjacent ones. The result is clipped to limit.
func (t *tracker) coalesce(limit int64) []Range {
	if len(t.ranges) == 0 {
		return nil
	}

	aligned := make([]Range, len(t.ranges))
	for i, r := range t.ranges {
		start := (r.Off / t.pageSize) * t.pageSize
		end := r.Off + r.Len
		if end%t.pageSize != 0 {
			end = (end/t.pageSize + 1) * t.pageSize
		}
		end = min(end, limit)
		aligned[i] = Range{Off: start, Len: end - start}
	}

	sort.Slice(aligned, func(i, j int) bool {
		return aligned[i].Off < aligned[j].Off
	})

	merged := make([]Range, 0, len(aligned))
	current := aligned[0]
	for _, next := range aligned[1:] {
		if next.Off <= current.Off+current.Len {
			current.Len = max(current.Off+current.Len, next.Off+next.Len) - current.Off
			continue
		}
		merged = append(merged, current)
		current = next
	}
	return append(merged, current)
}
