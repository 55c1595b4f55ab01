package tracking

// IntervalSeconds is the fixed length of one legacy activity interval.
const IntervalSeconds = 600

// Split is the active/idle division of a block of elapsed seconds.
type Split struct {
	Active int
	Idle   int
}

// SplitSeconds divides elapsed seconds by an activity ratio in [0,1].
// active = floor(elapsed * ratio), idle takes the remainder, so the two
// always sum back to elapsed.
func SplitSeconds(elapsed int, ratio float64) Split {
	if elapsed <= 0 {
		return Split{}
	}
	if ratio < 0 {
		ratio = 0
	} else if ratio > 1 {
		ratio = 1
	}
	active := int(float64(elapsed) * ratio)
	return Split{Active: active, Idle: elapsed - active}
}

// ActiveShare is the integer floor of elapsed seconds weighted by an activity
// level percentage (0-100).
func ActiveShare(elapsed, level int) int {
	if elapsed <= 0 || level <= 0 {
		return 0
	}
	if level > 100 {
		level = 100
	}
	return elapsed * level / 100
}

// ApportionSeconds applies the same activity split to every entry of a keyed
// seconds mapping.
func ApportionSeconds(byKey map[string]int, ratio float64) map[string]Split {
	out := make(map[string]Split, len(byKey))
	for key, elapsed := range byKey {
		out[key] = SplitSeconds(elapsed, ratio)
	}
	return out
}

// MergeSeconds adds src into dst entrywise and returns dst. The merge is
// associative and commutative with the empty map as identity, so chunks can
// arrive in any order. It does NOT deduplicate: replaying the same chunk
// double-counts unless the chunk ledger filtered it upstream.
func MergeSeconds(dst, src map[string]int) map[string]int {
	if dst == nil {
		dst = make(map[string]int, len(src))
	}
	for key, seconds := range src {
		dst[key] += seconds
	}
	return dst
}
