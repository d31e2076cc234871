package manifold

import "sync/atomic"

// circularSegments is the process-wide circular-segment count used
// by every round-primitive constructor when no explicit count is given,
// grounded on original_source's set_fn(20) call and spec.md §4.1 ("default
// 20"). Kept as an atomic so concurrent readers never race with a
// one-time startup SetCircularSegments call (spec.md §5: "seed once, read
// by every Shape constructor").
var circularSegments atomic.Int64

func init() {
	circularSegments.Store(20)
}

// SetCircularSegments sets the process-wide circular-segment tunable.
// Intended to be called once at startup; spec.md §5 documents concurrent
// mutation as undefined.
func SetCircularSegments(n int) {
	circularSegments.Store(int64(n))
}

// CircularSegments returns the current circular-segment tunable.
func CircularSegments() int {
	return int(circularSegments.Load())
}
