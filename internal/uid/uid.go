// Package uid hands out process-unique object identifiers.
package uid

import "sync/atomic"

var seq uint64

// Next returns a new identifier. The first call returns 1; zero is never
// returned and always means "no object".
func Next() uint64 {
	return atomic.AddUint64(&seq, 1)
}
