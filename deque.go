// Package wsdeque provides a bounded, lock-free work-stealing deque.
//
// A Worker owns one end of the deque and pushes and pops there in LIFO
// order without contention. Any number of Stealers share the opposite end
// and transfer batches of items into another worker's deque. The whole
// synchronization state is two atomic words: a back position written by
// the worker, and a head word packing two front positions advanced by CAS.
package wsdeque

import (
	"sync/atomic"

	"golang.org/x/sys/cpu"
)

// Supported capacities. Power-of-two sizes keep index arithmetic to a mask.
const (
	B2     = 2
	B4     = 4
	B8     = 8
	B16    = 16
	B32    = 32
	B64    = 64
	B128   = 128
	B256   = 256
	B512   = 512
	B1024  = 1024
	B2048  = 2048
	B4096  = 4096
	B8192  = 8192
	B16384 = 16384
	B32768 = 32768
	B65536 = 65536
)

// deque is the ring shared by one Worker and its Stealers.
//
// Positions are 32-bit counters that only wrap modulo 2^32; a position
// masked by len(buffer)-1 is a slot index. With at most 2^16 slots the high
// bits distinguish one lap of the ring from the next.
//
// heads packs two front positions: the worker head (high half) and the
// steal head (low half). The halves are equal when nothing is in flight.
// A steal claims [steal, steal+k) by CASing the low half forward, copies
// the claimed slots, then stores both halves equal to commit. While the
// halves differ, other stealers back off with a busy error and the worker
// treats the claimed range as already gone. A drain is the worker holding
// such a claim itself.
type deque[T any] struct {
	buffer []T
	mask   uint32

	_     cpu.CacheLinePad
	heads atomic.Uint64 // worker head <<32 | steal head
	_     cpu.CacheLinePad
	back  atomic.Uint32 // next free slot on the worker end
}

func pack(worker, steal uint32) uint64 {
	return uint64(worker)<<32 | uint64(steal)
}

func unpack(heads uint64) (worker, steal uint32) {
	return uint32(heads >> 32), uint32(heads)
}

// New allocates a deque of capacity c and returns its owner handle.
// c must be one of the B* constants; anything else panics.
func New[T any](c int) *Worker[T] {
	if c < B2 || c > B65536 || c&(c-1) != 0 {
		panic("wsdeque: capacity must be a power of two between 2 and 65536")
	}
	return &Worker[T]{
		q: &deque[T]{
			buffer: make([]T, c),
			mask:   uint32(c - 1),
		},
	}
}

// noCopy triggers the go vet copylocks check on types embedding it.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}
